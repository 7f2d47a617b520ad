package service

import (
	"errors"
	"regexp"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"book-catalog/internal/domains/book/model"
)

var (
	titlePattern = regexp.MustCompile(`^[A-Za-z0-9\s]*$`)
	isbnPattern  = regexp.MustCompile(`^[0-9]{10}([0-9]{3})?$`)
)

type fieldRules struct {
	field model.Field
	rules []validation.Rule
}

// createRules chạy theo thứ tự, lỗi đầu tiên thắng
var createRules = []fieldRules{
	{model.FieldTitle, []validation.Rule{validation.Match(titlePattern).Error(model.MsgTitleRule)}},
	{model.FieldAuthor, []validation.Rule{validation.By(noDigits)}},
	{model.FieldISBN, []validation.Rule{validation.Match(isbnPattern).Error(model.MsgISBNRule)}},
}

// ValidateCreateRules kiểm tra cú pháp từng field. Update path không gọi hàm này.
func ValidateCreateRules(fields model.BookFields) error {
	for _, fr := range createRules {
		if err := validation.Validate(fields.Value(fr.field), fr.rules...); err != nil {
			return model.RuleViolation(err.Error())
		}
	}
	return nil
}

// noDigits từ chối mọi ký tự số Unicode, không chỉ 0-9
func noDigits(value interface{}) error {
	s, _ := value.(string)
	for _, r := range s {
		if unicode.IsDigit(r) {
			return errors.New(model.MsgAuthorRule)
		}
	}
	return nil
}
