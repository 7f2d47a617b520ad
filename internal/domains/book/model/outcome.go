package model

import "errors"

type Category string

const (
	CategorySuccess           Category = "success"
	CategoryValidationFailure Category = "validation_failure"
	CategoryConflictFailure   Category = "conflict_failure"
	CategoryNotFound          Category = "not_found"
	CategoryMalformedRequest  Category = "malformed_request"
	CategoryInternalError     Category = "internal_error"
)

// Outcome là kết quả đã phân loại của một request. Đúng một trong
// Message (key "error") hoặc Messages (key "errors") được set khi thất bại.
type Outcome struct {
	Category Category
	Status   int
	Message  string
	Messages []string
	Cause    error
}

func (o Outcome) Failed() bool { return o.Category != CategorySuccess }

var kindCategory = map[Kind]Category{
	KindMissingField:     CategoryValidationFailure,
	KindRuleViolation:    CategoryValidationFailure,
	KindInvalidQuery:     CategoryValidationFailure,
	KindConflict:         CategoryConflictFailure,
	KindNotFound:         CategoryNotFound,
	KindMalformedRequest: CategoryMalformedRequest,
	KindInternalFault:    CategoryInternalError,
}

// Classify map kết quả pipeline sang Outcome. Error chưa phân loại
// trở thành internal error với message chung, cause chỉ để log.
func Classify(err error) Outcome {
	if err == nil {
		return Outcome{Category: CategorySuccess, Status: 200}
	}

	var be *BookError
	if !errors.As(err, &be) || len(be.Messages) == 0 {
		be = Internal(MsgInternal, err)
	}

	category, ok := kindCategory[be.Kind]
	if !ok {
		category = CategoryInternalError
	}

	out := Outcome{
		Category: category,
		Status:   ToHTTPStatus(be),
		Cause:    be.Err,
	}
	if be.Multi {
		out.Messages = append([]string(nil), be.Messages...)
	} else {
		out.Message = be.Messages[0]
	}
	return out
}
