package service

import (
	"context"
	"fmt"

	"book-catalog/internal/domains/book/model"
	"book-catalog/internal/domains/book/repository"
)

// resolveCreateConflicts: create chỉ kiểm tra ISBN
func resolveCreateConflicts(ctx context.Context, tx repository.Reader, fields model.BookFields) error {
	taken, err := tx.Exists(ctx, repository.Match{Field: model.FieldISBN, Value: fields.ISBN})
	if err != nil {
		return fmt.Errorf("check isbn conflict: %w", err)
	}
	if taken {
		return model.Duplicate(nil)
	}
	return nil
}

var updateConflictChecks = []struct {
	field   model.Field
	message string
}{
	{model.FieldTitle, model.MsgTitleTaken},
	{model.FieldAuthor, model.MsgAuthorTaken},
	{model.FieldISBN, model.MsgISBNTaken},
}

// resolveUpdateConflicts chạy cả ba check với các record khác và gom mọi vi phạm
func resolveUpdateConflicts(ctx context.Context, tx repository.Reader, id int64, fields model.BookFields) error {
	var messages []string
	for _, check := range updateConflictChecks {
		taken, err := tx.Exists(ctx, repository.Match{
			Field:     check.field,
			Value:     fields.Value(check.field),
			ExcludeID: id,
		})
		if err != nil {
			return fmt.Errorf("check %s conflict: %w", check.field, err)
		}
		if taken {
			messages = append(messages, check.message)
		}
	}
	if len(messages) > 0 {
		return model.Conflicts(messages, nil)
	}
	return nil
}
