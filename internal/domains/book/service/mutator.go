package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"book-catalog/internal/domains/book/model"
	"book-catalog/internal/domains/book/repository"
)

// recordMutator ghi dữ liệu đã validate; luôn chạy bên trong Store.Atomically
// nên một lỗi ở đây rollback cả transaction.
type recordMutator struct {
	now func() time.Time
}

func (m recordMutator) create(ctx context.Context, tx repository.Tx, fields model.BookFields) (*model.Book, error) {
	book := &model.Book{
		Title:     fields.Title,
		Author:    fields.Author,
		ISBN:      fields.ISBN,
		CreatedAt: m.now().UTC(),
	}
	if err := tx.Insert(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (m recordMutator) update(ctx context.Context, tx repository.Tx, id int64, fields model.BookFields) (*model.Book, error) {
	current, err := tx.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	current.Title = fields.Title
	current.Author = fields.Author
	current.ISBN = fields.ISBN
	if err := tx.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// persistenceFailure phân loại lỗi thoát ra khỏi Atomically.
// onDuplicate quyết định outcome khi UNIQUE(isbn) bắt được race mà check bỏ sót.
func persistenceFailure(err error, onDuplicate func(error) *model.BookError) error {
	var be *model.BookError
	switch {
	case errors.As(err, &be):
		return be
	case errors.Is(err, model.ErrDuplicateISBN):
		return onDuplicate(err)
	case errors.Is(err, model.ErrBookNotFound):
		return model.NotFound(model.MsgBookNotFound)
	default:
		return model.Internal(model.MsgInternal, fmt.Errorf("persist book: %w", err))
	}
}
