package repository

import (
	"context"

	"book-catalog/internal/domains/book/model"
)

// Match mô tả một equality check trên một field; ExcludeID > 0 loại record đó ra
type Match struct {
	Field     model.Field
	Value     string
	ExcludeID int64
}

// SearchFilter: case-insensitive substring; Field all OR cả ba cột
type SearchFilter struct {
	Query string
	Field model.Field
}

// Reader là các thao tác đọc dùng được trong transaction
type Reader interface {
	// GetByID returns model.ErrBookNotFound khi không có record
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	Exists(ctx context.Context, m Match) (bool, error)
}

// Tx là view của store bên trong Atomically
type Tx interface {
	Reader
	// Insert gán ID và CreatedAt (nếu zero). ISBN trùng -> model.ErrDuplicateISBN
	Insert(ctx context.Context, b *model.Book) error
	// Update ghi đè title/author/isbn. Không có record -> model.ErrBookNotFound
	Update(ctx context.Context, b *model.Book) error
}

// Store là persistence của books.
//
// Atomically chạy fn trong một transaction và serialize các writers trên
// toàn bộ book key space: check-then-write bên trong fn không bị chen ngang.
// fn trả về error -> rollback toàn bộ.
type Store interface {
	Tx
	List(ctx context.Context) ([]model.Book, error)
	Search(ctx context.Context, f SearchFilter) ([]model.Book, error)
	Delete(ctx context.Context, id int64) error
	Atomically(ctx context.Context, fn func(tx Tx) error) error
	Ping(ctx context.Context) error
}
