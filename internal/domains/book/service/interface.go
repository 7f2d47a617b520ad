package service

import (
	"context"
	"io"

	"book-catalog/internal/domains/book/model"
)

// ServiceInterface - Định nghĩa business logic methods
type ServiceInterface interface {
	ListBooks(ctx context.Context) ([]model.Book, error)
	GetBook(ctx context.Context, id int64) (*model.Book, error)
	SearchBooks(ctx context.Context, query, field string) ([]model.Book, error)
	CreateBook(ctx context.Context, body []byte) (*model.Book, error)
	UpdateBook(ctx context.Context, id int64, body []byte) (*model.Book, error)
	DeleteBook(ctx context.Context, id int64) error
}

// BulkImportServiceInterface defines bulk import operations
type BulkImportServiceInterface interface {
	// ImportBooks chạy create pipeline cho từng dòng của file .csv/.xlsx
	ImportBooks(ctx context.Context, filename string, r io.Reader) (*model.ImportResult, error)
}
