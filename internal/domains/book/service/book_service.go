package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"book-catalog/internal/domains/book/model"
	"book-catalog/internal/domains/book/repository"
)

type BookService struct {
	store  repository.Store
	create *CreatePipeline
	update *UpdatePipeline
}

// NewBookService - faultInjection bật test hook "trigger_error" trên update
func NewBookService(store repository.Store, faultInjection bool) *BookService {
	return &BookService{
		store:  store,
		create: NewCreatePipeline(store),
		update: NewUpdatePipeline(store, faultInjection),
	}
}

func (s *BookService) ListBooks(ctx context.Context) ([]model.Book, error) {
	books, err := s.store.List(ctx)
	if err != nil {
		return nil, model.Internal(model.MsgInternal, err)
	}
	return books, nil
}

func (s *BookService) GetBook(ctx context.Context, id int64) (*model.Book, error) {
	book, err := s.store.GetByID(ctx, id)
	if errors.Is(err, model.ErrBookNotFound) {
		return nil, model.NotFound(model.MsgResourceNotFound)
	}
	if err != nil {
		return nil, model.Internal(model.MsgInternal, err)
	}
	return book, nil
}

// SearchBooks: query bắt buộc; field rỗng = all; không có kết quả cũng là 400
func (s *BookService) SearchBooks(ctx context.Context, query, field string) ([]model.Book, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, model.InvalidQuery(model.MsgSearchQueryRequired)
	}

	f, ok := model.ParseSearchField(field)
	if !ok {
		return nil, model.InvalidQuery(model.MsgInvalidSearchField)
	}

	books, err := s.store.Search(ctx, repository.SearchFilter{Query: query, Field: f})
	if err != nil {
		return nil, model.Internal(model.MsgInternal, err)
	}
	if len(books) == 0 {
		return nil, model.InvalidQuery(model.MsgNoSearchResults)
	}
	return books, nil
}

func (s *BookService) CreateBook(ctx context.Context, body []byte) (*model.Book, error) {
	raw, err := model.DecodeRawBook(body)
	if err != nil {
		return nil, model.Malformed(err)
	}
	return s.create.Run(ctx, raw)
}

func (s *BookService) UpdateBook(ctx context.Context, id int64, body []byte) (*model.Book, error) {
	return s.update.Run(ctx, id, body)
}

func (s *BookService) DeleteBook(ctx context.Context, id int64) error {
	err := s.store.Delete(ctx, id)
	if errors.Is(err, model.ErrBookNotFound) {
		return model.NotFound(model.MsgBookNotFound)
	}
	if err != nil {
		return model.Internal(model.MsgInternal, err)
	}

	log.Info().Int64("book_id", id).Msg("Book deleted")
	return nil
}
