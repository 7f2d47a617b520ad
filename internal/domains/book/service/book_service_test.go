package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-catalog/internal/domains/book/model"
	"book-catalog/internal/domains/book/repository"
)

func TestBookService_Search(t *testing.T) {
	ctx := context.Background()
	svc := NewBookService(repository.NewMemoryStore(), true)
	seed(t, svc, "The Hobbit", "Tolkien", "1111111111")
	seed(t, svc, "Dune", "Frank Herbert", "2222222222")

	books, err := svc.SearchBooks(ctx, "hobbit", "")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "The Hobbit", books[0].Title)

	books, err = svc.SearchBooks(ctx, "2222", "isbn")
	require.NoError(t, err)
	require.Len(t, books, 1)

	tests := []struct {
		query, field, want string
	}{
		{"", "", model.MsgSearchQueryRequired},
		{"   ", "title", model.MsgSearchQueryRequired},
		{"dune", "publisher", model.MsgInvalidSearchField},
		{"nothing here", "all", model.MsgNoSearchResults},
		{"dune", "author", model.MsgNoSearchResults},
	}
	for _, tt := range tests {
		_, err := svc.SearchBooks(ctx, tt.query, tt.field)
		out := model.Classify(err)
		assert.Equal(t, 400, out.Status, tt.query)
		assert.Equal(t, tt.want, out.Message, tt.query)
	}
}

func TestBookService_GetAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewBookService(repository.NewMemoryStore(), true)
	b := seed(t, svc, "Dune", "Frank Herbert", "2222222222")

	require.NoError(t, svc.DeleteBook(ctx, b.ID))

	_, err := svc.GetBook(ctx, b.ID)
	out := model.Classify(err)
	assert.Equal(t, 404, out.Status)
	assert.Equal(t, model.MsgResourceNotFound, out.Message)

	out = model.Classify(svc.DeleteBook(ctx, b.ID))
	assert.Equal(t, 404, out.Status)
	assert.Equal(t, model.MsgBookNotFound, out.Message)

	books, err := svc.ListBooks(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)
}
