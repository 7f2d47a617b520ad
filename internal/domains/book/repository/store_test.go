package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"book-catalog/internal/domains/book/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// testStoreContract chạy cùng một bộ test trên mọi Store implementation
func testStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	insert := func(t *testing.T, s Store, title, author, isbn string) *model.Book {
		t.Helper()
		b := &model.Book{Title: title, Author: author, ISBN: isbn}
		require.NoError(t, s.Insert(ctx, b))
		return b
	}

	t.Run("insert assigns id and created_at", func(t *testing.T) {
		s := newStore(t)
		a := insert(t, s, "Dune", "Frank Herbert", "9780441172719")
		b := insert(t, s, "Emma", "Jane Austen", "1234567890")

		assert.Greater(t, a.ID, int64(0))
		assert.Greater(t, b.ID, a.ID)
		assert.False(t, a.CreatedAt.IsZero())

		got, err := s.GetByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dune", got.Title)
		assert.Equal(t, "Frank Herbert", got.Author)
		assert.Equal(t, "9780441172719", got.ISBN)
	})

	t.Run("get missing", func(t *testing.T) {
		s := newStore(t)
		_, err := s.GetByID(ctx, 4242)
		assert.ErrorIs(t, err, model.ErrBookNotFound)
	})

	t.Run("duplicate isbn is rejected", func(t *testing.T) {
		s := newStore(t)
		insert(t, s, "Dune", "Frank Herbert", "9780441172719")
		err := s.Insert(ctx, &model.Book{Title: "Other", Author: "Someone", ISBN: "9780441172719"})
		assert.ErrorIs(t, err, model.ErrDuplicateISBN)
	})

	t.Run("exists excludes own id", func(t *testing.T) {
		s := newStore(t)
		a := insert(t, s, "Dune", "Frank Herbert", "9780441172719")

		ok, err := s.Exists(ctx, Match{Field: model.FieldTitle, Value: "Dune"})
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = s.Exists(ctx, Match{Field: model.FieldTitle, Value: "Dune", ExcludeID: a.ID})
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = s.Exists(ctx, Match{Field: model.FieldAuthor, Value: "frank herbert"})
		require.NoError(t, err)
		assert.False(t, ok, "match is exact")
	})

	t.Run("update and delete", func(t *testing.T) {
		s := newStore(t)
		a := insert(t, s, "Dune", "Frank Herbert", "9780441172719")

		require.NoError(t, s.Update(ctx, &model.Book{ID: a.ID, Title: "Dune Messiah", Author: "Frank Herbert", ISBN: "9780593098233"}))
		got, err := s.GetByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dune Messiah", got.Title)
		assert.Equal(t, "9780593098233", got.ISBN)

		assert.ErrorIs(t, s.Update(ctx, &model.Book{ID: 999, Title: "x", Author: "y", ISBN: "1234567890"}), model.ErrBookNotFound)

		require.NoError(t, s.Delete(ctx, a.ID))
		_, err = s.GetByID(ctx, a.ID)
		assert.ErrorIs(t, err, model.ErrBookNotFound)
		assert.ErrorIs(t, s.Delete(ctx, a.ID), model.ErrBookNotFound)
	})

	t.Run("list ordered by id", func(t *testing.T) {
		s := newStore(t)
		books, err := s.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, books)
		assert.Empty(t, books)

		insert(t, s, "B", "Author B", "1111111111")
		insert(t, s, "A", "Author A", "2222222222")
		books, err = s.List(ctx)
		require.NoError(t, err)
		require.Len(t, books, 2)
		assert.Equal(t, "B", books[0].Title)
		assert.Equal(t, "A", books[1].Title)
	})

	t.Run("search", func(t *testing.T) {
		s := newStore(t)
		insert(t, s, "The Hobbit", "Tolkien", "1111111111")
		insert(t, s, "Dune", "Frank Herbert", "2222222222")
		insert(t, s, "Hobbies 100%", "Anon", "3333333333")

		titles := func(f SearchFilter) []string {
			books, err := s.Search(ctx, f)
			require.NoError(t, err)
			out := []string{}
			for _, b := range books {
				out = append(out, b.Title)
			}
			return out
		}

		assert.Equal(t, []string{"The Hobbit", "Hobbies 100%"}, titles(SearchFilter{Query: "HOBB", Field: model.FieldTitle}))
		assert.Equal(t, []string{"Dune"}, titles(SearchFilter{Query: "herb", Field: model.FieldAuthor}))
		assert.Equal(t, []string{"Dune"}, titles(SearchFilter{Query: "2222", Field: model.FieldISBN}))
		assert.Equal(t, []string{"The Hobbit"}, titles(SearchFilter{Query: "tolk", Field: model.FieldAll}))
		assert.Equal(t, []string{"Hobbies 100%"}, titles(SearchFilter{Query: "0%", Field: model.FieldAll}))
		assert.Empty(t, titles(SearchFilter{Query: "_", Field: model.FieldAll}))
	})

	t.Run("atomically rolls back on error", func(t *testing.T) {
		s := newStore(t)
		a := insert(t, s, "Dune", "Frank Herbert", "9780441172719")
		boom := errors.New("boom")

		err := s.Atomically(ctx, func(tx Tx) error {
			require.NoError(t, tx.Insert(ctx, &model.Book{Title: "Emma", Author: "Jane Austen", ISBN: "1234567890"}))
			require.NoError(t, tx.Update(ctx, &model.Book{ID: a.ID, Title: "Changed", Author: "Frank Herbert", ISBN: "9780441172719"}))
			return boom
		})
		assert.ErrorIs(t, err, boom)

		books, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "Dune", books[0].Title)
	})

	t.Run("atomically commits", func(t *testing.T) {
		s := newStore(t)
		var id int64
		err := s.Atomically(ctx, func(tx Tx) error {
			taken, err := tx.Exists(ctx, Match{Field: model.FieldISBN, Value: "1234567890"})
			if err != nil || taken {
				return errors.New("unexpected")
			}
			b := &model.Book{Title: "Emma", Author: "Jane Austen", ISBN: "1234567890"}
			if err := tx.Insert(ctx, b); err != nil {
				return err
			}
			id = b.ID
			return nil
		})
		require.NoError(t, err)

		got, err := s.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Emma", got.Title)
	})
}

func TestMemoryStore(t *testing.T) {
	testStoreContract(t, func(t *testing.T) Store { return NewMemoryStore() })
}
