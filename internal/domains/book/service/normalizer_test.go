package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-catalog/internal/domains/book/model"
)

func missingMessage(t *testing.T, err error) string {
	t.Helper()
	var be *model.BookError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, model.KindMissingField, be.Kind)
	require.Len(t, be.Messages, 1)
	return be.Messages[0]
}

func TestNormalizeForCreate(t *testing.T) {
	tests := []struct {
		name string
		raw  model.RawBook
		want string
	}{
		{"all empty", model.RawBook{"title": "", "author": "", "isbn": ""}, "Missing or empty required fields: title, author, isbn"},
		{"absent keys", model.RawBook{}, "Missing or empty required fields: title, author, isbn"},
		{"whitespace author", model.RawBook{"title": "Dune", "author": "   ", "isbn": "1234567890"}, "Missing or empty required fields: author"},
		{"null and number", model.RawBook{"title": nil, "author": "Frank", "isbn": 1234567890}, "Missing or empty required fields: title, isbn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeForCreate(tt.raw)
			assert.Equal(t, tt.want, missingMessage(t, err))
		})
	}

	fields, err := NormalizeForCreate(model.RawBook{"title": "  Dune ", "author": " Frank Herbert", "isbn": "1234567890 "})
	require.NoError(t, err)
	assert.Equal(t, model.BookFields{Title: "Dune", Author: "Frank Herbert", ISBN: "1234567890"}, fields)
}

func TestNormalizeForUpdate_PresenceBeforeEmptiness(t *testing.T) {
	// isbn vắng mặt, title rỗng: pass 1 chỉ báo isbn
	_, err := NormalizeForUpdate(model.RawBook{"title": "", "author": "Frank"})
	assert.Equal(t, "Missing or empty required fields: isbn", missingMessage(t, err))

	_, err = NormalizeForUpdate(model.RawBook{"title": " ", "author": "Frank", "isbn": nil})
	assert.Equal(t, "Missing or empty required fields: title, isbn", missingMessage(t, err))

	fields, err := NormalizeForUpdate(model.RawBook{"title": "Any !@# title", "author": "R2D2", "isbn": "x"})
	require.NoError(t, err)
	assert.Equal(t, "Any !@# title", fields.Title)
}
