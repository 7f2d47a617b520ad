package model

import (
	"time"
)

// Book là một record trong catalog. ISBN unique toàn cục.
type Book struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	ISBN      string    `json:"isbn"`
	CreatedAt time.Time `json:"created_at"`
}

// BookResponse là shape public của một book
type BookResponse struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
}

func (b *Book) ToResponse() BookResponse {
	return BookResponse{
		ID:     b.ID,
		Title:  b.Title,
		Author: b.Author,
		ISBN:   b.ISBN,
	}
}

// ToResponses luôn trả về slice non-nil để JSON encode thành []
func ToResponses(books []Book) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for i := range books {
		out = append(out, books[i].ToResponse())
	}
	return out
}

// BookFields là title/author/isbn đã được trim
type BookFields struct {
	Title  string
	Author string
	ISBN   string
}

func (f BookFields) Value(field Field) string {
	switch field {
	case FieldTitle:
		return f.Title
	case FieldAuthor:
		return f.Author
	case FieldISBN:
		return f.ISBN
	default:
		return ""
	}
}

// Field trả về giá trị của một cột theo tên
func (b *Book) Field(field Field) string {
	return BookFields{Title: b.Title, Author: b.Author, ISBN: b.ISBN}.Value(field)
}
