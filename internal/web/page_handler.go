package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"book-catalog/internal/domains/book/model"
	bookService "book-catalog/internal/domains/book/service"
	"book-catalog/internal/shared/response"
)

// bookRow - một dòng của #books-list, Number bắt đầu từ 1
type bookRow struct {
	Number int
	model.BookResponse
}

type PageHandler struct {
	books bookService.ServiceInterface
}

func NewPageHandler(books bookService.ServiceInterface) *PageHandler {
	return &PageHandler{books: books}
}

// Home - GET /
func (h *PageHandler) Home(c *gin.Context) {
	c.Redirect(http.StatusFound, "/login")
}

// Books - GET /books (sau middleware.RequireSession)
func (h *PageHandler) Books(c *gin.Context) {
	books, err := h.books.ListBooks(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("Render books page failed")
		response.InternalServerError(c, response.MsgInternalServerError)
		return
	}

	rows := make([]bookRow, 0, len(books))
	for i, b := range books {
		rows = append(rows, bookRow{Number: i + 1, BookResponse: b.ToResponse()})
	}

	c.HTML(http.StatusOK, "books.html", gin.H{
		"Books":    rows,
		"Username": c.GetString("username"),
	})
}
