package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"book-catalog/internal/domains/book/model"
	service "book-catalog/internal/domains/book/service"
	"book-catalog/internal/shared/response"
	"book-catalog/internal/shared/utils"
)

// Handler - HTTP Handler cho /api/books
type Handler struct {
	service service.ServiceInterface
}

// NewHandler - Constructor with DI
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ListBooks - GET /api/books
func (h *Handler) ListBooks(c *gin.Context) {
	books, err := h.service.ListBooks(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, model.ToResponses(books))
}

// GetBook - GET /api/books/:id
func (h *Handler) GetBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	book, err := h.service.GetBook(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, book.ToResponse())
}

// SearchBooks - GET /api/books/search?q=&field=
func (h *Handler) SearchBooks(c *gin.Context) {
	books, err := h.service.SearchBooks(c.Request.Context(), c.Query("q"), c.Query("field"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, model.ToResponses(books))
}

// CreateBook - POST /api/books
func (h *Handler) CreateBook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.respondError(c, model.Malformed(err))
		return
	}

	book, err := h.service.CreateBook(c.Request.Context(), body)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, book.ToResponse())
}

// UpdateBook - PUT /api/books/:id
func (h *Handler) UpdateBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		h.respondError(c, model.Malformed(err))
		return
	}

	book, err := h.service.UpdateBook(c.Request.Context(), id, body)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, book.ToResponse())
}

// DeleteBook - DELETE /api/books/:id
func (h *Handler) DeleteBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteBook(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	response.NoContent(c)
}

// parseID: id không phải số nguyên không âm -> 404 như route không tồn tại
func parseID(c *gin.Context) (int64, bool) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.NotFound(c, model.MsgResourceNotFound)
		return 0, false
	}
	return id, true
}

// respondError ghi đúng một response đã phân loại: "error" hoặc "errors"
func (h *Handler) respondError(c *gin.Context, err error) {
	out := model.Classify(err)

	if out.Category == model.CategoryInternalError {
		log.Error().
			Err(out.Cause).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.Request.URL.Path).
			Msg("Book request failed")
	}

	if out.Messages != nil {
		response.Errors(c, out.Status, out.Messages)
		return
	}
	response.Error(c, out.Status, out.Message)
}
