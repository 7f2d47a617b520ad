package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"book-catalog/internal/domains/book/model"
	bookService "book-catalog/internal/domains/book/service"
	"book-catalog/internal/shared/response"
)

type BulkImportHandler struct {
	service bookService.BulkImportServiceInterface
}

func NewBulkImportHandler(service bookService.BulkImportServiceInterface) *BulkImportHandler {
	return &BulkImportHandler{service: service}
}

// ImportBooks - POST /api/books/import (multipart, field "file")
func (h *BulkImportHandler) ImportBooks(c *gin.Context) {
	// 1. Lấy file từ multipart form
	header, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, model.MsgImportFileRequired)
		return
	}

	file, err := header.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded file")
		response.BadRequest(c, model.MsgImportFileRequired)
		return
	}
	defer file.Close()

	log.Info().
		Str("file_name", header.Filename).
		Int64("file_size", header.Size).
		Msg("[BulkImportHandler] Received bulk import request")

	// 2. Gọi service (sync)
	result, err := h.service.ImportBooks(c.Request.Context(), header.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, bookService.ErrUnsupportedFileType):
			response.BadRequest(c, model.MsgUnsupportedFileType)
		case errors.Is(err, bookService.ErrMissingColumns):
			response.BadRequest(c, model.MsgImportMissingColumns)
		case errors.Is(err, bookService.ErrTooManyRows), errors.Is(err, bookService.ErrUnreadableFile):
			response.BadRequest(c, err.Error())
		default:
			log.Error().Err(err).Msg("Bulk import service error")
			response.InternalServerError(c, model.MsgInternal)
		}
		return
	}

	// 3. Trả về summary, từng dòng có status riêng
	response.Success(c, http.StatusOK, result)
}
