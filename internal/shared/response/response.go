package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Các response của API là JSON phẳng: record/array khi thành công,
// {"error": "..."} hoặc {"errors": [...]} khi thất bại. Không bao giờ cả hai.

const (
	MsgInternalServerError = "Internal server error"
	MsgResourceNotFound    = "Resource not found"
)

// Success trả về data nguyên dạng (record, array, ...)
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Message responses: {"message": "..."}
func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}

// NoContent: 204, body rỗng
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error responses: {"error": "..."}
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

// Errors responses: {"errors": ["...", ...]}
func Errors(c *gin.Context, statusCode int, messages []string) {
	c.JSON(statusCode, gin.H{"errors": messages})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func InternalServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}
