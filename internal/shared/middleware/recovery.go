package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"book-catalog/internal/shared/response"
)

// Recovery bắt panic trong handler và trả 500 dạng {"error": ...}.
// http.ErrAbortHandler được panic lại để net/http cắt kết nối.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			log.Error().
				Str("request_id", c.GetString("request_id")).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Interface("error", rec).
				Bytes("stack", debug.Stack()).
				Msg("Panic recovered")

			// Header đã gửi thì không ghi body được nữa
			if c.Writer.Written() {
				c.Abort()
				return
			}
			response.InternalServerError(c, response.MsgInternalServerError)
			c.Abort()
		}()

		c.Next()
	}
}
