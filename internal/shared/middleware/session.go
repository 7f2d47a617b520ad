package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"book-catalog/pkg/jwt"
)

// SessionResolver resolve session cookie thành claims (nil error = session hợp lệ)
type SessionResolver interface {
	CurrentSession(ctx context.Context, token string) (*jwt.Claims, error)
}

// RequireSession bảo vệ các HTML pages: không có session hợp lệ -> redirect login
func RequireSession(resolver SessionResolver, cookieName, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		claims, err := resolver.CurrentSession(c.Request.Context(), token)
		if err != nil {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Next()
	}
}
