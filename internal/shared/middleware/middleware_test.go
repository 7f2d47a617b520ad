package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"

	"book-catalog/pkg/jwt"
)

type stubResolver struct {
	claims *jwt.Claims
	err    error
}

func (s stubResolver) CurrentSession(context.Context, string) (*jwt.Claims, error) {
	return s.claims, s.err
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery())
	r.GET("/panic", func(*gin.Context) { panic("boom") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}

func TestRecovery_AfterWrite(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery())
	r.GET("/partial", func(c *gin.Context) {
		c.String(http.StatusOK, "partial")
		panic("late")
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/partial", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "partial", w.Body.String())
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = serve(r, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRequireSession(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(res SessionResolver) *gin.Engine {
		r := gin.New()
		r.GET("/books", RequireSession(res, "session", "/login"), func(c *gin.Context) {
			c.String(http.StatusOK, c.GetString("username"))
		})
		return r
	}

	// không có cookie
	w := serve(newRouter(stubResolver{}), httptest.NewRequest(http.MethodGet, "/books", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	withCookie := func() *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/books", nil)
		req.AddCookie(&http.Cookie{Name: "session", Value: "token"})
		return req
	}

	w = serve(newRouter(stubResolver{err: errors.New("expired")}), withCookie())
	assert.Equal(t, http.StatusFound, w.Code)

	w = serve(newRouter(stubResolver{claims: &jwt.Claims{UserID: 1, Username: "test_user"}}), withCookie())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test_user", w.Body.String())
}

func TestLoggerLevels(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	r := gin.New()
	r.Use(Logger("/health"))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Empty(t, buf.String())

	serve(r, httptest.NewRequest(http.MethodGet, "/missing?q=1", nil))
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"path":"/missing?q=1"`)
	assert.Contains(t, buf.String(), `"status":404`)
}
