package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-catalog/internal/domains/user/repository"
	"book-catalog/internal/domains/user/service"
	"book-catalog/internal/web"
	"book-catalog/pkg/cache"
	"book-catalog/pkg/jwt"
)

const cookieName = "session"

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := service.NewUserService(
		repository.NewMemoryRepository(),
		service.PlaintextVerifier{},
		jwt.NewManager("test-secret", time.Hour),
		cache.NewMemoryCache(),
	)
	require.NoError(t, svc.EnsureUser(context.Background(), "test_user", "test_pass123"))

	h := NewAuthHandler(svc, CookieConfig{Name: cookieName, MaxAge: time.Hour})

	r := gin.New()
	r.SetHTMLTemplate(web.MustTemplates())
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)
	return r
}

func postJSON(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postForm(r http.Handler, username, password string) *httptest.ResponseRecorder {
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	return nil
}

func jsonField(t *testing.T, w *httptest.ResponseRecorder, key string) string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out[key]
}

func TestLoginJSON(t *testing.T) {
	r := newAuthRouter(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantKey    string
		wantMsg    string
	}{
		{"valid", `{"username":"test_user","password":"test_pass123"}`, 200, "message", "Login successful"},
		{"wrong password", `{"username":"test_user","password":"test_pass"}`, 401, "error", "Invalid password"},
		{"unknown user", `{"username":"test_user333","password":"test_pass123"}`, 401, "error", "Invalid username"},
		{"empty username", `{"username":"","password":"test_pass123"}`, 400, "error", "Username and password are required"},
		{"empty password", `{"username":"test_user","password":""}`, 400, "error", "Username and password are required"},
		{"both empty", `{"username":"","password":""}`, 400, "error", "Username and password are required"},
		{"broken body", `{"username":`, 400, "error", "Username and password are required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(r, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantMsg, jsonField(t, w, tt.wantKey))
			if tt.wantStatus == http.StatusOK {
				c := sessionCookie(w)
				require.NotNil(t, c)
				assert.True(t, c.HttpOnly)
				assert.NotEmpty(t, c.Value)
			} else {
				assert.Nil(t, sessionCookie(w))
			}
		})
	}
}

func TestLoginForm(t *testing.T) {
	r := newAuthRouter(t)

	tests := []struct {
		username, password string
		wantError          string
	}{
		{"", "", "Username and password are required"},
		{"", "test_pass123", "Username is required"},
		{"test_user", "", "Password is required"},
		{"   ", "  ", "Username and password are required"},
		{"nobody", "test_pass123", "Username not found"},
		{"test_user", "wrong", "Incorrect password"},
	}

	for _, tt := range tests {
		w := postForm(r, tt.username, tt.password)
		require.Equal(t, http.StatusOK, w.Code)

		doc, err := goquery.NewDocumentFromReader(w.Body)
		require.NoError(t, err)
		assert.Equal(t, tt.wantError, strings.TrimSpace(doc.Find(".error-message").Text()))
	}

	w := postForm(r, " test_user ", "test_pass123")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/books", w.Header().Get("Location"))
	assert.NotNil(t, sessionCookie(w))
}

func TestLoginPage(t *testing.T) {
	r := newAuthRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
	require.Equal(t, http.StatusOK, w.Code)

	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("#username").Length())
	assert.Equal(t, 1, doc.Find("#password").Length())
	assert.Equal(t, 1, doc.Find("button[type='submit']").Length())
	assert.Equal(t, 0, doc.Find(".error-message").Length())
}

func TestLogout(t *testing.T) {
	r := newAuthRouter(t)

	logout := func(c *http.Cookie) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/logout", nil)
		if c != nil {
			req.AddCookie(c)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := logout(nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "You are not logged in", jsonField(t, w, "error"))

	login := postJSON(r, `{"username":"test_user","password":"test_pass123"}`)
	require.Equal(t, http.StatusOK, login.Code)
	c := sessionCookie(login)
	require.NotNil(t, c)

	w = logout(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Logged out successfully", jsonField(t, w, "message"))
	cleared := sessionCookie(w)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)

	// token cũ đã bị revoke
	w = logout(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
