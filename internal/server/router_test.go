package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-catalog/internal/config"
	"book-catalog/pkg/container"
)

func testConfig(driver string) *config.Config {
	return &config.Config{
		App:     config.AppConfig{Name: "Book Catalog", Environment: "test", Port: "0", Version: "test"},
		Storage: config.StorageConfig{Driver: driver, SQLitePath: ":memory:", AutoMigrate: true},
		Redis:   config.RedisConfig{BookTTL: time.Minute},
		Session: config.SessionConfig{Secret: "test-secret", CookieName: "session", TTL: time.Hour},
		Auth: config.AuthConfig{
			PasswordScheme: config.SchemePlaintext,
			SeedUsername:   "test_user",
			SeedPassword:   "test_pass123",
		},
		Features: config.FeatureConfig{FaultInjection: true},
	}
}

func newTestServer(t *testing.T, driver string) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, err := container.NewContainer(context.Background(), testConfig(driver))
	require.NoError(t, err)
	t.Cleanup(c.Cleanup)

	router, err := NewRouter(c)
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func request(t *testing.T, client *http.Client, method, url, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func TestRoutes(t *testing.T) {
	for _, driver := range []string{config.DriverMemory, config.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			srv := newTestServer(t, driver)
			client := newClient(t)

			resp, body := request(t, client, http.MethodGet, srv.URL+"/health", "")
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "ok", body["status"])

			resp, body = request(t, client, http.MethodGet, srv.URL+"/nope", "")
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			assert.Equal(t, "Resource not found", body["error"])

			resp, _ = request(t, client, http.MethodGet, srv.URL+"/", "")
			assert.Equal(t, http.StatusFound, resp.StatusCode)
			assert.Equal(t, "/login", resp.Header.Get("Location"))

			// /books cần session
			resp, _ = request(t, client, http.MethodGet, srv.URL+"/books", "")
			assert.Equal(t, http.StatusFound, resp.StatusCode)
			assert.Equal(t, "/login", resp.Header.Get("Location"))

			resp, body = request(t, client, http.MethodPost, srv.URL+"/login", `{"username":"test_user","password":"test_pass123"}`)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "Login successful", body["message"])

			resp, _ = request(t, client, http.MethodGet, srv.URL+"/books", "")
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			resp, created := request(t, client, http.MethodPost, srv.URL+"/api/books", `{"title":"Mama Mia","author":"John Doe","isbn":"5729134851528"}`)
			require.Equal(t, http.StatusCreated, resp.StatusCode)
			id := int64(created["id"].(float64))

			resp, got := request(t, client, http.MethodGet, srv.URL+"/api/books/"+itoa(id), "")
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "Mama Mia", got["title"])

			resp, _ = request(t, client, http.MethodPut, srv.URL+"/api/books/"+itoa(id), `{"title":"Mama Mia Two","author":"John Doe","isbn":"5729134851528"}`)
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			// cache phải bị invalidate sau update
			_, got = request(t, client, http.MethodGet, srv.URL+"/api/books/"+itoa(id), "")
			assert.Equal(t, "Mama Mia Two", got["title"])

			resp, _ = request(t, client, http.MethodDelete, srv.URL+"/api/books/"+itoa(id), "")
			assert.Equal(t, http.StatusNoContent, resp.StatusCode)

			resp, _ = request(t, client, http.MethodGet, srv.URL+"/api/books/"+itoa(id), "")
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)

			resp, body = request(t, client, http.MethodGet, srv.URL+"/logout", "")
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "Logged out successfully", body["message"])

			resp, body = request(t, client, http.MethodGet, srv.URL+"/logout", "")
			assert.Equal(t, http.StatusForbidden, resp.StatusCode)
			assert.Equal(t, "You are not logged in", body["error"])
		})
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestHealth_StorageDown(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, err := container.NewContainer(context.Background(), testConfig(config.DriverSQLite))
	require.NoError(t, err)
	t.Cleanup(c.Cleanup)

	router, err := NewRouter(c)
	require.NoError(t, err)

	require.NoError(t, c.SQLDB.Close())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body struct {
		Status   string            `json:"status"`
		Services map[string]string `json:"services"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.Contains(t, body.Services["storage"], "error")
	assert.Equal(t, "ok", body.Services["cache"])
}
