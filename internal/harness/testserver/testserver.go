// Package testserver chạy catalog in-process (httptest) cho các harness tests
package testserver

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"book-catalog/internal/config"
	"book-catalog/internal/server"
	"book-catalog/pkg/container"
)

// Config: storage in-memory, seed user mặc định, fault injection bật
func Config(driver string) *config.Config {
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

// Start build container + router và serve qua httptest; đóng khi test kết thúc
func Start(t testing.TB, cfg *config.Config) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, err := container.NewContainer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(c.Cleanup)

	router, err := server.NewRouter(c)
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}
