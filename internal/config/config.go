package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"

	SchemePlaintext = "plaintext"
	SchemeBcrypt    = "bcrypt"

	defaultSessionSecret = "change-me-session-secret"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App      AppConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Session  SessionConfig
	Auth     AuthConfig
	Features FeatureConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, test, production
	Port        string
	Version     string
}

// StorageConfig chọn backend cho books/users.
// Pool settings của PostgreSQL nằm ở LoadDatabaseConfig.
type StorageConfig struct {
	Driver      string // postgres, sqlite, memory
	SQLitePath  string
	AutoMigrate bool
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Password string
	DB       int
	BookTTL  time.Duration // cache-aside TTL cho GET /api/books/:id
}

type SessionConfig struct {
	Secret     string
	CookieName string
	TTL        time.Duration
	Secure     bool
}

type AuthConfig struct {
	PasswordScheme string // plaintext, bcrypt
	SeedUsername   string
	SeedPassword   string
}

// FeatureConfig chứa các test hooks
type FeatureConfig struct {
	FaultInjection bool // title "trigger_error" trên update -> 500
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Book Catalog"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "5000"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Storage: StorageConfig{
			Driver:      strings.ToLower(getEnv("STORAGE_DRIVER", DriverSQLite)),
			SQLitePath:  getEnv("SQLITE_PATH", "books.db"),
			AutoMigrate: getEnvBool("STORAGE_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			BookTTL:  getEnvDuration("REDIS_BOOK_TTL", 5*time.Minute),
		},
		Session: SessionConfig{
			Secret:     getEnv("SESSION_SECRET", defaultSessionSecret),
			CookieName: getEnv("SESSION_COOKIE_NAME", "session"),
			TTL:        getEnvDuration("SESSION_TTL", 24*time.Hour),
			Secure:     getEnvBool("SESSION_COOKIE_SECURE", false),
		},
		Auth: AuthConfig{
			PasswordScheme: strings.ToLower(getEnv("PASSWORD_SCHEME", SchemePlaintext)),
			SeedUsername:   getEnv("SEED_USERNAME", "test_user"),
			SeedPassword:   getEnv("SEED_PASSWORD", "test_pass123"),
		},
		Features: FeatureConfig{
			FaultInjection: getEnvBool("FAULT_INJECTION_ENABLED", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(&c.Storage,
		validation.Field(&c.Storage.Driver, validation.Required, validation.In(DriverPostgres, DriverSQLite, DriverMemory)),
		validation.Field(&c.Storage.SQLitePath, validation.When(c.Storage.Driver == DriverSQLite, validation.Required)),
	); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	if err := validation.ValidateStruct(&c.Session,
		validation.Field(&c.Session.Secret, validation.Required),
		validation.Field(&c.Session.CookieName, validation.Required),
		validation.Field(&c.Session.TTL, validation.Required, validation.Min(time.Minute)),
	); err != nil {
		return fmt.Errorf("session: %w", err)
	}

	if err := validation.ValidateStruct(&c.Auth,
		validation.Field(&c.Auth.PasswordScheme, validation.Required, validation.In(SchemePlaintext, SchemeBcrypt)),
		validation.Field(&c.Auth.SeedUsername, validation.Required),
		validation.Field(&c.Auth.SeedPassword, validation.Required),
	); err != nil {
		return fmt.Errorf("auth: %w", err)
	}

	if err := validation.ValidateStruct(&c.Redis,
		validation.Field(&c.Redis.Host, validation.When(c.Redis.Enabled, validation.Required)),
	); err != nil {
		return fmt.Errorf("redis: %w", err)
	}

	// Production environment phải có session secret riêng
	if c.App.Environment == "production" {
		if c.Session.Secret == defaultSessionSecret {
			return fmt.Errorf("SESSION_SECRET must be set in production")
		}
		if c.Features.FaultInjection {
			log.Warn().Msg("FAULT_INJECTION_ENABLED is on in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
