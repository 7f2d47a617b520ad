package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"book-catalog/internal/infrastructure/database"
)

// strictEnv đọc biến môi trường và giữ lại lỗi parse đầu tiên.
// Khác getEnvInt/getEnvDuration: giá trị sai không bị nuốt về default.
type strictEnv struct {
	err error
}

func (e *strictEnv) int(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" || e.err != nil {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		e.err = fmt.Errorf("invalid %s: %w", key, err)
		return def
	}
	return v
}

func (e *strictEnv) duration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" || e.err != nil {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		e.err = fmt.Errorf("invalid %s: %w", key, err)
		return def
	}
	return v
}

// LoadDatabaseConfig đọc pool config của PostgreSQL.
// DATABASE_URL (nếu có) thắng các biến DB_HOST/DB_PORT/...
func LoadDatabaseConfig() (*database.DBConfig, error) {
	env := &strictEnv{}

	cfg := &database.DBConfig{
		URL:      os.Getenv("DATABASE_URL"),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     env.int("DB_PORT", 5432),
		Username: getEnv("DB_USER", "catalog"),
		Password: getEnv("DB_PASSWORD", "secret"),
		DBName:   getEnv("DB_NAME", "book_catalog"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),

		MaxConns:          int32(env.int("DB_MAX_CONNECTIONS", 10)),
		MinConns:          int32(env.int("DB_MIN_CONNECTIONS", 1)),
		MaxConnLifetime:   env.duration("DB_MAX_CONN_LIFETIME", 5*time.Minute),
		MaxConnIdleTime:   env.duration("DB_MAX_CONN_IDLE_TIME", time.Minute),
		HealthCheckPeriod: env.duration("DB_HEALTH_CHECK_PERIOD", time.Minute),

		MaxRetries:     env.int("DB_MAX_RETRIES", 5),
		RetryDelay:     env.duration("DB_RETRY_DELAY", time.Second),
		ConnectTimeout: env.duration("DB_CONNECT_TIMEOUT", 10*time.Second),
	}
	if env.err != nil {
		return nil, env.err
	}

	if err := validateDatabaseConfig(cfg); err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	return cfg, nil
}

func validateDatabaseConfig(cfg *database.DBConfig) error {
	usingURL := cfg.URL != ""
	return validation.ValidateStruct(cfg,
		validation.Field(&cfg.Host, validation.When(!usingURL, validation.Required)),
		validation.Field(&cfg.Port, validation.When(!usingURL, validation.Required, validation.Max(65535))),
		validation.Field(&cfg.DBName, validation.When(!usingURL, validation.Required)),
		validation.Field(&cfg.SSLMode, validation.In("disable", "allow", "prefer", "require", "verify-ca", "verify-full")),
		validation.Field(&cfg.MaxConns, validation.Required, validation.Min(cfg.MinConns)),
		validation.Field(&cfg.MaxRetries, validation.Required, validation.Min(1)),
		validation.Field(&cfg.ConnectTimeout, validation.Required),
	)
}
