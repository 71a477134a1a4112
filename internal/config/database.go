package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookshelf-backend/internal/infrastructure/database"
)

var sslModes = []interface{}{"disable", "allow", "prefer", "require", "verify-ca", "verify-full"}

// envParser reads typed DB_* variables. Unlike getEnvInt it does not swallow bad
// values: the first parse error is kept in err and later reads fall back to defaults.
type envParser struct {
	err error
}

func (p *envParser) int(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(key, err)
		return defaultValue
	}
	return value
}

func (p *envParser) duration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		p.fail(key, err)
		return defaultValue
	}
	return value
}

func (p *envParser) fail(key string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid %s: %w", key, err)
	}
}

// loadPostgres reads the pool settings used by STORE_DRIVER=postgres.
func loadPostgres() (database.DBConfig, error) {
	var env envParser
	pg := database.DBConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     env.int("DB_PORT", 5432),
		Username: getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		DBName:   getEnv("DB_NAME", "bookshelf"),
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
	return pg, env.err
}

// validatePostgres only runs for STORE_DRIVER=postgres.
func validatePostgres(pg *database.DBConfig) error {
	return validation.ValidateStruct(pg,
		validation.Field(&pg.Host, validation.Required),
		validation.Field(&pg.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&pg.DBName, validation.Required),
		validation.Field(&pg.SSLMode, validation.In(sslModes...)),
		validation.Field(&pg.MaxConns, validation.Required, validation.Min(1)),
		validation.Field(&pg.MinConns, validation.Min(0), validation.Max(int(pg.MaxConns))),
		validation.Field(&pg.MaxRetries, validation.Min(0)),
		validation.Field(&pg.ConnectTimeout, validation.Required),
	)
}
