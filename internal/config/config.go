package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"bookshelf-backend/internal/infrastructure/database"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverMinIO    = "minio"
)

// DefaultCharsPerPage is the reader page budget when READER_CHARS_PER_PAGE is unset.
const DefaultCharsPerPage = 900

// Config holds the whole application configuration, populated from environment variables.
type Config struct {
	App    AppConfig
	Store  StoreConfig
	Redis  RedisConfig
	MinIO  MinIOConfig
	Reader ReaderConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

type StoreConfig struct {
	Driver     string // memory, sqlite, redis, postgres, minio
	SQLitePath string
	PGTable    string
	Postgres   database.DBConfig
}

type RedisConfig struct {
	Host      string
	Password  string
	DB        int
	KeyPrefix string
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Prefix    string
}

type ReaderConfig struct {
	CharsPerPage int
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Bookshelf API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Store: StoreConfig{
			Driver:     strings.ToLower(getEnv("STORE_DRIVER", DriverSQLite)),
			SQLitePath: getEnv("SQLITE_PATH", "data/bookshelf.db"),
			PGTable:    getEnv("DB_KV_TABLE", "kv_entries"),
		},
		Redis: RedisConfig{
			Host:      getEnv("REDIS_HOST", "localhost:6379"),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        getEnvInt("REDIS_DB", 0),
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "bookshelf:"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "bookshelf"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			Prefix:    getEnv("MINIO_PREFIX", ""),
		},
		Reader: ReaderConfig{
			CharsPerPage: getEnvInt("READER_CHARS_PER_PAGE", DefaultCharsPerPage),
		},
	}

	pg, err := loadPostgres()
	if err != nil {
		return nil, fmt.Errorf("failed to load postgres config: %w", err)
	}
	cfg.Store.Postgres = pg

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration. Production must not run on the default MinIO credentials
// or an in-memory store.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(&c.App,
		validation.Field(&c.App.Environment, validation.Required,
			validation.In("development", "staging", "production", "test")),
		validation.Field(&c.App.Port, validation.Required, is.Port),
	)
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}

	err = validation.ValidateStruct(&c.Store,
		validation.Field(&c.Store.Driver, validation.Required,
			validation.In(DriverMemory, DriverSQLite, DriverRedis, DriverPostgres, DriverMinIO)),
		validation.Field(&c.Store.SQLitePath, validation.When(c.Store.Driver == DriverSQLite, validation.Required)),
	)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}

	if c.Store.Driver == DriverPostgres {
		if err := validatePostgres(&c.Store.Postgres); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
	}

	err = validation.ValidateStruct(&c.Reader,
		validation.Field(&c.Reader.CharsPerPage, validation.Required, validation.Min(1)),
	)
	if err != nil {
		return fmt.Errorf("reader: %w", err)
	}

	if c.Store.Driver == DriverMinIO {
		err = validation.ValidateStruct(&c.MinIO,
			validation.Field(&c.MinIO.Endpoint, validation.Required),
			validation.Field(&c.MinIO.Bucket, validation.Required, validation.Length(3, 63)),
		)
		if err != nil {
			return fmt.Errorf("minio: %w", err)
		}
	}

	if c.App.Environment == "production" {
		if c.Store.Driver == DriverMemory {
			return fmt.Errorf("STORE_DRIVER=memory is not allowed in production")
		}
		if c.Store.Driver == DriverMinIO && c.MinIO.SecretKey == "minioadmin" {
			return fmt.Errorf("MINIO_SECRET_KEY must be set in production")
		}
	}

	return nil
}

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
