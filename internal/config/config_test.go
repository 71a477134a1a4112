package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf-backend/internal/infrastructure/database"
)

func Test_Load_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("READER_CHARS_PER_PAGE", "")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, DefaultCharsPerPage, cfg.Reader.CharsPerPage)
	assert.Equal(t, "bookshelf:", cfg.Redis.KeyPrefix)
}

func Test_Load_FromEnv(t *testing.T) {
	t.Setenv("STORE_DRIVER", "REDIS")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("READER_CHARS_PER_PAGE", "1200")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, DriverRedis, cfg.Store.Driver)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 1200, cfg.Reader.CharsPerPage)
	assert.True(t, cfg.MinIO.UseSSL)
}

func validPostgres() database.DBConfig {
	return database.DBConfig{
		Host:           "localhost",
		Port:           5432,
		DBName:         "bookshelf",
		SSLMode:        "disable",
		MaxConns:       10,
		MinConns:       1,
		ConnectTimeout: 10 * time.Second,
	}
}

func Test_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:    AppConfig{Environment: "development", Port: "8080"},
			Store:  StoreConfig{Driver: DriverSQLite, SQLitePath: "data/x.db"},
			MinIO:  MinIOConfig{Endpoint: "localhost:9000", Bucket: "bookshelf", SecretKey: "minioadmin"},
			Reader: ReaderConfig{CharsPerPage: 900},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.Store.Driver = "mongo" }, wantErr: true},
		{name: "bad port", mutate: func(c *Config) { c.App.Port = "http" }, wantErr: true},
		{name: "unknown environment", mutate: func(c *Config) { c.App.Environment = "qa" }, wantErr: true},
		{name: "zero chars per page", mutate: func(c *Config) { c.Reader.CharsPerPage = 0 }, wantErr: true},
		{name: "sqlite without path", mutate: func(c *Config) { c.Store.SQLitePath = "" }, wantErr: true},
		{name: "memory driver ignores sqlite path", mutate: func(c *Config) {
			c.Store.Driver = DriverMemory
			c.Store.SQLitePath = ""
		}},
		{name: "memory driver in production", mutate: func(c *Config) {
			c.App.Environment = "production"
			c.Store.Driver = DriverMemory
		}, wantErr: true},
		{name: "minio default secret in production", mutate: func(c *Config) {
			c.App.Environment = "production"
			c.Store.Driver = DriverMinIO
		}, wantErr: true},
		{name: "minio without bucket", mutate: func(c *Config) {
			c.Store.Driver = DriverMinIO
			c.MinIO.Bucket = ""
		}, wantErr: true},
		{name: "postgres", mutate: func(c *Config) {
			c.Store.Driver = DriverPostgres
			c.Store.Postgres = validPostgres()
		}},
		{name: "postgres without settings", mutate: func(c *Config) {
			c.Store.Driver = DriverPostgres
		}, wantErr: true},
		{name: "postgres min above max connections", mutate: func(c *Config) {
			c.Store.Driver = DriverPostgres
			c.Store.Postgres = validPostgres()
			c.Store.Postgres.MinConns = 20
		}, wantErr: true},
		{name: "postgres unknown sslmode", mutate: func(c *Config) {
			c.Store.Driver = DriverPostgres
			c.Store.Postgres = validPostgres()
			c.Store.Postgres.SSLMode = "sometimes"
		}, wantErr: true},
		{name: "sqlite ignores postgres settings", mutate: func(c *Config) {
			c.Store.Postgres.Port = 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_Load_Postgres(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DB_PORT", "5544")
	t.Setenv("DB_RETRY_DELAY", "250ms")
	t.Setenv("DB_MAX_CONNECTIONS", "")

	cfg, err := Load()

	require.NoError(t, err)
	pg := cfg.Store.Postgres
	assert.Equal(t, 5544, pg.Port)
	assert.Equal(t, 250*time.Millisecond, pg.RetryDelay)
	assert.Equal(t, 10*time.Second, pg.ConnectTimeout)
	assert.Equal(t, int32(10), pg.MaxConns)
	assert.Equal(t, "bookshelf", pg.DBName)
}

func Test_Load_PostgresInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "port", key: "DB_PORT", value: "not-a-port"},
		{name: "pool size", key: "DB_MAX_CONNECTIONS", value: "ten"},
		{name: "duration", key: "DB_CONNECT_TIMEOUT", value: "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func Test_EnvParser_KeepsFirstError(t *testing.T) {
	t.Setenv("DB_PORT", "x")
	t.Setenv("DB_RETRY_DELAY", "y")

	var env envParser
	port := env.int("DB_PORT", 5432)
	delay := env.duration("DB_RETRY_DELAY", time.Second)

	assert.Equal(t, 5432, port)
	assert.Equal(t, time.Second, delay)
	require.Error(t, env.err)
	assert.Contains(t, env.err.Error(), "DB_PORT")
}
