package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	pkgdb "bookshelf-backend/pkg/database"
	"bookshelf-backend/pkg/kv"
)

// DefaultKVTable is the table used when none is configured.
const DefaultKVTable = "kv_entries"

// KVStore is a kv.Store over a single PostgreSQL table.
type KVStore struct {
	pool  *pgxpool.Pool
	table string // already sanitized
}

// NewKVStore creates the table if needed.
func NewKVStore(ctx context.Context, pool *pgxpool.Pool, table string) (*KVStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}
	if table == "" {
		table = DefaultKVTable
	}

	s := &KVStore{pool: pool, table: pgx.Identifier{table}.Sanitize()}

	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`, s.table)
	if _, err := pool.Exec(ctx, ddl); err != nil {
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}

	return s, nil
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (s *KVStore) get(ctx context.Context, q querier, key string) (string, bool, error) {
	var value string
	err := q.QueryRow(ctx, fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, s.table), key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("postgres get %q: %w", key, err)
	}
	return value, true, nil
}

func (s *KVStore) upsertSQL() string {
	return fmt.Sprintf(`INSERT INTO %s (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`, s.table)
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	return s.get(ctx, s.pool, key)
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if _, err := s.pool.Exec(ctx, s.upsertSQL(), key, value); err != nil {
		return fmt.Errorf("postgres set %q: %w", key, err)
	}
	return nil
}

// Update holds a transaction-scoped advisory lock on the key, so it also serialises
// writers creating a key that does not exist yet.
func (s *KVStore) Update(ctx context.Context, key string, fn kv.UpdateFunc) error {
	return pkgdb.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
			return fmt.Errorf("postgres lock %q: %w", key, err)
		}

		current, found, err := s.get(ctx, tx, key)
		if err != nil {
			return err
		}

		next, err := fn(current, found)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, s.upsertSQL(), key, next); err != nil {
			return fmt.Errorf("postgres set %q: %w", key, err)
		}
		return nil
	})
}

func (s *KVStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close is a no-op; the pool belongs to PostgresDB.
func (s *KVStore) Close() error {
	return nil
}
