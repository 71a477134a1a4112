package kv

import (
	"context"
	"errors"
)

// ErrClosed is returned by stores used after Close.
var ErrClosed = errors.New("kv store is closed")

// Store is the flat key/value persistence layer behind drafts and published books.
// Implementations: in-memory, SQLite, Redis, PostgreSQL and MinIO.
type Store interface {
	// Get returns the value stored under key.
	// A missing key is reported with found = false and a nil error.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set writes value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	Close() error
}

// UpdateFunc receives the current value (found = false when absent) and returns the value to write.
// Returning an error aborts the update without writing.
type UpdateFunc func(current string, found bool) (string, error)

// Updater is implemented by stores that can run a read-modify-write on one key atomically.
type Updater interface {
	Update(ctx context.Context, key string, fn UpdateFunc) error
}

// Update runs fn against key atomically when the store supports it, otherwise as a plain Get then Set.
// Callers that need the fallback to be safe must serialise access themselves.
func Update(ctx context.Context, s Store, key string, fn UpdateFunc) error {
	if u, ok := s.(Updater); ok {
		return u.Update(ctx, key, fn)
	}

	current, found, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	next, err := fn(current, found)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, next)
}
