package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf-backend/pkg/kv"
	"bookshelf-backend/pkg/kv/kvtest"
)

func newTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	s := NewRedisStore(mr.Addr(), "", 0, "bookshelf:")
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func Test_RedisStore_Contract(t *testing.T) {
	kvtest.RunContract(t, func(t *testing.T) kv.Store {
		s, _ := newTestRedis(t)
		return s
	})
}

func Test_RedisStore_ConcurrentUpdates(t *testing.T) {
	kvtest.RunConcurrentUpdates(t, func(t *testing.T) kv.Store {
		s, _ := newTestRedis(t)
		return s
	}, 10)
}

func Test_RedisStore_UsesPrefix(t *testing.T) {
	s, mr := newTestRedis(t)

	require.NoError(t, s.Set(context.Background(), "publishedBooks", "[]"))

	v, err := mr.Get("bookshelf:publishedBooks")
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
	assert.False(t, mr.Exists("publishedBooks"))
}

func Test_RedisStore_Connect(t *testing.T) {
	s, mr := newTestRedis(t)
	require.NoError(t, s.Connect(context.Background()))

	mr.Close()
	assert.Error(t, s.Connect(context.Background()))
}
