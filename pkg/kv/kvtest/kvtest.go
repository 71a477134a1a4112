// Package kvtest holds the behaviour every kv.Store backend must share.
package kvtest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf-backend/pkg/kv"
)

// Factory returns a fresh, empty store. The caller's cleanup closes it.
type Factory func(t *testing.T) kv.Store

// RunContract exercises the kv.Store contract against stores built by newStore.
func RunContract(t *testing.T, newStore Factory) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key is not found", func(t *testing.T) {
		s := newStore(t)

		v, found, err := s.Get(ctx, "draft_NOPE0000")

		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, v)
	})

	t.Run("set then get", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.Set(ctx, "draft_ABCD1234", `{"title":"A"}`))
		v, found, err := s.Get(ctx, "draft_ABCD1234")

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, `{"title":"A"}`, v)
	})

	t.Run("set overwrites", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.Set(ctx, "k", "one"))
		require.NoError(t, s.Set(ctx, "k", "two"))
		v, _, err := s.Get(ctx, "k")

		require.NoError(t, err)
		assert.Equal(t, "two", v)
	})

	t.Run("empty value is still found", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.Set(ctx, "empty", ""))
		v, found, err := s.Get(ctx, "empty")

		require.NoError(t, err)
		assert.True(t, found)
		assert.Empty(t, v)
	})

	t.Run("keys are independent", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.Set(ctx, "a", "1"))
		require.NoError(t, s.Set(ctx, "b", "2"))

		a, _, err := s.Get(ctx, "a")
		require.NoError(t, err)
		b, _, err := s.Get(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, "1", a)
		assert.Equal(t, "2", b)
	})

	t.Run("update creates and modifies", func(t *testing.T) {
		s := newStore(t)

		err := kv.Update(ctx, s, "counter", func(current string, found bool) (string, error) {
			assert.False(t, found)
			return "1", nil
		})
		require.NoError(t, err)

		err = kv.Update(ctx, s, "counter", func(current string, found bool) (string, error) {
			assert.True(t, found)
			return current + "+1", nil
		})
		require.NoError(t, err)

		v, _, err := s.Get(ctx, "counter")
		require.NoError(t, err)
		assert.Equal(t, "1+1", v)
	})

	t.Run("update error leaves value untouched", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "k", "keep"))
		boom := errors.New("boom")

		err := kv.Update(ctx, s, "k", func(string, bool) (string, error) {
			return "", boom
		})

		assert.ErrorIs(t, err, boom)
		v, _, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "keep", v)
	})

	t.Run("ping", func(t *testing.T) {
		s := newStore(t)
		assert.NoError(t, s.Ping(ctx))
	})
}

// RunConcurrentUpdates checks that Update does not lose writes. Only meaningful for kv.Updater stores.
func RunConcurrentUpdates(t *testing.T, newStore Factory, workers int) {
	t.Helper()
	ctx := context.Background()
	s := newStore(t)

	if _, ok := s.(kv.Updater); !ok {
		t.Skip("store does not implement kv.Updater")
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := kv.Update(ctx, s, "log", func(current string, _ bool) (string, error) {
				return current + fmt.Sprintf("[%d]", i), nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	v, _, err := s.Get(ctx, "log")
	require.NoError(t, err)
	for i := 0; i < workers; i++ {
		assert.Contains(t, v, fmt.Sprintf("[%d]", i))
	}
}
