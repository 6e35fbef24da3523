//go:build unit

package idempotency_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"jaac-backend/internal/infra/idempotency"
	"jaac-backend/internal/pkg/clock"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisGuard(t *testing.T) (*idempotency.RedisGuard, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return idempotency.NewRedisGuard(client, time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil))), mr
}

func TestRedisGuard(t *testing.T) {
	ctx := context.Background()

	t.Run("second acquire for the same key fails", func(t *testing.T) {
		g, mr := newRedisGuard(t)

		token, ok, err := g.Acquire(ctx, "cs_test_1:user")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.NotEmpty(t, token)

		_, ok, err = g.Acquire(ctx, "cs_test_1:user")
		require.NoError(t, err)
		assert.False(t, ok)

		assert.True(t, mr.Exists("jaac:confirmation:cs_test_1:user"))
		assert.Equal(t, time.Hour, mr.TTL("jaac:confirmation:cs_test_1:user"))
	})

	t.Run("release allows a retry", func(t *testing.T) {
		g, mr := newRedisGuard(t)

		token, ok, err := g.Acquire(ctx, "cs_test_2:admin")
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, g.Release(ctx, "cs_test_2:admin", token))
		assert.False(t, mr.Exists("jaac:confirmation:cs_test_2:admin"))

		_, ok, err = g.Acquire(ctx, "cs_test_2:admin")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("release does not drop another holder's mark", func(t *testing.T) {
		g, mr := newRedisGuard(t)
		require.NoError(t, mr.Set("jaac:confirmation:cs_test_3:user", "someone-else"))

		_, ok, err := g.Acquire(ctx, "cs_test_3:user")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, g.Release(ctx, "cs_test_3:user", "my-stale-token"))
		require.NoError(t, g.Release(ctx, "cs_test_3:user", ""))
		assert.True(t, mr.Exists("jaac:confirmation:cs_test_3:user"))
	})

	t.Run("expired mark can be reacquired", func(t *testing.T) {
		g, mr := newRedisGuard(t)
		_, ok, _ := g.Acquire(ctx, "cs_test_4:user")
		require.True(t, ok)

		mr.FastForward(2 * time.Hour)

		_, ok, err := g.Acquire(ctx, "cs_test_4:user")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("redis down", func(t *testing.T) {
		g, mr := newRedisGuard(t)
		mr.Close()

		_, _, err := g.Acquire(ctx, "cs_test_5:user")
		assert.Error(t, err)
	})

	t.Run("empty key", func(t *testing.T) {
		g, _ := newRedisGuard(t)
		_, _, err := g.Acquire(ctx, "")
		assert.ErrorIs(t, err, idempotency.ErrEmptyKey)
	})
}

func TestMemoryGuard(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewFixed(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	g := idempotency.NewMemoryGuard(clk, time.Hour)

	first, ok, err := g.Acquire(ctx, "cs_1:user")
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, _ = g.Acquire(ctx, "cs_1:user")
	assert.False(t, ok)

	clk.Advance(time.Hour)
	second, ok, _ := g.Acquire(ctx, "cs_1:user")
	assert.True(t, ok, "mark expires after ttl")

	require.NoError(t, g.Release(ctx, "cs_1:user", first))
	_, ok, _ = g.Acquire(ctx, "cs_1:user")
	assert.False(t, ok, "a stale token does not release the current mark")

	require.NoError(t, g.Release(ctx, "cs_1:user", second))
	_, ok, _ = g.Acquire(ctx, "cs_1:user")
	assert.True(t, ok)
}

func TestMemoryGuard_Concurrent(t *testing.T) {
	g := idempotency.NewMemoryGuard(clock.New(), time.Hour)

	var wins atomic.Int32
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok, _ := g.Acquire(context.Background(), "cs_same:user"); ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins.Load())
}
