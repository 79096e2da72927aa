package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRedis connects to COMMERCE_TEST_REDIS_ADDR or skips.
func newTestRedis(t *testing.T) *RedisStore {
	t.Helper()
	addr := os.Getenv("COMMERCE_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("COMMERCE_TEST_REDIS_ADDR not set")
	}
	rc := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	t.Cleanup(func() {
		_ = rc.FlushDB(context.Background()).Err()
		_ = rc.Close()
	})
	require.NoError(t, rc.Ping(context.Background()).Err())
	return NewRedisStore(rc)
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	s := newTestRedis(t)

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.TTL(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "k", "v", time.Minute))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	ok, err := s.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	ttl, err := s.TTL(ctx, "k")
	require.NoError(t, err)
	assert.InDelta(t, time.Minute, ttl, float64(2*time.Second))

	require.NoError(t, s.Delete(ctx, "k"))
	ok, err = s.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStoreIncr(t *testing.T) {
	ctx := context.Background()
	s := newTestRedis(t)

	for i := int64(1); i <= 3; i++ {
		n, err := s.Incr(ctx, "counter", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}

	ttl, err := s.TTL(ctx, "counter")
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
