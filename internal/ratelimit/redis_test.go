package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client), mr
}

func TestRedisStore_CountsWithinWindow(t *testing.T) {
	store, _ := setupRedisStore(t)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		n, err := store.Incr(ctx, "1.2.3.4", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}

	n, err := store.Incr(ctx, "5.6.7.8", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRedisStore_SetsWindowTTL(t *testing.T) {
	store, mr := setupRedisStore(t)
	ctx := context.Background()

	_, err := store.Incr(ctx, "1.2.3.4", time.Minute)
	require.NoError(t, err)

	ttl := mr.TTL(redisKeyPrefix + "1.2.3.4")
	assert.Equal(t, time.Minute, ttl)

	// subsequent hits must not extend the window
	mr.FastForward(30 * time.Second)
	_, err = store.Incr(ctx, "1.2.3.4", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, mr.TTL(redisKeyPrefix+"1.2.3.4"))
}

func TestRedisStore_WindowExpiry(t *testing.T) {
	store, mr := setupRedisStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.Incr(ctx, "1.2.3.4", time.Minute)
		require.NoError(t, err)
	}

	mr.FastForward(61 * time.Second)

	n, err := store.Incr(ctx, "1.2.3.4", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
