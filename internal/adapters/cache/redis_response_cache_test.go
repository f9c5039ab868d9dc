package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newRedisCache(t *testing.T, ttl time.Duration) (*RedisResponseCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	c, err := NewRedisResponseCache(context.Background(), "redis://"+mr.Addr(), ttl, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c, mr
}

func TestRedisResponseCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t, time.Minute)

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)

	c.Set(ctx, "k", []byte(`{"routes":[]}`))

	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, `{"routes":[]}`, string(got))
	assert.True(t, mr.Exists(redisKeyPrefix+"k"))
}

func TestRedisResponseCacheExpires(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t, time.Minute)

	c.Set(ctx, "k", []byte("v"))
	assert.Equal(t, time.Minute, mr.TTL(redisKeyPrefix+"k"))

	mr.FastForward(time.Minute + time.Second)

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestRedisResponseCacheServerDown(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t, time.Minute)

	mr.Close()

	c.Set(ctx, "k", []byte("v"))
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestNewRedisResponseCacheBadURL(t *testing.T) {
	_, err := NewRedisResponseCache(context.Background(), "not-a-url", time.Minute, nil)
	assert.Error(t, err)
}
