package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisKeyPrefix = "route-weather:response:"

// RedisResponseCache stores responses in Redis with a per-key expiry equal to the TTL.
// Capacity-based eviction is left to the server's maxmemory policy (allkeys-lru).
//
// Errors are logged and reported as misses; the cache never fails a request.
type RedisResponseCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisResponseCache connects to the Redis server at url (redis://...) and verifies it with PING.
func NewRedisResponseCache(ctx context.Context, url string, ttl time.Duration, log *zap.Logger) (*RedisResponseCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis cache: parse url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis cache: ping: %w", err)
	}

	return NewRedisResponseCacheFromClient(client, ttl, log), nil
}

func NewRedisResponseCacheFromClient(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisResponseCache {
	if ttl <= 0 {
		ttl = DefaultResponseTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisResponseCache{client: client, ttl: ttl, log: log}
}

func (c *RedisResponseCache) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("redis cache get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return b, true
}

func (c *RedisResponseCache) Set(ctx context.Context, key string, value []byte) {
	if err := c.client.Set(ctx, redisKeyPrefix+key, value, c.ttl).Err(); err != nil {
		c.log.Warn("redis cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *RedisResponseCache) Close() error {
	return c.client.Close()
}
