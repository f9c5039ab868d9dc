package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultResponseTTL      = 30 * time.Minute
	DefaultResponseCapacity = 100
)

// MemoryResponseCache is a bounded in-process TTL cache with least-recently-used eviction.
// Get refreshes recency; Set overwrites and restarts the entry's TTL. It is safe for concurrent use.
type MemoryResponseCache struct {
	ttl      time.Duration
	capacity int

	lru *expirable.LRU[string, []byte]
}

func NewMemoryResponseCache(ttl time.Duration, capacity int) *MemoryResponseCache {
	if ttl <= 0 {
		ttl = DefaultResponseTTL
	}
	if capacity <= 0 {
		capacity = DefaultResponseCapacity
	}
	return &MemoryResponseCache{
		ttl:      ttl,
		capacity: capacity,
		lru:      expirable.NewLRU[string, []byte](capacity, nil, ttl),
	}
}

// Get returns the stored value and marks it most recently used.
// Entries older than the TTL are reported as a miss.
func (c *MemoryResponseCache) Get(_ context.Context, key string) ([]byte, bool) {
	return c.lru.Get(key)
}

// Set stores value under key, evicting the least recently used entry beyond capacity.
func (c *MemoryResponseCache) Set(_ context.Context, key string, value []byte) {
	c.lru.Add(key, value)
}

func (c *MemoryResponseCache) Len() int {
	return c.lru.Len()
}

func (c *MemoryResponseCache) Close() error {
	c.lru.Purge()
	return nil
}
