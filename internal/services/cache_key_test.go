package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheKeyNormalizesAddresses(t *testing.T) {
	a := CacheKey("San Francisco, CA", "Los Angeles, CA", nil)
	b := CacheKey("  san francisco, ca ", "LOS ANGELES, CA\n", nil)

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestCacheKeySameHour(t *testing.T) {
	at00 := time.Date(2026, 2, 16, 10, 0, 0, 0, time.UTC)
	at59 := time.Date(2026, 2, 16, 10, 59, 59, 0, time.UTC)

	assert.Equal(t, CacheKey("A", "B", &at00), CacheKey("A", "B", &at59))
}

func TestCacheKeyDistinguishes(t *testing.T) {
	at10 := time.Date(2026, 2, 16, 10, 0, 0, 0, time.UTC)
	at11 := time.Date(2026, 2, 16, 11, 0, 0, 0, time.UTC)

	base := CacheKey("A", "B", &at10)

	assert.NotEqual(t, base, CacheKey("A", "B", &at11))
	assert.NotEqual(t, base, CacheKey("B", "A", &at10))
	assert.NotEqual(t, base, CacheKey("A", "B", nil))
}
