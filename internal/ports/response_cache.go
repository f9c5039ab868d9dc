package ports

import "context"

// Memoization of whole pipeline responses keyed by a normalized request hash.
// Values are opaque to the cache.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Close() error
}
