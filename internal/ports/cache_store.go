package ports

import (
	"context"
	"time"
)

// Generic key/value store with per-entry expiry backing the geocode and
// distance caches. Writes are last-writer-wins.
type CacheStore interface {
	// Return the value and true on hit; nil, false on miss or expiry.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
