package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
//
// Get reports a miss as (nil, false, nil); an error means the backend
// failed, not that the key is absent. A ttl of zero means no expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Default TTLs by entry kind.
const (
	// TTLGraph applies to imported graphs keyed by file content.
	TTLGraph = 24 * time.Hour
	// TTLDOT applies to generated DOT documents.
	TTLDOT = 7 * 24 * time.Hour
)
