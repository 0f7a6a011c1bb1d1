// Package cache provides the byte cache used by the feed client.
//
// Every backend implements [Cache]: a key/value store of raw bytes with a
// per-entry time-to-live. Values are opaque; the feed client stores JSON
// version listings. Keys come from a [Keyer] so that backends shared between
// processes agree on the layout.
//
// Backends:
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [MemoryCache]: bounded LRU, used by the server when nothing else is configured
//   - [RedisCache] and [MongoCache]: shared caches for multi-instance servers
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"time"
)

// Cache stores raw bytes under string keys.
//
// Get reports a miss as (nil, false, nil); an error means the backend itself
// failed. A ttl of 0 passed to Set means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}
