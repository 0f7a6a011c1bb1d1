package cache

import (
	"context"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultMemoryEntries bounds a [MemoryCache] created with size 0.
const DefaultMemoryEntries = 4096

// MemoryCache is a bounded in-process LRU cache. Entries expire after the
// smaller of the cache-wide TTL and the TTL passed to Set.
type MemoryCache struct {
	lru    *lru.LRU[string, memoryEntry]
	closed atomic.Bool
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryCache creates an LRU cache holding at most size entries. A ttl
// of 0 disables the cache-wide expiry.
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	if size <= 0 {
		size = DefaultMemoryEntries
	}
	return &MemoryCache{lru: lru.NewLRU[string, memoryEntry](size, nil, ttl)}
}

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if c.closed.Load() {
		return nil, false, ErrClosed
	}
	e, ok := c.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		c.lru.Remove(key)
		return nil, false, nil
	}
	return e.data, true, nil
}

// Set stores a copy of data.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if c.closed.Load() {
		return ErrClosed
	}
	e := memoryEntry{data: append([]byte(nil), data...)}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	c.lru.Add(key, e)
	return nil
}

// Delete removes a value from the cache.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.lru.Remove(key)
	return nil
}

// Clear drops every entry.
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.lru.Purge()
	return nil
}

// Len returns the number of entries, including ones that have expired but
// were not yet evicted.
func (c *MemoryCache) Len() int { return c.lru.Len() }

// Close purges the cache; later calls fail with [ErrClosed].
func (c *MemoryCache) Close() error {
	c.closed.Store(true)
	c.lru.Purge()
	return nil
}

var (
	_ Cache   = (*MemoryCache)(nil)
	_ Clearer = (*MemoryCache)(nil)
)
