package cache

import (
	"context"
	"fmt"
	"time"
)

// Backend names accepted by [Open].
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendNone   = "none"
)

// Options selects and configures a backend for [Open].
type Options struct {
	Backend  string        // one of the Backend* names; defaults to file
	Dir      string        // file backend directory
	Entries  int           // memory backend size
	TTL      time.Duration // memory backend cache-wide expiry
	RedisURL string
	MongoURI string
	Prefix   string // redis key prefix
}

// Open returns the backend named by opts.Backend.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendFile:
		if opts.Dir == "" {
			return nil, fmt.Errorf("file cache: directory not set")
		}
		return NewFileCache(opts.Dir)
	case BackendMemory:
		return NewMemoryCache(opts.Entries, opts.TTL), nil
	case BackendRedis:
		return NewRedisCache(ctx, RedisOptions{URL: opts.RedisURL, Prefix: opts.Prefix})
	case BackendMongo:
		return NewMongoCache(ctx, MongoOptions{URI: opts.MongoURI})
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
	}
}

// NullCache stores nothing. Every Get is a miss; it backs --no-cache and
// the "none" backend.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() *NullCache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error { return nil }
func (*NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
