// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about resolution runs, feed lookups, cache operations and
// HTTP calls.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, never by libraries, so the resolver core
// stays free of any metrics backend. [Metrics] is the Prometheus
// implementation used by the serve command.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    m := observability.NewMetrics(prometheus.NewRegistry())
//	    observability.SetResolverHooks(m)
//	    observability.SetCacheHooks(m)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Resolver().OnResolveStart(ctx, required)
//	// ... resolve ...
//	observability.Resolver().OnResolveComplete(ctx, groups, packages, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Resolver Hooks
// =============================================================================

// ResolverHooks receives events from dependency resolution.
type ResolverHooks interface {
	// OnResolveStart records the start of a resolution with the number of
	// required packages.
	OnResolveStart(ctx context.Context, required int)

	// OnResolveComplete records the end of a resolution. groups is the number
	// of candidate groups searched; packages the size of the install set.
	OnResolveComplete(ctx context.Context, groups, packages int, duration time.Duration, err error)
}

// =============================================================================
// Feed Hooks
// =============================================================================

// FeedHooks receives events from package feed lookups.
type FeedHooks interface {
	// OnLookup records a single version listing fetched from a source.
	OnLookup(ctx context.Context, source, pkg string, versions int, duration time.Duration, err error)

	// OnGatherComplete records the end of a universe crawl.
	OnGatherComplete(ctx context.Context, packages, candidates int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopResolverHooks is a no-op implementation of ResolverHooks.
type NoopResolverHooks struct{}

func (NoopResolverHooks) OnResolveStart(context.Context, int)                               {}
func (NoopResolverHooks) OnResolveComplete(context.Context, int, int, time.Duration, error) {}

// NoopFeedHooks is a no-op implementation of FeedHooks.
type NoopFeedHooks struct{}

func (NoopFeedHooks) OnLookup(context.Context, string, string, int, time.Duration, error) {}
func (NoopFeedHooks) OnGatherComplete(context.Context, int, int, time.Duration, error)    {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	resolverHooks ResolverHooks = NoopResolverHooks{}
	feedHooks     FeedHooks     = NoopFeedHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetResolverHooks registers custom resolver hooks.
// This should be called once at application startup before any resolution.
func SetResolverHooks(h ResolverHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		resolverHooks = h
	}
}

// SetFeedHooks registers custom feed hooks.
func SetFeedHooks(h FeedHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		feedHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Resolver returns the registered resolver hooks.
func Resolver() ResolverHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return resolverHooks
}

// Feed returns the registered feed hooks.
func Feed() FeedHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return feedHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	resolverHooks = NoopResolverHooks{}
	feedHooks = NoopFeedHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
