package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/depsolve/pkg/cache"
	"github.com/matzehuels/depsolve/pkg/httputil"
	"github.com/matzehuels/depsolve/pkg/observability"
)

const (
	httpTimeout = 10 * time.Second

	// DefaultCacheTTL is how long feed listings are cached.
	DefaultCacheTTL = 24 * time.Hour
)

// ClientOptions configures a [Client].
type ClientOptions struct {
	Cache    cache.Cache       // defaults to a null cache
	Keyer    cache.Keyer       // defaults to cache.NewDefaultKeyer()
	TTL      time.Duration     // defaults to DefaultCacheTTL
	Refresh  bool              // bypass cached entries, still write fresh ones
	Headers  map[string]string // sent with every request
	Attempts int               // retry attempts for transient failures, default 3
	HTTP     *http.Client      // defaults to an instrumented client
}

// WithDefaults returns a copy of o with zero values replaced by defaults.
func (o ClientOptions) WithDefaults() ClientOptions {
	if o.Cache == nil {
		o.Cache = cache.NewNullCache()
	}
	if o.Keyer == nil {
		o.Keyer = cache.NewDefaultKeyer()
	}
	if o.TTL <= 0 {
		o.TTL = DefaultCacheTTL
	}
	if o.Attempts <= 0 {
		o.Attempts = 3
	}
	if o.HTTP == nil {
		o.HTTP = httputil.NewClient(httpTimeout)
	}
	return o
}

// Client provides the shared HTTP plumbing of feed sources: caching, retry
// logic and common request headers.
type Client struct {
	opts  ClientOptions
	delay time.Duration
}

// NewClient creates a Client.
func NewClient(opts ClientOptions) *Client {
	return &Client{opts: opts.WithDefaults(), delay: time.Second}
}

// Cached returns the value stored under key, decoding it into v, or runs
// fetch with retries and stores the JSON encoding of v on success.
// Cache read and write failures are not fatal.
func (c *Client) Cached(ctx context.Context, key string, v any, fetch func() error) error {
	hooks := observability.Cache()
	if !c.opts.Refresh {
		data, ok, err := c.opts.Cache.Get(ctx, key)
		if err == nil && ok && json.Unmarshal(data, v) == nil {
			hooks.OnCacheHit(ctx, "feed")
			return nil
		}
		hooks.OnCacheMiss(ctx, "feed")
	}
	if err := httputil.Retry(ctx, c.opts.Attempts, c.delay, fetch); err != nil {
		return err
	}
	if data, err := json.Marshal(v); err == nil {
		if c.opts.Cache.Set(ctx, key, data, c.opts.TTL) == nil {
			hooks.OnCacheSet(ctx, "feed", len(data))
		}
	}
	return nil
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	body, err := c.doRequest(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range c.opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.opts.HTTP.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, httputil.Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
	}

	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(resp *http.Response) error {
	switch code := resp.StatusCode; {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusTooManyRequests || code >= 500:
		return httputil.RetryableResponse(resp, fmt.Errorf("%w: status %d", ErrNetwork, code))
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
