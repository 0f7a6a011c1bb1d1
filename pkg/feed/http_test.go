package feed

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/depsolve/pkg/cache"
	deperrors "github.com/matzehuels/depsolve/pkg/errors"
	"github.com/matzehuels/depsolve/pkg/httputil"
)

func feedServer(t *testing.T, listings map[string]Listing, failures int32) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		if n <= failures {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		for id, l := range listings {
			if r.URL.Path == "/"+id+"/index.json" {
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(l)
				return
			}
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newTestSource(t *testing.T, url string, opts ClientOptions) *HTTPSource {
	t.Helper()
	src, err := NewHTTPSource("test", url, opts)
	require.NoError(t, err)
	src.client.delay = time.Millisecond
	return src
}

var logListing = Listing{ID: "Log", Versions: []ListingVersion{
	{Version: "1.0.0"},
	{Version: "1.4.0", Dependencies: []ListingDependency{{ID: "fmt", Range: "1.0"}}},
}}

func TestHTTPSourceVersions(t *testing.T) {
	srv, _ := feedServer(t, map[string]Listing{"log": logListing}, 0)
	src := newTestSource(t, srv.URL+"/", ClientOptions{})

	cands, err := src.Versions(context.Background(), "LOG")
	require.NoError(t, err)
	require.Len(t, cands, 2)
	assert.Equal(t, "Log 1.4.0", cands[1].String())
	assert.Equal(t, "fmt (≥ 1.0.0)", cands[1].Dependencies[0].String())
}

func TestHTTPSourceNotFound(t *testing.T) {
	srv, calls := feedServer(t, nil, 0)
	src := newTestSource(t, srv.URL, ClientOptions{})

	_, err := src.Versions(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int32(1), calls.Load(), "404 must not be retried")
}

func TestHTTPSourceRetriesServerErrors(t *testing.T) {
	srv, calls := feedServer(t, map[string]Listing{"log": logListing}, 2)
	src := newTestSource(t, srv.URL, ClientOptions{})

	cands, err := src.Versions(context.Background(), "log")
	require.NoError(t, err)
	assert.Len(t, cands, 2)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPSourceGivesUpAfterAttempts(t *testing.T) {
	srv, calls := feedServer(t, nil, 100)
	src := newTestSource(t, srv.URL, ClientOptions{Attempts: 2})

	_, err := src.Versions(context.Background(), "log")
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPSourceUsesCache(t *testing.T) {
	srv, calls := feedServer(t, map[string]Listing{"log": logListing}, 0)
	c := cache.NewMemoryCache(16, 0)
	src := newTestSource(t, srv.URL, ClientOptions{Cache: c})
	ctx := context.Background()

	_, err := src.Versions(ctx, "log")
	require.NoError(t, err)
	cands, err := src.Versions(ctx, "Log")
	require.NoError(t, err)

	assert.Len(t, cands, 2)
	assert.Equal(t, int32(1), calls.Load(), "second lookup should be served from cache")

	refresh := newTestSource(t, srv.URL, ClientOptions{Cache: c, Refresh: true})
	_, err = refresh.Versions(ctx, "log")
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load(), "refresh must bypass the cache")
}

func TestHTTPSourceRejectsUnsafeInput(t *testing.T) {
	_, err := NewHTTPSource("", "ftp://feed.example", ClientOptions{})
	assert.True(t, deperrors.Is(err, deperrors.ErrCodeInvalidInput))

	src := newTestSource(t, "http://feed.example", ClientOptions{})
	_, err = src.Versions(context.Background(), "../etc")
	assert.True(t, deperrors.Is(err, deperrors.ErrCodeInvalidPackage))
}

func TestHTTPSourceDefaultName(t *testing.T) {
	src, err := NewHTTPSource("", "https://feed.example/v3", ClientOptions{})
	require.NoError(t, err)
	assert.Equal(t, "feed.example", src.Name())
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		code       int
		retryAfter string
		want       error
		retryable  bool
		wantAfter  time.Duration
	}{
		{http.StatusOK, "", nil, false, 0},
		{http.StatusNotFound, "", ErrNotFound, false, 0},
		{http.StatusTooManyRequests, "7", ErrNetwork, true, 7 * time.Second},
		{http.StatusServiceUnavailable, "soon", ErrNetwork, true, 0},
		{http.StatusBadGateway, "", ErrNetwork, true, 0},
		{http.StatusForbidden, "", ErrNetwork, false, 0},
	}
	for _, tt := range tests {
		resp := &http.Response{StatusCode: tt.code, Header: http.Header{}}
		if tt.retryAfter != "" {
			resp.Header.Set("Retry-After", tt.retryAfter)
		}
		err := checkStatus(resp)
		if !errors.Is(err, tt.want) && !(err == nil && tt.want == nil) {
			t.Errorf("checkStatus(%d) = %v, want %v", tt.code, err, tt.want)
		}
		if got := httputil.IsRetryable(err); got != tt.retryable {
			t.Errorf("checkStatus(%d) retryable = %v, want %v", tt.code, got, tt.retryable)
		}
		var re *httputil.RetryableError
		if errors.As(err, &re) && re.After != tt.wantAfter {
			t.Errorf("checkStatus(%d) after = %v, want %v", tt.code, re.After, tt.wantAfter)
		}
	}
}
