package observability

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRecordsResolutions(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	ctx := context.Background()

	m.OnResolveComplete(ctx, 4, 3, time.Millisecond, nil)
	m.OnResolveComplete(ctx, 4, 0, time.Millisecond, errors.New("unsatisfiable"))
	m.OnResolveComplete(ctx, 2, 2, time.Millisecond, nil)

	if got := testutil.ToFloat64(m.ResolutionsTotal.WithLabelValues("ok")); got != 2 {
		t.Errorf("ok resolutions = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.ResolutionsTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("error resolutions = %v, want 1", got)
	}
}

func TestMetricsRecordsCacheAndHTTP(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	ctx := context.Background()

	m.OnCacheHit(ctx, "http")
	m.OnCacheHit(ctx, "http")
	m.OnCacheMiss(ctx, "http")
	m.OnCacheSet(ctx, "http", 512)
	m.OnResponse(ctx, "GET", "feed.example.com", "/a/index.json", 200, time.Millisecond)
	m.OnError(ctx, "GET", "feed.example.com", "/b/index.json", errors.New("refused"))
	m.OnLookup(ctx, "primary", "a", 3, time.Millisecond, nil)

	checks := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"hits", m.CacheHitsTotal.WithLabelValues("http"), 2},
		{"misses", m.CacheMissesTotal.WithLabelValues("http"), 1},
		{"bytes", m.CacheSetBytes.WithLabelValues("http"), 512},
		{"requests", m.HTTPRequestsTotal.WithLabelValues("GET", "feed.example.com", "200"), 1},
		{"errors", m.HTTPErrorsTotal.WithLabelValues("GET", "feed.example.com"), 1},
		{"lookups", m.FeedLookupsTotal.WithLabelValues("primary", "ok"), 1},
	}
	for _, c := range checks {
		if got := testutil.ToFloat64(c.c); got != c.want {
			t.Errorf("%s = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.OnResolveComplete(context.Background(), 1, 1, time.Millisecond, nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "depsolve_resolutions_total") {
		t.Errorf("metrics output missing depsolve_resolutions_total:\n%s", body)
	}
}

func TestMetricsInstall(t *testing.T) {
	defer Reset()
	m := NewMetrics(prometheus.NewRegistry())
	m.Install()

	if Resolver() != ResolverHooks(m) {
		t.Error("Install should register resolver hooks")
	}
	if Cache() != CacheHooks(m) {
		t.Error("Install should register cache hooks")
	}
}
