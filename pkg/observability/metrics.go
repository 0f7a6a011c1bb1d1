package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics implements every hook interface on top of Prometheus collectors.
type Metrics struct {
	ResolutionsTotal   *prometheus.CounterVec
	ResolutionDuration prometheus.Histogram
	ResolutionGroups   prometheus.Histogram
	InstallSetSize     prometheus.Histogram

	FeedLookupsTotal   *prometheus.CounterVec
	FeedLookupDuration *prometheus.HistogramVec
	GatheredPackages   prometheus.Histogram

	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec
	CacheSetBytes    *prometheus.CounterVec

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPErrorsTotal     *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates the collectors and registers them on registry.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		ResolutionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "depsolve_resolutions_total",
				Help: "Total number of resolutions by outcome",
			},
			[]string{"status"},
		),
		ResolutionDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "depsolve_resolution_duration_seconds",
				Help:    "Resolution duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		ResolutionGroups: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "depsolve_resolution_groups",
				Help:    "Number of candidate groups searched per resolution",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		InstallSetSize: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "depsolve_install_set_size",
				Help:    "Number of packages in a successful install set",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),

		FeedLookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "depsolve_feed_lookups_total",
				Help: "Total number of feed version lookups",
			},
			[]string{"source", "status"},
		),
		FeedLookupDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "depsolve_feed_lookup_duration_seconds",
				Help:    "Feed lookup duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		GatheredPackages: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "depsolve_gathered_packages",
				Help:    "Number of packages collected per gather",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),

		CacheHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "depsolve_cache_hits_total",
				Help: "Total number of cache hits",
			},
			[]string{"key_type"},
		),
		CacheMissesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "depsolve_cache_misses_total",
				Help: "Total number of cache misses",
			},
			[]string{"key_type"},
		),
		CacheSetBytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "depsolve_cache_set_bytes_total",
				Help: "Total bytes written to the cache",
			},
			[]string{"key_type"},
		),

		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "depsolve_http_client_requests_total",
				Help: "Total number of outgoing HTTP requests",
			},
			[]string{"method", "host", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "depsolve_http_client_request_duration_seconds",
				Help:    "Outgoing HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "host"},
		),
		HTTPErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "depsolve_http_client_errors_total",
				Help: "Total number of outgoing HTTP requests that failed without a response",
			},
			[]string{"method", "host"},
		),

		registry: registry,
	}

	registry.MustRegister(
		m.ResolutionsTotal,
		m.ResolutionDuration,
		m.ResolutionGroups,
		m.InstallSetSize,
		m.FeedLookupsTotal,
		m.FeedLookupDuration,
		m.GatheredPackages,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.CacheSetBytes,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPErrorsTotal,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Install registers m for every hook category.
func (m *Metrics) Install() {
	SetResolverHooks(m)
	SetFeedHooks(m)
	SetCacheHooks(m)
	SetHTTPHooks(m)
}

func (m *Metrics) OnResolveStart(context.Context, int) {}

func (m *Metrics) OnResolveComplete(_ context.Context, groups, packages int, d time.Duration, err error) {
	m.ResolutionsTotal.WithLabelValues(status(err)).Inc()
	m.ResolutionDuration.Observe(d.Seconds())
	m.ResolutionGroups.Observe(float64(groups))
	if err == nil {
		m.InstallSetSize.Observe(float64(packages))
	}
}

func (m *Metrics) OnLookup(_ context.Context, source, _ string, _ int, d time.Duration, err error) {
	m.FeedLookupsTotal.WithLabelValues(source, status(err)).Inc()
	m.FeedLookupDuration.WithLabelValues(source).Observe(d.Seconds())
}

func (m *Metrics) OnGatherComplete(_ context.Context, packages, _ int, _ time.Duration, err error) {
	if err == nil {
		m.GatheredPackages.Observe(float64(packages))
	}
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.CacheHitsTotal.WithLabelValues(keyType).Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.CacheMissesTotal.WithLabelValues(keyType).Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.CacheSetBytes.WithLabelValues(keyType).Add(float64(size))
}

func (m *Metrics) OnRequest(context.Context, string, string, string) {}

func (m *Metrics) OnResponse(_ context.Context, method, host, _ string, code int, d time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, host, strconv.Itoa(code)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, host).Observe(d.Seconds())
}

func (m *Metrics) OnError(_ context.Context, method, host, _ string, _ error) {
	m.HTTPErrorsTotal.WithLabelValues(method, host).Inc()
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

var (
	_ ResolverHooks = (*Metrics)(nil)
	_ FeedHooks     = (*Metrics)(nil)
	_ CacheHooks    = (*Metrics)(nil)
	_ HTTPHooks     = (*Metrics)(nil)
)
