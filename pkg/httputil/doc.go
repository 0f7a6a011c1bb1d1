// Package httputil provides HTTP utilities for package feed clients.
//
// # Retry
//
// [Retry] re-runs an operation with exponential backoff when it fails with
// an error wrapped in [RetryableError]. Feed clients wrap network failures
// and 5xx responses; 404 and other 4xx responses fail immediately. A 429
// or 503 with a Retry-After header waits at least that long, see
// [RetryableResponse].
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    return fetch(ctx)
//	})
//
// # Instrumented transport
//
// [Transport] wraps an [http.RoundTripper] and reports every request to the
// registered [observability.HTTPHooks], which the serve command backs with
// Prometheus counters.
//
// [observability.HTTPHooks]: github.com/matzehuels/depsolve/pkg/observability.HTTPHooks
package httputil
