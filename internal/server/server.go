// Package server exposes the resolver over HTTP.
//
// Routes:
//
//	POST /v1/resolve   resolve a JSON request document
//	GET  /healthz      liveness probe
//	GET  /metrics      Prometheus metrics (when enabled)
//
// Every response carries an X-Request-ID header. A well-formed UUID sent by
// the client is echoed back; anything else is replaced with a fresh one.
package server

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/depsolve/pkg/buildinfo"
	"github.com/matzehuels/depsolve/pkg/feed"
	"github.com/matzehuels/depsolve/pkg/observability"
	"github.com/matzehuels/depsolve/pkg/resolver"
)

// RequestIDHeader carries the request id on requests and responses.
const RequestIDHeader = "X-Request-ID"

const (
	defaultShutdownTimeout = 10 * time.Second
	defaultResolveTimeout  = 60 * time.Second
	maxBodyBytes           = 16 << 20
)

// Options configures a [Server].
type Options struct {
	Addr            string
	Resolver        *resolver.Resolver // defaults to resolver.New with Logger
	Behavior        string             // used when a request names none
	Metrics         *observability.Metrics
	Feed            feed.ClientOptions // used for requests that name feeds; also caches their universes
	Walker          feed.Options
	ResolveTimeout  time.Duration
	ShutdownTimeout time.Duration
	Logger          *log.Logger
}

// WithDefaults returns a copy of o with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Resolver == nil {
		o.Resolver = resolver.New(resolver.Options{Logger: o.Logger})
	}
	if o.ResolveTimeout <= 0 {
		o.ResolveTimeout = defaultResolveTimeout
	}
	if o.ShutdownTimeout <= 0 {
		o.ShutdownTimeout = defaultShutdownTimeout
	}
	if o.Walker.Logger == nil {
		o.Walker.Logger = o.Logger
	}
	return o
}

// Server is the HTTP API.
type Server struct {
	opts   Options
	router chi.Router
}

// New builds the router.
func New(opts Options) *Server {
	s := &Server{opts: opts.WithDefaults()}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	if s.opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.opts.Metrics.Handler())
	}
	r.Route("/v1", func(r chi.Router) {
		r.Post("/resolve", s.handleResolve)
	})

	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.opts.Logger.Info("listening", "addr", s.opts.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.opts.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type ctxKey int

const requestIDKey ctxKey = 0

// RequestID returns the id assigned to the request carrying ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.opts.Logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
			"request_id", RequestID(r.Context()))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}
