package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depsolve/internal/server"
	"github.com/matzehuels/depsolve/pkg/observability"
)

type serveOptions struct {
	addr    string
	metrics bool
	noCache bool
	timeout time.Duration
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the resolver over HTTP",
		Long: `Run the HTTP API.

  POST /v1/resolve   resolve a JSON request (?format=dot for Graphviz output)
  GET  /healthz      liveness probe
  GET  /metrics      Prometheus metrics

Requests that list feeds are gathered through the configured cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", true, "expose Prometheus metrics on /metrics")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the feed response cache")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", time.Minute, "per-request resolution timeout")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOptions) error {
	logger := loggerFromContext(ctx)

	addr := opts.addr
	if addr == "" {
		addr = c.Config.Server.Addr
	}

	store, err := c.openCache(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	var metrics *observability.Metrics
	if opts.metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics = observability.NewMetrics(reg)
		metrics.Install()
		defer observability.Reset()
	}

	walker := c.Config.WalkerOptions()
	walker.Logger = logger

	printInfo("Listening on %s", StyleHighlight.Render(addr))
	printKeyValue("cache", c.Config.Cache.Backend)
	printKeyValue("behavior", c.Config.Behavior)
	printKeyValue("metrics", fmt.Sprint(opts.metrics))

	return server.New(server.Options{
		Addr:           addr,
		Resolver:       c.newResolver(),
		Behavior:       c.Config.Behavior,
		Metrics:        metrics,
		Feed:           c.Config.FeedOptions(store, false),
		Walker:         walker,
		ResolveTimeout: opts.timeout,
		Logger:         logger,
	}).ListenAndServe(ctx)
}
