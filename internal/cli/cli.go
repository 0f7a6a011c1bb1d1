package cli

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depsolve/pkg/cache"
	"github.com/matzehuels/depsolve/pkg/config"
	"github.com/matzehuels/depsolve/pkg/errors"
	"github.com/matzehuels/depsolve/pkg/feed"
	"github.com/matzehuels/depsolve/pkg/observability"
	"github.com/matzehuels/depsolve/pkg/resolver"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Config{}.WithDefaults(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the configuration file named by --config, or the default
// location when the flag is empty.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

// =============================================================================
// Feed Plumbing
// =============================================================================

// feedFlags are the flags shared by commands that talk to feeds.
type feedFlags struct {
	feeds   []string
	noCache bool
	refresh bool
}

// openCache opens the configured cache backend, or a null cache when
// caching is disabled.
func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	return cache.Open(ctx, c.Config.CacheOptions())
}

// newWalker builds a walker over the given feed URLs, falling back to the
// configured feeds. The returned close function releases the cache.
func (c *CLI) newWalker(ctx context.Context, ff feedFlags) (*feed.Walker, func(), error) {
	urls := ff.feeds
	if len(urls) == 0 {
		urls = c.Config.Feeds
	}
	if len(urls) == 0 {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "no feeds given (use --feed or set feeds in %s)", c.configLocation())
	}

	store, err := c.openCache(ctx, ff.noCache)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s cache", c.Config.Cache.Backend)
	}
	sources, err := feed.NewHTTPSources(urls, c.Config.FeedOptions(store, ff.refresh))
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	opts := c.Config.WalkerOptions()
	opts.Logger = c.Logger
	closeFn := func() {
		if err := store.Close(); err != nil {
			c.Logger.Warn("close cache", "err", err)
		}
	}
	return feed.NewWalker(opts, sources...), closeFn, nil
}

// gather crawls the closure of roots with a spinner showing lookup counts.
func (c *CLI) gather(ctx context.Context, w *feed.Walker, roots []string) (*feed.Universe, error) {
	spinner := newSpinnerWithContext(ctx, "Gathering packages...")
	restore := trackLookups(spinner)
	defer restore()

	spinner.Start()
	u, err := w.Gather(ctx, roots...)
	if err != nil {
		spinner.StopWithError("Gather failed")
		return nil, err
	}
	spinner.Stop()
	return u, nil
}

func (c *CLI) newResolver() *resolver.Resolver {
	return resolver.New(resolver.Options{Logger: c.Logger})
}

func (c *CLI) configLocation() string {
	if c.configPath != "" {
		return c.configPath
	}
	if p, err := config.Path(); err == nil {
		return p
	}
	return "the config file"
}

// lookupProgress reports feed lookups on a spinner.
type lookupProgress struct {
	observability.NoopFeedHooks
	spinner *Spinner
	n       atomic.Int64
}

func (p *lookupProgress) OnLookup(_ context.Context, _ string, pkg string, _ int, _ time.Duration, _ error) {
	p.spinner.SetDetail(fmt.Sprintf("%d lookups, last %s", p.n.Add(1), pkg))
}

// trackLookups routes feed hooks to s until the returned func is called.
func trackLookups(s *Spinner) func() {
	prev := observability.Feed()
	observability.SetFeedHooks(&lookupProgress{spinner: s})
	return func() { observability.SetFeedHooks(prev) }
}
