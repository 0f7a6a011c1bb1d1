// Package cli implements the depsolve command-line interface.
//
// The commands resolve request files against a candidate universe, gather
// universes from package feeds, serve the resolver over HTTP and manage the
// feed response cache. The CLI is built using cobra and logs through
// charmbracelet/log.
//
// # Commands
//
//   - resolve: compute the install set for a request file
//   - gather: crawl feeds and write the reachable universe to a file
//   - find: pick the best version of one package across feeds
//   - serve: run the HTTP API
//   - cache: clear or locate the feed response cache
//   - completion: generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so library calls made on behalf of a
// command log with the same settings.
//
// # Example
//
//	c := cli.New(os.Stderr, cli.LogInfo)
//	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	    os.Exit(1)
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger writes timestamped lines ("14:32:01.45") at level or above.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one step of a command.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time and any extra key-value pairs:
//
//	Resolved 12 packages elapsed=1.234s waves=4
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append([]any{"elapsed", time.Since(p.start).Round(time.Millisecond)}, keyvals...)
	p.logger.Info(msg, keyvals...)
}

type ctxKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// loggerFromContext returns the command logger, or log.Default() outside a
// command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
