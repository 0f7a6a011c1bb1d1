package feed

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	deperrors "github.com/matzehuels/depsolve/pkg/errors"
	"github.com/matzehuels/depsolve/pkg/observability"
	"github.com/matzehuels/depsolve/pkg/resolver"
	"github.com/matzehuels/depsolve/pkg/versioning"
)

const (
	DefaultMaxDepth = 50   // Default maximum dependency depth
	DefaultMaxNodes = 5000 // Default maximum packages to fetch
)

// Options configures a [Walker].
type Options struct {
	MaxDepth int         // Maximum depth to traverse (default: 50)
	MaxNodes int         // Maximum packages to fetch (default: 5000)
	Logger   *log.Logger // Receives non-fatal lookup failures (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MaxNodes <= 0 {
		o.MaxNodes = DefaultMaxNodes
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// Walker queries a set of sources concurrently.
type Walker struct {
	sources []Source
	opts    Options
}

// NewWalker creates a Walker over sources.
func NewWalker(opts Options, sources ...Source) *Walker {
	return &Walker{sources: sources, opts: opts.WithDefaults()}
}

// Match is the result of [Walker.FindBest].
type Match struct {
	Candidate resolver.Candidate
	Source    string
}

// response is one source's answer, in arrival order.
type response struct {
	source string
	cands  []resolver.Candidate
	err    error
}

// lookup asks every source for id in parallel and returns the answers in
// the order they arrived. It fails only when ctx is cancelled.
func (w *Walker) lookup(ctx context.Context, id string) ([]response, error) {
	var (
		mu  sync.Mutex
		out []response
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, src := range w.sources {
		g.Go(func() error {
			start := time.Now()
			cands, err := src.Versions(gctx, id)
			observability.Feed().OnLookup(gctx, src.Name(), id, len(cands), time.Since(start), err)
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			mu.Lock()
			out = append(out, response{source: src.Name(), cands: cands, err: err})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// FindBest returns the best version of id for rng across all sources.
//
// Every source is consulted before a choice is made, so a slow source with
// a strictly better match wins over a fast one. When two sources offer
// equally good versions the one that answered first wins. Only listed
// versions are considered unless no listed version satisfies rng.
func (w *Walker) FindBest(ctx context.Context, id string, rng *versioning.Range) (Match, error) {
	responses, err := w.lookup(ctx, id)
	if err != nil {
		return Match{}, err
	}

	var (
		best    Match
		bestVer *semver.Version
		errs    []error
	)
	for _, listedOnly := range []bool{true, false} {
		for _, r := range responses {
			if r.err != nil {
				continue
			}
			for _, c := range r.cands {
				if listedOnly && !c.Listed {
					continue
				}
				if rng.IsBetter(bestVer, c.Version) {
					best, bestVer = Match{Candidate: c, Source: r.source}, c.Version
				}
			}
		}
		if bestVer != nil {
			return best, nil
		}
	}

	for _, r := range responses {
		if r.err != nil && !errors.Is(r.err, ErrNotFound) {
			w.opts.Logger.Warn("lookup failed", "source", r.source, "package", id, "err", r.err)
			errs = append(errs, r.err)
		}
	}
	if len(errs) > 0 && len(errs) == len(responses) {
		return Match{}, deperrors.Wrap(deperrors.ErrCodeNetwork, errors.Join(errs...),
			"no source could list '%s'", id)
	}
	return Match{}, deperrors.New(deperrors.ErrCodePackageNotFound,
		"no version of '%s' satisfies %s", id, rng.String())
}

// versions merges every source's listing of id. A version reported by more
// than one source is taken from the first to answer. The error is non-nil
// only when no source knows id.
func (w *Walker) versions(ctx context.Context, id string) ([]resolver.Candidate, error) {
	responses, err := w.lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	var (
		out  []resolver.Candidate
		seen = make(map[string]bool)
		errs []error
	)
	for _, r := range responses {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		for _, c := range r.cands {
			if v := c.Version.String(); !seen[v] {
				seen[v] = true
				out = append(out, c)
			}
		}
	}
	if len(out) == 0 {
		if len(errs) == 0 {
			errs = append(errs, ErrNotFound)
		}
		return nil, errors.Join(errs...)
	}
	return out, nil
}
