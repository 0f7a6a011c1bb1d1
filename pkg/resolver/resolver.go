package resolver

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depsolve/pkg/errors"
	"github.com/matzehuels/depsolve/pkg/observability"
)

// Options configures a [Resolver].
type Options struct {
	// Logger receives debug output about grouping and search. Nil discards.
	Logger *log.Logger
}

// WithDefaults returns a copy of o with unset fields filled in.
func (o Options) WithDefaults() Options {
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// Resolver computes install sets. It holds no per-call state and is safe
// for concurrent use.
type Resolver struct {
	logger *log.Logger
}

// New returns a Resolver configured with opts.
func New(opts Options) *Resolver {
	opts = opts.WithDefaults()
	return &Resolver{logger: opts.Logger}
}

// Resolve computes the install set for c.
//
// On success the returned identities are ordered with dependencies before
// their dependents. Errors carry one of the resolution codes described in
// the package documentation; cancellation returns ctx.Err().
func (r *Resolver) Resolve(ctx context.Context, c *Context) (ids []Identity, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "resolver context is nil")
	}

	start := time.Now()
	groupCount := 0
	observability.Resolver().OnResolveStart(ctx, len(c.Required))
	defer func() {
		observability.Resolver().OnResolveComplete(ctx, groupCount, len(ids), time.Since(start), err)
	}()

	groups, err := groupCandidates(c)
	if err != nil {
		return nil, err
	}
	groupCount = len(groups)
	r.logger.Debug("grouped candidates", "groups", len(groups), "candidates", len(c.Available), "behavior", c.Behavior)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var best []Candidate
	comparer := NewComparer(c.Behavior, c.Preferred)
	solution := FindSolution(groups, comparer.Compare, ShouldRejectPair, func(partial []Candidate) {
		best = partial
	})

	if present := presentOnly(solution); len(present) > 0 {
		if cycle := FindCircularDependency(solution); len(cycle) > 0 {
			return nil, errors.New(errors.ErrCodeCircularDependency,
				"Circular dependency detected '%s'.", formatCycle(cycle))
		}

		sorted := TopologicalSort(present)
		ids = make([]Identity, len(sorted))
		for i, cand := range sorted {
			ids[i] = cand.Identity()
		}
		r.logger.Debug("resolved", "packages", len(ids), "elapsed", time.Since(start))
		return ids, nil
	}

	r.logger.Debug("no solution", "deepest", len(best), "groups", len(groups))
	return nil, errors.New(errors.ErrCodeUnsatisfiable, "%s",
		DiagnosticMessage(best, c.Available, c.Installed, c.targets()))
}

func presentOnly(solution []Candidate) []Candidate {
	var out []Candidate
	for _, c := range solution {
		if !c.Absent {
			out = append(out, c)
		}
	}
	return out
}
