package universe

import (
	"context"
	"slices"

	"github.com/matzehuels/depsolve/pkg/dag"
	"github.com/matzehuels/depsolve/pkg/dag/transform"
	"github.com/matzehuels/depsolve/pkg/resolver"
)

// Result is a resolved request.
type Result struct {
	// Packages is the install set, dependencies first.
	Packages []resolver.Identity
	// Graph links each installed package to the installed packages it
	// depends on.
	Graph *dag.DAG
	// Waves groups Packages into batches that can be installed together.
	Waves [][]string
}

// Solve resolves req. When gathered is non-nil it is used instead of the
// request's own package list. The universe is pruned to what the required
// and target packages can reach before resolving.
func Solve(ctx context.Context, r *resolver.Resolver, req *Request, gathered []resolver.Candidate) (*Result, error) {
	c, err := req.Context(gathered)
	if err != nil {
		return nil, err
	}
	c.Available = Reachable(c.Available, slices.Concat(c.Required, c.Targets))

	ids, err := r.Resolve(ctx, c)
	if err != nil {
		return nil, err
	}
	g, err := resolver.BuildGraph(ids, c.Available)
	if err != nil {
		return nil, err
	}
	return &Result{Packages: ids, Graph: g, Waves: transform.InstallWaves(g)}, nil
}
