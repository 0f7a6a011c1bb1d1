package feed

import (
	"context"
	"time"

	"github.com/matzehuels/depsolve/pkg/resolver"
	"github.com/matzehuels/depsolve/pkg/versioning"
)

func pkg(id, version string, deps ...resolver.Dependency) resolver.Candidate {
	return resolver.NewCandidate(id, versioning.MustParseVersion(version), deps...)
}

func dep(id, rng string) resolver.Dependency {
	return resolver.Dependency{ID: id, Range: versioning.MustParse(rng)}
}

// delayed wraps a source and answers only after delay.
type delayed struct {
	Source
	delay time.Duration
}

func (d delayed) Versions(ctx context.Context, id string) ([]resolver.Candidate, error) {
	select {
	case <-time.After(d.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return d.Source.Versions(ctx, id)
}
