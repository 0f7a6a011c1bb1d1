package feed

import (
	"context"
	"fmt"

	"github.com/matzehuels/depsolve/pkg/resolver"
)

// StaticSource serves a fixed set of candidates.
type StaticSource struct {
	name     string
	packages map[resolver.Key][]resolver.Candidate
}

// NewStaticSource indexes cands by identity. Absent candidates are ignored.
func NewStaticSource(name string, cands ...resolver.Candidate) *StaticSource {
	s := &StaticSource{name: name, packages: make(map[resolver.Key][]resolver.Candidate)}
	for _, c := range cands {
		if c.Absent {
			continue
		}
		s.packages[c.Key()] = append(s.packages[c.Key()], c)
	}
	return s
}

// Name returns the source name.
func (s *StaticSource) Name() string { return s.name }

// Versions returns a copy of the candidates for id.
func (s *StaticSource) Versions(ctx context.Context, id string) ([]resolver.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cands, ok := s.packages[resolver.KeyOf(id)]
	if !ok {
		return nil, fmt.Errorf("%s: %s: %w", s.name, id, ErrNotFound)
	}
	return append([]resolver.Candidate(nil), cands...), nil
}
