package resolver

import (
	"github.com/matzehuels/depsolve/pkg/dag"
	"github.com/matzehuels/depsolve/pkg/errors"
)

// BuildGraph returns the dependency graph of a resolved install set. Nodes
// are the resolved ids with the chosen version stored under the "version"
// metadata key; an edge runs from each package to every resolved package it
// declares a dependency on. The candidates describing ids are looked up in
// available.
func BuildGraph(ids []Identity, available []Candidate) (*dag.DAG, error) {
	chosen := make(map[Key]Candidate, len(ids))
	for _, id := range ids {
		cand, ok := findCandidate(id, available)
		if !ok {
			return nil, errors.New(errors.ErrCodeNotFound, "no candidate for %s", id)
		}
		chosen[KeyOf(id.ID)] = cand
	}

	g := dag.New(nil)
	for _, id := range ids {
		meta := dag.Metadata{}
		if id.Version != nil {
			meta["version"] = id.Version.String()
		}
		if err := g.AddNode(dag.Node{ID: id.ID, Meta: meta}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "duplicate identity %s", id.ID)
		}
	}
	for _, id := range ids {
		cand := chosen[KeyOf(id.ID)]
		for _, d := range cand.Dependencies {
			target, ok := chosen[d.Key()]
			if !ok || g.HasEdge(id.ID, target.ID) {
				continue
			}
			d, _ = cand.Dependency(d.Key())
			meta := dag.Metadata{}
			if p := d.Range.PrettyPrint(); p != "" {
				meta["range"] = p
			}
			if err := g.AddEdge(dag.Edge{From: id.ID, To: target.ID, Meta: meta}); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "edge %s -> %s", id.ID, target.ID)
			}
		}
	}
	return g, nil
}

func findCandidate(id Identity, available []Candidate) (Candidate, bool) {
	key := KeyOf(id.ID)
	for _, c := range available {
		if c.Absent || c.Key() != key {
			continue
		}
		if id.Version == nil || (c.Version != nil && c.Version.Equal(id.Version)) {
			return c, true
		}
	}
	return Candidate{}, false
}
