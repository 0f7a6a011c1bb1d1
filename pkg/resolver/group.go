package resolver

import (
	"cmp"
	"slices"

	"github.com/matzehuels/depsolve/pkg/errors"
)

// groupCandidates validates the context and partitions its universe into
// one group per identity.
//
// Groups are ordered by dependency distance from the required and target
// identities, nearest first, so a package is decided before the packages it
// depends on and a failed search still holds the dependents that explain the
// conflict. Ties keep identity order. Dependency targets the universe does
// not contain get singleton absent groups.
func groupCandidates(c *Context) ([][]Candidate, error) {
	required := make(map[Key]bool, len(c.Required))
	for _, id := range c.Required {
		required[KeyOf(id)] = true
	}

	present := make(map[Key]bool, len(c.Available))
	for _, cand := range c.Available {
		if !cand.Absent {
			present[cand.Key()] = true
		}
	}
	for _, id := range c.Required {
		if !present[KeyOf(id)] {
			return nil, errors.New(errors.ErrCodeMissingPackage,
				"Unable to find package '%s'. Its dependency information is not available.", id)
		}
	}

	cands := make([]Candidate, 0, len(c.Available))
	for _, cand := range c.Available {
		if cand.Absent {
			continue
		}
		if c.Behavior == Ignore {
			cand.Dependencies = nil
		}
		cands = append(cands, cand)
	}
	slices.SortStableFunc(cands, compareIdentity)

	var (
		groups [][]Candidate
		seen   = make(map[Key]bool)
	)
	for i := 0; i < len(cands); {
		key := cands[i].Key()
		j := i + 1
		for j < len(cands) && cands[j].Key() == key {
			j++
		}
		group := slices.Clone(cands[i:j])
		if !required[key] {
			group = append(group, NewAbsent(cands[i].ID))
		}
		groups = append(groups, group)
		seen[key] = true
		i = j
	}

	for _, cand := range cands {
		for _, d := range cand.Dependencies {
			if key := d.Key(); !seen[key] {
				seen[key] = true
				groups = append(groups, []Candidate{NewAbsent(d.ID)})
			}
		}
	}

	dist := dependencyDistances(slices.Concat(c.Required, c.Targets), cands)
	slices.SortStableFunc(groups, func(a, b []Candidate) int {
		ka, kb := a[0].Key(), b[0].Key()
		if n := cmp.Compare(distanceOf(dist, ka), distanceOf(dist, kb)); n != 0 {
			return n
		}
		return cmp.Compare(ka, kb)
	})
	return groups, nil
}

// compareIdentity orders candidates by case-insensitive id, then ascending
// version, then exact id.
func compareIdentity(a, b Candidate) int {
	if c := cmp.Compare(a.Key(), b.Key()); c != 0 {
		return c
	}
	if c := compareVersions(a, b); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// compareVersions orders by version ascending with absent entries first.
func compareVersions(a, b Candidate) int {
	switch {
	case a.Version == nil && b.Version == nil:
		return 0
	case a.Version == nil:
		return -1
	case b.Version == nil:
		return 1
	}
	return a.Version.Compare(b.Version)
}
