package feed

import (
	"fmt"

	"github.com/matzehuels/depsolve/pkg/resolver"
	"github.com/matzehuels/depsolve/pkg/versioning"
)

// Listing is the JSON document a feed serves for one package.
type Listing struct {
	ID       string           `json:"id"`
	Versions []ListingVersion `json:"versions"`
}

// ListingVersion is one version entry of a [Listing].
type ListingVersion struct {
	Version      string              `json:"version"`
	Listed       *bool               `json:"listed,omitempty"`
	Dependencies []ListingDependency `json:"dependencies,omitempty"`
}

// ListingDependency is a declared dependency. An empty Range accepts any version.
type ListingDependency struct {
	ID    string `json:"id"`
	Range string `json:"range,omitempty"`
}

// Candidates converts the listing into resolver candidates. Entries whose
// version or ranges fail to parse are rejected as a whole.
func (l *Listing) Candidates() ([]resolver.Candidate, error) {
	out := make([]resolver.Candidate, 0, len(l.Versions))
	for _, lv := range l.Versions {
		v, err := versioning.ParseVersion(lv.Version)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", l.ID, err)
		}
		deps := make([]resolver.Dependency, 0, len(lv.Dependencies))
		for _, ld := range lv.Dependencies {
			rng, err := versioning.Parse(ld.Range)
			if err != nil {
				return nil, fmt.Errorf("%s %s: dependency %s: %w", l.ID, lv.Version, ld.ID, err)
			}
			deps = append(deps, resolver.Dependency{ID: ld.ID, Range: rng})
		}
		c := resolver.NewCandidate(l.ID, v, deps...)
		if lv.Listed != nil {
			c.Listed = *lv.Listed
		}
		out = append(out, c)
	}
	return out, nil
}

// NewListing builds the listing for id from candidates. Candidates for
// other ids and absent placeholders are skipped.
func NewListing(id string, cands []resolver.Candidate) *Listing {
	l := &Listing{ID: id}
	key := resolver.KeyOf(id)
	for _, c := range cands {
		if c.Absent || c.Key() != key {
			continue
		}
		lv := ListingVersion{Version: c.Version.Original()}
		if !c.Listed {
			listed := false
			lv.Listed = &listed
		}
		for _, d := range c.Dependencies {
			ld := ListingDependency{ID: d.ID}
			if !d.Range.IsAll() {
				ld.Range = d.Range.String()
			}
			lv.Dependencies = append(lv.Dependencies, ld)
		}
		l.Versions = append(l.Versions, lv)
	}
	return l
}
