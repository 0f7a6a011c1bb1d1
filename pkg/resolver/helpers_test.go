package resolver

import (
	"strings"

	"github.com/matzehuels/depsolve/pkg/versioning"
)

func dep(id, rng string) Dependency {
	return Dependency{ID: id, Range: versioning.MustParse(rng)}
}

func pkg(id, version string, deps ...Dependency) Candidate {
	return NewCandidate(id, versioning.MustParseVersion(version), deps...)
}

// pkg1 is shorthand for a package with a single dependency.
func pkg1(id, version, depID, depRange string) Candidate {
	return pkg(id, version, dep(depID, depRange))
}

func absent(id string) Candidate { return NewAbsent(id) }

func joined(cands []Candidate) string {
	parts := make([]string, len(cands))
	for i, c := range cands {
		parts[i] = c.String()
	}
	return strings.Join(parts, " => ")
}

func identities(ids []Identity) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
