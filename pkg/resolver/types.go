package resolver

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/matzehuels/depsolve/pkg/errors"
	"github.com/matzehuels/depsolve/pkg/versioning"
)

// Key is the normalized, case-insensitive form of a package identity.
// Every map keyed by identity uses Key rather than the raw string.
type Key string

// KeyOf normalizes a package identity.
func KeyOf(id string) Key { return Key(strings.ToLower(strings.TrimSpace(id))) }

// Dependency is a declared requirement on another package. A nil Range
// accepts any present version.
type Dependency struct {
	ID    string
	Range *versioning.Range
}

// Key returns the normalized identity of the dependency target.
func (d Dependency) Key() Key { return KeyOf(d.ID) }

// String renders the dependency as used in diagnostics, for example
// "b (= 1.0.0)".
func (d Dependency) String() string {
	if p := d.Range.PrettyPrint(); p != "" {
		return d.ID + " " + p
	}
	return d.ID
}

// Candidate is one concrete version of a package or, when Absent is set,
// the placeholder meaning the package is left out of the install set.
// Absent candidates never carry a version or dependencies.
type Candidate struct {
	ID           string
	Version      *semver.Version
	Dependencies []Dependency
	Listed       bool
	Absent       bool
}

// NewCandidate returns a listed candidate for id at version v.
func NewCandidate(id string, v *semver.Version, deps ...Dependency) Candidate {
	return Candidate{ID: id, Version: v, Dependencies: deps, Listed: true}
}

// NewAbsent returns the absent placeholder for id.
func NewAbsent(id string) Candidate {
	return Candidate{ID: id, Listed: true, Absent: true}
}

// Key returns the normalized identity of the candidate.
func (c Candidate) Key() Key { return KeyOf(c.ID) }

// Dependency returns the candidate's constraint on key, if any. When key is
// declared more than once the ranges are narrowed into one, which may accept
// no version at all.
func (c Candidate) Dependency(key Key) (Dependency, bool) {
	var (
		out   Dependency
		found bool
	)
	for _, d := range c.Dependencies {
		if d.Key() != key {
			continue
		}
		if !found {
			out, found = d, true
			continue
		}
		out.Range = out.Range.Narrow(d.Range)
	}
	return out, found
}

// Identity returns the id and version of the candidate.
func (c Candidate) Identity() Identity {
	return Identity{ID: c.ID, Version: c.Version}
}

// String returns "id version", or just the id for an absent candidate.
func (c Candidate) String() string {
	if c.Absent || c.Version == nil {
		return c.ID
	}
	return c.ID + " " + c.Version.String()
}

// Identity is a resolved package: an id and the chosen version.
type Identity struct {
	ID      string          `json:"id"`
	Version *semver.Version `json:"version"`
}

// String returns "id version".
func (i Identity) String() string {
	if i.Version == nil {
		return i.ID
	}
	return i.ID + " " + i.Version.String()
}

// InstalledPackage records a package already present in the project.
// It only feeds diagnostics. AllowedVersions is nil when the project
// declares no explicit range for the package.
type InstalledPackage struct {
	ID              string
	Version         *semver.Version
	AllowedVersions *versioning.Range
}

// DependencyBehavior selects which version of a dependency is tried first.
type DependencyBehavior int

const (
	Lowest       DependencyBehavior = iota // lowest satisfying version
	Highest                                // highest version
	HighestMinor                           // highest minor within the lowest major
	HighestPatch                           // highest patch within the lowest major.minor
	Ignore                                 // dependencies are dropped, highest version
)

var behaviorNames = []string{"lowest", "highest", "highest-minor", "highest-patch", "ignore"}

// BehaviorNames lists the accepted spellings for [ParseBehavior].
func BehaviorNames() []string { return append([]string(nil), behaviorNames...) }

// String returns the lower-case name of the behavior.
func (b DependencyBehavior) String() string {
	if int(b) >= 0 && int(b) < len(behaviorNames) {
		return behaviorNames[b]
	}
	return "unknown"
}

// ParseBehavior parses a behavior name. Matching ignores case, dashes and
// underscores, so "HighestMinor" and "highest_minor" are both accepted.
func ParseBehavior(s string) (DependencyBehavior, error) {
	norm := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	if norm == "" {
		return Lowest, nil
	}
	for i, name := range behaviorNames {
		if strings.ReplaceAll(name, "-", "") == norm {
			return DependencyBehavior(i), nil
		}
	}
	return Lowest, errors.New(errors.ErrCodeInvalidBehavior,
		"unknown dependency behavior %q (want one of %s)", s, strings.Join(behaviorNames, ", "))
}

// MarshalText implements [encoding.TextMarshaler].
func (b DependencyBehavior) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (b *DependencyBehavior) UnmarshalText(text []byte) error {
	v, err := ParseBehavior(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// Context is the input to a single resolution.
type Context struct {
	// Available is the universe of candidate versions. It must not contain
	// absent candidates.
	Available []Candidate
	// Required lists the identities that must be present in the result.
	Required []string
	// Targets anchors diagnostic relevance. Defaults to Required.
	Targets []string
	// Behavior orders versions within each group.
	Behavior DependencyBehavior
	// Preferred pins soft version hints by identity. A candidate matching
	// its pin exactly is tried first.
	Preferred map[string]*semver.Version
	// Installed describes the project's current packages for diagnostics.
	Installed []InstalledPackage
}

func (c *Context) targets() []string {
	if len(c.Targets) > 0 {
		return c.Targets
	}
	return c.Required
}
