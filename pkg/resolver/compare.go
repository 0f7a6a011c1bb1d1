package resolver

import (
	"cmp"

	"github.com/Masterminds/semver/v3"
)

// Comparer orders the candidates of a group so that the preferred one comes
// first. The search tries candidates in this order, so it decides which
// consistent solution is found.
type Comparer struct {
	behavior  DependencyBehavior
	preferred map[Key]*semver.Version
}

// NewComparer returns a comparer for the given behavior and preferred
// version pins. Pins are matched by case-insensitive identity.
func NewComparer(behavior DependencyBehavior, preferred map[string]*semver.Version) *Comparer {
	c := &Comparer{behavior: behavior, preferred: make(map[Key]*semver.Version, len(preferred))}
	for id, v := range preferred {
		if v != nil {
			c.preferred[KeyOf(id)] = v
		}
	}
	return c
}

// Compare returns a negative number when a should be tried before b.
//
// The order is: an exact match for the preferred pin, present before
// absent, listed before unlisted, the behavior's version order, and
// finally identity and version text so that the order is total.
func (c *Comparer) Compare(a, b Candidate) int {
	if ap, bp := c.isPreferred(a), c.isPreferred(b); ap != bp {
		return boolFirst(ap)
	}
	if a.Absent != b.Absent {
		return boolFirst(!a.Absent)
	}
	if a.Listed != b.Listed {
		return boolFirst(a.Listed)
	}
	if !a.Absent {
		if v := c.compareVersions(a.Version, b.Version); v != 0 {
			return v
		}
	}
	if v := cmp.Compare(a.ID, b.ID); v != 0 {
		return v
	}
	return cmp.Compare(versionText(a.Version), versionText(b.Version))
}

func (c *Comparer) isPreferred(cand Candidate) bool {
	if cand.Absent || cand.Version == nil {
		return false
	}
	pin, ok := c.preferred[cand.Key()]
	return ok && pin.Equal(cand.Version)
}

func (c *Comparer) compareVersions(a, b *semver.Version) int {
	switch c.behavior {
	case Lowest:
		return a.Compare(b)
	case HighestMinor:
		if v := cmp.Compare(a.Major(), b.Major()); v != 0 {
			return v
		}
		if v := cmp.Compare(b.Minor(), a.Minor()); v != 0 {
			return v
		}
		if v := cmp.Compare(b.Patch(), a.Patch()); v != 0 {
			return v
		}
	case HighestPatch:
		if v := cmp.Compare(a.Major(), b.Major()); v != 0 {
			return v
		}
		if v := cmp.Compare(a.Minor(), b.Minor()); v != 0 {
			return v
		}
		if v := cmp.Compare(b.Patch(), a.Patch()); v != 0 {
			return v
		}
	}
	// Highest, Ignore, and prerelease ties of the line-based policies.
	return b.Compare(a)
}

func boolFirst(first bool) int {
	if first {
		return -1
	}
	return 1
}

func versionText(v *semver.Version) string {
	if v == nil {
		return ""
	}
	return v.Original()
}
