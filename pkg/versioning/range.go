package versioning

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/matzehuels/depsolve/pkg/errors"
)

// Float describes which version component a floating range lets vary.
type Float int

const (
	FloatNone  Float = iota // fixed range
	FloatPatch              // 1.2.*
	FloatMinor              // 1.*
	FloatMajor              // *
)

// Range is an interval of acceptable versions.
//
// A nil Min or Max leaves that side unbounded. The zero value accepts every
// version, as does a nil *Range.
type Range struct {
	Min          *semver.Version
	Max          *semver.Version
	MinInclusive bool
	MaxInclusive bool
	Float        Float
}

// All returns a range that accepts every version.
func All() *Range { return &Range{} }

// AtLeast returns the range [v, ).
func AtLeast(v *semver.Version) *Range {
	return &Range{Min: v, MinInclusive: true}
}

// Exactly returns the range [v].
func Exactly(v *semver.Version) *Range {
	return &Range{Min: v, Max: v, MinInclusive: true, MaxInclusive: true}
}

// ParseVersion parses a single version, accepting short forms like "1.0".
func ParseVersion(s string) (*semver.Version, error) {
	v, err := semver.NewVersion(strings.TrimSpace(s))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidVersion, err, "invalid version %q", s)
	}
	return v, nil
}

// MustParseVersion is like [ParseVersion] but panics on error.
// Intended for tests and package-level literals.
func MustParseVersion(s string) *semver.Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Parse parses a range in interval notation. An empty string yields a range
// that accepts every version.
func Parse(s string) (*Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return All(), nil
	}
	if strings.Contains(s, "*") {
		return parseFloat(s)
	}
	if s[0] != '[' && s[0] != '(' {
		v, err := ParseVersion(s)
		if err != nil {
			return nil, err
		}
		return AtLeast(v), nil
	}
	return parseInterval(s)
}

// MustParse is like [Parse] but panics on error.
func MustParse(s string) *Range {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

func parseInterval(s string) (*Range, error) {
	last := s[len(s)-1]
	if len(s) < 3 || (last != ']' && last != ')') {
		return nil, invalidRange(s, "unterminated interval")
	}
	r := &Range{MinInclusive: s[0] == '[', MaxInclusive: last == ']'}
	inner := strings.TrimSpace(s[1 : len(s)-1])

	lo, hi, isPair := strings.Cut(inner, ",")
	if !isPair {
		if !r.MinInclusive || !r.MaxInclusive {
			return nil, invalidRange(s, "a single version must use [v]")
		}
		v, err := ParseVersion(inner)
		if err != nil {
			return nil, err
		}
		return Exactly(v), nil
	}
	if strings.Contains(hi, ",") {
		return nil, invalidRange(s, "too many bounds")
	}

	var err error
	if lo = strings.TrimSpace(lo); lo != "" {
		if r.Min, err = ParseVersion(lo); err != nil {
			return nil, err
		}
	} else {
		r.MinInclusive = false
	}
	if hi = strings.TrimSpace(hi); hi != "" {
		if r.Max, err = ParseVersion(hi); err != nil {
			return nil, err
		}
	} else {
		r.MaxInclusive = false
	}

	if r.Min != nil && r.Max != nil {
		switch c := r.Min.Compare(r.Max); {
		case c > 0:
			return nil, invalidRange(s, "lower bound exceeds upper bound")
		case c == 0 && !(r.MinInclusive && r.MaxInclusive):
			return nil, invalidRange(s, "empty interval")
		}
	}
	return r, nil
}

func parseFloat(s string) (*Range, error) {
	if s == "*" {
		return &Range{Min: semver.New(0, 0, 0, "", ""), MinInclusive: true, Float: FloatMajor}, nil
	}
	prefix, ok := strings.CutSuffix(s, ".*")
	if !ok || strings.Contains(prefix, "*") {
		return nil, invalidRange(s, "only a trailing .* may float")
	}
	parts := strings.Split(prefix, ".")
	var f Float
	switch len(parts) {
	case 1:
		f = FloatMinor
	case 2:
		f = FloatPatch
	default:
		return nil, invalidRange(s, "float must replace the minor or patch component")
	}
	v, err := ParseVersion(prefix)
	if err != nil {
		return nil, err
	}
	return &Range{Min: v, MinInclusive: true, Float: f}, nil
}

func invalidRange(s, reason string) error {
	return errors.New(errors.ErrCodeInvalidRange, "invalid version range %q: %s", s, reason)
}

// IsAll reports whether the range accepts every version.
func (r *Range) IsAll() bool {
	return r == nil || (r.Min == nil && r.Max == nil)
}

// Satisfies reports whether v lies within the range. A nil version never
// satisfies a range.
func (r *Range) Satisfies(v *semver.Version) bool {
	if v == nil {
		return false
	}
	if r == nil {
		return true
	}
	if r.Min != nil {
		c := v.Compare(r.Min)
		if c < 0 || (c == 0 && !r.MinInclusive) {
			return false
		}
	}
	if r.Max != nil {
		c := v.Compare(r.Max)
		if c > 0 || (c == 0 && !r.MaxInclusive) {
			return false
		}
	}
	return true
}

// Intersect returns the range accepted by both r and other, or nil and false
// when they do not overlap. Floating behavior is dropped from the result.
func (r *Range) Intersect(other *Range) (*Range, bool) {
	out := r.Narrow(other)
	if out.IsEmpty() {
		return nil, false
	}
	return out, true
}

// Narrow returns the tightest bounds of r and other combined. Unlike
// [Range.Intersect] the result is returned even when no version satisfies
// it, so it can still be printed. Floating behavior is dropped.
func (r *Range) Narrow(other *Range) *Range {
	if r == nil {
		r = All()
	}
	if other == nil {
		other = All()
	}
	out := &Range{}
	out.Min, out.MinInclusive = tighterMin(r.Min, r.MinInclusive, other.Min, other.MinInclusive)
	out.Max, out.MaxInclusive = tighterMax(r.Max, r.MaxInclusive, other.Max, other.MaxInclusive)
	return out
}

// IsEmpty reports whether no version can satisfy r.
func (r *Range) IsEmpty() bool {
	if r == nil || r.Min == nil || r.Max == nil {
		return false
	}
	c := r.Min.Compare(r.Max)
	return c > 0 || (c == 0 && !(r.MinInclusive && r.MaxInclusive))
}

func tighterMin(a *semver.Version, ai bool, b *semver.Version, bi bool) (*semver.Version, bool) {
	switch {
	case a == nil:
		return b, bi
	case b == nil:
		return a, ai
	}
	switch c := a.Compare(b); {
	case c > 0:
		return a, ai
	case c < 0:
		return b, bi
	default:
		return a, ai && bi
	}
}

func tighterMax(a *semver.Version, ai bool, b *semver.Version, bi bool) (*semver.Version, bool) {
	switch {
	case a == nil:
		return b, bi
	case b == nil:
		return a, ai
	}
	switch c := a.Compare(b); {
	case c < 0:
		return a, ai
	case c > 0:
		return b, bi
	default:
		return a, ai && bi
	}
}

// FindBestMatch returns the preferred version among versions that satisfy
// the range, or nil when none does.
//
// Fixed ranges prefer the lowest satisfying version, so an exact match on
// the lower bound always wins. Floating ranges prefer the highest version
// inside the floating line and fall back to the lowest satisfying version.
func (r *Range) FindBestMatch(versions []*semver.Version) *semver.Version {
	var best *semver.Version
	for _, v := range versions {
		if r.IsBetter(best, v) {
			best = v
		}
	}
	return best
}

// IsBetter reports whether considering should replace current as the best
// match. Equal versions are not better, so the first one seen is kept.
func (r *Range) IsBetter(current, considering *semver.Version) bool {
	if !r.Satisfies(considering) {
		return false
	}
	if current == nil {
		return true
	}
	if r != nil && r.Float != FloatNone {
		curIn, conIn := r.inFloatLine(current), r.inFloatLine(considering)
		if curIn != conIn {
			return conIn
		}
		if conIn {
			return considering.GreaterThan(current)
		}
	}
	return considering.LessThan(current)
}

func (r *Range) inFloatLine(v *semver.Version) bool {
	if v.Prerelease() != "" {
		return false
	}
	switch r.Float {
	case FloatMajor:
		return true
	case FloatMinor:
		return v.Major() == r.Min.Major()
	case FloatPatch:
		return v.Major() == r.Min.Major() && v.Minor() == r.Min.Minor()
	}
	return false
}

// String returns the normalized interval notation, for example "[1.0.0, )".
func (r *Range) String() string {
	if r == nil {
		return "(, )"
	}
	switch r.Float {
	case FloatMajor:
		return "*"
	case FloatMinor:
		return fmt.Sprintf("%d.*", r.Min.Major())
	case FloatPatch:
		return fmt.Sprintf("%d.%d.*", r.Min.Major(), r.Min.Minor())
	}
	if r.isExact() {
		return "[" + r.Min.String() + "]"
	}

	var b strings.Builder
	if r.MinInclusive {
		b.WriteByte('[')
	} else {
		b.WriteByte('(')
	}
	if r.Min != nil {
		b.WriteString(r.Min.String())
	}
	b.WriteString(", ")
	if r.Max != nil {
		b.WriteString(r.Max.String())
	}
	if r.MaxInclusive {
		b.WriteByte(']')
	} else {
		b.WriteByte(')')
	}
	return b.String()
}

// PrettyPrint returns the range in human form, for example "(= 1.0.0)" or
// "(≥ 1.0.0 && < 2.0.0)". A range accepting every version renders as "".
func (r *Range) PrettyPrint() string {
	if r.IsAll() {
		return ""
	}
	if r.isExact() {
		return "(= " + r.Min.String() + ")"
	}

	var parts []string
	if r.Min != nil {
		op := ">"
		if r.MinInclusive {
			op = "≥"
		}
		parts = append(parts, op+" "+r.Min.String())
	}
	if r.Max != nil {
		op := "<"
		if r.MaxInclusive {
			op = "≤"
		}
		parts = append(parts, op+" "+r.Max.String())
	}
	return "(" + strings.Join(parts, " && ") + ")"
}

func (r *Range) isExact() bool {
	return r.Min != nil && r.Max != nil && r.MinInclusive && r.MaxInclusive && r.Min.Equal(r.Max)
}

// MarshalText implements [encoding.TextMarshaler] using [Range.String].
func (r *Range) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler] using [Parse].
func (r *Range) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*r = *parsed
	return nil
}
