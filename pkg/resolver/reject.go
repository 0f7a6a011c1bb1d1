package resolver

// ShouldRejectPair reports whether a and b cannot both be part of a
// solution. That is the case when either one declares a dependency on the
// other's identity and the other is absent or outside the declared range.
func ShouldRejectPair(a, b Candidate) bool {
	return rejects(a, b) || rejects(b, a)
}

func rejects(from, to Candidate) bool {
	if from.Absent {
		return false
	}
	d, ok := from.Dependency(to.Key())
	if !ok {
		return false
	}
	if to.Absent {
		return true
	}
	return !d.Range.Satisfies(to.Version)
}
