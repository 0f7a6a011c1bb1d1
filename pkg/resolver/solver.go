package resolver

import "slices"

// FindSolution picks one item from every group such that no two picked
// items are rejected by reject.
//
// Each group is sorted with less (stable) and items are tried in that
// order. The search is depth-first over an explicit stack of frames, one per
// group, and returns the first complete assignment it finds. It does not
// look for a better one.
//
// observe, when non-nil, receives a copy of the partial assignment every
// time the search reaches a depth at least as deep as any before. The last
// call before a failed search therefore holds the deepest attempt.
//
// FindSolution returns nil when no assignment exists. An empty groups slice
// yields an empty, non-nil solution.
func FindSolution[T any](groups [][]T, less func(a, b T) int, reject func(a, b T) bool, observe func([]T)) []T {
	sorted := make([][]T, len(groups))
	for i, g := range groups {
		sorted[i] = slices.Clone(g)
		if less != nil {
			slices.SortStableFunc(sorted[i], less)
		}
	}

	var (
		n          = len(sorted)
		frames     = make([]int, n) // candidate index chosen at each depth
		assignment = make([]T, 0, n)
		deepest    = 0
		depth      = 0
		next       = 0
	)
	for depth < n {
		pick := -1
		for i := next; i < len(sorted[depth]); i++ {
			if compatible(sorted[depth][i], assignment, reject) {
				pick = i
				break
			}
		}

		if pick < 0 {
			if depth == 0 {
				return nil
			}
			depth--
			next = frames[depth] + 1
			assignment = assignment[:depth]
			continue
		}

		frames[depth] = pick
		assignment = append(assignment, sorted[depth][pick])
		depth++
		next = 0

		if observe != nil && depth >= deepest {
			deepest = depth
			observe(slices.Clone(assignment))
		}
	}
	return slices.Clone(assignment)
}

func compatible[T any](item T, assignment []T, reject func(a, b T) bool) bool {
	if reject == nil {
		return true
	}
	for _, other := range assignment {
		if reject(item, other) {
			return false
		}
	}
	return true
}
