package resolver

import (
	"slices"
	"strings"
)

// FindCircularDependency returns a dependency cycle among the present
// candidates of solution, or nil when there is none.
//
// The path starts and ends with the same candidate, for example
// [a 1.0.0, b 1.0.0, a 1.0.0]. Absent candidates and dependencies on
// identities outside the solution are ignored. The search starts from
// candidates in identity order so the reported cycle is stable.
func FindCircularDependency(solution []Candidate) []Candidate {
	chosen := make(map[Key]Candidate, len(solution))
	var roots []Candidate
	for _, c := range solution {
		if c.Absent {
			continue
		}
		if _, dup := chosen[c.Key()]; dup {
			continue
		}
		chosen[c.Key()] = c
		roots = append(roots, c)
	}
	slices.SortStableFunc(roots, compareIdentity)

	const (
		unvisited = iota
		onStack
		done
	)
	state := make(map[Key]int, len(chosen))
	var stack []Candidate

	var visit func(c Candidate) []Candidate
	visit = func(c Candidate) []Candidate {
		state[c.Key()] = onStack
		stack = append(stack, c)
		for _, d := range c.Dependencies {
			target, ok := chosen[d.Key()]
			if !ok {
				continue
			}
			switch state[target.Key()] {
			case onStack:
				start := slices.IndexFunc(stack, func(s Candidate) bool { return s.Key() == target.Key() })
				return append(slices.Clone(stack[start:]), target)
			case unvisited:
				if cycle := visit(target); cycle != nil {
					return cycle
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[c.Key()] = done
		return nil
	}

	for _, c := range roots {
		if state[c.Key()] != unvisited {
			continue
		}
		if cycle := visit(c); cycle != nil {
			return cycle
		}
	}
	return nil
}

// formatCycle joins a cycle path as "a 1.0.0 => b 1.0.0 => a 1.0.0".
func formatCycle(path []Candidate) string {
	parts := make([]string, len(path))
	for i, c := range path {
		parts[i] = c.String()
	}
	return strings.Join(parts, " => ")
}
