package universe

import "github.com/matzehuels/depsolve/pkg/resolver"

// Reachable returns the candidates whose identity can be reached from roots
// through any version's dependencies, in their original order.
//
// The resolver places every package it is given unless leaving it out is
// the only consistent choice, so a universe loaded from a file or gathered
// for other roots should be pruned before resolving.
func Reachable(cands []resolver.Candidate, roots []string) []resolver.Candidate {
	byKey := make(map[resolver.Key][]resolver.Candidate)
	for _, c := range cands {
		byKey[c.Key()] = append(byKey[c.Key()], c)
	}

	seen := make(map[resolver.Key]bool)
	queue := make([]resolver.Key, 0, len(roots))
	for _, r := range roots {
		k := resolver.KeyOf(r)
		if !seen[k] {
			seen[k] = true
			queue = append(queue, k)
		}
	}
	for len(queue) > 0 {
		k := queue[0]
		queue = queue[1:]
		for _, c := range byKey[k] {
			for _, d := range c.Dependencies {
				if dk := d.Key(); !seen[dk] {
					seen[dk] = true
					queue = append(queue, dk)
				}
			}
		}
	}

	out := make([]resolver.Candidate, 0, len(cands))
	for _, c := range cands {
		if seen[c.Key()] {
			out = append(out, c)
		}
	}
	return out
}
