package resolver

import "slices"

// TopologicalSort orders the present candidates of solution so that every
// candidate appears after the candidates it depends on. Among candidates
// whose dependencies are all placed, the smallest identity goes first, which
// makes the order independent of the input order.
//
// Absent candidates are dropped. If the solution contains a cycle, the
// candidates on it are appended in identity order once nothing else can be
// placed.
func TopologicalSort(solution []Candidate) []Candidate {
	byKey := make(map[Key]Candidate, len(solution))
	for _, c := range solution {
		if c.Absent {
			continue
		}
		if _, dup := byKey[c.Key()]; !dup {
			byKey[c.Key()] = c
		}
	}

	pending := make(map[Key]int, len(byKey))
	dependents := make(map[Key][]Key, len(byKey))
	for key, c := range byKey {
		seen := make(map[Key]bool)
		for _, d := range c.Dependencies {
			dk := d.Key()
			if _, ok := byKey[dk]; !ok || dk == key || seen[dk] {
				continue
			}
			seen[dk] = true
			pending[key]++
			dependents[dk] = append(dependents[dk], key)
		}
	}

	var ready []Candidate
	for key, c := range byKey {
		if pending[key] == 0 {
			ready = append(ready, c)
		}
	}
	slices.SortFunc(ready, compareIdentity)

	out := make([]Candidate, 0, len(byKey))
	placed := make(map[Key]bool, len(byKey))
	for len(out) < len(byKey) {
		if len(ready) == 0 {
			// Only cycles remain.
			var rest []Candidate
			for key, c := range byKey {
				if !placed[key] {
					rest = append(rest, c)
				}
			}
			slices.SortFunc(rest, compareIdentity)
			return append(out, rest...)
		}

		c := ready[0]
		ready = ready[1:]
		out = append(out, c)
		placed[c.Key()] = true

		for _, dk := range dependents[c.Key()] {
			pending[dk]--
			if pending[dk] == 0 {
				next := byKey[dk]
				i, _ := slices.BinarySearchFunc(ready, next, compareIdentity)
				ready = slices.Insert(ready, i, next)
			}
		}
	}
	return out
}
