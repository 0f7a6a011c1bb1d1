package resolver

// MaxDistance is the distance reported for identities that cannot be
// reached from any target.
const MaxDistance = 20

// dependencyDistances returns, for every identity reachable from targets,
// the fewest dependency hops from a target. Targets themselves are at
// distance zero. Edges are the union of the dependencies of every present
// candidate of an identity.
func dependencyDistances(targets []string, packages []Candidate) map[Key]int {
	edges := make(map[Key][]Key)
	for _, c := range packages {
		if c.Absent {
			continue
		}
		for _, d := range c.Dependencies {
			edges[c.Key()] = append(edges[c.Key()], d.Key())
		}
	}

	dist := make(map[Key]int)
	var queue []Key
	for _, t := range targets {
		k := KeyOf(t)
		if _, ok := dist[k]; !ok {
			dist[k] = 0
			queue = append(queue, k)
		}
	}
	for len(queue) > 0 {
		k := queue[0]
		queue = queue[1:]
		if dist[k] >= MaxDistance {
			continue
		}
		for _, next := range edges[k] {
			if _, ok := dist[next]; !ok {
				dist[next] = dist[k] + 1
				queue = append(queue, next)
			}
		}
	}
	return dist
}

// LowestDistanceFromTarget returns the fewest dependency hops from any of
// targets to id over the dependencies declared in packages, or
// [MaxDistance] when id is unreachable.
func LowestDistanceFromTarget(id string, targets []string, packages []Candidate) int {
	return distanceOf(dependencyDistances(targets, packages), KeyOf(id))
}

func distanceOf(dist map[Key]int, key Key) int {
	if d, ok := dist[key]; ok && d < MaxDistance {
		return d
	}
	return MaxDistance
}
