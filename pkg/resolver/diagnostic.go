package resolver

import (
	"fmt"
	"slices"
	"strings"
)

const msgUnableToResolve = "Unable to resolve dependencies."

type problemKind int

const (
	problemMissing      problemKind = iota // absent, but something depends on it
	problemIncompatible                    // present, but outside a dependent's range
	problemUnresolved                      // referenced, but unknown to the universe
)

type problem struct {
	kind       problemKind
	id         string
	entry      Candidate   // the solution entry, if the identity has one
	dependents []Candidate // entries whose constraint the entry fails
}

// DiagnosticMessage explains why no solution was found.
//
// best is the deepest partial solution the search reached. The message
// describes the conflict closest to targets, measured in dependency hops
// over available; ties keep the order of best. installed contributes pinned
// versions and explicit allowed ranges to the explanation.
func DiagnosticMessage(best, available []Candidate, installed []InstalledPackage, targets []string) string {
	if !slices.ContainsFunc(available, func(c Candidate) bool { return !c.Absent }) {
		return msgUnableToResolve
	}

	problems := collectProblems(best, available)
	if len(problems) == 0 {
		return msgUnableToResolve
	}

	dist := dependencyDistances(targets, available)
	worst := problems[0]
	worstDist := distanceOf(dist, KeyOf(worst.id))
	for _, p := range problems[1:] {
		if d := distanceOf(dist, KeyOf(p.id)); d < worstDist {
			worst, worstDist = p, d
		}
	}
	return describe(worst, installed)
}

func collectProblems(best, available []Candidate) []problem {
	known := make(map[Key]bool, len(available)+len(best))
	inSolution := make(map[Key]bool, len(best))
	for _, c := range available {
		known[c.Key()] = true
	}
	for _, c := range best {
		known[c.Key()] = true
		inSolution[c.Key()] = true
	}

	var (
		problems []problem
		reported = make(map[Key]bool)
	)
	add := func(p problem) {
		key := KeyOf(p.id)
		if reported[key] {
			return
		}
		reported[key] = true
		problems = append(problems, p)
	}

	for _, entry := range best {
		if entry.Absent {
			if deps := dependentsOf(best, entry.Key(), nil); len(deps) > 0 {
				add(problem{kind: problemMissing, id: entry.ID, entry: entry, dependents: deps})
			}
			continue
		}

		violated := dependentsOf(best, entry.Key(), func(d Dependency) bool {
			return !d.Range.Satisfies(entry.Version)
		})
		if len(violated) > 0 {
			add(problem{kind: problemIncompatible, id: entry.ID, entry: entry, dependents: violated})
		}

		for _, d := range entry.Dependencies {
			key := d.Key()
			switch {
			case inSolution[key]:
			case !known[key]:
				add(problem{kind: problemUnresolved, id: d.ID})
			default:
				// The search never reached this identity. Report it only if
				// no available version fits every constraint placed on it.
				deps := dependentsOf(best, key, nil)
				if !anySatisfiesAll(available, key, deps) {
					add(problem{kind: problemMissing, id: d.ID, dependents: deps})
				}
			}
		}
	}
	return problems
}

// dependentsOf returns the present entries of solution that declare a
// dependency on key accepted by filter, sorted by identity.
func dependentsOf(solution []Candidate, key Key, filter func(Dependency) bool) []Candidate {
	var out []Candidate
	for _, c := range solution {
		if c.Absent || c.Key() == key {
			continue
		}
		if d, ok := c.Dependency(key); ok && (filter == nil || filter(d)) {
			out = append(out, c)
		}
	}
	slices.SortStableFunc(out, compareIdentity)
	return out
}

func anySatisfiesAll(available []Candidate, key Key, dependents []Candidate) bool {
	for _, c := range available {
		if c.Absent || c.Key() != key {
			continue
		}
		ok := true
		for _, dependent := range dependents {
			if d, _ := dependent.Dependency(key); !d.Range.Satisfies(c.Version) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

func describe(p problem, installed []InstalledPackage) string {
	if p.kind == problemUnresolved {
		return fmt.Sprintf("Unable to resolve dependency '%s'.", p.id)
	}

	key := KeyOf(p.id)
	pin, pinned := findInstalled(installed, key)

	switch {
	case pinned && pin.AllowedVersions != nil:
		return fmt.Sprintf("Unable to find a version of '%s' that is compatible with %s. '%s' has an additional constraint %s defined in packages.config.",
			p.id, constraintList(p.dependents, key), p.id, pin.AllowedVersions.PrettyPrint())

	case p.kind == problemIncompatible:
		return incompatible(p.entry.String(), p.dependents, key)

	case pinned && pin.Version != nil:
		deps := slices.DeleteFunc(slices.Clone(p.dependents), func(c Candidate) bool {
			d, _ := c.Dependency(key)
			return d.Range.Satisfies(pin.Version)
		})
		if len(deps) == 0 {
			deps = p.dependents
		}
		return incompatible(p.id+" "+pin.Version.String(), deps, key)
	}

	return fmt.Sprintf("Unable to find a version of '%s' that is compatible with %s.",
		p.id, constraintList(p.dependents, key))
}

func incompatible(subject string, dependents []Candidate, key Key) string {
	return fmt.Sprintf("%s '%s' is not compatible with %s.",
		msgUnableToResolve, subject, constraintList(dependents, key))
}

// constraintList renders "'a 1.0.0 constraint: b (= 1.0.0)', ..." for the
// dependents' constraints on key.
func constraintList(dependents []Candidate, key Key) string {
	parts := make([]string, 0, len(dependents))
	for _, c := range dependents {
		d, _ := c.Dependency(key)
		parts = append(parts, fmt.Sprintf("'%s constraint: %s'", c, d))
	}
	return strings.Join(parts, ", ")
}

func findInstalled(installed []InstalledPackage, key Key) (InstalledPackage, bool) {
	i := slices.IndexFunc(installed, func(p InstalledPackage) bool {
		return KeyOf(p.ID) == key
	})
	if i < 0 {
		return InstalledPackage{}, false
	}
	return installed[i], true
}
