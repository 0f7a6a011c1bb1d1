package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func chain() []Candidate {
	return []Candidate{
		pkg1("A", "1.0.0", "B", "1.0.0"),
		pkg1("B", "1.0.0", "C", "1.0.0"),
		pkg1("C", "1.0.0", "D", "1.0.0"),
		pkg("D", "1.0.0"),
	}
}

func TestLowestDistanceFromTargetMultiplePaths(t *testing.T) {
	targets := []string{"A", "C"}
	packages := chain()

	assert.Equal(t, 0, LowestDistanceFromTarget("A", targets, packages))
	assert.Equal(t, 1, LowestDistanceFromTarget("B", targets, packages))
	assert.Equal(t, 0, LowestDistanceFromTarget("C", targets, packages))
	assert.Equal(t, 1, LowestDistanceFromTarget("D", targets, packages))
	assert.Equal(t, MaxDistance, LowestDistanceFromTarget("E", targets, packages))
}

func TestLowestDistanceFromTarget(t *testing.T) {
	targets := []string{"A"}
	packages := chain()

	assert.Equal(t, 0, LowestDistanceFromTarget("A", targets, packages))
	assert.Equal(t, 1, LowestDistanceFromTarget("b", targets, packages))
	assert.Equal(t, 2, LowestDistanceFromTarget("C", targets, packages))
	assert.Equal(t, 3, LowestDistanceFromTarget("D", targets, packages))
	assert.Equal(t, 20, LowestDistanceFromTarget("E", targets, packages))
}

func TestLowestDistanceIsCapped(t *testing.T) {
	var packages []Candidate
	ids := make([]string, 30)
	for i := range ids {
		ids[i] = string(rune('a'+i%26)) + string(rune('0'+i/26))
	}
	for i := 0; i < len(ids)-1; i++ {
		packages = append(packages, pkg1(ids[i], "1.0.0", ids[i+1], "1.0"))
	}

	assert.Equal(t, 19, LowestDistanceFromTarget(ids[19], ids[:1], packages))
	assert.Equal(t, MaxDistance, LowestDistanceFromTarget(ids[25], ids[:1], packages))
}
