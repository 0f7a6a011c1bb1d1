package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldRejectPair(t *testing.T) {
	tests := []struct {
		name string
		a, b Candidate
		want bool
	}{
		{"satisfied", pkg1("a", "1.0.0", "b", "[1.0.0]"), pkg("b", "1.0.0"), false},
		{"violated", pkg1("a", "1.0.0", "b", "[1.0.0]"), pkg("b", "2.0.0"), true},
		{"violated reversed", pkg("b", "2.0.0"), pkg1("a", "1.0.0", "b", "[1.0.0]"), true},
		{"absent target", pkg1("a", "1.0.0", "b", "1.0"), absent("b"), true},
		{"absent source", absent("a"), pkg("b", "1.0.0"), false},
		{"both absent", absent("a"), absent("b"), false},
		{"unrelated", pkg1("a", "1.0.0", "c", "[1.0.0]"), pkg("b", "9.0.0"), false},
		{"case insensitive", pkg1("a", "1.0.0", "B", "[1.0.0]"), pkg("b", "2.0.0"), true},
		{"nil range accepts present", pkg("a", "1.0.0", Dependency{ID: "b"}), pkg("b", "7.0.0"), false},
		{"nil range rejects absent", pkg("a", "1.0.0", Dependency{ID: "b"}), absent("b"), true},
		{"mutual", pkg1("a", "1.0.0", "b", "[1.0.0]"), pkg1("b", "1.0.0", "a", "[2.0.0]"), true},
		{"repeated target, second violated", pkg("a", "1.0.0", dep("b", "[1.0, )"), dep("b", "[2.0]")), pkg("b", "1.0.0"), true},
		{"repeated target, both met", pkg("a", "1.0.0", dep("b", "[1.0, )"), dep("b", "[2.0]")), pkg("b", "2.0.0"), false},
		{"repeated target, disjoint", pkg("a", "1.0.0", dep("b", "[1.0, 2.0)"), dep("b", "[3.0]")), pkg("b", "3.0.0"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldRejectPair(tt.a, tt.b))
			assert.Equal(t, tt.want, ShouldRejectPair(tt.b, tt.a))
		})
	}
}
