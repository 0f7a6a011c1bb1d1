package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindCircularDependency(t *testing.T) {
	tests := []struct {
		name     string
		solution []Candidate
		want     string
	}{
		{
			name: "basic",
			solution: []Candidate{
				pkg1("a", "1.0.0", "b", "[1.0.0]"),
				pkg1("b", "1.0.0", "a", "[1.0.0]"),
			},
			want: "a 1.0.0 => b 1.0.0 => a 1.0.0",
		},
		{
			name: "indirect",
			solution: []Candidate{
				pkg1("a", "1.0.0", "b", "[1.0.0]"),
				pkg1("b", "1.0.0", "c", "[1.0.0]"),
				pkg1("c", "1.0.0", "d", "[1.0.0]"),
				pkg1("d", "1.0.0", "a", "[1.0.0]"),
			},
			want: "a 1.0.0 => b 1.0.0 => c 1.0.0 => d 1.0.0 => a 1.0.0",
		},
		{
			name: "indirect with others",
			solution: []Candidate{
				pkg1("z", "1.0.0", "y", "[1.0.0]"),
				pkg1("y", "1.0.0", "c", "[1.0.0]"),
				pkg1("c", "1.0.0", "d", "[1.0.0]"),
				pkg1("d", "2.0.0", "z", "[1.0.0]"),
				absent("a"),
				pkg1("x", "1.0.0", "z", "[1.0.0]"),
				pkg1("t", "1.0.0", "a", "[1.0.0]"),
			},
			want: "c 1.0.0 => d 2.0.0 => z 1.0.0 => y 1.0.0 => c 1.0.0",
		},
		{
			name: "absent packages",
			solution: []Candidate{
				pkg("z", "1.0.0", dep("a", "[1.0.0]"), dep("b", "[1.0.0]")),
				absent("a"),
				absent("b"),
				absent("y"),
			},
			want: "",
		},
		{
			name: "diamond is acyclic",
			solution: []Candidate{
				pkg("a", "1.0.0", dep("b", "1.0"), dep("c", "1.0")),
				pkg1("b", "1.0.0", "d", "1.0"),
				pkg1("c", "1.0.0", "d", "1.0"),
				pkg("d", "1.0.0"),
			},
			want: "",
		},
		{
			name:     "self reference",
			solution: []Candidate{pkg1("a", "1.0.0", "A", "1.0")},
			want:     "a 1.0.0 => a 1.0.0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindCircularDependency(tt.solution)
			if tt.want == "" {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, joined(got))
		})
	}
}
