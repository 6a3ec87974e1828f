package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"skip", "skip", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"skip", "skp", 1},
		{"strategy", "stratgey", 2},
		{"strategy", "strategies", 3},
		{"kitten", "sitting", 3},
		{"Skip", "skip", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Distance(tt.a, tt.b))
			assert.Equal(t, tt.want, Distance(tt.b, tt.a), "distance must be symmetric")
		})
	}
}

func TestClosest(t *testing.T) {
	keys := []string{"skip", "strategy"}

	got, ok := Closest("skp", keys, 2)
	assert.True(t, ok)
	assert.Equal(t, "skip", got)

	got, ok = Closest("stratgy", keys, 2)
	assert.True(t, ok)
	assert.Equal(t, "strategy", got)

	_, ok = Closest("ignore", keys, 2)
	assert.False(t, ok)

	_, ok = Closest("anything", nil, 2)
	assert.False(t, ok)
}
