package strategy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"merge-generator/strategy"
)

func TestOverwriteFalse(t *testing.T) {
	for _, l := range []bool{false, true} {
		for _, r := range []bool{false, true} {
			left := l
			strategy.OverwriteFalse(&left, r)

			want := l
			if !l {
				want = r
			}

			assert.Equal(t, want, left, "left=%v right=%v", l, r)
		}
	}
}

func TestOverwriteTrue(t *testing.T) {
	for _, l := range []bool{false, true} {
		for _, r := range []bool{false, true} {
			left := l
			strategy.OverwriteTrue(&left, r)

			want := l
			if l {
				want = r
			}

			assert.Equal(t, want, left, "left=%v right=%v", l, r)
		}
	}
}

type featureFlag bool

func TestOverwriteFalse_NamedBool(t *testing.T) {
	flag := featureFlag(false)
	strategy.OverwriteFalse(&flag, true)
	assert.Equal(t, featureFlag(true), flag)
}
