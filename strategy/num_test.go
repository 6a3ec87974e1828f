package strategy_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"merge-generator/strategy"
)

func TestSaturatingAdd_Uint8(t *testing.T) {
	tests := []struct {
		left, right, want uint8
	}{
		{0, 0, 0},
		{0, 1, 1},
		{30, 10, 40},
		{255, 10, 255},
		{250, 5, 255},
		{250, 6, 255},
	}

	for _, tt := range tests {
		left := tt.left
		strategy.SaturatingAdd(&left, tt.right)
		assert.Equal(t, tt.want, left, "%d + %d", tt.left, tt.right)
	}
}

func TestSaturatingAdd_Int8(t *testing.T) {
	tests := []struct {
		left, right, want int8
	}{
		{1, 2, 3},
		{100, 27, 127},
		{100, 28, 127},
		{-100, -28, -128},
		{-100, -29, -128},
		{-5, 3, -2},
		{127, -1, 126},
	}

	for _, tt := range tests {
		left := tt.left
		strategy.SaturatingAdd(&left, tt.right)
		assert.Equal(t, tt.want, left, "%d + %d", tt.left, tt.right)
	}
}

func TestSaturatingAdd_WideTypes(t *testing.T) {
	i := int64(math.MaxInt64 - 1)
	strategy.SaturatingAdd(&i, 5)
	assert.Equal(t, int64(math.MaxInt64), i)

	j := int64(math.MinInt64 + 1)
	strategy.SaturatingAdd(&j, -5)
	assert.Equal(t, int64(math.MinInt64), j)

	u := uint64(math.MaxUint64)
	strategy.SaturatingAdd(&u, 1)
	assert.Equal(t, uint64(math.MaxUint64), u)

	n := 40
	strategy.SaturatingAdd(&n, 2)
	assert.Equal(t, 42, n)
}

func TestOverwriteZero(t *testing.T) {
	zero := uint8(0)
	strategy.OverwriteZero(&zero, 1)
	assert.Equal(t, uint8(1), zero)

	set := uint8(255)
	strategy.OverwriteZero(&set, 10)
	assert.Equal(t, uint8(255), set)

	stillZero := 0
	strategy.OverwriteZero(&stillZero, 0)
	assert.Equal(t, 0, stillZero)

	name := ""
	strategy.OverwriteZero(&name, "default")
	assert.Equal(t, "default", name)
}
