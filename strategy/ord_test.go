package strategy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"merge-generator/strategy"
)

func TestMax(t *testing.T) {
	tests := []struct {
		left, right, want uint8
	}{
		{1, 2, 2},
		{2, 1, 2},
		{2, 2, 2},
		{2, 0, 2},
		{0, 2, 2},
		{33, 11, 33},
	}

	for _, tt := range tests {
		left := tt.left
		strategy.Max(&left, tt.right)
		assert.Equal(t, tt.want, left, "max(%d, %d)", tt.left, tt.right)
	}
}

func TestMin(t *testing.T) {
	tests := []struct {
		left, right, want uint8
	}{
		{1, 2, 1},
		{2, 1, 1},
		{2, 2, 2},
		{2, 0, 0},
		{0, 2, 0},
		{33, 11, 11},
	}

	for _, tt := range tests {
		left := tt.left
		strategy.Min(&left, tt.right)
		assert.Equal(t, tt.want, left, "min(%d, %d)", tt.left, tt.right)
	}
}

func TestMax_Strings(t *testing.T) {
	level := "debug"
	strategy.Max(&level, "warn")
	assert.Equal(t, "warn", level)

	strategy.Min(&level, "error")
	assert.Equal(t, "error", level)
}
