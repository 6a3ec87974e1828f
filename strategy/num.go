package strategy

import "unsafe"

// Integer is satisfied by all integer types.
type Integer interface {
	Signed | Unsigned
}

// Signed is satisfied by all signed integer types.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is satisfied by all unsigned integer types.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// SaturatingAdd sets left to left + right, clamped to the range of N instead
// of wrapping around.
func SaturatingAdd[N Integer](left *N, right N) {
	sum := *left + right
	lo, hi := bounds[N]()

	switch {
	case right > 0 && sum < *left:
		*left = hi
	case right < 0 && sum > *left:
		*left = lo
	default:
		*left = sum
	}
}

// OverwriteZero overwrites left with right if left is the zero value.
func OverwriteZero[T comparable](left *T, right T) {
	var zero T
	if *left == zero {
		*left = right
	}
}

// bounds returns the smallest and largest value of N.
func bounds[N Integer]() (N, N) {
	var zero N

	allOnes := ^zero
	if allOnes > zero {
		// unsigned
		return zero, allOnes
	}

	bits := unsafe.Sizeof(zero) * 8
	hi := N(1)<<(bits-1) - 1

	return -hi - 1, hi
}
