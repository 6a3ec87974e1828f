package strategy

import "slices"

// Append appends the elements of right to left.
func Append[S ~[]E, E any](left *S, right S) {
	*left = append(*left, right...)
}

// Prepend inserts the elements of right before the elements of left.
func Prepend[S ~[]E, E any](left *S, right S) {
	if len(right) == 0 {
		return
	}
	*left = slices.Concat(right, *left)
}

// OverwriteEmpty overwrites left with right if left has no elements.
func OverwriteEmpty[S ~[]E, E any](left *S, right S) {
	if len(*left) == 0 {
		*left = right
	}
}
