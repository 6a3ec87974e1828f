package strategy

import "merge-generator/merge"

// OverwriteNil overwrites left with right if left is nil.
func OverwriteNil[T any](left **T, right *T) {
	if *left == nil {
		*left = right
	}
}

// OverwriteWithNonNil overwrites left with right whenever right is not nil.
func OverwriteWithNonNil[T any](left **T, right *T) {
	if right != nil {
		*left = right
	}
}

// RecursePtr merges *right into **left if both are set. Otherwise it behaves
// like OverwriteNil.
func RecursePtr[T any, P interface {
	*T
	merge.Merger[T]
}](left **T, right *T) {
	if right == nil {
		return
	}

	if *left == nil {
		*left = right
		return
	}

	P(*left).Merge(*right)
}
