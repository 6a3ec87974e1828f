package strategy

import "cmp"

// Max sets left to the greater of left and right. Left wins ties.
func Max[T cmp.Ordered](left *T, right T) {
	if cmp.Less(*left, right) {
		*left = right
	}
}

// Min sets left to the lesser of left and right. Left wins ties.
func Min[T cmp.Ordered](left *T, right T) {
	if cmp.Less(right, *left) {
		*left = right
	}
}
