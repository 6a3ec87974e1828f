package strategy

import "merge-generator/merge"

// OverwriteNone overwrites left with right if left is empty.
func OverwriteNone[T any](left *merge.Option[T], right merge.Option[T]) {
	if left.IsNone() {
		*left = right
	}
}

// OverwriteWithSome overwrites left with right whenever right holds a value.
func OverwriteWithSome[T any](left *merge.Option[T], right merge.Option[T]) {
	if right.IsSome() {
		*left = right
	}
}

// Recurse merges the held values if both options are set. Otherwise it
// behaves like OverwriteNone.
func Recurse[T any, P interface {
	*T
	merge.Merger[T]
}](left *merge.Option[T], right merge.Option[T]) {
	incoming, ok := right.Get()
	if !ok {
		return
	}

	if held := left.Ptr(); held != nil {
		P(held).Merge(incoming)
		return
	}

	*left = right
}
