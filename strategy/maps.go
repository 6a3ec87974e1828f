package strategy

import (
	"maps"

	"merge-generator/merge"
)

// AppendOrOverwrite adds every entry of right to left. On key collision the
// value from right wins.
func AppendOrOverwrite[M ~map[K]V, K comparable, V any](left *M, right M) {
	if *left == nil {
		*left = right
		return
	}

	maps.Copy(*left, right)
}

// AppendOrIgnore adds every entry of right to left. On key collision the
// value from left is kept.
func AppendOrIgnore[M ~map[K]V, K comparable, V any](left *M, right M) {
	if *left == nil {
		*left = right
		return
	}

	for k, v := range right {
		if _, ok := (*left)[k]; !ok {
			(*left)[k] = v
		}
	}
}

// AppendOrRecurse adds every entry of right to left. On key collision the
// two values are merged with their own Merge method.
func AppendOrRecurse[M ~map[K]V, K comparable, V any, P interface {
	*V
	merge.Merger[V]
}](left *M, right M) {
	if *left == nil {
		*left = right
		return
	}

	for k, v := range right {
		existing, ok := (*left)[k]
		if !ok {
			(*left)[k] = v
			continue
		}

		P(&existing).Merge(v)
		(*left)[k] = existing
	}
}
