// Package strategy provides named merge strategies for primitive and
// container types.
//
// Every strategy has the shape func(left *T, right T): it merges right into
// left in place and consumes right. Strategies are referenced from struct
// tags and called by generated Merge methods:
//
//	type Server struct {
//		Hosts []string `merge:"strategy=strategy.Append"`
//		Debug bool     `merge:"strategy=strategy.OverwriteFalse"`
//	}
//
// Any function with that shape is a valid strategy; the catalogue below only
// covers common cases:
//
//   - bool: OverwriteFalse, OverwriteTrue
//   - numbers: SaturatingAdd, OverwriteZero
//   - ordered values: Max, Min
//   - merge.Option: OverwriteNone, OverwriteWithSome, Recurse
//   - pointers: OverwriteNil, OverwriteWithNonNil, RecursePtr
//   - slices: Append, Prepend, OverwriteEmpty
//   - maps: AppendOrOverwrite, AppendOrIgnore, AppendOrRecurse
package strategy

// Func is a merge strategy for values of type T.
type Func[T any] func(left *T, right T)
