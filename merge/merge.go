package merge

// Merger is implemented by types that can absorb another value of the same
// type. After Merge returns the receiver holds the merged result and other
// must be treated as consumed.
type Merger[T any] interface {
	Merge(other T)
}

// From merges right into left and returns left.
func From[T any, P interface {
	*T
	Merger[T]
}](left, right T) T {
	P(&left).Merge(right)

	return left
}

// Precedence merges three sources given in decreasing precedence.
// It is equivalent to From(From(high, medium), low).
func Precedence[T any, P interface {
	*T
	Merger[T]
}](high, medium, low T) T {
	return From[T, P](From[T, P](high, medium), low)
}

// Chain merges first with every value of rest, in order. Sources are given
// in decreasing precedence, so Chain(flags, env, file, defaults) lets the
// strategies of T decide how a lower source fills in a higher one.
func Chain[T any, P interface {
	*T
	Merger[T]
}](first T, rest ...T) T {
	for _, next := range rest {
		P(&first).Merge(next)
	}

	return first
}
