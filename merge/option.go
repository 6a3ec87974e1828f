package merge

import "fmt"

// Option holds either a value of type T or nothing. The zero Option is
// empty.
//
// Option carries the built-in Merge implementation: an empty receiver takes
// the other value, a set receiver keeps its own. Fields of this type need no
// strategy annotation to get "first value set wins" behavior.
type Option[T any] struct {
	value T
	some  bool
}

// Some returns an Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, some: true}
}

// None returns an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// FromPtr returns an Option holding *p, or an empty Option if p is nil.
func FromPtr[T any](p *T) Option[T] {
	if p == nil {
		return None[T]()
	}

	return Some(*p)
}

// IsSome reports whether the Option holds a value.
func (o Option[T]) IsSome() bool {
	return o.some
}

// IsNone reports whether the Option is empty.
func (o Option[T]) IsNone() bool {
	return !o.some
}

// Get returns the held value and true, or the zero value and false.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.some
}

// MustGet returns the held value and panics if the Option is empty.
func (o Option[T]) MustGet() T {
	if !o.some {
		panic("merge: MustGet called on an empty Option")
	}

	return o.value
}

// OrElse returns the held value, or fallback if the Option is empty.
func (o Option[T]) OrElse(fallback T) T {
	if !o.some {
		return fallback
	}

	return o.value
}

// Ptr returns a pointer to the held value, or nil if the Option is empty.
// Writes through the pointer change the Option.
func (o *Option[T]) Ptr() *T {
	if !o.some {
		return nil
	}

	return &o.value
}

// String returns "Some(v)" or "None".
func (o Option[T]) String() string {
	if !o.some {
		return "None"
	}

	return fmt.Sprintf("Some(%v)", o.value)
}

// Merge replaces o with other only when o is empty.
func (o *Option[T]) Merge(other Option[T]) {
	if !o.some {
		*o = other
	}
}
