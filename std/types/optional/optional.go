package optional

import "golang.org/x/exp/constraints"

// Optional holds a value that may be absent.
// The zero value is an unset optional.
type Optional[T any] struct {
	value T
	isSet bool
}

// IsSet returns true if the optional value is set
func (o Optional[T]) IsSet() bool {
	return o.isSet
}

// Set sets the optional value
func (o *Optional[T]) Set(v T) {
	o.value = v
	o.isSet = true
}

// Unset clears the optional value
func (o *Optional[T]) Unset() {
	var zero T
	o.value = zero
	o.isSet = false
}

// Get returns the optional value and a boolean indicating if the value is set
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.isSet
}

// GetOr returns the optional value or a default value if the value is not set
func (o Optional[T]) GetOr(def T) T {
	if o.isSet {
		return o.value
	}
	return def
}

// Unwrap returns the optional value or panics if the value is not set
func (o Optional[T]) Unwrap() T {
	if o.isSet {
		return o.value
	}
	panic("Optional value is not set")
}

// Ptr returns a pointer to a copy of the value, or nil if unset.
func (o Optional[T]) Ptr() *T {
	if !o.isSet {
		return nil
	}
	v := o.value
	return &v
}

// Some creates an optional value with the given value
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, isSet: true}
}

// None creates an optional value with no value set
func None[T any]() Optional[T] {
	return Optional[T]{isSet: false}
}

// FromPtr creates an optional from a possibly nil pointer.
func FromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// Map applies f to the value if it is set.
func Map[A, B any](a Optional[A], f func(A) B) (out Optional[B]) {
	if a.isSet {
		out.Set(f(a.value))
	}
	return out
}

// Equal reports whether both optionals are unset, or both are set to equal values.
func Equal[T comparable](a, b Optional[T]) bool {
	if a.isSet != b.isSet {
		return false
	}
	return !a.isSet || a.value == b.value
}

// CastInt converts an integer optional value to another type
func CastInt[A, B constraints.Integer](a Optional[A]) (out Optional[B]) {
	if a.IsSet() {
		out.Set(B(a.Unwrap()))
	}
	return out
}
