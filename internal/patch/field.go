// Package patch provides an optional value type for partial updates. A Field
// distinguishes a key that was absent from a request body, a key that was
// sent as null, and a key that carries a value.
package patch

import (
	"bytes"
	"encoding/json"
	"fmt"
)

var null = []byte("null")

// Field is a value that may be absent, null, or set.
type Field[T any] struct {
	Present bool
	Null    bool
	Value   T
}

// Of returns a Field holding v.
func Of[T any](v T) Field[T] {
	return Field[T]{Present: true, Value: v}
}

// Null returns a Field explicitly set to null.
func Null[T any]() Field[T] {
	return Field[T]{Present: true, Null: true}
}

// UnmarshalJSON is only invoked by encoding/json when the key is present.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Present = true
	if bytes.Equal(bytes.TrimSpace(data), null) {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

// HasValue reports whether the field is present with a non-null value.
func (f Field[T]) HasValue() bool {
	return f.Present && !f.Null
}

// Ptr returns nil for an absent or null field and a pointer to the value
// otherwise.
func (f Field[T]) Ptr() *T {
	if !f.HasValue() {
		return nil
	}
	v := f.Value
	return &v
}

// SQLValue returns the value to bind for the column: nil for null.
func (f Field[T]) SQLValue() any {
	if f.Null {
		return nil
	}
	return f.Value
}

// NotNull returns an error when the field was sent as null. Used for
// columns that cannot hold NULL.
func (f Field[T]) NotNull(name string) error {
	if f.Present && f.Null {
		return fmt.Errorf("%s cannot be null", name)
	}
	return nil
}
