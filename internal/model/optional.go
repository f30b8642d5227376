package model

import (
	"bytes"
	"encoding/json"
)

// Optional is a tri-state field for partial updates: absent (Set=false),
// explicit null (Set=true, Null=true) or a value (Set=true, Null=false).
// encoding/json only calls UnmarshalJSON for keys that are present, so a
// zero Optional means "absent".
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some builds a present, non-null Optional.
func Some[T any](v T) Optional[T] { return Optional[T]{Set: true, Value: v} }

// Null builds an explicit null.
func Null[T any]() Optional[T] { return Optional[T]{Set: true, Null: true} }

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(b, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Present reports whether a non-null value was supplied.
func (o Optional[T]) Present() bool { return o.Set && !o.Null }

// Or returns the supplied value, or def when absent or null.
func (o Optional[T]) Or(def T) T {
	if o.Present() {
		return o.Value
	}
	return def
}

// Merge applies o to a nullable field: absent keeps cur, null clears it,
// a value replaces it.
func (o Optional[T]) Merge(cur *T) *T {
	switch {
	case !o.Set:
		return cur
	case o.Null:
		return nil
	}
	v := o.Value
	return &v
}
