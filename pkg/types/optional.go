package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
)

// Optional tracks whether a JSON field was present, explicitly null, or set to a value.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns an Optional holding value.
func Some[T any](value T) Optional[T] {
	return Optional[T]{Set: true, Value: value}
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	o.Set = true
	if bytes.Equal(trimmed, []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}

	var parsed T
	if err := json.Unmarshal(trimmed, &parsed); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return err
		}
		return &json.UnmarshalTypeError{
			Value: string(trimmed),
			Type:  reflect.TypeOf(parsed),
		}
	}
	o.Null = false
	o.Value = parsed
	return nil
}

// Present reports whether the field carries a non-null value.
func (o Optional[T]) Present() bool {
	return o.Set && !o.Null
}

// Ptr returns a pointer to the value, or nil when absent or null.
func (o Optional[T]) Ptr() *T {
	if !o.Present() {
		return nil
	}
	value := o.Value
	return &value
}

// OrElse returns the value, or fallback when absent or null.
func (o Optional[T]) OrElse(fallback T) T {
	if !o.Present() {
		return fallback
	}
	return o.Value
}
