package composite

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrEmptyDelimiter is returned when a converter is created with an empty delimiter.
	ErrEmptyDelimiter = errors.New("delimiter must not be empty")
	// ErrNotAMap is returned when the value to flatten is not a map.
	ErrNotAMap = errors.New("value is not a map")
	// ErrUnsupportedLeafType is returned when a leaf value is of a kind that can not be stored.
	ErrUnsupportedLeafType = errors.New("unsupported leaf type")
	// ErrAmbiguousKey is returned when a key can not be told apart from a nested path.
	ErrAmbiguousKey = errors.New("ambiguous key")
	// ErrUnsupportedKeyType is returned when a map level declares keys that are neither text nor enum labels.
	ErrUnsupportedKeyType = errors.New("only text and enum keys are supported")
	// ErrUnknownEnumLabel is returned when a key is not a label of the declared enum.
	ErrUnknownEnumLabel = errors.New("no such enum label")
	// ErrShapeMismatch is returned when properties do not fit the declared nesting.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrUnknownEnum is returned when a config refers to an enum that was not provided.
	ErrUnknownEnum = errors.New("unknown enum")
	// ErrInvalidConfig is returned for malformed converter configs.
	ErrInvalidConfig = errors.New("invalid config")
)

// LeafError is returned when a leaf value at Key could not be converted.
type LeafError struct {
	Key   string
	Value any
	Type  reflect.Type
	Err   error
}

func newLeafError(key string, value any, err error) *LeafError {
	return &LeafError{
		Key:   key,
		Value: value,
		Type:  reflect.TypeOf(value),
		Err:   err,
	}
}

// Error implements the error interface.
func (e *LeafError) Error() string {
	return fmt.Sprintf("could not map key=%s, value=%v (type = %v): %v", e.Key, e.Value, e.Type, e.Err)
}

// Unwrap returns the underlying error.
func (e *LeafError) Unwrap() error {
	return e.Err
}

// KeyError is returned when the key fragment of a property can not be used.
type KeyError struct {
	Key      string
	Fragment string
	Err      error
}

// Error implements the error interface.
func (e *KeyError) Error() string {
	if e.Fragment == "" {
		return fmt.Sprintf("%s: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("key %q at %s: %v", e.Fragment, e.Key, e.Err)
}

// Unwrap returns the underlying error.
func (e *KeyError) Unwrap() error {
	return e.Err
}
