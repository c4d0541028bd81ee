package schema

import (
	"fmt"
	"reflect"
)

// Enum is a closed set of labeled values that can be used as map keys.
type Enum struct {
	name   string
	rt     reflect.Type
	labels []string
	values map[string]any
}

// NewEnum creates a new Enum of the given values.
// The label of each value is its String() result if it implements fmt.Stringer, or fmt.Sprint otherwise.
func NewEnum[T comparable](name string, values ...T) *Enum {
	e := &Enum{
		name:   name,
		rt:     reflect.TypeFor[T](),
		labels: make([]string, 0, len(values)),
		values: make(map[string]any, len(values)),
	}
	for _, v := range values {
		label := Label(v)
		if _, ok := e.values[label]; ok {
			panic(fmt.Sprintf("duplicate label %q in enum %s", label, name))
		}
		e.labels = append(e.labels, label)
		e.values[label] = v
	}

	return e
}

// Label returns the textual form of a key as it appears in a flat property key.
func Label(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Name returns the name of the enum.
func (e *Enum) Name() string {
	return e.name
}

// Type returns the Go type of the enum values.
func (e *Enum) Type() reflect.Type {
	return e.rt
}

// Labels returns the labels in declaration order.
func (e *Enum) Labels() []string {
	return append([]string(nil), e.labels...)
}

// Lookup returns the value with the given label.
func (e *Enum) Lookup(label string) (any, bool) {
	v, ok := e.values[label]
	return v, ok
}
