// Package composite converts nested maps into prefixed flat properties and back.
//
// A map field stored under prefix "addr" with delimiter "." is written as
// properties such as
//
//	addr.city    = "X"
//	addr.geo.lat = 1.0
//
// and rebuilt from them, guided by a schema.Descriptor of the declared map type.
package composite

import (
	"fmt"
	"maps"
	"reflect"
	"strings"

	"github.com/ehsanranjbar/propmap/schema"
)

var (
	_ schema.Flatter[any]   = (*Converter)(nil)
	_ schema.Unflatter[any] = (*Converter)(nil)
)

// Converter flattens and unflattens one map field.
// It is immutable once created and safe for concurrent use.
type Converter struct {
	prefix    string
	delimiter string
	head      string
	policy    schema.Policy
	desc      *schema.Descriptor
}

// New creates a new Converter for properties named prefix + delimiter + key path.
func New(prefix, delimiter string, opts ...func(*Converter)) (*Converter, error) {
	if delimiter == "" {
		return nil, ErrEmptyDelimiter
	}

	c := &Converter{
		prefix:    prefix,
		delimiter: delimiter,
		head:      prefix + delimiter,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// MustNew is like New but panics if an error occurs.
func MustNew(prefix, delimiter string, opts ...func(*Converter)) *Converter {
	c, err := New(prefix, delimiter, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// WithAllowCast allows storing the numeric kinds that are not native to the property store.
func WithAllowCast(allow bool) func(*Converter) {
	return func(c *Converter) {
		c.policy.AllowCast = allow
	}
}

// WithDescriptor sets the declared type used to rebuild keys and leaves.
func WithDescriptor(d *schema.Descriptor) func(*Converter) {
	return func(c *Converter) {
		c.desc = d
	}
}

// Prefix returns the property prefix.
func (c *Converter) Prefix() string { return c.prefix }

// Delimiter returns the delimiter between prefix and key fragments.
func (c *Converter) Delimiter() string { return c.delimiter }

// AllowCast reports whether castable kinds are admitted.
func (c *Converter) AllowCast() bool { return c.policy.AllowCast }

// Descriptor returns the declared type, nil if none.
func (c *Converter) Descriptor() *schema.Descriptor { return c.desc }

// Owns reports whether the property key belongs to this converter.
func (c *Converter) Owns(key string) bool {
	return strings.HasPrefix(key, c.head)
}

// Replace flattens v into props, removing every property owned by the converter first.
// props is left untouched if v can not be flattened. props must not be nil.
func (c *Converter) Replace(props map[string]any, v any) error {
	flat, err := c.Flatten(v)
	if err != nil {
		return err
	}

	maps.DeleteFunc(props, func(k string, _ any) bool { return c.Owns(k) })
	maps.Copy(props, flat)
	return nil
}

// UnflattenAs is like Converter.Unflatten but asserts the result to the map type M.
func UnflattenAs[M any](c *Converter, flat map[string]any) (M, error) {
	var zero M
	v, err := c.Unflatten(flat)
	if err != nil {
		return zero, err
	}

	m, ok := v.(M)
	if !ok {
		return zero, fmt.Errorf("%w: got %T, want %s", ErrShapeMismatch, v, reflect.TypeFor[M]())
	}
	return m, nil
}
