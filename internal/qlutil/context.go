package qlutil

import (
	"time"

	qlvalue "github.com/araddon/qlbridge/value"
)

// PropertiesContext exposes the flat properties of a record to qlbridge expressions.
// It implements the qlbridge expr.ContextReader interface.
type PropertiesContext[I any] struct {
	id    I
	props map[string]any
	meta  map[string]any
}

// NewPropertiesContext creates a new PropertiesContext.
// Keys of meta are resolved before properties, "_id" always resolves to id.
func NewPropertiesContext[I any](id I, props map[string]any, meta map[string]any) *PropertiesContext[I] {
	return &PropertiesContext[I]{
		id:    id,
		props: props,
		meta:  meta,
	}
}

// Get implements the qlbridge.ContextReader interface.
func (c *PropertiesContext[I]) Get(key string) (qlvalue.Value, bool) {
	if key == "_id" {
		return qlvalue.NewValue(c.id), true
	}
	if v, ok := c.meta[key]; ok {
		return qlvalue.NewValue(v), true
	}

	v, ok := c.props[key]
	if !ok {
		return nil, false
	}
	return qlvalue.NewValue(v), true
}

// Row implements the qlbridge.ContextReader interface.
func (c *PropertiesContext[I]) Row() map[string]qlvalue.Value {
	row := make(map[string]qlvalue.Value, len(c.props)+len(c.meta))
	for k, v := range c.props {
		row[k] = qlvalue.NewValue(v)
	}
	for k, v := range c.meta {
		row[k] = qlvalue.NewValue(v)
	}
	return row
}

// Ts implements the qlbridge.ContextReader interface.
// Records are not versioned by time.
func (c *PropertiesContext[I]) Ts() time.Time { return time.Time{} }
