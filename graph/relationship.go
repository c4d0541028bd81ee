package graph

import (
	"github.com/ehsanranjbar/propmap/composite"
	"github.com/google/uuid"
	msgpack "github.com/vmihailenco/msgpack/v5"
)

// Relationship is a typed, directed edge between two nodes with flat properties.
type Relationship struct {
	ID         uuid.UUID      `msgpack:"-"`
	Type       string         `msgpack:"type"`
	Start      uint64         `msgpack:"start"`
	End        uint64         `msgpack:"end"`
	Properties map[string]any `msgpack:"props,omitempty"`
}

// Other returns the endpoint of the relationship that is not nodeID.
func (r *Relationship) Other(nodeID uint64) uint64 {
	if r.Start == nodeID {
		return r.End
	}
	return r.Start
}

// SetComposite replaces the properties owned by c with the flattened form of v.
func (r *Relationship) SetComposite(c *composite.Converter, v any) error {
	if r.Properties == nil {
		r.Properties = make(map[string]any)
	}
	return c.Replace(r.Properties, v)
}

// Composite rebuilds the nested map owned by c from the relationship properties.
func (r *Relationship) Composite(c *composite.Converter) (any, error) {
	return c.Unflatten(r.Properties)
}

type relationshipRecord Relationship

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (r *Relationship) MarshalBinary() ([]byte, error) {
	return msgpack.Marshal((*relationshipRecord)(r))
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (r *Relationship) UnmarshalBinary(data []byte) error {
	return decode(data, (*relationshipRecord)(r))
}

func (r *Relationship) setID(id uuid.UUID) {
	r.ID = id
}
