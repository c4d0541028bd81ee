package graph

import (
	"bytes"
	"slices"

	"github.com/ehsanranjbar/propmap/composite"
	msgpack "github.com/vmihailenco/msgpack/v5"
)

// Node is a labeled record with flat properties.
type Node struct {
	ID         uint64         `msgpack:"-"`
	Labels     []string       `msgpack:"labels,omitempty"`
	Properties map[string]any `msgpack:"props,omitempty"`
}

// HasLabel reports whether the node carries label.
func (n *Node) HasLabel(label string) bool {
	return slices.Contains(n.Labels, label)
}

// SetComposite replaces the properties owned by c with the flattened form of v.
func (n *Node) SetComposite(c *composite.Converter, v any) error {
	if n.Properties == nil {
		n.Properties = make(map[string]any)
	}
	return c.Replace(n.Properties, v)
}

// Composite rebuilds the nested map owned by c from the node properties.
func (n *Node) Composite(c *composite.Converter) (any, error) {
	return c.Unflatten(n.Properties)
}

// nodeRecord has the fields of Node without its methods, so msgpack encodes
// the struct instead of calling back into MarshalBinary.
type nodeRecord Node

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (n *Node) MarshalBinary() ([]byte, error) {
	return msgpack.Marshal((*nodeRecord)(n))
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (n *Node) UnmarshalBinary(data []byte) error {
	return decode(data, (*nodeRecord)(n))
}

func (n *Node) setID(id uint64) {
	n.ID = id
}

// decode unmarshals data with loose interface decoding, so every integer
// property comes back as int64 or uint64 and every float as float64.
func decode(data []byte, v any) error {
	dec := msgpack.GetDecoder()
	defer msgpack.PutDecoder(dec)

	dec.Reset(bytes.NewReader(data))
	dec.UseLooseInterfaceDecoding(true)
	return dec.Decode(v)
}

func normalizeLabels(labels []string) ([]string, error) {
	if len(labels) == 0 {
		return nil, nil
	}
	if slices.Contains(labels, "") {
		return nil, ErrEmptyLabel
	}
	return slices.Compact(slices.Sorted(slices.Values(labels))), nil
}
