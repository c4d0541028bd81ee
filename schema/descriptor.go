package schema

import "fmt"

// KeyKind is the kind of keys at one level of a nested map.
type KeyKind int

const (
	// KeyText keys are plain strings.
	KeyText KeyKind = iota
	// KeyEnum keys are labels of an Enum.
	KeyEnum
)

// String returns the name of the key kind.
func (k KeyKind) String() string {
	switch k {
	case KeyText:
		return "text"
	case KeyEnum:
		return "enum"
	default:
		return fmt.Sprintf("KeyKind(%d)", int(k))
	}
}

// KeySpec describes the keys at one level of a nested map.
type KeySpec struct {
	Kind KeyKind
	Enum *Enum
}

// TextKey returns a KeySpec for string keys.
func TextKey() KeySpec {
	return KeySpec{Kind: KeyText}
}

// EnumKey returns a KeySpec for keys that are labels of e.
func EnumKey(e *Enum) KeySpec {
	return KeySpec{Kind: KeyEnum, Enum: e}
}

// String implements fmt.Stringer.
func (ks KeySpec) String() string {
	if ks.Kind == KeyEnum && ks.Enum != nil {
		return "enum:" + ks.Enum.Name()
	}
	return ks.Kind.String()
}

// Descriptor describes the declared shape of a nested map, one level at a time.
// A nil Descriptor stands for string keys and uncoerced values at every level.
//
// Descriptors must not be modified once handed to a converter.
type Descriptor struct {
	Key KeySpec
	// Elem describes the next level when values at this level are maps.
	Elem *Descriptor
	// Leaf is the kind leaf values are coerced to when Elem is nil.
	// KindAny and KindInvalid leave them as stored.
	Leaf Kind
}

// MapOf returns a Descriptor of a map whose values are maps described by elem.
func MapOf(key KeySpec, elem *Descriptor) *Descriptor {
	return &Descriptor{Key: key, Elem: elem, Leaf: KindMap}
}

// LeafMap returns a Descriptor of a map whose values are leaves of the given kind.
func LeafMap(key KeySpec, leaf Kind) *Descriptor {
	return &Descriptor{Key: key, Leaf: leaf}
}

// KeySpec returns the key spec of this level.
func (d *Descriptor) KeySpec() KeySpec {
	if d == nil {
		return TextKey()
	}
	return d.Key
}

// Next returns the descriptor of the next level, nil if not declared.
func (d *Descriptor) Next() *Descriptor {
	if d == nil {
		return nil
	}
	return d.Elem
}

// LeafKind returns the kind leaves at this level are coerced to.
func (d *Descriptor) LeafKind() Kind {
	if d == nil || d.Elem != nil || d.Leaf == KindInvalid {
		return KindAny
	}
	return d.Leaf
}

// DeclaresMap reports whether values at this level are declared to be maps.
func (d *Descriptor) DeclaresMap() bool {
	return d != nil && (d.Elem != nil || d.Leaf == KindMap)
}

// String implements fmt.Stringer.
func (d *Descriptor) String() string {
	if d == nil {
		return "map[text]any"
	}
	if d.Elem != nil {
		return fmt.Sprintf("map[%s]%s", d.Key, d.Elem)
	}
	return fmt.Sprintf("map[%s]%s", d.Key, d.LeafKind())
}
