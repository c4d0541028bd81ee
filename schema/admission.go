package schema

import "strconv"

// Policy decides which kinds of leaf values may be written as flat properties.
type Policy struct {
	// AllowCast admits the narrower numeric kinds that storage widens on write.
	AllowCast bool
}

// Native reports whether the kind is storable without casting.
func (Policy) Native(k Kind) bool {
	switch k {
	case KindBool, KindInt64, KindFloat64, KindString, KindSlice:
		return true
	case KindInt:
		return strconv.IntSize == 64
	default:
		return false
	}
}

// Castable reports whether the kind is storable when casting is allowed.
func (Policy) Castable(k Kind) bool {
	switch k {
	case KindInt16, KindInt32, KindFloat32:
		return true
	case KindInt:
		return strconv.IntSize == 32
	default:
		return false
	}
}

// Admits reports whether a leaf of the given kind may be stored under this policy.
func (p Policy) Admits(k Kind) bool {
	return p.Native(k) || (p.AllowCast && p.Castable(k))
}
