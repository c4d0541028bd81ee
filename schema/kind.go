package schema

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrUnknownKind is returned when a kind name can not be parsed.
var ErrUnknownKind = errors.New("unknown kind")

// Kind is the closed set of value kinds a flat property can hold.
type Kind int

const (
	KindInvalid Kind = iota
	KindAny
	KindBool
	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindString
	KindSlice
	KindMap
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindAny:     "any",
	KindBool:    "bool",
	KindInt:     "int",
	KindInt8:    "int8",
	KindInt16:   "int16",
	KindInt32:   "int32",
	KindInt64:   "int64",
	KindUint:    "uint",
	KindUint8:   "uint8",
	KindUint16:  "uint16",
	KindUint32:  "uint32",
	KindUint64:  "uint64",
	KindFloat32: "float32",
	KindFloat64: "float64",
	KindString:  "string",
	KindSlice:   "slice",
	KindMap:     "map",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind parses a kind from its name.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s && Kind(i) != KindInvalid {
			return Kind(i), nil
		}
	}
	return KindInvalid, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// KindOf returns the kind of the given value.
// Slices and maps of any element type are classified by reflection, scalars must be of the exact builtin type.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindInvalid
	case bool:
		return KindBool
	case int:
		return KindInt
	case int8:
		return KindInt8
	case int16:
		return KindInt16
	case int32:
		return KindInt32
	case int64:
		return KindInt64
	case uint:
		return KindUint
	case uint8:
		return KindUint8
	case uint16:
		return KindUint16
	case uint32:
		return KindUint32
	case uint64:
		return KindUint64
	case float32:
		return KindFloat32
	case float64:
		return KindFloat64
	case string:
		return KindString
	case []any:
		return KindSlice
	case map[string]any:
		return KindMap
	}

	// Named scalar types are not one of the closed kinds, only their containers are.
	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice:
		return KindSlice
	case reflect.Map:
		return KindMap
	default:
		return KindInvalid
	}
}
