// Package coerce converts stored scalar values back to the kinds declared for them.
//
// Storage layers commonly widen what they are given: integers come back as
// int64 and floats as float64. To narrows such values again.
package coerce

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/ehsanranjbar/propmap/schema"
	"github.com/spf13/cast"
	"golang.org/x/exp/constraints"
)

// ErrCoercion is returned when a value can not be converted to the requested kind.
var ErrCoercion = errors.New("coercion failed")

// ErrUnsupportedKind is returned together with ErrCoercion for target kinds that have no conversion.
var ErrUnsupportedKind = errors.New("unsupported target kind")

// To converts v to a value of the given kind.
// KindAny and KindInvalid return v unchanged.
func To(kind schema.Kind, v any) (any, error) {
	var (
		out any
		err error
	)
	switch kind {
	case schema.KindAny, schema.KindInvalid:
		return v, nil
	case schema.KindBool:
		out, err = cast.ToBoolE(v)
	case schema.KindInt:
		out, err = cast.ToIntE(v)
	case schema.KindInt8:
		out, err = Number[int8](v)
	case schema.KindInt16:
		out, err = Number[int16](v)
	case schema.KindInt32:
		out, err = Number[int32](v)
	case schema.KindInt64:
		out, err = cast.ToInt64E(v)
	case schema.KindUint:
		out, err = cast.ToUintE(v)
	case schema.KindUint8:
		out, err = Number[uint8](v)
	case schema.KindUint16:
		out, err = Number[uint16](v)
	case schema.KindUint32:
		out, err = Number[uint32](v)
	case schema.KindUint64:
		out, err = cast.ToUint64E(v)
	case schema.KindFloat32:
		out, err = cast.ToFloat32E(v)
	case schema.KindFloat64:
		out, err = cast.ToFloat64E(v)
	case schema.KindString:
		out, err = cast.ToStringE(v)
	case schema.KindSlice:
		out, err = slice(v)
	default:
		err = ErrUnsupportedKind
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v (type %T) to %s: %w", ErrCoercion, v, v, kind, err)
	}

	return out, nil
}

// Number converts v to the numeric type N.
// Integer targets reject values that do not fit.
func Number[N constraints.Integer | constraints.Float](v any) (N, error) {
	var zero N
	switch any(zero).(type) {
	case float32, float64:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return zero, err
		}
		return N(f), nil
	}

	i, err := cast.ToInt64E(v)
	if err != nil {
		return zero, err
	}
	n := N(i)
	if int64(n) != i || (n < 0) != (i < 0) {
		return zero, fmt.Errorf("%d overflows %T", i, zero)
	}
	return n, nil
}

// slice keeps slices of any element type as they are, since storage does not
// promise to return the same element type it was given.
func slice(v any) (any, error) {
	if v != nil && reflect.TypeOf(v).Kind() == reflect.Slice {
		return v, nil
	}
	return cast.ToSliceE(v)
}
