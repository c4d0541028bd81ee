package coerce_test

import (
	"testing"

	"github.com/ehsanranjbar/propmap/coerce"
	"github.com/ehsanranjbar/propmap/schema"
	"github.com/stretchr/testify/require"
)

func TestTo(t *testing.T) {
	tests := []struct {
		name string
		kind schema.Kind
		v    any
		want any
	}{
		{"Any", schema.KindAny, int64(1), int64(1)},
		{"Invalid", schema.KindInvalid, "x", "x"},
		{"Bool", schema.KindBool, "true", true},
		{"Int", schema.KindInt, int64(3), 3},
		{"Int8", schema.KindInt8, int64(-3), int8(-3)},
		{"Int16", schema.KindInt16, int64(300), int16(300)},
		{"Int32", schema.KindInt32, 7.0, int32(7)},
		{"Int64", schema.KindInt64, int32(7), int64(7)},
		{"Uint8", schema.KindUint8, int64(255), uint8(255)},
		{"Uint16", schema.KindUint16, int64(8), uint16(8)},
		{"Uint32", schema.KindUint32, int64(9), uint32(9)},
		{"Uint64", schema.KindUint64, int64(10), uint64(10)},
		{"Float32", schema.KindFloat32, 1.5, float32(1.5)},
		{"Float64", schema.KindFloat64, int64(2), 2.0},
		{"String", schema.KindString, "s", "s"},
		{"Slice", schema.KindSlice, []string{"a"}, []string{"a"}},
		{"Generic slice", schema.KindSlice, []any{int64(1)}, []any{int64(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := coerce.To(tt.kind, tt.v)
			require.NoError(t, err)
			require.IsType(t, tt.want, got)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestToErrors(t *testing.T) {
	tests := []struct {
		name string
		kind schema.Kind
		v    any
	}{
		{"Not a number", schema.KindInt64, "abc"},
		{"Not a bool", schema.KindBool, "maybe"},
		{"Overflow", schema.KindInt8, int64(300)},
		{"Negative unsigned", schema.KindUint16, int64(-1)},
		{"Not a slice", schema.KindSlice, 1},
		{"Map target", schema.KindMap, map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := coerce.To(tt.kind, tt.v)
			require.ErrorIs(t, err, coerce.ErrCoercion)
		})
	}

	t.Run("Unsupported kind", func(t *testing.T) {
		_, err := coerce.To(schema.KindMap, map[string]any{})
		require.ErrorIs(t, err, coerce.ErrUnsupportedKind)
	})
}

func TestNumber(t *testing.T) {
	f, err := coerce.Number[float32](int64(2))
	require.NoError(t, err)
	require.Equal(t, float32(2), f)

	i, err := coerce.Number[int16]("12")
	require.NoError(t, err)
	require.Equal(t, int16(12), i)

	_, err = coerce.Number[uint8](int64(256))
	require.Error(t, err)
}
