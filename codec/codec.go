// Package codec encodes record ids into store keys.
package codec

import (
	"encoding"
	"fmt"

	"github.com/ehsanranjbar/propmap/codec/lex"
)

// Codec is an interface for encoding and decoding values.
type Codec[T any] interface {
	Encoder[T]
	Decoder[T]
}

// Encoder is an interface for encoding values.
type Encoder[T any] interface {
	Encode(v T) ([]byte, error)
}

// Decoder is an interface for decoding values.
type Decoder[T any] interface {
	Decode(bz []byte) (T, error)
}

// Uint64Codec is a codec for uint64s that keeps their order.
type Uint64Codec struct{}

// Encode encodes the given uint64 to bytes.
func (Uint64Codec) Encode(v uint64) ([]byte, error) {
	return lex.EncodeUint64(v), nil
}

// Decode decodes the given bytes to a uint64.
func (Uint64Codec) Decode(bz []byte) (uint64, error) {
	if len(bz) != 8 {
		return 0, fmt.Errorf("invalid uint64 length %d", len(bz))
	}
	return lex.DecodeUint64(bz), nil
}

// BinaryCodec is a codec for types that implement encoding.BinaryMarshaler and encoding.BinaryUnmarshaler.
type BinaryCodec[T any] struct{}

// Encode encodes the given value to bytes.
func (BinaryCodec[T]) Encode(v T) ([]byte, error) {
	m, ok := any(v).(encoding.BinaryMarshaler)
	if !ok {
		return nil, fmt.Errorf("%T is not a binary marshaler", v)
	}
	return m.MarshalBinary()
}

// Decode decodes the given bytes to a value.
func (BinaryCodec[T]) Decode(bz []byte) (T, error) {
	var v T
	u, ok := any(&v).(encoding.BinaryUnmarshaler)
	if !ok {
		return v, fmt.Errorf("%T is not a binary unmarshaler", &v)
	}
	err := u.UnmarshalBinary(bz)
	return v, err
}
