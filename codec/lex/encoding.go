package lex

import "encoding/binary"

// EncodeUint64 returns the big endian byte slice representation of the given uint64, which sorts like the number.
func EncodeUint64(v uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, v)
}

// DecodeUint64 returns the uint64 representation of the given byte slice.
func DecodeUint64(b []byte) uint64 {
	return binary.BigEndian.Uint64(b)
}
