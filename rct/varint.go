package rct

import (
	"bytes"
	"fmt"
)

// The cryptonote varint: 7-bit little-endian groups, high bit set on every
// byte except the last.

func appendVarint(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v&0x7f)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

func readVarint(r *bytes.Reader) (uint64, error) {
	var v uint64
	var shift uint
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, fmt.Errorf("%w: truncated varint", ErrInvalidFieldLength)
		}
		if shift >= 63 && b > 1 {
			return 0, fmt.Errorf("%w: varint overflows 64 bits", ErrInvalidFieldLength)
		}
		v |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return v, nil
		}
		shift += 7
	}
}
