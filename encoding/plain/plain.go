// Package plain decodes the PLAIN parquet value encoding: the simplest
// encoding, where a page body is just the physical values laid out
// back-to-back with no further framing beyond what each physical type
// itself requires (a length prefix for BYTE_ARRAY, none for the rest).
//
// Grounded on segmentio/parquet-go's encoding/plain package, trimmed to
// decode-only and returning plain Go slices instead of the teacher's
// generic encoding.Values abstraction, since this module's row surface
// never needs to round-trip values back through an encoder.
//
// https://github.com/apache/parquet-format/blob/master/Encodings.md#plain-plain--0
package plain

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// ByteArrayLengthSize is the width, in bytes, of a BYTE_ARRAY value's
// length prefix.
const ByteArrayLengthSize = 4

// DecodeBoolean unpacks n booleans LSB-first from one bit per value.
func DecodeBoolean(src []byte, n int) ([]bool, error) {
	need := (n + 7) / 8
	if len(src) < need {
		return nil, fmt.Errorf("plain: BOOLEAN: %w", io.ErrUnexpectedEOF)
	}
	out := make([]bool, n)
	for i := 0; i < n; i++ {
		out[i] = (src[i/8]>>(uint(i)%8))&1 != 0
	}
	return out, nil
}

// DecodeInt32 decodes a run of little-endian int32 values.
func DecodeInt32(src []byte) ([]int32, error) {
	if len(src)%4 != 0 {
		return nil, fmt.Errorf("plain: INT32: input length %d is not a multiple of 4", len(src))
	}
	out := make([]int32, len(src)/4)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(src[i*4:]))
	}
	return out, nil
}

// DecodeInt64 decodes a run of little-endian int64 values.
func DecodeInt64(src []byte) ([]int64, error) {
	if len(src)%8 != 0 {
		return nil, fmt.Errorf("plain: INT64: input length %d is not a multiple of 8", len(src))
	}
	out := make([]int64, len(src)/8)
	for i := range out {
		out[i] = int64(binary.LittleEndian.Uint64(src[i*8:]))
	}
	return out, nil
}

// DecodeInt96 decodes a run of 12-byte INT96 values, each 3 little-endian
// uint32 words, without interpreting them further (INT96 is legacy and
// timestamp-only; no package in this module converts it to a time).
func DecodeInt96(src []byte) ([][12]byte, error) {
	if len(src)%12 != 0 {
		return nil, fmt.Errorf("plain: INT96: input length %d is not a multiple of 12", len(src))
	}
	out := make([][12]byte, len(src)/12)
	for i := range out {
		copy(out[i][:], src[i*12:i*12+12])
	}
	return out, nil
}

// DecodeFloat decodes a run of little-endian IEEE-754 single precision values.
func DecodeFloat(src []byte) ([]float32, error) {
	if len(src)%4 != 0 {
		return nil, fmt.Errorf("plain: FLOAT: input length %d is not a multiple of 4", len(src))
	}
	out := make([]float32, len(src)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[i*4:]))
	}
	return out, nil
}

// DecodeDouble decodes a run of little-endian IEEE-754 double precision values.
func DecodeDouble(src []byte) ([]float64, error) {
	if len(src)%8 != 0 {
		return nil, fmt.Errorf("plain: DOUBLE: input length %d is not a multiple of 8", len(src))
	}
	out := make([]float64, len(src)/8)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(src[i*8:]))
	}
	return out, nil
}

// DecodeByteArray splits src into n length-prefixed byte array values. The
// returned slices alias src; callers that retain values past the lifetime
// of the decompressed page buffer must copy them.
//
// A zero-length value at the very end of src must not be mistaken for
// running out of input: the length prefix is read first, and only then is
// the (possibly empty) payload sliced off.
func DecodeByteArray(src []byte, n int) ([][]byte, error) {
	out := make([][]byte, n)
	for i := 0; i < n; i++ {
		if len(src) < ByteArrayLengthSize {
			return nil, fmt.Errorf("plain: BYTE_ARRAY: %w", io.ErrUnexpectedEOF)
		}
		length := int(binary.LittleEndian.Uint32(src))
		src = src[ByteArrayLengthSize:]
		if length < 0 || length > len(src) {
			return nil, fmt.Errorf("plain: BYTE_ARRAY: value length %d exceeds remaining input of %d bytes", length, len(src))
		}
		out[i] = src[:length:length]
		src = src[length:]
	}
	return out, nil
}

// DecodeFixedLenByteArray splits src into n values of exactly size bytes
// each.
func DecodeFixedLenByteArray(src []byte, size, n int) ([][]byte, error) {
	want := size * n
	if len(src) < want {
		return nil, fmt.Errorf("plain: FIXED_LEN_BYTE_ARRAY: %w", io.ErrUnexpectedEOF)
	}
	out := make([][]byte, n)
	for i := 0; i < n; i++ {
		out[i] = src[i*size : i*size+size : i*size+size]
	}
	return out, nil
}
