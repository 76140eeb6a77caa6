// Package dict decodes the RLE_DICTIONARY / PLAIN_DICTIONARY value
// encoding: a data page body that begins with a single byte giving the
// bit-width of dictionary indices, followed by an RLE / bit-packing hybrid
// stream of those indices (see encoding/level for the hybrid format
// itself).
package dict

import (
	"fmt"

	"github.com/hardwoodfs/parquet/encoding/level"
)

// DecodeIndices reads the bit-width header byte from src and returns n
// dictionary indices decoded from what follows.
func DecodeIndices(src []byte, n int) ([]int32, error) {
	if len(src) < 1 {
		return nil, fmt.Errorf("dict: missing bit-width header byte")
	}
	bitWidth := int(src[0])
	if bitWidth < 0 || bitWidth > 32 {
		return nil, fmt.Errorf("dict: invalid index bit-width %d", bitWidth)
	}

	d := level.NewDecoder(src[1:], bitWidth)
	out := make([]int32, n)
	got, err := d.Decode(out)
	if err != nil {
		return nil, fmt.Errorf("dict: decoding indices: %w", err)
	}
	if got != n {
		return nil, fmt.Errorf("dict: expected %d indices, decoded %d", n, got)
	}
	return out, nil
}

// Gather materializes values by indexing into a dictionary array. T is
// typically one of the plain decoders' output element types (bool, int32,
// int64, float32, float64, [12]byte, []byte).
func Gather[T any](dictionary []T, indices []int32) ([]T, error) {
	out := make([]T, len(indices))
	for i, idx := range indices {
		if idx < 0 || int(idx) >= len(dictionary) {
			return nil, fmt.Errorf("dict: index %d out of range for dictionary of size %d", idx, len(dictionary))
		}
		out[i] = dictionary[idx]
	}
	return out, nil
}
