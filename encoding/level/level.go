// Package level decodes the RLE / bit-packing hybrid stream used for
// Parquet repetition and definition levels (and, with a different
// bit-width, dictionary indices).
//
// Grounded on the run-length dispatch of segmentio/parquet-go's
// encoding/rle decoder (the even/odd varint header selects an RLE run vs a
// bit-packed group) but implemented as straightforward byte-wise
// bit-packing rather than the teacher's unsafe word-level tricks.
package level

import (
	"fmt"
	"io"
)

// runKind distinguishes the two hybrid run encodings.
type runKind int

const (
	noRun runKind = iota
	rleRun
	bitPackedRun
)

// Decoder reads a sequence of int32 levels (or dictionary indices) out of
// an RLE / bit-packing hybrid byte stream at a fixed bit width.
//
// A Decoder is reusable: call Reset to start decoding a new stream without
// reallocating its internal buffers. Decode may be called repeatedly with
// output slices shorter than a single run or bit-packed group; the Decoder
// remembers how much of the in-progress run remains between calls.
type Decoder struct {
	data     []byte
	pos      int
	bitWidth uint

	kind    runKind
	remain  int   // values left in the current run/group
	rleVal  int32 // RLE run: the repeated value

	// bitPackedRun state: a small buffer of already-unpacked values not
	// yet handed out, refilled 8 values (one group chunk) at a time.
	bitBuf    [8]int32
	bitBufPos int
	bitBufLen int
}

// NewDecoder constructs a Decoder reading from data at the given bit
// width. bitWidth must be in [0, 32]; 0 means every level is zero and no
// bytes are consumed, matching the spec's "stream is absent when
// max_level == 0" rule.
func NewDecoder(data []byte, bitWidth int) *Decoder {
	d := &Decoder{}
	d.Reset(data, bitWidth)
	return d
}

// Reset points the Decoder at a new byte slice and bit width.
func (d *Decoder) Reset(data []byte, bitWidth int) {
	d.data = data
	d.pos = 0
	d.bitWidth = uint(bitWidth)
	d.kind = noRun
	d.remain = 0
	d.bitBufPos = 0
	d.bitBufLen = 0
}

func (d *Decoder) byteWidth() int {
	return int((d.bitWidth + 7) / 8)
}

// Decode fills out with up to len(out) levels, returning the number
// decoded. It returns io.EOF only when no levels at all could be produced
// because the stream is exhausted; a short, non-zero read is not an
// error — callers loop until len(out) values have been collected.
func (d *Decoder) Decode(out []int32) (int, error) {
	if d.bitWidth == 0 {
		for i := range out {
			out[i] = 0
		}
		return len(out), nil
	}

	n := 0
	for n < len(out) {
		if d.kind == noRun {
			if d.pos >= len(d.data) {
				break
			}
			if err := d.readRunHeader(); err != nil {
				return n, err
			}
		}

		switch d.kind {
		case rleRun:
			count := d.remain
			if want := len(out) - n; count > want {
				count = want
			}
			for i := 0; i < count; i++ {
				out[n+i] = d.rleVal
			}
			n += count
			d.remain -= count
			if d.remain == 0 {
				d.kind = noRun
			}
		case bitPackedRun:
			for n < len(out) && d.remain > 0 {
				if d.bitBufPos == d.bitBufLen {
					if err := d.fillBitBuf(); err != nil {
						return n, err
					}
				}
				out[n] = d.bitBuf[d.bitBufPos]
				d.bitBufPos++
				n++
				d.remain--
			}
			if d.remain == 0 {
				d.kind = noRun
			}
		}
	}

	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

func (d *Decoder) readRunHeader() error {
	header, hn, err := readUvarint(d.data[d.pos:])
	if err != nil {
		return fmt.Errorf("level: reading run header: %w", err)
	}
	d.pos += hn

	if header&1 == 0 {
		runLength := int(header >> 1)
		value, vn, err := d.readPackedValue(d.data[d.pos:])
		if err != nil {
			return fmt.Errorf("level: reading RLE run value: %w", err)
		}
		d.pos += vn
		d.kind = rleRun
		d.remain = runLength
		d.rleVal = value
	} else {
		groupCount := int(header >> 1)
		d.kind = bitPackedRun
		d.remain = groupCount * 8
		d.bitBufPos = 0
		d.bitBufLen = 0
	}
	return nil
}

func (d *Decoder) readPackedValue(b []byte) (int32, int, error) {
	w := d.byteWidth()
	if w == 0 {
		return 0, 0, nil
	}
	if len(b) < w {
		return 0, 0, io.ErrUnexpectedEOF
	}
	var v uint32
	for i := 0; i < w; i++ {
		v |= uint32(b[i]) << (8 * i)
	}
	return int32(v), w, nil
}

// fillBitBuf unpacks the next 8 LSB-first, bit-width-packed values (one
// bit-packing "chunk", per the format's rule that bit-packed groups always
// contain a multiple of 8 values) into bitBuf.
func (d *Decoder) fillBitBuf() error {
	n := 8
	if d.remain < n {
		n = d.remain
	}
	totalBits := n * int(d.bitWidth)
	totalBytes := (totalBits + 7) / 8
	if len(d.data)-d.pos < totalBytes {
		return io.ErrUnexpectedEOF
	}
	b := d.data[d.pos : d.pos+totalBytes]

	var bitBuf uint64
	var bitCount uint
	byteIdx := 0
	mask := uint64(1)<<d.bitWidth - 1

	for i := 0; i < n; i++ {
		for bitCount < d.bitWidth {
			bitBuf |= uint64(b[byteIdx]) << bitCount
			bitCount += 8
			byteIdx++
		}
		d.bitBuf[i] = int32(bitBuf & mask)
		bitBuf >>= d.bitWidth
		bitCount -= d.bitWidth
	}

	d.pos += totalBytes
	d.bitBufPos = 0
	d.bitBufLen = n
	return nil
}

func readUvarint(b []byte) (uint64, int, error) {
	var x uint64
	var shift uint
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c < 0x80 {
			return x | uint64(c)<<shift, i + 1, nil
		}
		x |= uint64(c&0x7f) << shift
		shift += 7
		if shift >= 64 {
			return 0, 0, fmt.Errorf("varint overflow")
		}
	}
	return 0, 0, io.ErrUnexpectedEOF
}
