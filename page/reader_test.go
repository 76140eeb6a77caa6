package page

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/hardwoodfs/parquet/compress/uncompressed"
	"github.com/hardwoodfs/parquet/format"
	"github.com/hardwoodfs/parquet/internal/thrift"
)

// --- minimal Thrift Compact Protocol encoder, test-only fixture builder ---

type thriftWriter struct {
	buf         bytes.Buffer
	lastFieldID int16
}

func (w *thriftWriter) writeUvarint(v uint64) {
	for v >= 0x80 {
		w.buf.WriteByte(byte(v) | 0x80)
		v >>= 7
	}
	w.buf.WriteByte(byte(v))
}

func (w *thriftWriter) writeVarint(v int64) {
	w.writeUvarint(uint64((v << 1) ^ (v >> 63)))
}

func (w *thriftWriter) fieldHeader(id int16, typ byte) {
	delta := id - w.lastFieldID
	if delta > 0 && delta <= 15 {
		w.buf.WriteByte(byte(delta)<<4 | typ)
	} else {
		w.buf.WriteByte(typ)
		w.writeVarint(int64(id))
	}
	w.lastFieldID = id
}

func (w *thriftWriter) i32Field(id int16, v int32) {
	w.fieldHeader(id, thrift.TypeI32)
	w.writeVarint(int64(v))
}

func (w *thriftWriter) structField(id int16, body func(*thriftWriter)) {
	w.fieldHeader(id, thrift.TypeStruct)
	nested := &thriftWriter{}
	body(nested)
	nested.stop()
	w.buf.Write(nested.buf.Bytes())
}

func (w *thriftWriter) stop() {
	w.buf.WriteByte(thrift.TypeStop)
}

// buildDataPageHeaderV1 encodes a minimal PageHeader for a DATA_PAGE.
func buildDataPageHeaderV1(uncompressedSize, compressedSize, numValues int32, encoding format.Encoding) []byte {
	w := &thriftWriter{}
	w.i32Field(1, int32(format.DataPage))
	w.i32Field(2, uncompressedSize)
	w.i32Field(3, compressedSize)
	w.structField(5, func(d *thriftWriter) {
		d.i32Field(1, numValues)
		d.i32Field(2, int32(encoding))
		d.i32Field(3, int32(format.RLE))
		d.i32Field(4, int32(format.RLE))
	})
	w.stop()
	return w.buf.Bytes()
}

func buildDictionaryPageHeader(uncompressedSize, compressedSize, numValues int32) []byte {
	w := &thriftWriter{}
	w.i32Field(1, int32(format.DictionaryPage))
	w.i32Field(2, uncompressedSize)
	w.i32Field(3, compressedSize)
	w.structField(7, func(d *thriftWriter) {
		d.i32Field(1, numValues)
		d.i32Field(2, int32(format.Plain))
	})
	w.stop()
	return w.buf.Bytes()
}

func encodeRLELevels(levels []int32, maxLevel int) []byte {
	// Encode as one big RLE run (even header = RLE), value repeated.
	// For mixed-value test fixtures we fall back to bit-packed groups of 8.
	allSame := true
	for _, l := range levels {
		if l != levels[0] {
			allSame = false
			break
		}
	}
	if allSame && len(levels) > 0 {
		w := &thriftWriter{}
		w.writeUvarint(uint64(len(levels)) << 1) // even => RLE run header
		width := bitsLen(maxLevel)
		nbytes := (width + 7) / 8
		if nbytes == 0 {
			nbytes = 1
		}
		val := uint32(levels[0])
		for i := 0; i < nbytes; i++ {
			w.buf.WriteByte(byte(val))
			val >>= 8
		}
		return w.buf.Bytes()
	}
	// bit-packed group path, group count must be multiple of 8
	width := bitsLen(maxLevel)
	n := len(levels)
	groups := (n + 7) / 8
	padded := groups * 8
	w := &thriftWriter{}
	header := uint64(groups)<<1 | 1 // odd => bit-packed, groups-of-8 count
	w.writeUvarint(header)
	bitbuf := make([]int32, padded)
	copy(bitbuf, levels)
	// LSB-first pack
	var cur byte
	var curBits int
	for _, v := range bitbuf {
		for b := 0; b < width; b++ {
			bit := (v >> uint(b)) & 1
			cur |= byte(bit) << uint(curBits)
			curBits++
			if curBits == 8 {
				w.buf.WriteByte(cur)
				cur = 0
				curBits = 0
			}
		}
	}
	if curBits > 0 {
		w.buf.WriteByte(cur)
	}
	return w.buf.Bytes()
}

func bitsLen(v int) int {
	n := 0
	for v > 0 {
		n++
		v >>= 1
	}
	return n
}

func prefixedLevels(levels []int32, maxLevel int) []byte {
	encoded := encodeRLELevels(levels, maxLevel)
	var out bytes.Buffer
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(encoded)))
	out.Write(lenBuf[:])
	out.Write(encoded)
	return out.Bytes()
}

func TestReadPageRequiredFlatInt32(t *testing.T) {
	values := []byte{
		1, 0, 0, 0,
		2, 0, 0, 0,
		3, 0, 0, 0,
	}
	header := buildDataPageHeaderV1(int32(len(values)), int32(len(values)), 3, format.Plain)
	data := append(header, values...)

	r := NewReader(data, format.Int32, 0, 0, 0, &uncompressed.Codec{}, 3)
	p, err := r.ReadPage()
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Int32s) != 3 || p.Int32s[0] != 1 || p.Int32s[2] != 3 {
		t.Fatalf("unexpected values: %v", p.Int32s)
	}
	if _, err := r.ReadPage(); err != io.EOF {
		t.Fatalf("expected io.EOF once chunk value count is exhausted, got %v", err)
	}
}

func TestReadPageOptionalWithNulls(t *testing.T) {
	defLevels := []int32{1, 0, 1, 0, 1}
	defStream := prefixedLevels(defLevels, 1)

	values := []byte{
		10, 0, 0, 0,
		20, 0, 0, 0,
		30, 0, 0, 0,
	}

	body := append(append([]byte{}, defStream...), values...)
	header := buildDataPageHeaderV1(int32(len(body)), int32(len(body)), 5, format.Plain)
	data := append(header, body...)

	r := NewReader(data, format.Int32, 0, 1, 0, &uncompressed.Codec{}, 5)
	p, err := r.ReadPage()
	if err != nil {
		t.Fatal(err)
	}
	if p.NumValues != 5 {
		t.Fatalf("expected 5 slots, got %d", p.NumValues)
	}
	if p.NumNonNull() != 3 {
		t.Fatalf("expected 3 non-null slots, got %d", p.NumNonNull())
	}
	if len(p.Int32s) != 3 || p.Int32s[1] != 20 {
		t.Fatalf("unexpected values: %v", p.Int32s)
	}
}

func TestReadPageDictionaryEncoded(t *testing.T) {
	dictValues := []byte{
		100, 0, 0, 0,
		200, 0, 0, 0,
	}
	dictHeader := buildDictionaryPageHeader(int32(len(dictValues)), int32(len(dictValues)), 2)
	dictPage := append(dictHeader, dictValues...)

	// indices: bit width 1 (2 entries fit in 1 bit), 3 values: 0,1,0
	idxBody := encodeRLELevels([]int32{0, 1, 0}, 1)
	indexBody := append([]byte{1}, idxBody...) // bit-width header byte
	dataHeader := buildDataPageHeaderV1(int32(len(indexBody)), int32(len(indexBody)), 3, format.RLEDictionary)
	dataPage := append(dataHeader, indexBody...)

	data := append(dictPage, dataPage...)

	r := NewReader(data, format.Int32, 0, 0, 0, &uncompressed.Codec{}, 3)
	p, err := r.ReadPage()
	if err != nil {
		t.Fatal(err)
	}
	if r.Dictionary() == nil || r.Dictionary().Len() != 2 {
		t.Fatalf("expected a 2-entry dictionary to be cached")
	}
	if len(p.Int32s) != 3 || p.Int32s[0] != 100 || p.Int32s[1] != 200 || p.Int32s[2] != 100 {
		t.Fatalf("unexpected gathered values: %v", p.Int32s)
	}
}
