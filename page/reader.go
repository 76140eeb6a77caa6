package page

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"

	"github.com/hardwoodfs/parquet/compress"
	"github.com/hardwoodfs/parquet/encoding/dict"
	"github.com/hardwoodfs/parquet/encoding/level"
	"github.com/hardwoodfs/parquet/encoding/plain"
	"github.com/hardwoodfs/parquet/format"
	"github.com/hardwoodfs/parquet/internal/thrift"
)

// Reader streams the pages of one column chunk out of an in-memory byte
// range (the chunk's bytes, sliced out of the file by the caller starting
// at its dictionary or first data page offset). It transparently consumes
// and caches the chunk's dictionary page, if any, the first time a page
// using dictionary encoding is encountered.
type Reader struct {
	data []byte
	pos  int

	typ        format.Type
	typeLength int32
	maxDef     int
	maxRep     int
	codec      compress.Codec

	// remaining is the column chunk's declared value count (NumValues in
	// ColumnMetaData), decremented as data pages are consumed. It is the
	// authoritative signal for exhaustion: ReadPage returns io.EOF once
	// it reaches zero, rather than relying on data running out, since a
	// column chunk's byte range may include trailing padding.
	remaining int64

	dictionary *Dictionary
}

// NewReader constructs a Reader over data, the byte range of a single
// column chunk (from its dictionary page or first data page offset
// through the end of its compressed bytes). numValues is the chunk's
// declared total value count, from ColumnMetaData.NumValues.
func NewReader(data []byte, typ format.Type, typeLength int32, maxDef, maxRep int, codec compress.Codec, numValues int64) *Reader {
	return &Reader{
		data:       data,
		typ:        typ,
		typeLength: typeLength,
		maxDef:     maxDef,
		maxRep:     maxRep,
		codec:      codec,
		remaining:  numValues,
	}
}

// Dictionary returns the column chunk's dictionary page, decoded the
// first time ReadPage encountered one, or nil if the chunk has none (or
// ReadPage hasn't reached it yet).
func (r *Reader) Dictionary() *Dictionary { return r.dictionary }

// ReadPage decodes and returns the next data page in the chunk, silently
// consuming any dictionary page it finds along the way. It returns io.EOF
// once the chunk's declared value count has been fully produced.
func (r *Reader) ReadPage() (*Page, error) {
	for {
		if r.remaining <= 0 {
			return nil, io.EOF
		}
		if r.pos >= len(r.data) {
			return nil, fmt.Errorf("page: column chunk truncated with %d values still declared", r.remaining)
		}

		header, bodyStart, err := r.readHeader()
		if err != nil {
			return nil, err
		}
		bodyEnd := bodyStart + int(header.CompressedPageSize)
		if bodyEnd > len(r.data) {
			return nil, fmt.Errorf("page: page body (%d bytes) exceeds remaining chunk data", header.CompressedPageSize)
		}
		body := r.data[bodyStart:bodyEnd]
		r.pos = bodyEnd

		switch header.Type {
		case format.DictionaryPage:
			d, err := r.decodeDictionaryPage(header, body)
			if err != nil {
				return nil, err
			}
			r.dictionary = d
			continue // a dictionary page never counts toward NumValues
		case format.DataPage:
			return r.decodeDataPageV1(header, body)
		case format.DataPageV2:
			return r.decodeDataPageV2(header, body)
		default:
			return nil, fmt.Errorf("page: unsupported page type %s", header.Type)
		}
	}
}

func (r *Reader) readHeader() (*format.PageHeader, int, error) {
	cur := thrift.NewCursor(r.data[r.pos:])
	header, err := format.ReadPageHeader(cur)
	if err != nil {
		return nil, 0, fmt.Errorf("page: reading page header: %w", err)
	}
	return header, r.pos + cur.Offset(), nil
}

func (r *Reader) decompress(uncompressedSize int, compressed []byte) ([]byte, error) {
	return r.codec.Decode(make([]byte, 0, uncompressedSize), compressed)
}

func (r *Reader) decodeDictionaryPage(header *format.PageHeader, body []byte) (*Dictionary, error) {
	if header.DictionaryPageHeader == nil {
		return nil, fmt.Errorf("page: DICTIONARY_PAGE with no DictionaryPageHeader")
	}
	uncompressed, err := r.decompress(int(header.UncompressedPageSize), body)
	if err != nil {
		return nil, fmt.Errorf("page: decompressing dictionary page: %w", err)
	}
	n := int(header.DictionaryPageHeader.NumValues)
	return r.decodeDictionaryValues(uncompressed, n)
}

func (r *Reader) decodeDictionaryValues(src []byte, n int) (*Dictionary, error) {
	d := &Dictionary{Type: r.typ}
	var err error
	switch r.typ {
	case format.Boolean:
		d.Booleans, err = plain.DecodeBoolean(src, n)
	case format.Int32:
		d.Int32s, err = plain.DecodeInt32(src)
	case format.Int64:
		d.Int64s, err = plain.DecodeInt64(src)
	case format.Int96:
		d.Int96s, err = plain.DecodeInt96(src)
	case format.Float:
		d.Floats, err = plain.DecodeFloat(src)
	case format.Double:
		d.Doubles, err = plain.DecodeDouble(src)
	case format.ByteArray:
		d.Bytes, err = plain.DecodeByteArray(src, n)
	case format.FixedLenByteArray:
		d.Bytes, err = plain.DecodeFixedLenByteArray(src, int(r.typeLength), n)
	default:
		return nil, fmt.Errorf("page: unsupported physical type %s", r.typ)
	}
	if err != nil {
		return nil, fmt.Errorf("page: decoding dictionary values: %w", err)
	}
	return d, nil
}

// decodeDataPageV1 implements steps 3-5 of the page algorithm for a v1
// page: the whole body is one compressed blob; rep levels (if any) and
// def levels (if any) are each a 4-byte-length-prefixed RLE stream,
// followed by the value stream in the page's declared encoding.
func (r *Reader) decodeDataPageV1(header *format.PageHeader, body []byte) (*Page, error) {
	if header.DataPageHeader == nil {
		return nil, fmt.Errorf("page: DATA_PAGE with no DataPageHeader")
	}
	h := header.DataPageHeader
	numValues := int(h.NumValues)

	uncompressed, err := r.decompress(int(header.UncompressedPageSize), body)
	if err != nil {
		return nil, fmt.Errorf("page: decompressing data page: %w", err)
	}

	buf := uncompressed
	var repLevels, defLevels []int32

	if r.maxRep > 0 {
		repLevels, buf, err = readPrefixedLevels(buf, r.maxRep, numValues)
		if err != nil {
			return nil, fmt.Errorf("page: repetition levels: %w", err)
		}
	}
	if r.maxDef > 0 {
		defLevels, buf, err = readPrefixedLevels(buf, r.maxDef, numValues)
		if err != nil {
			return nil, fmt.Errorf("page: definition levels: %w", err)
		}
	}

	nonNull := numValues
	if r.maxDef > 0 {
		nonNull = countNonNull(defLevels, r.maxDef)
	}

	page, err := r.decodeValues(h.Encoding, buf, nonNull)
	if err != nil {
		return nil, err
	}
	page.NumValues = numValues
	page.DefinitionLevels = defLevels
	page.RepetitionLevels = repLevels
	page.MaxDefinitionLevel = r.maxDef
	page.MaxRepetitionLevel = r.maxRep

	r.remaining -= int64(numValues)
	return page, nil
}

// decodeDataPageV2 implements the v2 variant: rep/def level streams are
// always uncompressed and have explicit byte lengths in the header
// instead of a 4-byte length prefix; only the value bytes may be
// compressed (IsCompressed, defaulting to true for forward compatibility
// with encoders that omit the field).
func (r *Reader) decodeDataPageV2(header *format.PageHeader, body []byte) (*Page, error) {
	if header.DataPageHeaderV2 == nil {
		return nil, fmt.Errorf("page: DATA_PAGE_V2 with no DataPageHeaderV2")
	}
	h := header.DataPageHeaderV2
	numValues := int(h.NumValues)

	repLen := int(h.RepetitionLevelsByteLength)
	defLen := int(h.DefinitionLevelsByteLength)
	if repLen+defLen > len(body) {
		return nil, fmt.Errorf("page: level byte lengths exceed page body")
	}

	var repLevels, defLevels []int32
	var err error
	if r.maxRep > 0 && repLen > 0 {
		repLevels, err = decodeLevels(body[:repLen], r.maxRep, numValues)
		if err != nil {
			return nil, fmt.Errorf("page: repetition levels: %w", err)
		}
	}
	if r.maxDef > 0 && defLen > 0 {
		defLevels, err = decodeLevels(body[repLen:repLen+defLen], r.maxDef, numValues)
		if err != nil {
			return nil, fmt.Errorf("page: definition levels: %w", err)
		}
	}

	valueBytes := body[repLen+defLen:]
	if h.IsCompressed {
		valueUncompressedSize := int(header.UncompressedPageSize) - repLen - defLen
		valueBytes, err = r.decompress(valueUncompressedSize, valueBytes)
		if err != nil {
			return nil, fmt.Errorf("page: decompressing data page v2 values: %w", err)
		}
	}

	nonNull := numValues - int(h.NumNulls)

	page, err := r.decodeValues(h.Encoding, valueBytes, nonNull)
	if err != nil {
		return nil, err
	}
	page.NumValues = numValues
	page.DefinitionLevels = defLevels
	page.RepetitionLevels = repLevels
	page.MaxDefinitionLevel = r.maxDef
	page.MaxRepetitionLevel = r.maxRep

	r.remaining -= int64(numValues)
	return page, nil
}

func (r *Reader) decodeValues(encoding format.Encoding, src []byte, n int) (*Page, error) {
	page := &Page{Type: r.typ, TypeLength: r.typeLength}
	var err error

	switch encoding {
	case format.Plain:
		switch r.typ {
		case format.Boolean:
			page.Booleans, err = plain.DecodeBoolean(src, n)
		case format.Int32:
			page.Int32s, err = plain.DecodeInt32(src)
		case format.Int64:
			page.Int64s, err = plain.DecodeInt64(src)
		case format.Int96:
			page.Int96s, err = plain.DecodeInt96(src)
		case format.Float:
			page.Floats, err = plain.DecodeFloat(src)
		case format.Double:
			page.Doubles, err = plain.DecodeDouble(src)
		case format.ByteArray:
			page.Bytes, err = plain.DecodeByteArray(src, n)
		case format.FixedLenByteArray:
			page.Bytes, err = plain.DecodeFixedLenByteArray(src, int(r.typeLength), n)
		default:
			return nil, fmt.Errorf("page: unsupported physical type %s", r.typ)
		}

	case format.PlainDictionary, format.RLEDictionary:
		if r.dictionary == nil {
			return nil, fmt.Errorf("page: dictionary-encoded page with no preceding dictionary page")
		}
		indices, ierr := dict.DecodeIndices(src, n)
		if ierr != nil {
			return nil, fmt.Errorf("page: decoding dictionary indices: %w", ierr)
		}
		err = gatherDictionary(page, r.dictionary, indices)

	default:
		return nil, fmt.Errorf("page: unsupported value encoding %s", encoding)
	}

	if err != nil {
		return nil, fmt.Errorf("page: decoding values: %w", err)
	}
	return page, nil
}

func gatherDictionary(page *Page, d *Dictionary, indices []int32) error {
	var err error
	switch d.Type {
	case format.Boolean:
		page.Booleans, err = dict.Gather(d.Booleans, indices)
	case format.Int32:
		page.Int32s, err = dict.Gather(d.Int32s, indices)
	case format.Int64:
		page.Int64s, err = dict.Gather(d.Int64s, indices)
	case format.Int96:
		page.Int96s, err = dict.Gather(d.Int96s, indices)
	case format.Float:
		page.Floats, err = dict.Gather(d.Floats, indices)
	case format.Double:
		page.Doubles, err = dict.Gather(d.Doubles, indices)
	default:
		page.Bytes, err = dict.Gather(d.Bytes, indices)
	}
	return err
}

// readPrefixedLevels reads a 4-byte little-endian length followed by that
// many bytes of RLE-encoded levels (the v1 on-wire shape), decodes
// exactly numValues levels from it, and returns the remainder of buf.
func readPrefixedLevels(buf []byte, maxLevel, numValues int) (levels []int32, rest []byte, err error) {
	if len(buf) < 4 {
		return nil, nil, io.ErrUnexpectedEOF
	}
	length := int(binary.LittleEndian.Uint32(buf))
	buf = buf[4:]
	if length > len(buf) {
		return nil, nil, fmt.Errorf("level stream length %d exceeds remaining %d bytes", length, len(buf))
	}
	levels, err = decodeLevels(buf[:length], maxLevel, numValues)
	return levels, buf[length:], err
}

func decodeLevels(src []byte, maxLevel, numValues int) ([]int32, error) {
	width := bits.Len(uint(maxLevel))
	dec := level.NewDecoder(src, width)
	out := make([]int32, numValues)
	n, err := dec.Decode(out)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if n != numValues {
		return nil, fmt.Errorf("expected %d levels, decoded %d", numValues, n)
	}
	return out, nil
}

func countNonNull(defLevels []int32, maxDef int) int {
	n := 0
	for _, d := range defLevels {
		if int(d) == maxDef {
			n++
		}
	}
	return n
}
