package format

import "fmt"

// Type is a physical (on-disk) storage type for a leaf column.
type Type int32

const (
	Boolean Type = iota
	Int32
	Int64
	Int96
	Float
	Double
	ByteArray
	FixedLenByteArray
)

func (t Type) String() string {
	switch t {
	case Boolean:
		return "BOOLEAN"
	case Int32:
		return "INT32"
	case Int64:
		return "INT64"
	case Int96:
		return "INT96"
	case Float:
		return "FLOAT"
	case Double:
		return "DOUBLE"
	case ByteArray:
		return "BYTE_ARRAY"
	case FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return fmt.Sprintf("TYPE(%d)", int32(t))
	}
}

// FieldRepetitionType is the repetition kind of a schema node.
type FieldRepetitionType int32

const (
	Required FieldRepetitionType = iota
	Optional
	Repeated
)

func (r FieldRepetitionType) String() string {
	switch r {
	case Required:
		return "REQUIRED"
	case Optional:
		return "OPTIONAL"
	case Repeated:
		return "REPEATED"
	default:
		return fmt.Sprintf("FIELD_REPETITION_TYPE(%d)", int32(r))
	}
}

// Encoding identifies how the values (or levels, or dictionary indices) of
// a page are physically laid out.
type Encoding int32

const (
	Plain Encoding = iota
	// GroupVarInt is reserved/unused in modern Parquet; kept only so the
	// numeric encoding codes of the format line up with the spec's table.
	GroupVarInt
	PlainDictionary
	RLE
	BitPacked // deprecated
	DeltaBinaryPacked
	DeltaLengthByteArray
	DeltaByteArray
	RLEDictionary
	ByteStreamSplit
	// Unknown is not a wire value; it is the sentinel LookupEncoding
	// returns for any code this package doesn't recognize. Such codes are
	// tolerated until a page actually tries to use that encoding, at which
	// point the page reader reports UnsupportedFeature.
	Unknown Encoding = -1
)

func (e Encoding) String() string {
	switch e {
	case Plain:
		return "PLAIN"
	case PlainDictionary:
		return "PLAIN_DICTIONARY"
	case RLE:
		return "RLE"
	case BitPacked:
		return "BIT_PACKED"
	case DeltaBinaryPacked:
		return "DELTA_BINARY_PACKED"
	case DeltaLengthByteArray:
		return "DELTA_LENGTH_BYTE_ARRAY"
	case DeltaByteArray:
		return "DELTA_BYTE_ARRAY"
	case RLEDictionary:
		return "RLE_DICTIONARY"
	case ByteStreamSplit:
		return "BYTE_STREAM_SPLIT"
	default:
		return "UNKNOWN"
	}
}

// LookupEncoding maps a raw Thrift Encoding code to an Encoding value,
// returning Unknown for codes not recognized by this version rather than
// failing outright: an unrecognized encoding is only a problem once a page
// actually tries to use it.
func LookupEncoding(code int32) Encoding {
	switch Encoding(code) {
	case Plain, PlainDictionary, RLE, BitPacked, DeltaBinaryPacked,
		DeltaLengthByteArray, DeltaByteArray, RLEDictionary, ByteStreamSplit:
		return Encoding(code)
	default:
		return Unknown
	}
}

// CompressionCodec identifies the codec used to compress a page body.
type CompressionCodec int32

const (
	Uncompressed CompressionCodec = iota
	Snappy
	Gzip
	LZOCodec
	Brotli
	LZ4 // deprecated, non-standard framing
	Zstd
	Lz4Raw
)

func (c CompressionCodec) String() string {
	switch c {
	case Uncompressed:
		return "UNCOMPRESSED"
	case Snappy:
		return "SNAPPY"
	case Gzip:
		return "GZIP"
	case LZOCodec:
		return "LZO"
	case Brotli:
		return "BROTLI"
	case LZ4:
		return "LZ4"
	case Zstd:
		return "ZSTD"
	case Lz4Raw:
		return "LZ4_RAW"
	default:
		return fmt.Sprintf("COMPRESSION_CODEC(%d)", int32(c))
	}
}

// ConvertedType is the legacy (pre-LogicalType) annotation carried
// alongside a SchemaElement. Modern files use LogicalType, but readers
// must still understand ConvertedType for files written by older tools.
type ConvertedType int32

const (
	UTF8 ConvertedType = iota
	Map
	MapKeyValue
	List
	Enum
	Decimal
	Date
	TimeMillis
	TimeMicros
	TimestampMillis
	TimestampMicros
	Uint8
	Uint16
	Uint32
	Uint64
	Int8
	Int16
	Int32Type
	Int64Type
	JSON
	BSON
	Interval
)

// PageType identifies the kind of page a PageHeader introduces.
type PageType int32

const (
	DataPage PageType = iota
	IndexPage
	DictionaryPage
	DataPageV2
)

func (p PageType) String() string {
	switch p {
	case DataPage:
		return "DATA_PAGE"
	case IndexPage:
		return "INDEX_PAGE"
	case DictionaryPage:
		return "DICTIONARY_PAGE"
	case DataPageV2:
		return "DATA_PAGE_V2"
	default:
		return fmt.Sprintf("PAGE_TYPE(%d)", int32(p))
	}
}

// BoundaryOrder describes page-index ordering; retained only so column
// index structures can be skipped/decoded if present. Page indexes
// themselves are outside this module's scope.
type BoundaryOrder int32

const (
	Unordered BoundaryOrder = iota
	Ascending
	Descending
)
