package format

// KeyValue is a single entry of a FileMetaData's free-form key/value
// metadata map.
type KeyValue struct {
	Key   string
	Value string
}

// SchemaElement is one node of the flattened, depth-first schema tree
// stored in FileMetaData.Schema. The root element has NumChildren set and
// Type unset; leaves have Type set and NumChildren == 0; intermediate
// group nodes have NumChildren set and Type unset.
type SchemaElement struct {
	Type           *Type
	TypeLength     *int32
	RepetitionType *FieldRepetitionType
	Name           string
	NumChildren    int32
	ConvertedType  *ConvertedType
	Scale          int32
	Precision      int32
	FieldID        int32
	LogicalType    *LogicalType
}

// Statistics holds the optional min/max/null-count/distinct-count summary
// Parquet writers may attach to a page or a column chunk. This module
// never uses Statistics to skip data (statistics-driven skipping is a
// non-goal) but still decodes it since it's part of the metadata Thrift
// structures and callers may want to inspect it.
type Statistics struct {
	Max           []byte
	Min           []byte
	NullCount     *int64
	DistinctCount *int64
	MaxValue      []byte
	MinValue      []byte
}

// ColumnMetaData describes a single column chunk's encoding, compression
// and on-disk location.
type ColumnMetaData struct {
	Type                  Type
	Encodings             []Encoding
	PathInSchema          []string
	Codec                 CompressionCodec
	NumValues             int64
	TotalUncompressedSize int64
	TotalCompressedSize   int64
	KeyValueMetadata      []KeyValue
	DataPageOffset        int64
	IndexPageOffset       *int64
	DictionaryPageOffset  *int64
	Statistics            *Statistics
}

// ColumnChunk is a column chunk's entry in a row group: either an inline
// ColumnMetaData, or (for files written with the column chunks stored
// externally) a reference to another file. This module only supports the
// inline form.
type ColumnChunk struct {
	FilePath   *string
	FileOffset int64
	MetaData   *ColumnMetaData
}

// RowGroup is a horizontal partition of the rows in a file.
type RowGroup struct {
	Columns      []ColumnChunk
	TotalByteSize int64
	NumRows      int64
}

// FileMetaData is the fully decoded Parquet footer.
type FileMetaData struct {
	Version          int32
	Schema           []SchemaElement
	NumRows          int64
	RowGroups        []RowGroup
	KeyValueMetadata []KeyValue
	CreatedBy        string
}

// DictionaryPageHeader describes a dictionary page.
type DictionaryPageHeader struct {
	NumValues int32
	Encoding  Encoding
	IsSorted  bool
}

// DataPageHeader describes a version-1 data page.
type DataPageHeader struct {
	NumValues               int32
	Encoding                 Encoding
	DefinitionLevelEncoding  Encoding
	RepetitionLevelEncoding  Encoding
	Statistics               *Statistics
}

// DataPageHeaderV2 describes a version-2 data page. Unlike v1, the
// repetition/definition level streams are never compressed, and their
// lengths are given explicitly rather than length-prefixed inline.
type DataPageHeaderV2 struct {
	NumValues                 int32
	NumNulls                  int32
	NumRows                   int32
	Encoding                  Encoding
	DefinitionLevelsByteLength int32
	RepetitionLevelsByteLength int32
	IsCompressed              bool // defaults to true when absent on the wire
	Statistics                *Statistics
}

// PageHeader is the self-delimiting header that precedes every page
// (dictionary or data) within a column chunk.
type PageHeader struct {
	Type                 PageType
	UncompressedPageSize int32
	CompressedPageSize   int32
	DictionaryPageHeader *DictionaryPageHeader
	DataPageHeader       *DataPageHeader
	DataPageHeaderV2     *DataPageHeaderV2
}
