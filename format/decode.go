package format

import (
	"fmt"

	"github.com/hardwoodfs/parquet/internal/thrift"
)

// ReadFileMetaData decodes a complete Thrift-encoded FileMetaData, as found
// (length-prefixed) in a Parquet file's footer.
func ReadFileMetaData(c *thrift.Cursor) (*FileMetaData, error) {
	m := &FileMetaData{}
	saved := c.Push()
	defer c.Pop(saved)

	for {
		f, err := c.ReadFieldHeader()
		if err != nil {
			return nil, fmt.Errorf("reading FileMetaData: %w", err)
		}
		if f.Stop {
			break
		}
		switch f.ID {
		case 1:
			v, err := c.ReadI32()
			if err != nil {
				return nil, err
			}
			m.Version = v
		case 2:
			m.Schema, err = readSchemaElementList(c)
			if err != nil {
				return nil, err
			}
		case 3:
			m.NumRows, err = c.ReadI64()
			if err != nil {
				return nil, err
			}
		case 4:
			m.RowGroups, err = readRowGroupList(c)
			if err != nil {
				return nil, err
			}
		case 5:
			m.KeyValueMetadata, err = readKeyValueList(c)
			if err != nil {
				return nil, err
			}
		case 6:
			m.CreatedBy, err = c.ReadString()
			if err != nil {
				return nil, err
			}
		default:
			if err := c.SkipField(f.Type); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func readSchemaElementList(c *thrift.Cursor) ([]SchemaElement, error) {
	h, err := c.ReadListHeader()
	if err != nil {
		return nil, err
	}
	out := make([]SchemaElement, h.Size)
	for i := range out {
		e, err := readSchemaElement(c)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func readSchemaElement(c *thrift.Cursor) (SchemaElement, error) {
	var e SchemaElement
	saved := c.Push()
	defer c.Pop(saved)

	for {
		f, err := c.ReadFieldHeader()
		if err != nil {
			return e, fmt.Errorf("reading SchemaElement: %w", err)
		}
		if f.Stop {
			break
		}
		switch f.ID {
		case 1:
			v, err := c.ReadI32()
			if err != nil {
				return e, err
			}
			t := Type(v)
			e.Type = &t
		case 2:
			v, err := c.ReadI32()
			if err != nil {
				return e, err
			}
			e.TypeLength = &v
		case 3:
			v, err := c.ReadI32()
			if err != nil {
				return e, err
			}
			r := FieldRepetitionType(v)
			e.RepetitionType = &r
		case 4:
			e.Name, err = c.ReadString()
			if err != nil {
				return e, err
			}
		case 5:
			e.NumChildren, err = c.ReadI32()
			if err != nil {
				return e, err
			}
		case 6:
			v, err := c.ReadI32()
			if err != nil {
				return e, err
			}
			ct := ConvertedType(v)
			e.ConvertedType = &ct
		case 7:
			e.Scale, err = c.ReadI32()
			if err != nil {
				return e, err
			}
		case 8:
			e.Precision, err = c.ReadI32()
			if err != nil {
				return e, err
			}
		case 9:
			e.FieldID, err = c.ReadI32()
			if err != nil {
				return e, err
			}
		case 10:
			e.LogicalType, err = readLogicalType(c)
			if err != nil {
				return e, err
			}
		default:
			if err := c.SkipField(f.Type); err != nil {
				return e, err
			}
		}
	}
	return e, nil
}

// readLogicalType decodes the LogicalType union. A union on the wire is a
// struct with at most one field set; the field id that appears selects
// Kind, and the nested struct's own fields (if any) are decoded inline.
func readLogicalType(c *thrift.Cursor) (*LogicalType, error) {
	lt := &LogicalType{}
	saved := c.Push()
	defer c.Pop(saved)

	sawField := false
	for {
		f, err := c.ReadFieldHeader()
		if err != nil {
			return nil, fmt.Errorf("reading LogicalType: %w", err)
		}
		if f.Stop {
			break
		}
		sawField = true
		switch f.ID {
		case 1:
			lt.Kind = StringType
			if err := skipEmptyStruct(c); err != nil {
				return nil, err
			}
		case 2:
			lt.Kind = MapType
			if err := skipEmptyStruct(c); err != nil {
				return nil, err
			}
		case 3:
			lt.Kind = ListType
			if err := skipEmptyStruct(c); err != nil {
				return nil, err
			}
		case 4:
			lt.Kind = EnumType
			if err := skipEmptyStruct(c); err != nil {
				return nil, err
			}
		case 5:
			lt.Kind = DecimalType
			if err := readDecimalType(c, lt); err != nil {
				return nil, err
			}
		case 6:
			lt.Kind = DateType
			if err := skipEmptyStruct(c); err != nil {
				return nil, err
			}
		case 7:
			lt.Kind = TimeType
			if err := readTimeType(c, lt); err != nil {
				return nil, err
			}
		case 8:
			lt.Kind = TimestampType
			if err := readTimeType(c, lt); err != nil {
				return nil, err
			}
		case 10:
			lt.Kind = IntegerType
			if err := readIntType(c, lt); err != nil {
				return nil, err
			}
		case 11:
			lt.Kind = UnknownType
			if err := skipEmptyStruct(c); err != nil {
				return nil, err
			}
		case 12:
			lt.Kind = JSONType
			if err := skipEmptyStruct(c); err != nil {
				return nil, err
			}
		case 13:
			lt.Kind = BSONType
			if err := skipEmptyStruct(c); err != nil {
				return nil, err
			}
		case 14:
			lt.Kind = UUIDType
			if err := skipEmptyStruct(c); err != nil {
				return nil, err
			}
		default:
			// Annotation this decoder doesn't recognize: preserve it as
			// UnknownType rather than failing, and skip its payload.
			lt.Kind = UnknownType
			if err := c.SkipField(f.Type); err != nil {
				return nil, err
			}
		}
	}
	if !sawField {
		return nil, nil
	}
	return lt, nil
}

func skipEmptyStruct(c *thrift.Cursor) error {
	return c.SkipField(thrift.TypeStruct)
}

func readDecimalType(c *thrift.Cursor, lt *LogicalType) error {
	saved := c.Push()
	defer c.Pop(saved)
	for {
		f, err := c.ReadFieldHeader()
		if err != nil {
			return err
		}
		if f.Stop {
			return nil
		}
		switch f.ID {
		case 1:
			lt.Scale, err = c.ReadI32()
		case 2:
			lt.Precision, err = c.ReadI32()
		default:
			err = c.SkipField(f.Type)
		}
		if err != nil {
			return err
		}
	}
}

func readTimeType(c *thrift.Cursor, lt *LogicalType) error {
	saved := c.Push()
	defer c.Pop(saved)
	for {
		f, err := c.ReadFieldHeader()
		if err != nil {
			return err
		}
		if f.Stop {
			return nil
		}
		switch f.ID {
		case 1:
			lt.IsAdjustedToUTC = f.Type == thrift.TypeTrue
		case 2:
			lt.Unit, err = readTimeUnit(c)
		default:
			err = c.SkipField(f.Type)
		}
		if err != nil {
			return err
		}
	}
}

func readTimeUnit(c *thrift.Cursor) (TimeUnit, error) {
	var unit TimeUnit
	saved := c.Push()
	defer c.Pop(saved)
	for {
		f, err := c.ReadFieldHeader()
		if err != nil {
			return unit, err
		}
		if f.Stop {
			return unit, nil
		}
		switch f.ID {
		case 1:
			unit = Millis
			err = skipEmptyStruct(c)
		case 2:
			unit = Micros
			err = skipEmptyStruct(c)
		case 3:
			unit = Nanos
			err = skipEmptyStruct(c)
		default:
			err = c.SkipField(f.Type)
		}
		if err != nil {
			return unit, err
		}
	}
}

func readIntType(c *thrift.Cursor, lt *LogicalType) error {
	saved := c.Push()
	defer c.Pop(saved)
	for {
		f, err := c.ReadFieldHeader()
		if err != nil {
			return err
		}
		if f.Stop {
			return nil
		}
		switch f.ID {
		case 1:
			b, err := c.ReadByte()
			if err != nil {
				return err
			}
			lt.BitWidth = int8(b)
		case 2:
			lt.IsSigned = f.Type == thrift.TypeTrue
		default:
			if err := c.SkipField(f.Type); err != nil {
				return err
			}
		}
	}
}

func readRowGroupList(c *thrift.Cursor) ([]RowGroup, error) {
	h, err := c.ReadListHeader()
	if err != nil {
		return nil, err
	}
	out := make([]RowGroup, h.Size)
	for i := range out {
		out[i], err = readRowGroup(c)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func readRowGroup(c *thrift.Cursor) (RowGroup, error) {
	var rg RowGroup
	saved := c.Push()
	defer c.Pop(saved)
	for {
		f, err := c.ReadFieldHeader()
		if err != nil {
			return rg, fmt.Errorf("reading RowGroup: %w", err)
		}
		if f.Stop {
			break
		}
		switch f.ID {
		case 1:
			rg.Columns, err = readColumnChunkList(c)
		case 2:
			rg.TotalByteSize, err = c.ReadI64()
		case 3:
			rg.NumRows, err = c.ReadI64()
		default:
			err = c.SkipField(f.Type)
		}
		if err != nil {
			return rg, err
		}
	}
	return rg, nil
}

func readColumnChunkList(c *thrift.Cursor) ([]ColumnChunk, error) {
	h, err := c.ReadListHeader()
	if err != nil {
		return nil, err
	}
	out := make([]ColumnChunk, h.Size)
	for i := range out {
		out[i], err = readColumnChunk(c)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func readColumnChunk(c *thrift.Cursor) (ColumnChunk, error) {
	var cc ColumnChunk
	saved := c.Push()
	defer c.Pop(saved)
	for {
		f, err := c.ReadFieldHeader()
		if err != nil {
			return cc, fmt.Errorf("reading ColumnChunk: %w", err)
		}
		if f.Stop {
			break
		}
		switch f.ID {
		case 1:
			s, err := c.ReadString()
			if err != nil {
				return cc, err
			}
			cc.FilePath = &s
		case 2:
			cc.FileOffset, err = c.ReadI64()
		case 3:
			m, err := readColumnMetaData(c)
			if err != nil {
				return cc, err
			}
			cc.MetaData = &m
		default:
			err = c.SkipField(f.Type)
		}
		if err != nil {
			return cc, err
		}
	}
	return cc, nil
}

func readColumnMetaData(c *thrift.Cursor) (ColumnMetaData, error) {
	var m ColumnMetaData
	saved := c.Push()
	defer c.Pop(saved)
	for {
		f, err := c.ReadFieldHeader()
		if err != nil {
			return m, fmt.Errorf("reading ColumnMetaData: %w", err)
		}
		if f.Stop {
			break
		}
		switch f.ID {
		case 1:
			v, err := c.ReadI32()
			if err != nil {
				return m, err
			}
			m.Type = Type(v)
		case 2:
			m.Encodings, err = readEncodingList(c)
		case 3:
			m.PathInSchema, err = readStringList(c)
		case 4:
			v, err := c.ReadI32()
			if err != nil {
				return m, err
			}
			m.Codec = CompressionCodec(v)
		case 5:
			m.NumValues, err = c.ReadI64()
		case 6:
			m.TotalUncompressedSize, err = c.ReadI64()
		case 7:
			m.TotalCompressedSize, err = c.ReadI64()
		case 8:
			m.KeyValueMetadata, err = readKeyValueList(c)
		case 9:
			m.DataPageOffset, err = c.ReadI64()
		case 10:
			v, err := c.ReadI64()
			if err != nil {
				return m, err
			}
			m.IndexPageOffset = &v
		case 11:
			v, err := c.ReadI64()
			if err != nil {
				return m, err
			}
			m.DictionaryPageOffset = &v
		case 12:
			s, err := readStatistics(c)
			if err != nil {
				return m, err
			}
			m.Statistics = &s
		default:
			err = c.SkipField(f.Type)
		}
		if err != nil {
			return m, err
		}
	}
	return m, nil
}

func readStatistics(c *thrift.Cursor) (Statistics, error) {
	var s Statistics
	saved := c.Push()
	defer c.Pop(saved)
	for {
		f, err := c.ReadFieldHeader()
		if err != nil {
			return s, fmt.Errorf("reading Statistics: %w", err)
		}
		if f.Stop {
			break
		}
		switch f.ID {
		case 1:
			s.Max, err = c.ReadBinary()
		case 2:
			s.Min, err = c.ReadBinary()
		case 3:
			v, err := c.ReadI64()
			if err != nil {
				return s, err
			}
			s.NullCount = &v
		case 4:
			v, err := c.ReadI64()
			if err != nil {
				return s, err
			}
			s.DistinctCount = &v
		case 5:
			s.MaxValue, err = c.ReadBinary()
		case 6:
			s.MinValue, err = c.ReadBinary()
		default:
			err = c.SkipField(f.Type)
		}
		if err != nil {
			return s, err
		}
	}
	return s, nil
}

func readKeyValueList(c *thrift.Cursor) ([]KeyValue, error) {
	h, err := c.ReadListHeader()
	if err != nil {
		return nil, err
	}
	out := make([]KeyValue, h.Size)
	for i := range out {
		saved := c.Push()
		for {
			f, err := c.ReadFieldHeader()
			if err != nil {
				c.Pop(saved)
				return nil, fmt.Errorf("reading KeyValue: %w", err)
			}
			if f.Stop {
				break
			}
			switch f.ID {
			case 1:
				out[i].Key, err = c.ReadString()
			case 2:
				out[i].Value, err = c.ReadString()
			default:
				err = c.SkipField(f.Type)
			}
			if err != nil {
				c.Pop(saved)
				return nil, err
			}
		}
		c.Pop(saved)
	}
	return out, nil
}

func readStringList(c *thrift.Cursor) ([]string, error) {
	h, err := c.ReadListHeader()
	if err != nil {
		return nil, err
	}
	out := make([]string, h.Size)
	for i := range out {
		out[i], err = c.ReadString()
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func readEncodingList(c *thrift.Cursor) ([]Encoding, error) {
	h, err := c.ReadListHeader()
	if err != nil {
		return nil, err
	}
	out := make([]Encoding, h.Size)
	for i := range out {
		v, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		out[i] = LookupEncoding(v)
	}
	return out, nil
}

// ReadPageHeader decodes a single PageHeader, as found at the start of
// every dictionary or data page within a column chunk.
func ReadPageHeader(c *thrift.Cursor) (*PageHeader, error) {
	h := &PageHeader{}
	saved := c.Push()
	defer c.Pop(saved)
	for {
		f, err := c.ReadFieldHeader()
		if err != nil {
			return nil, fmt.Errorf("reading PageHeader: %w", err)
		}
		if f.Stop {
			break
		}
		switch f.ID {
		case 1:
			v, err := c.ReadI32()
			if err != nil {
				return nil, err
			}
			h.Type = PageType(v)
		case 2:
			h.UncompressedPageSize, err = c.ReadI32()
		case 3:
			h.CompressedPageSize, err = c.ReadI32()
		case 5:
			d, err := readDataPageHeader(c)
			if err != nil {
				return nil, err
			}
			h.DataPageHeader = &d
		case 7:
			d, err := readDictionaryPageHeader(c)
			if err != nil {
				return nil, err
			}
			h.DictionaryPageHeader = &d
		case 8:
			d, err := readDataPageHeaderV2(c)
			if err != nil {
				return nil, err
			}
			h.DataPageHeaderV2 = &d
		default:
			err = c.SkipField(f.Type)
		}
		if err != nil {
			return nil, err
		}
	}
	return h, nil
}

func readDataPageHeader(c *thrift.Cursor) (DataPageHeader, error) {
	var d DataPageHeader
	saved := c.Push()
	defer c.Pop(saved)
	for {
		f, err := c.ReadFieldHeader()
		if err != nil {
			return d, fmt.Errorf("reading DataPageHeader: %w", err)
		}
		if f.Stop {
			break
		}
		switch f.ID {
		case 1:
			d.NumValues, err = c.ReadI32()
		case 2:
			v, err := c.ReadI32()
			if err != nil {
				return d, err
			}
			d.Encoding = LookupEncoding(v)
		case 3:
			v, err := c.ReadI32()
			if err != nil {
				return d, err
			}
			d.DefinitionLevelEncoding = LookupEncoding(v)
		case 4:
			v, err := c.ReadI32()
			if err != nil {
				return d, err
			}
			d.RepetitionLevelEncoding = LookupEncoding(v)
		case 5:
			s, err := readStatistics(c)
			if err != nil {
				return d, err
			}
			d.Statistics = &s
		default:
			err = c.SkipField(f.Type)
		}
		if err != nil {
			return d, err
		}
	}
	return d, nil
}

func readDataPageHeaderV2(c *thrift.Cursor) (DataPageHeaderV2, error) {
	d := DataPageHeaderV2{IsCompressed: true}
	saved := c.Push()
	defer c.Pop(saved)
	for {
		f, err := c.ReadFieldHeader()
		if err != nil {
			return d, fmt.Errorf("reading DataPageHeaderV2: %w", err)
		}
		if f.Stop {
			break
		}
		switch f.ID {
		case 1:
			d.NumValues, err = c.ReadI32()
		case 2:
			d.NumNulls, err = c.ReadI32()
		case 3:
			d.NumRows, err = c.ReadI32()
		case 4:
			v, err := c.ReadI32()
			if err != nil {
				return d, err
			}
			d.Encoding = LookupEncoding(v)
		case 5:
			d.DefinitionLevelsByteLength, err = c.ReadI32()
		case 6:
			d.RepetitionLevelsByteLength, err = c.ReadI32()
		case 7:
			d.IsCompressed = f.Type == thrift.TypeTrue
		case 8:
			s, err := readStatistics(c)
			if err != nil {
				return d, err
			}
			d.Statistics = &s
		default:
			err = c.SkipField(f.Type)
		}
		if err != nil {
			return d, err
		}
	}
	return d, nil
}

func readDictionaryPageHeader(c *thrift.Cursor) (DictionaryPageHeader, error) {
	var d DictionaryPageHeader
	saved := c.Push()
	defer c.Pop(saved)
	for {
		f, err := c.ReadFieldHeader()
		if err != nil {
			return d, fmt.Errorf("reading DictionaryPageHeader: %w", err)
		}
		if f.Stop {
			break
		}
		switch f.ID {
		case 1:
			d.NumValues, err = c.ReadI32()
		case 2:
			v, err := c.ReadI32()
			if err != nil {
				return d, err
			}
			d.Encoding = LookupEncoding(v)
		case 3:
			d.IsSorted = f.Type == thrift.TypeTrue
		default:
			err = c.SkipField(f.Type)
		}
		if err != nil {
			return d, err
		}
	}
	return d, nil
}
