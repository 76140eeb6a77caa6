package parquet

import (
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/hardwoodfs/parquet/column"
	"github.com/hardwoodfs/parquet/format"
	"github.com/hardwoodfs/parquet/logical"
	"github.com/hardwoodfs/parquet/schema"
)

// ColumnReader iterates the decoded batches of a single leaf column
// across every row group of a FileReader, one column.Batch at a time.
// Unlike RowReader it does no record assembly: callers see the flat
// slot stream (levels plus the compacted non-null values) exactly as
// column.Iterator produces it.
type ColumnReader struct {
	file      *FileReader
	leaf      *schema.Node
	batchSize int

	rowGroup int
	iter     *column.Iterator
	batch    *column.Batch
}

// ColumnReader builds a column cursor over the named top-level field,
// which must resolve to exactly one primitive leaf (a plain scalar
// field, not a group, list or map); use RowReader to read those.
func (f *FileReader) ColumnReader(name string, options ...Option) (*ColumnReader, error) {
	field := f.schema.Root.ChildByName(name)
	if field == nil {
		return nil, projectionError(name, "unknown field")
	}
	leaves := field.Leaves()
	if len(leaves) != 1 || leaves[0] != field {
		return nil, projectionError(name, "not a single primitive column; use RowReader for groups, lists and maps")
	}
	return f.newColumnReader(leaves[0], options...)
}

// ColumnReaderByIndex builds a column cursor over the leaf at the given
// depth-first column index (as reported by schema.Node.ColumnIndex).
func (f *FileReader) ColumnReaderByIndex(index int, options ...Option) (*ColumnReader, error) {
	if index < 0 || index >= len(f.schema.Leaves) {
		return nil, fmt.Errorf("parquet: %s: column index %d out of range [0, %d)", f.path, index, len(f.schema.Leaves))
	}
	return f.newColumnReader(f.schema.Leaves[index], options...)
}

func (f *FileReader) newColumnReader(leaf *schema.Node, options ...Option) (*ColumnReader, error) {
	cfg := *f.config
	cfg.Apply(options...)

	c := &ColumnReader{file: f, leaf: leaf, batchSize: cfg.PrefetchBatchSize, rowGroup: -1}
	if err := c.advanceRowGroup(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *ColumnReader) advanceRowGroup() error {
	c.rowGroup++
	if c.rowGroup >= c.file.NumRowGroups() {
		c.iter = nil
		return nil
	}
	it, err := c.file.columnIterator(c.rowGroup, c.leaf.ColumnIndex)
	if err != nil {
		return err
	}
	c.iter = it
	return nil
}

// NextBatch decodes the next batch of values, returning false once every
// row group's worth of this column has been read.
func (c *ColumnReader) NextBatch() bool {
	for {
		if c.iter == nil {
			return false
		}
		b, err := c.iter.Prefetch(c.batchSize)
		if err != nil {
			c.batch = nil
			return false
		}
		if !b.Empty() {
			c.batch = b
			return true
		}
		if err := c.advanceRowGroup(); err != nil {
			c.batch = nil
			return false
		}
	}
}

// FieldName returns the leaf column's name.
func (c *ColumnReader) FieldName() string { return c.leaf.Name }

// NumValues returns the number of slots (including nulls) in the current
// batch.
func (c *ColumnReader) NumValues() int {
	if c.batch == nil {
		return 0
	}
	return c.batch.NumValues()
}

// ElementNulls reports, for every slot in the current batch, whether it
// is null. For a column with MaxDefinitionLevel == 0 every slot is
// always non-null, so it returns a slice of falses sized to NumValues.
func (c *ColumnReader) ElementNulls() []bool {
	if c.batch == nil {
		return nil
	}
	n := c.batch.NumValues()
	nulls := make([]bool, n)
	if c.batch.MaxDefinitionLevel == 0 {
		return nulls
	}
	for i, def := range c.batch.DefinitionLevels {
		nulls[i] = def != int32(c.batch.MaxDefinitionLevel)
	}
	return nulls
}

// GetInts returns the current batch's non-null Int32 values.
func (c *ColumnReader) GetInts() []int32 {
	if c.batch == nil {
		return nil
	}
	return c.batch.Int32s
}

// GetLongs returns the current batch's non-null Int64 values.
func (c *ColumnReader) GetLongs() []int64 {
	if c.batch == nil {
		return nil
	}
	return c.batch.Int64s
}

// GetFloats returns the current batch's non-null Float32 values.
func (c *ColumnReader) GetFloats() []float32 {
	if c.batch == nil {
		return nil
	}
	return c.batch.Floats
}

// GetDoubles returns the current batch's non-null Float64 values.
func (c *ColumnReader) GetDoubles() []float64 {
	if c.batch == nil {
		return nil
	}
	return c.batch.Doubles
}

// GetBooleans returns the current batch's non-null bool values.
func (c *ColumnReader) GetBooleans() []bool {
	if c.batch == nil {
		return nil
	}
	return c.batch.Booleans
}

// GetByteArrays returns the current batch's non-null byte-array values
// (also used for FIXED_LEN_BYTE_ARRAY and, as raw 12-byte values,
// INT96).
func (c *ColumnReader) GetByteArrays() [][]byte {
	if c.batch == nil {
		return nil
	}
	return c.batch.Bytes
}

// logicalKind reports the leaf's logical type kind, or NoLogicalType if
// it has none.
func (c *ColumnReader) logicalKind() format.LogicalTypeKind {
	if c.leaf.LogicalType == nil {
		return format.NoLogicalType
	}
	return c.leaf.LogicalType.Kind
}

// GetStrings returns the current batch's non-null values converted per
// the STRING logical type, or nil if the column isn't STRING.
func (c *ColumnReader) GetStrings() []string {
	if c.batch == nil || c.logicalKind() != format.StringType {
		return nil
	}
	out := make([]string, len(c.batch.Bytes))
	for i, b := range c.batch.Bytes {
		out[i] = logical.String(b)
	}
	return out
}

// GetUUIDs returns the current batch's non-null values converted per the
// UUID logical type, or nil if the column isn't UUID. A malformed value
// decodes to the zero uuid.UUID.
func (c *ColumnReader) GetUUIDs() []uuid.UUID {
	if c.batch == nil || c.logicalKind() != format.UUIDType {
		return nil
	}
	out := make([]uuid.UUID, len(c.batch.Bytes))
	for i, b := range c.batch.Bytes {
		if id, err := logical.UUID(b); err == nil {
			out[i] = id
		}
	}
	return out
}

// GetDates returns the current batch's non-null values converted per
// the DATE logical type, or nil if the column isn't DATE.
func (c *ColumnReader) GetDates() []time.Time {
	if c.batch == nil || c.logicalKind() != format.DateType {
		return nil
	}
	out := make([]time.Time, len(c.batch.Int32s))
	for i, d := range c.batch.Int32s {
		out[i] = logical.Date(d)
	}
	return out
}

// GetTimes returns the current batch's non-null values converted per
// the TIME logical type, or nil if the column isn't TIME. The column may
// be stored as either Int32 (millisecond unit) or Int64 (microsecond or
// nanosecond unit).
func (c *ColumnReader) GetTimes() []time.Duration {
	if c.batch == nil || c.logicalKind() != format.TimeType {
		return nil
	}
	unit := c.leaf.LogicalType.Unit
	switch c.leaf.Type {
	case format.Int32:
		out := make([]time.Duration, len(c.batch.Int32s))
		for i, v := range c.batch.Int32s {
			out[i] = logical.Time(int64(v), unit)
		}
		return out
	case format.Int64:
		out := make([]time.Duration, len(c.batch.Int64s))
		for i, v := range c.batch.Int64s {
			out[i] = logical.Time(v, unit)
		}
		return out
	default:
		return nil
	}
}

// GetTimestamps returns the current batch's non-null values converted
// per the TIMESTAMP logical type, or nil if the column isn't TIMESTAMP.
func (c *ColumnReader) GetTimestamps() []time.Time {
	if c.batch == nil || c.logicalKind() != format.TimestampType {
		return nil
	}
	unit := c.leaf.LogicalType.Unit
	out := make([]time.Time, len(c.batch.Int64s))
	for i, v := range c.batch.Int64s {
		out[i] = logical.Timestamp(v, unit)
	}
	return out
}

// GetDecimals returns the current batch's non-null values converted per
// the DECIMAL logical type, or nil if the column isn't DECIMAL. The
// column may be stored as Int32, Int64, or Bytes (BYTE_ARRAY or
// FIXED_LEN_BYTE_ARRAY).
func (c *ColumnReader) GetDecimals() []*big.Rat {
	if c.batch == nil || c.logicalKind() != format.DecimalType {
		return nil
	}
	scale := c.leaf.LogicalType.Scale
	switch c.leaf.Type {
	case format.Int32:
		out := make([]*big.Rat, len(c.batch.Int32s))
		for i, v := range c.batch.Int32s {
			out[i] = logical.Decimal(logical.DecimalFromInt32(v), scale)
		}
		return out
	case format.Int64:
		out := make([]*big.Rat, len(c.batch.Int64s))
		for i, v := range c.batch.Int64s {
			out[i] = logical.Decimal(logical.DecimalFromInt64(v), scale)
		}
		return out
	case format.ByteArray, format.FixedLenByteArray:
		out := make([]*big.Rat, len(c.batch.Bytes))
		for i, b := range c.batch.Bytes {
			out[i] = logical.Decimal(logical.DecimalFromBytes(b), scale)
		}
		return out
	default:
		return nil
	}
}
