package parquet

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hardwoodfs/parquet/column"
	"github.com/hardwoodfs/parquet/format"
	"github.com/hardwoodfs/parquet/logical"
	"github.com/hardwoodfs/parquet/record"
	"github.com/hardwoodfs/parquet/schema"
	"github.com/hardwoodfs/parquet/value"
)

// RowReader iterates whole, possibly nested, records out of a
// FileReader, one row group at a time. A RowReader is single-threaded
// and must not be shared across goroutines; decoding of the column
// chunks feeding it is still done concurrently by the owning
// FileReader's worker pool (see package hardwood), RowReader itself
// only drives the sequencing.
type RowReader struct {
	file       *FileReader
	projection *schema.Projection
	batchSize  int

	rowGroup int
	iters    []*column.Iterator
	asm      *record.Assembler

	row value.Value
	err error
}

// RowReader builds a row cursor over fields (nil selects every top-level
// field). The cursor starts positioned before the first row; call Next
// to advance.
func (f *FileReader) RowReader(fields []string, options ...Option) (*RowReader, error) {
	proj, err := f.projectionFor(fields)
	if err != nil {
		return nil, err
	}

	cfg := *f.config
	cfg.Apply(options...)

	r := &RowReader{file: f, projection: proj, batchSize: cfg.PrefetchBatchSize, rowGroup: -1}
	if err := r.advanceRowGroup(); err != nil {
		return nil, err
	}
	return r, nil
}

func (f *FileReader) projectionFor(fields []string) (*schema.Projection, error) {
	if fields == nil {
		return schema.All(f.schema), nil
	}
	proj, err := schema.Select(f.schema, fields)
	if err != nil {
		return nil, projectionError(strings.Join(fields, ","), err.Error())
	}
	return proj, nil
}

// advanceRowGroup moves to the next row group, opening a fresh column
// iterator per projected leaf. The projected leaves' compressed bytes
// are all fetched through one batched columnIterators call so their
// independent byte ranges are read in parallel rather than one at a
// time. r.iters is set to nil once every row group has been visited.
func (r *RowReader) advanceRowGroup() error {
	r.rowGroup++
	r.asm = nil

	if r.rowGroup >= r.file.NumRowGroups() {
		r.iters = nil
		return nil
	}

	leafIndices := make([]int, len(r.projection.ProjectedLeaves))
	for i, leaf := range r.projection.ProjectedLeaves {
		leafIndices[i] = leaf.ColumnIndex
	}
	iters, err := r.file.columnIterators(r.rowGroup, leafIndices)
	if err != nil {
		return err
	}
	r.iters = iters
	return nil
}

// fillAssembler prefetches one aligned round of batches, one per
// projected leaf, and builds an Assembler over them. It reports false
// (with a nil error) once the current row group's columns are
// exhausted. Every leaf's Iterator.Prefetch returns exactly batchSize
// records (never more) as long as that many remain in the row group, so
// the batches line up without needing to trim overshoot across leaves.
//
// The per-leaf prefetches are independent (each iterator owns its own
// page.Reader over its own byte range) so they run as a Batch on the
// file's worker pool rather than one at a time on the calling goroutine.
func (r *RowReader) fillAssembler() (bool, error) {
	batches := make([]*column.Batch, len(r.iters))
	b := r.file.workers.Pool.NewBatch(context.Background())
	for i, it := range r.iters {
		i, it := i, it
		b.Go(func(ctx context.Context) error {
			batch, err := it.Prefetch(r.batchSize)
			if err != nil {
				return err
			}
			batches[i] = batch
			return nil
		})
	}
	if err := b.Wait(); err != nil {
		return false, err
	}
	if len(batches) == 0 || batches[0].Empty() {
		return false, nil
	}

	asm, err := record.NewProjectedAssembler(r.projection, batches)
	if err != nil {
		return false, err
	}
	r.asm = asm
	return true, nil
}

// Next advances to the next row, returning false once every row group is
// exhausted or a decode error occurred (distinguish the two with Err).
func (r *RowReader) Next() bool {
	for {
		if r.asm != nil && r.asm.HasNext() {
			r.row = r.asm.Next()
			return true
		}
		if r.iters == nil {
			return false
		}

		ok, err := r.fillAssembler()
		if err != nil {
			r.err = err
			return false
		}
		if ok {
			continue
		}

		if err := r.advanceRowGroup(); err != nil {
			r.err = err
			return false
		}
	}
}

// Seek repositions the cursor so the next call to Next lands on
// rowIndex. It scans forward row by row from the beginning; this engine
// keeps no page-level row index to jump through, so Seek's cost is
// linear in rowIndex.
func (r *RowReader) Seek(rowIndex int64) error {
	r.rowGroup = -1
	r.asm = nil
	r.err = nil
	if err := r.advanceRowGroup(); err != nil {
		return err
	}
	var i int64
	for i < rowIndex {
		if !r.Next() {
			if r.err != nil {
				return r.err
			}
			return fmt.Errorf("parquet: seek: row index %d exceeds %d rows", rowIndex, r.file.NumRows())
		}
		i++
	}
	return nil
}

// Err returns the error, if any, that stopped Next from advancing.
func (r *RowReader) Err() error { return r.err }

// Row returns the record Next most recently produced.
func (r *RowReader) Row() value.Value { return r.row }

// FieldCount returns the number of top-level fields this cursor projects.
func (r *RowReader) FieldCount() int { return r.projection.FieldCount() }

// FieldName returns the name of the i-th projected top-level field.
func (r *RowReader) FieldName(i int) string { return r.projection.FieldName(i) }

// IsNull reports whether the named top-level field is absent on the
// current row.
func (r *RowReader) IsNull(name string) bool {
	v, ok := r.row.Field(name)
	return !ok || v.IsNull()
}

// Int returns the named field's value as a 32-bit int, or ok == false if
// it is absent, null, or not an Int.
func (r *RowReader) Int(name string) (int32, bool) {
	v, ok := r.row.Field(name)
	if !ok || v.Kind != value.Int {
		return 0, false
	}
	return v.Int32, true
}

// Long returns the named field's value as a 64-bit int, or ok == false
// if it is absent, null, or not a Long.
func (r *RowReader) Long(name string) (int64, bool) {
	v, ok := r.row.Field(name)
	if !ok || v.Kind != value.Long {
		return 0, false
	}
	return v.Int64, true
}

// Float returns the named field's value as a float32, or ok == false if
// it is absent, null, or not a Float.
func (r *RowReader) Float(name string) (float32, bool) {
	v, ok := r.row.Field(name)
	if !ok || v.Kind != value.Float {
		return 0, false
	}
	return v.Float32, true
}

// Double returns the named field's value as a float64, or ok == false if
// it is absent, null, or not a Double.
func (r *RowReader) Double(name string) (float64, bool) {
	v, ok := r.row.Field(name)
	if !ok || v.Kind != value.Double {
		return 0, false
	}
	return v.Float64, true
}

// Bool returns the named field's boolean value, or ok == false if it is
// absent, null, or not a Bool.
func (r *RowReader) Bool(name string) (bool, bool) {
	v, ok := r.row.Field(name)
	if !ok || v.Kind != value.Bool {
		return false, false
	}
	return v.Boolean, true
}

// Bytes returns the named field's raw byte value, or ok == false if it
// is absent, null, or not Bytes.
func (r *RowReader) Bytes(name string) ([]byte, bool) {
	v, ok := r.row.Field(name)
	if !ok || v.Kind != value.Bytes {
		return nil, false
	}
	return v.Bytes, true
}

// Field returns the named top-level field's full structured value,
// including nested groups, lists and maps.
func (r *RowReader) Field(name string) (value.Value, bool) {
	return r.row.Field(name)
}

// fieldNode returns the projected schema node for the named top-level
// field, or nil if name was not projected.
func (r *RowReader) fieldNode(name string) *schema.Node {
	for _, f := range r.projection.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// String returns the named field's value converted per the STRING
// logical type, or ok == false if it is absent, null, or not STRING.
func (r *RowReader) String(name string) (string, bool) {
	v, ok := r.row.Field(name)
	node := r.fieldNode(name)
	if !ok || v.Kind != value.Bytes || node == nil || node.LogicalType == nil || node.LogicalType.Kind != format.StringType {
		return "", false
	}
	return logical.String(v.Bytes), true
}

// UUID returns the named field's value converted per the UUID logical
// type, or ok == false if it is absent, null, not UUID, or malformed.
func (r *RowReader) UUID(name string) (uuid.UUID, bool) {
	v, ok := r.row.Field(name)
	node := r.fieldNode(name)
	if !ok || v.Kind != value.Bytes || node == nil || node.LogicalType == nil || node.LogicalType.Kind != format.UUIDType {
		return uuid.UUID{}, false
	}
	id, err := logical.UUID(v.Bytes)
	if err != nil {
		return uuid.UUID{}, false
	}
	return id, true
}

// Date returns the named field's value converted per the DATE logical
// type, or ok == false if it is absent, null, or not DATE.
func (r *RowReader) Date(name string) (time.Time, bool) {
	v, ok := r.row.Field(name)
	node := r.fieldNode(name)
	if !ok || v.Kind != value.Int || node == nil || node.LogicalType == nil || node.LogicalType.Kind != format.DateType {
		return time.Time{}, false
	}
	return logical.Date(v.Int32), true
}

// Time returns the named field's value converted per the TIME logical
// type, or ok == false if it is absent, null, or not TIME. The field may
// be stored as either an Int (millisecond unit) or a Long (microsecond
// or nanosecond unit).
func (r *RowReader) Time(name string) (time.Duration, bool) {
	v, ok := r.row.Field(name)
	node := r.fieldNode(name)
	if !ok || node == nil || node.LogicalType == nil || node.LogicalType.Kind != format.TimeType {
		return 0, false
	}
	var raw int64
	switch v.Kind {
	case value.Int:
		raw = int64(v.Int32)
	case value.Long:
		raw = v.Int64
	default:
		return 0, false
	}
	return logical.Time(raw, node.LogicalType.Unit), true
}

// Timestamp returns the named field's value converted per the TIMESTAMP
// logical type, or ok == false if it is absent, null, or not TIMESTAMP.
func (r *RowReader) Timestamp(name string) (time.Time, bool) {
	v, ok := r.row.Field(name)
	node := r.fieldNode(name)
	if !ok || v.Kind != value.Long || node == nil || node.LogicalType == nil || node.LogicalType.Kind != format.TimestampType {
		return time.Time{}, false
	}
	return logical.Timestamp(v.Int64, node.LogicalType.Unit), true
}

// Decimal returns the named field's value converted per the DECIMAL
// logical type, or ok == false if it is absent, null, or not DECIMAL.
// The field may be stored as an Int, a Long, or Bytes (BYTE_ARRAY or
// FIXED_LEN_BYTE_ARRAY), per the DECIMAL type's allowed physical
// representations.
func (r *RowReader) Decimal(name string) (*big.Rat, bool) {
	v, ok := r.row.Field(name)
	node := r.fieldNode(name)
	if !ok || node == nil || node.LogicalType == nil || node.LogicalType.Kind != format.DecimalType {
		return nil, false
	}
	var unscaled *big.Int
	switch v.Kind {
	case value.Int:
		unscaled = logical.DecimalFromInt32(v.Int32)
	case value.Long:
		unscaled = logical.DecimalFromInt64(v.Int64)
	case value.Bytes:
		unscaled = logical.DecimalFromBytes(v.Bytes)
	default:
		return nil, false
	}
	return logical.Decimal(unscaled, node.LogicalType.Scale), true
}
