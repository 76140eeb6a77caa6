package parquet

import (
	"testing"

	"github.com/hardwoodfs/parquet/column"
	"github.com/hardwoodfs/parquet/format"
	"github.com/hardwoodfs/parquet/schema"
)

func TestColumnReaderGettersMatchBatchType(t *testing.T) {
	leaf := &schema.Node{Name: "score", Type: format.Double, ColumnIndex: 0}
	c := &ColumnReader{leaf: leaf, batch: &column.Batch{
		Type:    format.Double,
		Doubles: []float64{1.5, 2.5, 3.5},
	}}

	if got := c.FieldName(); got != "score" {
		t.Fatalf("FieldName() = %q, want %q", got, "score")
	}
	if got := c.NumValues(); got != 3 {
		t.Fatalf("NumValues() = %d, want 3", got)
	}
	doubles := c.GetDoubles()
	if len(doubles) != 3 || doubles[1] != 2.5 {
		t.Fatalf("GetDoubles() = %v", doubles)
	}
	if got := c.GetInts(); got != nil {
		t.Fatalf("GetInts() on a Double batch = %v, want nil", got)
	}
}

func TestColumnReaderElementNullsRequiredColumn(t *testing.T) {
	leaf := &schema.Node{Name: "id", Type: format.Int64, MaxDefinitionLevel: 0}
	c := &ColumnReader{leaf: leaf, batch: &column.Batch{
		Type:               format.Int64,
		MaxDefinitionLevel: 0,
		Int64s:             []int64{1, 2, 3},
	}}
	nulls := c.ElementNulls()
	if len(nulls) != 3 {
		t.Fatalf("expected 3 null slots, got %d", len(nulls))
	}
	for i, n := range nulls {
		if n {
			t.Fatalf("slot %d: required column should never report null", i)
		}
	}
}

func TestColumnReaderElementNullsOptionalColumn(t *testing.T) {
	leaf := &schema.Node{Name: "name", Type: format.ByteArray, MaxDefinitionLevel: 1}
	c := &ColumnReader{leaf: leaf, batch: &column.Batch{
		Type:               format.ByteArray,
		MaxDefinitionLevel: 1,
		DefinitionLevels:   []int32{1, 0, 1},
		Bytes:              [][]byte{[]byte("alice"), []byte("charlie")},
	}}
	nulls := c.ElementNulls()
	want := []bool{false, true, false}
	if len(nulls) != len(want) {
		t.Fatalf("ElementNulls() = %v, want %v", nulls, want)
	}
	for i := range want {
		if nulls[i] != want[i] {
			t.Fatalf("slot %d: ElementNulls() = %v, want %v", i, nulls, want)
		}
	}
}

func TestColumnReaderNilBatchBeforeFirstNextBatch(t *testing.T) {
	c := &ColumnReader{leaf: &schema.Node{Name: "id"}}
	if n := c.NumValues(); n != 0 {
		t.Fatalf("NumValues() before any NextBatch = %d, want 0", n)
	}
	if got := c.ElementNulls(); got != nil {
		t.Fatalf("ElementNulls() before any NextBatch = %v, want nil", got)
	}
	if got := c.GetLongs(); got != nil {
		t.Fatalf("GetLongs() before any NextBatch = %v, want nil", got)
	}
}
