package parquet

import (
	"errors"
	"testing"

	"github.com/hardwoodfs/parquet/format"
	"github.com/hardwoodfs/parquet/schema"
	"github.com/hardwoodfs/parquet/value"
)

func testLeaf(name string, typ format.Type, columnIndex int) *schema.Node {
	return &schema.Node{Name: name, Type: typ, ColumnIndex: columnIndex, Repetition: format.Required}
}

func testSchema() *schema.Schema {
	id := testLeaf("id", format.Int64, 0)
	name := testLeaf("name", format.ByteArray, 1)
	root := &schema.Node{Name: "root", Kind: schema.KindGroup, Children: []*schema.Node{id, name}}
	id.Parent, name.Parent = root, root
	return &schema.Schema{Root: root, Leaves: []*schema.Node{id, name}}
}

func TestProjectionForNilSelectsEveryField(t *testing.T) {
	f := &FileReader{schema: testSchema()}
	proj, err := f.projectionFor(nil)
	if err != nil {
		t.Fatalf("projectionFor(nil): %v", err)
	}
	if proj.FieldCount() != 2 {
		t.Fatalf("FieldCount() = %d, want 2", proj.FieldCount())
	}
	if proj.FieldName(0) != "id" || proj.FieldName(1) != "name" {
		t.Fatalf("unexpected field order: %s, %s", proj.FieldName(0), proj.FieldName(1))
	}
}

func TestProjectionForUnknownFieldWrapsProjectionError(t *testing.T) {
	f := &FileReader{schema: testSchema()}
	_, err := f.projectionFor([]string{"bogus"})
	if err == nil {
		t.Fatal("expected an error for an unknown field")
	}
	var projErr *ProjectionError
	if !errors.As(err, &projErr) {
		t.Fatalf("expected a *ProjectionError in the chain, got %T: %v", err, err)
	}
}

func TestRowReaderTypedGettersMatchKind(t *testing.T) {
	row := value.ObjectValue([]value.Field{
		{Name: "id", Value: value.LongValue(42)},
		{Name: "name", Value: value.NullValue()},
	})
	r := &RowReader{row: row}

	id, ok := r.Long("id")
	if !ok || id != 42 {
		t.Fatalf("Long(%q) = (%d, %v), want (42, true)", "id", id, ok)
	}
	if _, ok := r.Int("id"); ok {
		t.Fatal("Int(\"id\") should fail: id is a Long, not an Int")
	}
	if !r.IsNull("name") {
		t.Fatal("IsNull(\"name\") = false, want true")
	}
	if _, ok := r.Bytes("name"); ok {
		t.Fatal("Bytes(\"name\") should fail: the field is null")
	}
	if _, ok := r.Long("missing"); ok {
		t.Fatal("Long(\"missing\") should fail: no such field")
	}
}

// TestRowReaderStringLogicalType exercises a byte_array column tagged
// with the STRING logical type across three rows, one of them null,
// matching is_null and get_string against the expected sequence.
func TestRowReaderStringLogicalType(t *testing.T) {
	id := testLeaf("id", format.Int64, 0)
	name := testLeaf("name", format.ByteArray, 1)
	name.Repetition = format.Optional
	name.LogicalType = &format.LogicalType{Kind: format.StringType}
	proj := &schema.Projection{Fields: []*schema.Node{id, name}}

	rows := []value.Value{
		value.ObjectValue([]value.Field{
			{Name: "id", Value: value.LongValue(1)},
			{Name: "name", Value: value.BytesValue([]byte("alice"))},
		}),
		value.ObjectValue([]value.Field{
			{Name: "id", Value: value.LongValue(2)},
			{Name: "name", Value: value.NullValue()},
		}),
		value.ObjectValue([]value.Field{
			{Name: "id", Value: value.LongValue(3)},
			{Name: "name", Value: value.BytesValue([]byte("charlie"))},
		}),
	}
	wantNull := []bool{false, true, false}
	wantName := []string{"alice", "", "charlie"}

	for i, row := range rows {
		r := &RowReader{projection: proj, row: row}
		if got := r.IsNull("name"); got != wantNull[i] {
			t.Fatalf("row %d: IsNull(\"name\") = %v, want %v", i, got, wantNull[i])
		}
		got, ok := r.String("name")
		if ok == wantNull[i] {
			t.Fatalf("row %d: String(\"name\") ok = %v, want %v", i, ok, !wantNull[i])
		}
		if ok && got != wantName[i] {
			t.Fatalf("row %d: String(\"name\") = %q, want %q", i, got, wantName[i])
		}
	}
}
