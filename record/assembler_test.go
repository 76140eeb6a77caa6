package record

import (
	"testing"

	"github.com/hardwoodfs/parquet/column"
	"github.com/hardwoodfs/parquet/format"
	"github.com/hardwoodfs/parquet/schema"
	"github.com/hardwoodfs/parquet/value"
)

func leafNode(name string, typ format.Type, rep format.FieldRepetitionType, parent *schema.Node) *schema.Node {
	n := &schema.Node{Name: name, Type: typ, Repetition: rep, Parent: parent, ColumnIndex: -1}
	return n
}

func TestAssembleFlatRecords(t *testing.T) {
	root := &schema.Node{Name: "root", Repetition: format.Required, Kind: schema.KindGroup, ColumnIndex: -1}
	id := leafNode("id", format.Int64, format.Required, root)
	id.MaxDefinitionLevel = 0
	id.ColumnIndex = 0
	name := leafNode("name", format.ByteArray, format.Optional, root)
	name.MaxDefinitionLevel = 1
	name.ColumnIndex = 1
	root.Children = []*schema.Node{id, name}
	sch := &schema.Schema{Root: root, Leaves: []*schema.Node{id, name}}

	idBatch := &column.Batch{Type: format.Int64, Int64s: []int64{1, 2}}
	nameBatch := &column.Batch{
		Type:               format.ByteArray,
		MaxDefinitionLevel: 1,
		DefinitionLevels:   []int32{1, 0},
		Bytes:              [][]byte{[]byte("alice")},
	}

	a, err := NewAssembler(sch, []*column.Batch{idBatch, nameBatch})
	if err != nil {
		t.Fatal(err)
	}

	if !a.HasNext() {
		t.Fatal("expected a first record")
	}
	r1 := a.Next()
	if v, ok := r1.Field("id"); !ok || v.Int64 != 1 {
		t.Fatalf("unexpected id: %+v", v)
	}
	if v, ok := r1.Field("name"); !ok || v.Kind != value.Bytes || string(v.Bytes) != "alice" {
		t.Fatalf("unexpected name: %+v", v)
	}

	if !a.HasNext() {
		t.Fatal("expected a second record")
	}
	r2 := a.Next()
	if v, ok := r2.Field("id"); !ok || v.Int64 != 2 {
		t.Fatalf("unexpected id: %+v", v)
	}
	if v, ok := r2.Field("name"); !ok || v.Kind != value.Null {
		t.Fatalf("expected null name, got %+v", v)
	}

	if a.HasNext() {
		t.Fatal("expected assembler to be exhausted")
	}
}

func TestAssembleOptionalGroup(t *testing.T) {
	root := &schema.Node{Name: "root", Repetition: format.Required, Kind: schema.KindGroup, ColumnIndex: -1}
	addr := &schema.Node{Name: "address", Repetition: format.Optional, Kind: schema.KindGroup, Parent: root, ColumnIndex: -1}
	city := leafNode("city", format.ByteArray, format.Required, addr)
	city.MaxDefinitionLevel = 1
	city.ColumnIndex = 0
	addr.MaxDefinitionLevel = 1
	addr.Children = []*schema.Node{city}
	root.Children = []*schema.Node{addr}
	sch := &schema.Schema{Root: root, Leaves: []*schema.Node{city}}

	// record 0: address present with city "nyc"; record 1: address absent.
	cityBatch := &column.Batch{
		Type:               format.ByteArray,
		MaxDefinitionLevel: 1,
		DefinitionLevels:   []int32{1, 0},
		Bytes:              [][]byte{[]byte("nyc")},
	}

	a, err := NewAssembler(sch, []*column.Batch{cityBatch})
	if err != nil {
		t.Fatal(err)
	}

	r1 := a.Next()
	addrVal, ok := r1.Field("address")
	if !ok || addrVal.Kind != value.Object {
		t.Fatalf("expected present address object, got %+v", addrVal)
	}
	if cv, ok := addrVal.Field("city"); !ok || string(cv.Bytes) != "nyc" {
		t.Fatalf("unexpected city: %+v", cv)
	}

	r2 := a.Next()
	addrVal2, ok := r2.Field("address")
	if !ok || addrVal2.Kind != value.Null {
		t.Fatalf("expected absent address, got %+v", addrVal2)
	}
}

func TestAssembleList(t *testing.T) {
	root := &schema.Node{Name: "root", Repetition: format.Required, Kind: schema.KindGroup, ColumnIndex: -1}
	tags := &schema.Node{Name: "tags", Repetition: format.Optional, Kind: schema.KindList, Parent: root, ColumnIndex: -1}
	tags.MaxDefinitionLevel = 1
	wrapper := &schema.Node{Name: "list", Repetition: format.Repeated, Kind: schema.KindGroup, Parent: tags, ColumnIndex: -1}
	element := leafNode("element", format.ByteArray, format.Required, wrapper)
	element.MaxDefinitionLevel = 2
	element.MaxRepetitionLevel = 1
	element.ColumnIndex = 0
	wrapper.Children = []*schema.Node{element}
	tags.Children = []*schema.Node{wrapper}
	tags.MaxRepetitionLevel = 1
	root.Children = []*schema.Node{tags}
	sch := &schema.Schema{Root: root, Leaves: []*schema.Node{element}}

	// record 0: tags = ["a", "b"]; record 1: tags absent; record 2: tags = [] (present empty).
	elemBatch := &column.Batch{
		Type:               format.ByteArray,
		MaxDefinitionLevel: 2,
		MaxRepetitionLevel: 1,
		DefinitionLevels:   []int32{2, 2, 0, 1},
		RepetitionLevels:   []int32{0, 1, 0, 0},
		Bytes:              [][]byte{[]byte("a"), []byte("b")},
	}

	a, err := NewAssembler(sch, []*column.Batch{elemBatch})
	if err != nil {
		t.Fatal(err)
	}

	r1 := a.Next()
	tagsVal, ok := r1.Field("tags")
	if !ok || tagsVal.Kind != value.Object {
		t.Fatalf("expected present tags list, got %+v", tagsVal)
	}
	elems := tagsVal.AllFields("element")
	if len(elems) != 2 || string(elems[0].Bytes) != "a" || string(elems[1].Bytes) != "b" {
		t.Fatalf("unexpected elements: %+v", elems)
	}

	r2 := a.Next()
	tagsVal2, _ := r2.Field("tags")
	if tagsVal2.Kind != value.Null {
		t.Fatalf("expected absent tags, got %+v", tagsVal2)
	}

	r3 := a.Next()
	tagsVal3, ok := r3.Field("tags")
	if !ok || tagsVal3.Kind != value.Object || len(tagsVal3.AllFields("element")) != 0 {
		t.Fatalf("expected present empty tags list, got %+v", tagsVal3)
	}

	if a.HasNext() {
		t.Fatal("expected assembler exhausted after 3 records")
	}
}
