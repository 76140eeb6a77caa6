package schema

import (
	"testing"

	"github.com/hardwoodfs/parquet/format"
)

func repType(r format.FieldRepetitionType) *format.FieldRepetitionType { return &r }
func typ(t format.Type) *format.Type                                  { return &t }

// flatSchema builds: message root { required int64 id; optional group
// address { required binary street (STRING); required binary city
// (STRING); } }
func flatSchema() []format.SchemaElement {
	return []format.SchemaElement{
		{Name: "root", NumChildren: 2},
		{Name: "id", Type: typ(format.Int64), RepetitionType: repType(format.Required)},
		{Name: "address", NumChildren: 2, RepetitionType: repType(format.Optional)},
		{Name: "street", Type: typ(format.ByteArray), RepetitionType: repType(format.Required)},
		{Name: "city", Type: typ(format.ByteArray), RepetitionType: repType(format.Required)},
	}
}

func TestBuildFlatSchema(t *testing.T) {
	s, err := Build(flatSchema())
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Leaves) != 3 {
		t.Fatalf("expected 3 leaves, got %d", len(s.Leaves))
	}
	if s.Leaves[0].Name != "id" || s.Leaves[1].Name != "street" || s.Leaves[2].Name != "city" {
		t.Fatalf("unexpected leaf order: %v", s.Leaves)
	}
	address := s.Root.ChildByName("address")
	if address.MaxDefinitionLevel != 1 {
		t.Fatalf("expected address max def level 1, got %d", address.MaxDefinitionLevel)
	}
	street := address.ChildByName("street")
	if street.MaxDefinitionLevel != 1 {
		t.Fatalf("expected street max def level 1 (inherits optional ancestor), got %d", street.MaxDefinitionLevel)
	}
	if street.MaxRepetitionLevel != 0 {
		t.Fatalf("expected street max rep level 0, got %d", street.MaxRepetitionLevel)
	}
}

// listSchema builds: message root { optional group tags (LIST) {
// repeated group list { required binary element (STRING); } } }
func listSchema() []format.SchemaElement {
	listAnn := format.List
	return []format.SchemaElement{
		{Name: "root", NumChildren: 1},
		{Name: "tags", NumChildren: 1, RepetitionType: repType(format.Optional), ConvertedType: &listAnn},
		{Name: "list", NumChildren: 1, RepetitionType: repType(format.Repeated)},
		{Name: "element", Type: typ(format.ByteArray), RepetitionType: repType(format.Required)},
	}
}

func TestBuildListSchema(t *testing.T) {
	s, err := Build(listSchema())
	if err != nil {
		t.Fatal(err)
	}
	tags := s.Root.ChildByName("tags")
	if tags.Kind != KindList {
		t.Fatalf("expected tags to be tagged KindList, got %v", tags.Kind)
	}
	elem := tags.ListElement()
	if elem == nil || elem.Name != "element" {
		t.Fatalf("expected list element named 'element', got %v", elem)
	}
	if elem.MaxRepetitionLevel != 1 {
		t.Fatalf("expected element max rep level 1, got %d", elem.MaxRepetitionLevel)
	}
	if elem.MaxDefinitionLevel != 2 {
		t.Fatalf("expected element max def level 2 (optional tags + required element itself doesn't add, repeated list wrapper adds), got %d", elem.MaxDefinitionLevel)
	}
}

func mapSchema() []format.SchemaElement {
	mapAnn := format.Map
	return []format.SchemaElement{
		{Name: "root", NumChildren: 1},
		{Name: "attrs", NumChildren: 1, RepetitionType: repType(format.Optional), ConvertedType: &mapAnn},
		{Name: "key_value", NumChildren: 2, RepetitionType: repType(format.Repeated)},
		{Name: "key", Type: typ(format.ByteArray), RepetitionType: repType(format.Required)},
		{Name: "value", Type: typ(format.ByteArray), RepetitionType: repType(format.Required)},
	}
}

func TestBuildMapSchema(t *testing.T) {
	s, err := Build(mapSchema())
	if err != nil {
		t.Fatal(err)
	}
	attrs := s.Root.ChildByName("attrs")
	if attrs.Kind != KindMap {
		t.Fatalf("expected attrs to be tagged KindMap, got %v", attrs.Kind)
	}
	key, value := attrs.MapKeyValue()
	if key.Name != "key" || value.Name != "value" {
		t.Fatalf("unexpected key/value nodes: %v %v", key, value)
	}
}

func TestProjectionSelectAndAll(t *testing.T) {
	s, err := Build(flatSchema())
	if err != nil {
		t.Fatal(err)
	}
	all := All(s)
	if all.FieldCount() != 2 {
		t.Fatalf("expected 2 top-level fields, got %d", all.FieldCount())
	}
	if len(all.ProjectedLeaves) != 3 {
		t.Fatalf("expected all 3 leaves projected, got %d", len(all.ProjectedLeaves))
	}

	p, err := Select(s, []string{"address"})
	if err != nil {
		t.Fatal(err)
	}
	if p.FieldCount() != 1 || p.FieldName(0) != "address" {
		t.Fatalf("unexpected projected fields: %+v", p.Fields)
	}
	idLeaf := s.Leaves[0]
	if p.LeafIndex(idLeaf.ColumnIndex) != -1 {
		t.Fatalf("expected id leaf to be dropped by projection, got index %d", p.LeafIndex(idLeaf.ColumnIndex))
	}
	streetLeaf := s.Leaves[1]
	if p.LeafIndex(streetLeaf.ColumnIndex) != 0 {
		t.Fatalf("expected street leaf projected to index 0, got %d", p.LeafIndex(streetLeaf.ColumnIndex))
	}
}

func TestProjectionUnknownField(t *testing.T) {
	s, err := Build(flatSchema())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Select(s, []string{"nope"}); err == nil {
		t.Fatal("expected an error for an unknown field name")
	}
}

func TestSchemaString(t *testing.T) {
	s, err := Build(flatSchema())
	if err != nil {
		t.Fatal(err)
	}
	str := s.String()
	if str == "" {
		t.Fatal("expected non-empty schema rendering")
	}
}
