package schema

import (
	"fmt"

	"github.com/hardwoodfs/parquet/format"
)

// Schema is the parsed message type of a Parquet file, plus the leaf
// column index it implies.
type Schema struct {
	Root   *Node
	Leaves []*Node
}

// Build constructs a Schema from a FileMetaData's flat, depth-first
// SchemaElement list. elements[0] is the message root.
func Build(elements []format.SchemaElement) (*Schema, error) {
	if len(elements) == 0 {
		return nil, fmt.Errorf("schema: empty schema element list")
	}
	cur := 0
	root, err := buildNode(elements, &cur, nil)
	if err != nil {
		return nil, err
	}
	if cur != len(elements) {
		return nil, fmt.Errorf("schema: %d trailing schema elements not consumed", len(elements)-cur)
	}
	root.ColumnIndex = -1
	assignLevels(root, 0, 0)
	leaves := root.Leaves()
	for i, leaf := range leaves {
		leaf.ColumnIndex = i
	}
	return &Schema{Root: root, Leaves: leaves}, nil
}

// buildNode consumes elements[*cur] and, if it's a group, its subtree,
// advancing *cur past everything consumed.
func buildNode(elements []format.SchemaElement, cur *int, parent *Node) (*Node, error) {
	if *cur >= len(elements) {
		return nil, fmt.Errorf("schema: truncated schema element list")
	}
	e := elements[*cur]
	*cur++

	n := &Node{
		Name:        e.Name,
		Repetition:  repetitionOf(e, parent),
		Parent:      parent,
		ColumnIndex: -1,
	}

	if e.Type != nil {
		// Primitive leaf.
		n.Type = *e.Type
		if e.TypeLength != nil {
			n.TypeLength = *e.TypeLength
		}
		n.LogicalType = logicalTypeOf(e)
		return n, nil
	}

	// Group: NumChildren more elements follow, each a subtree.
	n.Children = make([]*Node, 0, e.NumChildren)
	for i := int32(0); i < e.NumChildren; i++ {
		child, err := buildNode(elements, cur, n)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}
	n.Kind = classifyKind(e, n)
	return n, nil
}

// repetitionOf returns REQUIRED for the message root (which carries no
// meaningful repetition of its own) and the element's declared repetition
// otherwise.
func repetitionOf(e format.SchemaElement, parent *Node) format.FieldRepetitionType {
	if parent == nil {
		return format.Required
	}
	if e.RepetitionType != nil {
		return *e.RepetitionType
	}
	return format.Required
}

func logicalTypeOf(e format.SchemaElement) *format.LogicalType {
	if e.LogicalType != nil {
		return e.LogicalType
	}
	if e.ConvertedType == nil {
		return nil
	}
	return convertedTypeToLogical(*e.ConvertedType, e.Scale, e.Precision)
}

func convertedTypeToLogical(ct format.ConvertedType, scale, precision int32) *format.LogicalType {
	switch ct {
	case format.UTF8:
		return &format.LogicalType{Kind: format.StringType}
	case format.Enum:
		return &format.LogicalType{Kind: format.EnumType}
	case format.Decimal:
		return &format.LogicalType{Kind: format.DecimalType, Scale: scale, Precision: precision}
	case format.Date:
		return &format.LogicalType{Kind: format.DateType}
	case format.TimeMillis:
		return &format.LogicalType{Kind: format.TimeType, Unit: format.Millis}
	case format.TimeMicros:
		return &format.LogicalType{Kind: format.TimeType, Unit: format.Micros}
	case format.TimestampMillis:
		return &format.LogicalType{Kind: format.TimestampType, Unit: format.Millis}
	case format.TimestampMicros:
		return &format.LogicalType{Kind: format.TimestampType, Unit: format.Micros}
	case format.JSON:
		return &format.LogicalType{Kind: format.JSONType}
	case format.BSON:
		return &format.LogicalType{Kind: format.BSONType}
	case format.Uint8:
		return &format.LogicalType{Kind: format.IntegerType, BitWidth: 8, IsSigned: false}
	case format.Uint16:
		return &format.LogicalType{Kind: format.IntegerType, BitWidth: 16, IsSigned: false}
	case format.Uint32:
		return &format.LogicalType{Kind: format.IntegerType, BitWidth: 32, IsSigned: false}
	case format.Uint64:
		return &format.LogicalType{Kind: format.IntegerType, BitWidth: 64, IsSigned: false}
	case format.Int8:
		return &format.LogicalType{Kind: format.IntegerType, BitWidth: 8, IsSigned: true}
	case format.Int16:
		return &format.LogicalType{Kind: format.IntegerType, BitWidth: 16, IsSigned: true}
	case format.Int32Type:
		return &format.LogicalType{Kind: format.IntegerType, BitWidth: 32, IsSigned: true}
	case format.Int64Type:
		return &format.LogicalType{Kind: format.IntegerType, BitWidth: 64, IsSigned: true}
	case format.List, format.Map, format.MapKeyValue:
		// Handled structurally by classifyKind; no leaf-level meaning.
		return nil
	default:
		return nil
	}
}

// classifyKind tags a freshly-built group node LIST or MAP, following the
// three-level encoding convention: the marker on the outer group is
// authoritative, and a sole-REPEATED-child structural match is used when
// the outer annotation is silent (legacy files predating LogicalType
// sometimes omit ConvertedType on the outer group too, so structure is
// the fallback, not an afterthought).
func classifyKind(e format.SchemaElement, n *Node) Kind {
	annotated := annotatedKind(e)
	if len(n.Children) != 1 || n.Children[0].Repetition != format.Repeated {
		return KindGroup
	}
	wrapper := n.Children[0]
	switch annotated {
	case KindList:
		if len(wrapper.Children) == 1 {
			return KindList
		}
	case KindMap:
		if len(wrapper.Children) == 2 {
			return KindMap
		}
	}
	// No explicit (or a contradictory) annotation: fall back to pure
	// structural detection.
	switch len(wrapper.Children) {
	case 1:
		return KindList
	case 2:
		return KindMap
	default:
		return KindGroup
	}
}

func annotatedKind(e format.SchemaElement) Kind {
	if e.LogicalType != nil {
		switch e.LogicalType.Kind {
		case format.ListType:
			return KindList
		case format.MapType:
			return KindMap
		}
	}
	if e.ConvertedType != nil {
		switch *e.ConvertedType {
		case format.List:
			return KindList
		case format.Map, format.MapKeyValue:
			return KindMap
		}
	}
	return KindGroup
}

// assignLevels computes each node's maximum definition/repetition level
// by accumulating OPTIONAL/REPEATED ancestors, and numbers leaves in
// depth-first order.
func assignLevels(n *Node, maxDef, maxRep int) {
	switch n.Repetition {
	case format.Optional:
		maxDef++
	case format.Repeated:
		maxDef++
		maxRep++
	}
	n.MaxDefinitionLevel = maxDef
	n.MaxRepetitionLevel = maxRep

	if n.IsLeaf() {
		return
	}
	for _, c := range n.Children {
		assignLevels(c, maxDef, maxRep)
	}
}
