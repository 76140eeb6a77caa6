// Package record implements inverse-Dremel assembly: turning a
// per-leaf-column set of decoded batches back into whole, possibly
// nested, records.
package record

import (
	"fmt"

	"github.com/hardwoodfs/parquet/column"
	"github.com/hardwoodfs/parquet/format"
	"github.com/hardwoodfs/parquet/schema"
	"github.com/hardwoodfs/parquet/value"
)

// cursor walks one leaf column's batch slot by slot, tracking both the
// slot (level) position and the separate position into the batch's
// compacted (non-null only) typed value slice.
type cursor struct {
	leaf  *schema.Node
	batch *column.Batch
	slot  int
	val   int
}

func newCursor(leaf *schema.Node, b *column.Batch) *cursor {
	return &cursor{leaf: leaf, batch: b}
}

func (c *cursor) total() int { return c.batch.NumValues() }

func (c *cursor) exhausted() bool { return c.slot >= c.total() }

// peekDef returns the definition level of the next unconsumed slot, or
// -1 if the cursor is exhausted.
func (c *cursor) peekDef() int32 {
	if c.exhausted() {
		return -1
	}
	if len(c.batch.DefinitionLevels) == 0 {
		return int32(c.leaf.MaxDefinitionLevel)
	}
	return c.batch.DefinitionLevels[c.slot]
}

// peekRep returns the repetition level of the next unconsumed slot, or
// -1 if the cursor is exhausted.
func (c *cursor) peekRep() int32 {
	if c.exhausted() {
		return -1
	}
	if len(c.batch.RepetitionLevels) == 0 {
		return 0
	}
	return c.batch.RepetitionLevels[c.slot]
}

// consume advances past the next slot, returning the decoded leaf value
// (Null if the slot's definition level falls short of the leaf's own
// max definition level).
func (c *cursor) consume() value.Value {
	def := c.peekDef()
	var v value.Value
	if def == int32(c.leaf.MaxDefinitionLevel) {
		v = c.readValue()
	} else {
		v = value.NullValue()
	}
	c.slot++
	return v
}

// skip advances past the next slot without interpreting it, used when an
// ancestor group is already known to be absent for this record.
func (c *cursor) skip() { c.slot++ }

func (c *cursor) readValue() value.Value {
	b := c.batch
	i := c.val
	c.val++
	switch b.Type {
	case format.Boolean:
		return value.BoolValue(b.Booleans[i])
	case format.Int32:
		return value.IntValue(b.Int32s[i])
	case format.Int64:
		return value.LongValue(b.Int64s[i])
	case format.Float:
		return value.FloatValue(b.Floats[i])
	case format.Double:
		return value.DoubleValue(b.Doubles[i])
	case format.Int96:
		raw := b.Int96s[i]
		return value.BytesValue(raw[:])
	default:
		return value.BytesValue(b.Bytes[i])
	}
}

// Assembler reconstructs whole records from a matched set of per-leaf
// column batches, one batch per leaf of a schema in depth-first leaf
// order. Every batch passed to Records must represent exactly the same
// number of complete top-level records. The root reader package's driver
// gets this by prefetching every leaf with the same batch size: each
// column.Iterator returns exactly min(batchSize, records-remaining)
// whole records, so no trimming is done before calling Records.
type Assembler struct {
	fields  []*schema.Node
	cursors map[*schema.Node]*cursor
	first   *cursor // drives HasNext; any one leaf's exhaustion implies all are
}

// NewAssembler builds an Assembler over every field of sch, where
// batches[i] holds the slots of the leaf whose ColumnIndex is i.
func NewAssembler(sch *schema.Schema, batches []*column.Batch) (*Assembler, error) {
	if len(batches) != len(sch.Leaves) {
		return nil, fmt.Errorf("record: expected %d leaf batches, got %d", len(sch.Leaves), len(batches))
	}
	ordered := make([]*column.Batch, len(sch.Leaves))
	for _, leaf := range sch.Leaves {
		ordered[leaf.ColumnIndex] = batches[leaf.ColumnIndex]
	}
	return newAssembler(sch.Root.Children, sch.Leaves, ordered)
}

// NewProjectedAssembler builds an Assembler over just the fields p kept,
// where batches[i] holds the slots of p.ProjectedLeaves[i] — the same
// order column.Iterator prefetches are driven in for a projection.
func NewProjectedAssembler(p *schema.Projection, batches []*column.Batch) (*Assembler, error) {
	if len(batches) != len(p.ProjectedLeaves) {
		return nil, fmt.Errorf("record: expected %d leaf batches, got %d", len(p.ProjectedLeaves), len(batches))
	}
	return newAssembler(p.Fields, p.ProjectedLeaves, batches)
}

func newAssembler(fields []*schema.Node, leaves []*schema.Node, batches []*column.Batch) (*Assembler, error) {
	cursors := make(map[*schema.Node]*cursor, len(leaves))
	var first *cursor
	for i, leaf := range leaves {
		c := newCursor(leaf, batches[i])
		cursors[leaf] = c
		if first == nil {
			first = c
		}
	}
	return &Assembler{fields: fields, cursors: cursors, first: first}, nil
}

// HasNext reports whether at least one more record remains in the
// batches given to the constructor.
func (a *Assembler) HasNext() bool {
	return a.first == nil || !a.first.exhausted()
}

// Next assembles and returns the next record as an Object value whose
// fields mirror the selected top-level field names.
func (a *Assembler) Next() value.Value {
	var fields []value.Field
	for _, child := range a.fields {
		fields = append(fields, value.Field{Name: child.Name, Value: a.buildField(child, 0)})
	}
	return value.ObjectValue(fields)
}

func (a *Assembler) buildField(child *schema.Node, repLevel int) value.Value {
	switch {
	case child.Kind == schema.KindList:
		return a.buildList(child)
	case child.Kind == schema.KindMap:
		return a.buildMap(child)
	case child.IsLeaf():
		return a.cursorFor(child).consume()
	default:
		return a.buildGroup(child, repLevel)
	}
}

func (a *Assembler) cursorFor(leaf *schema.Node) *cursor { return a.cursors[leaf] }

// representative returns the leaf used to decide presence/repetition
// for node as a whole: its own leftmost descendant leaf. All leaves
// sharing a repeated or optional ancestor carry synchronized levels at
// that ancestor, so any one of them can drive the decision.
func representative(node *schema.Node) *schema.Node {
	if node.IsLeaf() {
		return node
	}
	leaves := node.Leaves()
	return leaves[0]
}

func (a *Assembler) buildGroupFields(node *schema.Node, repLevel int) []value.Field {
	var fields []value.Field
	for _, child := range node.Children {
		fields = append(fields, value.Field{Name: child.Name, Value: a.buildField(child, repLevel)})
	}
	return fields
}

// buildGroup assembles a plain (non-list, non-map) nested group, which
// is null as a whole when its representative leaf's definition level
// falls short of the group's own max definition level.
func (a *Assembler) buildGroup(node *schema.Node, repLevel int) value.Value {
	rep := representative(node)
	c := a.cursorFor(rep)
	if c.peekDef() < int32(node.MaxDefinitionLevel) {
		a.skipSubtree(node)
		return value.NullValue()
	}
	return value.ObjectValue(a.buildGroupFields(node, repLevel))
}

// skipSubtree advances every leaf cursor under node by exactly one
// slot, used when node is known absent for the current record.
func (a *Assembler) skipSubtree(node *schema.Node) {
	for _, leaf := range node.Leaves() {
		a.cursorFor(leaf).skip()
	}
}

// buildList assembles a LIST-annotated group into an Object whose
// repeated "element" fields hold the list's contents; a field with no
// "element" entries is a present-but-empty list, distinct from a Null
// value representing an absent (never-set) list field.
func (a *Assembler) buildList(node *schema.Node) value.Value {
	element := node.ListElement()
	rep := representative(element)
	c := a.cursorFor(rep)

	def := c.peekDef()
	switch {
	case def < int32(node.MaxDefinitionLevel):
		a.skipSubtree(node)
		return value.NullValue()
	case def == int32(node.MaxDefinitionLevel) && int32(node.MaxDefinitionLevel) < int32(element.MaxDefinitionLevel):
		a.skipSubtree(node)
		return value.ObjectValue(nil)
	}

	var fields []value.Field
	first := true
	for !c.exhausted() {
		if !first && c.peekRep() < int32(node.MaxRepetitionLevel) {
			break
		}
		first = false
		fields = append(fields, value.Field{Name: "element", Value: a.buildField(element, node.MaxRepetitionLevel)})
	}
	return value.ObjectValue(fields)
}

// buildMap assembles a MAP-annotated group into an Object whose
// repeated "key_value" fields each hold a nested Object with "key" and
// "value" fields.
func (a *Assembler) buildMap(node *schema.Node) value.Value {
	keyNode, _ := node.MapKeyValue()
	rep := representative(keyNode)
	c := a.cursorFor(rep)

	def := c.peekDef()
	switch {
	case def < int32(node.MaxDefinitionLevel):
		a.skipSubtree(node)
		return value.NullValue()
	case def == int32(node.MaxDefinitionLevel) && int32(node.MaxDefinitionLevel) < int32(keyNode.MaxDefinitionLevel):
		a.skipSubtree(node)
		return value.ObjectValue(nil)
	}

	kv := node.Children[0] // the synthetic repeated key_value group
	var fields []value.Field
	first := true
	for !c.exhausted() {
		if !first && c.peekRep() < int32(node.MaxRepetitionLevel) {
			break
		}
		first = false
		fields = append(fields, value.Field{Name: "key_value", Value: value.ObjectValue(a.buildGroupFields(kv, node.MaxRepetitionLevel))})
	}
	return value.ObjectValue(fields)
}

