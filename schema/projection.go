package schema

import "fmt"

// Projection is a chosen subset of a Schema's top-level fields. It
// restricts which leaf columns get decoded and gives callers a dense
// original-leaf-index -> projected-leaf-index mapping.
type Projection struct {
	schema *Schema

	// Fields holds the projected top-level field nodes, in selection
	// order (the order RowReader.FieldName(i) etc. report them in).
	Fields []*Node

	// leafIndex maps an original Schema leaf ColumnIndex to its index
	// within ProjectedLeaves, or -1 if that leaf was dropped.
	leafIndex []int

	// ProjectedLeaves lists the leaves kept by this projection, in
	// projected order.
	ProjectedLeaves []*Node
}

// All returns a Projection keeping every top-level field of s, in schema
// order.
func All(s *Schema) *Projection {
	names := make([]string, len(s.Root.Children))
	for i, c := range s.Root.Children {
		names[i] = c.Name
	}
	p, err := Select(s, names)
	if err != nil {
		// All of s's own field names always resolve against itself.
		panic(err)
	}
	return p
}

// Select builds a Projection for s keeping exactly the named top-level
// fields, in the order given.
func Select(s *Schema, names []string) (*Projection, error) {
	p := &Projection{
		schema:    s,
		leafIndex: make([]int, len(s.Leaves)),
	}
	for i := range p.leafIndex {
		p.leafIndex[i] = -1
	}

	for _, name := range names {
		field := s.Root.ChildByName(name)
		if field == nil {
			return nil, fmt.Errorf("schema: unknown field %q", name)
		}
		p.Fields = append(p.Fields, field)
		for _, leaf := range field.Leaves() {
			p.leafIndex[leaf.ColumnIndex] = len(p.ProjectedLeaves)
			p.ProjectedLeaves = append(p.ProjectedLeaves, leaf)
		}
	}
	return p, nil
}

// LeafIndex maps an original schema leaf column index to its projected
// index, or -1 if originalIndex was not selected by this projection.
func (p *Projection) LeafIndex(originalIndex int) int {
	if originalIndex < 0 || originalIndex >= len(p.leafIndex) {
		return -1
	}
	return p.leafIndex[originalIndex]
}

// FieldCount returns the number of top-level fields kept.
func (p *Projection) FieldCount() int { return len(p.Fields) }

// FieldName returns the name of the i-th projected top-level field.
func (p *Projection) FieldName(i int) string { return p.Fields[i].Name }

// Schema returns the Schema this projection was built from.
func (p *Projection) Schema() *Schema { return p.schema }
