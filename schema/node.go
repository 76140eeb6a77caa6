// Package schema builds the in-memory tree of a Parquet file's message
// type out of its flat, depth-first SchemaElement list, enumerates its
// leaf (primitive) columns in the order the column chunks are stored in,
// and computes each leaf's maximum definition and repetition levels.
package schema

import (
	"fmt"
	"strings"

	"github.com/hardwoodfs/parquet/format"
)

// Kind distinguishes how a group node should be treated by the record
// assembler: as an ordinary struct, as a LIST, or as a MAP.
type Kind int

const (
	// KindGroup is an ordinary struct-like group (or the message root).
	KindGroup Kind = iota
	// KindList marks a group whose sole child is a REPEATED group
	// wrapping a single element child.
	KindList
	// KindMap marks a group whose sole child is a REPEATED group with
	// exactly two children, named key and value.
	KindMap
)

// Node is one element of the schema tree: either a primitive leaf or a
// group (struct, list, or map) with children.
type Node struct {
	Name           string
	Repetition     format.FieldRepetitionType
	Kind           Kind
	Children       []*Node
	Parent         *Node

	// Leaf-only fields; zero/unset on groups.
	Type        format.Type
	TypeLength  int32
	LogicalType *format.LogicalType
	ColumnIndex int // depth-first leaf order, -1 for groups

	MaxDefinitionLevel int
	MaxRepetitionLevel int
}

// IsLeaf reports whether n is a primitive column rather than a group.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Optional reports whether n (or, for a leaf reached through a REPEATED
// ancestor, the nearest ancestor) may be absent.
func (n *Node) Optional() bool { return n.Repetition == format.Optional }

// Repeated reports whether n may occur zero or more times under its parent.
func (n *Node) Repeated() bool { return n.Repetition == format.Repeated }

// Required reports whether n must occur exactly once under its parent.
func (n *Node) Required() bool { return n.Repetition == format.Required }

// Path returns the dotted path from the message root to n, root excluded.
func (n *Node) Path() []string {
	if n.Parent == nil {
		return nil
	}
	return append(n.Parent.Path(), n.Name)
}

// PathString renders Path joined with dots, the form used in error
// messages and projection lookups.
func (n *Node) PathString() string {
	return strings.Join(n.Path(), ".")
}

// ChildByName returns the child of n named name, or nil.
func (n *Node) ChildByName(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ListElement returns the element node of a KindList group: the sole
// grandchild reached through the synthetic REPEATED wrapper group.
func (n *Node) ListElement() *Node {
	if n.Kind != KindList {
		return nil
	}
	return n.Children[0].Children[0]
}

// MapKeyValue returns the key and value nodes of a KindMap group.
func (n *Node) MapKeyValue() (key, value *Node) {
	if n.Kind != KindMap {
		return nil, nil
	}
	kv := n.Children[0]
	return kv.Children[0], kv.Children[1]
}

// Leaves collects the primitive descendants of n in depth-first,
// ColumnIndex order.
func (n *Node) Leaves() []*Node {
	var leaves []*Node
	var walk func(*Node)
	walk = func(node *Node) {
		if node.IsLeaf() {
			leaves = append(leaves, node)
			return
		}
		for _, c := range node.Children {
			walk(c)
		}
	}
	walk(n)
	return leaves
}

func (n *Node) String() string {
	return fmt.Sprintf("%s %s", n.Repetition, n.Name)
}
