package schema

import (
	"io"
	"strings"
)

// String renders s's message type the way `parquet-tools schema` would,
// using a tab/newline layout.
func (s *Schema) String() string {
	var sb strings.Builder
	DebugTree(&sb, s.Root)
	return sb.String()
}

// DebugTree writes node's subtree to w as an indented "message { ... }"
// block, grounded on the teacher's schema pretty-printer.
func DebugTree(w io.Writer, node *Node) error {
	pw := &printWriter{writer: w}
	pw.WriteString("message ")
	if node.Name == "" {
		pw.WriteString("{")
	} else {
		pw.WriteString(node.Name)
		pw.WriteString(" {")
	}

	if len(node.Children) > 0 {
		pi := &printIndent{pattern: "\t", newline: "\n", repeat: 1}
		pi.writeNewLine(pw)
		for _, child := range node.Children {
			printWithIndent(pw, child, pi)
			pi.writeNewLine(pw)
		}
	}

	pw.WriteString("}")
	return pw.err
}

func printWithIndent(w io.StringWriter, node *Node, indent *printIndent) {
	indent.writeTo(w)

	switch {
	case node.Optional():
		w.WriteString("optional ")
	case node.Repeated():
		w.WriteString("repeated ")
	default:
		w.WriteString("required ")
	}

	if node.IsLeaf() {
		w.WriteString(node.Type.String())
		w.WriteString(" ")
		w.WriteString(node.Name)
		if node.LogicalType != nil {
			w.WriteString(" (")
			w.WriteString(node.LogicalType.String())
			w.WriteString(")")
		}
		w.WriteString(";")
		return
	}

	w.WriteString("group")
	if node.Name != "" {
		w.WriteString(" ")
		w.WriteString(node.Name)
	}
	switch node.Kind {
	case KindList:
		w.WriteString(" (LIST)")
	case KindMap:
		w.WriteString(" (MAP)")
	}
	w.WriteString(" {")
	indent.writeNewLine(w)
	indent.push()
	for _, child := range node.Children {
		printWithIndent(w, child, indent)
		indent.writeNewLine(w)
	}
	indent.pop()
	indent.writeTo(w)
	w.WriteString("}")
}

type printIndent struct {
	pattern string
	newline string
	repeat  int
}

func (i *printIndent) push() { i.repeat++ }
func (i *printIndent) pop()  { i.repeat-- }

func (i *printIndent) writeTo(w io.StringWriter) {
	for n := i.repeat; n > 0; n-- {
		w.WriteString(i.pattern)
	}
}

func (i *printIndent) writeNewLine(w io.StringWriter) {
	if i.newline != "" {
		w.WriteString(i.newline)
	}
}

type printWriter struct {
	writer io.Writer
	err    error
}

func (w *printWriter) Write(b []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.writer.Write(b)
	if err != nil {
		w.err = err
	}
	return n, err
}

func (w *printWriter) WriteString(s string) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := io.WriteString(w.writer, s)
	if err != nil {
		w.err = err
	}
	return n, err
}
