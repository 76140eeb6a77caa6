// Package value defines the structured, dynamically-typed Value every
// row and column read from a file is expressed in terms of.
package value

import "fmt"

// Kind identifies which field of a Value is meaningful.
type Kind int8

const (
	Null Kind = iota
	Bool
	Int
	Long
	Float
	Double
	Bytes
	// Object holds a nested group: a record assembled from a Struct or
	// List/Map logical type, represented as an ordered slice of named
	// fields rather than a Go map so that repeated field names (list
	// elements) and field order are both preserved.
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Long:
		return "long"
	case Float:
		return "float"
	case Double:
		return "double"
	case Bytes:
		return "bytes"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// Field is one named member of an Object value. A repeated field (a
// list element, or repeated occurrences of a map's key_value pair)
// appears as multiple Fields sharing the same Name, in order.
type Field struct {
	Name  string
	Value Value
}

// Value is a tagged union over the primitive and structured shapes a
// parquet column or assembled row can hold. Only the field matching
// Kind is meaningful.
type Value struct {
	Kind    Kind
	Boolean bool
	Int32   int32
	Int64   int64
	Float32 float32
	Float64 float64
	Bytes   []byte
	Fields  []Field // valid when Kind == Object
}

// IsNull reports whether v represents an absent value.
func (v Value) IsNull() bool { return v.Kind == Null }

// Field looks up the first field named name, returning ok == false if
// absent. For repeated fields (list elements) use AllFields.
func (v Value) Field(name string) (Value, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// AllFields returns every field named name, in order. A List column
// assembles into an Object whose repeated "element" fields are
// retrieved this way; a Map column's repeated "key_value" fields
// likewise.
func (v Value) AllFields(name string) []Value {
	var out []Value
	for _, f := range v.Fields {
		if f.Name == name {
			out = append(out, f.Value)
		}
	}
	return out
}

func (v Value) String() string {
	switch v.Kind {
	case Null:
		return "null"
	case Bool:
		return fmt.Sprintf("%t", v.Boolean)
	case Int:
		return fmt.Sprintf("%d", v.Int32)
	case Long:
		return fmt.Sprintf("%d", v.Int64)
	case Float:
		return fmt.Sprintf("%g", v.Float32)
	case Double:
		return fmt.Sprintf("%g", v.Float64)
	case Bytes:
		return fmt.Sprintf("%q", v.Bytes)
	case Object:
		return fmt.Sprintf("%v", v.Fields)
	default:
		return "?"
	}
}

func NullValue() Value             { return Value{Kind: Null} }
func BoolValue(b bool) Value      { return Value{Kind: Bool, Boolean: b} }
func IntValue(i int32) Value      { return Value{Kind: Int, Int32: i} }
func LongValue(i int64) Value     { return Value{Kind: Long, Int64: i} }
func FloatValue(f float32) Value  { return Value{Kind: Float, Float32: f} }
func DoubleValue(f float64) Value { return Value{Kind: Double, Float64: f} }
func BytesValue(b []byte) Value   { return Value{Kind: Bytes, Bytes: b} }
func ObjectValue(fields []Field) Value {
	return Value{Kind: Object, Fields: fields}
}
