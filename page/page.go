// Package page decodes the pages of a single Parquet column chunk:
// dictionary page, and v1/v2 data pages, producing typed, levels-attached
// value batches per the five-step page algorithm (parse header, dispatch
// by page type, decompress, decode levels, decode values).
package page

import "github.com/hardwoodfs/parquet/format"

// Page is one decoded data page: a run of value slots (possibly
// including nulls), with parallel repetition/definition level arrays
// when the column's schema position requires them, and exactly one of
// the typed value slices populated according to Type.
type Page struct {
	Type       format.Type
	TypeLength int32

	// NumValues is the number of slots in this page, including null
	// slots. It equals len(DefinitionLevels)/len(RepetitionLevels) when
	// those are present, and the length of the typed value slice when
	// MaxDefinitionLevel == 0 (an always-required column has no nulls,
	// so every slot holds a value).
	NumValues int

	MaxDefinitionLevel int
	MaxRepetitionLevel int

	// DefinitionLevels is nil when MaxDefinitionLevel == 0 (the column
	// has no OPTIONAL/REPEATED ancestors, so every slot is non-null).
	DefinitionLevels []int32
	// RepetitionLevels is nil when MaxRepetitionLevel == 0 (flat column).
	RepetitionLevels []int32

	// Exactly one of these holds NumNonNull() values, in slot order.
	Booleans []bool
	Int32s   []int32
	Int64s   []int64
	Int96s   [][12]byte
	Floats   []float32
	Doubles  []float64
	// Bytes holds both BYTE_ARRAY and FIXED_LEN_BYTE_ARRAY values.
	Bytes [][]byte
}

// NumNonNull returns the number of slots whose definition level equals
// MaxDefinitionLevel — the slots that actually carry a decoded value.
func (p *Page) NumNonNull() int {
	if p.MaxDefinitionLevel == 0 {
		return p.NumValues
	}
	n := 0
	for _, d := range p.DefinitionLevels {
		if int(d) == p.MaxDefinitionLevel {
			n++
		}
	}
	return n
}

// Dictionary is a data page's dictionary page, decoded once per column
// chunk and referenced by every RLE_DICTIONARY/PLAIN_DICTIONARY page that
// follows it.
type Dictionary struct {
	Type format.Type

	Booleans []bool
	Int32s   []int32
	Int64s   []int64
	Int96s   [][12]byte
	Floats   []float32
	Doubles  []float64
	Bytes    [][]byte
}

// Len returns the number of entries in the dictionary.
func (d *Dictionary) Len() int {
	switch d.Type {
	case format.Boolean:
		return len(d.Booleans)
	case format.Int32:
		return len(d.Int32s)
	case format.Int64:
		return len(d.Int64s)
	case format.Int96:
		return len(d.Int96s)
	case format.Float:
		return len(d.Floats)
	case format.Double:
		return len(d.Doubles)
	default:
		return len(d.Bytes)
	}
}
