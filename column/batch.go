// Package column provides the above-page abstraction: an Iterator that
// pulls decoded pages out of a page.Reader and regroups their slots into
// fixed-size (for flat columns) or whole-record (for nested columns)
// batches.
package column

import "github.com/hardwoodfs/parquet/format"

// Batch is a run of column slots spanning zero or more whole top-level
// records, concatenated across as many pages as it took to fill it.
// Exactly one of the typed value slices is populated, matching Type.
type Batch struct {
	Type       format.Type
	TypeLength int32

	MaxDefinitionLevel int
	MaxRepetitionLevel int

	// NumRecords is the number of top-level records (rep == 0 slots)
	// represented in this batch.
	NumRecords int

	// DefinitionLevels/RepetitionLevels are nil when the corresponding
	// max level is 0, the same convention page.Page uses.
	DefinitionLevels []int32
	RepetitionLevels []int32

	Booleans []bool
	Int32s   []int32
	Int64s   []int64
	Int96s   [][12]byte
	Floats   []float32
	Doubles  []float64
	Bytes    [][]byte
}

// NumValues is the number of slots in the batch, including nulls.
func (b *Batch) NumValues() int {
	if b.MaxDefinitionLevel > 0 {
		return len(b.DefinitionLevels)
	}
	return b.numNonNull()
}

func (b *Batch) numNonNull() int {
	switch b.Type {
	case format.Boolean:
		return len(b.Booleans)
	case format.Int32:
		return len(b.Int32s)
	case format.Int64:
		return len(b.Int64s)
	case format.Int96:
		return len(b.Int96s)
	case format.Float:
		return len(b.Floats)
	case format.Double:
		return len(b.Doubles)
	default:
		return len(b.Bytes)
	}
}

// Empty reports whether the batch carries no slots at all — the
// column is exhausted.
func (b *Batch) Empty() bool { return b.NumValues() == 0 }
