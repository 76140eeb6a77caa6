package column

import (
	"fmt"
	"io"

	"github.com/hardwoodfs/parquet/format"
	"github.com/hardwoodfs/parquet/page"
)

// PageSource is the narrow page.Reader surface Iterator depends on.
type PageSource interface {
	ReadPage() (*page.Page, error)
}

// Iterator regroups the pages of one column chunk into fixed-size (flat
// columns) or whole-record (nested columns) batches.
//
// A nested column's record boundaries can fall anywhere inside a page, so
// Iterator holds the current page and a cursor into it across Prefetch
// calls rather than copying a single leftover value into a side buffer:
// the pending page plus its cursor together play the role of the
// single-value lookahead the record boundary detection needs, generalized
// to however much of a page is left over once a batch's target record
// count is reached.
type Iterator struct {
	src        PageSource
	typ        format.Type
	typeLength int32
	maxDef     int
	maxRep     int

	pending    *page.Page
	slotPos    int // next unconsumed slot (level) index into pending
	valuePos   int // next unconsumed value index into pending's typed slice
	sourceDone bool
}

// NewIterator constructs an Iterator pulling pages from src.
func NewIterator(src PageSource, typ format.Type, typeLength int32, maxDef, maxRep int) *Iterator {
	return &Iterator{src: src, typ: typ, typeLength: typeLength, maxDef: maxDef, maxRep: maxRep}
}

// Prefetch returns up to batchSize top-level records as a Batch. For a
// flat column (MaxRepetitionLevel == 0) a batch holds exactly
// min(batchSize, records-remaining) slots. For a nested column the
// iterator never splits a record across batches: a batch also holds
// exactly min(batchSize, records-remaining) whole records, and a record
// whose values continue onto the next page is completed before the batch
// is returned, so only the number of values varies. Once the column is
// exhausted it returns an empty batch and no error.
func (it *Iterator) Prefetch(batchSize int) (*Batch, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("column: batch size must be positive, got %d", batchSize)
	}

	b := &Batch{
		Type:               it.typ,
		TypeLength:         it.typeLength,
		MaxDefinitionLevel: it.maxDef,
		MaxRepetitionLevel: it.maxRep,
	}

	for {
		// A nested batch that is already full keeps going until the next
		// record start, so a record's tail on a later page is not dropped.
		if it.maxRep == 0 && b.NumRecords >= batchSize {
			break
		}
		if err := it.fill(); err != nil {
			return nil, err
		}
		if it.pending == nil {
			break // source exhausted; return whatever was accumulated
		}

		if it.maxRep == 0 {
			it.appendFlat(b, batchSize-b.NumRecords)
			continue
		}
		if it.appendOneNestedRecordOrStop(b, batchSize) {
			break
		}
	}

	return b, nil
}

// fill ensures it.pending has unconsumed slots, pulling a new page from
// the source if the current one (if any) is exhausted. it.pending is set
// to nil once the source itself is exhausted.
func (it *Iterator) fill() error {
	for it.pending == nil || it.slotPos >= it.pending.NumValues {
		if it.sourceDone {
			it.pending = nil
			return nil
		}
		p, err := it.src.ReadPage()
		if err == io.EOF {
			it.sourceDone = true
			it.pending = nil
			return nil
		}
		if err != nil {
			return err
		}
		it.pending = p
		it.slotPos = 0
		it.valuePos = 0
	}
	return nil
}

// appendFlat consumes up to want slots from it.pending — safe because a
// flat column has no record structure to preserve across the cut.
func (it *Iterator) appendFlat(b *Batch, want int) {
	avail := it.pending.NumValues - it.slotPos
	if want > avail {
		want = avail
	}
	for i := 0; i < want; i++ {
		it.appendSlot(b)
	}
	b.NumRecords += want
}

// appendOneNestedRecordOrStop consumes slots from it.pending one at a
// time until either the pending page runs out (returns false, so
// Prefetch loops around to pull more pages) or a new record boundary
// (repetition level 0) is reached while the batch has already hit its
// target (returns true, stopping Prefetch with the boundary slot left
// unconsumed for the next call).
func (it *Iterator) appendOneNestedRecordOrStop(b *Batch, batchSize int) bool {
	for it.slotPos < it.pending.NumValues {
		rep := it.pending.RepetitionLevels[it.slotPos]
		if rep == 0 {
			if b.NumRecords == batchSize {
				return true
			}
			b.NumRecords++
		}
		it.appendSlot(b)
	}
	return false
}

// appendSlot copies the value (if any) and levels at it.slotPos from
// it.pending onto b, advancing both the slot and, when the slot carries
// a value, the value cursor.
func (it *Iterator) appendSlot(b *Batch) {
	p := it.pending

	if it.maxDef > 0 {
		b.DefinitionLevels = append(b.DefinitionLevels, p.DefinitionLevels[it.slotPos])
	}
	if it.maxRep > 0 {
		b.RepetitionLevels = append(b.RepetitionLevels, p.RepetitionLevels[it.slotPos])
	}

	hasValue := it.maxDef == 0 || p.DefinitionLevels[it.slotPos] == int32(it.maxDef)
	if hasValue {
		switch it.typ {
		case format.Boolean:
			b.Booleans = append(b.Booleans, p.Booleans[it.valuePos])
		case format.Int32:
			b.Int32s = append(b.Int32s, p.Int32s[it.valuePos])
		case format.Int64:
			b.Int64s = append(b.Int64s, p.Int64s[it.valuePos])
		case format.Int96:
			b.Int96s = append(b.Int96s, p.Int96s[it.valuePos])
		case format.Float:
			b.Floats = append(b.Floats, p.Floats[it.valuePos])
		case format.Double:
			b.Doubles = append(b.Doubles, p.Doubles[it.valuePos])
		default:
			b.Bytes = append(b.Bytes, p.Bytes[it.valuePos])
		}
		it.valuePos++
	}

	it.slotPos++
}
