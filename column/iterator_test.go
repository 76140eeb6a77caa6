package column

import (
	"io"
	"testing"

	"github.com/hardwoodfs/parquet/format"
	"github.com/hardwoodfs/parquet/page"
)

// fakeSource replays a fixed slice of pages, then returns io.EOF.
type fakeSource struct {
	pages []*page.Page
	pos   int
}

func (s *fakeSource) ReadPage() (*page.Page, error) {
	if s.pos >= len(s.pages) {
		return nil, io.EOF
	}
	p := s.pages[s.pos]
	s.pos++
	return p, nil
}

func TestIteratorFlatAcrossPages(t *testing.T) {
	src := &fakeSource{pages: []*page.Page{
		{Type: format.Int32, NumValues: 2, Int32s: []int32{1, 2}},
		{Type: format.Int32, NumValues: 2, Int32s: []int32{3, 4}},
		{Type: format.Int32, NumValues: 1, Int32s: []int32{5}},
	}}
	it := NewIterator(src, format.Int32, 0, 0, 0)

	b, err := it.Prefetch(3)
	if err != nil {
		t.Fatal(err)
	}
	if b.NumRecords != 3 || len(b.Int32s) != 3 {
		t.Fatalf("expected 3 values spanning two pages, got %v", b.Int32s)
	}
	if b.Int32s[0] != 1 || b.Int32s[2] != 3 {
		t.Fatalf("unexpected values: %v", b.Int32s)
	}

	b2, err := it.Prefetch(3)
	if err != nil {
		t.Fatal(err)
	}
	if b2.NumRecords != 2 || len(b2.Int32s) != 2 {
		t.Fatalf("expected leftover 2 values, got %v", b2.Int32s)
	}

	b3, err := it.Prefetch(3)
	if err != nil {
		t.Fatal(err)
	}
	if !b3.Empty() {
		t.Fatalf("expected empty batch once exhausted, got %v", b3)
	}
}

func TestIteratorOptionalWithNulls(t *testing.T) {
	src := &fakeSource{pages: []*page.Page{
		{
			Type:               format.Int32,
			NumValues:          4,
			MaxDefinitionLevel: 1,
			DefinitionLevels:   []int32{1, 0, 1, 0},
			Int32s:             []int32{10, 20},
		},
	}}
	it := NewIterator(src, format.Int32, 0, 1, 0)

	b, err := it.Prefetch(4)
	if err != nil {
		t.Fatal(err)
	}
	if b.NumRecords != 4 {
		t.Fatalf("expected 4 slots, got %d", b.NumRecords)
	}
	if len(b.DefinitionLevels) != 4 {
		t.Fatalf("expected 4 definition levels, got %d", len(b.DefinitionLevels))
	}
	if len(b.Int32s) != 2 || b.Int32s[0] != 10 || b.Int32s[1] != 20 {
		t.Fatalf("unexpected non-null values: %v", b.Int32s)
	}
}

// a nested column with maxRep == 1: three records of lengths 2, 1, 2,
// encoded as a single page with repetition levels marking record starts.
func nestedFixture() *page.Page {
	return &page.Page{
		Type:               format.Int32,
		NumValues:          5,
		MaxDefinitionLevel: 1,
		MaxRepetitionLevel: 1,
		DefinitionLevels:   []int32{1, 1, 1, 1, 1},
		RepetitionLevels:   []int32{0, 1, 0, 0, 1},
		Int32s:             []int32{1, 2, 3, 4, 5},
	}
}

func TestIteratorNestedNeverSplitsRecord(t *testing.T) {
	src := &fakeSource{pages: []*page.Page{nestedFixture()}}
	it := NewIterator(src, format.Int32, 0, 1, 1)

	// ask for 1 record at a time; iterator must still consume whole
	// records only, using the leftover page cursor between calls.
	b1, err := it.Prefetch(1)
	if err != nil {
		t.Fatal(err)
	}
	if b1.NumRecords != 1 || len(b1.Int32s) != 2 {
		t.Fatalf("expected first record (2 values), got NumRecords=%d values=%v", b1.NumRecords, b1.Int32s)
	}

	b2, err := it.Prefetch(2)
	if err != nil {
		t.Fatal(err)
	}
	if b2.NumRecords != 2 || len(b2.Int32s) != 3 {
		t.Fatalf("expected remaining two records (3 values), got NumRecords=%d values=%v", b2.NumRecords, b2.Int32s)
	}

	b3, err := it.Prefetch(1)
	if err != nil {
		t.Fatal(err)
	}
	if !b3.Empty() {
		t.Fatalf("expected empty batch once exhausted, got %v", b3)
	}
}

func TestIteratorNestedSpansPages(t *testing.T) {
	// record split across two pages: first page ends mid-record
	// (rep stream [0, 1]), second page continues it (rep stream [1, 0]).
	src := &fakeSource{pages: []*page.Page{
		{
			Type:               format.Int32,
			NumValues:          2,
			MaxDefinitionLevel: 1,
			MaxRepetitionLevel: 1,
			DefinitionLevels:   []int32{1, 1},
			RepetitionLevels:   []int32{0, 1},
			Int32s:             []int32{1, 2},
		},
		{
			Type:               format.Int32,
			NumValues:          2,
			MaxDefinitionLevel: 1,
			MaxRepetitionLevel: 1,
			DefinitionLevels:   []int32{1, 1},
			RepetitionLevels:   []int32{1, 0},
			Int32s:             []int32{3, 4},
		},
	}}
	it := NewIterator(src, format.Int32, 0, 1, 1)

	b, err := it.Prefetch(1)
	if err != nil {
		t.Fatal(err)
	}
	if b.NumRecords != 1 || len(b.Int32s) != 3 || b.Int32s[2] != 3 {
		t.Fatalf("expected one 3-value record spanning both pages, got NumRecords=%d values=%v", b.NumRecords, b.Int32s)
	}
}
