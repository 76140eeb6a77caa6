package parquet

import (
	"fmt"

	"github.com/hardwoodfs/parquet/hardwood"
	"github.com/hardwoodfs/parquet/value"
)

// MultiReader concatenates the rows of several FileReaders into a single
// row-at-a-time cursor, reading each file to completion before moving to
// the next — the multi-file counterpart of a within-file row group
// concatenation, generalized across whole files that share a compatible
// schema instead of across one file's row groups.
//
// A MultiReader built by OpenAllShared has all its files share one
// hardwood.Pool, so prefetch tasks across files contend for the same
// bounded concurrency budget; NewMultiReader keeps each file's own pool.
type MultiReader struct {
	files  []*FileReader
	pool   *hardwood.Pool
	fields []string
	options []Option

	index int
	cur   *RowReader
	err   error
	row   value.Value
}

// OpenAllShared opens every path the same way OpenFile does, but builds
// one shared worker pool sized from the resolved config instead of one
// pool per file.
func OpenAllShared(paths []string, options ...Option) (*MultiReader, error) {
	cfg := DefaultConfig()
	cfg.Apply(options...)
	pool := hardwood.NewPool(cfg.Threads)

	files := make([]*FileReader, 0, len(paths))
	for _, path := range paths {
		src, err := OpenFileSource(path)
		if err != nil {
			closeAll(files)
			return nil, err
		}
		f, err := openWithPool(path, src, pool, options...)
		if err != nil {
			src.Close()
			closeAll(files)
			return nil, err
		}
		files = append(files, f)
	}
	return &MultiReader{files: files, pool: pool}, nil
}

func closeAll(files []*FileReader) {
	for _, f := range files {
		f.Close()
	}
}

// NewMultiReader wraps already-open FileReaders into a MultiReader
// without altering their worker pools; callers who built their readers
// individually (and so already paid for one pool per file) can still
// read them concatenated through one cursor.
func NewMultiReader(files ...*FileReader) *MultiReader {
	return &MultiReader{files: files}
}

// RowReader builds a row cursor spanning every file in order, applying
// the same field projection and options to each file's underlying
// RowReader.
func (m *MultiReader) RowReader(fields []string, options ...Option) (*MultiReader, error) {
	m.fields = fields
	m.options = options
	m.index = -1
	m.cur = nil
	m.err = nil
	if err := m.advanceFile(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *MultiReader) advanceFile() error {
	m.index++
	if m.index >= len(m.files) {
		m.cur = nil
		return nil
	}
	rr, err := m.files[m.index].RowReader(m.fields, m.options...)
	if err != nil {
		return fmt.Errorf("parquet: %s: %w", m.files[m.index].Path(), err)
	}
	m.cur = rr
	return nil
}

// Next advances to the next row across every underlying file, returning
// false once the last file is exhausted or a decode error occurred.
func (m *MultiReader) Next() bool {
	for {
		if m.cur == nil {
			return false
		}
		if m.cur.Next() {
			m.row = m.cur.Row()
			return true
		}
		if err := m.cur.Err(); err != nil {
			m.err = fmt.Errorf("parquet: %s: %w", m.files[m.index].Path(), err)
			return false
		}
		if err := m.advanceFile(); err != nil {
			m.err = err
			return false
		}
	}
}

// Err returns the error, if any, that stopped Next from advancing.
func (m *MultiReader) Err() error { return m.err }

// Row returns the record Next most recently produced.
func (m *MultiReader) Row() value.Value { return m.row }

// NumRows returns the total row count across every file.
func (m *MultiReader) NumRows() int64 {
	var n int64
	for _, f := range m.files {
		n += f.NumRows()
	}
	return n
}

// Close closes every underlying FileReader. The shared Pool, if any,
// holds no resources of its own to release.
func (m *MultiReader) Close() error {
	var first error
	for _, f := range m.files {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
