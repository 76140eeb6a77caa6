package parquet

import (
	"io"
	"os"

	"github.com/hardwoodfs/parquet/pio"
)

// ByteSource is the narrow interface the core decode path depends on for
// reading a file's bytes: random access reads plus a known length. This
// keeps the file-opener itself (mmap vs plain I/O, local disk vs some
// other byte store) outside the core's scope — callers who want mmap
// semantics can supply their own ByteSource.
type ByteSource interface {
	io.ReaderAt
	// Len returns the total size in bytes of the underlying data.
	Len() int64
	Close() error
}

// osFileSource backs a ByteSource with a plain *os.File. It does not
// memory-map the file — like the teacher, despite occasional "mmap"
// terminology in Parquet folklore, this module reads through ordinary
// pread-style random access, parallelized across regions via pio when the
// FileReader fetches several column-chunk ranges of a row group at once.
type osFileSource struct {
	file *pio.File
	size int64
}

// OpenFileSource opens path and returns the default ByteSource backing
// it. Most callers want the higher-level OpenFile, which wraps this to
// build a FileReader directly; OpenFileSource is exported for callers
// supplying their own mmap- or network-backed ByteSource who still want
// the plain-file default for comparison or fallback.
func OpenFileSource(path string) (ByteSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	return &osFileSource{file: &pio.File{File: f}, size: info.Size()}, nil
}

func (s *osFileSource) ReadAt(p []byte, off int64) (int, error) {
	return s.file.ReadAt(p, off)
}

// MultiReadAt lets pio.MultiReadAt dispatch straight to pio.File's
// optimized path instead of falling back to the generic goroutine fan-out.
func (s *osFileSource) MultiReadAt(ops []pio.Op) {
	s.file.MultiReadAt(ops)
}

func (s *osFileSource) Len() int64 { return s.size }

func (s *osFileSource) Close() error { return s.file.Close() }
