package parquet

import (
	"fmt"

	"github.com/hardwoodfs/parquet/column"
	"github.com/hardwoodfs/parquet/compress"
	"github.com/hardwoodfs/parquet/compress/brotli"
	"github.com/hardwoodfs/parquet/compress/gzip"
	"github.com/hardwoodfs/parquet/compress/lz4"
	"github.com/hardwoodfs/parquet/compress/snappy"
	"github.com/hardwoodfs/parquet/compress/zstd"
	"github.com/hardwoodfs/parquet/format"
	"github.com/hardwoodfs/parquet/hardwood"
	"github.com/hardwoodfs/parquet/internal/debug"
	"github.com/hardwoodfs/parquet/metadata"
	"github.com/hardwoodfs/parquet/page"
	"github.com/hardwoodfs/parquet/pio"
	"github.com/hardwoodfs/parquet/schema"
)

// FileReader is an open handle on one Parquet file's footer, schema and
// row groups. It does not decode any column data until a RowReader or
// ColumnReader is created from it and driven.
type FileReader struct {
	path     string
	src      ByteSource
	meta     *format.FileMetaData
	schema   *schema.Schema
	config   *Config
	registry *compress.Registry
	workers  *hardwood.Context
}

// OpenFile opens the file at path and reads its footer.
func OpenFile(path string, options ...Option) (*FileReader, error) {
	src, err := OpenFileSource(path)
	if err != nil {
		return nil, err
	}
	f, err := Open(path, src, options...)
	if err != nil {
		src.Close()
		return nil, err
	}
	return f, nil
}

// Open builds a FileReader over an already-opened ByteSource. The
// FileReader takes ownership of src and closes it on Close.
func Open(path string, src ByteSource, options ...Option) (*FileReader, error) {
	return openWithPool(path, src, nil, options...)
}

// openWithPool is the shared constructor behind Open and
// OpenAllShared. pool, when non-nil, is a Pool borrowed from a
// MultiReader and left for the caller to tear down; when nil a fresh
// Pool sized from the resolved config is created and owned by the
// returned FileReader.
func openWithPool(path string, src ByteSource, pool *hardwood.Pool, options ...Option) (*FileReader, error) {
	cfg := DefaultConfig()
	cfg.Apply(options...)

	meta, err := readFooter(path, src)
	if err != nil {
		return nil, err
	}
	if len(meta.Schema) == 0 {
		return nil, malformed(path, "file metadata has no schema elements", nil)
	}

	sch, err := schema.Build(meta.Schema)
	if err != nil {
		return nil, malformed(path, fmt.Sprintf("building schema: %s", err), err)
	}

	workers := hardwood.NewContext(cfg.Threads)
	if pool != nil {
		workers = hardwood.Borrow(pool)
	}

	return &FileReader{
		path:     path,
		src:      src,
		meta:     meta,
		schema:   sch,
		config:   cfg,
		registry: defaultRegistry(),
		workers:  workers,
	}, nil
}

// OpenAll opens every path sharing a compatible schema as independent
// FileReaders, for callers assembling a MultiReader across them.
func OpenAll(paths []string, options ...Option) ([]*FileReader, error) {
	readers := make([]*FileReader, 0, len(paths))
	for _, path := range paths {
		f, err := OpenFile(path, options...)
		if err != nil {
			for _, opened := range readers {
				opened.Close()
			}
			return nil, err
		}
		readers = append(readers, f)
	}
	return readers, nil
}

func defaultRegistry() *compress.Registry {
	return compress.NewRegistry(
		&gzip.Codec{},
		&snappy.Codec{},
		&zstd.Codec{},
		&lz4.Codec{},
		&brotli.Codec{},
	)
}

func readFooter(path string, src ByteSource) (*format.FileMetaData, error) {
	size := src.Len()
	debug.Format("%s: reading footer, file size %d bytes", path, size)
	if size < metadata.MinFileSize {
		return nil, malformed(path, fmt.Sprintf("file too small to be parquet: %d bytes", size), nil)
	}

	header := make([]byte, 4)
	if _, err := src.ReadAt(header, 0); err != nil {
		return nil, fmt.Errorf("parquet: %s: reading leading magic: %w", path, err)
	}

	trailer := make([]byte, 8)
	if _, err := src.ReadAt(trailer, size-8); err != nil {
		return nil, fmt.Errorf("parquet: %s: reading trailer: %w", path, err)
	}

	footerLen := metadata.FooterLength(trailer)
	if footerLen < 0 || int64(footerLen) > size-8 {
		return nil, malformed(path, fmt.Sprintf("implausible footer length %d", footerLen), nil)
	}

	footer := make([]byte, footerLen)
	if _, err := src.ReadAt(footer, size-8-int64(footerLen)); err != nil {
		return nil, fmt.Errorf("parquet: %s: reading footer: %w", path, err)
	}

	meta, err := metadata.Open(header, trailer, footer)
	if err != nil {
		return nil, malformed(path, err.Error(), err)
	}
	return meta, nil
}

// NumRows returns the total number of rows across every row group.
func (f *FileReader) NumRows() int64 { return f.meta.NumRows }

// NumRowGroups returns the number of row groups in the file.
func (f *FileReader) NumRowGroups() int { return len(f.meta.RowGroups) }

// Schema returns the file's parsed message type.
func (f *FileReader) Schema() *schema.Schema { return f.schema }

// Lookup looks up a key in the file's free-form key/value metadata.
func (f *FileReader) Lookup(key string) (string, bool) {
	return metadata.KeyValue(f.meta, key)
}

// Path returns the path the reader was opened from.
func (f *FileReader) Path() string { return f.path }

// Close releases the underlying ByteSource and closes the reader's
// hardwood Context. A worker pool holds no goroutines of its own, so
// there is nothing else to tear down, whether the pool is owned or shared.
func (f *FileReader) Close() error {
	_ = f.workers.Close()
	return f.src.Close()
}

// columnChunkReaders opens page.Readers over the leaf columns identified
// by leafIndices (original, un-projected schema.Node.ColumnIndex values)
// within row group rowGroup. Every column chunk's compressed bytes are
// fetched in a single pio.MultiReadAt call, so independent byte ranges
// of the file are read in parallel instead of one ReadAt per column.
func (f *FileReader) columnChunkReaders(rowGroup int, leafIndices []int) ([]*page.Reader, error) {
	rg := &f.meta.RowGroups[rowGroup]

	ops := make([]pio.Op, len(leafIndices))
	mds := make([]*format.ColumnMetaData, len(leafIndices))
	for i, leafIndex := range leafIndices {
		if leafIndex < 0 || leafIndex >= len(rg.Columns) {
			return nil, fmt.Errorf("parquet: %s: row group %d has no column %d", f.path, rowGroup, leafIndex)
		}
		chunk := &rg.Columns[leafIndex]
		if chunk.MetaData == nil {
			return nil, malformed(f.path, fmt.Sprintf("row group %d column %d has no inline metadata (external chunks unsupported)", rowGroup, leafIndex), nil)
		}
		md := chunk.MetaData
		mds[i] = md

		base := md.DataPageOffset
		if md.DictionaryPageOffset != nil && *md.DictionaryPageOffset < base {
			base = *md.DictionaryPageOffset
		}
		ops[i] = pio.Op{Data: make([]byte, md.TotalCompressedSize), Off: base}
	}

	pio.MultiReadAt(f.src, ops)

	readers := make([]*page.Reader, len(leafIndices))
	for i, leafIndex := range leafIndices {
		op := &ops[i]
		if op.Err != nil {
			return nil, fmt.Errorf("parquet: %s: reading column chunk: row group %d column %d: %w", f.path, rowGroup, leafIndex, op.Err)
		}
		md := mds[i]
		debug.Format("%s: row group %d column %d: read %d bytes at offset %d, codec %s", f.path, rowGroup, leafIndex, len(op.Data), op.Off, md.Codec)

		codec, err := f.registry.Lookup(md.Codec)
		if err != nil {
			return nil, unsupported(fmt.Sprintf("compression codec %s", md.Codec), err)
		}

		leaf := f.schema.Leaves[leafIndex]
		readers[i] = page.NewReader(op.Data, leaf.Type, leaf.TypeLength, leaf.MaxDefinitionLevel, leaf.MaxRepetitionLevel, codec, md.NumValues)
	}
	return readers, nil
}

// columnIterator builds a column.Iterator over one leaf column of one
// row group.
func (f *FileReader) columnIterator(rowGroup, leafIndex int) (*column.Iterator, error) {
	iters, err := f.columnIterators(rowGroup, []int{leafIndex})
	if err != nil {
		return nil, err
	}
	return iters[0], nil
}

// columnIterators builds column.Iterators over several leaf columns of
// one row group, fetching their backing bytes with a single batched
// read (see columnChunkReaders) instead of one read per leaf.
func (f *FileReader) columnIterators(rowGroup int, leafIndices []int) ([]*column.Iterator, error) {
	readers, err := f.columnChunkReaders(rowGroup, leafIndices)
	if err != nil {
		return nil, err
	}
	iters := make([]*column.Iterator, len(leafIndices))
	for i, leafIndex := range leafIndices {
		leaf := f.schema.Leaves[leafIndex]
		iters[i] = column.NewIterator(readers[i], leaf.Type, leaf.TypeLength, leaf.MaxDefinitionLevel, leaf.MaxRepetitionLevel)
	}
	return iters, nil
}
