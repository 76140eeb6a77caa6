// Package compress provides the generic API implemented by the parquet
// decompression codecs in its subpackages, plus a registry mapping the wire
// format.CompressionCodec values onto those codecs.
//
// https://github.com/apache/parquet-format/blob/master/Compression.md
package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/hardwoodfs/parquet/format"
)

// Codec is implemented by each compression codec subpackage. Codec values
// must be safe to use concurrently from multiple goroutines; the pooling in
// Decompressor is what makes that true for the underlying Reader values,
// which are typically not themselves goroutine-safe.
type Codec interface {
	// String returns a human-readable name for the codec.
	String() string

	// CompressionCodec returns the wire code of the compression codec.
	CompressionCodec() format.CompressionCodec

	// Decode writes the uncompressed version of src to dst and returns it,
	// reallocating dst if its capacity is too small to hold the result.
	Decode(dst, src []byte) ([]byte, error)
}

// Reader is implemented by the decompressing io.Reader each codec
// subpackage constructs. Reset allows a single Reader to be pooled and
// reused across many decompression calls instead of allocating one per
// page.
type Reader interface {
	io.ReadCloser
	Reset(io.Reader) error
}

// Decompressor adapts a single pool of Reader values, created on demand by
// the newReader function passed to Decode, into the Codec.Decode method
// codec subpackages embed.
type Decompressor struct {
	readers sync.Pool
}

func (d *Decompressor) Decode(dst, src []byte, newReader func(io.Reader) (Reader, error)) ([]byte, error) {
	input := bytes.NewReader(src)

	r, _ := d.readers.Get().(Reader)
	if r != nil {
		if err := r.Reset(input); err != nil {
			return dst, err
		}
	} else {
		var err error
		if r, err = newReader(input); err != nil {
			return dst, err
		}
	}

	defer func() {
		if err := r.Reset(nil); err == nil {
			d.readers.Put(r)
		}
	}()

	output := bytes.NewBuffer(dst[:0])
	_, err := output.ReadFrom(r)
	return output.Bytes(), err
}

// ErrUnsupportedCodec is wrapped into the error Registry.Lookup returns for
// a compression codec it has no decoder registered for.
var ErrUnsupportedCodec = fmt.Errorf("unsupported compression codec")

// Registry dispatches to a Codec by its wire format.CompressionCodec. LZO
// has no pure Go decoder among the pack's dependencies and is intentionally
// left unregistered; Lookup reports it through ErrUnsupportedCodec rather
// than panicking.
type Registry struct {
	codecs map[format.CompressionCodec]Codec
}

// NewRegistry constructs a Registry from a set of codecs, indexed by the
// value each reports from CompressionCodec().
func NewRegistry(codecs ...Codec) *Registry {
	reg := &Registry{codecs: make(map[format.CompressionCodec]Codec, len(codecs))}
	for _, c := range codecs {
		reg.codecs[c.CompressionCodec()] = c
	}
	return reg
}

// Lookup returns the Codec registered for the given wire compression code.
func (r *Registry) Lookup(code format.CompressionCodec) (Codec, error) {
	if code == format.Uncompressed {
		return uncompressedCodec{}, nil
	}
	c, ok := r.codecs[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCodec, code)
	}
	return c, nil
}

type uncompressedCodec struct{}

func (uncompressedCodec) String() string                           { return "UNCOMPRESSED" }
func (uncompressedCodec) CompressionCodec() format.CompressionCodec { return format.Uncompressed }
func (uncompressedCodec) Decode(dst, src []byte) ([]byte, error)    { return append(dst[:0], src...), nil }
