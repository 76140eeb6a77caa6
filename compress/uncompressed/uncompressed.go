// Package uncompressed implements the UNCOMPRESSED parquet codec, which is
// just an identity pass-through kept here so it has the same Codec shape as
// every other compression subpackage.
package uncompressed

import (
	"io"

	"github.com/hardwoodfs/parquet/compress"
	"github.com/hardwoodfs/parquet/format"
)

type Codec struct{}

func (c *Codec) String() string { return "UNCOMPRESSED" }

func (c *Codec) CompressionCodec() format.CompressionCodec { return format.Uncompressed }

func (c *Codec) Decode(dst, src []byte) ([]byte, error) {
	return append(dst[:0], src...), nil
}

func (c *Codec) NewReader(r io.Reader) (compress.Reader, error) {
	return &reader{r}, nil
}

type reader struct{ io.Reader }

func (r *reader) Close() error             { return nil }
func (r *reader) Reset(rr io.Reader) error { r.Reader = rr; return nil }
