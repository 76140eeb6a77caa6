// Package brotli implements the BROTLI parquet decompression codec.
package brotli

import (
	"io"

	"github.com/andybalholm/brotli"
	"github.com/hardwoodfs/parquet/compress"
	"github.com/hardwoodfs/parquet/format"
)

type Codec struct {
	compress.Decompressor
}

func (c *Codec) String() string { return "BROTLI" }

func (c *Codec) CompressionCodec() format.CompressionCodec { return format.Brotli }

func (c *Codec) Decode(dst, src []byte) ([]byte, error) {
	return c.Decompressor.Decode(dst, src, func(r io.Reader) (compress.Reader, error) {
		return c.NewReader(r)
	})
}

func (c *Codec) NewReader(r io.Reader) (compress.Reader, error) {
	return reader{brotli.NewReader(r)}, nil
}

type reader struct{ *brotli.Reader }

func (r reader) Close() error { return nil }
