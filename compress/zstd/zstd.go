// Package zstd implements the ZSTD parquet decompression codec.
package zstd

import (
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/hardwoodfs/parquet/compress"
	"github.com/hardwoodfs/parquet/format"
)

type Codec struct {
	compress.Decompressor
}

func (c *Codec) String() string { return "ZSTD" }

func (c *Codec) CompressionCodec() format.CompressionCodec { return format.Zstd }

func (c *Codec) Decode(dst, src []byte) ([]byte, error) {
	return c.Decompressor.Decode(dst, src, func(r io.Reader) (compress.Reader, error) {
		return c.NewReader(r)
	})
}

func (c *Codec) NewReader(r io.Reader) (compress.Reader, error) {
	z, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	return reader{z}, nil
}

type reader struct{ *zstd.Decoder }

func (r reader) Close() error { r.Decoder.Close(); return nil }
