// Package metadata reads a Parquet file's footer: the magic bytes, the
// little-endian footer length, and the Thrift-encoded FileMetaData they
// bracket.
package metadata

import (
	"fmt"

	"github.com/hardwoodfs/parquet/format"
	"github.com/hardwoodfs/parquet/internal/thrift"
)

// Magic is the 4-byte marker every Parquet file starts and ends with.
const Magic = "PAR1"

const footerLengthSize = 4

// MinFileSize is the smallest a well-formed Parquet file can be: two
// copies of the magic plus a 4-byte footer length plus (in principle) a
// zero-length footer.
const MinFileSize = int64(len(Magic)*2 + footerLengthSize)

// Open validates a file's header/trailer magic and decodes its footer
// into a FileMetaData. header must be the first 4 bytes of the file;
// trailer must be the last 8 bytes (the 4-byte footer length followed by
// the trailing magic); footer must be the footerLength bytes immediately
// preceding trailer.
func Open(header, trailer, footer []byte) (*format.FileMetaData, error) {
	if len(header) != len(Magic) || string(header) != Magic {
		return nil, fmt.Errorf("metadata: invalid leading magic %q", header)
	}
	if len(trailer) != footerLengthSize+len(Magic) {
		return nil, fmt.Errorf("metadata: trailer must be %d bytes, got %d", footerLengthSize+len(Magic), len(trailer))
	}
	trailingMagic := trailer[footerLengthSize:]
	if string(trailingMagic) != Magic {
		return nil, fmt.Errorf("metadata: invalid trailing magic %q", trailingMagic)
	}

	length := FooterLength(trailer)
	if length < 0 || int(length) != len(footer) {
		return nil, fmt.Errorf("metadata: footer length %d does not match provided footer of %d bytes", length, len(footer))
	}

	cursor := thrift.NewCursor(footer)
	m, err := format.ReadFileMetaData(cursor)
	if err != nil {
		return nil, fmt.Errorf("metadata: decoding footer: %w", err)
	}
	return m, nil
}

// FooterLength reads the little-endian footer length from the first 4
// bytes of trailer (the 8 bytes immediately preceding end of file).
func FooterLength(trailer []byte) int32 {
	return int32(trailer[0]) | int32(trailer[1])<<8 | int32(trailer[2])<<16 | int32(trailer[3])<<24
}

// KeyValue looks up a key in a FileMetaData's free-form metadata map.
func KeyValue(m *format.FileMetaData, key string) (string, bool) {
	for _, kv := range m.KeyValueMetadata {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}
