// Package debug provides opt-in tracing helpers used by the parquet
// reader's file.go (footer and column-chunk reads) to make failures
// easier to diagnose without paying for tracing on the hot path by default.
package debug

import (
	"fmt"
	"io"
	"os"
)

// Enabled reports whether PARQUET_DEBUG is set. Checked once at package
// load time since none of the call sites need to react to it changing.
var Enabled = os.Getenv("PARQUET_DEBUG") != ""

// Format writes a trace line to stderr when debugging is enabled.
func Format(format string, args ...interface{}) {
	if Enabled {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// Reader wraps r so that every call to Read is traced to stderr when
// debugging is enabled.
func Reader(r io.Reader, prefix string) io.Reader {
	if !Enabled {
		return r
	}
	return &ioReader{reader: r, prefix: prefix}
}

type ioReader struct {
	reader io.Reader
	prefix string
	offset int64
}

func (d *ioReader) Read(b []byte) (int, error) {
	n, err := d.reader.Read(b)
	fmt.Fprintf(os.Stderr, "%s: Read(%d) @%d => %d %v\n", d.prefix, len(b), d.offset, n, err)
	d.offset += int64(n)
	return n, err
}
