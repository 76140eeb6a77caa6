package parquet

import (
	"fmt"

	"github.com/pkg/errors"
)

// MalformedFormatError reports data that violates the Parquet file format
// itself: a magic mismatch, a footer length out of range, a Thrift decode
// failure, an impossible level value, or page header fields inconsistent
// with the body that follows them.
type MalformedFormatError struct {
	Path   string
	Reason string
	cause  error
}

func (e *MalformedFormatError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parquet: %s: malformed file: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("parquet: malformed file: %s", e.Reason)
}

func (e *MalformedFormatError) Unwrap() error { return e.cause }

func malformed(path, reason string, cause error) error {
	return errors.WithStack(&MalformedFormatError{Path: path, Reason: reason, cause: cause})
}

// UnsupportedFeatureError reports an encoding, compression codec, or
// logical-type combination this module recognizes but does not implement,
// distinct from a genuinely malformed file.
type UnsupportedFeatureError struct {
	Feature string
	cause   error
}

func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("parquet: unsupported feature: %s", e.Feature)
}

func (e *UnsupportedFeatureError) Unwrap() error { return e.cause }

func unsupported(feature string, cause error) error {
	return errors.WithStack(&UnsupportedFeatureError{Feature: feature, cause: cause})
}

// ProjectionError reports a problem with a requested column projection: an
// unknown field name, or a type mismatch on a typed row accessor.
type ProjectionError struct {
	Field  string
	Reason string
}

func (e *ProjectionError) Error() string {
	return fmt.Sprintf("parquet: field %q: %s", e.Field, e.Reason)
}

func projectionError(field, reason string) error {
	return errors.WithStack(&ProjectionError{Field: field, Reason: reason})
}

// ErrClosed is returned by any operation issued against a reader that has
// already been closed.
var ErrClosed = errors.New("parquet: reader is closed")

// decodeContext annotates a lower-level decode error with the column path
// and page offset the page reader was working on when it failed, per the
// "every error includes ... row-group index, column path, and page
// offset" propagation rule.
type decodeContext struct {
	Path       string
	RowGroup   int
	ColumnPath string
	PageOffset int64
}

func (c decodeContext) wrap(err error) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, "%s: row group %d: column %q: page offset %d",
		c.Path, c.RowGroup, c.ColumnPath, c.PageOffset)
}
