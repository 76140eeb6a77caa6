// Package logical converts decoded physical values into the semantic
// representation their schema's logical (or legacy converted) type
// annotation implies: a BYTE_ARRAY tagged STRING becomes a Go string, an
// INT32 tagged DATE becomes a time.Time at midnight UTC, and so on.
//
// Every function here is a pure, allocation-light conversion of a single
// already-decoded value; nothing in this package touches I/O or schema
// resolution. Per spec, INT96 is read as raw 12 bytes and never converted
// to a timestamp — there is deliberately no function here for it.
package logical

import (
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/hardwoodfs/parquet/format"
)

// String interprets a BYTE_ARRAY value as UTF-8 text.
func String(b []byte) string { return string(b) }

// UUID interprets a 16-byte FIXED_LEN_BYTE_ARRAY value as a UUID.
func UUID(b []byte) (uuid.UUID, error) {
	return uuid.FromBytes(b)
}

// Date interprets an INT32 value as the number of days since the Unix
// epoch, per the DATE logical type.
func Date(days int32) time.Time {
	return time.Unix(int64(days)*86400, 0).UTC()
}

// Time interprets an INT32 (millisecond) or INT64 (microsecond/nanosecond)
// value as a time-of-day duration since midnight, per the TIME logical
// type.
func Time(v int64, unit format.TimeUnit) time.Duration {
	switch unit {
	case format.Millis:
		return time.Duration(v) * time.Millisecond
	case format.Micros:
		return time.Duration(v) * time.Microsecond
	default:
		return time.Duration(v)
	}
}

// Timestamp interprets an INT64 value as an instant since the Unix epoch,
// per the TIMESTAMP logical type. isAdjustedToUTC only affects how a
// consumer should display the value (it is already an absolute instant
// either way); this module keeps the raw UTC interpretation and leaves
// timezone display decisions to the caller.
func Timestamp(v int64, unit format.TimeUnit) time.Time {
	switch unit {
	case format.Millis:
		return time.UnixMilli(v).UTC()
	case format.Micros:
		return time.UnixMicro(v).UTC()
	default:
		return time.Unix(0, v).UTC()
	}
}

// Decimal interprets an INT32, INT64, or BYTE_ARRAY/FIXED_LEN_BYTE_ARRAY
// (big-endian two's complement) value as a fixed-point decimal with the
// given scale, returning it as a big.Rat so callers can format or compute
// with it without losing precision.
func Decimal(unscaled *big.Int, scale int32) *big.Rat {
	denom := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(scale)), nil)
	return new(big.Rat).SetFrac(unscaled, denom)
}

// DecimalFromInt32 builds the unscaled big.Int for an INT32-stored decimal.
func DecimalFromInt32(v int32) *big.Int { return big.NewInt(int64(v)) }

// DecimalFromInt64 builds the unscaled big.Int for an INT64-stored decimal.
func DecimalFromInt64(v int64) *big.Int { return big.NewInt(v) }

// DecimalFromBytes builds the unscaled big.Int for a BYTE_ARRAY or
// FIXED_LEN_BYTE_ARRAY-stored decimal, which is encoded as a big-endian
// two's complement integer.
func DecimalFromBytes(b []byte) *big.Int {
	if len(b) == 0 {
		return new(big.Int)
	}
	v := new(big.Int).SetBytes(b)
	if b[0]&0x80 != 0 {
		// Negative: subtract 2^(8*len(b)) to undo the two's complement bias.
		bias := new(big.Int).Lsh(big.NewInt(1), uint(8*len(b)))
		v.Sub(v, bias)
	}
	return v
}

// Enum interprets a BYTE_ARRAY value as an enum member name.
func Enum(b []byte) string { return string(b) }

// JSON and BSON are passed through unchanged: the logical type only tells
// a consumer how to further parse the bytes, which is outside this
// module's scope.
func JSON(b []byte) []byte { return b }
func BSON(b []byte) []byte { return b }

// UnsignedInt reinterprets a decoded INT32/INT64 value's bit pattern as
// unsigned, per an INTEGER logical type with IsSigned == false.
func UnsignedInt(v int64, bitWidth int8) (uint64, error) {
	switch bitWidth {
	case 8:
		return uint64(uint8(v)), nil
	case 16:
		return uint64(uint16(v)), nil
	case 32:
		return uint64(uint32(v)), nil
	case 64:
		return uint64(v), nil
	default:
		return 0, fmt.Errorf("logical: unsupported unsigned integer bit width %d", bitWidth)
	}
}

