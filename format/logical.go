package format

import "fmt"

// LogicalTypeKind identifies which logical-type annotation a LogicalType
// value carries. Parquet encodes LogicalType as a Thrift union; Kind plays
// the role of the union's discriminant in this flattened Go representation.
type LogicalTypeKind int32

const (
	NoLogicalType LogicalTypeKind = iota
	StringType
	MapType
	ListType
	EnumType
	DecimalType
	DateType
	TimeType
	TimestampType
	IntegerType
	UnknownType
	JSONType
	BSONType
	UUIDType
)

func (k LogicalTypeKind) String() string {
	switch k {
	case StringType:
		return "STRING"
	case MapType:
		return "MAP"
	case ListType:
		return "LIST"
	case EnumType:
		return "ENUM"
	case DecimalType:
		return "DECIMAL"
	case DateType:
		return "DATE"
	case TimeType:
		return "TIME"
	case TimestampType:
		return "TIMESTAMP"
	case IntegerType:
		return "INTEGER"
	case JSONType:
		return "JSON"
	case BSONType:
		return "BSON"
	case UUIDType:
		return "UUID"
	case UnknownType:
		return "UNKNOWN"
	default:
		return "NONE"
	}
}

// TimeUnit is the granularity of a TIME or TIMESTAMP logical type.
type TimeUnit int32

const (
	Millis TimeUnit = iota
	Micros
	Nanos
)

func (u TimeUnit) String() string {
	switch u {
	case Millis:
		return "MILLIS"
	case Micros:
		return "MICROS"
	case Nanos:
		return "NANOS"
	default:
		return fmt.Sprintf("TIME_UNIT(%d)", int32(u))
	}
}

// LogicalType is a flattened view of Thrift's LogicalType union: Kind
// selects which of the remaining fields are meaningful. Unknown
// annotations are preserved as UnknownType with no further detail, rather
// than rejected outright, per spec: "unknown annotations are preserved
// but ignored during conversion".
type LogicalType struct {
	Kind LogicalTypeKind

	// DECIMAL
	Precision int32
	Scale     int32

	// TIME / TIMESTAMP
	Unit           TimeUnit
	IsAdjustedToUTC bool

	// INTEGER
	BitWidth int8
	IsSigned bool
}

func (lt *LogicalType) String() string {
	if lt == nil {
		return "NONE"
	}
	switch lt.Kind {
	case DecimalType:
		return fmt.Sprintf("DECIMAL(precision=%d, scale=%d)", lt.Precision, lt.Scale)
	case TimeType:
		return fmt.Sprintf("TIME(unit=%s, isAdjustedToUTC=%t)", lt.Unit, lt.IsAdjustedToUTC)
	case TimestampType:
		return fmt.Sprintf("TIMESTAMP(unit=%s, isAdjustedToUTC=%t)", lt.Unit, lt.IsAdjustedToUTC)
	case IntegerType:
		return fmt.Sprintf("INTEGER(bitWidth=%d, isSigned=%t)", lt.BitWidth, lt.IsSigned)
	default:
		return lt.Kind.String()
	}
}
