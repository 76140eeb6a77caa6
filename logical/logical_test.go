package logical

import (
	"math/big"
	"testing"

	"github.com/hardwoodfs/parquet/format"
)

func TestDate(t *testing.T) {
	d := Date(0)
	if d.Year() != 1970 || d.Month() != 1 || d.Day() != 1 {
		t.Fatalf("unexpected date: %v", d)
	}
}

func TestTimestampMillis(t *testing.T) {
	ts := Timestamp(1000, format.Millis)
	if ts.Unix() != 1 {
		t.Fatalf("unexpected timestamp: %v", ts)
	}
}

func TestDecimalFromInt64(t *testing.T) {
	r := Decimal(DecimalFromInt64(12345), 2)
	f, _ := r.Float64()
	if f != 123.45 {
		t.Fatalf("unexpected decimal value: %v", f)
	}
}

func TestDecimalFromBytesNegative(t *testing.T) {
	// -1 as a single two's-complement byte is 0xFF.
	v := DecimalFromBytes([]byte{0xFF})
	if v.Cmp(big.NewInt(-1)) != 0 {
		t.Fatalf("expected -1, got %v", v)
	}
}

func TestUnsignedInt(t *testing.T) {
	u, err := UnsignedInt(-1, 8)
	if err != nil {
		t.Fatal(err)
	}
	if u != 255 {
		t.Fatalf("expected 255, got %d", u)
	}
}
