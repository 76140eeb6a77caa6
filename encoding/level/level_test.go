package level

import "testing"

func TestDecodeRLERun(t *testing.T) {
	// header: count=5 run, even -> (5<<1)|0 = 10; bitWidth=3 -> 1 byte value = 2
	data := []byte{10, 2}
	d := NewDecoder(data, 3)
	out := make([]int32, 5)
	n, err := d.Decode(out)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != 5 {
		t.Fatalf("expected 5 values, got %d", n)
	}
	for i, v := range out {
		if v != 2 {
			t.Fatalf("out[%d] = %d, want 2", i, v)
		}
	}
}

func TestDecodeRLERunAcrossCalls(t *testing.T) {
	data := []byte{10, 2} // 5 values of 2
	d := NewDecoder(data, 3)

	first := make([]int32, 2)
	n, err := d.Decode(first)
	if err != nil || n != 2 {
		t.Fatalf("first Decode: n=%d err=%v", n, err)
	}
	second := make([]int32, 3)
	n, err = d.Decode(second)
	if err != nil || n != 3 {
		t.Fatalf("second Decode: n=%d err=%v", n, err)
	}
	for _, v := range append(first, second...) {
		if v != 2 {
			t.Fatalf("unexpected value %d", v)
		}
	}
}

func TestDecodeBitPackedGroup(t *testing.T) {
	// bitWidth=3, one group of 8 values: 0,1,2,3,4,5,6,7
	// header: groupCount=1, odd -> (1<<1)|1 = 3
	values := []int32{0, 1, 2, 3, 4, 5, 6, 7}
	var bitBuf uint64
	var bitCount uint
	buf := make([]byte, 0, 3)
	for _, v := range values {
		bitBuf |= uint64(v) << bitCount
		bitCount += 3
		for bitCount >= 8 {
			buf = append(buf, byte(bitBuf))
			bitBuf >>= 8
			bitCount -= 8
		}
	}
	if bitCount > 0 {
		buf = append(buf, byte(bitBuf))
	}

	data := append([]byte{3}, buf...)
	d := NewDecoder(data, 3)
	out := make([]int32, 8)
	n, err := d.Decode(out)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != 8 {
		t.Fatalf("expected 8 values, got %d", n)
	}
	for i, v := range out {
		if v != values[i] {
			t.Fatalf("out[%d] = %d, want %d", i, v, values[i])
		}
	}
}

func TestDecodeZeroBitWidth(t *testing.T) {
	d := NewDecoder(nil, 0)
	out := make([]int32, 4)
	n, err := d.Decode(out)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != 4 {
		t.Fatalf("expected 4 values, got %d", n)
	}
	for _, v := range out {
		if v != 0 {
			t.Fatalf("expected all zero levels, got %d", v)
		}
	}
}

func TestDecodeEOFOnEmptyStream(t *testing.T) {
	d := NewDecoder(nil, 3)
	out := make([]int32, 2)
	_, err := d.Decode(out)
	if err == nil {
		t.Fatalf("expected an error decoding from an empty stream")
	}
}
