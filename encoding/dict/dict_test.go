package dict

import "testing"

func TestDecodeIndicesAndGather(t *testing.T) {
	// bit-width 2, RLE run of 4 values all index 1: header (4<<1)|0=8, value byte 1
	src := []byte{2, 8, 1}
	indices, err := DecodeIndices(src, 4)
	if err != nil {
		t.Fatal(err)
	}
	for _, idx := range indices {
		if idx != 1 {
			t.Fatalf("expected index 1, got %d", idx)
		}
	}

	dictionary := []string{"a", "b", "c"}
	values, err := Gather(dictionary, indices)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range values {
		if v != "b" {
			t.Fatalf("expected gathered value %q, got %q", "b", v)
		}
	}
}

func TestGatherOutOfRange(t *testing.T) {
	_, err := Gather([]int{1, 2}, []int32{5})
	if err == nil {
		t.Fatal("expected an out-of-range error")
	}
}
