package thrift

import "testing"

func TestReadFieldHeaderDeltaEncoding(t *testing.T) {
	// field 1 (I32), then field 3 (I32) via a 2-delta nibble, then STOP.
	data := []byte{
		0x15, 0x02, // field id 1, type I32, value 1 (zigzag varint 0x02 -> 1)
		0x25, 0x04, // delta 2 -> field id 3, type I32, value 2
		0x00, // STOP
	}
	c := NewCursor(data)

	f, err := c.ReadFieldHeader()
	if err != nil || f.Stop || f.ID != 1 || f.Type != TypeI32 {
		t.Fatalf("unexpected first field header: %+v err=%v", f, err)
	}
	v, err := c.ReadI32()
	if err != nil || v != 1 {
		t.Fatalf("unexpected value: %d err=%v", v, err)
	}

	f, err = c.ReadFieldHeader()
	if err != nil || f.Stop || f.ID != 3 || f.Type != TypeI32 {
		t.Fatalf("unexpected second field header: %+v err=%v", f, err)
	}
	v, err = c.ReadI32()
	if err != nil || v != 2 {
		t.Fatalf("unexpected value: %d err=%v", v, err)
	}

	f, err = c.ReadFieldHeader()
	if err != nil || !f.Stop {
		t.Fatalf("expected STOP, got %+v err=%v", f, err)
	}
}

func TestSkipFieldEmptyMap(t *testing.T) {
	// An empty map is a single zero byte: no key/value type nibble follows.
	data := []byte{0x00}
	c := NewCursor(data)
	if err := c.SkipField(TypeMap); err != nil {
		t.Fatalf("SkipField(map): %v", err)
	}
	if c.pos != 1 {
		t.Fatalf("expected cursor to advance by exactly 1 byte, advanced by %d", c.pos)
	}
}

func TestSkipFieldMapOneEntry(t *testing.T) {
	// map<binary, struct{field1:i32=21}> with one entry {"ab": {21}}.
	data := []byte{
		0x01,                              // map size = 1 (uvarint)
		byte(TypeBinary)<<4 | TypeStruct,  // key type BINARY, value type STRUCT
		0x02, 'a', 'b',                    // key: binary length 2, "ab"
		0x15, 42,                          // struct field 1, I32, zigzag(21) = 42
		0x00,                              // struct STOP
	}
	c := NewCursor(data)
	if err := c.SkipField(TypeMap); err != nil {
		t.Fatalf("SkipField(map): %v", err)
	}
	// 1 (map size) + 1 (kv type byte) + (1+2) (key) + (2+1) (struct: field hdr+value, stop) = 8
	if c.pos != 8 {
		t.Fatalf("expected cursor to advance by exactly 8 bytes, advanced by %d", c.pos)
	}
}

func TestReadBinaryZeroLengthAtEndOfStream(t *testing.T) {
	// A zero-length binary value at the very end of the buffer must decode
	// to an empty (nil) slice, not an EOF error.
	data := []byte{0x00}
	c := NewCursor(data)
	b, err := c.ReadBinary()
	if err != nil {
		t.Fatalf("ReadBinary: %v", err)
	}
	if len(b) != 0 {
		t.Fatalf("expected empty slice, got %q", b)
	}
	if c.Len() != 0 {
		t.Fatalf("expected cursor fully consumed, %d bytes remain", c.Len())
	}
}

func TestReadListHeaderLongForm(t *testing.T) {
	// size 20 (> 14) requires the long form: nibble 0x0f then a varint size.
	data := []byte{0xF5, 20} // type I32 (0x5), size nibble 0xF, size varint 20
	c := NewCursor(data)
	h, err := c.ReadListHeader()
	if err != nil {
		t.Fatalf("ReadListHeader: %v", err)
	}
	if h.Size != 20 || h.Type != TypeI32 {
		t.Fatalf("unexpected header: %+v", h)
	}
}
