// Package thrift implements just enough of the Thrift Compact Protocol to
// decode Parquet's footer and page headers: a forward-only cursor over a
// byte slice exposing the handful of primitives the format needs, plus a
// generic skip for fields the caller doesn't recognize.
//
// https://github.com/apache/thrift/blob/master/doc/specs/thrift-compact-protocol.md
package thrift

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Compact protocol type tags, as they appear in the low nibble of a field
// header byte (or the low nibble of a list/set header byte).
const (
	TypeStop   = 0x0
	TypeTrue   = 0x1
	TypeFalse  = 0x2
	TypeByte   = 0x3
	TypeI16    = 0x4
	TypeI32    = 0x5
	TypeI64    = 0x6
	TypeDouble = 0x7
	TypeBinary = 0x8
	TypeList   = 0x9
	TypeSet    = 0xA
	TypeMap    = 0xB
	TypeStruct = 0xC
)

// Cursor reads Thrift Compact Protocol values out of an in-memory byte
// slice. It carries no goroutine-safety guarantees: callers needing
// concurrent decoding should construct one Cursor per goroutine over the
// same (read-only) backing slice.
type Cursor struct {
	data []byte
	pos  int
	// lastFieldID is the delta-encoding base for field ids within the
	// struct currently being read. Saved and restored by the caller around
	// nested ReadFieldHeader loops (see Push/Pop).
	lastFieldID int16
}

// NewCursor constructs a Cursor reading from data. No copy is made; data
// must remain valid and unmodified for the Cursor's lifetime.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Len returns the number of bytes not yet consumed.
func (c *Cursor) Len() int { return len(c.data) - c.pos }

// Offset returns the cursor's position in the original byte slice, useful
// for annotating errors with a byte offset.
func (c *Cursor) Offset() int { return c.pos }

// Push saves the delta-encoding state for entering a nested struct and
// resets it to zero, as the compact protocol requires: field ids are
// delta-encoded relative to the last field id read within the *current*
// struct, and each nested struct starts its own delta chain.
func (c *Cursor) Push() (saved int16) {
	saved = c.lastFieldID
	c.lastFieldID = 0
	return saved
}

// Pop restores the delta-encoding state saved by a matching Push, once the
// nested struct has been fully consumed (through a STOP field).
func (c *Cursor) Pop(saved int16) {
	c.lastFieldID = saved
}

func (c *Cursor) errf(format string, args ...interface{}) error {
	return fmt.Errorf("thrift: at offset %d: "+format, append([]interface{}{c.pos}, args...)...)
}

func (c *Cursor) readByte() (byte, error) {
	if c.pos >= len(c.data) {
		return 0, io.ErrUnexpectedEOF
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

func (c *Cursor) readBytes(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.data) {
		return nil, io.ErrUnexpectedEOF
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// readUvarint reads an unsigned LEB128 varint, erroring on overflow of a
// 64 bit value (an oversized varint indicates malformed input, not a
// legitimately large value).
func (c *Cursor) readUvarint() (uint64, error) {
	var x uint64
	var shift uint
	for i := 0; ; i++ {
		if i >= binary.MaxVarintLen64 {
			return 0, c.errf("varint is too long")
		}
		b, err := c.readByte()
		if err != nil {
			return 0, err
		}
		if b < 0x80 {
			return x | uint64(b)<<shift, nil
		}
		x |= uint64(b&0x7f) << shift
		shift += 7
	}
}

func (c *Cursor) readVarint() (int64, error) {
	u, err := c.readUvarint()
	if err != nil {
		return 0, err
	}
	// zigzag decode
	return int64(u>>1) ^ -int64(u&1), nil
}

// ReadBool reads a boolean encoded as a standalone byte value (used inside
// lists/sets of booleans; struct-field booleans are instead folded into
// the field header's type tag and must be read via the type tag directly).
func (c *Cursor) ReadBool() (bool, error) {
	b, err := c.readByte()
	if err != nil {
		return false, err
	}
	switch b {
	case TypeTrue:
		return true, nil
	case TypeFalse, 0:
		return false, nil
	default:
		return false, c.errf("invalid bool byte 0x%02x", b)
	}
}

// ReadByte reads a single raw (non-zigzag) byte value, used for struct
// fields whose wire type is TypeByte.
func (c *Cursor) ReadByte() (byte, error) {
	return c.readByte()
}

// ReadI32 reads a zigzag varint and truncates it to 32 bits.
func (c *Cursor) ReadI32() (int32, error) {
	v, err := c.readVarint()
	return int32(v), err
}

// ReadI64 reads a zigzag varint.
func (c *Cursor) ReadI64() (int64, error) {
	return c.readVarint()
}

// ReadDouble reads a little-endian IEEE-754 double.
func (c *Cursor) ReadDouble() (float64, error) {
	b, err := c.readBytes(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

// ReadBinary reads a length-prefixed byte string. The returned slice
// aliases the cursor's backing array; callers that need to retain it past
// the lifetime of the source buffer must copy it.
func (c *Cursor) ReadBinary() ([]byte, error) {
	n, err := c.readUvarint()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	if n > math.MaxInt32 {
		return nil, c.errf("binary length %d is unreasonably large", n)
	}
	return c.readBytes(int(n))
}

// ReadString is ReadBinary with the result interpreted as UTF-8 text; it
// copies out of the cursor's buffer since strings escape as independent
// values.
func (c *Cursor) ReadString() (string, error) {
	b, err := c.ReadBinary()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// FieldHeader is the result of ReadFieldHeader: a field id and its wire
// type tag, or Stop == true once the enclosing struct has no more fields.
type FieldHeader struct {
	ID   int16
	Type byte
	Stop bool
}

// ReadFieldHeader reads one field header of the struct currently being
// decoded, honoring the compact protocol's delta id encoding. Returns a
// FieldHeader with Stop set to true when the struct's terminating STOP
// marker is reached; callers should stop looping at that point without
// treating it as an error.
func (c *Cursor) ReadFieldHeader() (FieldHeader, error) {
	b, err := c.readByte()
	if err != nil {
		return FieldHeader{}, err
	}

	typ := b & 0x0f
	if typ == TypeStop {
		return FieldHeader{Stop: true}, nil
	}

	var id int16
	if delta := b >> 4; delta != 0 {
		id = c.lastFieldID + int16(delta)
	} else {
		v, err := c.ReadI32()
		if err != nil {
			return FieldHeader{}, err
		}
		id = int16(v)
	}

	c.lastFieldID = id
	return FieldHeader{ID: id, Type: typ}, nil
}

// ListHeader describes a list or set: the number of elements and their
// common wire type.
type ListHeader struct {
	Size int
	Type byte
}

// ReadListHeader reads a list or set header. Sizes up to 14 are packed
// into the header byte; size 15 is a sentinel meaning "read the real size
// as a separate varint", used for longer lists.
func (c *Cursor) ReadListHeader() (ListHeader, error) {
	b, err := c.readByte()
	if err != nil {
		return ListHeader{}, err
	}
	size := int(b >> 4)
	typ := b & 0x0f
	if size == 0x0f {
		n, err := c.readUvarint()
		if err != nil {
			return ListHeader{}, err
		}
		size = int(n)
	}
	return ListHeader{Size: size, Type: typ}, nil
}

// MapHeader describes a map: its entry count and the key/value wire
// types. An empty map (Size == 0) has no type byte on the wire at all —
// ReadMapHeader returns a zero-value KeyType/ValueType in that case, which
// is why this is a common source of off-by-one bugs in hand-written
// decoders that always expect two type nibbles.
type MapHeader struct {
	Size      int
	KeyType   byte
	ValueType byte
}

// ReadMapHeader reads a map header.
func (c *Cursor) ReadMapHeader() (MapHeader, error) {
	n, err := c.readUvarint()
	if err != nil {
		return MapHeader{}, err
	}
	if n == 0 {
		return MapHeader{}, nil
	}
	kv, err := c.readByte()
	if err != nil {
		return MapHeader{}, err
	}
	return MapHeader{
		Size:      int(n),
		KeyType:   kv >> 4,
		ValueType: kv & 0x0f,
	}, nil
}

// SkipField consumes one value of the given wire type without
// materializing it, recursing into nested structs, lists, sets and maps.
// Used to tolerate metadata fields the reader does not recognize (newer
// Thrift struct versions add fields; this is how Thrift forward
// compatibility is meant to work).
func (c *Cursor) SkipField(typ byte) error {
	switch typ {
	case TypeTrue, TypeFalse:
		return nil
	case TypeByte:
		_, err := c.readByte()
		return err
	case TypeI16, TypeI32, TypeI64:
		_, err := c.readVarint()
		return err
	case TypeDouble:
		_, err := c.readBytes(8)
		return err
	case TypeBinary:
		_, err := c.ReadBinary()
		return err
	case TypeList, TypeSet:
		h, err := c.ReadListHeader()
		if err != nil {
			return err
		}
		for i := 0; i < h.Size; i++ {
			if err := c.SkipField(h.Type); err != nil {
				return err
			}
		}
		return nil
	case TypeMap:
		h, err := c.ReadMapHeader()
		if err != nil {
			return err
		}
		for i := 0; i < h.Size; i++ {
			if err := c.SkipField(h.KeyType); err != nil {
				return err
			}
			if err := c.SkipField(h.ValueType); err != nil {
				return err
			}
		}
		return nil
	case TypeStruct:
		saved := c.Push()
		defer c.Pop(saved)
		for {
			f, err := c.ReadFieldHeader()
			if err != nil {
				return err
			}
			if f.Stop {
				return nil
			}
			if err := c.SkipField(f.Type); err != nil {
				return err
			}
		}
	default:
		return c.errf("unknown thrift type tag %d", typ)
	}
}
