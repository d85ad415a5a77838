package blend

import "encoding/binary"

// Endianness selects the byte order used to decode multi-byte integers,
// taken from the container header (§4.3).
type Endianness int

const (
	LittleEndian Endianness = iota
	BigEndian
)

func (e Endianness) order() binary.ByteOrder {
	if e == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Cursor is a bounded reader over a byte slice. It never reads past the
// end of the slice; every read either succeeds in full or returns a
// position-annotated error, never a partial read.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor wraps buf for bounded, position-tracked reading starting at
// offset 0.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos returns the current byte offset into the wrapped buffer.
func (c *Cursor) Pos() int { return c.pos }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// Seek repositions the cursor to an absolute offset within the buffer.
func (c *Cursor) Seek(pos int) { c.pos = pos }

// ReadExact returns the next n bytes and advances past them.
func (c *Cursor) ReadExact(n int) ([]byte, error) {
	if n < 0 || c.Remaining() < n {
		return nil, eod(KindBlock, "cursor.read_exact", int64(c.pos), n, c.Remaining())
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// ReadU16 reads an unsigned 16-bit integer in the given byte order.
func (c *Cursor) ReadU16(e Endianness) (uint16, error) {
	b, err := c.ReadExact(2)
	if err != nil {
		return 0, err
	}
	return e.order().Uint16(b), nil
}

// ReadU32 reads an unsigned 32-bit integer in the given byte order.
func (c *Cursor) ReadU32(e Endianness) (uint32, error) {
	b, err := c.ReadExact(4)
	if err != nil {
		return 0, err
	}
	return e.order().Uint32(b), nil
}

// ReadU64 reads an unsigned 64-bit integer in the given byte order.
func (c *Cursor) ReadU64(e Endianness) (uint64, error) {
	b, err := c.ReadExact(8)
	if err != nil {
		return 0, err
	}
	return e.order().Uint64(b), nil
}

// ReadI32 reads a signed 32-bit integer in the given byte order.
func (c *Cursor) ReadI32(e Endianness) (int32, error) {
	v, err := c.ReadU32(e)
	return int32(v), err
}

// ReadI64 reads a signed 64-bit integer in the given byte order.
func (c *Cursor) ReadI64(e Endianness) (int64, error) {
	v, err := c.ReadU64(e)
	return int64(v), err
}

// ReadPtr reads a pointer-sized value and widens it to 64 bits. Only
// 4-byte and 8-byte pointers are supported, matching every known .blend
// generation.
func (c *Cursor) ReadPtr(size int, e Endianness) (uint64, error) {
	switch size {
	case 4:
		v, err := c.ReadU32(e)
		if err != nil {
			return 0, err
		}
		return uint64(v), nil
	case 8:
		return c.ReadU64(e)
	default:
		return 0, errf(KindHeader, "cursor.read_ptr", int64(c.pos), "unsupported pointer size %d", size)
	}
}

// ReadCStringBytes reads up to (not including) the next NUL byte and
// consumes the NUL terminator itself.
func (c *Cursor) ReadCStringBytes() ([]byte, error) {
	for i := c.pos; i < len(c.buf); i++ {
		if c.buf[i] == 0 {
			s := c.buf[c.pos:i]
			c.pos = i + 1
			return s, nil
		}
	}
	return nil, eod(KindBlock, "cursor.read_cstring", int64(c.pos), 1, 0)
}

// Align4 advances the cursor to the next 4-byte aligned offset, if it
// is not already aligned.
func (c *Cursor) Align4() error {
	rem := c.pos % 4
	if rem == 0 {
		return nil
	}
	pad := 4 - rem
	if c.Remaining() < pad {
		return eod(KindBlock, "cursor.align4", int64(c.pos), pad, c.Remaining())
	}
	c.pos += pad
	return nil
}
