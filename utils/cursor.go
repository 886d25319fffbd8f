package utils

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

var ErrCursorOverrun = errors.New("read past end of buffer")

// Cursor is a little-endian reader over a byte slice. The first read that
// would run past the end latches an error and every read after it returns
// zero values, so decode code can issue a run of reads and check Err once.
type Cursor struct {
	buf []byte
	pos int
	err error
}

func NewCursor(b []byte) *Cursor {
	return &Cursor{buf: b}
}

func (c *Cursor) take(n int) []byte {
	if c.err != nil {
		return nil
	}
	if n < 0 || c.pos+n > len(c.buf) {
		c.err = errors.Wrapf(ErrCursorOverrun, "need %d bytes at 0x%x, %d left", n, c.pos, len(c.buf)-c.pos)
		return nil
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b
}

func (c *Cursor) Err() error {
	return c.err
}

func (c *Cursor) Pos() int {
	return c.pos
}

func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

func (c *Cursor) Skip(n int) {
	c.take(n)
}

func (c *Cursor) Seek(off int) *Cursor {
	if c.err == nil {
		if off < 0 || off > len(c.buf) {
			c.err = errors.Wrapf(ErrCursorOverrun, "seek to 0x%x in %d byte buffer", off, len(c.buf))
		} else {
			c.pos = off
		}
	}
	return c
}

// Bytes returns a view into the underlying buffer, nil after an overrun.
func (c *Cursor) Bytes(n int) []byte {
	return c.take(n)
}

func (c *Cursor) Byte() byte {
	if b := c.take(1); b != nil {
		return b[0]
	}
	return 0
}

func (c *Cursor) U16() uint16 {
	if b := c.take(2); b != nil {
		return binary.LittleEndian.Uint16(b)
	}
	return 0
}

func (c *Cursor) U32() uint32 {
	if b := c.take(4); b != nil {
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

func (c *Cursor) U64() uint64 {
	if b := c.take(8); b != nil {
		return binary.LittleEndian.Uint64(b)
	}
	return 0
}

func (c *Cursor) I16() int16 {
	return int16(c.U16())
}

func (c *Cursor) I32() int32 {
	return int32(c.U32())
}

func (c *Cursor) F32() float32 {
	return math.Float32frombits(c.U32())
}

func (c *Cursor) Vec4() (v mgl32.Vec4) {
	for i := range v {
		v[i] = c.F32()
	}
	return v
}
