package utils

import (
	"testing"

	"github.com/pkg/errors"
)

func TestCursorReads(t *testing.T) {
	buf := []byte{
		0x34, 0x12,
		0x78, 0x56, 0x34, 0x12,
		0xff, 0xff, 0xff, 0xff,
		0x00, 0x00, 0x80, 0x3f,
	}
	c := NewCursor(buf)

	if v := c.U16(); v != 0x1234 {
		t.Errorf("U16() = 0x%x; expected 0x1234", v)
	}
	if v := c.U32(); v != 0x12345678 {
		t.Errorf("U32() = 0x%x; expected 0x12345678", v)
	}
	if v := c.I32(); v != -1 {
		t.Errorf("I32() = %d; expected -1", v)
	}
	if v := c.F32(); v != 1.0 {
		t.Errorf("F32() = %v; expected 1.0", v)
	}
	if err := c.Err(); err != nil {
		t.Errorf("Err() = %v; expected nil", err)
	}
	if c.Remaining() != 0 {
		t.Errorf("Remaining() = %d; expected 0", c.Remaining())
	}
}

func TestCursorOverrunLatches(t *testing.T) {
	c := NewCursor([]byte{0x01, 0x02})

	if v := c.U32(); v != 0 {
		t.Errorf("U32() past end = 0x%x; expected 0", v)
	}
	if !errors.Is(c.Err(), ErrCursorOverrun) {
		t.Errorf("Err() = %v; expected ErrCursorOverrun", c.Err())
	}

	// reads after the overrun stay zero even though bytes remain
	if v := c.U16(); v != 0 {
		t.Errorf("U16() after overrun = 0x%x; expected 0", v)
	}
	if b := c.Bytes(1); b != nil {
		t.Errorf("Bytes(1) after overrun = %v; expected nil", b)
	}
}

func TestCursorSeekSkip(t *testing.T) {
	buf := make([]byte, 8)
	buf[6] = 0xab

	c := NewCursor(buf).Seek(5)
	c.Skip(1)
	if v := c.Byte(); v != 0xab {
		t.Errorf("Byte() = 0x%x; expected 0xab", v)
	}

	if c2 := NewCursor(buf).Seek(9); !errors.Is(c2.Err(), ErrCursorOverrun) {
		t.Errorf("Seek(9) in 8 byte buffer: Err() = %v; expected ErrCursorOverrun", c2.Err())
	}

	c3 := NewCursor(buf)
	c3.Skip(9)
	if !errors.Is(c3.Err(), ErrCursorOverrun) {
		t.Errorf("Skip(9) in 8 byte buffer: Err() = %v; expected ErrCursorOverrun", c3.Err())
	}
}

func TestCursorVec4(t *testing.T) {
	buf := []byte{
		0x00, 0x00, 0x80, 0x3f, // 1.0
		0x00, 0x00, 0x00, 0x40, // 2.0
		0x00, 0x00, 0x40, 0x40, // 3.0
		0x00, 0x00, 0x80, 0x40, // 4.0
	}
	v := NewCursor(buf).Vec4()
	for i, expected := range []float32{1, 2, 3, 4} {
		if v[i] != expected {
			t.Errorf("Vec4()[%d] = %v; expected %v", i, v[i], expected)
		}
	}
}
