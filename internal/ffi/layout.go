package ffi

import (
	"encoding/binary"

	"github.com/gocef/cef/types"
)

// Layout builds a C struct field by field with natural alignment.
type Layout struct {
	buf      []byte
	maxAlign int
	sizeAt   int
}

// NewLayout starts a struct. When sized is set the struct opens with a
// size_t size field that Bytes fills in, as most engine structs do.
func NewLayout(sized bool) *Layout {
	l := &Layout{maxAlign: 1, sizeAt: -1}
	if sized {
		l.sizeAt = 0
		l.Word(0)
	}
	return l
}

func (l *Layout) align(n int) {
	if n > l.maxAlign {
		l.maxAlign = n
	}
	for len(l.buf)%n != 0 {
		l.buf = append(l.buf, 0)
	}
}

// Int32 appends a C int.
func (l *Layout) Int32(v int32) *Layout {
	l.align(4)
	l.buf = binary.NativeEndian.AppendUint32(l.buf, uint32(v))
	return l
}

// Uint32 appends a uint32_t.
func (l *Layout) Uint32(v uint32) *Layout {
	l.align(4)
	l.buf = binary.NativeEndian.AppendUint32(l.buf, v)
	return l
}

// Bool appends a C int holding 0 or 1.
func (l *Layout) Bool(v bool) *Layout {
	if v {
		return l.Int32(1)
	}
	return l.Int32(0)
}

// Word appends a pointer or size_t.
func (l *Layout) Word(v uintptr) *Layout {
	l.align(int(WordSize))
	if WordSize == 8 {
		l.buf = binary.NativeEndian.AppendUint64(l.buf, uint64(v))
	} else {
		l.buf = binary.NativeEndian.AppendUint32(l.buf, uint32(v))
	}
	return l
}

// String appends an inline cef_string_utf16_t whose characters live in a.
// The empty string is stored as the null string.
func (l *Layout) String(a *Arena, s string) *Layout {
	if s == "" {
		return l.Word(0).Word(0).Word(0)
	}
	str, n := a.UTF16(s)
	return l.Word(str).Word(uintptr(n)).Word(0)
}

// Rect appends an inline cef_rect_t.
func (l *Layout) Rect(r types.Rect) *Layout {
	return l.Int32(r.X).Int32(r.Y).Int32(r.Width).Int32(r.Height)
}

// Insets appends an inline cef_insets_t.
func (l *Layout) Insets(i types.Insets) *Layout {
	return l.Int32(i.Top).Int32(i.Left).Int32(i.Bottom).Int32(i.Right)
}

// Len is the current unpadded size.
func (l *Layout) Len() int {
	return len(l.buf)
}

// Bytes pads the struct to its alignment, fills the size field and returns
// the encoded struct.
func (l *Layout) Bytes() []byte {
	l.align(l.maxAlign)
	if l.sizeAt >= 0 {
		if WordSize == 8 {
			binary.NativeEndian.PutUint64(l.buf[l.sizeAt:], uint64(len(l.buf)))
		} else {
			binary.NativeEndian.PutUint32(l.buf[l.sizeAt:], uint32(len(l.buf)))
		}
	}
	return l.buf
}

// RectFromPair decodes a cef_rect_t returned by value in two registers.
func RectFromPair(r1, r2 uintptr) types.Rect {
	return types.Rect{
		X:      int32(uint32(r1)),
		Y:      int32(uint32(uint64(r1) >> 32)),
		Width:  int32(uint32(r2)),
		Height: int32(uint32(uint64(r2) >> 32)),
	}
}

// RectPair is the register pair a cef_rect_t returned by value occupies.
func RectPair(r types.Rect) (uintptr, uintptr) {
	return uintptr(uint64(uint32(r.X)) | uint64(uint32(r.Y))<<32),
		uintptr(uint64(uint32(r.Width)) | uint64(uint32(r.Height))<<32)
}

// RectAt reads the cef_rect_t stored at addr.
func RectAt(addr uintptr) types.Rect {
	if addr == 0 {
		return types.Rect{}
	}
	return types.Rect{
		X:      Int32(addr),
		Y:      Int32(addr + 4),
		Width:  Int32(addr + 8),
		Height: Int32(addr + 12),
	}
}

// SizeFromWord decodes a cef_size_t returned by value in one register.
func SizeFromWord(w uintptr) types.Size {
	return types.Size{Width: int32(uint32(w)), Height: int32(uint32(uint64(w) >> 32))}
}
