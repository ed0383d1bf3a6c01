package ffi

import (
	"runtime"
	"unicode/utf16"
	"unsafe"
)

// WordSize is the size of a pointer on this platform.
const WordSize = unsafe.Sizeof(uintptr(0))

// BaseWords is the number of words cef_base_ref_counted_t occupies: the
// struct size followed by add_ref, release, has_one_ref and
// has_at_least_one_ref.
const BaseWords = 5

// Indices of the cef_base_ref_counted_t slots inside every table.
const (
	SlotSize = iota
	SlotAddRef
	SlotRelease
	SlotHasOneRef
	SlotHasAtLeastOneRef
)

// Word reads the pointer-sized value stored index words past addr.
func Word(addr uintptr, index int) uintptr {
	return *(*uintptr)(unsafe.Pointer(addr + uintptr(index)*WordSize))
}

// SetWord writes v index words past addr.
func SetWord(addr uintptr, index int, v uintptr) {
	*(*uintptr)(unsafe.Pointer(addr + uintptr(index)*WordSize)) = v
}

// Int32 reads a C int at addr.
func Int32(addr uintptr) int32 {
	return *(*int32)(unsafe.Pointer(addr))
}

// CString converts a C NUL-terminated string referenced by the given pointer
// into a Go string. The memory is owned by the engine; the result is a copy.
func CString(c uintptr) string {
	ptr := unsafe.Pointer(c)
	if ptr == nil {
		return ""
	}

	var n uintptr
	for *(*byte)(unsafe.Add(ptr, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(ptr), n))
}

// StringAt decodes the cef_string_utf16_t stored at addr.
func StringAt(addr uintptr) string {
	if addr == 0 {
		return ""
	}
	str, n := Word(addr, 0), Word(addr, 1)
	if str == 0 || n == 0 {
		return ""
	}
	units := unsafe.Slice((*uint16)(unsafe.Pointer(str)), n)
	return string(utf16.Decode(units))
}

// Table is host memory laid out as an engine capability table: a
// cef_base_ref_counted_t header followed by method slots. It is pinned for
// its whole life so the engine may keep its address.
type Table struct {
	words  []uintptr
	pinner runtime.Pinner
}

// NewTable allocates a pinned table with room for words entries in total,
// header included. The size field is filled in.
func NewTable(words int) *Table {
	if words < BaseWords {
		words = BaseWords
	}
	t := &Table{words: make([]uintptr, words)}
	t.words[SlotSize] = uintptr(words) * WordSize
	t.pinner.Pin(&t.words[0])
	return t
}

// Addr is the address handed to the engine.
func (t *Table) Addr() uintptr {
	return uintptr(unsafe.Pointer(&t.words[0]))
}

// Set stores fn at word index.
func (t *Table) Set(index int, fn uintptr) {
	t.words[index] = fn
}

// Get returns the word at index.
func (t *Table) Get(index int) uintptr {
	return t.words[index]
}

// Len is the number of words in the table.
func (t *Table) Len() int {
	return len(t.words)
}

// Free unpins the table. The engine must not hold its address anymore.
func (t *Table) Free() {
	t.pinner.Unpin()
}

// Arena holds memory that has to stay put for the duration of one engine
// call: strings, argument structs and arrays. Free it after the call.
type Arena struct {
	pinner runtime.Pinner
	keep   []any
}

// Bytes copies b into pinned memory and returns its address, 0 for empty b.
func (a *Arena) Bytes(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	buf := make([]byte, len(b))
	copy(buf, b)
	a.pin(&buf[0], buf)
	return uintptr(unsafe.Pointer(&buf[0]))
}

// Buffer allocates n zeroed bytes the engine may write into. The slice
// shares the memory at the returned address.
func (a *Arena) Buffer(n int) (uintptr, []byte) {
	if n <= 0 {
		return 0, nil
	}
	buf := make([]byte, n)
	a.pin(&buf[0], buf)
	return uintptr(unsafe.Pointer(&buf[0])), buf
}

// CString stores s NUL terminated.
func (a *Arena) CString(s string) uintptr {
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	a.pin(&buf[0], buf)
	return uintptr(unsafe.Pointer(&buf[0]))
}

// Words stores an array of words, e.g. an argv array.
func (a *Arena) Words(words ...uintptr) uintptr {
	if len(words) == 0 {
		return 0
	}
	buf := make([]uintptr, len(words))
	copy(buf, words)
	a.pin(&buf[0], buf)
	return uintptr(unsafe.Pointer(&buf[0]))
}

// UTF16 encodes s as NUL-terminated UTF-16 and returns the address and the
// length in code units, without the terminator.
func (a *Arena) UTF16(s string) (uintptr, int) {
	units := utf16.Encode([]rune(s))
	buf := make([]uint16, len(units)+1)
	copy(buf, units)
	a.pin(&buf[0], buf)
	return uintptr(unsafe.Pointer(&buf[0])), len(units)
}

// String stores s as a cef_string_utf16_t and returns the struct address.
// The struct has no destructor; the engine copies what it keeps.
func (a *Arena) String(s string) uintptr {
	str, n := a.UTF16(s)
	return a.Words(str, uintptr(n), 0)
}

// Struct stores the bytes of a laid out C struct.
func (a *Arena) Struct(l *Layout) uintptr {
	return a.Bytes(l.Bytes())
}

// Free unpins everything the arena holds.
func (a *Arena) Free() {
	a.pinner.Unpin()
	a.keep = nil
}

func (a *Arena) pin(first any, backing any) {
	a.pinner.Pin(first)
	a.keep = append(a.keep, backing)
}
