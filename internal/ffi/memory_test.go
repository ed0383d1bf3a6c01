package ffi

import (
	"os"
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocef/cef/types"
)

func TestTableLayout(t *testing.T) {
	table := NewTable(BaseWords + 3)
	defer table.Free()

	require.Equal(t, BaseWords+3, table.Len())
	require.Equal(t, uintptr(BaseWords+3)*WordSize, Word(table.Addr(), SlotSize))

	table.Set(BaseWords+1, 0xdead)
	assert.Equal(t, uintptr(0xdead), Word(table.Addr(), BaseWords+1))
	SetWord(table.Addr(), BaseWords+2, 0xbeef)
	assert.Equal(t, uintptr(0xbeef), table.Get(BaseWords+2))

	// tables never shrink below the ref-count header
	small := NewTable(1)
	defer small.Free()
	assert.Equal(t, BaseWords, small.Len())
}

func TestArenaStrings(t *testing.T) {
	var a Arena
	defer a.Free()

	addr := a.String("héllo wörld 🌍")
	require.NotZero(t, addr)
	assert.Equal(t, "héllo wörld 🌍", StringAt(addr))
	// surrogate pair counts as two code units
	assert.Equal(t, uintptr(14), Word(addr, 1))

	assert.Equal(t, "", StringAt(a.String("")))
	assert.Equal(t, "", StringAt(0))

	c := a.CString("libcef")
	assert.Equal(t, "libcef", CString(c))
	assert.Equal(t, "", CString(0))
}

func TestArenaBytesAndWords(t *testing.T) {
	var a Arena
	defer a.Free()

	require.Zero(t, a.Bytes(nil))
	require.Zero(t, a.Words())

	addr := a.Bytes([]byte{1, 2, 3})
	got := unsafe.Slice((*byte)(unsafe.Pointer(addr)), 3)
	assert.Equal(t, []byte{1, 2, 3}, got)

	w := a.Words(7, 8, 9)
	assert.Equal(t, uintptr(9), Word(w, 2))
}

func TestLayoutAlignment(t *testing.T) {
	l := NewLayout(true).Int32(1).Word(2).Int32(3)
	bz := l.Bytes()
	// size_t, int, pad, pointer, int, pad
	require.Len(t, bz, int(4*WordSize))
	var a Arena
	defer a.Free()
	addr := a.Bytes(bz)
	assert.Equal(t, uintptr(len(bz)), Word(addr, 0))
	assert.Equal(t, int32(1), Int32(addr+WordSize))
	assert.Equal(t, uintptr(2), Word(addr, 2))
	assert.Equal(t, int32(3), Int32(addr+3*WordSize))
}

func TestLayoutUnsized(t *testing.T) {
	bz := NewLayout(false).Rect(types.Rect{X: 1, Y: 2, Width: 3, Height: 4}).Bytes()
	require.Len(t, bz, 16)
	var a Arena
	defer a.Free()
	addr := a.Bytes(bz)
	assert.Equal(t, int32(4), Int32(addr+12))
}

func TestEncodeSettingsStrings(t *testing.T) {
	var a Arena
	defer a.Free()

	s := types.NewSettings()
	s.RootCachePath = "/tmp/demo"
	addr := EncodeSettings(&a, s)
	// size_t size, int no_sandbox (+pad), then browser_subprocess_path
	assert.Equal(t, int32(1), Int32(addr+WordSize))
	assert.Equal(t, "", StringAt(addr+2*WordSize))
	require.NotZero(t, Word(addr, 0))
}

func TestEncodeMainArgs(t *testing.T) {
	if WordSize != 8 || !hasSignalHandlersField {
		t.Skip("argv layout is only checked on 64-bit unix")
	}
	var a Arena
	defer a.Free()
	addr := EncodeMainArgs(&a, []string{"demo", "--type=renderer"})
	assert.Equal(t, int32(2), Int32(addr))
	argv := Word(addr, 1)
	assert.Equal(t, "demo", CString(Word(argv, 0)))
	assert.Equal(t, "--type=renderer", CString(Word(argv, 1)))
	assert.Zero(t, Word(argv, 2))
}

func TestRectFromPair(t *testing.T) {
	r1 := uintptr(uint64(uint32(10)) | uint64(uint32(20))<<32)
	r2 := uintptr(uint64(uint32(800)) | uint64(uint32(600))<<32)
	assert.Equal(t, types.Rect{X: 10, Y: 20, Width: 800, Height: 600}, RectFromPair(r1, r2))

	neg := int32(-5)
	assert.Equal(t, neg, RectFromPair(uintptr(uint32(neg)), 0).X)

	r := types.Rect{X: -1, Y: 4, Width: 3, Height: 7}
	assert.Equal(t, r, RectFromPair(RectPair(r)))
}

func TestDiscover(t *testing.T) {
	require.Equal(t, "/explicit/libcef.so", Discover("/explicit/libcef.so"))

	dir := t.TempDir()
	name := LibraryName()
	require.NoError(t, os.MkdirAll(filepath.Dir(filepath.Join(dir, name)), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	t.Setenv("CEF_PATH", dir)
	assert.Equal(t, filepath.Join(dir, name), Discover(""))

	t.Setenv("CEF_PATH", filepath.Join(dir, "missing"))
	t.Setenv("HOME", filepath.Join(dir, "nohome"))
	assert.Equal(t, filepath.Base(name), Discover(""))

	t.Setenv("FLATPAK", "1")
	paths := SearchPaths()
	require.GreaterOrEqual(t, len(paths), 2)
	assert.Equal(t, []string{filepath.Join(dir, "missing"), "/usr/lib"}, paths[:2])
}

func TestNames(t *testing.T) {
	names := Names()
	assert.Contains(t, names, "cef_initialize")
	assert.Contains(t, names, "cef_sandbox_info_create")
	assert.Equal(t, "cef_initialize", names[0])
}
