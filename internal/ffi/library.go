// Package ffi is the only code that touches engine addresses. It loads the
// shared library, resolves exported entry points, calls function pointers
// and lays out the C structs and tables the engine expects.
package ffi

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/ebitengine/purego"
)

// Callback is the single shape every trampoline handed to the engine has.
// The engine passes the table pointer first and at most six further word
// sized arguments; arguments a method does not take are ignored.
type Callback func(this, a0, a1, a2, a3, a4, a5 uintptr) uintptr

// MaxCallbackArgs is the number of arguments after the table pointer a
// Callback can receive.
const MaxCallbackArgs = 6

// Library is a loaded engine.
type Library interface {
	// Symbol resolves an exported function of the library.
	Symbol(name string) (uintptr, error)
	// Call invokes fn and returns the first result register.
	Call(fn uintptr, args ...uintptr) uintptr
	// CallPair invokes fn and returns both result registers, used for small
	// structs returned by value.
	CallPair(fn uintptr, args ...uintptr) (uintptr, uintptr)
	// NewCallback turns cb into a function pointer the engine can call.
	// Callbacks are never freed, so create a bounded number of them.
	NewCallback(cb Callback) uintptr
	Close() error
}

// Open loads the engine from path, or from the discovered default location
// when path is empty.
func Open(path string) (Library, error) {
	return openLibrary(Discover(path))
}

func (l *dynamicLibrary) Call(fn uintptr, args ...uintptr) uintptr {
	r1, _, _ := purego.SyscallN(fn, args...)
	return r1
}

func (l *dynamicLibrary) CallPair(fn uintptr, args ...uintptr) (uintptr, uintptr) {
	r1, r2, _ := purego.SyscallN(fn, args...)
	return r1, r2
}

func (l *dynamicLibrary) NewCallback(cb Callback) uintptr {
	return purego.NewCallback(cb)
}

// LibraryName is the file name of the engine on this platform.
func LibraryName() string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join("Chromium Embedded Framework.framework", "Chromium Embedded Framework")
	case "windows":
		return "libcef.dll"
	default:
		return "libcef.so"
	}
}

// SearchPaths lists the directories Discover looks in, in order:
// $CEF_PATH, /usr/lib inside a flatpak, then ~/.local/share/cef.
func SearchPaths() []string {
	var dirs []string
	if p := os.Getenv("CEF_PATH"); p != "" {
		dirs = append(dirs, p)
	}
	if os.Getenv("FLATPAK") != "" {
		dirs = append(dirs, "/usr/lib")
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local", "share", "cef"))
	}
	return dirs
}

// Discover returns path if set, else the first search path containing the
// library, else the bare library name so the system loader can look for it.
func Discover(path string) string {
	if path != "" {
		return path
	}
	name := LibraryName()
	for _, dir := range SearchPaths() {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return filepath.Base(name)
}
