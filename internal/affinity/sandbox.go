package affinity

import (
	"errors"
	"runtime"

	"github.com/gocef/cef/internal/ffi"
)

// Sandbox is the platform sandbox state that has to exist before the engine
// starts and outlive its shutdown. macOS initializes the sandbox in every
// process before anything else, Windows creates sandbox info that is handed
// to execute and initialize, Linux sandboxes inside the engine.
type Sandbox struct {
	lib  ffi.Library
	sym  *ffi.Symbols
	goos string

	context uintptr
	info    uintptr
}

// StartSandbox runs the platform hook. It does nothing when disabled.
func StartSandbox(lib ffi.Library, sym *ffi.Symbols, args []string, disabled bool) (*Sandbox, error) {
	return startSandbox(lib, sym, args, disabled, runtime.GOOS)
}

func startSandbox(lib ffi.Library, sym *ffi.Symbols, args []string, disabled bool, goos string) (*Sandbox, error) {
	s := &Sandbox{lib: lib, sym: sym, goos: goos}
	if disabled {
		return s, nil
	}
	switch goos {
	case "darwin":
		if sym.SandboxInitialize == 0 {
			return nil, errors.New("sandbox requested but the engine has no cef_sandbox_initialize")
		}
		var a ffi.Arena
		defer a.Free()
		argv := make([]uintptr, 0, len(args)+1)
		for _, arg := range args {
			argv = append(argv, a.CString(arg))
		}
		argv = append(argv, 0)
		s.context = lib.Call(sym.SandboxInitialize, uintptr(len(args)), a.Words(argv...))
		if s.context == 0 {
			return nil, errors.New("cef_sandbox_initialize failed")
		}
	case "windows":
		if sym.SandboxInfoCreate == 0 {
			return nil, errors.New("sandbox requested but the engine has no cef_sandbox_info_create")
		}
		s.info = lib.Call(sym.SandboxInfoCreate)
	}
	return s, nil
}

// Info is the value passed as windows_sandbox_info, 0 elsewhere.
func (s *Sandbox) Info() uintptr {
	if s == nil {
		return 0
	}
	return s.info
}

// Close tears the sandbox state down after the engine shut down.
func (s *Sandbox) Close() {
	if s == nil {
		return
	}
	if s.context != 0 && s.sym.SandboxDestroy != 0 {
		s.lib.Call(s.sym.SandboxDestroy, s.context)
	}
	if s.info != 0 && s.sym.SandboxInfoDestroy != 0 {
		s.lib.Call(s.sym.SandboxInfoDestroy, s.info)
	}
	s.context, s.info = 0, 0
}
