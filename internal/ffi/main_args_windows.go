//go:build windows

package ffi

import "golang.org/x/sys/windows"

const hasSignalHandlersField = false

// EncodeMainArgs lays out cef_main_args_t {instance}. The engine reads the
// command line from the process on Windows, so args is unused.
func EncodeMainArgs(a *Arena, _ []string) uintptr {
	var module windows.Handle
	_ = windows.GetModuleHandleEx(0, nil, &module)
	return a.Struct(NewLayout(false).Word(uintptr(module)))
}
