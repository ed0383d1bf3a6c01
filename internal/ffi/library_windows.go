//go:build windows

package ffi

import (
	"fmt"

	"golang.org/x/sys/windows"
)

type dynamicLibrary struct {
	handle windows.Handle
	path   string
}

func openLibrary(path string) (Library, error) {
	h, err := windows.LoadLibrary(path)
	if err != nil {
		return nil, fmt.Errorf("could not load engine %s: %w", path, err)
	}
	return &dynamicLibrary{handle: h, path: path}, nil
}

func (l *dynamicLibrary) Symbol(name string) (uintptr, error) {
	return windows.GetProcAddress(l.handle, name)
}

func (l *dynamicLibrary) Close() error {
	return windows.FreeLibrary(l.handle)
}
