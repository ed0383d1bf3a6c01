//go:build darwin || linux || freebsd

package ffi

import (
	"fmt"

	"github.com/ebitengine/purego"
)

type dynamicLibrary struct {
	handle uintptr
	path   string
}

func openLibrary(path string) (Library, error) {
	h, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("could not load engine %s: %w", path, err)
	}
	return &dynamicLibrary{handle: h, path: path}, nil
}

func (l *dynamicLibrary) Symbol(name string) (uintptr, error) {
	return purego.Dlsym(l.handle, name)
}

func (l *dynamicLibrary) Close() error {
	return purego.Dlclose(l.handle)
}
