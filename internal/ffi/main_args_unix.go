//go:build !windows

package ffi

const hasSignalHandlersField = true

// EncodeMainArgs lays out cef_main_args_t {argc, argv}.
func EncodeMainArgs(a *Arena, args []string) uintptr {
	argv := make([]uintptr, 0, len(args)+1)
	for _, arg := range args {
		argv = append(argv, a.CString(arg))
	}
	argv = append(argv, 0)
	l := NewLayout(false).Int32(int32(len(args))).Word(a.Words(argv...))
	return a.Struct(l)
}
