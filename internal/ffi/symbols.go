package ffi

import "fmt"

// Symbols holds every exported engine entry point the adapters call.
type Symbols struct {
	// Process entry
	Initialize      uintptr
	Shutdown        uintptr
	ExecuteProcess  uintptr
	GetExitCode     uintptr
	RunMessageLoop  uintptr
	QuitMessageLoop uintptr
	DoMessageLoop   uintptr
	VersionInfo     uintptr

	// Threads and tasks
	CurrentlyOn     uintptr
	PostTask        uintptr
	PostDelayedTask uintptr

	// Factories
	CommandLineCreate     uintptr
	CommandLineGetGlobal  uintptr
	CreateBrowserSync     uintptr
	BrowserViewCreate     uintptr
	BrowserViewForBrowser uintptr
	WindowCreateTopLevel  uintptr
	DisplayGetPrimary     uintptr
	DisplayGetCount       uintptr
	DisplayNearestPoint   uintptr
	ProcessMessageCreate  uintptr
	BinaryValueCreate     uintptr
	RequestCreate         uintptr
	ResponseCreate        uintptr

	// V8
	V8CurrentContext  uintptr
	V8InContext       uintptr
	V8CreateUndefined uintptr
	V8CreateBool      uintptr
	V8CreateInt       uintptr
	V8CreateString    uintptr
	V8CreateFunction  uintptr

	// Strings
	UserfreeFree uintptr
	StringSet    uintptr

	// Platform sandbox, present only where the engine ships one.
	SandboxInitialize  uintptr
	SandboxDestroy     uintptr
	SandboxInfoCreate  uintptr
	SandboxInfoDestroy uintptr
}

type symbol struct {
	name     string
	dst      *uintptr
	optional bool
}

func (s *Symbols) table() []symbol {
	return []symbol{
		{"cef_initialize", &s.Initialize, false},
		{"cef_shutdown", &s.Shutdown, false},
		{"cef_execute_process", &s.ExecuteProcess, false},
		{"cef_get_exit_code", &s.GetExitCode, true},
		{"cef_run_message_loop", &s.RunMessageLoop, false},
		{"cef_quit_message_loop", &s.QuitMessageLoop, false},
		{"cef_do_message_loop_work", &s.DoMessageLoop, false},
		{"cef_version_info", &s.VersionInfo, false},
		{"cef_currently_on", &s.CurrentlyOn, false},
		{"cef_post_task", &s.PostTask, false},
		{"cef_post_delayed_task", &s.PostDelayedTask, false},
		{"cef_command_line_create", &s.CommandLineCreate, false},
		{"cef_command_line_get_global", &s.CommandLineGetGlobal, false},
		{"cef_browser_host_create_browser_sync", &s.CreateBrowserSync, false},
		{"cef_browser_view_create", &s.BrowserViewCreate, false},
		{"cef_browser_view_get_for_browser", &s.BrowserViewForBrowser, false},
		{"cef_window_create_top_level", &s.WindowCreateTopLevel, false},
		{"cef_display_get_primary", &s.DisplayGetPrimary, false},
		{"cef_display_get_count", &s.DisplayGetCount, false},
		{"cef_display_get_nearest_point", &s.DisplayNearestPoint, false},
		{"cef_process_message_create", &s.ProcessMessageCreate, false},
		{"cef_binary_value_create", &s.BinaryValueCreate, false},
		{"cef_request_create", &s.RequestCreate, false},
		{"cef_response_create", &s.ResponseCreate, false},
		{"cef_v8context_get_current_context", &s.V8CurrentContext, false},
		{"cef_v8context_in_context", &s.V8InContext, false},
		{"cef_v8value_create_undefined", &s.V8CreateUndefined, false},
		{"cef_v8value_create_bool", &s.V8CreateBool, false},
		{"cef_v8value_create_int", &s.V8CreateInt, false},
		{"cef_v8value_create_string", &s.V8CreateString, false},
		{"cef_v8value_create_function", &s.V8CreateFunction, false},
		{"cef_string_userfree_utf16_free", &s.UserfreeFree, false},
		{"cef_string_utf16_set", &s.StringSet, true},
		{"cef_sandbox_initialize", &s.SandboxInitialize, true},
		{"cef_sandbox_destroy", &s.SandboxDestroy, true},
		{"cef_sandbox_info_create", &s.SandboxInfoCreate, true},
		{"cef_sandbox_info_destroy", &s.SandboxInfoDestroy, true},
	}
}

// Names lists every symbol ResolveSymbols looks up, in lookup order.
func Names() []string {
	var s Symbols
	var names []string
	for _, sym := range s.table() {
		names = append(names, sym.name)
	}
	return names
}

// ResolveSymbols looks up every entry point in lib. A missing required
// symbol means the library is not an engine build this binding supports.
func ResolveSymbols(lib Library) (*Symbols, error) {
	s := &Symbols{}
	for _, sym := range s.table() {
		addr, err := lib.Symbol(sym.name)
		if err != nil || addr == 0 {
			if sym.optional {
				continue
			}
			if err == nil {
				err = fmt.Errorf("null address")
			}
			return nil, fmt.Errorf("could not resolve %s: %w", sym.name, err)
		}
		*sym.dst = addr
	}
	return s, nil
}
