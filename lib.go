// Package cef binds a Go program to the Chromium Embedded Framework through
// its C ABI, without cgo. The engine is a shared library loaded at runtime;
// everything it hands out is wrapped in reference counted handles and every
// call is checked against the lifecycle state and the calling thread first.
//
// A typical program calls ExecuteProcess first so sub-processes exit early,
// then Initialize, RunMessageLoop and Shutdown on the main thread.
package cef

import (
	"github.com/gocef/cef/internal/affinity"
	"github.com/gocef/cef/internal/api"
	"github.com/gocef/cef/internal/descriptor"
	"github.com/gocef/cef/internal/ffi"
	"github.com/gocef/cef/internal/trampoline"
)

// Binding is one loaded engine.
type Binding = api.Binding

// Option configures Open and New.
type Option = api.Option

// Library is a loaded engine shared library.
type Library = ffi.Library

// Engine objects. Each one holds a reference; call Release when done.
type (
	Browser        = api.Browser
	BrowserHost    = api.BrowserHost
	Frame          = api.Frame
	Client         = api.Client
	CommandLine    = api.CommandLine
	ProcessMessage = api.ProcessMessage
	Request        = api.Request
	Response       = api.Response
	View           = api.View
	Panel          = api.Panel
	Window         = api.Window
	BrowserView    = api.BrowserView
	BoxLayout      = api.BoxLayout
	FillLayout     = api.FillLayout
	Display        = api.Display
	V8Context      = api.V8Context
	V8Value        = api.V8Value
)

// Callback sets. Unset fields keep the engine's default behavior.
type (
	AppHandler         = api.AppHandler
	ClientHandler      = api.ClientHandler
	WindowHandler      = api.WindowHandler
	BrowserViewHandler = api.BrowserViewHandler
	V8Handler          = api.V8Handler
)

// Viewer is anything that can be added to a panel.
type Viewer = api.Viewer

// ScriptError is a script exception raised while evaluating code.
type ScriptError = api.ScriptError

// Executor runs callbacks delivered on the wrong thread; see Designate.
type Executor = trampoline.Executor

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc = trampoline.ExecutorFunc

// Queue is an Executor drained by a goroutine of your choosing.
type Queue = trampoline.Queue

// Probe tells which engine thread the caller runs on.
type Probe = affinity.Probe

// ProbeFunc adapts a function to Probe.
type ProbeFunc = affinity.ProbeFunc

// Definition describes an additional engine interface for
// Binding.RegisterInterface.
type Definition = descriptor.Definition

// Descriptor is a registered interface.
type Descriptor = descriptor.Descriptor

// VersionSource reports the ABI version the engine was built with.
type VersionSource = descriptor.VersionSource

var (
	WithLogger        = api.WithLogger
	WithRegisterer    = api.WithRegisterer
	WithProbe         = api.WithProbe
	WithVersionSource = api.WithVersionSource
	WithDefectHook    = api.WithDefectHook
	WithErrorHook     = api.WithErrorHook
)

// NewQueue returns a Queue holding up to size pending calls.
func NewQueue(size int) *Queue {
	return trampoline.NewQueue(size)
}

// Open loads the engine from path and binds to it. An empty path looks in
// $CEF_PATH, in /usr/lib when $FLATPAK is set, then in ~/.local/share/cef,
// and finally leaves the bare library name to the system loader.
func Open(path string, opts ...Option) (*Binding, error) {
	return api.Open(path, opts...)
}

// New binds to an engine that is already loaded.
func New(lib Library, opts ...Option) (*Binding, error) {
	return api.New(lib, opts...)
}

// LibraryName is the file name of the engine library on this platform.
func LibraryName() string {
	return ffi.LibraryName()
}
