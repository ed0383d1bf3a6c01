// Package api adapts engine capability tables to Go types. Every operation
// checks the lifecycle state and the calling thread before the engine is
// called, wraps returned tables in handles and turns engine status codes
// into errors. Nothing outside this package sees a table address.
package api

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/gocef/cef/internal/affinity"
	"github.com/gocef/cef/internal/descriptor"
	"github.com/gocef/cef/internal/ffi"
	"github.com/gocef/cef/internal/handle"
	"github.com/gocef/cef/internal/trampoline"
	"github.com/gocef/cef/types"
)

// Binding is one loaded engine and the state needed to talk to it. There is
// at most one per process, since the engine itself is process global.
type Binding struct {
	lib     ffi.Library
	sym     *ffi.Symbols
	version ffi.VersionInfo
	logger  zerolog.Logger
	metrics *Metrics

	descriptors *descriptor.Registry
	callbacks   *trampoline.Registry
	tracker     *handle.Tracker
	guard       *affinity.Guard

	probe      atomic.Pointer[probeBox]
	fixedProbe bool

	mu       sync.Mutex
	state    types.LifecycleState
	switches []commandSwitch
	deferred []func()
	app      *trampoline.Object
	appFor   *AppHandler
	sandbox  *affinity.Sandbox
	lock     *cacheLock

	// set while cef_execute_process runs this process as a sub-process
	subprocess bool
}

type probeBox struct{ affinity.Probe }

// Option configures a Binding.
type Option func(*config)

type config struct {
	logger     zerolog.Logger
	registerer prometheus.Registerer
	namespace  string
	probe      affinity.Probe
	versions   descriptor.VersionSource
	defect     func(error)
	report     func(error)
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithRegisterer registers the binding metrics with reg under namespace.
func WithRegisterer(reg prometheus.Registerer, namespace string) Option {
	return func(c *config) {
		c.registerer = reg
		c.namespace = namespace
	}
}

// WithProbe fixes how the calling thread is identified. Without it the
// binding picks a probe matching the message loop mode at initialization.
func WithProbe(p affinity.Probe) Option {
	return func(c *config) { c.probe = p }
}

// WithVersionSource overrides where the runtime ABI version of each family
// comes from. The default is the major version the engine reports.
func WithVersionSource(s descriptor.VersionSource) Option {
	return func(c *config) { c.versions = s }
}

// WithDefectHook receives binding defects raised while dispatching
// callbacks. The default logs at fatal level.
func WithDefectHook(fn func(error)) Option {
	return func(c *config) { c.defect = fn }
}

// WithErrorHook receives callbacks that could not be delivered.
func WithErrorHook(fn func(error)) Option {
	return func(c *config) { c.report = fn }
}

// Open loads the engine library from path, or from the default location
// when path is empty, and binds to it.
func Open(path string, opts ...Option) (*Binding, error) {
	lib, err := ffi.Open(path)
	if err != nil {
		return nil, err
	}
	b, err := New(lib, opts...)
	if err != nil {
		lib.Close()
		return nil, err
	}
	return b, nil
}

// New binds to an already loaded engine. Every known family is registered
// against the version the engine reports; a mismatch fails here, before
// any table is touched.
func New(lib ffi.Library, opts ...Option) (*Binding, error) {
	cfg := config{logger: zerolog.Nop(), namespace: "cef"}
	for _, opt := range opts {
		opt(&cfg)
	}
	sym, err := ffi.ResolveSymbols(lib)
	if err != nil {
		return nil, err
	}

	b := &Binding{
		lib:     lib,
		sym:     sym,
		version: ffi.Version(lib, sym),
		logger:  cfg.logger,
		metrics: NewMetrics(cfg.namespace, cfg.registerer),
		tracker: handle.NewTracker(),
		guard:   affinity.NewGuard(cfg.logger),
		state:   types.Uninitialized,
	}
	if cfg.versions == nil {
		cfg.versions = descriptor.FixedVersion(b.version.Major)
	}
	b.descriptors = descriptor.NewRegistry(cfg.versions)
	if err := b.descriptors.RegisterAll(descriptor.Catalog()); err != nil {
		return nil, fmt.Errorf("engine %s: %w", b.version, err)
	}

	b.tracker.Instrument(b.metrics.LiveHandles, b.metrics.TableCalls)
	b.guard.Instrument(b.metrics.AffinityRejections)
	if cfg.probe != nil {
		b.probe.Store(&probeBox{cfg.probe})
		b.fixedProbe = true
	}

	topts := []trampoline.Option{
		trampoline.WithLogger(cfg.logger),
		trampoline.WithProbe(affinity.ProbeFunc(b.onThread)),
		trampoline.WithMetrics(b.metrics.Dispatches, b.metrics.CallbackRejections),
	}
	if cfg.defect != nil {
		topts = append(topts, trampoline.WithDefectHook(cfg.defect))
	}
	if cfg.report != nil {
		topts = append(topts, trampoline.WithErrorHook(cfg.report))
	}
	b.callbacks = trampoline.NewRegistry(lib, topts...)

	b.logger.Debug().Stringer("engine", b.version).Int("families", b.descriptors.Len()).Msg("bound engine")
	return b, nil
}

// Version is the version of the loaded engine build.
func (b *Binding) Version() ffi.VersionInfo {
	return b.version
}

// State is the current lifecycle state.
func (b *Binding) State() types.LifecycleState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// LiveHandles is the number of engine tables the host still references.
func (b *Binding) LiveHandles() int {
	return b.tracker.Live()
}

// Metrics exposes the collectors the binding feeds.
func (b *Binding) Metrics() *Metrics {
	return b.metrics
}

// Close frees the host tables still around and unloads the library. Only
// call it once the engine shut down or was never initialized.
func (b *Binding) Close() error {
	b.mu.Lock()
	state := b.state
	b.mu.Unlock()
	if state != types.Uninitialized && state != types.Terminated {
		return types.LifecycleError{Op: "close", State: state}
	}
	b.callbacks.Close()
	return b.lib.Close()
}

func (b *Binding) onThread(tag types.AffinityTag) bool {
	p := b.probe.Load()
	if p == nil {
		return tag == types.AnyThread
	}
	return p.On(tag)
}

// useProbe installs the probe for the message loop mode unless one was
// fixed with WithProbe. The first call records the calling thread as the
// main thread; later calls only switch the loop mode.
func (b *Binding) useProbe(multiThreaded bool) {
	if b.fixedProbe {
		return
	}
	var main *affinity.MainThreadProbe
	if p := b.probe.Load(); p != nil {
		main, _ = p.Probe.(*affinity.MainThreadProbe)
	}
	if main == nil {
		main = affinity.NewMainThreadProbe(affinity.NewEngineProbe(b.lib, b.sym))
	}
	b.probe.Store(&probeBox{main.WithLoop(!multiThreaded)})
}

func (b *Binding) desc(family string) *descriptor.Descriptor {
	return b.descriptors.MustLookup(family)
}

// enter admits an operation on an existing table.
func (b *Binding) enter(op string, tag types.AffinityTag) error {
	return b.guard.Check(affinity.Op{Name: op, Tag: tag}, affinity.ProbeFunc(b.onThread))
}

// create admits an operation that produces a new handle. Handles are only
// created while the engine runs, in the browser process or inside a
// sub-process.
func (b *Binding) create(op string, tag types.AffinityTag) error {
	b.mu.Lock()
	state, subprocess := b.state, b.subprocess
	b.mu.Unlock()
	if state != types.Running && !subprocess {
		return types.LifecycleError{Op: op, State: state}
	}
	return b.enter(op, tag)
}

// alloc admits an operation that produces a value handle, such as a
// command line or a message, which the engine hands out before it runs.
func (b *Binding) alloc(op string, tag types.AffinityTag) error {
	b.mu.Lock()
	state := b.state
	b.mu.Unlock()
	if state == types.ShuttingDown || state == types.Terminated {
		return types.LifecycleError{Op: op, State: state}
	}
	return b.enter(op, tag)
}

// wrap adopts the reference a factory call returned.
func (b *Binding) wrap(family string, addr uintptr, op string) (*handle.Handle, error) {
	return handle.Wrap(b.lib, b.tracker, b.desc(family), addr, op)
}

// adopt takes over the reference the engine handed to a callback. It
// returns nil for a null table.
func (b *Binding) adopt(family string, addr uintptr) *handle.Handle {
	h, err := handle.Wrap(b.lib, b.tracker, b.desc(family), addr, family)
	if err != nil {
		return nil
	}
	return h
}

// str decodes a userfree string result.
func (b *Binding) str(addr uintptr) string {
	return ffi.UserfreeString(b.lib, b.sym, addr)
}

func truthy(r uintptr) bool {
	return int32(r) != 0
}

func boolWord(v bool) uintptr {
	if v {
		return 1
	}
	return 0
}

func intWord(v int) uintptr {
	return uintptr(int32(v))
}

// release drops callback arguments the closure did not clone.
func release(hs ...*handle.Handle) {
	for _, h := range hs {
		if h != nil {
			h.Release()
		}
	}
}
