package api

import (
	"context"
	"fmt"

	"github.com/gocef/cef/internal/affinity"
	"github.com/gocef/cef/internal/descriptor"
	"github.com/gocef/cef/internal/ffi"
	"github.com/gocef/cef/internal/trampoline"
	"github.com/gocef/cef/types"
)

type commandSwitch struct {
	name  string
	value string
}

// transition moves to state to. Called with b.mu held.
func (b *Binding) transition(to types.LifecycleState) {
	b.logger.Debug().Stringer("from", b.state).Stringer("to", to).Msg("lifecycle")
	b.state = to
	b.metrics.Transitions.WithLabelValues(to.String()).Inc()
}

// setup admits the operations only allowed while initializing.
func (b *Binding) setup(op string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != types.Initializing {
		return types.LifecycleError{Op: op, State: b.state}
	}
	return nil
}

// startSandbox runs the platform sandbox hook once per process.
func (b *Binding) startSandbox(args []string, disabled bool) (*affinity.Sandbox, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sandbox == nil {
		s, err := affinity.StartSandbox(b.lib, b.sym, args, disabled)
		if err != nil {
			return nil, err
		}
		b.sandbox = s
	}
	return b.sandbox, nil
}

// releaseLock drops the cache directory lock, if one is held.
func (b *Binding) releaseLock() {
	b.mu.Lock()
	lock := b.lock
	b.lock = nil
	b.mu.Unlock()
	lock.release()
}

// ExecuteProcess is the entry point every process runs first. It returns
// types.Exit when this process was an engine sub-process that has finished
// and must exit with the code, and nil in the browser process, which goes
// on to Initialize.
func (b *Binding) ExecuteProcess(args []string, settings types.Settings, app *AppHandler) error {
	const op = "execute_process"
	b.mu.Lock()
	state := b.state
	b.mu.Unlock()
	if state != types.Uninitialized {
		return types.LifecycleError{Op: op, State: state}
	}
	b.useProbe(settings.MultiThreadedMessageLoop)
	if err := b.enter(op, types.MainThread); err != nil {
		return err
	}
	sandbox, err := b.startSandbox(args, settings.NoSandbox)
	if err != nil {
		return err
	}

	appAddr, err := b.passApp(app)
	if err != nil {
		return err
	}
	var a ffi.Arena
	defer a.Free()
	b.mu.Lock()
	b.subprocess = true
	b.mu.Unlock()
	code := int(int32(b.lib.Call(b.sym.ExecuteProcess, ffi.EncodeMainArgs(&a, args), appAddr, sandbox.Info())))
	b.mu.Lock()
	b.subprocess = false
	if code < 0 {
		b.mu.Unlock()
		return nil
	}
	b.transition(types.Terminated)
	b.mu.Unlock()
	b.logger.Debug().Int("code", code).Msg("sub-process finished")
	return types.Exit{Code: code}
}

// Initialize starts the engine in the browser process. It may succeed only
// once per process. app.Setup runs first, while setup operations are
// accepted; the engine starts after it returns.
func (b *Binding) Initialize(args []string, settings types.Settings, app *AppHandler) error {
	const op = "initialize"
	b.mu.Lock()
	if b.state != types.Uninitialized {
		defer b.mu.Unlock()
		return types.LifecycleError{Op: op, State: b.state}
	}
	b.transition(types.Initializing)
	b.mu.Unlock()

	b.useProbe(settings.MultiThreadedMessageLoop)
	sandbox, err := b.prepare(args, settings, app)
	if err != nil {
		b.mu.Lock()
		b.switches = nil
		b.transition(types.Uninitialized)
		b.mu.Unlock()
		return err
	}

	appAddr, err := b.passApp(app)
	if err != nil {
		b.abort()
		return err
	}
	var a ffi.Arena
	defer a.Free()
	ok := truthy(b.lib.Call(b.sym.Initialize,
		ffi.EncodeMainArgs(&a, args), ffi.EncodeSettings(&a, settings), appAddr, sandbox.Info()))
	if !ok {
		code := -1
		if b.sym.GetExitCode != 0 {
			code = int(int32(b.lib.Call(b.sym.GetExitCode)))
		}
		b.abort()
		b.mu.Lock()
		b.transition(types.Terminated)
		b.mu.Unlock()
		return types.ForeignStatus{Op: "cef_initialize", Code: code}
	}

	b.mu.Lock()
	b.transition(types.Running)
	deferred := b.deferred
	b.deferred = nil
	b.mu.Unlock()
	b.logger.Info().Stringer("engine", b.version).Msg("engine initialized")
	for _, fn := range deferred {
		fn()
	}
	return nil
}

// prepare does the work before the engine starts, in the Initializing
// state. The engine is initialized on the main thread in both message loop
// modes.
func (b *Binding) prepare(args []string, settings types.Settings, app *AppHandler) (*affinity.Sandbox, error) {
	if err := b.enter("initialize", types.MainThread); err != nil {
		return nil, err
	}
	sandbox, err := b.startSandbox(args, settings.NoSandbox)
	if err != nil {
		return nil, err
	}
	if settings.RootCachePath != "" {
		lock, err := lockCache(settings.RootCachePath)
		if err != nil {
			return nil, err
		}
		b.mu.Lock()
		b.lock = lock
		b.mu.Unlock()
	}
	if app != nil && app.Setup != nil {
		if err := app.Setup(b); err != nil {
			b.releaseLock()
			return nil, fmt.Errorf("setup: %w", err)
		}
	}
	return sandbox, nil
}

// abort undoes what a failed initialization held on to.
func (b *Binding) abort() {
	b.releaseLock()
	b.mu.Lock()
	app := b.app
	b.app, b.appFor = nil, nil
	b.switches = nil
	b.deferred = nil
	b.mu.Unlock()
	if app != nil {
		app.Release()
	}
}

// afterInitialize runs fn now if the engine runs, or right after
// Initialize finished if the engine calls back while still starting.
func (b *Binding) afterInitialize(fn func()) {
	b.mu.Lock()
	if b.state == types.Initializing {
		b.deferred = append(b.deferred, fn)
		b.mu.Unlock()
		return
	}
	b.mu.Unlock()
	fn()
}

func (b *Binding) loop(op string, fn uintptr) error {
	b.mu.Lock()
	state := b.state
	b.mu.Unlock()
	if state != types.Running && state != types.ShuttingDown {
		return types.LifecycleError{Op: op, State: state}
	}
	if err := b.enter(op, types.UIThread); err != nil {
		return err
	}
	b.lib.Call(fn)
	return nil
}

// RunMessageLoop runs the engine message loop until QuitMessageLoop.
func (b *Binding) RunMessageLoop() error {
	return b.loop("run_message_loop", b.sym.RunMessageLoop)
}

// QuitMessageLoop makes RunMessageLoop return.
func (b *Binding) QuitMessageLoop() error {
	return b.loop("quit_message_loop", b.sym.QuitMessageLoop)
}

// DoMessageLoopWork does one round of engine work, for hosts that run
// their own message loop.
func (b *Binding) DoMessageLoopWork() error {
	return b.loop("do_message_loop_work", b.sym.DoMessageLoop)
}

// Shutdown stops the engine. New handles are refused from here on; it waits
// until every outstanding handle was released, or ctx is done, before the
// engine is shut down. A Shutdown cut short by ctx can be called again.
func (b *Binding) Shutdown(ctx context.Context) error {
	const op = "shutdown"
	b.mu.Lock()
	state := b.state
	b.mu.Unlock()
	if state != types.Running && state != types.ShuttingDown {
		return types.LifecycleError{Op: op, State: state}
	}
	if err := b.enter(op, types.MainThread); err != nil {
		return err
	}

	b.mu.Lock()
	if b.state == types.Running {
		b.transition(types.ShuttingDown)
	}
	b.mu.Unlock()

	if err := b.tracker.Wait(ctx); err != nil {
		return fmt.Errorf("%d handles still live: %w", b.tracker.Live(), err)
	}

	b.mu.Lock()
	if b.state != types.ShuttingDown {
		defer b.mu.Unlock()
		return types.LifecycleError{Op: op, State: b.state}
	}
	b.transition(types.Terminated)
	app, sandbox, lock := b.app, b.sandbox, b.lock
	b.app, b.appFor = nil, nil
	b.sandbox, b.lock = nil, nil
	b.mu.Unlock()

	b.lib.Call(b.sym.Shutdown)
	if app != nil {
		app.Release()
	}
	sandbox.Close()
	lock.release()
	b.logger.Info().Msg("engine shut down")
	return nil
}

// AppendSwitch adds a switch to the browser process command line before
// the engine parses it. value may be empty. Setup only.
func (b *Binding) AppendSwitch(name, value string) error {
	if err := b.setup("append_switch"); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.switches = append(b.switches, commandSwitch{name: name, value: value})
	return nil
}

// Designate routes callbacks that arrive off the thread tag names to e.
// Setup only.
func (b *Binding) Designate(tag types.AffinityTag, e trampoline.Executor) error {
	if err := b.setup("designate"); err != nil {
		return err
	}
	b.callbacks.Designate(tag, e)
	return nil
}

// RegisterInterface adds a family beyond the built in ones. Setup only.
func (b *Binding) RegisterInterface(def descriptor.Definition) (*descriptor.Descriptor, error) {
	if err := b.setup("register_interface"); err != nil {
		return nil, err
	}
	return b.descriptors.Register(def.Name, def.Version, def.Slots, def.Options...)
}

// Lookup returns the descriptor of a registered family.
func (b *Binding) Lookup(family string) (*descriptor.Descriptor, error) {
	return b.descriptors.Lookup(family)
}

// pendingSwitches returns the switches AppendSwitch collected.
func (b *Binding) pendingSwitches() []commandSwitch {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]commandSwitch(nil), b.switches...)
}
