package api

import (
	"time"

	"github.com/gocef/cef/internal/descriptor"
	"github.com/gocef/cef/internal/trampoline"
	"github.com/gocef/cef/types"
)

// PostTask runs fn on an engine thread.
func (b *Binding) PostTask(thread types.ThreadID, fn func()) error {
	return b.post("cef_post_task", b.sym.PostTask, thread, fn)
}

// PostDelayedTask runs fn on an engine thread once delay passed. The delay
// has millisecond resolution.
func (b *Binding) PostDelayedTask(thread types.ThreadID, fn func(), delay time.Duration) error {
	return b.post("cef_post_delayed_task", b.sym.PostDelayedTask, thread, fn, uintptr(delay.Milliseconds()))
}

func (b *Binding) post(op string, sym uintptr, thread types.ThreadID, fn func(), extra ...uintptr) error {
	if !thread.Valid() {
		return types.ForeignStatus{Op: op, Code: int(thread)}
	}
	if err := b.create(op, types.AnyThread); err != nil {
		return err
	}
	task, err := b.callbacks.Install(b.desc(descriptor.Task), map[string]trampoline.Func{
		"execute": func([]uintptr) uintptr {
			fn()
			return 0
		},
	})
	if err != nil {
		return err
	}
	defer task.Release()

	args := append([]uintptr{uintptr(thread), task.Pass()}, extra...)
	if !truthy(b.lib.Call(sym, args...)) {
		return types.ForeignStatus{Op: op, Code: 0}
	}
	return nil
}

// CurrentlyOn reports whether the caller runs on thread.
func (b *Binding) CurrentlyOn(thread types.ThreadID) (bool, error) {
	const op = "cef_currently_on"
	if err := b.create(op, types.AnyThread); err != nil {
		return false, err
	}
	return truthy(b.lib.Call(b.sym.CurrentlyOn, uintptr(thread))), nil
}

// TaskExecutor is an executor posting calls to an engine thread, for use
// with Designate.
func (b *Binding) TaskExecutor(thread types.ThreadID) trampoline.Executor {
	return trampoline.ExecutorFunc(func(fn func()) error {
		return b.PostTask(thread, fn)
	})
}
