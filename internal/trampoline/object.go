package trampoline

import (
	"sync"

	"github.com/gocef/cef/internal/descriptor"
	"github.com/gocef/cef/internal/ffi"
	"github.com/gocef/cef/types"
)

// CallbackSlot is one filled slot of a host table.
type CallbackSlot struct {
	Name     string
	Affinity types.AffinityTag

	void   bool
	params int
	fn     Func
}

// Object is a host table handed to the engine, together with the closures
// behind its slots. The engine and the host share its reference count; the
// table, its side table entry and its closures go away with the last
// reference.
type Object struct {
	reg   *Registry
	desc  *descriptor.Descriptor
	table *ffi.Table

	mu           sync.Mutex
	slots        map[int]*CallbackSlot
	refs         int64
	hostReleased bool
	dead         bool
	onDestroy    []func()
}

// Descriptor is the family of the table.
func (o *Object) Descriptor() *descriptor.Descriptor { return o.desc }

// Addr is the table address. Using it after the table died is a defect.
func (o *Object) Addr() uintptr {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.dead {
		panic(types.UseAfterRelease{Interface: o.desc.Name(), Op: "addr"})
	}
	return o.table.Addr()
}

// Pass adds the reference the engine takes over when it receives the table
// as an argument or a return value, and returns the address.
func (o *Object) Pass() uintptr {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.dead {
		panic(types.UseAfterRelease{Interface: o.desc.Name(), Op: "pass"})
	}
	o.refs++
	return o.table.Addr()
}

// Release drops the host reference. Later calls do nothing.
func (o *Object) Release() {
	o.mu.Lock()
	if o.hostReleased {
		o.mu.Unlock()
		return
	}
	o.hostReleased = true
	o.mu.Unlock()
	o.release()
}

// Released reports whether the table is gone.
func (o *Object) Released() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.dead
}

// OnDestroy registers fn to run after the last reference is gone.
func (o *Object) OnDestroy(fn func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onDestroy = append(o.onDestroy, fn)
}

func (o *Object) slot(word int) *CallbackSlot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.slots[word]
}

func (o *Object) count() int64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.refs
}

func (o *Object) addRef() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.refs++
}

// release drops one reference and reports whether it was the last.
func (o *Object) release() bool {
	o.mu.Lock()
	if o.dead {
		o.mu.Unlock()
		return false
	}
	o.refs--
	if o.refs > 0 {
		o.mu.Unlock()
		return false
	}
	o.dead = true
	o.slots = nil
	hooks := o.onDestroy
	o.onDestroy = nil
	o.mu.Unlock()

	o.reg.forget(o)
	o.table.Free()
	o.reg.logger.Debug().Str("family", o.desc.Name()).Msg("host table released")
	for _, fn := range hooks {
		fn()
	}
	return true
}

// free unpins the table whatever its reference count. Hooks do not run.
func (o *Object) free() {
	o.mu.Lock()
	if o.dead {
		o.mu.Unlock()
		return
	}
	o.dead = true
	o.slots = nil
	o.onDestroy = nil
	o.mu.Unlock()
	o.table.Free()
}
