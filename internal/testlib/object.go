package testlib

import (
	"sync"
	"sync/atomic"

	"github.com/gocef/cef/internal/descriptor"
	"github.com/gocef/cef/internal/ffi"
)

// Object is a table the fake engine owns, with a real reference count. It
// starts with one reference, the one handed to the binding.
type Object struct {
	e     *Engine
	desc  *descriptor.Descriptor
	table *ffi.Table

	refs     atomic.Int64
	addRefs  atomic.Int64
	releases atomic.Int64
}

// NewObject allocates a table of family desc with every slot empty.
func (e *Engine) NewObject(desc *descriptor.Descriptor) *Object {
	o := &Object{e: e, desc: desc, table: ffi.NewTable(desc.Words())}
	o.refs.Store(1)
	name := desc.Name()
	if desc.RefCounted() {
		o.table.Set(ffi.SlotAddRef, e.Func(name+".add_ref", func(...uintptr) uintptr {
			o.addRefs.Add(1)
			o.refs.Add(1)
			return 0
		}))
		o.table.Set(ffi.SlotRelease, e.Func(name+".release", func(...uintptr) uintptr {
			o.releases.Add(1)
			if o.refs.Add(-1) == 0 {
				return 1
			}
			return 0
		}))
		o.table.Set(ffi.SlotHasOneRef, e.Func(name+".has_one_ref", func(...uintptr) uintptr {
			if o.refs.Load() == 1 {
				return 1
			}
			return 0
		}))
		o.table.Set(ffi.SlotHasAtLeastOneRef, e.Func(name+".has_at_least_one_ref", func(...uintptr) uintptr {
			if o.refs.Load() >= 1 {
				return 1
			}
			return 0
		}))
	} else {
		o.table.Set(1, e.Func(name+".del", func(...uintptr) uintptr {
			o.releases.Add(1)
			o.refs.Store(0)
			return 0
		}))
	}
	e.mu.Lock()
	e.objects = append(e.objects, o)
	e.mu.Unlock()
	return o
}

// On fills slot with fn. Calls are counted as "<family>.<slot>".
func (o *Object) On(slot string, fn Func) *Object {
	return o.OnPair(slot, func(args ...uintptr) (uintptr, uintptr) { return fn(args...), 0 })
}

// OnPair is On for two-register results.
func (o *Object) OnPair(slot string, fn PairFunc) *Object {
	w, ok := o.desc.Word(slot)
	if !ok {
		panic("testlib: " + o.desc.Name() + " has no slot " + slot)
	}
	o.table.Set(w, o.e.PairFunc(o.desc.Name()+"."+slot, fn))
	return o
}

// Returns fills slot with a function returning v.
func (o *Object) Returns(slot string, v uintptr) *Object {
	return o.On(slot, func(...uintptr) uintptr { return v })
}

// Truncate shrinks the size the table reports to words, as a table from an
// older engine build would.
func (o *Object) Truncate(words int) *Object {
	o.table.Set(ffi.SlotSize, uintptr(words)*ffi.WordSize)
	return o
}

// Addr is the table address handed to the binding.
func (o *Object) Addr() uintptr { return o.table.Addr() }

// Refs is the current reference count.
func (o *Object) Refs() int64 { return o.refs.Load() }

// AddRefs counts add_ref calls.
func (o *Object) AddRefs() int64 { return o.addRefs.Load() }

// Releases counts release calls.
func (o *Object) Releases() int64 { return o.releases.Load() }

// Recorder collects the arguments of calls in order.
type Recorder struct {
	mu    sync.Mutex
	calls [][]uintptr
}

// Func returns a Func recording its arguments and returning ret.
func (r *Recorder) Func(ret uintptr) Func {
	return func(args ...uintptr) uintptr {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.calls = append(r.calls, append([]uintptr(nil), args...))
		return ret
	}
}

// Calls returns the recorded argument lists.
func (r *Recorder) Calls() [][]uintptr {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]uintptr(nil), r.calls...)
}

// Len is the number of recorded calls.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}
