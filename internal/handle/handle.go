// Package handle owns references to tables living in the engine.
//
// A Handle adopts exactly one engine reference. Clones share that reference
// and count among themselves on the host, so the engine sees one release when
// the last clone goes away, no matter how many clones were made.
package handle

import (
	"fmt"
	"sync/atomic"

	"github.com/gocef/cef/internal/descriptor"
	"github.com/gocef/cef/internal/ffi"
	"github.com/gocef/cef/types"
)

// core is the state shared by every clone of a handle.
type core struct {
	lib     ffi.Library
	addr    uintptr
	desc    *descriptor.Descriptor
	tracker *Tracker
	// clones still holding the reference
	clones atomic.Int64
}

// Handle is one owner of an engine table. The zero value is not usable;
// handles come from Wrap or Clone.
type Handle struct {
	c        *core
	released atomic.Bool
}

// Wrap adopts the reference an engine call returned, or the one the engine
// added for a table it passed to a callback.
func Wrap(lib ffi.Library, tracker *Tracker, desc *descriptor.Descriptor, addr uintptr, op string) (*Handle, error) {
	if addr == 0 {
		return nil, types.NullPointer{Op: op}
	}
	return adopt(lib, tracker, desc, addr), nil
}

func adopt(lib ffi.Library, tracker *Tracker, desc *descriptor.Descriptor, addr uintptr) *Handle {
	c := &core{lib: lib, addr: addr, desc: desc, tracker: tracker}
	c.clones.Store(1)
	if tracker != nil {
		tracker.add()
	}
	return &Handle{c: c}
}

// Clone returns another owner of the same table.
func (h *Handle) Clone() *Handle {
	h.mustLive("clone")
	h.c.clones.Add(1)
	return &Handle{c: h.c}
}

// Release gives up this owner. The last owner of a table releases the engine
// reference. Releasing the same handle twice does nothing.
func (h *Handle) Release() {
	if h == nil || !h.released.CompareAndSwap(false, true) {
		return
	}
	c := h.c
	if c.clones.Add(-1) != 0 {
		return
	}
	if c.desc.RefCounted() {
		if fn := ffi.Word(c.addr, ffi.SlotRelease); fn != 0 {
			c.lib.Call(fn, c.addr)
		}
	} else if fn := ffi.Word(c.addr, 1); fn != 0 {
		// cef_base_scoped_t.del
		c.lib.Call(fn, c.addr)
	}
	if c.tracker != nil {
		c.tracker.done()
	}
}

// Released reports whether this owner was released.
func (h *Handle) Released() bool {
	return h.released.Load()
}

// Descriptor is the family of the table.
func (h *Handle) Descriptor() *descriptor.Descriptor {
	return h.c.desc
}

// Addr is the table address, for passing the table to another engine call.
func (h *Handle) Addr() uintptr {
	h.mustLive("addr")
	return h.c.addr
}

// Pass adds the reference the engine takes over when the table is handed
// to it as an argument, and returns the address to pass.
func (h *Handle) Pass() uintptr {
	h.mustLive("pass")
	if h.c.desc.RefCounted() {
		if fn := ffi.Word(h.c.addr, ffi.SlotAddRef); fn != 0 {
			h.c.lib.Call(fn, h.c.addr)
		}
	}
	return h.c.addr
}

// Same reports whether both handles own the same table.
func (h *Handle) Same(o *Handle) bool {
	return h != nil && o != nil && h.c.addr == o.c.addr
}

// Has reports whether the engine filled in the slot.
func (h *Handle) Has(slot string) bool {
	h.mustLive(slot)
	return h.fn(slot) != 0
}

// Invoke calls a slot with the table as first argument. Slots the engine
// left empty, or that a shorter table of an older build lacks, return 0.
func (h *Handle) Invoke(slot string, args ...uintptr) uintptr {
	h.mustLive(slot)
	fn := h.fn(slot)
	if fn == 0 {
		return 0
	}
	h.c.tracker.observe(h.c.desc.Name())
	return h.c.lib.Call(fn, append([]uintptr{h.c.addr}, args...)...)
}

// InvokePair is Invoke for slots returning a small struct in two registers.
func (h *Handle) InvokePair(slot string, args ...uintptr) (uintptr, uintptr) {
	h.mustLive(slot)
	fn := h.fn(slot)
	if fn == 0 {
		return 0, 0
	}
	h.c.tracker.observe(h.c.desc.Name())
	return h.c.lib.CallPair(fn, append([]uintptr{h.c.addr}, args...)...)
}

func (h *Handle) fn(slot string) uintptr {
	w, ok := h.c.desc.Word(slot)
	if !ok {
		panic(fmt.Sprintf("%s has no slot %s", h.c.desc.Name(), slot))
	}
	size := ffi.Word(h.c.addr, ffi.SlotSize)
	if size != 0 && uintptr(w+1)*ffi.WordSize > size {
		return 0
	}
	return ffi.Word(h.c.addr, w)
}

func (h *Handle) mustLive(op string) {
	if h.released.Load() {
		panic(types.UseAfterRelease{Interface: h.c.desc.Name(), Op: op})
	}
}
