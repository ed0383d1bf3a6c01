// Package testlib is an in-process engine for tests. It implements
// ffi.Library with Go functions behind synthetic function addresses, so
// the binding can be driven without loading the real library, and it counts
// every engine call the binding makes.
package testlib

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gocef/cef/internal/descriptor"
	"github.com/gocef/cef/internal/ffi"
)

// Func is an engine function.
type Func func(args ...uintptr) uintptr

// PairFunc is an engine function returning two registers.
type PairFunc func(args ...uintptr) (uintptr, uintptr)

type entry struct {
	name string
	fn   PairFunc
	cb   ffi.Callback
}

const (
	firstFunc = 0x1000
	funcStep  = 0x10
)

// Engine is a fake engine library. All methods are safe for concurrent use.
type Engine struct {
	mu      sync.Mutex
	next    uintptr
	funcs   map[uintptr]*entry
	symbols map[string]uintptr
	calls   map[string]int
	total   int
	order   []string

	strings ffi.Arena
	objects []*Object
	frees   int
}

var _ ffi.Library = (*Engine)(nil)

// New returns an engine exporting every symbol the binding resolves. They
// return 0 until replaced with Export.
func New() *Engine {
	e := &Engine{
		next:    firstFunc,
		funcs:   make(map[uintptr]*entry),
		symbols: make(map[string]uintptr),
		calls:   make(map[string]int),
	}
	for _, name := range ffi.Names() {
		e.Export(name, func(...uintptr) uintptr { return 0 })
	}
	e.Export("cef_string_userfree_utf16_free", func(...uintptr) uintptr {
		e.mu.Lock()
		e.frees++
		e.mu.Unlock()
		return 0
	})
	return e
}

func (e *Engine) register(name string, fn PairFunc, cb ffi.Callback) uintptr {
	e.mu.Lock()
	defer e.mu.Unlock()
	addr := e.next
	e.next += funcStep
	e.funcs[addr] = &entry{name: name, fn: fn, cb: cb}
	return addr
}

// Func registers fn under name and returns its address. Calls to it are
// counted under name.
func (e *Engine) Func(name string, fn Func) uintptr {
	return e.PairFunc(name, func(args ...uintptr) (uintptr, uintptr) { return fn(args...), 0 })
}

// PairFunc is Func for two-register results.
func (e *Engine) PairFunc(name string, fn PairFunc) uintptr {
	return e.register(name, fn, nil)
}

// Export makes fn the exported symbol name, replacing an earlier export.
func (e *Engine) Export(name string, fn Func) {
	e.ExportPair(name, func(args ...uintptr) (uintptr, uintptr) { return fn(args...), 0 })
}

// ExportPair is Export for two-register results.
func (e *Engine) ExportPair(name string, fn PairFunc) {
	e.mu.Lock()
	if addr, ok := e.symbols[name]; ok {
		e.funcs[addr].fn = fn
		e.mu.Unlock()
		return
	}
	e.mu.Unlock()
	addr := e.register(name, fn, nil)
	e.mu.Lock()
	e.symbols[name] = addr
	e.mu.Unlock()
}

// Unexport removes a symbol, as an engine build lacking it would.
func (e *Engine) Unexport(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.symbols, name)
}

func (e *Engine) Symbol(name string) (uintptr, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	addr, ok := e.symbols[name]
	if !ok {
		return 0, fmt.Errorf("undefined symbol: %s", name)
	}
	return addr, nil
}

func (e *Engine) Call(fn uintptr, args ...uintptr) uintptr {
	r1, _ := e.CallPair(fn, args...)
	return r1
}

func (e *Engine) CallPair(fn uintptr, args ...uintptr) (uintptr, uintptr) {
	e.mu.Lock()
	ent, ok := e.funcs[fn]
	if ok && ent.cb == nil {
		e.calls[ent.name]++
		e.total++
		e.order = append(e.order, ent.name)
	}
	e.mu.Unlock()
	if !ok {
		panic(fmt.Sprintf("testlib: call to unknown function %#x", fn))
	}
	if ent.cb != nil {
		return callback(ent.cb, args), 0
	}
	return ent.fn(args...)
}

func callback(cb ffi.Callback, args []uintptr) uintptr {
	var a [ffi.MaxCallbackArgs + 1]uintptr
	copy(a[:], args)
	return cb(a[0], a[1], a[2], a[3], a[4], a[5], a[6])
}

// NewCallback hands out an address for cb. Calls through it are the engine
// calling the host and are not counted.
func (e *Engine) NewCallback(cb ffi.Callback) uintptr {
	return e.register("callback", nil, cb)
}

// Close frees the strings the engine handed out and unpins the tables of
// its objects. Neither may be used afterwards.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.strings.Free()
	for _, o := range e.objects {
		o.table.Free()
	}
	e.objects = nil
	return nil
}

// Calls is how often the binding called the function registered as name.
func (e *Engine) Calls(name string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls[name]
}

// TotalCalls is the number of engine calls the binding made.
func (e *Engine) TotalCalls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.total
}

// Order lists the names of all calls made so far, oldest first.
func (e *Engine) Order() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.order...)
}

// Called lists the distinct names called so far, sorted.
func (e *Engine) Called() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	names := make([]string, 0, len(e.calls))
	for name := range e.calls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResetCalls forgets every call counted so far.
func (e *Engine) ResetCalls() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = make(map[string]int)
	e.total = 0
	e.order = nil
}

// String stores s as a cef_string_t the engine owns, for callback
// arguments.
func (e *Engine) String(s string) uintptr {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.strings.String(s)
}

// UserfreeString is String for results the binding has to free.
func (e *Engine) UserfreeString(s string) uintptr {
	return e.String(s)
}

// Frees is how many userfree strings the binding freed.
func (e *Engine) Frees() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frees
}

// Dispatch calls slot of a host table the way the engine would. It returns
// 0 when the host left the slot empty.
func (e *Engine) Dispatch(table uintptr, desc *descriptor.Descriptor, slot string, args ...uintptr) uintptr {
	w, ok := desc.Word(slot)
	if !ok {
		panic(fmt.Sprintf("testlib: %s has no slot %s", desc.Name(), slot))
	}
	fn := ffi.Word(table, w)
	if fn == 0 {
		return 0
	}
	return e.Call(fn, append([]uintptr{table}, args...)...)
}

// AddRef takes an engine reference on a host table.
func (e *Engine) AddRef(table uintptr) {
	e.Call(ffi.Word(table, ffi.SlotAddRef), table)
}

// Release drops an engine reference on a host table and reports whether
// it was the last one.
func (e *Engine) Release(table uintptr) bool {
	return e.Call(ffi.Word(table, ffi.SlotRelease), table) != 0
}

// HasOneRef asks a host table whether exactly one reference is left.
func (e *Engine) HasOneRef(table uintptr) bool {
	return e.Call(ffi.Word(table, ffi.SlotHasOneRef), table) != 0
}
