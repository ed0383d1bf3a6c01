// Package trampoline builds the tables the host hands to the engine and
// routes calls the engine makes through them back into Go closures.
//
// Every (family, slot) pair gets one fixed function pointer, created once.
// When the engine calls it, the only context is the table address, so the
// registry keeps a side table from address to owning Object. Calls for an
// address that is not live are binding or engine defects.
package trampoline

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/gocef/cef/internal/affinity"
	"github.com/gocef/cef/internal/descriptor"
	"github.com/gocef/cef/internal/ffi"
	"github.com/gocef/cef/types"
)

// Func is a host closure bound to a slot. args holds the words the engine
// passed after the table pointer, one per slot parameter.
type Func func(args []uintptr) uintptr

type trampKey struct {
	family string
	word   int
	slot   string
}

// Registry owns the trampolines and the side table.
type Registry struct {
	lib    ffi.Library
	logger zerolog.Logger
	probe  affinity.Probe

	defect func(error)
	report func(error)

	dispatches *prometheus.CounterVec
	rejections *prometheus.CounterVec

	mu        sync.Mutex
	objects   map[uintptr]*Object
	tramps    map[trampKey]uintptr
	base      [ffi.BaseWords]uintptr
	executors map[types.AffinityTag]Executor
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// WithDefectHook replaces what happens on a binding defect, such as a call
// through a released table. The default logs at fatal level, which exits.
func WithDefectHook(fn func(error)) Option {
	return func(r *Registry) { r.defect = fn }
}

// WithErrorHook receives recoverable dispatch errors: wrong-thread calls
// that could not be re-dispatched and panics inside closures.
func WithErrorHook(fn func(error)) Option {
	return func(r *Registry) { r.report = fn }
}

// WithProbe sets how the registry tells which thread a call arrived on.
// Without one, calls are delivered where they arrive.
func WithProbe(p affinity.Probe) Option {
	return func(r *Registry) { r.probe = p }
}

// WithMetrics counts delivered calls and wrong-thread refusals, both
// labelled by family.
func WithMetrics(dispatches, rejections *prometheus.CounterVec) Option {
	return func(r *Registry) {
		r.dispatches = dispatches
		r.rejections = rejections
	}
}

func NewRegistry(lib ffi.Library, opts ...Option) *Registry {
	r := &Registry{
		lib:       lib,
		logger:    zerolog.Nop(),
		objects:   make(map[uintptr]*Object),
		tramps:    make(map[trampKey]uintptr),
		executors: make(map[types.AffinityTag]Executor),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.defect == nil {
		r.defect = func(err error) {
			r.logger.Fatal().Err(err).Msg("engine called into a released table")
		}
	}
	if r.report == nil {
		r.report = func(err error) {
			r.logger.Error().Err(err).Msg("callback not delivered")
		}
	}
	return r
}

// Designate makes e the executor for calls that arrive off the thread tag
// names. Replaces an earlier designation.
func (r *Registry) Designate(tag types.AffinityTag, e Executor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e == nil {
		delete(r.executors, tag)
		return
	}
	r.executors[tag] = e
}

// Live is the number of host tables the engine may still call.
func (r *Registry) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.objects)
}

// Close unpins every table still alive. Only call it once the engine can
// no longer reach them: shut down, or never started.
func (r *Registry) Close() {
	r.mu.Lock()
	objects := r.objects
	r.objects = make(map[uintptr]*Object)
	r.mu.Unlock()
	for _, obj := range objects {
		obj.free()
	}
}

// Install builds a table of family desc whose slots call closures. Slots
// without a closure stay empty, which the engine treats as default
// behavior. The returned Object holds one host reference.
func (r *Registry) Install(desc *descriptor.Descriptor, closures map[string]Func) (*Object, error) {
	if !desc.RefCounted() {
		return nil, fmt.Errorf("cannot install scoped %s", desc.Name())
	}
	obj := &Object{
		reg:   r,
		desc:  desc,
		table: ffi.NewTable(desc.Words()),
		slots: make(map[int]*CallbackSlot, len(closures)),
		refs:  1,
	}
	for name, fn := range closures {
		if fn == nil {
			continue
		}
		slot, ok := desc.Slot(name)
		if !ok {
			obj.table.Free()
			return nil, fmt.Errorf("%s has no slot %s", desc.Name(), name)
		}
		if err := deliverable(slot); err != nil {
			obj.table.Free()
			return nil, fmt.Errorf("%s.%s: %w", desc.Name(), name, err)
		}
		word, _ := desc.Word(name)
		obj.slots[word] = &CallbackSlot{
			Name:     name,
			Affinity: desc.Affinity(),
			void:     slot.Sig.Result == descriptor.Void,
			params:   len(slot.Sig.Params),
			fn:       fn,
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i, fn := range r.baseTrampolines() {
		if i != ffi.SlotSize {
			obj.table.Set(i, fn)
		}
	}
	for word := range obj.slots {
		obj.table.Set(word, r.trampoline(desc.Name(), word, obj.slots[word].Name))
	}
	r.objects[obj.table.Addr()] = obj
	r.logger.Debug().Str("family", desc.Name()).Int("slots", len(obj.slots)).Msg("installed host table")
	return obj, nil
}

func deliverable(slot descriptor.Slot) error {
	if len(slot.Sig.Params) > ffi.MaxCallbackArgs {
		return fmt.Errorf("takes %d arguments, at most %d can be received", len(slot.Sig.Params), ffi.MaxCallbackArgs)
	}
	for _, k := range slot.Sig.Params {
		if k == descriptor.Double || k == descriptor.Struct {
			return fmt.Errorf("cannot receive a %s argument", k)
		}
	}
	if slot.Sig.Result == descriptor.Double || slot.Sig.Result == descriptor.Struct {
		return fmt.Errorf("cannot return a %s", slot.Sig.Result)
	}
	return nil
}

// trampoline returns the function pointer for (family, word), creating it
// on first use. Called with r.mu held.
func (r *Registry) trampoline(family string, word int, slot string) uintptr {
	key := trampKey{family: family, word: word, slot: slot}
	if fn, ok := r.tramps[key]; ok {
		return fn
	}
	fn := r.lib.NewCallback(func(this, a0, a1, a2, a3, a4, a5 uintptr) uintptr {
		return r.dispatch(key, this, [ffi.MaxCallbackArgs]uintptr{a0, a1, a2, a3, a4, a5})
	})
	r.tramps[key] = fn
	return fn
}

// baseTrampolines returns the cef_base_ref_counted_t slots shared by every
// host table. Called with r.mu held.
func (r *Registry) baseTrampolines() [ffi.BaseWords]uintptr {
	if r.base[ffi.SlotAddRef] != 0 {
		return r.base
	}
	r.base[ffi.SlotAddRef] = r.lib.NewCallback(func(this, _, _, _, _, _, _ uintptr) uintptr {
		if obj := r.lookup(this, "add_ref"); obj != nil {
			obj.addRef()
		}
		return 0
	})
	r.base[ffi.SlotRelease] = r.lib.NewCallback(func(this, _, _, _, _, _, _ uintptr) uintptr {
		if obj := r.lookup(this, "release"); obj != nil && obj.release() {
			return 1
		}
		return 0
	})
	r.base[ffi.SlotHasOneRef] = r.lib.NewCallback(func(this, _, _, _, _, _, _ uintptr) uintptr {
		if obj := r.lookup(this, "has_one_ref"); obj != nil && obj.count() == 1 {
			return 1
		}
		return 0
	})
	r.base[ffi.SlotHasAtLeastOneRef] = r.lib.NewCallback(func(this, _, _, _, _, _, _ uintptr) uintptr {
		if obj := r.lookup(this, "has_at_least_one_ref"); obj != nil && obj.count() >= 1 {
			return 1
		}
		return 0
	})
	return r.base
}

// lookup finds the live object owning the table at this, reporting a
// defect when there is none.
func (r *Registry) lookup(this uintptr, op string) *Object {
	r.mu.Lock()
	obj := r.objects[this]
	r.mu.Unlock()
	if obj == nil {
		r.defect(types.UseAfterRelease{Interface: fmt.Sprintf("host table %#x", this), Op: op})
	}
	return obj
}

func (r *Registry) forget(obj *Object) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.objects[obj.table.Addr()] == obj {
		delete(r.objects, obj.table.Addr())
	}
}

func (r *Registry) live(this uintptr, obj *Object) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.objects[this] == obj
}

func (r *Registry) dispatch(key trampKey, this uintptr, a [ffi.MaxCallbackArgs]uintptr) uintptr {
	r.mu.Lock()
	obj := r.objects[this]
	r.mu.Unlock()
	if obj == nil || obj.desc.Name() != key.family {
		r.defect(types.UseAfterRelease{Interface: key.family, Op: key.slot})
		return 0
	}
	slot := obj.slot(key.word)
	if slot == nil {
		r.defect(types.UseAfterRelease{Interface: key.family, Op: key.slot})
		return 0
	}
	args := append([]uintptr(nil), a[:slot.params]...)

	if !r.onThread(obj, slot) {
		r.mu.Lock()
		exec := r.executors[slot.Affinity]
		r.mu.Unlock()
		if !slot.void || exec == nil {
			r.reject(obj, slot)
			return 0
		}
		err := exec.Submit(func() {
			if !r.live(this, obj) {
				r.logger.Debug().Str("family", key.family).Str("slot", slot.Name).Msg("dropped queued call for released table")
				return
			}
			r.invoke(obj, slot, args)
		})
		if err != nil {
			r.report(fmt.Errorf("%s.%s: %w", key.family, slot.Name, err))
		}
		return 0
	}
	return r.invoke(obj, slot, args)
}

func (r *Registry) onThread(obj *Object, slot *CallbackSlot) bool {
	if slot.Affinity == types.AnyThread || obj.desc.ThreadSafe() || r.probe == nil {
		return true
	}
	return r.probe.On(slot.Affinity)
}

func (r *Registry) reject(obj *Object, slot *CallbackSlot) {
	if r.rejections != nil {
		r.rejections.WithLabelValues(obj.desc.Name()).Inc()
	}
	r.report(types.WrongThread{Op: obj.desc.Name() + "." + slot.Name, Want: slot.Affinity})
}

// invoke runs the closure without holding any lock, so it may call into the
// engine and be re-entered on the same thread.
func (r *Registry) invoke(obj *Object, slot *CallbackSlot, args []uintptr) (ret uintptr) {
	if r.dispatches != nil {
		r.dispatches.WithLabelValues(obj.desc.Name()).Inc()
	}
	defer func() {
		if p := recover(); p != nil {
			ret = 0
			r.report(fmt.Errorf("%s.%s panicked: %v", obj.desc.Name(), slot.Name, p))
		}
	}()
	return slot.fn(args)
}
