package api

import (
	"github.com/gocef/cef/internal/ffi"
	"github.com/gocef/cef/internal/handle"
	"github.com/gocef/cef/types"
)

// ref is what every engine table adapter holds: its binding and one handle.
type ref struct {
	b *Binding
	h *handle.Handle
}

// Release drops this reference. The engine table goes away with the last
// clone; releasing twice does nothing.
func (r *ref) Release() {
	r.h.Release()
}

// Released reports whether this reference was released.
func (r *ref) Released() bool {
	return r.h.Released()
}

func (r *ref) clone() ref {
	return ref{b: r.b, h: r.h.Clone()}
}

func (r *ref) op(slot string) string {
	return r.h.Descriptor().Name() + "." + slot
}

// invoke calls slot once the calling thread is admitted.
func (r *ref) invoke(slot string, args ...uintptr) (uintptr, error) {
	if err := r.b.enter(r.op(slot), r.h.Descriptor().Affinity()); err != nil {
		return 0, err
	}
	return r.h.Invoke(slot, args...), nil
}

func (r *ref) invokePair(slot string, args ...uintptr) (uintptr, uintptr, error) {
	if err := r.b.enter(r.op(slot), r.h.Descriptor().Affinity()); err != nil {
		return 0, 0, err
	}
	r1, r2 := r.h.InvokePair(slot, args...)
	return r1, r2, nil
}

func (r *ref) void(slot string, args ...uintptr) error {
	_, err := r.invoke(slot, args...)
	return err
}

func (r *ref) flag(slot string, args ...uintptr) (bool, error) {
	v, err := r.invoke(slot, args...)
	return truthy(v), err
}

func (r *ref) number(slot string, args ...uintptr) (int, error) {
	v, err := r.invoke(slot, args...)
	return int(int32(v)), err
}

func (r *ref) text(slot string, args ...uintptr) (string, error) {
	v, err := r.invoke(slot, args...)
	if err != nil {
		return "", err
	}
	return r.b.str(v), nil
}

// store calls a setter taking one string.
func (r *ref) store(slot, value string) error {
	var a ffi.Arena
	defer a.Free()
	return r.void(slot, a.String(value))
}

func (r *ref) rect(slot string) (types.Rect, error) {
	r1, r2, err := r.invokePair(slot)
	if err != nil {
		return types.Rect{}, err
	}
	return ffi.RectFromPair(r1, r2), nil
}

// produce calls a slot returning a new table reference and wraps it. gate
// decides whether handles of that kind may be created right now.
func (r *ref) produce(gate func(string, types.AffinityTag) error, family, slot string, args ...uintptr) (*handle.Handle, error) {
	op := r.op(slot)
	if err := gate(op, r.h.Descriptor().Affinity()); err != nil {
		return nil, err
	}
	return r.b.wrap(family, r.h.Invoke(slot, args...), op)
}
