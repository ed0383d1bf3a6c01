package descriptor

import (
	"fmt"
	"sync"

	"github.com/google/btree"

	"github.com/gocef/cef/types"
)

// VersionSource reports the ABI version the loaded engine was built with for
// a table family. ok is false when the engine does not report one, in which
// case the compiled version is trusted.
type VersionSource interface {
	InterfaceVersion(name string) (version int, ok bool)
}

// VersionFunc adapts a function to VersionSource.
type VersionFunc func(name string) (int, bool)

func (f VersionFunc) InterfaceVersion(name string) (int, bool) { return f(name) }

// FixedVersion reports the same version for every family, e.g. the
// CEF_API_VERSION of the loaded build.
func FixedVersion(version int) VersionSource {
	return VersionFunc(func(string) (int, bool) { return version, true })
}

const btreeDegree = 8

func byName(a, b *Descriptor) bool { return a.name < b.name }

// Registry holds every table family the binding knows. Families are added
// once and never removed, so a *Descriptor stays valid for the process.
type Registry struct {
	source VersionSource

	mu    sync.RWMutex
	items *btree.BTreeG[*Descriptor]
}

// NewRegistry creates an empty registry checking versions against source.
// A nil source trusts the compiled versions.
func NewRegistry(source VersionSource) *Registry {
	return &Registry{
		source: source,
		items:  btree.NewG(btreeDegree, byName),
	}
}

// Register adds a family. Registering the identical definition again returns
// the existing descriptor. A different version for the same name, or a
// runtime version other than version, fails with types.VersionMismatch.
func (r *Registry) Register(name string, version int, slots []Slot, opts ...Option) (*Descriptor, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if r.source != nil {
		if runtime, ok := r.source.InterfaceVersion(name); ok && runtime != version {
			return nil, types.VersionMismatch{Interface: name, Compiled: version, Runtime: runtime}
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var parent *Descriptor
	if o.parent != "" {
		p, ok := r.items.Get(&Descriptor{name: o.parent})
		if !ok {
			return nil, types.UnknownInterface{Name: o.parent}
		}
		parent = p
	}

	if existing, ok := r.items.Get(&Descriptor{name: name}); ok {
		if existing.version != version {
			return nil, types.VersionMismatch{Interface: name, Compiled: version, Runtime: existing.version}
		}
		if !existing.sameDefinition(version, parent, slots, o) {
			return nil, fmt.Errorf("conflicting definition for %s at version %d", name, version)
		}
		return existing, nil
	}

	seen := make(map[string]struct{}, len(slots))
	for _, s := range slots {
		if s.Name == "" {
			return nil, fmt.Errorf("%s: slot without a name", name)
		}
		if _, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("%s: duplicate slot %s", name, s.Name)
		}
		if parent != nil {
			if _, inherited := parent.words[s.Name]; inherited {
				return nil, fmt.Errorf("%s: slot %s shadows %s", name, s.Name, parent.name)
			}
		}
		seen[s.Name] = struct{}{}
	}

	d := newDescriptor(name, version, parent, slots, o)
	r.items.ReplaceOrInsert(d)
	return d, nil
}

// Lookup returns the registered family or types.UnknownInterface.
func (r *Registry) Lookup(name string) (*Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.items.Get(&Descriptor{name: name})
	if !ok {
		return nil, types.UnknownInterface{Name: name}
	}
	return d, nil
}

// MustLookup is Lookup for families the binding itself registered.
func (r *Registry) MustLookup(name string) *Descriptor {
	d, err := r.Lookup(name)
	if err != nil {
		panic(err)
	}
	return d
}

// List returns every family in name order.
func (r *Registry) List() []*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Descriptor, 0, r.items.Len())
	r.items.Ascend(func(d *Descriptor) bool {
		out = append(out, d)
		return true
	})
	return out
}

// Len is the number of registered families.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.items.Len()
}

// Definition is a family as written down in the catalog, before
// registration.
type Definition struct {
	Name    string
	Version int
	Slots   []Slot
	Options []Option
}

// RegisterAll registers defs in order, so parents must precede children.
// It stops at the first failure.
func (r *Registry) RegisterAll(defs []Definition) error {
	for _, def := range defs {
		if _, err := r.Register(def.Name, def.Version, def.Slots, def.Options...); err != nil {
			return err
		}
	}
	return nil
}
