// Package descriptor models the engine's capability tables: which slots a
// table has, in which order, what they take and return, and which thread may
// use them. Descriptors are registered once at startup and never change.
package descriptor

import (
	"runtime"
	"slices"

	"github.com/gocef/cef/internal/ffi"
	"github.com/gocef/cef/types"
)

// Kind is the C type class of a slot parameter or result.
type Kind uint8

const (
	Void Kind = iota
	Int
	Bool
	Int64
	Size
	Pointer
	// String is a const cef_string_t* argument.
	String
	// UserfreeString is a cef_string_userfree_t result the caller frees.
	UserfreeString
	// Table is a pointer to another capability table.
	Table
	// Struct is a small struct passed or returned by value.
	Struct
	// Double is a float or double. Trampolines cannot receive it, so slots
	// using it are never given a host closure.
	Double
)

func (k Kind) String() string {
	switch k {
	case Void:
		return "void"
	case Int:
		return "int"
	case Bool:
		return "bool"
	case Int64:
		return "int64"
	case Size:
		return "size_t"
	case Pointer:
		return "void*"
	case String:
		return "cef_string_t*"
	case UserfreeString:
		return "cef_string_userfree_t"
	case Table:
		return "table*"
	case Struct:
		return "struct"
	case Double:
		return "double"
	default:
		return "invalid"
	}
}

// Convention is the calling convention of a slot.
type Convention uint8

const (
	CDecl Convention = iota
	StdCall
)

// DefaultConvention is CEF_CALLBACK on this platform: stdcall on 32-bit
// Windows, the C convention everywhere else.
func DefaultConvention() Convention {
	if runtime.GOOS == "windows" && runtime.GOARCH == "386" {
		return StdCall
	}
	return CDecl
}

// Signature describes the arguments after the table pointer and the result.
type Signature struct {
	Params []Kind
	Result Kind
}

// Equal reports whether two signatures are identical.
func (s Signature) Equal(o Signature) bool {
	return s.Result == o.Result && slices.Equal(s.Params, o.Params)
}

// Slot is one function pointer entry of a table.
type Slot struct {
	Name string
	Conv Convention
	Sig  Signature
}

// Method builds a slot with the platform calling convention.
func Method(name string, result Kind, params ...Kind) Slot {
	return Slot{Name: name, Conv: DefaultConvention(), Sig: Signature{Params: params, Result: result}}
}

func (s Slot) equal(o Slot) bool {
	return s.Name == o.Name && s.Conv == o.Conv && s.Sig.Equal(o.Sig)
}

// Descriptor is the immutable description of one registered table family.
type Descriptor struct {
	name       string
	version    int
	parent     *Descriptor
	slots      []Slot
	refCounted bool
	affinity   types.AffinityTag
	threadSafe bool

	// words maps every slot name, inherited ones included, to its word
	// index inside the table.
	words map[string]int
	total int
}

func newDescriptor(name string, version int, parent *Descriptor, slots []Slot, o options) *Descriptor {
	d := &Descriptor{
		name:       name,
		version:    version,
		parent:     parent,
		slots:      slices.Clone(slots),
		refCounted: o.refCounted,
		affinity:   o.affinity,
		threadSafe: o.threadSafe,
		words:      make(map[string]int),
	}
	next := d.headerWords()
	if parent != nil {
		for k, v := range parent.words {
			d.words[k] = v
		}
		next = parent.total
	}
	for _, s := range d.slots {
		d.words[s.Name] = next
		next++
	}
	d.total = next
	return d
}

func (d *Descriptor) headerWords() int {
	if d.refCounted {
		return ffi.BaseWords
	}
	// cef_base_scoped_t: size and del
	return 2
}

// Name is the C name of the table, e.g. cef_browser_t.
func (d *Descriptor) Name() string { return d.name }

// Version is the ABI version the slot layout was written against.
func (d *Descriptor) Version() int { return d.version }

// Parent is the table this one extends, or nil.
func (d *Descriptor) Parent() *Descriptor { return d.parent }

// RefCounted reports whether the table starts with cef_base_ref_counted_t.
func (d *Descriptor) RefCounted() bool { return d.refCounted }

// Affinity is the thread the table's methods and callbacks belong to.
func (d *Descriptor) Affinity() types.AffinityTag { return d.affinity }

// ThreadSafe reports whether instances may be shared across threads.
func (d *Descriptor) ThreadSafe() bool { return d.threadSafe }

// Slots returns the table's own slots, without inherited ones.
func (d *Descriptor) Slots() []Slot { return slices.Clone(d.slots) }

// Words is the size of the table in words, header and inherited slots
// included.
func (d *Descriptor) Words() int { return d.total }

// Word returns the word index of a slot, searching inherited slots too.
func (d *Descriptor) Word(slot string) (int, bool) {
	w, ok := d.words[slot]
	return w, ok
}

// Slot returns the named slot, searching inherited slots too.
func (d *Descriptor) Slot(name string) (Slot, bool) {
	for cur := d; cur != nil; cur = cur.parent {
		for _, s := range cur.slots {
			if s.Name == name {
				return s, true
			}
		}
	}
	return Slot{}, false
}

// Is reports whether d is the family name or extends it.
func (d *Descriptor) Is(name string) bool {
	for cur := d; cur != nil; cur = cur.parent {
		if cur.name == name {
			return true
		}
	}
	return false
}

func (d *Descriptor) sameDefinition(version int, parent *Descriptor, slots []Slot, o options) bool {
	if d.version != version || d.parent != parent || len(d.slots) != len(slots) {
		return false
	}
	if d.refCounted != o.refCounted || d.affinity != o.affinity || d.threadSafe != o.threadSafe {
		return false
	}
	for i := range slots {
		if !d.slots[i].equal(slots[i]) {
			return false
		}
	}
	return true
}

// Option adjusts a registration.
type Option func(*options)

type options struct {
	parent     string
	refCounted bool
	affinity   types.AffinityTag
	threadSafe bool
}

func defaultOptions() options {
	return options{refCounted: true, affinity: types.AnyThread}
}

// Extends makes the table inherit all slots of parent, which must already be
// registered.
func Extends(parent string) Option {
	return func(o *options) { o.parent = parent }
}

// Scoped marks a table without reference counting.
func Scoped() Option {
	return func(o *options) { o.refCounted = false }
}

// Affine binds the table to one thread.
func Affine(tag types.AffinityTag) Option {
	return func(o *options) { o.affinity = tag }
}

// ThreadSafe lets instances be shared across threads.
func ThreadSafe() Option {
	return func(o *options) { o.threadSafe = true }
}
