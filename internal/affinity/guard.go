// Package affinity enforces the thread rules of the engine. Operations are
// tagged with the thread they must run on and checked before anything is
// forwarded; a violation is refused, never retried.
package affinity

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/gocef/cef/internal/ffi"
	"github.com/gocef/cef/types"
)

// Probe answers whether the calling thread is the one a tag names.
type Probe interface {
	On(tag types.AffinityTag) bool
}

// ProbeFunc adapts a function to Probe.
type ProbeFunc func(tag types.AffinityTag) bool

func (f ProbeFunc) On(tag types.AffinityTag) bool { return f(tag) }

// Op is an operation and the thread it belongs to.
type Op struct {
	Name string
	Tag  types.AffinityTag
}

// Guard checks operations against a probe.
type Guard struct {
	logger     zerolog.Logger
	rejections *prometheus.CounterVec
}

func NewGuard(logger zerolog.Logger) *Guard {
	return &Guard{logger: logger}
}

// Instrument counts refused operations in c, labelled by operation name.
func (g *Guard) Instrument(c *prometheus.CounterVec) {
	g.rejections = c
}

// Check returns types.WrongThread unless op may run on the calling thread.
// Without a probe the thread cannot be known and the check fails closed.
func (g *Guard) Check(op Op, probe Probe) error {
	if op.Tag == types.AnyThread {
		return nil
	}
	if probe != nil && probe.On(op.Tag) {
		return nil
	}
	g.logger.Debug().Str("op", op.Name).Stringer("want", op.Tag).Msg("refused call on wrong thread")
	if g.rejections != nil {
		g.rejections.WithLabelValues(op.Name).Inc()
	}
	return types.WrongThread{Op: op.Name, Want: op.Tag}
}

// EngineProbe asks the engine through cef_currently_on. It is only
// meaningful once the engine is initialized.
type EngineProbe struct {
	lib ffi.Library
	fn  uintptr
}

func NewEngineProbe(lib ffi.Library, sym *ffi.Symbols) *EngineProbe {
	return &EngineProbe{lib: lib, fn: sym.CurrentlyOn}
}

func (p *EngineProbe) On(tag types.AffinityTag) bool {
	if tag == types.AnyThread {
		return true
	}
	id, ok := tag.ThreadID()
	if !ok {
		return false
	}
	return p.lib.Call(p.fn, uintptr(id)) != 0
}

// MainThreadProbe recognizes the thread it was created on as the main
// thread, and as the UI thread too while the engine runs its message loop
// there. It asks next for every other tag. Where the platform has no thread
// ids the main thread is taken on trust and the UI tag goes to next.
type MainThreadProbe struct {
	main   int
	ok     bool
	loopUI bool
	next   Probe
}

// NewMainThreadProbe must be called from the locked main thread.
func NewMainThreadProbe(next Probe) *MainThreadProbe {
	id, ok := osThreadID()
	return &MainThreadProbe{main: id, ok: ok, loopUI: true, next: next}
}

// WithLoop returns a copy for the given message loop mode: with
// onMain false the UI thread is an engine thread and next decides.
func (p *MainThreadProbe) WithLoop(onMain bool) *MainThreadProbe {
	c := *p
	c.loopUI = onMain
	return &c
}

func (p *MainThreadProbe) On(tag types.AffinityTag) bool {
	switch {
	case tag == types.AnyThread:
		return true
	case tag == types.MainThread:
		return !p.ok || p.onMain()
	case tag == types.UIThread && p.ok && p.loopUI:
		return p.onMain()
	case p.next == nil:
		return false
	}
	return p.next.On(tag)
}

func (p *MainThreadProbe) onMain() bool {
	id, _ := osThreadID()
	return id == p.main
}
