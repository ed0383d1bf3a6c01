package affinity

import (
	"runtime"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocef/cef/internal/ffi"
	"github.com/gocef/cef/internal/testlib"
	"github.com/gocef/cef/types"
)

func onlyOn(tags ...types.AffinityTag) Probe {
	return ProbeFunc(func(tag types.AffinityTag) bool {
		for _, t := range tags {
			if t == tag {
				return true
			}
		}
		return false
	})
}

func TestGuardCheck(t *testing.T) {
	g := NewGuard(zerolog.Nop())
	rejections := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "rejections"}, []string{"op"})
	g.Instrument(rejections)

	op := Op{Name: "window.show", Tag: types.UIThread}
	require.NoError(t, g.Check(op, onlyOn(types.UIThread)))

	err := g.Check(op, onlyOn(types.IOThread))
	assert.Equal(t, types.WrongThread{Op: "window.show", Want: types.UIThread}, err)
	assert.EqualError(t, err, "window.show must run on the ui thread")

	// no probe, no way to tell: refuse
	require.Error(t, g.Check(op, nil))
	assert.InDelta(t, 2, testutil.ToFloat64(rejections.WithLabelValues("window.show")), 0)

	require.NoError(t, g.Check(Op{Name: "browser.reload", Tag: types.AnyThread}, nil))
}

func TestEngineProbe(t *testing.T) {
	e := testlib.New()
	defer e.Close()
	var asked []uintptr
	e.Export("cef_currently_on", func(args ...uintptr) uintptr {
		asked = append(asked, args[0])
		if types.ThreadID(args[0]) == types.TIDRenderer {
			return 1
		}
		return 0
	})
	sym, err := ffi.ResolveSymbols(e)
	require.NoError(t, err)

	p := NewEngineProbe(e, sym)
	assert.True(t, p.On(types.RendererThread))
	assert.False(t, p.On(types.UIThread))
	assert.True(t, p.On(types.AnyThread))
	assert.Equal(t, []uintptr{uintptr(types.TIDRenderer), uintptr(types.TIDUI)}, asked)
}

func TestMainThreadProbe(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	p := NewMainThreadProbe(onlyOn(types.IOThread))
	assert.True(t, p.On(types.IOThread))
	assert.False(t, p.On(types.RendererThread))
	assert.True(t, p.On(types.MainThread))
	if _, ok := osThreadID(); !ok {
		t.Skip("no thread ids on this platform")
	}
	assert.True(t, p.On(types.UIThread))

	// with a multi-threaded loop the engine owns the ui thread
	mt := p.WithLoop(false)
	assert.False(t, mt.On(types.UIThread))
	assert.True(t, mt.On(types.MainThread))

	other := make(chan [2]bool)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		other <- [2]bool{p.On(types.UIThread), p.On(types.MainThread)}
	}()
	assert.Equal(t, [2]bool{false, false}, <-other)
}

func TestSandboxPerPlatform(t *testing.T) {
	e := testlib.New()
	defer e.Close()
	e.Export("cef_sandbox_initialize", func(...uintptr) uintptr { return 0xbeef })
	e.Export("cef_sandbox_info_create", func(...uintptr) uintptr { return 0xcafe })
	sym, err := ffi.ResolveSymbols(e)
	require.NoError(t, err)

	s, err := startSandbox(e, sym, []string{"app"}, false, "darwin")
	require.NoError(t, err)
	assert.Zero(t, s.Info())
	s.Close()
	assert.Equal(t, 1, e.Calls("cef_sandbox_initialize"))
	assert.Equal(t, 1, e.Calls("cef_sandbox_destroy"))

	s, err = startSandbox(e, sym, nil, false, "windows")
	require.NoError(t, err)
	assert.EqualValues(t, 0xcafe, s.Info())
	s.Close()
	assert.Equal(t, 1, e.Calls("cef_sandbox_info_destroy"))

	e.ResetCalls()
	s, err = startSandbox(e, sym, nil, false, "linux")
	require.NoError(t, err)
	s.Close()
	s, err = startSandbox(e, sym, nil, true, "darwin")
	require.NoError(t, err)
	s.Close()
	assert.Zero(t, e.TotalCalls())
}

func TestSandboxMissingSymbol(t *testing.T) {
	e := testlib.New()
	defer e.Close()
	e.Unexport("cef_sandbox_initialize")
	sym, err := ffi.ResolveSymbols(e)
	require.NoError(t, err)
	_, err = startSandbox(e, sym, nil, false, "darwin")
	require.ErrorContains(t, err, "cef_sandbox_initialize")
}
