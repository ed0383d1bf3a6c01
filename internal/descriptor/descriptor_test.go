package descriptor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocef/cef/internal/ffi"
	"github.com/gocef/cef/types"
)

var widgetSlots = []Slot{
	Method("get_name", UserfreeString),
	Method("set_size", Void, Int, Int),
}

func TestRegisterIdempotent(t *testing.T) {
	r := NewRegistry(nil)
	d1, err := r.Register("cef_widget_t", 7, widgetSlots, ThreadSafe())
	require.NoError(t, err)
	d2, err := r.Register("cef_widget_t", 7, widgetSlots, ThreadSafe())
	require.NoError(t, err)
	assert.Same(t, d1, d2)
	assert.Equal(t, 1, r.Len())
}

func TestRegisterVersionMismatch(t *testing.T) {
	r := NewRegistry(nil)
	_, err := r.Register("cef_widget_t", 7, widgetSlots)
	require.NoError(t, err)

	_, err = r.Register("cef_widget_t", 8, widgetSlots)
	var mismatch types.VersionMismatch
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "cef_widget_t", mismatch.Interface)
	assert.Equal(t, 8, mismatch.Compiled)
	assert.Equal(t, 7, mismatch.Runtime)
	assert.True(t, types.IsDefect(err))

	// the original stays usable
	d, err := r.Lookup("cef_widget_t")
	require.NoError(t, err)
	assert.Equal(t, 7, d.Version())
}

func TestRegisterRuntimeVersion(t *testing.T) {
	r := NewRegistry(VersionFunc(func(name string) (int, bool) {
		if name == "cef_widget_t" {
			return 9, true
		}
		return 0, false
	}))
	_, err := r.Register("cef_widget_t", 7, widgetSlots)
	require.ErrorAs(t, err, &types.VersionMismatch{})
	assert.EqualError(t, err, "abi version mismatch for cef_widget_t: compiled 7, runtime 9")
	assert.Equal(t, 0, r.Len())

	// families the engine reports nothing for are trusted
	_, err = r.Register("cef_gadget_t", 7, nil)
	require.NoError(t, err)
}

func TestRegisterConflict(t *testing.T) {
	r := NewRegistry(FixedVersion(7))
	_, err := r.Register("cef_widget_t", 7, widgetSlots)
	require.NoError(t, err)

	_, err = r.Register("cef_widget_t", 7, widgetSlots[:1])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conflicting definition")

	_, err = r.Register("cef_widget_t", 7, widgetSlots, Affine(types.UIThread))
	require.Error(t, err)
}

func TestRegisterRejectsBadSlots(t *testing.T) {
	r := NewRegistry(nil)
	_, err := r.Register("cef_dup_t", 1, []Slot{Method("a", Void), Method("a", Int)})
	require.ErrorContains(t, err, "duplicate slot a")

	_, err = r.Register("cef_anon_t", 1, []Slot{{}})
	require.ErrorContains(t, err, "slot without a name")

	_, err = r.Register("cef_child_t", 1, nil, Extends("cef_missing_t"))
	require.ErrorAs(t, err, &types.UnknownInterface{})
}

func TestLookupUnknown(t *testing.T) {
	r := NewRegistry(nil)
	_, err := r.Lookup("cef_nothing_t")
	var unknown types.UnknownInterface
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "cef_nothing_t", unknown.Name)
	assert.False(t, types.IsDefect(err))

	assert.Panics(t, func() { r.MustLookup("cef_nothing_t") })
}

func TestWordOffsets(t *testing.T) {
	r := NewRegistry(nil)
	base, err := r.Register("cef_base_widget_t", 1, []Slot{Method("is_valid", Bool)})
	require.NoError(t, err)
	child, err := r.Register("cef_fancy_widget_t", 1, widgetSlots, Extends("cef_base_widget_t"))
	require.NoError(t, err)

	w, ok := base.Word("is_valid")
	require.True(t, ok)
	assert.Equal(t, ffi.BaseWords, w)
	assert.Equal(t, ffi.BaseWords+1, base.Words())

	w, ok = child.Word("is_valid")
	require.True(t, ok)
	assert.Equal(t, ffi.BaseWords, w)
	w, ok = child.Word("set_size")
	require.True(t, ok)
	assert.Equal(t, ffi.BaseWords+2, w)
	assert.Equal(t, ffi.BaseWords+3, child.Words())

	_, ok = child.Word("missing")
	assert.False(t, ok)

	slot, ok := child.Slot("is_valid")
	require.True(t, ok)
	assert.Equal(t, Bool, slot.Sig.Result)

	assert.True(t, child.Is("cef_base_widget_t"))
	assert.False(t, base.Is("cef_fancy_widget_t"))
	assert.Same(t, base, child.Parent())

	_, err = r.Register("cef_bad_widget_t", 1, []Slot{Method("is_valid", Bool)}, Extends("cef_base_widget_t"))
	require.ErrorContains(t, err, "shadows")
}

func TestScopedHeader(t *testing.T) {
	r := NewRegistry(nil)
	d, err := r.Register("cef_scoped_widget_t", 1, widgetSlots, Scoped())
	require.NoError(t, err)
	assert.False(t, d.RefCounted())
	w, _ := d.Word("get_name")
	assert.Equal(t, 2, w)
}

func TestDescriptorImmutable(t *testing.T) {
	r := NewRegistry(nil)
	slots := []Slot{Method("get_name", UserfreeString)}
	d, err := r.Register("cef_widget_t", 1, slots)
	require.NoError(t, err)

	slots[0].Name = "changed"
	got := d.Slots()
	got[0].Name = "also changed"
	assert.Equal(t, "get_name", d.Slots()[0].Name)
}

func TestListOrdered(t *testing.T) {
	r := NewRegistry(nil)
	for _, name := range []string{"cef_c_t", "cef_a_t", "cef_b_t"} {
		_, err := r.Register(name, 1, nil)
		require.NoError(t, err)
	}
	var names []string
	for _, d := range r.List() {
		names = append(names, d.Name())
	}
	assert.Equal(t, []string{"cef_a_t", "cef_b_t", "cef_c_t"}, names)
}

func TestCatalog(t *testing.T) {
	r := NewRegistry(FixedVersion(ABIVersion))
	require.NoError(t, r.RegisterAll(Catalog()))
	// registering twice is a no-op
	require.NoError(t, r.RegisterAll(Catalog()))
	assert.Equal(t, len(Catalog()), r.Len())

	window := r.MustLookup(Window)
	assert.True(t, window.Is(Panel))
	assert.True(t, window.Is(View))
	assert.Equal(t, types.UIThread, window.Affinity())
	assert.False(t, window.ThreadSafe())

	show, ok := window.Word("show")
	require.True(t, ok)
	panelEnd := r.MustLookup(Panel).Words()
	assert.Equal(t, panelEnd, show)

	browser := r.MustLookup(Browser)
	assert.True(t, browser.ThreadSafe())
	assert.Equal(t, types.AnyThread, browser.Affinity())

	assert.Equal(t, types.RendererThread, r.MustLookup(V8Context).Affinity())

	handler := r.MustLookup(V8Handler)
	exec, ok := handler.Slot("execute")
	require.True(t, ok)
	assert.LessOrEqual(t, len(exec.Sig.Params), ffi.MaxCallbackArgs)
}

func TestCatalogAgainstOtherRuntime(t *testing.T) {
	r := NewRegistry(FixedVersion(ABIVersion + 1))
	err := r.RegisterAll(Catalog())
	require.ErrorAs(t, err, &types.VersionMismatch{})
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "cef_string_t*", String.String())
	assert.Equal(t, "double", Double.String())
	assert.Equal(t, "invalid", Kind(200).String())
}
