package api

import (
	"github.com/gocef/cef/internal/descriptor"
	"github.com/gocef/cef/internal/ffi"
	"github.com/gocef/cef/internal/handle"
	"github.com/gocef/cef/internal/trampoline"
	"github.com/gocef/cef/types"
)

// Viewer is anything that is a view: View, Panel, Window, BrowserView.
type Viewer interface {
	view() *View
}

// View is the base of the views toolkit. All view operations run on the UI
// thread.
type View struct{ ref }

// Panel is a view holding child views arranged by a layout.
type Panel struct{ View }

// Window is a top-level window.
type Window struct{ Panel }

// BrowserView is a view hosting a browser.
type BrowserView struct{ View }

// BoxLayout arranges children in a row or column.
type BoxLayout struct{ ref }

// FillLayout makes the single child fill the panel.
type FillLayout struct{ ref }

func (v *View) view() *View { return v }

func (b *Binding) viewOf(h *handle.Handle) *View {
	if h == nil {
		return nil
	}
	return &View{ref{b: b, h: h}}
}

func (b *Binding) window(h *handle.Handle) *Window {
	if h == nil {
		return nil
	}
	return &Window{Panel{View{ref{b: b, h: h}}}}
}

func (b *Binding) browserView(h *handle.Handle) *BrowserView {
	if h == nil {
		return nil
	}
	return &BrowserView{View{ref{b: b, h: h}}}
}

// WindowHandler holds the callbacks of a top-level window. Every field is
// optional.
type WindowHandler struct {
	OnWindowCreated           func(w *Window)
	OnWindowClosing           func(w *Window)
	OnWindowDestroyed         func(w *Window)
	OnWindowActivationChanged func(w *Window, active bool)
	OnWindowBoundsChanged     func(w *Window, bounds types.Rect)
	IsFrameless               func(w *Window) bool
	CanResize                 func(w *Window) bool
	CanMaximize               func(w *Window) bool
	CanMinimize               func(w *Window) bool
	CanClose                  func(w *Window) bool
	OnAccelerator             func(w *Window, commandID int) bool

	OnChildViewChanged func(v *View, added bool, child *View)
	OnFocus            func(v *View)
	OnBlur             func(v *View)
}

// BrowserViewHandler holds the callbacks of a browser view.
type BrowserViewHandler struct {
	OnBrowserCreated   func(bv *BrowserView, browser *Browser)
	OnBrowserDestroyed func(bv *BrowserView, browser *Browser)
}

// CreateTopLevelWindow creates a window driven by h. The window shows up
// once Show is called, typically from OnWindowCreated.
func (b *Binding) CreateTopLevelWindow(h WindowHandler) (*Window, error) {
	const op = "cef_window_create_top_level"
	if err := b.create(op, types.UIThread); err != nil {
		return nil, err
	}
	delegate, err := b.callbacks.Install(b.desc(descriptor.WindowDelegate), b.windowClosures(h))
	if err != nil {
		return nil, err
	}
	addr := b.lib.Call(b.sym.WindowCreateTopLevel, delegate.Pass())
	delegate.Release()
	hw, err := b.wrap(descriptor.Window, addr, op)
	if err != nil {
		return nil, err
	}
	return b.window(hw), nil
}

// CreateBrowserView creates a view hosting a new browser loading url. The
// browser itself is created once the view is added to a window.
func (b *Binding) CreateBrowserView(client *Client, url string, settings types.BrowserSettings, h *BrowserViewHandler) (*BrowserView, error) {
	const op = "cef_browser_view_create"
	if err := b.create(op, types.UIThread); err != nil {
		return nil, err
	}
	var delegate *trampoline.Object
	if h != nil {
		var err error
		delegate, err = b.callbacks.Install(b.desc(descriptor.BrowserViewDelegate), b.browserViewClosures(*h))
		if err != nil {
			return nil, err
		}
	}
	var delegateAddr uintptr
	if delegate != nil {
		delegateAddr = delegate.Pass()
	}

	var a ffi.Arena
	defer a.Free()
	addr := b.lib.Call(b.sym.BrowserViewCreate,
		client.pass(),
		a.String(url),
		ffi.EncodeBrowserSettings(&a, settings),
		0, 0,
		delegateAddr)
	releaseObjects(delegate)
	hv, err := b.wrap(descriptor.BrowserView, addr, op)
	if err != nil {
		return nil, err
	}
	return b.browserView(hv), nil
}

// BrowserViewForBrowser returns the view hosting br, a NullPointer error
// when br is not hosted in a view.
func (b *Binding) BrowserViewForBrowser(br *Browser) (*BrowserView, error) {
	const op = "cef_browser_view_get_for_browser"
	if err := b.create(op, types.UIThread); err != nil {
		return nil, err
	}
	hv, err := b.wrap(descriptor.BrowserView, b.lib.Call(b.sym.BrowserViewForBrowser, br.h.Pass()), op)
	if err != nil {
		return nil, err
	}
	return b.browserView(hv), nil
}

func (v *View) Clone() *View {
	return &View{v.clone()}
}

func (v *View) IsValid() (bool, error) {
	return v.flag("is_valid")
}

func (v *View) IsAttached() (bool, error) {
	return v.flag("is_attached")
}

func (v *View) TypeString() (string, error) {
	return v.text("get_type_string")
}

func (v *View) ID() (int, error) {
	return v.number("get_id")
}

func (v *View) SetID(id int) error {
	return v.void("set_id", intWord(id))
}

func (v *View) Bounds() (types.Rect, error) {
	return v.rect("get_bounds")
}

func (v *View) BoundsInScreen() (types.Rect, error) {
	return v.rect("get_bounds_in_screen")
}

func (v *View) SetBounds(r types.Rect) error {
	var a ffi.Arena
	defer a.Free()
	return v.void("set_bounds", ffi.EncodeRect(&a, r))
}

func (v *View) Size() (types.Size, error) {
	r1, _, err := v.invokePair("get_size")
	return ffi.SizeFromWord(r1), err
}

func (v *View) SetSize(s types.Size) error {
	var a ffi.Arena
	defer a.Free()
	return v.void("set_size", ffi.EncodeSize(&a, s))
}

func (v *View) PreferredSize() (types.Size, error) {
	r1, _, err := v.invokePair("get_preferred_size")
	return ffi.SizeFromWord(r1), err
}

func (v *View) SetVisible(visible bool) error {
	return v.void("set_visible", boolWord(visible))
}

func (v *View) IsVisible() (bool, error) {
	return v.flag("is_visible")
}

func (v *View) SetEnabled(enabled bool) error {
	return v.void("set_enabled", boolWord(enabled))
}

func (v *View) IsEnabled() (bool, error) {
	return v.flag("is_enabled")
}

func (v *View) RequestFocus() error {
	return v.void("request_focus")
}

func (v *View) HasFocus() (bool, error) {
	return v.flag("has_focus")
}

// SetBackgroundColor takes an ARGB color.
func (v *View) SetBackgroundColor(argb uint32) error {
	return v.void("set_background_color", uintptr(argb))
}

func (v *View) BackgroundColor() (uint32, error) {
	c, err := v.invoke("get_background_color")
	return uint32(c), err
}

// Window is the window the view is attached to.
func (v *View) Window() (*Window, error) {
	h, err := v.produce(v.b.create, descriptor.Window, "get_window")
	if err != nil {
		return nil, err
	}
	return v.b.window(h), nil
}

func (v *View) ParentView() (*View, error) {
	h, err := v.produce(v.b.create, descriptor.View, "get_parent_view")
	if err != nil {
		return nil, err
	}
	return v.b.viewOf(h), nil
}

// AsBrowserView is a NullPointer error unless the view is a browser view.
func (v *View) AsBrowserView() (*BrowserView, error) {
	h, err := v.produce(v.b.create, descriptor.BrowserView, "as_browser_view")
	if err != nil {
		return nil, err
	}
	return v.b.browserView(h), nil
}

// AsPanel is a NullPointer error unless the view is a panel.
func (v *View) AsPanel() (*Panel, error) {
	h, err := v.produce(v.b.create, descriptor.Panel, "as_panel")
	if err != nil {
		return nil, err
	}
	return &Panel{View{ref{b: v.b, h: h}}}, nil
}

func (p *Panel) Clone() *Panel {
	return &Panel{View{p.clone()}}
}

// AsWindow is a NullPointer error unless the panel is a window.
func (p *Panel) AsWindow() (*Window, error) {
	h, err := p.produce(p.b.create, descriptor.Window, "as_window")
	if err != nil {
		return nil, err
	}
	return p.b.window(h), nil
}

func (p *Panel) SetToFillLayout() (*FillLayout, error) {
	h, err := p.produce(p.b.create, descriptor.FillLayout, "set_to_fill_layout")
	if err != nil {
		return nil, err
	}
	return &FillLayout{ref{b: p.b, h: h}}, nil
}

func (p *Panel) SetToBoxLayout(settings types.BoxLayoutSettings) (*BoxLayout, error) {
	var a ffi.Arena
	defer a.Free()
	h, err := p.produce(p.b.create, descriptor.BoxLayout, "set_to_box_layout", ffi.EncodeBoxLayoutSettings(&a, settings))
	if err != nil {
		return nil, err
	}
	return &BoxLayout{ref{b: p.b, h: h}}, nil
}

// Layout lays the children out again.
func (p *Panel) Layout() error {
	return p.void("layout")
}

func (p *Panel) AddChildView(child Viewer) error {
	if err := p.b.enter(p.op("add_child_view"), p.h.Descriptor().Affinity()); err != nil {
		return err
	}
	p.h.Invoke("add_child_view", child.view().h.Pass())
	return nil
}

func (p *Panel) AddChildViewAt(child Viewer, index int) error {
	if err := p.b.enter(p.op("add_child_view_at"), p.h.Descriptor().Affinity()); err != nil {
		return err
	}
	p.h.Invoke("add_child_view_at", child.view().h.Pass(), intWord(index))
	return nil
}

func (p *Panel) RemoveChildView(child Viewer) error {
	if err := p.b.enter(p.op("remove_child_view"), p.h.Descriptor().Affinity()); err != nil {
		return err
	}
	p.h.Invoke("remove_child_view", child.view().h.Pass())
	return nil
}

func (p *Panel) RemoveAllChildViews() error {
	return p.void("remove_all_child_views")
}

func (p *Panel) ChildViewCount() (int, error) {
	n, err := p.invoke("get_child_view_count")
	return int(n), err
}

func (p *Panel) ChildViewAt(index int) (*View, error) {
	h, err := p.produce(p.b.create, descriptor.View, "get_child_view_at", intWord(index))
	if err != nil {
		return nil, err
	}
	return p.b.viewOf(h), nil
}

func (w *Window) Clone() *Window {
	return &Window{Panel{View{w.clone()}}}
}

func (w *Window) Show() error                { return w.void("show") }
func (w *Window) Hide() error                { return w.void("hide") }
func (w *Window) Activate() error            { return w.void("activate") }
func (w *Window) Deactivate() error          { return w.void("deactivate") }
func (w *Window) BringToTop() error          { return w.void("bring_to_top") }
func (w *Window) Maximize() error            { return w.void("maximize") }
func (w *Window) Minimize() error            { return w.void("minimize") }
func (w *Window) Restore() error             { return w.void("restore") }
func (w *Window) IsActive() (bool, error)    { return w.flag("is_active") }
func (w *Window) IsMaximized() (bool, error) { return w.flag("is_maximized") }
func (w *Window) IsMinimized() (bool, error) { return w.flag("is_minimized") }

// Close closes the window unless the delegate's CanClose objects.
func (w *Window) Close() error {
	return w.void("close")
}

func (w *Window) IsClosed() (bool, error) {
	return w.flag("is_closed")
}

// CenterWindow sizes the window and centers it on its display.
func (w *Window) CenterWindow(size types.Size) error {
	var a ffi.Arena
	defer a.Free()
	return w.void("center_window", ffi.EncodeSize(&a, size))
}

func (w *Window) SetAlwaysOnTop(onTop bool) error {
	return w.void("set_always_on_top", boolWord(onTop))
}

func (w *Window) SetFullscreen(fullscreen bool) error {
	return w.void("set_fullscreen", boolWord(fullscreen))
}

func (w *Window) IsFullscreen() (bool, error) {
	return w.flag("is_fullscreen")
}

func (w *Window) SetTitle(title string) error {
	var a ffi.Arena
	defer a.Free()
	return w.void("set_title", a.String(title))
}

func (w *Window) Title() (string, error) {
	return w.text("get_title")
}

func (w *Window) ClientAreaBoundsInScreen() (types.Rect, error) {
	return w.rect("get_client_area_bounds_in_screen")
}

// Display is the display the window is mostly on.
func (w *Window) Display() (*Display, error) {
	h, err := w.produce(w.b.create, descriptor.Display, "get_display")
	if err != nil {
		return nil, err
	}
	return &Display{ref{b: w.b, h: h}}, nil
}

func (bv *BrowserView) Clone() *BrowserView {
	return &BrowserView{View{bv.clone()}}
}

// Browser is the hosted browser, a NullPointer error before it exists.
func (bv *BrowserView) Browser() (*Browser, error) {
	h, err := bv.produce(bv.b.create, descriptor.Browser, "get_browser")
	if err != nil {
		return nil, err
	}
	return bv.b.browser(h), nil
}

// SetPreferAccelerators lets keyboard shortcuts reach the window first.
func (bv *BrowserView) SetPreferAccelerators(prefer bool) error {
	return bv.void("set_prefer_accelerators", boolWord(prefer))
}

func (l *BoxLayout) Clone() *BoxLayout {
	return &BoxLayout{l.clone()}
}

// SetFlexForView sets how much of the free space child gets.
func (l *BoxLayout) SetFlexForView(child Viewer, flex int) error {
	if err := l.b.enter(l.op("set_flex_for_view"), l.h.Descriptor().Affinity()); err != nil {
		return err
	}
	l.h.Invoke("set_flex_for_view", child.view().h.Pass(), intWord(flex))
	return nil
}

func (l *BoxLayout) ClearFlexForView(child Viewer) error {
	if err := l.b.enter(l.op("clear_flex_for_view"), l.h.Descriptor().Affinity()); err != nil {
		return err
	}
	l.h.Invoke("clear_flex_for_view", child.view().h.Pass())
	return nil
}

func (l *FillLayout) IsValid() (bool, error) {
	return l.flag("is_valid")
}

func (b *Binding) windowClosures(h WindowHandler) map[string]trampoline.Func {
	closures := make(map[string]trampoline.Func)
	withWindow := func(fn func(*Window, []uintptr) uintptr) trampoline.Func {
		return func(args []uintptr) uintptr {
			hw := b.adopt(descriptor.Window, args[0])
			defer release(hw)
			return fn(b.window(hw), args[1:])
		}
	}
	notify := func(fn func(*Window)) trampoline.Func {
		return withWindow(func(w *Window, _ []uintptr) uintptr {
			fn(w)
			return 0
		})
	}
	ask := func(fn func(*Window) bool) trampoline.Func {
		return withWindow(func(w *Window, _ []uintptr) uintptr {
			return boolWord(fn(w))
		})
	}

	for slot, fn := range map[string]func(*Window){
		"on_window_created":   h.OnWindowCreated,
		"on_window_closing":   h.OnWindowClosing,
		"on_window_destroyed": h.OnWindowDestroyed,
	} {
		if fn != nil {
			closures[slot] = notify(fn)
		}
	}
	for slot, fn := range map[string]func(*Window) bool{
		"is_frameless": h.IsFrameless,
		"can_resize":   h.CanResize,
		"can_maximize": h.CanMaximize,
		"can_minimize": h.CanMinimize,
		"can_close":    h.CanClose,
	} {
		if fn != nil {
			closures[slot] = ask(fn)
		}
	}
	if fn := h.OnWindowActivationChanged; fn != nil {
		closures["on_window_activation_changed"] = withWindow(func(w *Window, args []uintptr) uintptr {
			fn(w, truthy(args[0]))
			return 0
		})
	}
	if fn := h.OnWindowBoundsChanged; fn != nil {
		closures["on_window_bounds_changed"] = withWindow(func(w *Window, args []uintptr) uintptr {
			fn(w, ffi.RectAt(args[0]))
			return 0
		})
	}
	if fn := h.OnAccelerator; fn != nil {
		closures["on_accelerator"] = withWindow(func(w *Window, args []uintptr) uintptr {
			return boolWord(fn(w, int(int32(args[0]))))
		})
	}

	if fn := h.OnChildViewChanged; fn != nil {
		closures["on_child_view_changed"] = func(args []uintptr) uintptr {
			hv := b.adopt(descriptor.View, args[0])
			hc := b.adopt(descriptor.View, args[2])
			defer release(hv, hc)
			fn(b.viewOf(hv), truthy(args[1]), b.viewOf(hc))
			return 0
		}
	}
	focus := func(fn func(*View)) trampoline.Func {
		return func(args []uintptr) uintptr {
			hv := b.adopt(descriptor.View, args[0])
			defer release(hv)
			fn(b.viewOf(hv))
			return 0
		}
	}
	if h.OnFocus != nil {
		closures["on_focus"] = focus(h.OnFocus)
	}
	if h.OnBlur != nil {
		closures["on_blur"] = focus(h.OnBlur)
	}
	return closures
}

func (b *Binding) browserViewClosures(h BrowserViewHandler) map[string]trampoline.Func {
	closures := make(map[string]trampoline.Func)
	both := func(fn func(*BrowserView, *Browser)) trampoline.Func {
		return func(args []uintptr) uintptr {
			hv := b.adopt(descriptor.BrowserView, args[0])
			hb := b.adopt(descriptor.Browser, args[1])
			defer release(hv, hb)
			fn(b.browserView(hv), b.browser(hb))
			return 0
		}
	}
	if h.OnBrowserCreated != nil {
		closures["on_browser_created"] = both(h.OnBrowserCreated)
	}
	if h.OnBrowserDestroyed != nil {
		closures["on_browser_destroyed"] = both(h.OnBrowserDestroyed)
	}
	return closures
}
