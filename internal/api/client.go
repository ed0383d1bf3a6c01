package api

import (
	"github.com/gocef/cef/internal/descriptor"
	"github.com/gocef/cef/internal/ffi"
	"github.com/gocef/cef/internal/trampoline"
	"github.com/gocef/cef/types"
)

// ClientHandler holds the callbacks of the browsers created with a Client.
// Every field is optional; handler tables are only built for the groups
// that have at least one callback set.
type ClientHandler struct {
	// Life span, UI thread.
	OnAfterCreated func(browser *Browser)
	DoClose        func(browser *Browser) bool
	OnBeforeClose  func(browser *Browser)

	// Load, UI thread.
	OnLoadingStateChange func(browser *Browser, loading, canGoBack, canGoForward bool)
	OnLoadStart          func(browser *Browser, frame *Frame, transition types.TransitionType)
	OnLoadEnd            func(browser *Browser, frame *Frame, httpStatus int)
	OnLoadError          func(browser *Browser, frame *Frame, code types.ErrorCode, text, url string)

	// Display, UI thread.
	OnAddressChange  func(browser *Browser, frame *Frame, url string)
	OnTitleChange    func(browser *Browser, title string)
	OnStatusMessage  func(browser *Browser, text string)
	OnConsoleMessage func(browser *Browser, level types.LogSeverity, message, source string, line int) bool

	OnProcessMessageReceived func(browser *Browser, frame *Frame, source types.ProcessID, msg *ProcessMessage) bool
}

// Client is a client table the host hands to the engine when creating
// browsers. It can serve any number of browsers.
type Client struct {
	obj *trampoline.Object
}

// NewClient builds the client table for h.
func (b *Binding) NewClient(h ClientHandler) (*Client, error) {
	lifeSpan, err := b.installGroup(descriptor.LifeSpanHandler, b.lifeSpanClosures(h))
	if err != nil {
		return nil, err
	}
	load, err := b.installGroup(descriptor.LoadHandler, b.loadClosures(h))
	if err != nil {
		releaseObjects(lifeSpan)
		return nil, err
	}
	display, err := b.installGroup(descriptor.DisplayHandler, b.displayClosures(h))
	if err != nil {
		releaseObjects(lifeSpan, load)
		return nil, err
	}

	closures := map[string]trampoline.Func{
		"get_life_span_handler": getter(lifeSpan),
		"get_load_handler":      getter(load),
		"get_display_handler":   getter(display),
	}
	if fn := h.OnProcessMessageReceived; fn != nil {
		closures["on_process_message_received"] = b.onProcessMessageReceived(fn)
	}
	obj, err := b.callbacks.Install(b.desc(descriptor.Client), closures)
	if err != nil {
		releaseObjects(lifeSpan, load, display)
		return nil, err
	}
	obj.OnDestroy(func() { releaseObjects(lifeSpan, load, display) })
	return &Client{obj: obj}, nil
}

// Release drops the host reference. Browsers using the client keep it
// alive until they close.
func (c *Client) Release() {
	c.obj.Release()
}

// pass returns the table with the reference the engine takes over, 0 for
// a nil client.
func (c *Client) pass() uintptr {
	if c == nil {
		return 0
	}
	return c.obj.Pass()
}

// installGroup builds a handler table, or none when no callback is set.
func (b *Binding) installGroup(family string, closures map[string]trampoline.Func) (*trampoline.Object, error) {
	if len(closures) == 0 {
		return nil, nil
	}
	return b.callbacks.Install(b.desc(family), closures)
}

// getter serves a get_*_handler slot.
func getter(obj *trampoline.Object) trampoline.Func {
	if obj == nil {
		return nil
	}
	return func([]uintptr) uintptr {
		return obj.Pass()
	}
}

func releaseObjects(objs ...*trampoline.Object) {
	for _, obj := range objs {
		if obj != nil {
			obj.Release()
		}
	}
}

// withBrowser adapts a callback whose first argument is the browser.
func (b *Binding) withBrowser(fn func(*Browser, []uintptr) uintptr) trampoline.Func {
	return func(args []uintptr) uintptr {
		hb := b.adopt(descriptor.Browser, args[0])
		defer release(hb)
		return fn(b.browser(hb), args[1:])
	}
}

// withBrowserFrame adapts a callback taking the browser and a frame.
func (b *Binding) withBrowserFrame(fn func(*Browser, *Frame, []uintptr) uintptr) trampoline.Func {
	return func(args []uintptr) uintptr {
		hb := b.adopt(descriptor.Browser, args[0])
		hf := b.adopt(descriptor.Frame, args[1])
		defer release(hb, hf)
		return fn(b.browser(hb), b.frame(hf), args[2:])
	}
}

func (b *Binding) lifeSpanClosures(h ClientHandler) map[string]trampoline.Func {
	closures := make(map[string]trampoline.Func)
	if fn := h.OnAfterCreated; fn != nil {
		closures["on_after_created"] = b.withBrowser(func(br *Browser, _ []uintptr) uintptr {
			fn(br)
			return 0
		})
	}
	if fn := h.DoClose; fn != nil {
		closures["do_close"] = b.withBrowser(func(br *Browser, _ []uintptr) uintptr {
			return boolWord(fn(br))
		})
	}
	if fn := h.OnBeforeClose; fn != nil {
		closures["on_before_close"] = b.withBrowser(func(br *Browser, _ []uintptr) uintptr {
			fn(br)
			return 0
		})
	}
	return closures
}

func (b *Binding) loadClosures(h ClientHandler) map[string]trampoline.Func {
	closures := make(map[string]trampoline.Func)
	if fn := h.OnLoadingStateChange; fn != nil {
		closures["on_loading_state_change"] = b.withBrowser(func(br *Browser, args []uintptr) uintptr {
			fn(br, truthy(args[0]), truthy(args[1]), truthy(args[2]))
			return 0
		})
	}
	if fn := h.OnLoadStart; fn != nil {
		closures["on_load_start"] = b.withBrowserFrame(func(br *Browser, f *Frame, args []uintptr) uintptr {
			fn(br, f, types.TransitionType(uint32(args[0])))
			return 0
		})
	}
	if fn := h.OnLoadEnd; fn != nil {
		closures["on_load_end"] = b.withBrowserFrame(func(br *Browser, f *Frame, args []uintptr) uintptr {
			fn(br, f, int(int32(args[0])))
			return 0
		})
	}
	if fn := h.OnLoadError; fn != nil {
		closures["on_load_error"] = b.withBrowserFrame(func(br *Browser, f *Frame, args []uintptr) uintptr {
			fn(br, f, types.ErrorCode(int32(args[0])), ffi.StringAt(args[1]), ffi.StringAt(args[2]))
			return 0
		})
	}
	return closures
}

func (b *Binding) displayClosures(h ClientHandler) map[string]trampoline.Func {
	closures := make(map[string]trampoline.Func)
	if fn := h.OnAddressChange; fn != nil {
		closures["on_address_change"] = b.withBrowserFrame(func(br *Browser, f *Frame, args []uintptr) uintptr {
			fn(br, f, ffi.StringAt(args[0]))
			return 0
		})
	}
	if fn := h.OnTitleChange; fn != nil {
		closures["on_title_change"] = b.withBrowser(func(br *Browser, args []uintptr) uintptr {
			fn(br, ffi.StringAt(args[0]))
			return 0
		})
	}
	if fn := h.OnStatusMessage; fn != nil {
		closures["on_status_message"] = b.withBrowser(func(br *Browser, args []uintptr) uintptr {
			fn(br, ffi.StringAt(args[0]))
			return 0
		})
	}
	if fn := h.OnConsoleMessage; fn != nil {
		closures["on_console_message"] = b.withBrowser(func(br *Browser, args []uintptr) uintptr {
			return boolWord(fn(br, types.LogSeverity(int32(args[0])), ffi.StringAt(args[1]), ffi.StringAt(args[2]), int(int32(args[3]))))
		})
	}
	return closures
}
