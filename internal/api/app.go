package api

import (
	"github.com/gocef/cef/internal/descriptor"
	"github.com/gocef/cef/internal/ffi"
	"github.com/gocef/cef/internal/trampoline"
	"github.com/gocef/cef/types"
)

// AppHandler receives the process level callbacks. Every field is optional.
type AppHandler struct {
	// Setup runs during Initialize before the engine starts. AppendSwitch,
	// Designate and RegisterInterface are only accepted from here.
	Setup func(b *Binding) error

	// OnBeforeCommandLineProcessing sees the command line of every process
	// before the engine reads it. processType is empty in the browser
	// process. Switches added with AppendSwitch are already applied.
	OnBeforeCommandLineProcessing func(processType string, cl *CommandLine)

	// Browser process, UI thread.
	OnContextInitialized      func()
	OnScheduleMessagePumpWork func(delayMs int64)

	// Renderer processes, renderer thread.
	OnWebKitInitialized      func()
	OnBrowserCreated         func(browser *Browser)
	OnBrowserDestroyed       func(browser *Browser)
	OnContextCreated         func(browser *Browser, frame *Frame, ctx *V8Context)
	OnContextReleased        func(browser *Browser, frame *Frame, ctx *V8Context)
	OnProcessMessageReceived func(browser *Browser, frame *Frame, source types.ProcessID, msg *ProcessMessage) bool
}

// passApp returns the app table for execute and initialize, with the
// reference the engine takes over added. A nil handler passes no table.
func (b *Binding) passApp(h *AppHandler) (uintptr, error) {
	if h == nil {
		return 0, nil
	}
	b.mu.Lock()
	app := b.app
	same := b.appFor == h
	b.mu.Unlock()
	if app != nil && same {
		return app.Pass(), nil
	}

	obj, err := b.installApp(h)
	if err != nil {
		return 0, err
	}
	b.mu.Lock()
	old := b.app
	b.app, b.appFor = obj, h
	b.mu.Unlock()
	if old != nil {
		old.Release()
	}
	return obj.Pass(), nil
}

func (b *Binding) installApp(h *AppHandler) (*trampoline.Object, error) {
	browser, err := b.callbacks.Install(b.desc(descriptor.BrowserProcess), map[string]trampoline.Func{
		"on_context_initialized":        b.onContextInitialized(h.OnContextInitialized),
		"on_schedule_message_pump_work": onScheduleMessagePumpWork(h.OnScheduleMessagePumpWork),
	})
	if err != nil {
		return nil, err
	}
	renderer, err := b.callbacks.Install(b.desc(descriptor.RenderProcess), b.renderProcessClosures(h))
	if err != nil {
		browser.Release()
		return nil, err
	}

	app, err := b.callbacks.Install(b.desc(descriptor.App), map[string]trampoline.Func{
		"on_before_command_line_processing": b.onBeforeCommandLineProcessing(h.OnBeforeCommandLineProcessing),
		"get_browser_process_handler": func([]uintptr) uintptr {
			return browser.Pass()
		},
		"get_render_process_handler": func([]uintptr) uintptr {
			return renderer.Pass()
		},
	})
	if err != nil {
		browser.Release()
		renderer.Release()
		return nil, err
	}
	app.OnDestroy(browser.Release)
	app.OnDestroy(renderer.Release)
	return app, nil
}

func (b *Binding) onBeforeCommandLineProcessing(fn func(string, *CommandLine)) trampoline.Func {
	return func(args []uintptr) uintptr {
		processType := ffi.StringAt(args[0])
		h := b.adopt(descriptor.CommandLine, args[1])
		if h == nil {
			return 0
		}
		defer h.Release()
		cl := &CommandLine{ref{b: b, h: h}}
		if processType == "" {
			for _, s := range b.pendingSwitches() {
				if err := cl.AppendSwitchWithValue(s.name, s.value); err != nil {
					b.logger.Error().Err(err).Str("switch", s.name).Msg("could not apply switch")
				}
			}
		}
		if fn != nil {
			fn(processType, cl)
		}
		return 0
	}
}

func (b *Binding) onContextInitialized(fn func()) trampoline.Func {
	if fn == nil {
		return nil
	}
	return func([]uintptr) uintptr {
		b.afterInitialize(fn)
		return 0
	}
}

func onScheduleMessagePumpWork(fn func(int64)) trampoline.Func {
	if fn == nil {
		return nil
	}
	return func(args []uintptr) uintptr {
		fn(int64(args[0]))
		return 0
	}
}

func (b *Binding) renderProcessClosures(h *AppHandler) map[string]trampoline.Func {
	closures := make(map[string]trampoline.Func)
	if fn := h.OnWebKitInitialized; fn != nil {
		closures["on_web_kit_initialized"] = func([]uintptr) uintptr {
			fn()
			return 0
		}
	}
	if fn := h.OnBrowserCreated; fn != nil {
		closures["on_browser_created"] = func(args []uintptr) uintptr {
			hb := b.adopt(descriptor.Browser, args[0])
			defer release(hb)
			fn(b.browser(hb))
			return 0
		}
	}
	if fn := h.OnBrowserDestroyed; fn != nil {
		closures["on_browser_destroyed"] = func(args []uintptr) uintptr {
			hb := b.adopt(descriptor.Browser, args[0])
			defer release(hb)
			fn(b.browser(hb))
			return 0
		}
	}
	context := func(fn func(*Browser, *Frame, *V8Context)) trampoline.Func {
		return func(args []uintptr) uintptr {
			hb := b.adopt(descriptor.Browser, args[0])
			hf := b.adopt(descriptor.Frame, args[1])
			hc := b.adopt(descriptor.V8Context, args[2])
			defer release(hb, hf, hc)
			fn(b.browser(hb), b.frame(hf), b.v8Context(hc))
			return 0
		}
	}
	if fn := h.OnContextCreated; fn != nil {
		closures["on_context_created"] = context(fn)
	}
	if fn := h.OnContextReleased; fn != nil {
		closures["on_context_released"] = context(fn)
	}
	if fn := h.OnProcessMessageReceived; fn != nil {
		closures["on_process_message_received"] = b.onProcessMessageReceived(fn)
	}
	return closures
}

// onProcessMessageReceived serves the slot of the same name shared by the
// client and the render process handler.
func (b *Binding) onProcessMessageReceived(fn func(*Browser, *Frame, types.ProcessID, *ProcessMessage) bool) trampoline.Func {
	return func(args []uintptr) uintptr {
		hb := b.adopt(descriptor.Browser, args[0])
		hf := b.adopt(descriptor.Frame, args[1])
		hm := b.adopt(descriptor.ProcessMessage, args[3])
		defer release(hb, hf, hm)
		var msg *ProcessMessage
		if hm != nil {
			msg = &ProcessMessage{ref{b: b, h: hm}}
		}
		return boolWord(fn(b.browser(hb), b.frame(hf), types.ProcessID(int32(args[2])), msg))
	}
}
