package api

import (
	"github.com/gocef/cef/internal/descriptor"
	"github.com/gocef/cef/internal/ffi"
	"github.com/gocef/cef/internal/handle"
	"github.com/gocef/cef/types"
)

// Browser is one browser instance.
type Browser struct{ ref }

// BrowserHost is the browser process side of a browser.
type BrowserHost struct{ ref }

// Frame is a frame of a browser.
type Frame struct{ ref }

func (b *Binding) browser(h *handle.Handle) *Browser {
	if h == nil {
		return nil
	}
	return &Browser{ref{b: b, h: h}}
}

func (b *Binding) frame(h *handle.Handle) *Frame {
	if h == nil {
		return nil
	}
	return &Frame{ref{b: b, h: h}}
}

// CreateBrowserSync creates a browser in a native window described by info
// and starts loading url. It runs on the UI thread.
func (b *Binding) CreateBrowserSync(info types.WindowInfo, client *Client, url string, settings types.BrowserSettings) (*Browser, error) {
	const op = "cef_browser_host_create_browser_sync"
	if err := b.create(op, types.UIThread); err != nil {
		return nil, err
	}
	var a ffi.Arena
	defer a.Free()
	addr := b.lib.Call(b.sym.CreateBrowserSync,
		ffi.EncodeWindowInfo(&a, info),
		client.pass(),
		a.String(url),
		ffi.EncodeBrowserSettings(&a, settings),
		0, 0)
	h, err := b.wrap(descriptor.Browser, addr, op)
	if err != nil {
		return nil, err
	}
	b.logger.Debug().Str("url", url).Msg("created browser")
	return b.browser(h), nil
}

func (br *Browser) Clone() *Browser {
	return &Browser{br.clone()}
}

func (br *Browser) IsValid() (bool, error) {
	return br.flag("is_valid")
}

// Identifier is unique among the browsers of the process.
func (br *Browser) Identifier() (int, error) {
	return br.number("get_identifier")
}

func (br *Browser) IsLoading() (bool, error) {
	return br.flag("is_loading")
}

func (br *Browser) CanGoBack() (bool, error) {
	return br.flag("can_go_back")
}

func (br *Browser) GoBack() error {
	return br.void("go_back")
}

func (br *Browser) CanGoForward() (bool, error) {
	return br.flag("can_go_forward")
}

func (br *Browser) GoForward() error {
	return br.void("go_forward")
}

func (br *Browser) Reload() error {
	return br.void("reload")
}

func (br *Browser) ReloadIgnoreCache() error {
	return br.void("reload_ignore_cache")
}

// StopLoad cancels the navigation in progress. Load callbacks already on
// their way may still arrive.
func (br *Browser) StopLoad() error {
	return br.void("stop_load")
}

func (br *Browser) IsPopup() (bool, error) {
	return br.flag("is_popup")
}

func (br *Browser) HasDocument() (bool, error) {
	return br.flag("has_document")
}

// IsSame reports whether both refer to the same browser.
func (br *Browser) IsSame(other *Browser) (bool, error) {
	if other == nil {
		return false, nil
	}
	if br.h.Same(other.h) {
		return true, nil
	}
	if err := br.b.enter(br.op("is_same"), br.h.Descriptor().Affinity()); err != nil {
		return false, err
	}
	return truthy(br.h.Invoke("is_same", other.h.Pass())), nil
}

func (br *Browser) Host() (*BrowserHost, error) {
	h, err := br.produce(br.b.create, descriptor.BrowserHost, "get_host")
	if err != nil {
		return nil, err
	}
	return &BrowserHost{ref{b: br.b, h: h}}, nil
}

func (br *Browser) MainFrame() (*Frame, error) {
	h, err := br.produce(br.b.create, descriptor.Frame, "get_main_frame")
	if err != nil {
		return nil, err
	}
	return br.b.frame(h), nil
}

func (br *Browser) FocusedFrame() (*Frame, error) {
	h, err := br.produce(br.b.create, descriptor.Frame, "get_focused_frame")
	if err != nil {
		return nil, err
	}
	return br.b.frame(h), nil
}

// FrameByName returns the named frame.
func (br *Browser) FrameByName(name string) (*Frame, error) {
	var a ffi.Arena
	defer a.Free()
	h, err := br.produce(br.b.create, descriptor.Frame, "get_frame_by_name", a.String(name))
	if err != nil {
		return nil, err
	}
	return br.b.frame(h), nil
}

func (br *Browser) FrameCount() (int, error) {
	v, err := br.invoke("get_frame_count")
	return int(v), err
}

func (bh *BrowserHost) Clone() *BrowserHost {
	return &BrowserHost{bh.clone()}
}

func (bh *BrowserHost) Browser() (*Browser, error) {
	h, err := bh.produce(bh.b.create, descriptor.Browser, "get_browser")
	if err != nil {
		return nil, err
	}
	return bh.b.browser(h), nil
}

// CloseBrowser asks the browser to close. Unless force is set the page
// may cancel through its unload handlers.
func (bh *BrowserHost) CloseBrowser(force bool) error {
	return bh.void("close_browser", boolWord(force))
}

// TryCloseBrowser closes the browser if nothing objects and reports
// whether it is closing.
func (bh *BrowserHost) TryCloseBrowser() (bool, error) {
	return bh.flag("try_close_browser")
}

func (bh *BrowserHost) SetFocus(focus bool) error {
	return bh.void("set_focus", boolWord(focus))
}

func (bh *BrowserHost) HasView() (bool, error) {
	return bh.flag("has_view")
}

// WasResized tells the browser its native window changed size.
func (bh *BrowserHost) WasResized() error {
	return bh.void("was_resized")
}

func (bh *BrowserHost) WasHidden(hidden bool) error {
	return bh.void("was_hidden", boolWord(hidden))
}

func (bh *BrowserHost) StartDownload(url string) error {
	var a ffi.Arena
	defer a.Free()
	return bh.void("start_download", a.String(url))
}

func (bh *BrowserHost) Print() error {
	return bh.void("print")
}

// Find searches the page. StopFinding cancels the search.
func (bh *BrowserHost) Find(text string, forward, matchCase, findNext bool) error {
	var a ffi.Arena
	defer a.Free()
	return bh.void("find", a.String(text), boolWord(forward), boolWord(matchCase), boolWord(findNext))
}

func (bh *BrowserHost) StopFinding(clearSelection bool) error {
	return bh.void("stop_finding", boolWord(clearSelection))
}

func (bh *BrowserHost) HasDevTools() (bool, error) {
	return bh.flag("has_dev_tools")
}

func (bh *BrowserHost) CloseDevTools() error {
	return bh.void("close_dev_tools")
}

func (f *Frame) Clone() *Frame {
	return &Frame{f.clone()}
}

func (f *Frame) IsValid() (bool, error) {
	return f.flag("is_valid")
}

func (f *Frame) IsMain() (bool, error) {
	return f.flag("is_main")
}

func (f *Frame) IsFocused() (bool, error) {
	return f.flag("is_focused")
}

func (f *Frame) Name() (string, error) {
	return f.text("get_name")
}

func (f *Frame) Identifier() (string, error) {
	return f.text("get_identifier")
}

func (f *Frame) URL() (string, error) {
	return f.text("get_url")
}

func (f *Frame) LoadURL(url string) error {
	var a ffi.Arena
	defer a.Free()
	return f.void("load_url", a.String(url))
}

// ExecuteJavaScript runs code in the frame. scriptURL and startLine only
// show up in error reports.
func (f *Frame) ExecuteJavaScript(code, scriptURL string, startLine int) error {
	var a ffi.Arena
	defer a.Free()
	return f.void("execute_java_script", a.String(code), a.String(scriptURL), intWord(startLine))
}

func (f *Frame) Undo() error      { return f.void("undo") }
func (f *Frame) Redo() error      { return f.void("redo") }
func (f *Frame) Cut() error       { return f.void("cut") }
func (f *Frame) Copy() error      { return f.void("copy") }
func (f *Frame) Paste() error     { return f.void("paste") }
func (f *Frame) SelectAll() error { return f.void("select_all") }

func (f *Frame) ViewSource() error {
	return f.void("view_source")
}

func (f *Frame) Browser() (*Browser, error) {
	h, err := f.produce(f.b.create, descriptor.Browser, "get_browser")
	if err != nil {
		return nil, err
	}
	return f.b.browser(h), nil
}

// Parent is the parent frame, a NullPointer error for the main frame.
func (f *Frame) Parent() (*Frame, error) {
	h, err := f.produce(f.b.create, descriptor.Frame, "get_parent")
	if err != nil {
		return nil, err
	}
	return f.b.frame(h), nil
}

// V8Context is the script context of the frame, renderer process only.
func (f *Frame) V8Context() (*V8Context, error) {
	h, err := f.produce(f.b.create, descriptor.V8Context, "get_v8context")
	if err != nil {
		return nil, err
	}
	return f.b.v8Context(h), nil
}

// SendProcessMessage hands msg to the target process. The message must
// not be used again afterwards; it is released here.
func (f *Frame) SendProcessMessage(target types.ProcessID, msg *ProcessMessage) error {
	if err := f.b.enter(f.op("send_process_message"), f.h.Descriptor().Affinity()); err != nil {
		return err
	}
	f.h.Invoke("send_process_message", uintptr(target), msg.h.Pass())
	msg.Release()
	return nil
}
