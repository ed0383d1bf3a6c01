package api

import (
	"github.com/gocef/cef/internal/descriptor"
	"github.com/gocef/cef/internal/ffi"
	"github.com/gocef/cef/types"
)

// Request is a network request, built with NewRequest and handed to
// Frame.LoadRequest. Requests the engine passes out may be read only; their
// setters then do nothing.
type Request struct{ ref }

// Response is a network response.
type Response struct{ ref }

// NewRequest creates an empty GET request.
func (b *Binding) NewRequest() (*Request, error) {
	const op = "cef_request_create"
	if err := b.alloc(op, types.AnyThread); err != nil {
		return nil, err
	}
	h, err := b.wrap(descriptor.Request, b.lib.Call(b.sym.RequestCreate), op)
	if err != nil {
		return nil, err
	}
	return &Request{ref{b: b, h: h}}, nil
}

// NewResponse creates an empty response.
func (b *Binding) NewResponse() (*Response, error) {
	const op = "cef_response_create"
	if err := b.alloc(op, types.AnyThread); err != nil {
		return nil, err
	}
	h, err := b.wrap(descriptor.Response, b.lib.Call(b.sym.ResponseCreate), op)
	if err != nil {
		return nil, err
	}
	return &Response{ref{b: b, h: h}}, nil
}

func (r *Request) Clone() *Request {
	return &Request{r.clone()}
}

func (r *Request) IsReadOnly() (bool, error) {
	return r.flag("is_read_only")
}

func (r *Request) URL() (string, error) {
	return r.text("get_url")
}

func (r *Request) SetURL(url string) error {
	return r.store("set_url", url)
}

func (r *Request) Method() (string, error) {
	return r.text("get_method")
}

// SetMethod sets the HTTP method. Attaching post data turns a GET into a
// POST on its own.
func (r *Request) SetMethod(method string) error {
	return r.store("set_method", method)
}

// SetReferrer sets the referrer, which must be a fully qualified URL or
// empty.
func (r *Request) SetReferrer(url string, policy types.ReferrerPolicy) error {
	var a ffi.Arena
	defer a.Free()
	return r.void("set_referrer", a.String(url), uintptr(policy))
}

func (r *Request) ReferrerURL() (string, error) {
	return r.text("get_referrer_url")
}

func (r *Request) ReferrerPolicy() (types.ReferrerPolicy, error) {
	n, err := r.number("get_referrer_policy")
	return types.ReferrerPolicy(n), err
}

// Header returns the first value of the header name, "" when it is not
// set.
func (r *Request) Header(name string) (string, error) {
	var a ffi.Arena
	defer a.Free()
	return r.text("get_header_by_name", a.String(name))
}

// SetHeader sets the header name. With overwrite false an existing value
// is kept. Referer is set through SetReferrer instead.
func (r *Request) SetHeader(name, value string, overwrite bool) error {
	var a ffi.Arena
	defer a.Free()
	return r.void("set_header_by_name", a.String(name), a.String(value), boolWord(overwrite))
}

func (r *Request) Flags() (types.RequestFlags, error) {
	n, err := r.number("get_flags")
	return types.RequestFlags(n), err
}

func (r *Request) SetFlags(flags types.RequestFlags) error {
	return r.void("set_flags", uintptr(uint32(flags)))
}

func (r *Request) FirstPartyForCookies() (string, error) {
	return r.text("get_first_party_for_cookies")
}

func (r *Request) SetFirstPartyForCookies(url string) error {
	return r.store("set_first_party_for_cookies", url)
}

// Identifier is unique per request within the browser process, 0 for
// requests that were never sent.
func (r *Request) Identifier() (uint64, error) {
	v, err := r.invoke("get_identifier")
	return uint64(v), err
}

func (r *Response) Clone() *Response {
	return &Response{r.clone()}
}

func (r *Response) IsReadOnly() (bool, error) {
	return r.flag("is_read_only")
}

// LoadError is the load error of the response, 0 when there was none.
func (r *Response) LoadError() (types.ErrorCode, error) {
	n, err := r.number("get_error")
	return types.ErrorCode(n), err
}

func (r *Response) SetLoadError(code types.ErrorCode) error {
	return r.void("set_error", uintptr(uint32(code)))
}

// Status is the HTTP status code.
func (r *Response) Status() (int, error) {
	return r.number("get_status")
}

func (r *Response) SetStatus(status int) error {
	return r.void("set_status", intWord(status))
}

func (r *Response) StatusText() (string, error) {
	return r.text("get_status_text")
}

func (r *Response) SetStatusText(text string) error {
	return r.store("set_status_text", text)
}

func (r *Response) MimeType() (string, error) {
	return r.text("get_mime_type")
}

func (r *Response) SetMimeType(mime string) error {
	return r.store("set_mime_type", mime)
}

func (r *Response) Charset() (string, error) {
	return r.text("get_charset")
}

func (r *Response) SetCharset(charset string) error {
	return r.store("set_charset", charset)
}

func (r *Response) Header(name string) (string, error) {
	var a ffi.Arena
	defer a.Free()
	return r.text("get_header_by_name", a.String(name))
}

func (r *Response) SetHeader(name, value string, overwrite bool) error {
	var a ffi.Arena
	defer a.Free()
	return r.void("set_header_by_name", a.String(name), a.String(value), boolWord(overwrite))
}

func (r *Response) URL() (string, error) {
	return r.text("get_url")
}

func (r *Response) SetURL(url string) error {
	return r.store("set_url", url)
}

// LoadRequest navigates the frame to req. The caller keeps its reference.
func (f *Frame) LoadRequest(req *Request) error {
	const slot = "load_request"
	if req == nil {
		return types.NullPointer{Op: f.op(slot)}
	}
	if err := f.b.enter(f.op(slot), f.h.Descriptor().Affinity()); err != nil {
		return err
	}
	f.h.Invoke(slot, req.h.Pass())
	return nil
}
