package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocef/cef/internal/descriptor"
	"github.com/gocef/cef/internal/ffi"
	"github.com/gocef/cef/internal/testlib"
	"github.com/gocef/cef/types"
)

// requestObject keeps url, method and headers the way a writable request
// does.
func (f *fixture) requestObject(headers map[string]string) (*testlib.Object, *string, *string) {
	url, method := "", "GET"
	obj := f.object(descriptor.Request).
		On("get_url", func(...uintptr) uintptr { return f.engine.UserfreeString(url) }).
		On("set_url", func(args ...uintptr) uintptr {
			url = ffi.StringAt(args[1])
			return 0
		}).
		On("get_method", func(...uintptr) uintptr { return f.engine.UserfreeString(method) }).
		On("set_method", func(args ...uintptr) uintptr {
			method = ffi.StringAt(args[1])
			return 0
		}).
		On("get_header_by_name", func(args ...uintptr) uintptr {
			return f.engine.UserfreeString(headers[ffi.StringAt(args[1])])
		}).
		On("set_header_by_name", func(args ...uintptr) uintptr {
			name := ffi.StringAt(args[1])
			if _, ok := headers[name]; !ok || args[3] != 0 {
				headers[name] = ffi.StringAt(args[2])
			}
			return 0
		}).
		Returns("get_identifier", 77)
	return obj, &url, &method
}

func TestRequest(t *testing.T) {
	f := newFixture(t)
	headers := map[string]string{}
	obj, url, method := f.requestObject(headers)
	f.engine.Export("cef_request_create", func(...uintptr) uintptr { return obj.Addr() })

	// requests are values, built before the engine runs
	req, err := f.b.NewRequest()
	require.NoError(t, err)
	defer req.Release()

	m, err := req.Method()
	require.NoError(t, err)
	assert.Equal(t, "GET", m)

	require.NoError(t, req.SetURL("https://example.org/form"))
	require.NoError(t, req.SetMethod("POST"))
	require.NoError(t, req.SetHeader("Accept", "text/html", false))
	require.NoError(t, req.SetHeader("Accept", "*/*", false))
	assert.Equal(t, "https://example.org/form", *url)
	assert.Equal(t, "POST", *method)

	got, err := req.URL()
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/form", got)
	accept, err := req.Header("Accept")
	require.NoError(t, err)
	assert.Equal(t, "text/html", accept, "kept without overwrite")
	require.NoError(t, req.SetHeader("Accept", "*/*", true))
	assert.Equal(t, "*/*", headers["Accept"])

	id, err := req.Identifier()
	require.NoError(t, err)
	assert.EqualValues(t, 77, id)
	assert.Equal(t, 3, f.engine.Frees())
}

func TestRequestSettersTakeEnums(t *testing.T) {
	f := newFixture(t)
	var rec testlib.Recorder
	obj := f.object(descriptor.Request).
		On("set_referrer", rec.Func(0)).
		On("set_flags", rec.Func(0)).
		Returns("get_flags", uintptr(types.RequestSkipCache|types.RequestStopOnRedirect)).
		Returns("get_referrer_policy", uintptr(types.ReferrerPolicyOrigin))
	f.engine.Export("cef_request_create", func(...uintptr) uintptr { return obj.Addr() })
	req, err := f.b.NewRequest()
	require.NoError(t, err)
	defer req.Release()

	require.NoError(t, req.SetReferrer("https://example.org/", types.ReferrerPolicyNoReferrer))
	require.NoError(t, req.SetFlags(types.RequestDisableCache))
	calls := rec.Calls()
	require.Len(t, calls, 2)
	assert.EqualValues(t, types.ReferrerPolicyNoReferrer, calls[0][2])
	assert.EqualValues(t, types.RequestDisableCache, calls[1][1])

	flags, err := req.Flags()
	require.NoError(t, err)
	assert.Equal(t, types.RequestSkipCache|types.RequestStopOnRedirect, flags)
	policy, err := req.ReferrerPolicy()
	require.NoError(t, err)
	assert.Equal(t, types.ReferrerPolicyOrigin, policy)
}

func TestNewRequestNull(t *testing.T) {
	f := newFixture(t)
	_, err := f.b.NewRequest()
	assert.Equal(t, types.NullPointer{Op: "cef_request_create"}, err)
}

func TestFrameLoadRequest(t *testing.T) {
	f := newFixture(t)
	f.initialize(nil)
	req := f.object(descriptor.Request)
	f.engine.Export("cef_request_create", func(...uintptr) uintptr { return req.Addr() })
	var loaded uintptr
	frame := f.object(descriptor.Frame).On("load_request", func(args ...uintptr) uintptr {
		loaded = args[1]
		f.engine.Release(args[1])
		return 0
	})
	obj := f.object(descriptor.Browser).On("get_main_frame", func(...uintptr) uintptr {
		f.engine.AddRef(frame.Addr())
		return frame.Addr()
	})
	f.exportBrowser(obj, nil)
	br, err := f.b.CreateBrowserSync(types.WindowInfo{}, nil, "about:blank", types.BrowserSettings{})
	require.NoError(t, err)
	defer br.Release()
	main, err := br.MainFrame()
	require.NoError(t, err)
	defer main.Release()

	r, err := f.b.NewRequest()
	require.NoError(t, err)
	require.NoError(t, main.LoadRequest(r))
	assert.Equal(t, req.Addr(), loaded)
	// the engine got its own reference, the host still holds one
	assert.EqualValues(t, 1, req.AddRefs())
	assert.False(t, r.Released())
	assert.EqualValues(t, 1, req.Refs())
	r.Release()
	assert.Zero(t, req.Refs())

	f.engine.ResetCalls()
	assert.Equal(t, types.NullPointer{Op: "cef_frame_t.load_request"}, main.LoadRequest(nil))
	assert.Zero(t, f.engine.TotalCalls())
}

func TestResponse(t *testing.T) {
	f := newFixture(t)
	status := 0
	mime := ""
	obj := f.object(descriptor.Response).
		On("set_status", func(args ...uintptr) uintptr {
			status = int(int32(args[1]))
			return 0
		}).
		On("get_status", func(...uintptr) uintptr { return uintptr(status) }).
		On("set_mime_type", func(args ...uintptr) uintptr {
			mime = ffi.StringAt(args[1])
			return 0
		}).
		On("get_mime_type", func(...uintptr) uintptr { return f.engine.UserfreeString(mime) }).
		Returns("get_error", uintptr(uint32(0xffffffec))).
		Returns("is_read_only", 0)
	f.engine.Export("cef_response_create", func(...uintptr) uintptr { return obj.Addr() })

	resp, err := f.b.NewResponse()
	require.NoError(t, err)
	require.NoError(t, resp.SetStatus(404))
	require.NoError(t, resp.SetMimeType("text/plain"))
	n, err := resp.Status()
	require.NoError(t, err)
	assert.Equal(t, 404, n)
	m, err := resp.MimeType()
	require.NoError(t, err)
	assert.Equal(t, "text/plain", m)
	code, err := resp.LoadError()
	require.NoError(t, err)
	assert.Equal(t, types.ErrorCode(-20), code)
	ro, err := resp.IsReadOnly()
	require.NoError(t, err)
	assert.False(t, ro)

	clone := resp.Clone()
	resp.Release()
	assert.EqualValues(t, 1, obj.Refs())
	clone.Release()
	assert.Zero(t, obj.Refs())

	f.initialize(nil)
	f.shutdown()
	_, err = f.b.NewResponse()
	var le types.LifecycleError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, types.Terminated, le.State)
}
