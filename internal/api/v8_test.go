package api

import (
	"errors"
	"testing"
	"unicode/utf16"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocef/cef/internal/descriptor"
	"github.com/gocef/cef/internal/ffi"
	"github.com/gocef/cef/types"
)

// v8Call builds the arguments of a cef_v8handler_t.execute call.
type v8Call struct {
	a         ffi.Arena
	retval    uintptr
	exception uintptr
}

func (c *v8Call) args(f *fixture, name string, this uintptr, argv ...uintptr) []uintptr {
	c.retval = c.a.Words(0)
	c.exception = c.a.Words(0, 0, 0)
	var list uintptr
	if len(argv) > 0 {
		list = c.a.Words(argv...)
	}
	return []uintptr{f.engine.String(name), this, uintptr(len(argv)), list, c.retval, c.exception}
}

func TestNativeFunction(t *testing.T) {
	f := newFixture(t)
	f.initialize(nil)

	var handler uintptr
	fnValue := f.object(descriptor.V8Value).Returns("is_function", 1)
	f.engine.Export("cef_v8value_create_function", func(args ...uintptr) uintptr {
		assert.Equal(t, "add", ffi.StringAt(args[0]))
		handler = args[1]
		return fnValue.Addr()
	})
	result := f.object(descriptor.V8Value)
	var created int32
	f.engine.Export("cef_v8value_create_int", func(args ...uintptr) uintptr {
		created = int32(args[0])
		return result.Addr()
	})

	fn, err := f.b.NewFunction("add", func(name string, this *V8Value, args []*V8Value) (*V8Value, error) {
		assert.Equal(t, "add", name)
		assert.Nil(t, this)
		var sum int32
		for _, arg := range args {
			n, err := arg.IntValue()
			require.NoError(t, err)
			sum += n
		}
		return f.b.NewInt(sum)
	})
	require.NoError(t, err)
	defer fn.Release()
	isFn, err := fn.IsFunction()
	require.NoError(t, err)
	assert.True(t, isFn)
	require.NotZero(t, handler)

	x := f.object(descriptor.V8Value).Returns("get_int_value", 2)
	y := f.object(descriptor.V8Value).Returns("get_int_value", 40)
	f.engine.AddRef(x.Addr())
	f.engine.AddRef(y.Addr())

	var call v8Call
	defer call.a.Free()
	ret := f.engine.Dispatch(handler, f.desc(descriptor.V8Handler), "execute", call.args(f, "add", 0, x.Addr(), y.Addr())...)
	assert.EqualValues(t, 1, ret)
	assert.EqualValues(t, 42, created)
	assert.Equal(t, result.Addr(), ffi.Word(call.retval, 0))
	// the engine owns the returned value, the arguments went back
	assert.EqualValues(t, 1, result.Refs())
	assert.EqualValues(t, 1, x.Refs())
	assert.EqualValues(t, 1, y.Refs())
	assert.Equal(t, 1, f.b.LiveHandles())

	assert.True(t, f.engine.Release(handler))
	assert.Zero(t, f.b.callbacks.Live())
}

func TestNativeFunctionThrows(t *testing.T) {
	f := newFixture(t)
	f.initialize(nil)
	var handler uintptr
	f.engine.Export("cef_v8value_create_function", func(args ...uintptr) uintptr {
		handler = args[1]
		return f.object(descriptor.V8Value).Addr()
	})
	var thrown string
	var dst uintptr
	f.engine.Export("cef_string_utf16_set", func(args ...uintptr) uintptr {
		thrown = string(utf16.Decode(unsafe.Slice((*uint16)(unsafe.Pointer(args[0])), args[1])))
		dst = args[2]
		assert.EqualValues(t, 1, args[3], "copy")
		return 1
	})

	fn, err := f.b.NewFunction("fail", func(string, *V8Value, []*V8Value) (*V8Value, error) {
		return nil, errors.New("not allowed")
	})
	require.NoError(t, err)
	defer fn.Release()

	var call v8Call
	defer call.a.Free()
	ret := f.engine.Dispatch(handler, f.desc(descriptor.V8Handler), "execute", call.args(f, "fail", 0)...)
	assert.EqualValues(t, 1, ret)
	assert.Equal(t, "not allowed", thrown)
	assert.Equal(t, call.exception, dst)
	assert.Zero(t, ffi.Word(call.retval, 0))
	f.engine.Release(handler)
}

func TestEval(t *testing.T) {
	f := newFixture(t)
	f.initialize(nil)
	value := f.object(descriptor.V8Value).
		Returns("is_string", 1).
		On("get_string_value", func(...uintptr) uintptr { return f.engine.UserfreeString("ok") })
	exception := f.object(descriptor.V8Exception).
		On("get_message", func(...uintptr) uintptr { return f.engine.UserfreeString("Uncaught ReferenceError: nope is not defined") }).
		On("get_script_resource_name", func(...uintptr) uintptr { return f.engine.UserfreeString("app.js") }).
		Returns("get_line_number", 3).
		Returns("get_start_column", 7)

	var throw bool
	context := f.object(descriptor.V8Context).On("eval", func(args ...uintptr) uintptr {
		assert.Equal(t, "app.js", ffi.StringAt(args[2]))
		if throw {
			ffi.SetWord(args[5], 0, exception.Addr())
			return 0
		}
		ffi.SetWord(args[4], 0, value.Addr())
		return 1
	})
	f.engine.Export("cef_v8context_get_current_context", func(...uintptr) uintptr { return context.Addr() })

	ctx, err := f.b.CurrentContext()
	require.NoError(t, err)
	defer ctx.Release()

	v, err := ctx.Eval("'ok'", "app.js", 1)
	require.NoError(t, err)
	s, err := v.StringValue()
	require.NoError(t, err)
	assert.Equal(t, "ok", s)
	v.Release()
	assert.Zero(t, value.Refs())

	throw = true
	_, err = ctx.Eval("nope", "app.js", 1)
	var se *ScriptError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "app.js:3:7: Uncaught ReferenceError: nope is not defined", se.Error())
	assert.Zero(t, exception.Refs())
}

func TestContextIsSame(t *testing.T) {
	f := newFixture(t)
	f.initialize(nil)
	context := f.object(descriptor.V8Context)
	f.engine.Export("cef_v8context_get_current_context", func(...uintptr) uintptr {
		f.engine.AddRef(context.Addr())
		return context.Addr()
	})
	ctx, err := f.b.CurrentContext()
	require.NoError(t, err)
	defer ctx.Release()
	again, err := f.b.CurrentContext()
	require.NoError(t, err)
	defer again.Release()

	same, err := ctx.IsSame(again)
	require.NoError(t, err)
	assert.True(t, same)

	f.engine.ResetCalls()
	same, err = ctx.IsSame(nil)
	require.NoError(t, err)
	assert.False(t, same)
	assert.Zero(t, f.engine.TotalCalls())
}

func TestEvalFailsWithoutResult(t *testing.T) {
	f := newFixture(t)
	f.initialize(nil)
	context := f.object(descriptor.V8Context).Returns("eval", 0)
	f.engine.Export("cef_v8context_get_current_context", func(...uintptr) uintptr { return context.Addr() })
	ctx, err := f.b.CurrentContext()
	require.NoError(t, err)
	defer ctx.Release()

	_, err = ctx.Eval("1", "", 0)
	assert.Equal(t, types.ForeignStatus{Op: "cef_v8context_t.eval"}, err)
}

func TestSetValueKeepsOwnership(t *testing.T) {
	f := newFixture(t)
	f.initialize(nil)
	var attr uintptr
	global := f.object(descriptor.V8Value).On("set_value_bykey", func(args ...uintptr) uintptr {
		assert.Equal(t, "answer", ffi.StringAt(args[1]))
		attr = args[3]
		f.engine.Release(args[2])
		return 1
	})
	context := f.object(descriptor.V8Context).On("get_global", func(...uintptr) uintptr { return global.Addr() })
	f.engine.Export("cef_v8context_get_current_context", func(...uintptr) uintptr { return context.Addr() })
	answer := f.object(descriptor.V8Value)
	f.engine.Export("cef_v8value_create_int", func(...uintptr) uintptr { return answer.Addr() })

	ctx, err := f.b.CurrentContext()
	require.NoError(t, err)
	defer ctx.Release()
	g, err := ctx.Global()
	require.NoError(t, err)
	defer g.Release()
	val, err := f.b.NewInt(42)
	require.NoError(t, err)

	ok, err := g.SetValue("answer", val, types.V8PropertyReadOnly|types.V8PropertyDontDelete)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, 5, attr)
	assert.False(t, val.Released())
	assert.EqualValues(t, 1, answer.Refs())
	val.Release()
	assert.Zero(t, answer.Refs())
}

func TestV8OutsideRenderer(t *testing.T) {
	f := newFixture(t)
	_, err := f.b.NewString("x")
	var le types.LifecycleError
	require.ErrorAs(t, err, &le)

	f.initialize(nil)
	f.onThread.Store(false)
	f.engine.ResetCalls()
	_, err = f.b.CurrentContext()
	require.Equal(t, types.WrongThread{Op: "cef_v8context_get_current_context", Want: types.RendererThread}, err)
	assert.Zero(t, f.engine.TotalCalls())
}
