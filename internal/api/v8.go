package api

import (
	"fmt"

	"github.com/gocef/cef/internal/descriptor"
	"github.com/gocef/cef/internal/ffi"
	"github.com/gocef/cef/internal/handle"
	"github.com/gocef/cef/internal/trampoline"
	"github.com/gocef/cef/types"
)

// V8Context is a script context of a renderer frame. Everything V8 runs on
// the renderer main thread.
type V8Context struct{ ref }

// V8Value is a script value.
type V8Value struct{ ref }

// V8Handler implements a native script function. this is the receiver,
// nil for plain calls. A returned error is thrown as a script exception;
// a nil value returns undefined. The binding releases the returned value
// once the engine took it.
type V8Handler func(name string, this *V8Value, args []*V8Value) (*V8Value, error)

// ScriptError is an exception raised while evaluating script.
type ScriptError struct {
	Message  string
	Source   string
	Resource string
	Line     int
	Column   int
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Resource, e.Line, e.Column, e.Message)
}

func (b *Binding) v8Context(h *handle.Handle) *V8Context {
	if h == nil {
		return nil
	}
	return &V8Context{ref{b: b, h: h}}
}

func (b *Binding) v8Value(h *handle.Handle) *V8Value {
	if h == nil {
		return nil
	}
	return &V8Value{ref{b: b, h: h}}
}

// CurrentContext is the context script currently runs in.
func (b *Binding) CurrentContext() (*V8Context, error) {
	const op = "cef_v8context_get_current_context"
	if err := b.create(op, types.RendererThread); err != nil {
		return nil, err
	}
	h, err := b.wrap(descriptor.V8Context, b.lib.Call(b.sym.V8CurrentContext), op)
	if err != nil {
		return nil, err
	}
	return b.v8Context(h), nil
}

// InContext reports whether any context was entered.
func (b *Binding) InContext() (bool, error) {
	const op = "cef_v8context_in_context"
	if err := b.create(op, types.RendererThread); err != nil {
		return false, err
	}
	return truthy(b.lib.Call(b.sym.V8InContext)), nil
}

func (b *Binding) newValue(op string, fn uintptr, args ...uintptr) (*V8Value, error) {
	if err := b.create(op, types.RendererThread); err != nil {
		return nil, err
	}
	h, err := b.wrap(descriptor.V8Value, b.lib.Call(fn, args...), op)
	if err != nil {
		return nil, err
	}
	return b.v8Value(h), nil
}

func (b *Binding) NewUndefined() (*V8Value, error) {
	return b.newValue("cef_v8value_create_undefined", b.sym.V8CreateUndefined)
}

func (b *Binding) NewBool(v bool) (*V8Value, error) {
	return b.newValue("cef_v8value_create_bool", b.sym.V8CreateBool, boolWord(v))
}

func (b *Binding) NewInt(v int32) (*V8Value, error) {
	return b.newValue("cef_v8value_create_int", b.sym.V8CreateInt, uintptr(v))
}

func (b *Binding) NewString(s string) (*V8Value, error) {
	var a ffi.Arena
	defer a.Free()
	return b.newValue("cef_v8value_create_string", b.sym.V8CreateString, a.String(s))
}

// NewFunction creates a script function backed by fn.
func (b *Binding) NewFunction(name string, fn V8Handler) (*V8Value, error) {
	const op = "cef_v8value_create_function"
	if err := b.create(op, types.RendererThread); err != nil {
		return nil, err
	}
	obj, err := b.callbacks.Install(b.desc(descriptor.V8Handler), map[string]trampoline.Func{
		"execute": b.execute(fn),
	})
	if err != nil {
		return nil, err
	}
	defer obj.Release()

	var a ffi.Arena
	defer a.Free()
	h, err := b.wrap(descriptor.V8Value, b.lib.Call(b.sym.V8CreateFunction, a.String(name), obj.Pass()), op)
	if err != nil {
		return nil, err
	}
	return b.v8Value(h), nil
}

// execute serves cef_v8handler_t.execute: name, object, argument count,
// argument array, retval out pointer, exception out string.
func (b *Binding) execute(fn V8Handler) trampoline.Func {
	return func(args []uintptr) uintptr {
		this := b.adopt(descriptor.V8Value, args[1])
		n := int(args[2])
		owned := make([]*handle.Handle, 0, n+1)
		owned = append(owned, this)
		values := make([]*V8Value, n)
		for i := range n {
			h := b.adopt(descriptor.V8Value, ffi.Word(args[3], i))
			owned = append(owned, h)
			values[i] = b.v8Value(h)
		}
		defer release(owned...)

		ret, err := fn(ffi.StringAt(args[0]), b.v8Value(this), values)
		if err != nil {
			if !b.setString(args[5], err.Error()) {
				b.logger.Warn().Err(err).Msg("script exception dropped")
			}
			return 1
		}
		if ret != nil {
			if args[4] != 0 {
				ffi.SetWord(args[4], 0, ret.h.Pass())
			}
			ret.Release()
		}
		return 1
	}
}

// setString fills an engine owned cef_string_t with a copy of s.
func (b *Binding) setString(dst uintptr, s string) bool {
	if dst == 0 || b.sym.StringSet == 0 {
		return false
	}
	var a ffi.Arena
	defer a.Free()
	src, n := a.UTF16(s)
	return truthy(b.lib.Call(b.sym.StringSet, src, uintptr(n), dst, 1))
}

func (c *V8Context) Clone() *V8Context {
	return &V8Context{c.clone()}
}

func (c *V8Context) IsValid() (bool, error) {
	return c.flag("is_valid")
}

// IsSame reports whether both refer to the same context.
func (c *V8Context) IsSame(other *V8Context) (bool, error) {
	if other == nil {
		return false, nil
	}
	if c.h.Same(other.h) {
		return true, nil
	}
	if err := c.b.enter(c.op("is_same"), c.h.Descriptor().Affinity()); err != nil {
		return false, err
	}
	return truthy(c.h.Invoke("is_same", other.h.Pass())), nil
}

// Global is the global object of the context.
func (c *V8Context) Global() (*V8Value, error) {
	h, err := c.produce(c.b.create, descriptor.V8Value, "get_global")
	if err != nil {
		return nil, err
	}
	return c.b.v8Value(h), nil
}

func (c *V8Context) Browser() (*Browser, error) {
	h, err := c.produce(c.b.create, descriptor.Browser, "get_browser")
	if err != nil {
		return nil, err
	}
	return c.b.browser(h), nil
}

func (c *V8Context) Frame() (*Frame, error) {
	h, err := c.produce(c.b.create, descriptor.Frame, "get_frame")
	if err != nil {
		return nil, err
	}
	return c.b.frame(h), nil
}

// Enter makes the context current. Every Enter needs a matching Exit.
func (c *V8Context) Enter() (bool, error) {
	return c.flag("enter")
}

func (c *V8Context) Exit() (bool, error) {
	return c.flag("exit")
}

// Eval runs code in the context and returns its completion value. A script
// exception comes back as *ScriptError.
func (c *V8Context) Eval(code, scriptURL string, startLine int) (*V8Value, error) {
	op := c.op("eval")
	if err := c.b.create(op, c.h.Descriptor().Affinity()); err != nil {
		return nil, err
	}
	var a ffi.Arena
	defer a.Free()
	retval, exception := a.Words(0), a.Words(0)
	ok := truthy(c.h.Invoke("eval", a.String(code), a.String(scriptURL), intWord(startLine), retval, exception))

	ret := c.b.adopt(descriptor.V8Value, ffi.Word(retval, 0))
	if exc := c.b.adopt(descriptor.V8Exception, ffi.Word(exception, 0)); exc != nil {
		defer exc.Release()
		release(ret)
		return nil, c.b.scriptError(exc)
	}
	if !ok || ret == nil {
		release(ret)
		return nil, types.ForeignStatus{Op: op, Code: 0}
	}
	return c.b.v8Value(ret), nil
}

func (b *Binding) scriptError(exc *handle.Handle) *ScriptError {
	return &ScriptError{
		Message:  b.str(exc.Invoke("get_message")),
		Source:   b.str(exc.Invoke("get_source_line")),
		Resource: b.str(exc.Invoke("get_script_resource_name")),
		Line:     int(int32(exc.Invoke("get_line_number"))),
		Column:   int(int32(exc.Invoke("get_start_column"))),
	}
}

func (v *V8Value) Clone() *V8Value {
	return &V8Value{v.clone()}
}

func (v *V8Value) IsValid() (bool, error)     { return v.flag("is_valid") }
func (v *V8Value) IsUndefined() (bool, error) { return v.flag("is_undefined") }
func (v *V8Value) IsNull() (bool, error)      { return v.flag("is_null") }
func (v *V8Value) IsBool() (bool, error)      { return v.flag("is_bool") }
func (v *V8Value) IsInt() (bool, error)       { return v.flag("is_int") }
func (v *V8Value) IsString() (bool, error)    { return v.flag("is_string") }
func (v *V8Value) IsObject() (bool, error)    { return v.flag("is_object") }
func (v *V8Value) IsArray() (bool, error)     { return v.flag("is_array") }
func (v *V8Value) IsFunction() (bool, error)  { return v.flag("is_function") }

func (v *V8Value) BoolValue() (bool, error) {
	return v.flag("get_bool_value")
}

func (v *V8Value) IntValue() (int32, error) {
	n, err := v.number("get_int_value")
	return int32(n), err
}

func (v *V8Value) StringValue() (string, error) {
	return v.text("get_string_value")
}

func (v *V8Value) FunctionName() (string, error) {
	return v.text("get_function_name")
}

func (v *V8Value) ArrayLength() (int, error) {
	return v.number("get_array_length")
}

func (v *V8Value) HasValue(key string) (bool, error) {
	var a ffi.Arena
	defer a.Free()
	return v.flag("has_value_bykey", a.String(key))
}

// Value reads an object property.
func (v *V8Value) Value(key string) (*V8Value, error) {
	var a ffi.Arena
	defer a.Free()
	h, err := v.produce(v.b.create, descriptor.V8Value, "get_value_bykey", a.String(key))
	if err != nil {
		return nil, err
	}
	return v.b.v8Value(h), nil
}

func (v *V8Value) ValueAt(index int) (*V8Value, error) {
	h, err := v.produce(v.b.create, descriptor.V8Value, "get_value_byindex", intWord(index))
	if err != nil {
		return nil, err
	}
	return v.b.v8Value(h), nil
}

// SetValue sets an object property. val stays owned by the caller.
func (v *V8Value) SetValue(key string, val *V8Value, attr types.V8PropertyAttribute) (bool, error) {
	if err := v.b.enter(v.op("set_value_bykey"), v.h.Descriptor().Affinity()); err != nil {
		return false, err
	}
	var a ffi.Arena
	defer a.Free()
	return truthy(v.h.Invoke("set_value_bykey", a.String(key), val.h.Pass(), uintptr(attr))), nil
}

func (v *V8Value) DeleteValue(key string) (bool, error) {
	var a ffi.Arena
	defer a.Free()
	return v.flag("delete_value_bykey", a.String(key))
}

// ExecuteFunction calls the function with this as receiver, which may be
// nil. The result is nil when the call threw.
func (v *V8Value) ExecuteFunction(this *V8Value, args ...*V8Value) (*V8Value, error) {
	op := v.op("execute_function")
	if err := v.b.create(op, v.h.Descriptor().Affinity()); err != nil {
		return nil, err
	}
	var a ffi.Arena
	defer a.Free()
	var thisAddr, argv uintptr
	if this != nil {
		thisAddr = this.h.Pass()
	}
	if len(args) > 0 {
		words := make([]uintptr, len(args))
		for i, arg := range args {
			words[i] = arg.h.Pass()
		}
		argv = a.Words(words...)
	}
	h, err := v.b.wrap(descriptor.V8Value, v.h.Invoke("execute_function", thisAddr, uintptr(len(args)), argv), op)
	if err != nil {
		return nil, err
	}
	return v.b.v8Value(h), nil
}
