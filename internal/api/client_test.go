package api

import (
	"bytes"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocef/cef/internal/descriptor"
	"github.com/gocef/cef/internal/testlib"
	"github.com/gocef/cef/types"
)

func TestClientCallbacksInOrder(t *testing.T) {
	f := newFixture(t)
	f.initialize(nil)
	browser := f.object(descriptor.Browser).Returns("get_identifier", 9)
	frame := f.object(descriptor.Frame)

	var events []string
	client, err := f.b.NewClient(ClientHandler{
		OnAfterCreated: func(br *Browser) {
			id, err := br.Identifier()
			require.NoError(t, err)
			assert.Equal(t, 9, id)
			events = append(events, "created")
		},
		OnLoadStart: func(_ *Browser, fr *Frame, transition types.TransitionType) {
			require.NotNil(t, fr)
			events = append(events, "start")
			assert.Equal(t, types.TransitionType(1), transition)
		},
		OnLoadEnd: func(_ *Browser, _ *Frame, status int) {
			events = append(events, "end")
			assert.Equal(t, 200, status)
		},
		OnTitleChange: func(_ *Browser, title string) {
			events = append(events, "title:"+title)
		},
		DoClose: func(*Browser) bool { return true },
	})
	require.NoError(t, err)

	var clientAddr uintptr
	f.exportBrowser(browser, &clientAddr)
	br, err := f.b.CreateBrowserSync(types.WindowInfo{}, client, "about:blank", types.BrowserSettings{})
	require.NoError(t, err)
	client.Release()
	require.NotZero(t, clientAddr)

	clientDesc := f.desc(descriptor.Client)
	lifeSpan := f.engine.Dispatch(clientAddr, clientDesc, "get_life_span_handler")
	load := f.engine.Dispatch(clientAddr, clientDesc, "get_load_handler")
	display := f.engine.Dispatch(clientAddr, clientDesc, "get_display_handler")
	require.NotZero(t, lifeSpan)
	require.NotZero(t, load)
	require.NotZero(t, display)
	assert.Zero(t, f.engine.Dispatch(clientAddr, clientDesc, "get_render_handler"))

	pass := func(o *testlib.Object) uintptr {
		f.engine.AddRef(o.Addr())
		return o.Addr()
	}
	lifeDesc, loadDesc, displayDesc := f.desc(descriptor.LifeSpanHandler), f.desc(descriptor.LoadHandler), f.desc(descriptor.DisplayHandler)
	for range 2 {
		f.engine.Dispatch(lifeSpan, lifeDesc, "on_after_created", pass(browser))
		f.engine.Dispatch(load, loadDesc, "on_load_start", pass(browser), pass(frame), 1)
		f.engine.Dispatch(display, displayDesc, "on_title_change", pass(browser), f.engine.String("Example"))
		f.engine.Dispatch(load, loadDesc, "on_load_end", pass(browser), pass(frame), 200)
	}
	assert.Equal(t, []string{
		"created", "start", "title:Example", "end",
		"created", "start", "title:Example", "end",
	}, events)
	assert.EqualValues(t, 1, f.engine.Dispatch(lifeSpan, lifeDesc, "do_close", pass(browser)))

	// every callback argument was released again
	assert.EqualValues(t, 1, browser.Refs())
	assert.EqualValues(t, 1, frame.Refs())

	// the engine lets go of the handlers and the client when the browser closes
	for _, table := range []uintptr{lifeSpan, load, display} {
		f.engine.Release(table)
	}
	assert.True(t, f.engine.Release(clientAddr))
	assert.Zero(t, f.b.callbacks.Live())

	br.Release()
	f.shutdown()
}

func TestClientWithoutCallbacks(t *testing.T) {
	f := newFixture(t)
	client, err := f.b.NewClient(ClientHandler{})
	require.NoError(t, err)
	assert.Equal(t, 1, f.b.callbacks.Live())
	client.Release()
	assert.Zero(t, f.b.callbacks.Live())
}

func TestCallbackPanicReported(t *testing.T) {
	var reported []error
	f := newFixture(t, WithErrorHook(func(err error) { reported = append(reported, err) }))
	f.initialize(nil)
	browser := f.object(descriptor.Browser)

	client, err := f.b.NewClient(ClientHandler{
		DoClose: func(*Browser) bool { panic("handler bug") },
	})
	require.NoError(t, err)
	defer client.Release()
	table := client.pass()
	defer f.engine.Release(table)

	lifeSpan := f.engine.Dispatch(table, f.desc(descriptor.Client), "get_life_span_handler")
	defer f.engine.Release(lifeSpan)
	f.engine.AddRef(browser.Addr())
	ret := f.engine.Dispatch(lifeSpan, f.desc(descriptor.LifeSpanHandler), "do_close", browser.Addr())
	assert.Zero(t, ret)
	require.Len(t, reported, 1)
	assert.ErrorContains(t, reported[0], "handler bug")
	assert.EqualValues(t, 1, browser.Refs())
}

// fakeMessage is a process message with a list of binary arguments kept
// by the fake engine.
type fakeMessage struct {
	msg  *testlib.Object
	list *testlib.Object
	args map[uintptr]uintptr
	data map[uintptr][]byte
}

func newFakeMessage(f *fixture, name string) *fakeMessage {
	m := &fakeMessage{args: make(map[uintptr]uintptr), data: make(map[uintptr][]byte)}
	m.list = f.object(descriptor.ListValue).
		On("set_binary", func(args ...uintptr) uintptr {
			m.args[args[1]] = args[2]
			return 1
		}).
		On("get_binary", func(args ...uintptr) uintptr {
			bin, ok := m.args[args[1]]
			if !ok {
				return 0
			}
			f.engine.AddRef(bin)
			return bin
		})
	m.msg = f.object(descriptor.ProcessMessage).
		On("get_name", func(...uintptr) uintptr { return f.engine.UserfreeString(name) }).
		On("get_argument_list", func(...uintptr) uintptr {
			f.engine.AddRef(m.list.Addr())
			return m.list.Addr()
		})
	f.engine.Export("cef_process_message_create", func(...uintptr) uintptr { return m.msg.Addr() })
	f.engine.Export("cef_binary_value_create", func(args ...uintptr) uintptr {
		bz := bytes.Clone(unsafe.Slice((*byte)(unsafe.Pointer(args[0])), args[1]))
		bin := f.object(descriptor.BinaryValue)
		bin.Returns("get_size", uintptr(len(bz)))
		bin.On("get_data", func(args ...uintptr) uintptr {
			n := min(int(args[2]), len(bz)-int(args[3]))
			copy(unsafe.Slice((*byte)(unsafe.Pointer(args[1])), args[2]), bz[args[3]:])
			return uintptr(n)
		})
		m.data[bin.Addr()] = bz
		return bin.Addr()
	})
	return m
}

func TestProcessMessagePayload(t *testing.T) {
	f := newFixture(t)
	f.initialize(nil)
	fake := newFakeMessage(f, "ping")

	sent := types.MessagePayload{Name: "ping", Args: []any{"hello", int8(3)}, Meta: map[string]string{"trace": "abc"}}
	msg, err := f.b.NewPayloadMessage(sent)
	require.NoError(t, err)
	require.Len(t, fake.args, 1)

	name, err := msg.Name()
	require.NoError(t, err)
	assert.Equal(t, "ping", name)

	got, err := msg.Payload()
	require.NoError(t, err)
	assert.Equal(t, sent.Name, got.Name)
	assert.Equal(t, sent.Meta, got.Meta)
	require.Len(t, got.Args, 2)
	assert.Equal(t, "hello", got.Args[0])
	assert.EqualValues(t, 3, got.Args[1])

	// the list and binary handles taken while encoding and decoding are gone
	assert.Equal(t, 1, f.b.LiveHandles())
	assert.EqualValues(t, 1, fake.list.Refs())

	frame := f.object(descriptor.Frame)
	var target, passed uintptr
	frame.On("send_process_message", func(args ...uintptr) uintptr {
		target, passed = args[1], args[2]
		return 0
	})
	fr := &Frame{ref{b: f.b, h: f.b.adopt(descriptor.Frame, frame.Addr())}}
	defer fr.Release()
	require.NoError(t, fr.SendProcessMessage(types.PIDRenderer, msg))
	assert.Equal(t, uintptr(types.PIDRenderer), target)
	assert.Equal(t, fake.msg.Addr(), passed)
	assert.True(t, msg.Released())
	// the engine holds the only reference now
	assert.EqualValues(t, 1, fake.msg.Refs())
}

func TestProcessMessageWithoutPayload(t *testing.T) {
	f := newFixture(t)
	f.initialize(nil)
	newFakeMessage(f, "empty")
	msg, err := f.b.NewProcessMessage("empty")
	require.NoError(t, err)
	defer msg.Release()
	_, err = msg.Payload()
	var np types.NullPointer
	require.ErrorAs(t, err, &np)
}

func TestProcessMessageReceived(t *testing.T) {
	f := newFixture(t)
	f.initialize(nil)
	fake := newFakeMessage(f, "ping")
	out, err := f.b.NewPayloadMessage(types.MessagePayload{Name: "ping", Args: []any{"x"}})
	require.NoError(t, err)
	table := out.h.Pass()
	out.Release()

	var got types.MessagePayload
	var source types.ProcessID
	client, err := f.b.NewClient(ClientHandler{
		OnProcessMessageReceived: func(_ *Browser, _ *Frame, from types.ProcessID, msg *ProcessMessage) bool {
			source = from
			got, err = msg.Payload()
			require.NoError(t, err)
			return true
		},
	})
	require.NoError(t, err)
	defer client.Release()

	browser := f.object(descriptor.Browser)
	handled := f.engine.Dispatch(client.obj.Addr(), f.desc(descriptor.Client), "on_process_message_received",
		browser.Addr(), 0, uintptr(types.PIDRenderer), table)
	assert.EqualValues(t, 1, handled)
	assert.Equal(t, types.PIDRenderer, source)
	assert.Equal(t, "ping", got.Name)
	assert.Zero(t, fake.msg.Refs())
	assert.Zero(t, browser.Refs())
}
