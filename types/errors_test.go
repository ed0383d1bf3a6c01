package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	cases := map[string]struct {
		err      error
		expected string
	}{
		"version mismatch": {VersionMismatch{Interface: "cef_browser_t", Compiled: 126, Runtime: 127}, "abi version mismatch for cef_browser_t: compiled 126, runtime 127"},
		"unknown":          {UnknownInterface{Name: "cef_foo_t"}, "unknown interface: cef_foo_t"},
		"null":             {NullPointer{Op: "browser_view_create"}, "null pointer returned by browser_view_create"},
		"wrong thread":     {WrongThread{Op: "window.show", Want: UIThread}, "window.show must run on the ui thread"},
		"status":           {ForeignStatus{Op: "initialize", Code: 3}, "initialize failed with engine status 3"},
		"use after":        {UseAfterRelease{Interface: "cef_client_t"}, "use of released cef_client_t"},
		"use after op":     {UseAfterRelease{Interface: "cef_client_t", Op: "get_life_span_handler"}, "use of released cef_client_t in get_life_span_handler"},
		"lifecycle":        {LifecycleError{Op: "create browser", State: Initializing}, "create browser not allowed while initializing"},
		"exit":             {Exit{Code: 2}, "process exit: 2"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.err.Error())
		})
	}
}

func TestIsDefect(t *testing.T) {
	require.False(t, IsDefect(nil))
	require.True(t, IsDefect(VersionMismatch{Interface: "cef_app_t"}))
	require.True(t, IsDefect(fmt.Errorf("startup: %w", VersionMismatch{Interface: "cef_app_t"})))
	require.True(t, IsDefect(UseAfterRelease{Interface: "cef_task_t"}))
	require.False(t, IsDefect(WrongThread{Op: "x"}))
	require.False(t, IsDefect(ForeignStatus{Op: "x", Code: 1}))
	require.False(t, IsDefect(errors.New("plain")))
}

func TestErrorsAs(t *testing.T) {
	err := fmt.Errorf("create browser: %w", NullPointer{Op: "browser_host_create_browser_sync"})
	var np NullPointer
	require.True(t, errors.As(err, &np))
	assert.Equal(t, "browser_host_create_browser_sync", np.Op)
}

func TestAffinityTag(t *testing.T) {
	id, ok := UIThread.ThreadID()
	require.True(t, ok)
	assert.Equal(t, TIDUI, id)
	id, ok = RendererThread.ThreadID()
	require.True(t, ok)
	assert.Equal(t, TIDRenderer, id)
	_, ok = AnyThread.ThreadID()
	require.False(t, ok)
	assert.Equal(t, "io", IOThread.String())
	assert.True(t, TIDIO.Valid())
	assert.False(t, ThreadID(42).Valid())
}

func TestPayloadCodec(t *testing.T) {
	in := MessagePayload{Name: "ping", Args: []any{"hello", int64(3)}, Meta: map[string]string{"frame": "main"}}
	bz, err := EncodePayload(in)
	require.NoError(t, err)
	out, err := DecodePayload(bz)
	require.NoError(t, err)
	assert.Equal(t, "ping", out.Name)
	require.Len(t, out.Args, 2)
	assert.Equal(t, "hello", out.Args[0])
	assert.Equal(t, "main", out.Meta["frame"])

	_, err = DecodePayload([]byte{0xc1})
	require.Error(t, err)
}
