package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocef/cef/internal/descriptor"
	"github.com/gocef/cef/types"
)

func TestPostTask(t *testing.T) {
	f := newFixture(t)
	f.initialize(nil)
	var posted []uintptr
	var thread types.ThreadID
	f.engine.Export("cef_post_task", func(args ...uintptr) uintptr {
		thread = types.ThreadID(args[0])
		posted = append(posted, args[1])
		return 1
	})

	ran := 0
	require.NoError(t, f.b.PostTask(types.TIDIO, func() { ran++ }))
	require.Len(t, posted, 1)
	assert.Equal(t, types.TIDIO, thread)
	assert.Zero(t, ran)
	// the engine owns the task until it ran
	assert.Equal(t, 1, f.b.callbacks.Live())

	f.engine.Dispatch(posted[0], f.desc(descriptor.Task), "execute")
	assert.Equal(t, 1, ran)
	assert.True(t, f.engine.Release(posted[0]))
	assert.Zero(t, f.b.callbacks.Live())
}

func TestPostDelayedTask(t *testing.T) {
	f := newFixture(t)
	f.initialize(nil)
	var delay uintptr
	f.engine.Export("cef_post_delayed_task", func(args ...uintptr) uintptr {
		delay = args[2]
		f.engine.Release(args[1])
		return 1
	})
	require.NoError(t, f.b.PostDelayedTask(types.TIDUI, func() {}, 1500*time.Millisecond))
	assert.EqualValues(t, 1500, delay)
	assert.Zero(t, f.b.callbacks.Live())
}

func TestPostTaskRejected(t *testing.T) {
	f := newFixture(t)
	err := f.b.PostTask(types.TIDUI, func() {})
	var le types.LifecycleError
	require.ErrorAs(t, err, &le)
	assert.Zero(t, f.engine.Calls("cef_post_task"))

	f.initialize(nil)
	err = f.b.PostTask(types.ThreadID(42), func() {})
	assert.Equal(t, types.ForeignStatus{Op: "cef_post_task", Code: 42}, err)

	f.engine.Export("cef_post_task", func(args ...uintptr) uintptr {
		f.engine.Release(args[1])
		return 0
	})
	err = f.b.PostTask(types.TIDUI, func() {})
	assert.Equal(t, types.ForeignStatus{Op: "cef_post_task"}, err)
	assert.Zero(t, f.b.callbacks.Live())
}

func TestTaskExecutor(t *testing.T) {
	f := newFixture(t)
	f.initialize(nil)
	var task uintptr
	f.engine.Export("cef_post_task", func(args ...uintptr) uintptr {
		assert.EqualValues(t, types.TIDRenderer, args[0])
		task = args[1]
		return 1
	})
	done := false
	require.NoError(t, f.b.TaskExecutor(types.TIDRenderer).Submit(func() { done = true }))
	f.engine.Dispatch(task, f.desc(descriptor.Task), "execute")
	f.engine.Release(task)
	assert.True(t, done)
}
