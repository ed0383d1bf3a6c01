package testlib

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocef/cef/internal/descriptor"
)

func TestCloseUnpinsObjects(t *testing.T) {
	r := descriptor.NewRegistry(nil)
	require.NoError(t, r.RegisterAll(descriptor.Catalog()))
	e := New()
	obj := e.NewObject(r.MustLookup(descriptor.Browser)).Returns("get_identifier", 3)
	e.String("kept until close")
	assert.EqualValues(t, 1, obj.Refs())
	assert.True(t, e.HasOneRef(obj.Addr()))

	require.NoError(t, e.Close())
	require.NoError(t, e.Close())
	runtime.GC()
	runtime.GC()
}
