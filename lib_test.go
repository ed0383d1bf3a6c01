package cef

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocef/cef/internal/ffi"
	"github.com/gocef/cef/internal/testlib"
	"github.com/gocef/cef/types"
)

func TestVersion(t *testing.T) {
	assert.True(t, strings.HasSuffix(Version(), fmt.Sprintf("+cef%d", ABIVersion)))
}

func TestOpenMissingLibrary(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), LibraryName()))
	require.Error(t, err)
}

func TestNewChecksVersion(t *testing.T) {
	engine := testlib.New()
	defer engine.Close()
	engine.Export("cef_version_info", func(args ...uintptr) uintptr {
		if args[0] == ffi.VersionMajor {
			return ABIVersion - 1
		}
		return 0
	})
	_, err := New(engine)
	var vm types.VersionMismatch
	require.ErrorAs(t, err, &vm)
	assert.Equal(t, ABIVersion-1, vm.Runtime)
}

func TestQueue(t *testing.T) {
	q := NewQueue(1)
	var e Executor = q
	ran := false
	require.NoError(t, e.Submit(func() { ran = true }))
	q.Drain()
	assert.True(t, ran)
}
