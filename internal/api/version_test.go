package api

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBindingVersion(t *testing.T) {
	require.Regexp(t, `^([0-9]+)\.([0-9]+)\.([0-9]+)\+cef[0-9]+$`, BindingVersion())
}
