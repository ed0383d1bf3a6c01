package types

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cef.yaml")
	content := `
library_path: /opt/cef/libcef.so
start_url: https://example.org
settings:
  root_cache_path: /tmp/demo
  remote_debugging_port: 9222
browser:
  javascript: 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/cef/libcef.so", config.LibraryPath)
	assert.Equal(t, "https://example.org", config.StartURL)
	assert.Equal(t, "/tmp/demo", config.Settings.RootCachePath)
	assert.Equal(t, int32(9222), config.Settings.RemoteDebuggingPort)
	assert.Equal(t, StateDisabled, config.Browser.Javascript)
	// untouched defaults survive
	assert.True(t, config.Settings.NoSandbox)
	assert.Equal(t, "info", config.LogLevel)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "could not read config")

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("settings: [unterminated"), 0o600))
	_, err = LoadConfig(path)
	require.ErrorContains(t, err, "could not parse config")
}

func TestNewSettings(t *testing.T) {
	s := NewSettings()
	assert.True(t, s.NoSandbox)
	assert.Equal(t, int32(5566), s.RemoteDebuggingPort)
}
