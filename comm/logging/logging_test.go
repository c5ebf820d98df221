package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ptp.log")
	l, err := NewLogger(Config{Level: "debug", File: path, MaxSize: 1, NoConsole: true})
	require.NoError(t, err)

	l.Debugf("[%-9s] container %d", "OnTraffic", 42)
	_ = l.Sync()

	bts, err := os.ReadFile(path)
	require.NoError(t, err)
	t.Logf("%s", bts)
	assert.Contains(t, string(bts), "container 42")
}

func TestNewLogger_BadLevel(t *testing.T) {
	_, err := NewLogger(Config{Level: "chatty"})
	assert.Error(t, err)
}

func TestLogger_SetLevel(t *testing.T) {
	l, err := NewLogger(Config{NoConsole: true})
	require.NoError(t, err)
	assert.False(t, l.Enabled(DebugLevel))
	l.SetLevel(DebugLevel)
	assert.True(t, l.Enabled(DebugLevel))
}

func TestInit_KeepsPointer(t *testing.T) {
	log := GetDefaultLogger()
	require.NoError(t, Init(Config{Level: "warn", NoConsole: true}))
	assert.Same(t, log, GetDefaultLogger())
	assert.False(t, log.Enabled(InfoLevel))
	require.NoError(t, Init(Config{}))
	assert.True(t, log.Enabled(InfoLevel))
}
