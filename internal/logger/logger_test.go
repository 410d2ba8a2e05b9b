package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	log, err := New(Config{Level: "info", Format: "text", Output: "stdout"})
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "verbose", Format: "text", Output: "stdout"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestNewInvalidFormat(t *testing.T) {
	_, err := New(Config{Level: "info", Format: "xml", Output: "stdout"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log format")
}

func TestNewFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "noteforge.log")

	log, err := New(Config{Level: "debug", Format: "json", Output: path})
	require.NoError(t, err)

	log.Info("written to file", Field{Key: "k", Value: "v"})
	assert.FileExists(t, path)
}

func TestParseLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "WARN"} {
		_, ok := parseLevel(level)
		assert.True(t, ok, level)
	}

	_, ok := parseLevel("trace")
	assert.False(t, ok)
}

func TestWith(t *testing.T) {
	log, err := New(Config{Level: "info", Format: "text", Output: "stderr"})
	require.NoError(t, err)

	child := log.With(Field{Key: "component", Value: "test"})
	assert.NotNil(t, child)
	assert.NotSame(t, log, child)
}
