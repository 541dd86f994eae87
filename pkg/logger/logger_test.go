package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	lvl, err := parseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, lvl)

	lvl, err = parseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, lvl)

	_, err = parseLevel("verbose")
	assert.Error(t, err)
}

func TestNew_WritesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "app.log")

	log, err := New(file, "info")
	require.NoError(t, err)

	log.Info("window created id=%s", "abc")
	log.Debug("not written at info level")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "window created id=abc")
	assert.NotContains(t, string(data), "not written")
}
