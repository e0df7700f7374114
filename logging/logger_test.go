package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "warn", "error"} {
		log, err := New(Config{Level: level})
		require.NoError(t, err, level)
		assert.NotNil(t, log)
	}

	log, err := New(Config{Level: "warn"})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestProductionWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	log, err := New(Config{Level: "info", OutputPaths: []string{path}})
	require.NoError(t, err)

	log.Info("card written")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"card written"`)
	assert.Contains(t, string(data), `"level":"info"`)
}

func TestEncoding(t *testing.T) {
	assert.Equal(t, "console", encoding(true))
	assert.Equal(t, "json", encoding(false))
}
