package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestDefaultLoggerIsReady(t *testing.T) {
	require.NotNil(t, Log)
	assert.True(t, Log.Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.False(t, Log.Desugar().Core().Enabled(zapcore.DebugLevel))
}

func TestApply_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "powergeist.log")
	t.Cleanup(func() { _ = Apply(DefaultConfig()) })

	require.NoError(t, Apply(Config{
		Level:     "debug",
		ToFile:    true,
		FilePath:  path,
		MaxSizeMB: 1,
	}))

	Log.Debugw("volume probe", "level", 42)
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "volume probe")
	assert.Contains(t, string(data), "level")
}

func TestApply_InvalidLevelFallsBackToInfo(t *testing.T) {
	t.Cleanup(func() { _ = Apply(DefaultConfig()) })

	require.NoError(t, Apply(Config{Level: "loud", ToStderr: true}))
	assert.True(t, Log.Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.False(t, Log.Desugar().Core().Enabled(zapcore.DebugLevel))
}

func TestApply_JSONFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "powergeist.json.log")
	t.Cleanup(func() { _ = Apply(DefaultConfig()) })

	require.NoError(t, Apply(Config{Level: "info", Format: "json", ToFile: true, FilePath: path}))
	Log.Infow("[action] success", "action", "sleep")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"action":"sleep"`)
	assert.Contains(t, string(data), `"timestamp":`)
}

func TestApply_UnknownFormatKeepsLogger(t *testing.T) {
	before := Log
	err := Apply(Config{Level: "debug", Format: "xml", ToStdout: true})
	assert.EqualError(t, err, "unknown log format: xml")
	assert.Same(t, before, Log)
}
