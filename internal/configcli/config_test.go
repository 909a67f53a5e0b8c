package configcli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mfulz/powergeist/internal/configloader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv(configloader.EnvConfigPath, "")
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "unix", cfg.Network)
	assert.Equal(t, "/tmp/powergeist.sock", cfg.Address)
	assert.Equal(t, "warn", cfg.Logger.Level)
	assert.True(t, cfg.Logger.ToStderr)

	assert.Same(t, cfg, configloader.MustGetConfig[*Config]())
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "powerctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("network: tcp\naddress: 127.0.0.1:7778\n"), 0o644))
	t.Setenv("POWERGEIST_CTL_LOG_LEVEL", "debug")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "tcp", cfg.Network)
	assert.Equal(t, "127.0.0.1:7778", cfg.Address)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadConfig_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "powerctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("network: [tcp\n"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
