package internal

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "novapool.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
app_name: pooltest
storage:
  workdir: /tmp/pool
  file: rel
bufferpool:
  capacity: 16
log:
  level: debug
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "pooltest", cfg.AppName)
	require.Equal(t, "/tmp/pool", cfg.Storage.Workdir)
	require.Equal(t, "rel", cfg.Storage.File)
	require.Equal(t, 16, cfg.BufferPool.Capacity)

	lvl, err := cfg.LogLevel()
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, lvl)
}

func TestLoadConfig_DefaultsFillGaps(t *testing.T) {
	path := writeConfig(t, "bufferpool:\n  capacity: 3\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "novapool", cfg.AppName)
	require.Equal(t, "./data", cfg.Storage.Workdir)
	require.Equal(t, "pages", cfg.Storage.File)
	require.Equal(t, 3, cfg.BufferPool.Capacity)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	path := writeConfig(t, "bufferpool:\n  capacity: 3\n")
	t.Setenv("NOVAPOOL_BUFFERPOOL_CAPACITY", "64")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 64, cfg.BufferPool.Capacity)
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "bufferpool:\n  capacity: -1\n"))
	require.ErrorContains(t, err, "bufferpool.capacity")

	_, err = LoadConfig(writeConfig(t, "log:\n  level: loud\n"))
	require.ErrorContains(t, err, "log.level")
}

func TestDefaultConfig(t *testing.T) {
	cfg, err := DefaultConfig()
	require.NoError(t, err)
	require.Equal(t, 128, cfg.BufferPool.Capacity)
}
