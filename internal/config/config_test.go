package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 15*time.Second, cfg.HTTP.Heartbeat)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ShutdownTimeout)
}

func TestLoadFileWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	body := "log-level: debug\nhttp:\n  addr: \":9090\"\n  heartbeat: 2s\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("TTT_HTTP_ADDR", "127.0.0.1:7000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "127.0.0.1:7000", cfg.HTTP.Addr)
	assert.Equal(t, 2*time.Second, cfg.HTTP.Heartbeat)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
	assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "nope.yml")) })
}
