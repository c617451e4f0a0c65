package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:50051", c.ServerEndpointAddr)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, 15*time.Second, c.PushTimeout)
	assert.Equal(t, 30*time.Second, c.PullTimeout)
	assert.Equal(t, 75*time.Second, c.RealtimeReadTimeout)
	require.NoError(t, c.Validate())
}

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "entrysync.db", cfg.DatabasePath)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"server_endpoint_addr":  "json:9000",
		"database_path":         "json.db",
		"online_check_interval": "10s",
		"pull_timeout":          5000000000,
		"realtime_read_timeout": "20s",
	})
	t.Setenv("ENTRYSYNC_DB_PATH", "env.db")
	t.Setenv("ENTRYSYNC_PUSH_TIMEOUT", "7s")

	cfg, err := Load([]string{"-c", path, "-a", "flag:1", "-unrelated", "x"})
	require.NoError(t, err)

	assert.Equal(t, "flag:1", cfg.ServerEndpointAddr, "flag beats json")
	assert.Equal(t, "env.db", cfg.DatabasePath, "env beats json")
	assert.Equal(t, 10*time.Second, cfg.OnlineCheckInterval)
	assert.Equal(t, 20*time.Second, cfg.RealtimeReadTimeout)
	assert.Equal(t, 5*time.Second, cfg.PullTimeout)
	assert.Equal(t, 7*time.Second, cfg.PushTimeout)
	assert.Equal(t, "ws://127.0.0.1:8080/v1/changes", cfg.RealtimeURL, "untouched default")
}

func TestLoad_RealtimeReadTimeout(t *testing.T) {
	t.Run("env", func(t *testing.T) {
		t.Setenv("ENTRYSYNC_REALTIME_READ_TIMEOUT", "90s")
		cfg, err := Load(nil)
		require.NoError(t, err)
		assert.Equal(t, 90*time.Second, cfg.RealtimeReadTimeout)
	})

	t.Run("flag beats env", func(t *testing.T) {
		t.Setenv("ENTRYSYNC_REALTIME_READ_TIMEOUT", "90s")
		cfg, err := Load([]string{"-realtime-read-timeout", "45s"})
		require.NoError(t, err)
		assert.Equal(t, 45*time.Second, cfg.RealtimeReadTimeout)
	})

	t.Run("zero with a realtime url", func(t *testing.T) {
		_, err := Load([]string{"-realtime-read-timeout", "0s"})
		require.ErrorContains(t, err, "realtime read timeout")
	})

	t.Run("zero without a realtime url", func(t *testing.T) {
		cfg, err := Load([]string{"-r=", "-realtime-read-timeout", "0s"})
		require.NoError(t, err)
		assert.Empty(t, cfg.RealtimeURL)
	})
}

func TestLoad_JSONKeepsAbsentKeys(t *testing.T) {
	path := writeTempJSON(t, map[string]any{"log_level": "debug"})

	cfg, err := Load([]string{"-config=" + path})
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "127.0.0.1:50051", cfg.ServerEndpointAddr)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		_, err := Load([]string{"-c", bad})
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load([]string{"-c", filepath.Join(t.TempDir(), "nope.json")})
		require.Error(t, err)
	})

	t.Run("bad flag duration", func(t *testing.T) {
		_, err := Load([]string{"-i", "abc"})
		require.Error(t, err)
	})

	t.Run("bad env duration", func(t *testing.T) {
		t.Setenv("ENTRYSYNC_PULL_TIMEOUT", "soon")
		_, err := Load(nil)
		require.Error(t, err)
	})

	t.Run("non-positive interval", func(t *testing.T) {
		_, err := Load([]string{"-i", "0s"})
		require.ErrorContains(t, err, "online check interval")
	})
}
