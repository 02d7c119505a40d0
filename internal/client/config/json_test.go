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

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeTempJSON(t, dir, "client.json", map[string]any{
		"api_base_url":    "https://api.example/api",
		"database_path":   "/var/lib/ps.db",
		"session_secret":  "s3cret",
		"request_timeout": "7s",
		"toast_duration":  1500000000,
	})

	t.Run("overlays present keys", func(t *testing.T) {
		cfg := &Config{APIKey: "keep", LogLevel: "warn"}
		require.NoError(t, parseJSON(cfg, []string{"-config", path}))

		assert.Equal(t, "https://api.example/api", cfg.APIBaseURL)
		assert.Equal(t, "/var/lib/ps.db", cfg.DatabasePath)
		assert.Equal(t, "s3cret", cfg.SessionSecret)
		assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 1500*time.Millisecond, cfg.ToastDuration)
		assert.Equal(t, "keep", cfg.APIKey)
		assert.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("no flag means no changes", func(t *testing.T) {
		cfg := &Config{APIBaseURL: "defaults", RequestTimeout: 42 * time.Second}
		require.NoError(t, parseJSON(cfg, []string{"repl"}))

		assert.Equal(t, "defaults", cfg.APIBaseURL)
		assert.Equal(t, 42*time.Second, cfg.RequestTimeout)
	})

	t.Run("missing file", func(t *testing.T) {
		err := parseJSON(&Config{}, []string{"-c", filepath.Join(dir, "missing.json")})
		require.Error(t, err)
	})

	t.Run("malformed file", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o600))

		err := parseJSON(&Config{}, []string{"-c", bad})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config file")
	})
}
