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
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:8000/api", c.APIBaseURL)
	assert.Equal(t, "profilespaces.db", c.DatabasePath)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, 3200*time.Millisecond, c.ToastDuration)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
	assert.Empty(t, c.APIKey)
	assert.Empty(t, c.SessionSecret)
}

func TestLoad_NoSourcesKeepsDefaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Equal(t, &want, cfg)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeTempJSON(t, "", "", map[string]any{
		"api_base_url":    "https://json.example/api",
		"api_key":         "json-key",
		"request_timeout": "20s",
		"log_format":      "json",
	})
	t.Setenv("PROFILESPACES_API_KEY", "env-key")
	t.Setenv("PROFILESPACES_REQUEST_TIMEOUT", "30s")

	cfg, err := Load([]string{"-c", path, "-t", "5", "repl"})
	require.NoError(t, err)

	assert.Equal(t, "https://json.example/api", cfg.APIBaseURL, "json beats defaults")
	assert.Equal(t, "env-key", cfg.APIKey, "env beats json")
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout, "flags beat env")
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_EnvFile(t *testing.T) {
	const key = "PROFILESPACES_SESSION_SECRET"
	_, had := os.LookupEnv(key)
	require.False(t, had, "test expects %s to be unset", key)
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	path := filepath.Join(t.TempDir(), "client.env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=from-dotenv\n"), 0o600))

	cfg, err := Load([]string{"-env", path})
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.SessionSecret)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing env file", func(t *testing.T) {
		_, err := Load([]string{"-env", filepath.Join(t.TempDir(), "nope.env")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "load env file")
	})

	t.Run("bad env duration", func(t *testing.T) {
		t.Setenv("PROFILESPACES_TOAST_DURATION", "soon")
		_, err := Load(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse env")
	})

	t.Run("empty base url", func(t *testing.T) {
		_, err := Load([]string{"-a", ""})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "api_base_url")
	})

	t.Run("non-positive timeout", func(t *testing.T) {
		_, err := Load([]string{"-t", "0"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "request_timeout")
	})
}

func TestParseFlags(t *testing.T) {
	var cfg Config
	cfg.LoadDefaults()

	err := parseFlags(&cfg, []string{
		"-a", "https://flags.example/api",
		"-k", "flag-key",
		"-d", "/tmp/ps.db",
		"-l", "debug",
		"-x", "ignored",
		"settings",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://flags.example/api", cfg.APIBaseURL)
	assert.Equal(t, "flag-key", cfg.APIKey)
	assert.Equal(t, "/tmp/ps.db", cfg.DatabasePath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout, "-t absent keeps the current timeout")
}
