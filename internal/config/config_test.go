package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"WEZTERM_CLI_PATH", "WEZTERM_MCP_SHELL", "WEZTERM_MCP_COMMAND_TIMEOUT", "WEZTERM_MCP_MAX_OUTPUT",
		"WEZTERM_MCP_CONFIG", "WEZTERM_MCP_LOG_LEVEL", "WEZTERM_MCP_LANG", "WEZTERM_MCP_SHUTDOWN_TIMEOUT",
		"OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_HEADERS",
	} {
		t.Setenv(key, "")
	}
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "wezterm cli", cfg.CLIPath)
	assert.Equal(t, "/bin/sh", cfg.Shell)
	assert.Equal(t, 30*time.Second, cfg.CommandTimeout)
	assert.Equal(t, 1<<20, cfg.MaxOutput)
	assert.Equal(t, "", cfg.ConfigPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "en", cfg.Lang)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("WEZTERM_CLI_PATH", `"/Applications/WezTerm.app/Contents/MacOS/wezterm" cli`)
	t.Setenv("WEZTERM_MCP_COMMAND_TIMEOUT", "5s")
	t.Setenv("WEZTERM_MCP_MAX_OUTPUT", "4096")
	t.Setenv("WEZTERM_MCP_LANG", "ru")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, `"/Applications/WezTerm.app/Contents/MacOS/wezterm" cli`, cfg.CLIPath)
	assert.Equal(t, 5*time.Second, cfg.CommandTimeout)
	assert.Equal(t, 4096, cfg.MaxOutput)
	assert.Equal(t, "ru", cfg.Lang)
	assert.Equal(t, "http://localhost:4318", cfg.OTLPEndpoint)
}

func TestLoadRejects(t *testing.T) {
	tests := map[string]string{
		"WEZTERM_MCP_COMMAND_TIMEOUT": "0s",
		"WEZTERM_MCP_MAX_OUTPUT":      "-1",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}

	t.Run("unparsable", func(t *testing.T) {
		t.Setenv("WEZTERM_MCP_COMMAND_TIMEOUT", "soon")
		_, err := Load()
		require.Error(t, err)
	})
}
