package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codex-k8s/wezterm-mcp-server/configs"
	"github.com/codex-k8s/wezterm-mcp-server/internal/render"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load([]byte("server:\n  name: wez\n  version: \"1.0\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "stdio", cfg.Server.Transport)
	assert.Nil(t, cfg.Guard)
}

func TestLoadHTTPDefaults(t *testing.T) {
	cfg, err := Load([]byte("server:\n  name: wez\n  version: \"1.0\"\n  transport: HTTP\n"))
	require.NoError(t, err)
	assert.Equal(t, "http", cfg.Server.Transport)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.HTTP.Listen)
	assert.Equal(t, "/mcp", cfg.Server.HTTP.Path)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{name: "empty", yaml: "", want: "server.name is required"},
		{name: "unknown key", yaml: "server:\n  name: a\n  version: b\n  tools: []\n", want: "parse yaml"},
		{name: "no version", yaml: "server:\n  name: a\n", want: "server.version is required"},
		{name: "transport", yaml: "server:\n  name: a\n  version: b\n  transport: sse\n", want: "server.transport must be stdio or http"},
		{name: "shutdown", yaml: "server:\n  name: a\n  version: b\n  shutdown_timeout: later\n", want: "server.shutdown_timeout is invalid"},
		{name: "http path", yaml: "server:\n  name: a\n  version: b\n  transport: http\n  http:\n    path: mcp\n", want: "server.http.path must start with /"},
		{name: "http reserved path", yaml: "server:\n  name: a\n  version: b\n  transport: http\n  http:\n    path: /healthz\n", want: "reserved"},
		{name: "http timeout", yaml: "server:\n  name: a\n  version: b\n  transport: http\n  http:\n    idle_timeout: -1s\n", want: "server.http.idle_timeout must be positive"},
		{name: "hook command", yaml: "server:\n  name: a\n  version: b\n  startup_hooks:\n    - args: [x]\n", want: "server.startup_hooks[0].command is required"},
		{name: "hook command and cli", yaml: "server:\n  name: a\n  version: b\n  startup_hooks:\n    - command: wezterm\n      cli: true\n", want: "server.startup_hooks[0] sets both command and cli"},
		{name: "hook timeout", yaml: "server:\n  name: a\n  version: b\n  startup_hooks:\n    - command: \"true\"\n      timeout: x\n", want: "server.startup_hooks[0].timeout is invalid"},
		{name: "guard tool", yaml: "server:\n  name: a\n  version: b\nguard:\n  tools: [rm]\n", want: "guard.tools[0]: unknown tool rm"},
		{name: "guard rate", yaml: "server:\n  name: a\n  version: b\nguard:\n  rate_per_minute: -1\n", want: "guard.rate_per_minute must be >= 0"},
		{name: "guard total", yaml: "server:\n  name: a\n  version: b\nguard:\n  max_total: -1\n", want: "guard.max_total must be >= 0"},
		{name: "guard regex", yaml: "server:\n  name: a\n  version: b\nguard:\n  fields:\n    command:\n      regex: \"(\"\n", want: "guard.fields.command.regex is invalid"},
		{name: "guard lengths", yaml: "server:\n  name: a\n  version: b\nguard:\n  fields:\n    command:\n      min_length: 5\n      max_length: 1\n", want: "min_length exceeds max_length"},
		{name: "guard bounds", yaml: "server:\n  name: a\n  version: b\nguard:\n  fields:\n    pane_id:\n      min: 5\n      max: 1\n", want: "min exceeds max"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateNil(t *testing.T) {
	assert.EqualError(t, Validate(nil), "config is nil")
}

func TestEmbeddedConfigsLoad(t *testing.T) {
	names := configs.Names()
	require.Contains(t, names, configs.DefaultName)
	require.Contains(t, names, "http.yaml")

	lookup := func(string) (string, bool) { return "", false }
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			raw, err := configs.Load(name)
			require.NoError(t, err)
			rendered, err := render.Renderer{LookupEnv: lookup}.Bytes(name, raw)
			require.NoError(t, err)
			cfg, err := Load(rendered)
			require.NoError(t, err)
			assert.Equal(t, "wezterm-mcp-server", cfg.Server.Name)
		})
	}
}

func TestEmbeddedHTTPGuard(t *testing.T) {
	raw, err := configs.Load("http.yaml")
	require.NoError(t, err)
	rendered, err := render.Renderer{LookupEnv: func(key string) (string, bool) {
		if key == "WEZTERM_MCP_RATE_PER_MINUTE" {
			return "5", true
		}
		return "", false
	}}.Bytes("http.yaml", raw)
	require.NoError(t, err)

	cfg, err := Load(rendered)
	require.NoError(t, err)
	require.NotNil(t, cfg.Guard)
	assert.Equal(t, 5, cfg.Guard.RatePerMinute)
	assert.Equal(t, []string{"write_to_terminal", "write_to_specific_pane", "send_control_character"}, cfg.Guard.Tools)
	require.NotNil(t, cfg.Guard.Fields["command"].MaxLength)
	assert.Equal(t, 4096, *cfg.Guard.Fields["command"].MaxLength)
	require.Len(t, cfg.Server.StartupHooks, 1)
	assert.True(t, cfg.Server.StartupHooks[0].CLI)
	assert.Empty(t, cfg.Server.StartupHooks[0].Command)
	assert.Equal(t, []string{"list"}, cfg.Server.StartupHooks[0].Args)
}
