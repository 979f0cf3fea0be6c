// Package config reads the environment-driven server settings.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config stores environment-driven settings for the server.
type Config struct {
	// CLIPath is the WezTerm CLI invocation prefix, split into words.
	CLIPath string `env:"WEZTERM_CLI_PATH" envDefault:"wezterm cli"`
	// Shell runs every WezTerm command line.
	Shell string `env:"WEZTERM_MCP_SHELL" envDefault:"/bin/sh"`
	// CommandTimeout bounds each WezTerm invocation.
	CommandTimeout time.Duration `env:"WEZTERM_MCP_COMMAND_TIMEOUT" envDefault:"30s"`
	// MaxOutput caps combined stdout and stderr bytes of an invocation.
	MaxOutput int `env:"WEZTERM_MCP_MAX_OUTPUT" envDefault:"1048576"`
	// ConfigPath is an optional server YAML file; empty uses the embedded default.
	ConfigPath string `env:"WEZTERM_MCP_CONFIG"`
	// LogLevel sets the logger level.
	LogLevel string `env:"WEZTERM_MCP_LOG_LEVEL" envDefault:"info"`
	// Lang selects the troubleshooting hint language.
	Lang string `env:"WEZTERM_MCP_LANG" envDefault:"en"`
	// ShutdownTimeout controls graceful shutdown duration.
	ShutdownTimeout time.Duration `env:"WEZTERM_MCP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	// OTLPEndpoint enables telemetry export when set.
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	// OTLPHeaders are extra exporter headers as key=value pairs.
	OTLPHeaders string `env:"OTEL_EXPORTER_OTLP_HEADERS"`
}

// Load parses environment variables into Config.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.CommandTimeout <= 0 {
		return fmt.Errorf("WEZTERM_MCP_COMMAND_TIMEOUT must be positive")
	}
	if c.MaxOutput <= 0 {
		return fmt.Errorf("WEZTERM_MCP_MAX_OUTPUT must be positive")
	}
	if c.Shell == "" {
		return fmt.Errorf("WEZTERM_MCP_SHELL must not be empty")
	}
	return nil
}
