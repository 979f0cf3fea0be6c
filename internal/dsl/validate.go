package dsl

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/codex-k8s/wezterm-mcp-server/internal/constants"
	"github.com/codex-k8s/wezterm-mcp-server/internal/dispatch"
	"github.com/codex-k8s/wezterm-mcp-server/internal/timeutil"
)

// Validate applies defaults and verifies required fields.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if strings.TrimSpace(cfg.Server.Name) == "" {
		return fmt.Errorf("server.name is required")
	}
	if strings.TrimSpace(cfg.Server.Version) == "" {
		return fmt.Errorf("server.version is required")
	}

	cfg.Server.Transport = strings.ToLower(strings.TrimSpace(cfg.Server.Transport))
	switch cfg.Server.Transport {
	case "":
		cfg.Server.Transport = constants.TransportStdio
	case constants.TransportStdio, constants.TransportHTTP:
	default:
		return fmt.Errorf("server.transport must be %s or %s", constants.TransportStdio, constants.TransportHTTP)
	}
	if err := timeutil.CheckDuration("server.shutdown_timeout", cfg.Server.ShutdownTimeout); err != nil {
		return err
	}

	if cfg.Server.Transport == constants.TransportHTTP {
		if err := validateHTTP(&cfg.Server.HTTP); err != nil {
			return err
		}
	}

	for i, hook := range cfg.Server.StartupHooks {
		hasCommand := strings.TrimSpace(hook.Command) != ""
		if hook.CLI && hasCommand {
			return fmt.Errorf("server.startup_hooks[%d] sets both command and cli", i)
		}
		if !hook.CLI && !hasCommand {
			return fmt.Errorf("server.startup_hooks[%d].command is required", i)
		}
		if err := timeutil.CheckDuration(fmt.Sprintf("server.startup_hooks[%d].timeout", i), hook.Timeout); err != nil {
			return err
		}
	}

	if cfg.Guard != nil {
		if err := validateGuard(cfg.Guard); err != nil {
			return err
		}
	}
	return nil
}

func validateHTTP(cfg *HTTPConfig) error {
	if strings.TrimSpace(cfg.Listen) == "" {
		cfg.Listen = "127.0.0.1:8080"
	}
	if cfg.Path == "" {
		cfg.Path = "/mcp"
	}
	if !strings.HasPrefix(cfg.Path, "/") {
		return fmt.Errorf("server.http.path must start with /")
	}
	switch cfg.Path {
	case "/healthz", "/readyz":
		return fmt.Errorf("server.http.path %s is reserved", cfg.Path)
	}
	for field, value := range map[string]string{
		"server.http.read_timeout":  cfg.ReadTimeout,
		"server.http.write_timeout": cfg.WriteTimeout,
		"server.http.idle_timeout":  cfg.IdleTimeout,
	} {
		if err := timeutil.CheckDuration(field, value); err != nil {
			return err
		}
	}
	return nil
}

func validateGuard(cfg *GuardConfig) error {
	if cfg.MaxTotal < 0 {
		return fmt.Errorf("guard.max_total must be >= 0")
	}
	if cfg.RatePerMinute < 0 {
		return fmt.Errorf("guard.rate_per_minute must be >= 0")
	}
	known := dispatch.Names()
	for i, name := range cfg.Tools {
		if !slices.Contains(known, name) {
			return fmt.Errorf("guard.tools[%d]: unknown tool %s", i, name)
		}
	}
	for field, policy := range cfg.Fields {
		if strings.TrimSpace(field) == "" {
			return fmt.Errorf("guard.fields: empty field name")
		}
		if policy.Regex != "" {
			if _, err := regexp.Compile(policy.Regex); err != nil {
				return fmt.Errorf("guard.fields.%s.regex is invalid: %w", field, err)
			}
		}
		if policy.MinLength != nil && policy.MaxLength != nil && *policy.MinLength > *policy.MaxLength {
			return fmt.Errorf("guard.fields.%s: min_length exceeds max_length", field)
		}
		if policy.Min != nil && policy.Max != nil && *policy.Min > *policy.Max {
			return fmt.Errorf("guard.fields.%s: min exceeds max", field)
		}
	}
	return nil
}
