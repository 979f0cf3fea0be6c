package dsl

// Config is the top-level YAML configuration.
type Config struct {
	// Server describes the MCP server settings.
	Server ServerConfig `yaml:"server"`
	// Guard optionally limits calls to terminal tools.
	Guard *GuardConfig `yaml:"guard"`
}

// ServerConfig defines MCP server settings.
type ServerConfig struct {
	// Name is the MCP server name.
	Name string `yaml:"name"`
	// Version is the MCP server version.
	Version string `yaml:"version"`
	// Transport selects the server transport ("stdio" or "http").
	Transport string `yaml:"transport"`
	// ShutdownTimeout overrides graceful shutdown duration.
	ShutdownTimeout string `yaml:"shutdown_timeout"`
	// StartupHooks defines one-time commands executed before serving.
	StartupHooks []HookConfig `yaml:"startup_hooks"`
	// HTTP configures the streamable HTTP transport.
	HTTP HTTPConfig `yaml:"http"`
}

// HTTPConfig configures the HTTP transport.
type HTTPConfig struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`
	// Path is the MCP HTTP endpoint path.
	Path string `yaml:"path"`
	// ReadTimeout limits request read time.
	ReadTimeout string `yaml:"read_timeout"`
	// WriteTimeout limits response write time.
	WriteTimeout string `yaml:"write_timeout"`
	// IdleTimeout controls idle connections.
	IdleTimeout string `yaml:"idle_timeout"`
	// Stateless disables session tracking.
	Stateless bool `yaml:"stateless"`
}

// HookConfig defines a startup hook command.
type HookConfig struct {
	// Command is the program to run.
	Command string `yaml:"command"`
	// CLI runs the configured wezterm invocation prefix instead of Command.
	CLI bool `yaml:"cli"`
	// Args are passed to the command as separate words.
	Args []string `yaml:"args"`
	// Timeout overrides the executor timeout for this hook.
	Timeout string `yaml:"timeout"`
}

// GuardConfig limits calls before they reach WezTerm.
type GuardConfig struct {
	// Name identifies the guard in audit entries.
	Name string `yaml:"name"`
	// Tools restricts the guard to these tools; empty guards all of them.
	Tools []string `yaml:"tools"`
	// MaxTotal caps calls per tool over the process lifetime.
	MaxTotal int `yaml:"max_total"`
	// RatePerMinute caps calls per tool per minute.
	RatePerMinute int `yaml:"rate_per_minute"`
	// Fields holds rules keyed by argument name.
	Fields map[string]FieldPolicy `yaml:"fields"`
}

// FieldPolicy defines validation rules for a tool argument.
type FieldPolicy struct {
	// Regex validates string value format.
	Regex string `yaml:"regex"`
	// Min sets numeric minimum.
	Min *float64 `yaml:"min"`
	// Max sets numeric maximum.
	Max *float64 `yaml:"max"`
	// MinLength sets string minimum length.
	MinLength *int `yaml:"min_length"`
	// MaxLength sets string maximum length.
	MaxLength *int `yaml:"max_length"`
}
