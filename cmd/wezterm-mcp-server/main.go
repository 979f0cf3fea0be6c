package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/codex-k8s/wezterm-mcp-server/configs"
	"github.com/codex-k8s/wezterm-mcp-server/internal/app"
	"github.com/codex-k8s/wezterm-mcp-server/internal/approver/limits"
	"github.com/codex-k8s/wezterm-mcp-server/internal/audit"
	"github.com/codex-k8s/wezterm-mcp-server/internal/config"
	"github.com/codex-k8s/wezterm-mcp-server/internal/dispatch"
	"github.com/codex-k8s/wezterm-mcp-server/internal/dsl"
	"github.com/codex-k8s/wezterm-mcp-server/internal/executil"
	"github.com/codex-k8s/wezterm-mcp-server/internal/log"
	"github.com/codex-k8s/wezterm-mcp-server/internal/render"
	"github.com/codex-k8s/wezterm-mcp-server/internal/runtime"
	"github.com/codex-k8s/wezterm-mcp-server/internal/startup"
	"github.com/codex-k8s/wezterm-mcp-server/internal/telemetry"
	"github.com/codex-k8s/wezterm-mcp-server/internal/templates"
	"github.com/codex-k8s/wezterm-mcp-server/internal/tools"
	"github.com/codex-k8s/wezterm-mcp-server/internal/wezterm"
)

func main() {
	embeddedConfig := flag.String("embedded-config", "", "Use embedded config from configs/ (filename)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := log.New(cfg.LogLevel, os.Stderr)
	if err := run(cfg, *embeddedConfig, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, embeddedConfig string, logger *slog.Logger) error {
	rendered, err := loadServerConfig(cfg.ConfigPath, embeddedConfig)
	if err != nil {
		return fmt.Errorf("render config: %w", err)
	}
	dslCfg, err := dsl.Load(rendered)
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	bundle, err := templates.Load(cfg.Lang)
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	prefix, err := executil.SplitPrefix(cfg.CLIPath)
	if err != nil {
		return fmt.Errorf("WEZTERM_CLI_PATH: %w", err)
	}
	runner := executil.Runner{
		Shell:     cfg.Shell,
		Timeout:   cfg.CommandTimeout,
		MaxOutput: cfg.MaxOutput,
	}

	baseCtx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)
	defer cancel()

	tel, err := telemetry.Init(baseCtx, telemetry.Config{
		Endpoint:       cfg.OTLPEndpoint,
		Headers:        cfg.OTLPHeaders,
		ServiceName:    dslCfg.Server.Name,
		ServiceVersion: dslCfg.Server.Version,
	})
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer tel.Shutdown(context.WithoutCancel(baseCtx))

	builder := runtime.Builder{
		Logger: logger,
		Audit:  audit.New(logger),
		Dispatcher: dispatch.Dispatcher{Handlers: &tools.Handlers{
			Client:    wezterm.Client{Prefix: prefix, Runner: runner},
			Templates: bundle,
			Logger:    logger,
		}},
		Telemetry: tel,
	}
	if guardCfg := dslCfg.Guard; guardCfg != nil {
		guard, err := limits.New(guardPolicy(guardCfg), bundle)
		if err != nil {
			return fmt.Errorf("build guard: %w", err)
		}
		builder.Guard = guard
	}

	server, err := builder.Build(dslCfg)
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	if err := startup.Run(baseCtx, dslCfg.Server.StartupHooks, prefix, runner, logger); err != nil {
		return err
	}

	application, err := app.New(baseCtx, dslCfg.Server, server, logger, cfg.ShutdownTimeout)
	if err != nil {
		return err
	}
	logger.Info("serving", "transport", dslCfg.Server.Transport, "cli", executil.Join(prefix...), "lang", bundle.Lang())
	return application.Run(baseCtx)
}

func loadServerConfig(path, embedded string) ([]byte, error) {
	switch {
	case embedded != "":
		raw, err := configs.Load(embedded)
		if err != nil {
			return nil, err
		}
		return render.RenderBytes(embedded, raw)
	case path != "":
		return render.RenderFile(path)
	default:
		raw, err := configs.Load(configs.DefaultName)
		if err != nil {
			return nil, err
		}
		return render.RenderBytes(configs.DefaultName, raw)
	}
}

func guardPolicy(cfg *dsl.GuardConfig) limits.Policy {
	fields := make(map[string]limits.FieldPolicy, len(cfg.Fields))
	for name, field := range cfg.Fields {
		fields[name] = limits.FieldPolicy{
			Regex:     field.Regex,
			Min:       field.Min,
			Max:       field.Max,
			MinLength: field.MinLength,
			MaxLength: field.MaxLength,
		}
	}
	return limits.Policy{
		Name:          cfg.Name,
		Tools:         cfg.Tools,
		MaxTotal:      cfg.MaxTotal,
		RatePerMinute: cfg.RatePerMinute,
		Fields:        fields,
	}
}
