// Package startup runs the configured preflight commands before serving.
package startup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/codex-k8s/wezterm-mcp-server/internal/dsl"
	"github.com/codex-k8s/wezterm-mcp-server/internal/executil"
	"github.com/codex-k8s/wezterm-mcp-server/internal/timeutil"
)

// Run executes hooks sequentially through runner and stops at the first
// failure. Hooks marked cli run cliPrefix followed by their args. Each hook's
// words are escaped, so args never reach the shell as syntax.
func Run(ctx context.Context, hooks []dsl.HookConfig, cliPrefix []string, runner executil.Runner, logger *slog.Logger) error {
	for idx, hook := range hooks {
		var argv []string
		switch {
		case hook.CLI:
			if len(cliPrefix) == 0 {
				return fmt.Errorf("startup hook %d: cli prefix is empty", idx)
			}
			argv = append(append([]string{}, cliPrefix...), hook.Args...)
		case strings.TrimSpace(hook.Command) != "":
			argv = append([]string{hook.Command}, hook.Args...)
		default:
			continue
		}
		hookRunner := runner
		hookRunner.Timeout = timeutil.ParseDurationOrDefault(hook.Timeout, runner.Timeout)

		command := executil.Join(argv...)
		if logger != nil {
			logger.Info("running startup hook", "index", idx, "command", command)
		}

		result, err := hookRunner.Run(ctx, command)
		if err != nil {
			return fmt.Errorf("startup hook %d failed: %w", idx, err)
		}
		if logger != nil {
			if output := strings.TrimSpace(result.Stdout); output != "" {
				logger.Debug("startup hook output", "index", idx, "output", output)
			}
		}
	}
	return nil
}
