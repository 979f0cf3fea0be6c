// Package wezterm builds `wezterm cli` invocations and runs them through a Runner.
package wezterm

import (
	"context"
	"strconv"

	"github.com/codex-k8s/wezterm-mcp-server/internal/executil"
)

// DefaultPrefix is the invocation used when WEZTERM_CLI_PATH is unset.
var DefaultPrefix = []string{"wezterm", "cli"}

// Runner executes an escaped shell command.
type Runner interface {
	Run(ctx context.Context, command string) (executil.Result, error)
}

// Client issues wezterm cli verbs.
type Client struct {
	// Prefix is the program path followed by fixed argument tokens.
	Prefix []string
	// Runner executes the escaped command.
	Runner Runner
}

// SendTextOptions tunes a send-text call.
type SendTextOptions struct {
	// PaneID targets a pane; nil means the active pane.
	PaneID *int64
	// NoPaste sends text as keystrokes instead of a bracketed paste.
	NoPaste bool
}

// SendText writes text into a pane.
func (c Client) SendText(ctx context.Context, text string, opts SendTextOptions) error {
	args := []string{"send-text"}
	if opts.PaneID != nil {
		args = append(args, "--pane-id", strconv.FormatInt(*opts.PaneID, 10))
	}
	if opts.NoPaste {
		args = append(args, "--no-paste")
	}
	args = append(args, text)
	_, err := c.run(ctx, args...)
	return err
}

// GetText returns pane text including escape sequences. A positive
// scrollback reads that many lines back from the bottom; zero or negative
// reads the current screen only.
func (c Client) GetText(ctx context.Context, scrollback int) (string, error) {
	args := []string{"get-text", "--escapes"}
	if scrollback > 0 {
		args = append(args, "--start-line", strconv.Itoa(-scrollback))
	}
	return c.run(ctx, args...)
}

// List returns the pane listing.
func (c Client) List(ctx context.Context) (string, error) {
	return c.run(ctx, "list")
}

// ActivatePane focuses a pane.
func (c Client) ActivatePane(ctx context.Context, paneID int64) error {
	_, err := c.run(ctx, "activate-pane", "--pane-id", strconv.FormatInt(paneID, 10))
	return err
}

// Command returns the escaped command string for a verb and its arguments.
func (c Client) Command(args ...string) string {
	prefix := c.Prefix
	if len(prefix) == 0 {
		prefix = DefaultPrefix
	}
	tokens := make([]string, 0, len(prefix)+len(args))
	tokens = append(tokens, prefix...)
	tokens = append(tokens, args...)
	return executil.Join(tokens...)
}

func (c Client) run(ctx context.Context, args ...string) (string, error) {
	res, err := c.Runner.Run(ctx, c.Command(args...))
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}
