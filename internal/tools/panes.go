package tools

import (
	"context"
	"fmt"

	"github.com/codex-k8s/wezterm-mcp-server/internal/constants"
	"github.com/codex-k8s/wezterm-mcp-server/internal/protocol"
)

const emptyOutput = "(empty output)"

// ReadTerminalOutput returns text from the active pane. Positive lines reads
// that much scrollback; zero or negative reads only the current screen.
func (h *Handlers) ReadTerminalOutput(ctx context.Context, lines int) protocol.Response {
	const phrase = "Failed to read terminal output"
	data := hintData{Lines: lines}
	if lines > constants.MaxOutputLines {
		err := protocol.Validationf("Lines cannot exceed %d (requested: %d)", constants.MaxOutputLines, lines)
		return h.fail(phrase, err, "hints.read_terminal_output", data)
	}
	out, err := h.Client.GetText(ctx, lines)
	if err != nil {
		return h.fail(phrase, protocol.Execution(err), "hints.read_terminal_output", data)
	}
	if out == "" {
		return protocol.Text(emptyOutput)
	}
	return protocol.Text(out)
}

// ListPanes returns the raw wezterm pane listing.
func (h *Handlers) ListPanes(ctx context.Context) protocol.Response {
	out, err := h.Client.List(ctx)
	if err != nil {
		return h.fail("Failed to list panes", protocol.Execution(err), "hints.list_panes", hintData{})
	}
	return protocol.Text(out)
}

// SwitchPane activates the given pane.
func (h *Handlers) SwitchPane(ctx context.Context, paneID int64) protocol.Response {
	const phrase = "Failed to switch pane"
	data := hintData{PaneID: paneID}
	if err := validatePaneID(paneID); err != nil {
		return h.fail(phrase, err, "hints.switch_pane", data)
	}
	if err := h.Client.ActivatePane(ctx, paneID); err != nil {
		return h.fail(phrase, protocol.Execution(err), "hints.switch_pane", data)
	}
	return protocol.Text(fmt.Sprintf("Switched to pane %d", paneID))
}
