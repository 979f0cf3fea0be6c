// Package tools implements the terminal operations exposed as MCP tools.
//
// Every handler validates its arguments, issues one wezterm cli call and
// converts the outcome into a protocol.Response. Handlers never return Go
// errors: validation and execution failures become IsError responses.
package tools

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/codex-k8s/wezterm-mcp-server/internal/protocol"
	"github.com/codex-k8s/wezterm-mcp-server/internal/templates"
	"github.com/codex-k8s/wezterm-mcp-server/internal/wezterm"
)

// Handlers holds the dependencies shared by all operations.
type Handlers struct {
	// Client issues wezterm cli verbs.
	Client wezterm.Client
	// Templates renders troubleshooting hints; nil disables them.
	Templates templates.Renderer
	// Logger reports hint rendering failures; nil discards them.
	Logger *slog.Logger
}

// hintData is the template input for troubleshooting hints.
type hintData struct {
	CLI    string
	PaneID int64
	Lines  int
}

// fail formats err under phrase. Execution failures get
// troubleshooting hints from hintKey.
func (h *Handlers) fail(phrase string, err error, hintKey string, data hintData) protocol.Response {
	text := fmt.Sprintf("%s: %s", phrase, err.Error())
	if protocol.KindOf(err) != protocol.KindExecution {
		return protocol.Failure(text)
	}
	if hints := h.hints(hintKey, data); hints != "" {
		text += "\n\nTroubleshooting Steps:\n" + hints
	}
	return protocol.Failure(text)
}

func (h *Handlers) hints(key string, data hintData) string {
	if h.Templates == nil {
		return ""
	}
	data.CLI = h.cli()
	out, err := h.Templates.Render(key, data)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("render hint failed", "key", key, "error", err)
		}
		return ""
	}
	return strings.TrimSpace(out)
}

func (h *Handlers) cli() string {
	prefix := h.Client.Prefix
	if len(prefix) == 0 {
		prefix = wezterm.DefaultPrefix
	}
	return strings.Join(prefix, " ")
}

func validatePaneID(paneID int64) error {
	if paneID < 0 {
		return protocol.Validationf("Invalid pane ID: %d. Pane ID must be a non-negative integer.", paneID)
	}
	return nil
}
