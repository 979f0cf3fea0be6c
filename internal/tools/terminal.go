package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/codex-k8s/wezterm-mcp-server/internal/control"
	"github.com/codex-k8s/wezterm-mcp-server/internal/protocol"
	"github.com/codex-k8s/wezterm-mcp-server/internal/wezterm"
)

// WriteToTerminal types command plus a newline into the active pane.
func (h *Handlers) WriteToTerminal(ctx context.Context, command string) protocol.Response {
	err := h.Client.SendText(ctx, command+"\n", wezterm.SendTextOptions{NoPaste: true})
	if err != nil {
		return h.fail("Failed to write to terminal", protocol.Execution(err), "hints.write_to_terminal", hintData{})
	}
	return protocol.Text("Command sent to WezTerm: " + command)
}

// WriteToSpecificPane types command plus a newline into the given pane.
func (h *Handlers) WriteToSpecificPane(ctx context.Context, command string, paneID int64) protocol.Response {
	phrase := fmt.Sprintf("Failed to write to pane %d", paneID)
	data := hintData{PaneID: paneID}
	if err := validatePaneID(paneID); err != nil {
		return h.fail(phrase, err, "hints.write_to_specific_pane", data)
	}
	err := h.Client.SendText(ctx, command+"\n", wezterm.SendTextOptions{PaneID: &paneID, NoPaste: true})
	if err != nil {
		return h.fail(phrase, protocol.Execution(err), "hints.write_to_specific_pane", data)
	}
	return protocol.Text(fmt.Sprintf("Command sent to pane %d: %s", paneID, command))
}

// SendControlCharacter sends the control byte for a letter mnemonic to the active pane.
func (h *Handlers) SendControlCharacter(ctx context.Context, character string) protocol.Response {
	const phrase = "Failed to send control character"
	if character == "" {
		return h.fail(phrase, protocol.Validationf("Character must be a non-empty string"), "hints.send_control_character", hintData{})
	}
	seq, ok := control.Lookup(character)
	if !ok {
		err := protocol.Validationf("Unknown control character: %s. Supported: %s", character, strings.Join(control.Supported(), ", "))
		return h.fail(phrase, err, "hints.send_control_character", hintData{})
	}
	if err := h.Client.SendText(ctx, seq, wezterm.SendTextOptions{}); err != nil {
		return h.fail(phrase, protocol.Execution(err), "hints.send_control_character", hintData{})
	}
	return protocol.Text("Sent control character: Ctrl+" + strings.ToUpper(character))
}
