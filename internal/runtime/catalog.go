package runtime

import (
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/codex-k8s/wezterm-mcp-server/internal/constants"
	"github.com/codex-k8s/wezterm-mcp-server/internal/control"
)

const writeWarning = " WARNING: This executes commands with your user permissions. Only use with trusted input."

func boolPtr(v bool) *bool {
	return &v
}

func objectSchema(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func paneIDProperty(purpose string) map[string]any {
	return map[string]any{
		"type":        "integer",
		"minimum":     0,
		"description": "ID of the pane to " + purpose + " (must be a non-negative integer)",
	}
}

var commandProperty = map[string]any{
	"type":        "string",
	"description": "The command to run or text to write to the terminal",
}

// catalog declares the tools in the order they are listed to clients.
func catalog() []*mcp.Tool {
	supported := strings.Join(control.Supported(), ",")

	return []*mcp.Tool{
		{
			Name:        constants.ToolWriteToTerminal,
			Description: "Writes text to the active WezTerm pane - often used to run commands." + writeWarning,
			InputSchema: objectSchema(map[string]any{
				constants.ArgCommand: commandProperty,
			}, constants.ArgCommand),
			Annotations: &mcp.ToolAnnotations{DestructiveHint: boolPtr(true), OpenWorldHint: boolPtr(false)},
		},
		{
			Name:        constants.ToolReadTerminalOutput,
			Description: "Reads output from the active WezTerm pane",
			InputSchema: objectSchema(map[string]any{
				constants.ArgLines: map[string]any{
					"type":        "integer",
					"maximum":     constants.MaxOutputLines,
					"description": "Number of lines to read from the terminal (default: 50, max: 10000). Use 0 or negative to get all current screen content.",
				},
			}),
			Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true, OpenWorldHint: boolPtr(false)},
		},
		{
			Name:        constants.ToolSendControlCharacter,
			Description: "Sends control characters to the active WezTerm pane. Supported: " + supported,
			InputSchema: objectSchema(map[string]any{
				constants.ArgCharacter: map[string]any{
					"type":        "string",
					"description": "Control character to send (e.g., 'c' for Ctrl+C, 'r' for Ctrl+R)",
				},
			}, constants.ArgCharacter),
			Annotations: &mcp.ToolAnnotations{DestructiveHint: boolPtr(true), OpenWorldHint: boolPtr(false)},
		},
		{
			Name:        constants.ToolListPanes,
			Description: "Lists all panes in the current WezTerm window",
			InputSchema: objectSchema(map[string]any{}),
			Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true, IdempotentHint: true, OpenWorldHint: boolPtr(false)},
		},
		{
			Name:        constants.ToolSwitchPane,
			Description: "Switches to a specific pane in WezTerm",
			InputSchema: objectSchema(map[string]any{
				constants.ArgPaneID: paneIDProperty("switch to"),
			}, constants.ArgPaneID),
			Annotations: &mcp.ToolAnnotations{DestructiveHint: boolPtr(false), IdempotentHint: true, OpenWorldHint: boolPtr(false)},
		},
		{
			Name:        constants.ToolWriteToSpecificPane,
			Description: "Writes text to a specific WezTerm pane by pane ID." + writeWarning,
			InputSchema: objectSchema(map[string]any{
				constants.ArgCommand: commandProperty,
				constants.ArgPaneID:  paneIDProperty("write to"),
			}, constants.ArgCommand, constants.ArgPaneID),
			Annotations: &mcp.ToolAnnotations{DestructiveHint: boolPtr(true), OpenWorldHint: boolPtr(false)},
		},
	}
}
