// Package dispatch routes tool calls by name to the terminal handlers.
package dispatch

import (
	"context"

	"github.com/codex-k8s/wezterm-mcp-server/internal/constants"
	"github.com/codex-k8s/wezterm-mcp-server/internal/protocol"
)

// Request is a parsed tool call.
type Request struct {
	// Name is the tool name.
	Name string
	// Arguments are the decoded tool arguments; nil is treated as empty.
	Arguments map[string]any
}

// Handlers is the set of operations the dispatcher routes to.
type Handlers interface {
	WriteToTerminal(ctx context.Context, command string) protocol.Response
	WriteToSpecificPane(ctx context.Context, command string, paneID int64) protocol.Response
	ReadTerminalOutput(ctx context.Context, lines int) protocol.Response
	SendControlCharacter(ctx context.Context, character string) protocol.Response
	ListPanes(ctx context.Context) protocol.Response
	SwitchPane(ctx context.Context, paneID int64) protocol.Response
}

// Dispatcher is the single entry point for tool calls.
type Dispatcher struct {
	Handlers Handlers
}

// Names lists the routable tool names.
func Names() []string {
	return []string{
		constants.ToolWriteToTerminal,
		constants.ToolReadTerminalOutput,
		constants.ToolSendControlCharacter,
		constants.ToolListPanes,
		constants.ToolSwitchPane,
		constants.ToolWriteToSpecificPane,
	}
}

// Dispatch validates the envelope, routes the call and always returns a
// response; envelope and argument errors are reported as IsError responses.
func (d Dispatcher) Dispatch(ctx context.Context, req *Request) protocol.Response {
	resp, err := d.route(ctx, req)
	if err != nil {
		return protocol.Failure("Error: " + err.Error())
	}
	return resp
}

func (d Dispatcher) route(ctx context.Context, req *Request) (protocol.Response, error) {
	if req == nil {
		return protocol.Response{}, protocol.Envelopef("Invalid request: missing params")
	}
	if req.Name == "" {
		return protocol.Response{}, protocol.Envelopef("Invalid request: missing tool name")
	}
	args := req.Arguments
	if args == nil {
		args = map[string]any{}
	}

	switch req.Name {
	case constants.ToolWriteToTerminal:
		command, err := stringArg(args, constants.ArgCommand)
		if err != nil {
			return protocol.Response{}, err
		}
		return d.Handlers.WriteToTerminal(ctx, command), nil

	case constants.ToolReadTerminalOutput:
		lines, err := linesArg(args, constants.DefaultOutputLines)
		if err != nil {
			return protocol.Response{}, err
		}
		return d.Handlers.ReadTerminalOutput(ctx, lines), nil

	case constants.ToolSendControlCharacter:
		character, err := stringArg(args, constants.ArgCharacter)
		if err != nil {
			return protocol.Response{}, err
		}
		return d.Handlers.SendControlCharacter(ctx, character), nil

	case constants.ToolListPanes:
		return d.Handlers.ListPanes(ctx), nil

	case constants.ToolSwitchPane:
		paneID, err := paneIDArg(args)
		if err != nil {
			return protocol.Response{}, err
		}
		return d.Handlers.SwitchPane(ctx, paneID), nil

	case constants.ToolWriteToSpecificPane:
		command, err := stringArg(args, constants.ArgCommand)
		if err != nil {
			return protocol.Response{}, err
		}
		paneID, err := paneIDArg(args)
		if err != nil {
			return protocol.Response{}, err
		}
		return d.Handlers.WriteToSpecificPane(ctx, command, paneID), nil

	default:
		return protocol.Response{}, protocol.Envelopef("Unknown tool: %s", req.Name)
	}
}
