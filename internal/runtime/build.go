// Package runtime exposes the terminal tools on an MCP server.
package runtime

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/codex-k8s/wezterm-mcp-server/internal/audit"
	"github.com/codex-k8s/wezterm-mcp-server/internal/dispatch"
	"github.com/codex-k8s/wezterm-mcp-server/internal/dsl"
	"github.com/codex-k8s/wezterm-mcp-server/internal/protocol"
	"github.com/codex-k8s/wezterm-mcp-server/internal/runtime/approver"
	"github.com/codex-k8s/wezterm-mcp-server/internal/security"
	"github.com/codex-k8s/wezterm-mcp-server/internal/telemetry"
)

// Builder constructs an MCP server from the DSL config.
type Builder struct {
	// Logger is used for structured logging.
	Logger *slog.Logger
	// Audit records tool call events.
	Audit audit.Logger
	// Dispatcher routes calls to the terminal handlers.
	Dispatcher dispatch.Dispatcher
	// Guard optionally vets calls before dispatch.
	Guard approver.Approver
	// Telemetry records spans and metrics; nil disables it.
	Telemetry *telemetry.Telemetry
}

// Build creates an MCP server with the terminal tools registered.
func (b Builder) Build(cfg *dsl.Config) (*mcp.Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if b.Dispatcher.Handlers == nil {
		return nil, fmt.Errorf("dispatcher has no handlers")
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Server.Name,
		Version: cfg.Server.Version,
	}, nil)

	routable := dispatch.Names()
	for _, tool := range catalog() {
		if !slices.Contains(routable, tool.Name) {
			return nil, fmt.Errorf("tool %s has no handler", tool.Name)
		}
		server.AddTool(tool, b.handler(tool.Name))
	}
	return server, nil
}

func (b Builder) handler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		correlationID := uuid.NewString()
		start := time.Now()
		ctx, finish := b.Telemetry.StartCall(ctx, name, correlationID)

		var raw json.RawMessage
		if req != nil && req.Params != nil {
			raw = req.Params.Arguments
		}
		args, err := decodeArguments(raw)
		if err != nil {
			resp := protocol.Failure("Error: Invalid request: " + err.Error())
			b.record(ctx, audit.Event{Type: audit.TypeToolError, Tool: name, CorrelationID: correlationID, Reason: resp.Message()})
			finish(telemetry.OutcomeError, resp.Message())
			return toResult(resp), nil
		}

		if b.Logger != nil {
			b.Logger.Info("tool call", "tool", name, "correlation_id", correlationID, "args", security.RedactArguments(args))
		}
		b.record(ctx, audit.Event{Type: audit.TypeToolCall, Tool: name, CorrelationID: correlationID})

		if denied, ok := b.guard(ctx, name, correlationID, args); !ok {
			finish(telemetry.OutcomeDenied, denied.Message())
			return toResult(denied), nil
		}

		resp := b.Dispatcher.Dispatch(ctx, &dispatch.Request{Name: name, Arguments: args})
		message := security.RedactCommand(resp.Message())
		if resp.IsError {
			if b.Logger != nil {
				b.Logger.Warn("tool failed", "tool", name, "correlation_id", correlationID, "duration", time.Since(start), "error", message)
			}
			b.record(ctx, audit.Event{Type: audit.TypeToolError, Tool: name, CorrelationID: correlationID, Reason: message})
			finish(telemetry.OutcomeError, message)
			return toResult(resp), nil
		}

		if b.Logger != nil {
			b.Logger.Info("tool done", "tool", name, "correlation_id", correlationID, "duration", time.Since(start), "bytes", len(resp.Message()))
		}
		b.record(ctx, audit.Event{Type: audit.TypeToolOK, Tool: name, CorrelationID: correlationID})
		finish(telemetry.OutcomeOK, "")
		return toResult(resp), nil
	}
}

// guard returns a failure response and false when the call is refused.
func (b Builder) guard(ctx context.Context, name, correlationID string, args map[string]any) (protocol.Response, bool) {
	if b.Guard == nil {
		return protocol.Response{}, true
	}
	decision, err := b.Guard.Approve(ctx, approver.Request{ToolName: name, Arguments: args, CorrelationID: correlationID})
	if err == nil && decision.Allowed {
		return protocol.Response{}, true
	}

	reason := decision.Reason
	if err != nil {
		reason = "guard failed: " + err.Error()
	}
	source := decision.Source
	if source == "" {
		source = b.Guard.Name()
	}
	if b.Logger != nil {
		b.Logger.Warn("tool denied", "tool", name, "correlation_id", correlationID, "source", source, "reason", reason)
	}
	b.record(ctx, audit.Event{Type: audit.TypeGuardDenied, Tool: name, CorrelationID: correlationID, Source: source, Reason: reason})
	return protocol.Failure("Error: " + reason), false
}

func (b Builder) record(ctx context.Context, event audit.Event) {
	if b.Audit != nil {
		b.Audit.Record(ctx, event)
	}
}

// decodeArguments parses tool arguments keeping numbers as json.Number, so
// integers are not rounded before validation.
func decodeArguments(raw json.RawMessage) (map[string]any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] != '{' {
		return nil, errors.New("arguments must be an object")
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var args map[string]any
	if err := dec.Decode(&args); err != nil {
		return nil, fmt.Errorf("decode arguments: %w", err)
	}
	return args, nil
}

func toResult(resp protocol.Response) *mcp.CallToolResult {
	content := make([]mcp.Content, 0, len(resp.Content))
	for _, item := range resp.Content {
		content = append(content, &mcp.TextContent{Text: item.Text})
	}
	return &mcp.CallToolResult{Content: content, IsError: resp.IsError}
}
