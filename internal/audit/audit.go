// Package audit records tool call lifecycle events.
package audit

import (
	"context"
	"log/slog"
)

// Event types.
const (
	TypeToolCall    = "tool_call"
	TypeToolOK      = "tool_ok"
	TypeToolError   = "tool_error"
	TypeGuardDenied = "guard_denied"
)

// Event is one audit entry.
type Event struct {
	// Type is one of the Type* constants.
	Type string
	// Tool is the tool name.
	Tool string
	// CorrelationID links the events of one call.
	CorrelationID string
	// Source names the component that produced a denial.
	Source string
	// Reason is the response text for failures and denials.
	Reason string
}

// Logger records audit events.
type Logger interface {
	Record(ctx context.Context, event Event)
}

// SlogLogger writes audit events through slog.
type SlogLogger struct {
	logger *slog.Logger
}

// New returns a SlogLogger.
func New(logger *slog.Logger) *SlogLogger {
	return &SlogLogger{logger: logger}
}

// Record logs an audit event at info level.
func (l *SlogLogger) Record(ctx context.Context, event Event) {
	if l == nil || l.logger == nil {
		return
	}
	attrs := []slog.Attr{
		slog.String("type", event.Type),
		slog.String("tool", event.Tool),
		slog.String("correlation_id", event.CorrelationID),
	}
	if event.Source != "" {
		attrs = append(attrs, slog.String("source", event.Source))
	}
	if event.Reason != "" {
		attrs = append(attrs, slog.String("reason", event.Reason))
	}
	l.logger.LogAttrs(ctx, slog.LevelInfo, "audit", attrs...)
}
