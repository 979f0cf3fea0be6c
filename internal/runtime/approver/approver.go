// Package approver defines the pre-dispatch check applied to tool calls.
package approver

import "context"

// Request is the input passed to an approver.
type Request struct {
	// ToolName is the tool being called.
	ToolName string
	// Arguments are the decoded tool arguments.
	Arguments map[string]any
	// CorrelationID links the call's log and audit entries.
	CorrelationID string
}

// Decision is an approver verdict.
type Decision struct {
	// Allowed reports whether the call may proceed.
	Allowed bool
	// Reason explains a denial.
	Reason string
	// Source identifies the approver.
	Source string
}

// Approver decides whether a tool call may reach the terminal.
type Approver interface {
	// Name returns the approver identifier.
	Name() string
	// Approve returns a decision for req.
	Approve(ctx context.Context, req Request) (Decision, error)
}
