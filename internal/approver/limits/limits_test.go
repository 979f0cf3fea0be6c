package limits

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codex-k8s/wezterm-mcp-server/internal/runtime/approver"
	"github.com/codex-k8s/wezterm-mcp-server/internal/templates"
)

func intPtr(v int) *int {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}

func newStore(t *testing.T, policy Policy) *Store {
	t.Helper()
	bundle, err := templates.Load("en")
	require.NoError(t, err)
	store, err := New(policy, bundle)
	require.NoError(t, err)
	return store
}

func approve(t *testing.T, s *Store, tool string, args map[string]any) approver.Decision {
	t.Helper()
	decision, err := s.Approve(context.Background(), approver.Request{ToolName: tool, Arguments: args})
	require.NoError(t, err)
	return decision
}

func TestMaxTotalPerTool(t *testing.T) {
	s := newStore(t, Policy{MaxTotal: 2})
	assert.True(t, approve(t, s, "write_to_terminal", nil).Allowed)
	assert.True(t, approve(t, s, "write_to_terminal", nil).Allowed)

	denied := approve(t, s, "write_to_terminal", nil)
	assert.False(t, denied.Allowed)
	assert.Equal(t, "Maximum number of calls exceeded for write_to_terminal", denied.Reason)
	assert.Equal(t, "limits", denied.Source)

	assert.True(t, approve(t, s, "switch_pane", nil).Allowed)
}

func TestRatePerMinute(t *testing.T) {
	s := newStore(t, Policy{Name: "terminal-guard", RatePerMinute: 1})
	assert.True(t, approve(t, s, "write_to_terminal", nil).Allowed)

	denied := approve(t, s, "write_to_terminal", nil)
	assert.False(t, denied.Allowed)
	assert.Equal(t, "Rate limit exceeded for write_to_terminal", denied.Reason)
	assert.Equal(t, "terminal-guard", denied.Source)
}

func TestToolsFilter(t *testing.T) {
	s := newStore(t, Policy{Tools: []string{"write_to_terminal"}, MaxTotal: 1})
	assert.True(t, s.Guards("write_to_terminal"))
	assert.False(t, s.Guards("list_panes"))

	for i := 0; i < 3; i++ {
		assert.True(t, approve(t, s, "list_panes", nil).Allowed)
	}
	assert.True(t, approve(t, s, "write_to_terminal", nil).Allowed)
	assert.False(t, approve(t, s, "write_to_terminal", nil).Allowed)
}

func TestFieldPolicies(t *testing.T) {
	s := newStore(t, Policy{Fields: map[string]FieldPolicy{
		"command": {MinLength: intPtr(1), MaxLength: intPtr(8), Regex: `^[a-z ]+$`},
		"pane_id": {Min: floatPtr(0), Max: floatPtr(10)},
	}})

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{name: "ok", args: map[string]any{"command": "ls", "pane_id": json.Number("3")}},
		{name: "too short", args: map[string]any{"command": ""}, want: "Field command is shorter than 1"},
		{name: "too long", args: map[string]any{"command": strings.Repeat("a", 9)}, want: "Field command is longer than 8"},
		{name: "multibyte counted as runes", args: map[string]any{"command": "ééééé"}, want: "Field command does not match the required format"},
		{name: "regex", args: map[string]any{"command": "rm -rf"}, want: "Field command does not match the required format"},
		{name: "above max", args: map[string]any{"pane_id": json.Number("11")}, want: "Field pane_id is above 10"},
		{name: "below min", args: map[string]any{"pane_id": -1}, want: "Field pane_id is below 0"},
		{name: "non numeric ignored", args: map[string]any{"pane_id": "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := approve(t, s, "write_to_specific_pane", tt.args)
			if tt.want == "" {
				assert.True(t, decision.Allowed, decision.Reason)
				return
			}
			assert.False(t, decision.Allowed)
			assert.Equal(t, tt.want, decision.Reason)
		})
	}
}

func TestDeniedFieldsDoNotCount(t *testing.T) {
	s := newStore(t, Policy{MaxTotal: 1, Fields: map[string]FieldPolicy{"command": {MaxLength: intPtr(2)}}})
	assert.False(t, approve(t, s, "write_to_terminal", map[string]any{"command": "long"}).Allowed)
	assert.True(t, approve(t, s, "write_to_terminal", map[string]any{"command": "ls"}).Allowed)
}

func TestInvalidRegex(t *testing.T) {
	_, err := New(Policy{Fields: map[string]FieldPolicy{"command": {Regex: "("}}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid regex for field command")
}

func TestFallbackWithoutRenderer(t *testing.T) {
	s, err := New(Policy{MaxTotal: 1}, nil)
	require.NoError(t, err)
	approve(t, s, "list_panes", nil)
	assert.Equal(t, "Maximum number of calls exceeded", approve(t, s, "list_panes", nil).Reason)
}
