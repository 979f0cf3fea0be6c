package executil

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinRoundTripsThroughShell(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()
	marker := filepath.Join(dir, "pwned")

	tests := []struct {
		name   string
		tokens []string
	}{
		{name: "plain", tokens: []string{"echo", "hello"}},
		{name: "spaces", tokens: []string{"a b", "  c  "}},
		{name: "semicolon", tokens: []string{"x; touch " + marker}},
		{name: "pipe", tokens: []string{"x | touch " + marker}},
		{name: "double quotes", tokens: []string{`say "hi"`, `"`}},
		{name: "single quotes", tokens: []string{"it's", "'", "''"}},
		{name: "newline", tokens: []string{"line1\nline2\n", "\n"}},
		{name: "substitution", tokens: []string{"$(touch " + marker + ")", "`touch " + marker + "`", "$HOME"}},
		{name: "redirect and background", tokens: []string{"> " + marker, "&", "&&", "<"}},
		{name: "glob and tilde", tokens: []string{"*", "~", "~/x", "?"}},
		{name: "empty", tokens: []string{"", "x", ""}},
		{name: "control byte", tokens: []string{"\x03", "\x1a"}},
		{name: "backslash", tokens: []string{`a\b`, `\`, `\n`}},
		{name: "leading hash", tokens: []string{"#", "#!/bin/sh", "#x; touch " + marker, "#it's"}},
		{name: "hash after comment token", tokens: []string{"#", "tail"}},
		{name: "inner hash and braces", tokens: []string{"a#b", "{a,b}", "}"}},
		{name: "assignment", tokens: []string{"A=1", "--flag=x'y", "=", "a=$(touch " + marker + ")"}},
	}

	runner := Runner{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"printf", "[%s]"}, tt.tokens...)
			res, err := runner.Run(context.Background(), Join(args...))
			require.NoError(t, err)

			var want strings.Builder
			for _, tok := range tt.tokens {
				want.WriteString("[" + tok + "]")
			}
			assert.Equal(t, want.String(), res.Stdout)

			_, statErr := os.Stat(marker)
			assert.True(t, os.IsNotExist(statErr), "injected command must not run")
		})
	}
}

func TestJoinAssignmentStaysCommandWord(t *testing.T) {
	requireShell(t)
	_, err := Runner{}.Run(context.Background(), Join("WEZ_JOIN_TEST=x", "sh", "-c", "echo $WEZ_JOIN_TEST"))
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 127, exitErr.Code)
}

func TestJoinQuotesHashAndAssignment(t *testing.T) {
	assert.Equal(t, `printf '#' '#it'\''s' 'A=1' a#b`, Join("printf", "#", "#it's", "A=1", "a#b"))
}

func TestJoinKeepsEveryTokenOneWord(t *testing.T) {
	tokens := []string{"wezterm", "cli", "send-text", "--no-paste", "ls; rm -rf /\n"}
	out := Join(tokens...)
	assert.True(t, strings.HasPrefix(out, "wezterm cli send-text --no-paste "))

	split, err := SplitPrefix(out)
	require.NoError(t, err)
	assert.Equal(t, tokens, split)
}

func TestSplitPrefix(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{name: "default", input: "wezterm cli", want: []string{"wezterm", "cli"}},
		{name: "single token", input: "/usr/local/bin/wezterm", want: []string{"/usr/local/bin/wezterm"}},
		{name: "quoted path with space", input: `"/Applications/Wez Term/wezterm" cli`, want: []string{"/Applications/Wez Term/wezterm", "cli"}},
		{name: "extra whitespace", input: "  wezterm   cli  ", want: []string{"wezterm", "cli"}},
		{name: "empty", input: "   ", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitPrefix(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := os.Stat(DefaultShell); err != nil {
		t.Skipf("%s not available: %v", DefaultShell, err)
	}
}
