package executil

import (
	"fmt"
	"strings"

	"github.com/google/shlex"
	"github.com/kballard/go-shellquote"
)

// Join escapes tokens into one command string that a POSIX shell splits back
// into exactly the same argv. Every token stays a single word, so embedded
// quotes, whitespace, newlines and operators such as ; or | are inert.
func Join(tokens ...string) string {
	words := make([]string, len(tokens))
	for i, tok := range tokens {
		// shellquote leaves a leading # (comment) and = (assignment in the
		// command position) bare.
		if strings.HasPrefix(tok, "#") || strings.Contains(tok, "=") {
			words[i] = singleQuote(tok)
			continue
		}
		words[i] = shellquote.Join(tok)
	}
	return strings.Join(words, " ")
}

func singleQuote(tok string) string {
	return "'" + strings.ReplaceAll(tok, "'", `'\''`) + "'"
}

// SplitPrefix tokenizes an invocation prefix such as `wezterm cli` or
// `"/opt/Wez Term/wezterm" cli` using shell word rules.
func SplitPrefix(prefix string) ([]string, error) {
	if strings.TrimSpace(prefix) == "" {
		return nil, fmt.Errorf("invocation prefix is empty")
	}
	tokens, err := shlex.Split(prefix)
	if err != nil {
		return nil, fmt.Errorf("parse invocation prefix %q: %w", prefix, err)
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("invocation prefix is empty")
	}
	return tokens, nil
}
