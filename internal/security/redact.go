// Package security masks secrets before tool arguments reach the logs.
package security

import (
	"regexp"
	"strings"
)

const mask = "***"

var sensitiveSubstrings = []string{
	"token",
	"password",
	"passwd",
	"passphrase",
	"pwd",
	"secret",
	"authorization",
	"apikey",
	"api_key",
	"access_key",
	"private_key",
	"credential",
	"cookie",
	"session",
	"jwt",
	"bearer",
}

// Shell assignments (TOKEN=abc, export API_KEY="x") and long flags
// (--password abc, --token=abc) inside command text.
var (
	assignmentPattern = regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_]*)=("[^"]*"|'[^']*'|\S+)`)
	flagPattern       = regexp.MustCompile(`(--?[A-Za-z][A-Za-z0-9_-]*)([= ])("[^"]*"|'[^']*'|\S+)`)
	bearerPattern     = regexp.MustCompile(`(?i)\b(bearer)\s+\S+`)
)

// RedactArguments returns a copy of the tool arguments with sensitive keys
// masked and secrets inside command text replaced.
func RedactArguments(values map[string]any) map[string]any {
	if values == nil {
		return nil
	}
	redacted := make(map[string]any, len(values))
	for key, value := range values {
		if isSensitive(key) {
			redacted[key] = mask
			continue
		}
		if text, ok := value.(string); ok {
			redacted[key] = RedactCommand(text)
			continue
		}
		redacted[key] = value
	}
	return redacted
}

// RedactCommand masks values assigned to sensitive variables or passed to
// sensitive flags.
func RedactCommand(command string) string {
	out := assignmentPattern.ReplaceAllStringFunc(command, func(match string) string {
		parts := assignmentPattern.FindStringSubmatch(match)
		if !isSensitive(parts[1]) {
			return match
		}
		return parts[1] + "=" + mask
	})
	out = flagPattern.ReplaceAllStringFunc(out, func(match string) string {
		parts := flagPattern.FindStringSubmatch(match)
		if !isSensitive(strings.TrimLeft(parts[1], "-")) {
			return match
		}
		return parts[1] + parts[2] + mask
	})
	return bearerPattern.ReplaceAllString(out, "$1 "+mask)
}

func isSensitive(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, part := range sensitiveSubstrings {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}
