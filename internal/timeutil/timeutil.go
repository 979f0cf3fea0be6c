// Package timeutil parses the optional duration strings of the YAML config.
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// ParseDurationOrDefault parses value and returns def when it is empty,
// invalid or not positive.
func ParseDurationOrDefault(value string, def time.Duration) time.Duration {
	if strings.TrimSpace(value) == "" {
		return def
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

// CheckDuration reports an error naming field when value is set but is not a
// positive duration.
func CheckDuration(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%s is invalid: %w", field, err)
	}
	if parsed <= 0 {
		return fmt.Errorf("%s must be positive", field)
	}
	return nil
}
