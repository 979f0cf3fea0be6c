package render

import (
	"strconv"
	"strings"
	"text/template"
)

// FuncMap returns the config template helpers. env fails rendering when the
// variable is unset; envOr falls back to a default.
func FuncMap(lookup func(string) (string, bool), tracker *EnvTracker) template.FuncMap {
	return template.FuncMap{
		"env": func(key string) string {
			value, ok := lookup(key)
			if !ok {
				tracker.markMissing(key)
				return ""
			}
			return value
		},
		"envOr": func(key, def string) string {
			if value, ok := lookup(key); ok && value != "" {
				return value
			}
			return def
		},
		"default": func(def, value string) string {
			if value == "" {
				return def
			}
			return value
		},
		"quote": strconv.Quote,
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}
}
