// Package render expands environment helpers in YAML config templates.
package render

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/template"
)

// EnvTracker collects variables referenced with env that are unset.
type EnvTracker struct {
	missing map[string]struct{}
}

func (t *EnvTracker) markMissing(key string) {
	if t.missing == nil {
		t.missing = map[string]struct{}{}
	}
	t.missing[key] = struct{}{}
}

// Missing returns the unset variables in sorted order.
func (t *EnvTracker) Missing() []string {
	out := make([]string, 0, len(t.missing))
	for key := range t.missing {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// Renderer renders config templates against an environment lookup.
type Renderer struct {
	// LookupEnv resolves variables; nil uses os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// RenderFile loads and renders a YAML template file from the process
// environment.
func RenderFile(path string) ([]byte, error) {
	return Renderer{}.File(path)
}

// RenderBytes renders a YAML template from the process environment.
func RenderBytes(name string, raw []byte) ([]byte, error) {
	return Renderer{}.Bytes(name, raw)
}

// File reads and renders path.
func (r Renderer) File(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return r.Bytes(path, raw)
}

// Bytes renders raw; name is used in template error messages.
func (r Renderer) Bytes(name string, raw []byte) ([]byte, error) {
	lookup := r.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if strings.TrimSpace(name) == "" {
		name = "config"
	}

	tracker := &EnvTracker{}
	tmpl, err := template.New(name).Funcs(FuncMap(lookup, tracker)).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any{}); err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}
	if missing := tracker.Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("missing env vars: %s", strings.Join(missing, ", "))
	}
	return buf.Bytes(), nil
}
