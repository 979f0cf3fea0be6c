// Package limits guards terminal tools with call caps, a per-minute rate and
// argument field policies.
package limits

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/time/rate"

	"github.com/codex-k8s/wezterm-mcp-server/internal/runtime/approver"
	"github.com/codex-k8s/wezterm-mcp-server/internal/templates"
)

// Policy configures the guard.
type Policy struct {
	// Name identifies the guard in audit entries.
	Name string
	// Tools restricts the guard to these tool names; empty guards every tool.
	Tools []string
	// MaxTotal caps calls per tool over the process lifetime.
	MaxTotal int
	// RatePerMinute caps calls per tool per minute.
	RatePerMinute int
	// Fields holds per-argument rules.
	Fields map[string]FieldPolicy
}

// FieldPolicy describes rules for a single argument.
type FieldPolicy struct {
	// Regex must match string values.
	Regex string
	// Min is the numeric minimum.
	Min *float64
	// Max is the numeric maximum.
	Max *float64
	// MinLength is the minimum string length in runes.
	MinLength *int
	// MaxLength is the maximum string length in runes.
	MaxLength *int
}

type limiterState struct {
	count   int
	limiter *rate.Limiter
}

// Store keeps per-tool counters and compiled policies.
type Store struct {
	mu       sync.Mutex
	byTool   map[string]*limiterState
	policy   Policy
	tools    map[string]struct{}
	compiled map[string]*regexp.Regexp
	renderer templates.Renderer
}

// New creates a guard and compiles its regex rules.
func New(policy Policy, renderer templates.Renderer) (*Store, error) {
	compiled := make(map[string]*regexp.Regexp, len(policy.Fields))
	for field, rule := range policy.Fields {
		if rule.Regex == "" {
			continue
		}
		re, err := regexp.Compile(rule.Regex)
		if err != nil {
			return nil, fmt.Errorf("invalid regex for field %s: %w", field, err)
		}
		compiled[field] = re
	}
	var tools map[string]struct{}
	if len(policy.Tools) > 0 {
		tools = make(map[string]struct{}, len(policy.Tools))
		for _, name := range policy.Tools {
			tools[name] = struct{}{}
		}
	}
	return &Store{
		byTool:   make(map[string]*limiterState),
		policy:   policy,
		tools:    tools,
		compiled: compiled,
		renderer: renderer,
	}, nil
}

// Name returns the guard name for audit and logging.
func (s *Store) Name() string {
	if s.policy.Name != "" {
		return s.policy.Name
	}
	return "limits"
}

// Guards reports whether tool is subject to this guard.
func (s *Store) Guards(tool string) bool {
	if s.tools == nil {
		return true
	}
	_, ok := s.tools[tool]
	return ok
}

// Approve checks field policies, then the call cap and the rate.
// Only allowed calls count toward the cap.
func (s *Store) Approve(_ context.Context, req approver.Request) (approver.Decision, error) {
	if !s.Guards(req.ToolName) {
		return approver.Decision{Allowed: true, Reason: "not guarded", Source: s.Name()}, nil
	}
	if err := s.checkFields(req.Arguments); err != nil {
		return approver.Decision{Allowed: false, Reason: err.Error(), Source: s.Name()}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.byTool[req.ToolName]
	if state == nil {
		state = &limiterState{}
		if s.policy.RatePerMinute > 0 {
			state.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.policy.RatePerMinute)), s.policy.RatePerMinute)
		}
		s.byTool[req.ToolName] = state
	}

	data := map[string]any{"Tool": req.ToolName}
	if s.policy.MaxTotal > 0 && state.count >= s.policy.MaxTotal {
		return approver.Decision{Allowed: false, Reason: s.render("guard.max_total", data, "Maximum number of calls exceeded"), Source: s.Name()}, nil
	}
	if state.limiter != nil && !state.limiter.Allow() {
		return approver.Decision{Allowed: false, Reason: s.render("guard.rate_limit", data, "Rate limit exceeded"), Source: s.Name()}, nil
	}

	state.count++
	return approver.Decision{Allowed: true, Reason: "approved", Source: s.Name()}, nil
}

func (s *Store) checkFields(args map[string]any) error {
	for field, rule := range s.policy.Fields {
		value, ok := args[field]
		if !ok {
			continue
		}

		if v, isString := value.(string); isString {
			length := utf8.RuneCountInString(v)
			if rule.MinLength != nil && length < *rule.MinLength {
				return errors.New(s.render("guard.field_min_length", map[string]any{"Field": field, "MinLength": *rule.MinLength}, "Field "+field+" is too short"))
			}
			if rule.MaxLength != nil && length > *rule.MaxLength {
				return errors.New(s.render("guard.field_max_length", map[string]any{"Field": field, "MaxLength": *rule.MaxLength}, "Field "+field+" is too long"))
			}
			re := s.compiled[field]
			if re != nil && !re.MatchString(v) {
				return errors.New(s.render("guard.field_regex", map[string]any{"Field": field}, "Field "+field+" does not match required format"))
			}
			continue
		}

		number, isNumber := numeric(value)
		if !isNumber {
			continue
		}
		if rule.Min != nil && number < *rule.Min {
			return errors.New(s.render("guard.field_min", map[string]any{"Field": field, "Min": *rule.Min}, "Field "+field+" is below minimum value"))
		}
		if rule.Max != nil && number > *rule.Max {
			return errors.New(s.render("guard.field_max", map[string]any{"Field": field, "Max": *rule.Max}, "Field "+field+" is above maximum value"))
		}
	}
	return nil
}

func numeric(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func (s *Store) render(key string, data map[string]any, fallback string) string {
	if s.renderer == nil {
		return fallback
	}
	rendered, err := s.renderer.Render(key, data)
	if err != nil {
		return fallback
	}
	return rendered
}
