package dispatch

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/codex-k8s/wezterm-mcp-server/internal/constants"
	"github.com/codex-k8s/wezterm-mcp-server/internal/protocol"
)

// maxExactInteger is the largest integer that survives a round trip through
// a float64 JSON decoder.
const maxExactInteger = 1<<53 - 1

func stringArg(args map[string]any, name string) (string, error) {
	value, ok := args[name].(string)
	if !ok {
		return "", protocol.Validationf("%s must be a string", name)
	}
	return value, nil
}

// numberArg returns the numeric value of args[name]; present reports whether
// the key exists at all.
func numberArg(args map[string]any, name string) (value float64, present bool, err error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case int:
		return float64(v), true, nil
	case int32:
		return float64(v), true, nil
	case int64:
		return float64(v), true, nil
	case float32:
		return float64(v), true, nil
	case float64:
		return v, true, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, true, protocol.Validationf("%s must be a number", name)
		}
		return f, true, nil
	default:
		return 0, true, protocol.Validationf("%s must be a number", name)
	}
}

// asInteger reports whether f is an integer that survives conversion to int64.
func asInteger(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > maxExactInteger || f < -maxExactInteger {
		return 0, false
	}
	return int64(f), true
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func paneIDArg(args map[string]any) (int64, error) {
	f, present, err := numberArg(args, constants.ArgPaneID)
	if err != nil {
		return 0, err
	}
	if !present {
		return 0, protocol.Validationf("%s must be a number", constants.ArgPaneID)
	}
	id, ok := asInteger(f)
	if !ok {
		return 0, protocol.Validationf("Invalid pane ID: %s. Pane ID must be a non-negative integer.", formatNumber(f))
	}
	return id, nil
}

func linesArg(args map[string]any, def int) (int, error) {
	f, present, err := numberArg(args, constants.ArgLines)
	if err != nil {
		return 0, err
	}
	if !present {
		return def, nil
	}
	n, ok := asInteger(f)
	switch {
	case ok:
		return int(n), nil
	case f == math.Trunc(f) && f > 0:
		return 0, protocol.Validationf("Lines cannot exceed %d (requested: %s)", constants.MaxOutputLines, formatNumber(f))
	case f == math.Trunc(f) && f < 0:
		return 0, nil
	default:
		return 0, protocol.Validationf("Lines must be an integer, got: %s", formatNumber(f))
	}
}
