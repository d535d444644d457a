package telemetry

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Resolve extracts a numeric field from a record, trying aliases in
// declared order. The first alias present with a non-nil, non-empty value
// wins; if that value cannot be coerced to a number the field resolves to
// absent rather than falling through to later aliases.
func Resolve(r Record, aliases []string) (float64, bool) {
	for _, key := range aliases {
		v, ok := r[key]
		if !ok || v == nil {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		return coerce(v)
	}
	return 0, false
}

// coerce converts a raw field value to a float64. JSON decoding delivers
// numbers as float64 or json.Number depending on decoder settings; some
// firmware sends numbers as strings.
func coerce(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return checkNum(n)
	case float32:
		return checkNum(float64(n))
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return checkNum(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return checkNum(f)
	default:
		return 0, false
	}
}

func checkNum(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
