package telemetry

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// instantLayouts are the calendar-string formats accepted from producers,
// tried in order. Strings without a zone are interpreted in server-local
// time; no further timezone inference is performed.
var instantLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ToInstant converts a raw timestamp value to a normalized instant.
// Strings are parsed as calendar strings, numbers as epoch milliseconds.
// Any other type, or a parse failure, yields absence.
func ToInstant(v any) (time.Time, bool) {
	switch t := v.(type) {
	case string:
		return parseInstantString(t)
	case float64:
		return time.UnixMilli(int64(t)), true
	case int:
		return time.UnixMilli(int64(t)), true
	case int64:
		return time.UnixMilli(t), true
	case json.Number:
		if ms, err := t.Int64(); err == nil {
			return time.UnixMilli(ms), true
		}
		if f, err := t.Float64(); err == nil {
			return time.UnixMilli(int64(f)), true
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

func parseInstantString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range instantLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return parsed, true
		}
	}

	// Some producers serialize epoch milliseconds as a string.
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms), true
	}

	return time.Time{}, false
}
