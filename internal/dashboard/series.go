package dashboard

import (
	"time"

	"github.com/technova/airdash-server/internal/telemetry"
)

// Sample is one channel reading at one window position. Value is nil when
// no alias resolved to a usable number; Instant is nil when the record
// carries no parseable timestamp.
type Sample struct {
	Instant *time.Time `json:"instant"`
	Value   *float64   `json:"value"`
}

// Series holds one channel's samples across the window, oldest first.
// Its length always equals the window length; nil values stay in place
// so charts render gaps instead of misaligned points.
type Series []Sample

// ExtractSeries maps the window onto one channel.
func ExtractSeries(window []telemetry.Record, ch telemetry.Channel) Series {
	series := make(Series, len(window))
	for i, rec := range window {
		var s Sample
		if ts, ok := rec.Instant(); ok {
			s.Instant = &ts
		}
		if v, ok := telemetry.Resolve(rec, ch.Aliases()); ok {
			s.Value = &v
		}
		series[i] = s
	}
	return series
}

// Labels renders each window record's instant as a short local time
// string, or an empty string when the record has no usable timestamp.
func Labels(window []telemetry.Record) []string {
	labels := make([]string, len(window))
	for i, rec := range window {
		if ts, ok := rec.Instant(); ok {
			labels[i] = ts.Local().Format("15:04")
		}
	}
	return labels
}

// LatestNonNull returns the newest usable value in a series, for the
// "current value" displays.
func LatestNonNull(s Series) *float64 {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Value != nil {
			return s[i].Value
		}
	}
	return nil
}

// LatestRecordWithField returns the newest window record holding a usable
// value for any of the given aliases, or nil. Gauges and badges need the
// backing record, not just the one number.
func LatestRecordWithField(window []telemetry.Record, aliases []string) telemetry.Record {
	for i := len(window) - 1; i >= 0; i-- {
		if _, ok := telemetry.Resolve(window[i], aliases); ok {
			return window[i]
		}
	}
	return nil
}
