package dashboard

import (
	"fmt"
	"time"

	"github.com/technova/airdash-server/internal/telemetry"
)

// Mode selects how much history the dashboard shows.
type Mode string

const (
	ModeRecent Mode = "recent"
	ModeAll    Mode = "all"
)

// ParseMode validates a mode string from the API or the preference store.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeRecent:
		return ModeRecent, nil
	case ModeAll:
		return ModeAll, nil
	default:
		return "", fmt.Errorf("unknown view mode: %q", s)
	}
}

const (
	// recentSpan is how far back the recent window reaches.
	recentSpan = time.Hour
	// fallbackCount is how many trailing records stand in when the
	// recent window is empty, so sparse bursty feeds still show
	// something.
	fallbackCount = 24
)

// SelectWindow picks the records to display. The source delivers records
// newest-first; the returned window is chronological ascending. In recent
// mode only records with an instant inside the last hour survive; when
// that leaves nothing, the trailing records of the full sequence are used
// regardless of their timestamps.
func SelectWindow(records []telemetry.Record, mode Mode, now time.Time) []telemetry.Record {
	asc := make([]telemetry.Record, len(records))
	for i, rec := range records {
		asc[len(records)-1-i] = rec
	}

	if mode != ModeRecent {
		return asc
	}

	cutoff := now.Add(-recentSpan)
	var recent []telemetry.Record
	for _, rec := range asc {
		if ts, ok := rec.Instant(); ok && !ts.Before(cutoff) {
			recent = append(recent, rec)
		}
	}
	if len(recent) > 0 {
		return recent
	}

	if len(asc) > fallbackCount {
		return asc[len(asc)-fallbackCount:]
	}
	return asc
}
