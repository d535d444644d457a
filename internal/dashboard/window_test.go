package dashboard

import (
	"testing"
	"time"

	"github.com/technova/airdash-server/internal/telemetry"
)

// descRecords builds a newest-first batch, matching the source delivery
// order. Record i is i*step older than now.
func descRecords(n int, now time.Time, step time.Duration) []telemetry.Record {
	records := make([]telemetry.Record, n)
	for i := 0; i < n; i++ {
		records[i] = telemetry.Record{
			"timestamp": now.Add(-time.Duration(i) * step).Format(time.RFC3339),
			"seq":       float64(n - 1 - i),
		}
	}
	return records
}

func seq(rec telemetry.Record) float64 {
	v, _ := telemetry.Resolve(rec, []string{"seq"})
	return v
}

func TestSelectWindow_ReversesToAscending(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	records := descRecords(5, now, time.Minute)

	window := SelectWindow(records, ModeAll, now)
	if len(window) != 5 {
		t.Fatalf("Expected 5 records, got %d", len(window))
	}
	for i, rec := range window {
		if seq(rec) != float64(i) {
			t.Errorf("Position %d: expected seq %d, got %v", i, i, seq(rec))
		}
	}
}

func TestSelectWindow_RecentCutoff(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	// 10-minute spacing: records 0..5 are within the hour, 6..9 are not.
	records := descRecords(10, now, 10*time.Minute)

	window := SelectWindow(records, ModeRecent, now)
	if len(window) != 7 {
		// 0, 10, ..., 60 minutes old are all >= now-1h (inclusive cutoff)
		t.Fatalf("Expected 7 records within the hour, got %d", len(window))
	}
	if seq(window[0]) != 3 {
		t.Errorf("Expected window to start at seq 3, got %v", seq(window[0]))
	}
}

func TestSelectWindow_FallbackLast24(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	// All 30 records are more than an hour old.
	old := now.Add(-2 * time.Hour)
	records := descRecords(30, old, time.Minute)

	window := SelectWindow(records, ModeRecent, now)
	if len(window) != 24 {
		t.Fatalf("Expected fallback of exactly 24 records, got %d", len(window))
	}
	if seq(window[0]) != 6 {
		t.Errorf("Expected fallback to keep the trailing records, first seq=%v", seq(window[0]))
	}
	if seq(window[23]) != 29 {
		t.Errorf("Expected last seq 29, got %v", seq(window[23]))
	}
}

func TestSelectWindow_FallbackShortInput(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	records := descRecords(5, now.Add(-3*time.Hour), time.Minute)

	window := SelectWindow(records, ModeRecent, now)
	if len(window) != 5 {
		t.Errorf("Expected all 5 records when fewer than the fallback count, got %d", len(window))
	}
}

func TestSelectWindow_Empty(t *testing.T) {
	now := time.Now()
	for _, mode := range []Mode{ModeRecent, ModeAll} {
		window := SelectWindow(nil, mode, now)
		if len(window) != 0 {
			t.Errorf("Mode %s: expected empty window, got %d records", mode, len(window))
		}
	}
}

func TestSelectWindow_MissingTimestampsExcludedFromRecent(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	records := []telemetry.Record{
		{"timestamp": now.Format(time.RFC3339), "seq": 1.0},
		{"seq": 0.0}, // no timestamp
	}

	window := SelectWindow(records, ModeRecent, now)
	if len(window) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(window))
	}
	if seq(window[0]) != 1 {
		t.Errorf("Expected the timestamped record, got seq %v", seq(window[0]))
	}
}

func TestParseMode(t *testing.T) {
	for _, valid := range []string{"recent", "all"} {
		if _, err := ParseMode(valid); err != nil {
			t.Errorf("ParseMode(%q) failed: %v", valid, err)
		}
	}
	if _, err := ParseMode("everything"); err == nil {
		t.Error("Expected error for unknown mode")
	}
}
