package dashboard

import (
	"testing"
	"time"

	"github.com/technova/airdash-server/internal/telemetry"
)

func TestExtractSeries_PreservesGaps(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	window := []telemetry.Record{
		{"timestamp": now.Format(time.RFC3339), "co2_ppm": 600.0},
		{"timestamp": now.Add(time.Minute).Format(time.RFC3339)}, // no CO2
		{"timestamp": now.Add(2 * time.Minute).Format(time.RFC3339), "co2": 700.0},
	}

	series := ExtractSeries(window, telemetry.ChannelCO2)
	if len(series) != len(window) {
		t.Fatalf("Expected series length %d, got %d", len(window), len(series))
	}
	if series[0].Value == nil || *series[0].Value != 600 {
		t.Errorf("Position 0: expected 600, got %v", series[0].Value)
	}
	if series[1].Value != nil {
		t.Errorf("Position 1: expected nil gap, got %v", *series[1].Value)
	}
	if series[2].Value == nil || *series[2].Value != 700 {
		t.Errorf("Position 2: expected 700, got %v", series[2].Value)
	}
}

func TestLabels_MatchWindowLength(t *testing.T) {
	window := []telemetry.Record{
		{"timestamp": "2026-03-01T09:05:00Z", "temperature": 20.0},
		{"temperature": 21.0}, // missing timestamp
		{"timestamp": "bogus", "temperature": 22.0},
	}

	labels := Labels(window)
	if len(labels) != len(window) {
		t.Fatalf("Expected %d labels, got %d", len(window), len(labels))
	}
	if labels[0] == "" {
		t.Error("Expected a rendered label for a valid timestamp")
	}
	if labels[1] != "" {
		t.Errorf("Expected empty label for missing timestamp, got %q", labels[1])
	}
	if labels[2] != "" {
		t.Errorf("Expected empty label for unparseable timestamp, got %q", labels[2])
	}
}

func TestMissingTimestampStillContributesSample(t *testing.T) {
	window := []telemetry.Record{
		{"timestamp": "2026-03-01T09:00:00Z", "pm25": 10.0},
		{"pm25": 12.0},
	}

	series := ExtractSeries(window, telemetry.ChannelPM25)
	if series[1].Value == nil || *series[1].Value != 12 {
		t.Fatalf("Expected value at positional index despite missing timestamp, got %v", series[1].Value)
	}
	if series[1].Instant != nil {
		t.Error("Expected nil instant for record without timestamp")
	}
}

func TestLatestNonNull(t *testing.T) {
	v1, v2 := 5.0, 9.0
	series := Series{
		{Value: &v1},
		{Value: &v2},
		{Value: nil},
	}

	latest := LatestNonNull(series)
	if latest == nil || *latest != 9 {
		t.Errorf("Expected 9 (scan from the end), got %v", latest)
	}

	if LatestNonNull(Series{{}, {}}) != nil {
		t.Error("Expected nil for all-gap series")
	}
	if LatestNonNull(nil) != nil {
		t.Error("Expected nil for empty series")
	}
}

func TestLatestRecordWithField(t *testing.T) {
	window := []telemetry.Record{
		{"aqi_pm25": 40.0, "marker": 1.0},
		{"aqi_pm25": 55.0, "marker": 2.0},
		{"humidity": 50.0, "marker": 3.0},
	}

	rec := LatestRecordWithField(window, telemetry.ChannelAQIPM25.Aliases())
	if rec == nil {
		t.Fatal("Expected a record")
	}
	if m, _ := telemetry.Resolve(rec, []string{"marker"}); m != 2 {
		t.Errorf("Expected the newest record carrying the field (marker 2), got %v", m)
	}

	if LatestRecordWithField(window, telemetry.ChannelCO.Aliases()) != nil {
		t.Error("Expected nil when no record carries the field")
	}
}
