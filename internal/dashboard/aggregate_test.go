package dashboard

import (
	"reflect"
	"testing"
	"time"

	"github.com/technova/airdash-server/internal/telemetry"
)

func sampleSnapshot(now time.Time) []telemetry.Record {
	// Newest-first, as the source delivers.
	return []telemetry.Record{
		{
			"timestamp": now.Format(time.RFC3339),
			"temp":      22.5,
			"hum":       40.0,
			"co2_ppm":   900.0,
			"co_ppm":    4.0,
			"no2_ppm":   0.02,
			"pm25":      12.0,
			"aqi":       42.0,
			"aqi_pm25":  42.0,
			"aqi_co":    12.0,
			"aqi_no2":   8.0,
		},
		{
			"timestamp": now.Add(-10 * time.Minute).Format(time.RFC3339),
			"temp":      21.0,
			"co2":       650.0,
		},
	}
}

func TestAggregate_SeriesLengthsMatchWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	vm := Aggregate(sampleSnapshot(now), ModeAll, now)

	if len(vm.Labels) != 2 {
		t.Fatalf("Expected 2 labels, got %d", len(vm.Labels))
	}
	for _, ch := range telemetry.AllChannels() {
		series, ok := vm.Series[ch]
		if !ok {
			t.Fatalf("Missing series for channel %s", ch)
		}
		if len(series) != len(vm.Labels) {
			t.Errorf("Channel %s: series length %d != labels length %d", ch, len(series), len(vm.Labels))
		}
	}
}

func TestAggregate_CurrentValues(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	vm := Aggregate(sampleSnapshot(now), ModeAll, now)

	if vm.Current.Temperature == nil || *vm.Current.Temperature != 22.5 {
		t.Errorf("Expected current temperature 22.5, got %v", vm.Current.Temperature)
	}
	if vm.Current.CO2 == nil || *vm.Current.CO2 != 900 {
		t.Errorf("Expected current CO2 900, got %v", vm.Current.CO2)
	}
	if vm.Current.AQI == nil || *vm.Current.AQI != 42 {
		t.Errorf("Expected current AQI 42, got %v", vm.Current.AQI)
	}
}

func TestAggregate_ClassificationsAndStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	vm := Aggregate(sampleSnapshot(now), ModeAll, now)

	if vm.Classifications[telemetry.ChannelAQI] != BandGood {
		t.Errorf("Expected AQI good, got %s", vm.Classifications[telemetry.ChannelAQI])
	}
	if vm.Classifications[telemetry.ChannelCO2] != BandModerate {
		t.Errorf("Expected CO2 moderate at 900 ppm, got %s", vm.Classifications[telemetry.ChannelCO2])
	}
	if vm.Status[telemetry.ChannelAQI] != "AQI: 42" {
		t.Errorf("Expected status %q, got %q", "AQI: 42", vm.Status[telemetry.ChannelAQI])
	}
	if vm.Status[telemetry.ChannelCO2] != "CO₂: 900 ppm" {
		t.Errorf("Expected status %q, got %q", "CO₂: 900 ppm", vm.Status[telemetry.ChannelCO2])
	}
}

func TestAggregate_Dominant(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	vm := Aggregate(sampleSnapshot(now), ModeAll, now)

	if vm.Dominant.Pollutant != "pm25" || vm.Dominant.SubIndex != 42 {
		t.Errorf("Expected dominant (pm25, 42), got (%s, %v)", vm.Dominant.Pollutant, vm.Dominant.SubIndex)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	snapshot := sampleSnapshot(now)

	vm1 := Aggregate(snapshot, ModeRecent, now)
	vm2 := Aggregate(snapshot, ModeRecent, now)

	if !reflect.DeepEqual(vm1, vm2) {
		t.Error("Expected identical view-models for identical inputs")
	}
}

func TestAggregate_EmptySnapshot(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	vm := Aggregate(nil, ModeRecent, now)

	if len(vm.Labels) != 0 {
		t.Errorf("Expected no labels, got %d", len(vm.Labels))
	}
	for ch, band := range vm.Classifications {
		if band != BandUnknown {
			t.Errorf("Channel %s: expected unknown band, got %s", ch, band)
		}
	}
	if vm.Dominant.Pollutant != PollutantNone {
		t.Errorf("Expected dominant none, got %s", vm.Dominant.Pollutant)
	}
	if vm.Current.Temperature != nil {
		t.Error("Expected nil current temperature")
	}
	if vm.Status[telemetry.ChannelAQI] != "AQI: —" {
		t.Errorf("Expected placeholder status, got %q", vm.Status[telemetry.ChannelAQI])
	}
}

func TestAggregate_StatusPlaceholderForMissingChannel(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	snapshot := []telemetry.Record{
		{"timestamp": now.Format(time.RFC3339), "temperature": 20.0},
	}

	vm := Aggregate(snapshot, ModeAll, now)
	if vm.Status[telemetry.ChannelNO2] != "NO₂: —" {
		t.Errorf("Expected NO2 placeholder, got %q", vm.Status[telemetry.ChannelNO2])
	}
	if vm.Classifications[telemetry.ChannelNO2] != BandUnknown {
		t.Errorf("Expected NO2 unknown, got %s", vm.Classifications[telemetry.ChannelNO2])
	}
}
