package dashboard

import (
	"testing"

	"github.com/technova/airdash-server/internal/telemetry"
)

func classifyValue(ch telemetry.Channel, v float64) Band {
	return Classify(ch, &v)
}

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		channel telemetry.Channel
		value   float64
		want    Band
	}{
		{telemetry.ChannelAQI, 50, BandGood},
		{telemetry.ChannelAQI, 51, BandModerate},
		{telemetry.ChannelAQI, 100, BandModerate},
		{telemetry.ChannelAQI, 101, BandUnhealthy},
		{telemetry.ChannelCO2, 800, BandGood},
		{telemetry.ChannelCO2, 801, BandModerate},
		{telemetry.ChannelCO2, 1200, BandModerate},
		{telemetry.ChannelCO2, 1201, BandUnhealthy},
		{telemetry.ChannelCO, 9, BandGood},
		{telemetry.ChannelCO, 9.1, BandModerate},
		{telemetry.ChannelCO, 35, BandModerate},
		{telemetry.ChannelCO, 36, BandUnhealthy},
		// NO2 values are ppm, banded in ppb after the x1000 conversion.
		{telemetry.ChannelNO2, 0.053, BandGood},
		{telemetry.ChannelNO2, 0.0531, BandModerate},
		{telemetry.ChannelNO2, 0.1, BandModerate},
		{telemetry.ChannelNO2, 0.2, BandUnhealthy},
	}

	for _, tt := range tests {
		if got := classifyValue(tt.channel, tt.value); got != tt.want {
			t.Errorf("Classify(%s, %v) = %s, want %s", tt.channel, tt.value, got, tt.want)
		}
	}
}

func TestClassify_SubIndexChannels(t *testing.T) {
	for _, ch := range []telemetry.Channel{
		telemetry.ChannelAQIPM25,
		telemetry.ChannelAQICO,
		telemetry.ChannelAQINO2,
	} {
		if got := classifyValue(ch, 50); got != BandGood {
			t.Errorf("Classify(%s, 50) = %s, want good", ch, got)
		}
		if got := classifyValue(ch, 101); got != BandUnhealthy {
			t.Errorf("Classify(%s, 101) = %s, want unhealthy", ch, got)
		}
	}
}

func TestClassify_NilIsUnknown(t *testing.T) {
	if got := Classify(telemetry.ChannelCO2, nil); got != BandUnknown {
		t.Errorf("Classify(co2, nil) = %s, want unknown", got)
	}
}

func TestClassify_UnbandedChannel(t *testing.T) {
	if got := classifyValue(telemetry.ChannelTemperature, 21); got != BandUnknown {
		t.Errorf("Classify(temperature, 21) = %s, want unknown", got)
	}
}
