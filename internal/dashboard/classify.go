package dashboard

import "github.com/technova/airdash-server/internal/telemetry"

// Band is a severity level used for color-coded status.
type Band string

const (
	BandGood      Band = "good"
	BandModerate  Band = "moderate"
	BandUnhealthy Band = "unhealthy"
	BandUnknown   Band = "unknown"
)

// bandBounds holds the inclusive upper bounds of the good and moderate
// bands. A value exactly on a boundary takes the better band.
type bandBounds struct {
	good     float64
	moderate float64
}

var channelBounds = map[telemetry.Channel]bandBounds{
	telemetry.ChannelAQI:     {50, 100},
	telemetry.ChannelAQIPM25: {50, 100},
	telemetry.ChannelAQICO:   {50, 100},
	telemetry.ChannelAQINO2:  {50, 100},
	telemetry.ChannelCO2:     {800, 1200},
	telemetry.ChannelCO:      {9, 35},
	// NO2 readings arrive in ppm; the bounds are in ppb.
	telemetry.ChannelNO2: {53, 100},
}

// classifiedChannels are the badge channels that get a severity band.
var classifiedChannels = []telemetry.Channel{
	telemetry.ChannelAQI,
	telemetry.ChannelCO2,
	telemetry.ChannelCO,
	telemetry.ChannelNO2,
}

// Classify maps a channel value onto its severity band. A nil value is
// unknown; the caller must render a neutral indicator, never a stale one.
func Classify(ch telemetry.Channel, value *float64) Band {
	if value == nil {
		return BandUnknown
	}
	bounds, ok := channelBounds[ch]
	if !ok {
		return BandUnknown
	}

	v := *value
	if ch == telemetry.ChannelNO2 {
		v *= 1000 // ppm to ppb
	}

	switch {
	case v <= bounds.good:
		return BandGood
	case v <= bounds.moderate:
		return BandModerate
	default:
		return BandUnhealthy
	}
}
