package dashboard

import (
	"fmt"
	"strconv"

	"github.com/technova/airdash-server/internal/telemetry"
)

// statusChannels are the channels that get a badge line.
var statusChannels = []telemetry.Channel{
	telemetry.ChannelAQI,
	telemetry.ChannelTemperature,
	telemetry.ChannelHumidity,
	telemetry.ChannelCO2,
	telemetry.ChannelCO,
	telemetry.ChannelNO2,
	telemetry.ChannelPM25,
}

// StatusText renders a badge line like "AQI: 42" or "CO₂: 900 ppm".
// A nil value renders the placeholder, never a stale reading.
func StatusText(ch telemetry.Channel, value *float64) string {
	name := ch.DisplayName()
	if value == nil {
		return fmt.Sprintf("%s: —", name)
	}

	num := strconv.FormatFloat(*value, 'f', -1, 64)
	if unit := ch.Unit(); unit != "" {
		return fmt.Sprintf("%s: %s %s", name, num, unit)
	}
	return fmt.Sprintf("%s: %s", name, num)
}
