package dashboard

import (
	"strconv"

	"github.com/technova/airdash-server/internal/telemetry"
)

// NoValue is the sentinel for a sub-index with no usable reading.
const NoValue float64 = -1

// PollutantNone is the verdict when no sub-index has a usable value.
const PollutantNone = "none"

// DominantPollutant names the sub-index with the highest value among the
// latest record's AQI contributions.
type DominantPollutant struct {
	Pollutant string  `json:"pollutant"`
	SubIndex  float64 `json:"sub_index"`
}

// Dominant compares the PM2.5, CO and NO2 sub-indices in that fixed
// order. A later sub-index replaces the running maximum on an exact tie,
// so equal values resolve to the later-checked pollutant; this ordering
// is part of the output contract.
func Dominant(aqiPM25, aqiCO, aqiNO2 float64) DominantPollutant {
	max := NoValue
	pollutant := PollutantNone

	if aqiPM25 >= max {
		max = aqiPM25
		pollutant = string(telemetry.ChannelPM25)
	}
	if aqiCO >= max {
		max = aqiCO
		pollutant = string(telemetry.ChannelCO)
	}
	if aqiNO2 >= max {
		max = aqiNO2
		pollutant = string(telemetry.ChannelNO2)
	}

	if max < 0 {
		return DominantPollutant{Pollutant: PollutantNone, SubIndex: NoValue}
	}
	return DominantPollutant{Pollutant: pollutant, SubIndex: max}
}

// Display renders the sub-index for the badge, with the placeholder when
// no pollutant dominates.
func (d DominantPollutant) Display() string {
	if d.Pollutant == PollutantNone {
		return "—"
	}
	return strconv.FormatFloat(d.SubIndex, 'f', -1, 64)
}
