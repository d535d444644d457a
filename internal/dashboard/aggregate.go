package dashboard

import (
	"time"

	"github.com/technova/airdash-server/internal/telemetry"
)

// CurrentValues are the headline scalars backing badges and the summary
// pie. A nil entry means the window held no usable reading.
type CurrentValues struct {
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	PM25        *float64 `json:"pm25"`
	AQI         *float64 `json:"aqi"`
	CO2         *float64 `json:"co2"`
	CO          *float64 `json:"co"`
	NO2         *float64 `json:"no2"`
}

// ViewModel is the derived state handed to the rendering collaborators.
// It is recomputed from scratch on every snapshot.
type ViewModel struct {
	Mode            Mode                         `json:"mode"`
	GeneratedAt     time.Time                    `json:"generated_at"`
	Labels          []string                     `json:"labels"`
	Series          map[telemetry.Channel]Series `json:"series"`
	Classifications map[telemetry.Channel]Band   `json:"classifications"`
	Status          map[telemetry.Channel]string `json:"status"`
	Dominant        DominantPollutant            `json:"dominant"`
	Current         CurrentValues                `json:"current"`
}

// Aggregate reduces one raw snapshot (newest-first, as delivered by the
// source) to the view-model for the given mode. It is a pure function of
// the snapshot, the mode and the supplied wall clock; calling it twice
// with the same inputs yields identical view-models.
func Aggregate(snapshot []telemetry.Record, mode Mode, now time.Time) *ViewModel {
	window := SelectWindow(snapshot, mode, now)

	vm := &ViewModel{
		Mode:            mode,
		GeneratedAt:     now,
		Labels:          Labels(window),
		Series:          make(map[telemetry.Channel]Series),
		Classifications: make(map[telemetry.Channel]Band),
		Status:          make(map[telemetry.Channel]string),
	}

	latest := make(map[telemetry.Channel]*float64)
	for _, ch := range telemetry.AllChannels() {
		series := ExtractSeries(window, ch)
		vm.Series[ch] = series
		latest[ch] = LatestNonNull(series)
	}

	vm.Current = CurrentValues{
		Temperature: latest[telemetry.ChannelTemperature],
		Humidity:    latest[telemetry.ChannelHumidity],
		PM25:        latest[telemetry.ChannelPM25],
		AQI:         latest[telemetry.ChannelAQI],
		CO2:         latest[telemetry.ChannelCO2],
		CO:          latest[telemetry.ChannelCO],
		NO2:         latest[telemetry.ChannelNO2],
	}

	for _, ch := range classifiedChannels {
		vm.Classifications[ch] = Classify(ch, latest[ch])
	}
	for _, ch := range statusChannels {
		vm.Status[ch] = StatusText(ch, latest[ch])
	}

	vm.Dominant = dominantForWindow(window)
	return vm
}

// dominantForWindow derives the dominant-pollutant verdict from the
// newest record that carries any AQI sub-index field. Sub-indices the
// record lacks enter the comparison as the no-value sentinel.
func dominantForWindow(window []telemetry.Record) DominantPollutant {
	var combined []string
	subChannels := []telemetry.Channel{
		telemetry.ChannelAQIPM25,
		telemetry.ChannelAQICO,
		telemetry.ChannelAQINO2,
	}
	for _, ch := range subChannels {
		combined = append(combined, ch.Aliases()...)
	}

	rec := LatestRecordWithField(window, combined)
	if rec == nil {
		return Dominant(NoValue, NoValue, NoValue)
	}

	values := make([]float64, len(subChannels))
	for i, ch := range subChannels {
		values[i] = NoValue
		if v, ok := telemetry.Resolve(rec, ch.Aliases()); ok {
			values[i] = v
		}
	}
	return Dominant(values[0], values[1], values[2])
}
