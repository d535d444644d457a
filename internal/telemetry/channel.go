package telemetry

// Channel identifies one measured or derived quantity.
type Channel string

const (
	ChannelAQI         Channel = "aqi"
	ChannelTemperature Channel = "temperature"
	ChannelHumidity    Channel = "humidity"
	ChannelCO2         Channel = "co2"
	ChannelCO          Channel = "co"
	ChannelNO2         Channel = "no2"
	ChannelPM25        Channel = "pm25"
	ChannelAQIPM25     Channel = "aqi_pm25"
	ChannelAQICO       Channel = "aqi_co"
	ChannelAQINO2      Channel = "aqi_no2"
)

// channelSpec describes how a channel is resolved and displayed.
type channelSpec struct {
	// aliases are tried in order; different producers use different
	// casings for the same field.
	aliases  []string
	min, max float64
	unit     string
	display  string
}

var channelSpecs = map[Channel]channelSpec{
	ChannelAQI:         {[]string{"aqi", "AQI"}, 0, 500, "", "AQI"},
	ChannelTemperature: {[]string{"temperature", "temp", "Temperature"}, -10, 50, "°C", "Temperature"},
	ChannelHumidity:    {[]string{"humidity", "hum", "Humidity"}, 0, 100, "%", "Humidity"},
	ChannelCO2:         {[]string{"co2_ppm", "co2", "CO2"}, 400, 2000, "ppm", "CO₂"},
	ChannelCO:          {[]string{"co_ppm", "co", "CO_ppm", "CO"}, 0, 50, "ppm", "CO"},
	ChannelNO2:         {[]string{"no2_ppm", "no2", "NO2"}, 0, 1, "ppm", "NO₂"},
	ChannelPM25:        {[]string{"pm25", "pm_25", "PM2_5"}, 0, 250, "µg/m³", "PM2.5"},
	ChannelAQIPM25:     {[]string{"aqi_pm25", "AQI_PM25"}, 0, 500, "", "PM2.5 AQI"},
	ChannelAQICO:       {[]string{"aqi_co", "AQI_CO"}, 0, 500, "", "CO AQI"},
	ChannelAQINO2:      {[]string{"aqi_no2", "AQI_NO2"}, 0, 500, "", "NO₂ AQI"},
}

// allChannels fixes the iteration order used for series extraction.
var allChannels = []Channel{
	ChannelAQI,
	ChannelTemperature,
	ChannelHumidity,
	ChannelCO2,
	ChannelCO,
	ChannelNO2,
	ChannelPM25,
	ChannelAQIPM25,
	ChannelAQICO,
	ChannelAQINO2,
}

// AllChannels returns every channel in fixed declaration order.
func AllChannels() []Channel {
	channels := make([]Channel, len(allChannels))
	copy(channels, allChannels)
	return channels
}

// Aliases returns the record keys the channel may appear under, in
// precedence order.
func (c Channel) Aliases() []string {
	return channelSpecs[c].aliases
}

// Range returns the display range used for gauge and chart scaling.
func (c Channel) Range() (min, max float64) {
	spec := channelSpecs[c]
	return spec.min, spec.max
}

// Unit returns the display unit, empty for dimensionless channels.
func (c Channel) Unit() string {
	return channelSpecs[c].unit
}

// DisplayName returns the badge label for the channel.
func (c Channel) DisplayName() string {
	if spec, ok := channelSpecs[c]; ok {
		return spec.display
	}
	return string(c)
}
