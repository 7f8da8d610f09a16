package weather

import (
	"strconv"
)

// Condition is the provider's coarse weather category, lower-cased
// (OpenWeatherMap's weather[0].main).
type Condition string

const (
	ConditionClear        Condition = "clear"
	ConditionClouds       Condition = "clouds"
	ConditionRain         Condition = "rain"
	ConditionSnow         Condition = "snow"
	ConditionThunderstorm Condition = "thunderstorm"
	ConditionMist         Condition = "mist"
)

// Location identifies where weather is requested for.
// Either City or both Lat and Lon must be provided.
type Location struct {
	City string
	Lat  *float64 `validate:"omitempty,latitude"`
	Lon  *float64 `validate:"omitempty,longitude"`
}

// HasCoordinates reports whether both coordinates are set.
func (l Location) HasCoordinates() bool {
	return l.Lat != nil && l.Lon != nil
}

// Key returns a short human-readable label for logs.
func (l Location) Key() string {
	if l.City != "" {
		return l.City
	}
	if l.HasCoordinates() {
		return formatDegrees(*l.Lat) + "," + formatDegrees(*l.Lon)
	}
	return "<none>"
}

func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Report is the display-ready subset of a current-weather response.
type Report struct {
	Place        string
	Category     Condition
	Description  string
	TemperatureC float64
	HumidityPct  int
	WindSpeedMS  float64
}
