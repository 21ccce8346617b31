package model

import "strings"

const (
	// MaxForecastEntries is the number of 3-hour slots kept (~27 hours)
	MaxForecastEntries = 9
	// MaxHistoryEntries caps the search history
	MaxHistoryEntries = 5
)

// Coordinate represents geographic coordinates
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// CurrentWeather is the current conditions card for the searched city
type CurrentWeather struct {
	Name        string  `json:"name"`
	Temp        int     `json:"temp"`
	TempMax     int     `json:"temp_max"`
	TempMin     int     `json:"temp_min"`
	Humidity    int     `json:"humidity"`
	FeelsLike   int     `json:"feels_like"`
	Icon        string  `json:"icon"`
	Description string  `json:"description"`
	Main        string  `json:"main"`
	WindSpeed   float64 `json:"wind_speed"`
	Pressure    int     `json:"pressure"`
	// RawTemp is the unrounded reading the alert thresholds compare against.
	RawTemp     float64 `json:"-"`
}

// ForecastEntry is one 3-hour forecast slot
type ForecastEntry struct {
	Time     string `json:"time"`
	Temp     int    `json:"temp"`
	Humidity int    `json:"humidity"`
	Desc     string `json:"desc"`
	Icon     string `json:"icon"`
}

// AirQuality holds the air quality index (1-5) and pollutant concentrations
type AirQuality struct {
	AQI        int                `json:"aqi"`
	Components map[string]float64 `json:"components"`
}

// Label returns the human readable AQI category
func (a AirQuality) Label() string {
	switch a.AQI {
	case 1:
		return "Good"
	case 2:
		return "Fair"
	case 3:
		return "Moderate"
	case 4:
		return "Poor"
	case 5:
		return "Very Poor"
	default:
		return "Unknown"
	}
}

var weatherTips = map[string]string{
	"Rain":         "Don't forget an umbrella!",
	"Clear":        "Wear sunglasses.",
	"Snow":         "Dress warmly.",
	"Thunderstorm": "Stay indoors during the storm.",
	"Clouds":       "Light jacket recommended.",
	"Drizzle":      "Keep an umbrella just in case.",
	"Mist":         "Drive carefully, visibility is low.",
}

// WeatherTip returns a short advice for the main weather condition, or "" if none
func WeatherTip(main string) string {
	return weatherTips[strings.TrimSpace(main)]
}

// HistoricalPoint is a single hourly observation of the historical trend
type HistoricalPoint struct {
	DateTime string  `json:"datetime"`
	Temp     float64 `json:"temp"`
	Humidity float64 `json:"humidity"`
}
