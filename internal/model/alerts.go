package model

// AlertPreferences are the notification toggles set on the settings page
type AlertPreferences struct {
	Rain            bool   `json:"rain"`
	TempBelow10     bool   `json:"tempBelow10"`
	HumidityAbove80 bool   `json:"humidityAbove80"`
	TempAbove30     bool   `json:"tempAbove30"`
	AQIAbove100     bool   `json:"aqiAbove100"`
	SevereWeather   bool   `json:"severeWeather"`
	Email           string `json:"email" validate:"omitempty,email"`
	City            string `json:"city" validate:"max=100"`
}

// AlertKind identifies a triggered alert condition
type AlertKind string

const (
	AlertRain          AlertKind = "rain"
	AlertTempBelow10   AlertKind = "temp_below_10"
	AlertTempAbove30   AlertKind = "temp_above_30"
	AlertHumidity      AlertKind = "humidity_above_80"
	AlertPoorAir       AlertKind = "poor_air_quality"
	AlertSevereWeather AlertKind = "severe_weather"
)

// Alert is a condition that matched the user's preferences
type Alert struct {
	Kind    AlertKind `json:"kind"`
	Message string    `json:"message"`
}
