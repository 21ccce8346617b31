package service

import (
	"context"

	"github.com/alexivanou/weather-dashboard/internal/model"
	"github.com/alexivanou/weather-dashboard/internal/provider"
)

// WeatherProvider is the subset of the provider client the orchestrator sequences
type WeatherProvider interface {
	Forecast(ctx context.Context, city string) (*provider.ForecastResponse, error)
	CurrentWeatherByCity(ctx context.Context, city string) (*provider.WeatherResponse, error)
	ReverseGeocode(ctx context.Context, lat, lon float64) ([]provider.GeoPlace, error)
	AirQuality(ctx context.Context, lat, lon float64) (*provider.AirPollutionResponse, error)
}

// HistoryRecorder persists a successful search
type HistoryRecorder interface {
	Record(ctx context.Context, city string) ([]string, error)
	SetLastCity(ctx context.Context, city string) error
}

// CityLookup returns the last successfully searched city
type CityLookup interface {
	LastCity(ctx context.Context) (string, error)
}

// Locator resolves the user's current position. It blocks until the
// position is known, the user declines, or ctx is done.
type Locator interface {
	CurrentPosition(ctx context.Context) (model.Coordinate, error)
}

// TrendInterface defines the historical trend service for the HTTP layer
type TrendInterface interface {
	History(ctx context.Context, req HistoryRange) ([]model.HistoricalPoint, error)
}

// MapInterface defines the map centre service for the HTTP layer
type MapInterface interface {
	Center(ctx context.Context) (*MapCenter, error)
}

// AlertInterface defines the alert preference service for the HTTP layer
type AlertInterface interface {
	Get(ctx context.Context) (model.AlertPreferences, error)
	Save(ctx context.Context, prefs model.AlertPreferences) (*SaveResult, error)
}
