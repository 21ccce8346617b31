package service

import (
	"context"

	"github.com/alexivanou/weather-dashboard/internal/model"
	"github.com/alexivanou/weather-dashboard/internal/provider"
	"github.com/stretchr/testify/mock"
)

// MockWeatherProvider implements WeatherProvider, TimelineProvider and Geocoder
type MockWeatherProvider struct {
	mock.Mock
}

func (m *MockWeatherProvider) Forecast(ctx context.Context, city string) (*provider.ForecastResponse, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.ForecastResponse), args.Error(1)
}

func (m *MockWeatherProvider) CurrentWeatherByCity(ctx context.Context, city string) (*provider.WeatherResponse, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.WeatherResponse), args.Error(1)
}

func (m *MockWeatherProvider) ReverseGeocode(ctx context.Context, lat, lon float64) ([]provider.GeoPlace, error) {
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]provider.GeoPlace), args.Error(1)
}

func (m *MockWeatherProvider) DirectGeocode(ctx context.Context, city string) ([]provider.GeoPlace, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]provider.GeoPlace), args.Error(1)
}

func (m *MockWeatherProvider) AirQuality(ctx context.Context, lat, lon float64) (*provider.AirPollutionResponse, error) {
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.AirPollutionResponse), args.Error(1)
}

func (m *MockWeatherProvider) Timeline(ctx context.Context, city, start, end string) (*provider.TimelineResponse, error) {
	args := m.Called(ctx, city, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.TimelineResponse), args.Error(1)
}

// MockHistory implements HistoryRecorder and CityLookup
type MockHistory struct {
	mock.Mock
}

func (m *MockHistory) Record(ctx context.Context, city string) ([]string, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockHistory) SetLastCity(ctx context.Context, city string) error {
	args := m.Called(ctx, city)
	return args.Error(0)
}

func (m *MockHistory) LastCity(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockNotifier implements Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, prefs model.AlertPreferences) error {
	args := m.Called(ctx, prefs)
	return args.Error(0)
}

// stubLocator returns a fixed position or error
type stubLocator struct {
	pos model.Coordinate
	err error
}

func (s stubLocator) CurrentPosition(context.Context) (model.Coordinate, error) {
	return s.pos, s.err
}
