package service

import (
	"context"
	"errors"
	"strings"

	"github.com/alexivanou/weather-dashboard/internal/model"
	"github.com/alexivanou/weather-dashboard/internal/provider"
	"go.uber.org/zap"
)

// Orchestrator sequences the provider calls of one search action into a
// single SearchResult. It holds no UI state.
type Orchestrator struct {
	weather WeatherProvider
	history HistoryRecorder
	logger  *zap.Logger
}

// NewOrchestrator creates a new orchestrator instance
func NewOrchestrator(weather WeatherProvider, history HistoryRecorder, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		weather: weather,
		history: history,
		logger:  logger,
	}
}

// Submit resolves a city name into forecast, current weather and air quality.
// The first failing step short-circuits the rest; an air quality failure
// never fails the search.
func (o *Orchestrator) Submit(ctx context.Context, query string) model.SearchResult {
	var res model.SearchResult

	city := strings.TrimSpace(query)
	if city == "" {
		res.Fail(model.ErrEmptyQuery, model.SliceWeather|model.SliceAirQuality)
		return res
	}

	log := o.logger.With(zap.String("city", city))

	forecast, err := o.weather.Forecast(ctx, city)
	if err != nil {
		if errors.Is(err, provider.ErrNotOK) {
			log.Info("Forecast lookup returned no city", zap.Error(err))
			res.Fail(model.ErrCityNotFound, model.SliceForecast|model.SliceWeather)
			return res
		}
		return o.unexpected(log, "forecast", err)
	}
	if len(forecast.List) == 0 {
		res.Fail(model.ErrCityNotFound, model.SliceForecast|model.SliceWeather)
		return res
	}

	entries, err := mapForecast(forecast.List)
	if err != nil {
		return o.unexpected(log, "forecast", err)
	}
	res.SetForecast(entries)

	current, err := o.weather.CurrentWeatherByCity(ctx, city)
	if err != nil {
		if errors.Is(err, provider.ErrNotOK) {
			log.Info("Weather lookup returned no city", zap.Error(err))
			res.Fail(model.ErrCityNotFound, model.SliceWeather)
			return res
		}
		return o.unexpected(log, "weather", err)
	}

	weather, err := mapWeather(current)
	if err != nil {
		return o.unexpected(log, "weather", err)
	}
	res.SetWeather(weather)

	o.remember(ctx, log, city)
	res.City = city

	if current.Coord == nil {
		res.Fail(model.ErrAqiUnavailable, model.SliceAirQuality)
		return res
	}
	o.fetchAirQuality(ctx, log, model.Coordinate{Lat: current.Coord.Lat, Lon: current.Coord.Lon}, &res)

	return res
}

// Locate resolves the user's position to a place name and its air quality.
// Weather and forecast are left for the follow-up Submit.
func (o *Orchestrator) Locate(ctx context.Context, locator Locator) model.SearchResult {
	var res model.SearchResult

	if locator == nil {
		res.Fail(model.ErrGeolocationUnsupported, 0)
		return res
	}

	pos, err := locator.CurrentPosition(ctx)
	if err != nil {
		o.logger.Info("Location request rejected", zap.Error(err))
		res.Fail(model.ErrLocationAccessDenied, model.SliceWeather|model.SliceAirQuality)
		return res
	}

	log := o.logger.With(zap.Float64("lat", pos.Lat), zap.Float64("lon", pos.Lon))

	places, err := o.weather.ReverseGeocode(ctx, pos.Lat, pos.Lon)
	if err != nil {
		if errors.Is(err, provider.ErrNotOK) {
			log.Warn("Reverse geocoding failed", zap.Error(err))
			res.Fail(model.ErrLocationNotResolved, model.SliceAirQuality)
			return res
		}
		log.Error("Location lookup failed", zap.Error(err))
		res.Fail(model.ErrGenericFailure, model.SliceAirQuality)
		return res
	}
	if len(places) == 0 || strings.TrimSpace(places[0].Name) == "" {
		res.Fail(model.ErrLocationNotResolved, model.SliceAirQuality)
		return res
	}

	res.Query = places[0].Name
	o.fetchAirQuality(ctx, log, pos, &res)

	return res
}

func (o *Orchestrator) fetchAirQuality(ctx context.Context, log *zap.Logger, pos model.Coordinate, res *model.SearchResult) {
	resp, err := o.weather.AirQuality(ctx, pos.Lat, pos.Lon)
	if err != nil {
		log.Warn("Air quality lookup failed", zap.Error(err))
		res.Fail(model.ErrAqiUnavailable, model.SliceAirQuality)
		return
	}

	aqi, ok := mapAirQuality(resp)
	if !ok {
		res.Fail(model.ErrAqiUnavailable, model.SliceAirQuality)
		return
	}
	res.SetAirQuality(aqi)
}

func (o *Orchestrator) remember(ctx context.Context, log *zap.Logger, city string) {
	if _, err := o.history.Record(ctx, city); err != nil {
		log.Warn("Failed to record search history", zap.Error(err))
	}
	if err := o.history.SetLastCity(ctx, city); err != nil {
		log.Warn("Failed to record last city", zap.Error(err))
	}
}

func (o *Orchestrator) unexpected(log *zap.Logger, step string, err error) model.SearchResult {
	log.Error("Search failed", zap.String("step", step), zap.Error(err))
	var res model.SearchResult
	res.Fail(model.ErrGenericFailure, model.AllSlices)
	return res
}
