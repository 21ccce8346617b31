package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/alexivanou/weather-dashboard/internal/model"
	"github.com/alexivanou/weather-dashboard/internal/repository"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Notifier delivers saved alert preferences to an external mailer
type Notifier interface {
	Send(ctx context.Context, prefs model.AlertPreferences) error
}

// SaveResult reports what happened to saved preferences
type SaveResult struct {
	Preferences model.AlertPreferences `json:"preferences"`
	Posted      bool                   `json:"posted"`
}

// AlertService stores alert preferences and evaluates them locally
type AlertService struct {
	repo     repository.PreferenceRepository
	notifier Notifier
	validate *validator.Validate
	logger   *zap.Logger
}

// NewAlertService creates a new alert service instance. notifier may be nil.
func NewAlertService(repo repository.PreferenceRepository, notifier Notifier, validate *validator.Validate, logger *zap.Logger) *AlertService {
	return &AlertService{
		repo:     repo,
		notifier: notifier,
		validate: validate,
		logger:   logger,
	}
}

// Get returns the stored preferences, or all toggles off when none are saved
func (s *AlertService) Get(ctx context.Context) (model.AlertPreferences, error) {
	var prefs model.AlertPreferences

	raw, err := s.repo.Get(ctx, repository.KeyAlertPrefs)
	if errors.Is(err, repository.ErrNotFound) {
		return prefs, nil
	}
	if err != nil {
		return prefs, fmt.Errorf("failed to load alert preferences: %w", err)
	}

	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		s.logger.Warn("Discarding unreadable alert preferences", zap.Error(err))
		return model.AlertPreferences{}, nil
	}
	return prefs, nil
}

// Save validates and persists prefs, then posts them once if a notifier is set
func (s *AlertService) Save(ctx context.Context, prefs model.AlertPreferences) (*SaveResult, error) {
	prefs.Email = strings.TrimSpace(prefs.Email)
	prefs.City = strings.TrimSpace(prefs.City)

	if err := s.validate.Struct(prefs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPreferences, err)
	}

	data, err := json.Marshal(prefs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode alert preferences: %w", err)
	}
	if err := s.repo.Set(ctx, repository.KeyAlertPrefs, string(data)); err != nil {
		return nil, fmt.Errorf("failed to save alert preferences: %w", err)
	}

	result := &SaveResult{Preferences: prefs}
	if s.notifier == nil {
		return result, nil
	}

	if err := s.notifier.Send(ctx, prefs); err != nil {
		s.logger.Warn("Failed to post alert preferences", zap.Error(err))
		return result, nil
	}
	result.Posted = true

	return result, nil
}

var severeConditions = map[string]bool{
	"Thunderstorm": true,
	"Tornado":      true,
	"Squall":       true,
}

// Evaluate returns the alerts enabled in prefs that match the given conditions.
// weather and aqi may be nil; rules depending on them are skipped.
func Evaluate(prefs model.AlertPreferences, weather *model.CurrentWeather, aqi *model.AirQuality) []model.Alert {
	alerts := []model.Alert{}

	if weather != nil {
		main := strings.ToLower(weather.Main)
		if prefs.Rain && (strings.Contains(main, "rain") || strings.Contains(main, "drizzle")) {
			alerts = append(alerts, model.Alert{
				Kind:    model.AlertRain,
				Message: fmt.Sprintf("Rain expected in %s: %s", weather.Name, weather.Description),
			})
		}
		if prefs.TempBelow10 && weather.RawTemp < 10 {
			alerts = append(alerts, model.Alert{
				Kind:    model.AlertTempBelow10,
				Message: fmt.Sprintf("Temperature in %s is %.1f°C", weather.Name, weather.RawTemp),
			})
		}
		if prefs.TempAbove30 && weather.RawTemp > 30 {
			alerts = append(alerts, model.Alert{
				Kind:    model.AlertTempAbove30,
				Message: fmt.Sprintf("Temperature in %s is %.1f°C", weather.Name, weather.RawTemp),
			})
		}
		if prefs.HumidityAbove80 && weather.Humidity > 80 {
			alerts = append(alerts, model.Alert{
				Kind:    model.AlertHumidity,
				Message: fmt.Sprintf("Humidity in %s is %d%%", weather.Name, weather.Humidity),
			})
		}
		if prefs.SevereWeather && severeConditions[weather.Main] {
			alerts = append(alerts, model.Alert{
				Kind:    model.AlertSevereWeather,
				Message: fmt.Sprintf("Severe weather in %s: %s", weather.Name, weather.Main),
			})
		}
	}

	if aqi != nil && prefs.AQIAbove100 && aqi.AQI >= 4 {
		alerts = append(alerts, model.Alert{
			Kind:    model.AlertPoorAir,
			Message: fmt.Sprintf("Air quality is %s (AQI %d)", aqi.Label(), aqi.AQI),
		})
	}

	return alerts
}
