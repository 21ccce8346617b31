package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexivanou/weather-dashboard/internal/model"
	"github.com/alexivanou/weather-dashboard/internal/provider"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// TimelineProvider fetches hourly historical observations
type TimelineProvider interface {
	Timeline(ctx context.Context, city, start, end string) (*provider.TimelineResponse, error)
}

// HistoryRange is the requested window of the historical trend, inclusive
type HistoryRange struct {
	Start string `validate:"required,datetime=2006-01-02"`
	End   string `validate:"required,datetime=2006-01-02"`
}

// TrendService serves the historical trend of the last searched city
type TrendService struct {
	timeline TimelineProvider
	cities   CityLookup
	validate *validator.Validate
	logger   *zap.Logger
}

// NewTrendService creates a new trend service instance
func NewTrendService(timeline TimelineProvider, cities CityLookup, validate *validator.Validate, logger *zap.Logger) *TrendService {
	return &TrendService{
		timeline: timeline,
		cities:   cities,
		validate: validate,
		logger:   logger,
	}
}

// History returns the hourly temperature and humidity between two dates
func (s *TrendService) History(ctx context.Context, req HistoryRange) ([]model.HistoricalPoint, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}

	start, _ := time.Parse(dateLayout, req.Start)
	end, _ := time.Parse(dateLayout, req.End)
	if start.After(end) {
		return nil, fmt.Errorf("%w: start %s is after end %s", ErrInvalidRange, req.Start, req.End)
	}

	city, err := s.cities.LastCity(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load last city: %w", err)
	}
	if city == "" {
		return nil, ErrNoCity
	}

	resp, err := s.timeline.Timeline(ctx, city, req.Start, req.End)
	if err != nil {
		s.logger.Error("Failed to fetch historical data",
			zap.String("city", city),
			zap.String("start", req.Start),
			zap.String("end", req.End),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	var points []model.HistoricalPoint
	for _, day := range resp.Days {
		for _, hour := range day.Hours {
			points = append(points, model.HistoricalPoint{
				DateTime: day.Datetime + " " + hour.Datetime,
				Temp:     hour.Temp,
				Humidity: hour.Humidity,
			})
		}
	}
	if points == nil {
		points = []model.HistoricalPoint{}
	}

	return points, nil
}
