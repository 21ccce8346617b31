package service

import (
	"context"
	"fmt"

	"github.com/alexivanou/weather-dashboard/internal/model"
	"github.com/alexivanou/weather-dashboard/internal/provider"
	"go.uber.org/zap"
)

// Geocoder resolves a city name to coordinates
type Geocoder interface {
	DirectGeocode(ctx context.Context, city string) ([]provider.GeoPlace, error)
}

// MapCenter is where the map view is centred
type MapCenter struct {
	City     string           `json:"city"`
	Location model.Coordinate `json:"location"`
}

// MapService centres the map on the last searched city
type MapService struct {
	geocoder Geocoder
	cities   CityLookup
	logger   *zap.Logger
}

// NewMapService creates a new map service instance
func NewMapService(geocoder Geocoder, cities CityLookup, logger *zap.Logger) *MapService {
	return &MapService{
		geocoder: geocoder,
		cities:   cities,
		logger:   logger,
	}
}

// Center geocodes the last searched city
func (s *MapService) Center(ctx context.Context) (*MapCenter, error) {
	city, err := s.cities.LastCity(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load last city: %w", err)
	}
	if city == "" {
		return nil, ErrNoCity
	}

	places, err := s.geocoder.DirectGeocode(ctx, city)
	if err != nil {
		s.logger.Error("Failed to geocode city", zap.String("city", city), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if len(places) == 0 {
		return nil, ErrCityNotFound
	}

	return &MapCenter{
		City:     city,
		Location: model.Coordinate{Lat: places[0].Lat, Lon: places[0].Lon},
	}, nil
}
