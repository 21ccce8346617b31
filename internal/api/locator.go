package api

import (
	"context"
	"errors"

	"github.com/alexivanou/weather-dashboard/internal/model"
	"github.com/alexivanou/weather-dashboard/internal/service"
)

// locationRequest carries the outcome of the browser geolocation prompt
type locationRequest struct {
	Supported bool     `json:"supported"`
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
	Error     string   `json:"error"`
}

// locator turns the request into a service.Locator, nil when unsupported
func (r locationRequest) locator() (service.Locator, error) {
	if !r.Supported {
		return nil, nil
	}
	if r.Error != "" {
		return reportedLocator{err: errors.New(r.Error)}, nil
	}
	if r.Lat == nil || r.Lon == nil {
		return nil, errors.New("fields 'lat' and 'lon' are required")
	}
	if *r.Lat < -90 || *r.Lat > 90 || *r.Lon < -180 || *r.Lon > 180 {
		return nil, errors.New("invalid coordinates range")
	}
	return reportedLocator{pos: model.Coordinate{Lat: *r.Lat, Lon: *r.Lon}}, nil
}

// reportedLocator replays a position the client already resolved
type reportedLocator struct {
	pos model.Coordinate
	err error
}

func (l reportedLocator) CurrentPosition(ctx context.Context) (model.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return model.Coordinate{}, err
	}
	return l.pos, l.err
}
