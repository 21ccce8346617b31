package service

import "errors"

var (
	// ErrNoCity is returned when an operation needs a searched city and none was searched yet
	ErrNoCity = errors.New("no city searched yet")
	// ErrCityNotFound is returned when the last searched city cannot be geocoded
	ErrCityNotFound = errors.New("city not found")
	// ErrInvalidRange is returned for malformed or reversed history date ranges
	ErrInvalidRange = errors.New("invalid date range")
	// ErrInvalidPreferences is returned when alert preferences fail validation
	ErrInvalidPreferences = errors.New("invalid alert preferences")
	// ErrUpstream wraps provider failures of the trend and map services
	ErrUpstream = errors.New("weather provider unavailable")
)
