package model

// ErrorKind classifies a user-visible search failure
type ErrorKind string

const (
	ErrEmptyQuery             ErrorKind = "empty_query"
	ErrCityNotFound           ErrorKind = "city_not_found"
	ErrAqiUnavailable         ErrorKind = "aqi_unavailable"
	ErrGeolocationUnsupported ErrorKind = "geolocation_unsupported"
	ErrLocationAccessDenied   ErrorKind = "location_access_denied"
	ErrLocationNotResolved    ErrorKind = "location_not_resolved"
	ErrGenericFailure         ErrorKind = "generic_failure"
)

var defaultMessages = map[ErrorKind]string{
	ErrEmptyQuery:             "Please enter a city name.",
	ErrCityNotFound:           "City not found. Please enter a valid city name.",
	ErrAqiUnavailable:         "Unable to fetch AQI data for the provided city.",
	ErrGeolocationUnsupported: "Geolocation is not supported by this browser.",
	ErrLocationAccessDenied:   "Unable to access your location. Please enable location services.",
	ErrLocationNotResolved:    "Unable to fetch city name from your location.",
	ErrGenericFailure:         "Something went wrong. Please try again later.",
}

// SearchError is the single error surfaced to the user for one search action
type SearchError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *SearchError) Error() string {
	return e.Message
}

// NewSearchError builds a SearchError with the default message of its kind
func NewSearchError(kind ErrorKind) *SearchError {
	return &SearchError{Kind: kind, Message: defaultMessages[kind]}
}

// Slices is a bitmask of the dashboard state slices a result overwrites
type Slices uint8

const (
	SliceWeather Slices = 1 << iota
	SliceForecast
	SliceAirQuality

	AllSlices = SliceWeather | SliceForecast | SliceAirQuality
)

// Has reports whether all slices in s are set
func (c Slices) Has(s Slices) bool {
	return c&s == s
}

// SearchResult is the outcome of one orchestrated search or location lookup.
// A slice flagged in Changed with a nil/empty value has been cleared; slices
// not flagged must be left untouched by the caller.
type SearchResult struct {
	Weather    *CurrentWeather
	Forecast   []ForecastEntry
	AirQuality *AirQuality
	Changed    Slices
	// Query is the resolved place name of a location lookup.
	Query string
	// City is the city recorded in the search history, empty if none was.
	City string
	Err  *SearchError
}

// SetWeather commits (or clears, when w is nil) the current weather slice
func (r *SearchResult) SetWeather(w *CurrentWeather) {
	r.Weather = w
	r.Changed |= SliceWeather
}

// SetForecast commits (or clears, when f is empty) the forecast slice
func (r *SearchResult) SetForecast(f []ForecastEntry) {
	r.Forecast = f
	r.Changed |= SliceForecast
}

// SetAirQuality commits (or clears, when a is nil) the air quality slice
func (r *SearchResult) SetAirQuality(a *AirQuality) {
	r.AirQuality = a
	r.Changed |= SliceAirQuality
}

// Fail records the error kind and clears the given slices
func (r *SearchResult) Fail(kind ErrorKind, clear Slices) {
	r.Err = NewSearchError(kind)
	if clear.Has(SliceWeather) {
		r.SetWeather(nil)
	}
	if clear.Has(SliceForecast) {
		r.SetForecast(nil)
	}
	if clear.Has(SliceAirQuality) {
		r.SetAirQuality(nil)
	}
}
