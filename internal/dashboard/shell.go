// Package dashboard holds the state of the single dashboard shell and applies
// search results to it.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/alexivanou/weather-dashboard/internal/model"
	"github.com/alexivanou/weather-dashboard/internal/service"
	"go.uber.org/zap"
)

// View is the display component shown below the search bar
type View string

const (
	ViewCurrent  View = "current"
	ViewForecast View = "forecast"
	ViewHistory  View = "history"
	ViewMap      View = "map"
	ViewSettings View = "settings"
)

// ErrUnknownView is returned by SetView for an unsupported view
var ErrUnknownView = errors.New("unknown view")

func (v View) valid() bool {
	switch v {
	case ViewCurrent, ViewForecast, ViewHistory, ViewMap, ViewSettings:
		return true
	}
	return false
}

// Searcher runs search actions
type Searcher interface {
	Submit(ctx context.Context, query string) model.SearchResult
	Locate(ctx context.Context, locator service.Locator) model.SearchResult
}

// HistoryLoader reads the persisted search history, most recent first
type HistoryLoader interface {
	Load(ctx context.Context) []string
	Suggestions(ctx context.Context, text string) []string
}

// State is everything the dashboard renders
type State struct {
	Query           string                `json:"query"`
	Suggestions     []string              `json:"suggestions"`
	ShowSuggestions bool                  `json:"showSuggestions"`
	Loading         bool                  `json:"loading"`
	Error           *model.SearchError    `json:"error"`
	Weather         *model.CurrentWeather `json:"weather"`
	Forecast        []model.ForecastEntry `json:"forecast"`
	AirQuality      *model.AirQuality     `json:"airQuality"`
	View            View                  `json:"view"`
}

// Shell owns the dashboard state. Network work runs outside the lock; each
// search takes a token and only the latest one may write its result.
type Shell struct {
	mu        sync.Mutex
	state     State
	token     uint64
	blurTimer *time.Timer

	searcher  Searcher
	history   HistoryLoader
	blurDelay time.Duration
	logger    *zap.Logger
}

// NewShell creates a shell showing the current weather view
func NewShell(searcher Searcher, history HistoryLoader, blurDelay time.Duration, logger *zap.Logger) *Shell {
	return &Shell{
		state: State{
			Suggestions: []string{},
			Forecast:    []model.ForecastEntry{},
			View:        ViewCurrent,
		},
		searcher:  searcher,
		history:   history,
		blurDelay: blurDelay,
		logger:    logger,
	}
}

// QueryChange stores text verbatim and filters the suggestions by prefix
func (s *Shell) QueryChange(ctx context.Context, text string) State {
	suggestions := s.history.Suggestions(ctx, text)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Query = text
	s.state.Error = nil
	s.state.Suggestions = suggestions
	s.state.ShowSuggestions = text != "" && len(suggestions) > 0
	return s.snapshotLocked()
}

// Focus offers the full history as suggestions
func (s *Shell) Focus(ctx context.Context) State {
	suggestions := s.history.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Suggestions = suggestions
	s.state.ShowSuggestions = len(suggestions) > 0
	return s.snapshotLocked()
}

// PickSuggestion copies city into the query. It does not submit.
func (s *Shell) PickSuggestion(city string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Query = city
	s.state.ShowSuggestions = false
	return s.snapshotLocked()
}

// Blur hides the suggestions after the blur delay, leaving time for a pick
// to land first. A newer Blur replaces the pending one.
func (s *Shell) Blur() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.blurTimer != nil {
		s.blurTimer.Stop()
	}

	var timer *time.Timer
	timer = time.AfterFunc(s.blurDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.blurTimer != timer {
			return
		}
		s.blurTimer = nil
		s.state.ShowSuggestions = false
	})
	s.blurTimer = timer

	return s.snapshotLocked()
}

// Submit searches the current query text. The query is cleared and the
// suggestions hidden whatever the outcome. The search outlives ctx so a
// caller that goes away cannot wipe the dashboard.
func (s *Shell) Submit(ctx context.Context) State {
	ctx = context.WithoutCancel(ctx)

	s.mu.Lock()
	query := s.state.Query
	s.state.Query = ""
	s.state.ShowSuggestions = false
	token := s.begin()
	s.mu.Unlock()

	s.await(token, func() model.SearchResult {
		return s.searcher.Submit(ctx, query)
	})
	return s.Snapshot()
}

// UseCurrentLocation resolves the user's position to a place name and its
// air quality. A nil locator means geolocation is unsupported.
func (s *Shell) UseCurrentLocation(ctx context.Context, locator service.Locator) State {
	ctx = context.WithoutCancel(ctx)
	if locator == nil {
		res := s.searcher.Locate(ctx, nil)

		s.mu.Lock()
		defer s.mu.Unlock()
		s.applyLocked(res)
		return s.snapshotLocked()
	}

	s.mu.Lock()
	token := s.begin()
	s.mu.Unlock()

	s.await(token, func() model.SearchResult {
		return s.searcher.Locate(ctx, locator)
	})
	return s.Snapshot()
}

// SetView switches the visible display component
func (s *Shell) SetView(view View) (State, error) {
	if !view.valid() {
		return s.Snapshot(), fmt.Errorf("%w: %q", ErrUnknownView, view)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.View = view
	return s.snapshotLocked(), nil
}

// Snapshot returns a copy of the current state
func (s *Shell) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Close stops a pending blur timer
func (s *Shell) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.blurTimer != nil {
		s.blurTimer.Stop()
		s.blurTimer = nil
	}
}

// begin takes a new token and sets loading. Callers hold mu.
func (s *Shell) begin() uint64 {
	s.token++
	s.state.Loading = true
	return s.token
}

func (s *Shell) await(token uint64, run func() model.SearchResult) {
	defer s.release(token)

	res := run()

	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.token {
		s.logger.Debug("Discarding stale search result",
			zap.Uint64("token", token),
			zap.Uint64("latest", s.token))
		return
	}
	s.applyLocked(res)
}

func (s *Shell) release(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == s.token {
		s.state.Loading = false
	}
}

func (s *Shell) applyLocked(res model.SearchResult) {
	if res.Changed.Has(model.SliceWeather) {
		s.state.Weather = res.Weather
	}
	if res.Changed.Has(model.SliceForecast) {
		s.state.Forecast = res.Forecast
		if s.state.Forecast == nil {
			s.state.Forecast = []model.ForecastEntry{}
		}
	}
	if res.Changed.Has(model.SliceAirQuality) {
		s.state.AirQuality = res.AirQuality
	}
	if res.Query != "" {
		s.state.Query = res.Query
	}
	s.state.Error = res.Err
}

func (s *Shell) snapshotLocked() State {
	out := s.state
	out.Suggestions = append([]string{}, s.state.Suggestions...)
	out.Forecast = append([]model.ForecastEntry{}, s.state.Forecast...)
	if s.state.Weather != nil {
		w := *s.state.Weather
		out.Weather = &w
	}
	if s.state.AirQuality != nil {
		a := *s.state.AirQuality
		a.Components = maps.Clone(a.Components)
		out.AirQuality = &a
	}
	if s.state.Error != nil {
		e := *s.state.Error
		out.Error = &e
	}
	return out
}
