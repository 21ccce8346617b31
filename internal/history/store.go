// Package history keeps the list of recently searched cities used for
// autocomplete, and the last successfully searched city.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/alexivanou/weather-dashboard/internal/model"
	"github.com/alexivanou/weather-dashboard/internal/repository"
	"go.uber.org/zap"
)

// Store persists the search history through a preference repository
type Store struct {
	repo   repository.PreferenceRepository
	limit  int
	logger *zap.Logger
}

// NewStore creates a history store capped at model.MaxHistoryEntries
func NewStore(repo repository.PreferenceRepository, logger *zap.Logger) *Store {
	return &Store{
		repo:   repo,
		limit:  model.MaxHistoryEntries,
		logger: logger,
	}
}

// Load returns the persisted history, most recent first.
// A missing key, a storage error or an unparsable value yield an empty list.
func (s *Store) Load(ctx context.Context) []string {
	raw, err := s.repo.Get(ctx, repository.KeySearchHistory)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("Failed to load search history", zap.Error(err))
		}
		return []string{}
	}

	var cities []string
	if err := json.Unmarshal([]byte(raw), &cities); err != nil {
		s.logger.Warn("Discarding unreadable search history", zap.Error(err))
		return []string{}
	}
	if len(cities) > s.limit {
		cities = cities[:s.limit]
	}
	return cities
}

// Record moves city to the front of the history and persists it
func (s *Store) Record(ctx context.Context, city string) ([]string, error) {
	updated := Prepend(s.Load(ctx), city, s.limit)

	raw, err := json.Marshal(updated)
	if err != nil {
		return nil, fmt.Errorf("failed to encode search history: %w", err)
	}
	if err := s.repo.Set(ctx, repository.KeySearchHistory, string(raw)); err != nil {
		return nil, fmt.Errorf("failed to save search history: %w", err)
	}
	return updated, nil
}

// Suggestions returns the persisted entries starting with text
func (s *Store) Suggestions(ctx context.Context, text string) []string {
	return FilterByPrefix(s.Load(ctx), text)
}

// LastCity returns the last successfully searched city, or "" if none
func (s *Store) LastCity(ctx context.Context) (string, error) {
	city, err := s.repo.Get(ctx, repository.KeySearchCity)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load last city: %w", err)
	}
	return city, nil
}

// SetLastCity persists the last successfully searched city
func (s *Store) SetLastCity(ctx context.Context, city string) error {
	if err := s.repo.Set(ctx, repository.KeySearchCity, city); err != nil {
		return fmt.Errorf("failed to save last city: %w", err)
	}
	return nil
}

// Prepend returns [city, previous without exact matches of city...] capped at limit.
// Matching is case-sensitive.
func Prepend(previous []string, city string, limit int) []string {
	out := make([]string, 0, limit)
	out = append(out, city)
	for _, c := range previous {
		if len(out) >= limit {
			break
		}
		if c != city {
			out = append(out, c)
		}
	}
	return out
}

// FilterByPrefix keeps the entries starting with text, ignoring case, in order
func FilterByPrefix(cities []string, text string) []string {
	prefix := strings.ToLower(text)
	out := make([]string, 0, len(cities))
	for _, c := range cities {
		if strings.HasPrefix(strings.ToLower(c), prefix) {
			out = append(out, c)
		}
	}
	return out
}
