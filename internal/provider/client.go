package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/alexivanou/weather-dashboard/internal/config"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

var (
	// ErrNotOK is matched by every non-2xx provider response
	ErrNotOK = errors.New("provider returned non-OK status")
	// ErrCircuitOpen is returned while the breaker rejects calls
	ErrCircuitOpen = errors.New("circuit breaker open")
	errServerError = errors.New("server error")
)

// StatusError carries the status of a non-OK response
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.Code, e.Body)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotOK
}

// Client talks to the OpenWeatherMap and Visual Crossing HTTP APIs.
// It performs no retries and no interpretation of the payloads.
type Client struct {
	apiKey         string
	baseURL        string
	historyAPIKey  string
	historyBaseURL string
	httpClient     *http.Client
	limiter        *rate.Limiter
	circuit        *gobreaker.CircuitBreaker
}

// NewClient creates a provider client from configuration.
// A nil httpClient is replaced by one using cfg.Timeout (zero means none).
func NewClient(cfg config.ProviderConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 1,
		Interval:    1 * time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		apiKey:         cfg.APIKey,
		baseURL:        cfg.BaseURL,
		historyAPIKey:  cfg.HistoryAPIKey,
		historyBaseURL: cfg.HistoryBaseURL,
		httpClient:     httpClient,
		limiter:        rate.NewLimiter(limit, burst),
		circuit:        cb,
	}
}

// getJSON issues one GET and decodes a 2xx body into out.
// Only transport errors and 5xx count as breaker failures; 4xx such as
// "city not found" are ordinary answers.
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait canceled: %w", err)
	}

	u := endpoint
	if len(params) > 0 {
		u = endpoint + "?" + params.Encode()
	}

	var statusErr *StatusError
	result, err := c.circuit.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to execute request: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}

		if resp.StatusCode >= 500 {
			return nil, fmt.Errorf("%w: %w", errServerError, &StatusError{Code: resp.StatusCode, Body: string(body)})
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			statusErr = &StatusError{Code: resp.StatusCode, Body: string(body)}
			return nil, nil
		}
		return body, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}
		return err
	}
	if statusErr != nil {
		return statusErr
	}

	body, ok := result.([]byte)
	if !ok {
		return fmt.Errorf("unexpected result type from circuit breaker")
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func (c *Client) values() url.Values {
	values := url.Values{}
	values.Set("appid", c.apiKey)
	return values
}

func formatCoord(v float64) string {
	return fmt.Sprintf("%f", v)
}

// Health is a point-in-time view of the circuit breaker
type Health struct {
	Circuit             string `json:"circuit"`
	Requests            uint32 `json:"requests"`
	TotalFailures       uint32 `json:"total_failures"`
	ConsecutiveFailures uint32 `json:"consecutive_failures"`
}

// Health reports the breaker state and its counts for the current interval
func (c *Client) Health() Health {
	counts := c.circuit.Counts()
	return Health{
		Circuit:             c.circuit.State().String(),
		Requests:            counts.Requests,
		TotalFailures:       counts.TotalFailures,
		ConsecutiveFailures: counts.ConsecutiveFailures,
	}
}
