package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexivanou/weather-dashboard/internal/model"
	"github.com/alexivanou/weather-dashboard/internal/provider"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTrendService_History(t *testing.T) {
	timeline := &provider.TimelineResponse{Days: []provider.TimelineDay{
		{Datetime: "2024-01-01", Hours: []provider.TimelineHour{
			{Datetime: "00:00:00", Temp: 1.5, Humidity: 70},
			{Datetime: "01:00:00", Temp: 1.1, Humidity: 72},
		}},
		{Datetime: "2024-01-02", Hours: []provider.TimelineHour{
			{Datetime: "00:00:00", Temp: -0.4, Humidity: 90},
		}},
	}}

	tests := []struct {
		name        string
		req         HistoryRange
		setup       func(w *MockWeatherProvider, h *MockHistory)
		expected    []model.HistoricalPoint
		expectedErr error
	}{
		{
			name: "flattens days into hours",
			req:  HistoryRange{Start: "2024-01-01", End: "2024-01-02"},
			setup: func(w *MockWeatherProvider, h *MockHistory) {
				h.On("LastCity", mock.Anything).Return("Paris", nil)
				w.On("Timeline", mock.Anything, "Paris", "2024-01-01", "2024-01-02").Return(timeline, nil)
			},
			expected: []model.HistoricalPoint{
				{DateTime: "2024-01-01 00:00:00", Temp: 1.5, Humidity: 70},
				{DateTime: "2024-01-01 01:00:00", Temp: 1.1, Humidity: 72},
				{DateTime: "2024-01-02 00:00:00", Temp: -0.4, Humidity: 90},
			},
		},
		{
			name: "single day with no data",
			req:  HistoryRange{Start: "2024-01-01", End: "2024-01-01"},
			setup: func(w *MockWeatherProvider, h *MockHistory) {
				h.On("LastCity", mock.Anything).Return("Paris", nil)
				w.On("Timeline", mock.Anything, "Paris", "2024-01-01", "2024-01-01").Return(&provider.TimelineResponse{}, nil)
			},
			expected: []model.HistoricalPoint{},
		},
		{
			name:        "missing end date",
			req:         HistoryRange{Start: "2024-01-01"},
			setup:       func(w *MockWeatherProvider, h *MockHistory) {},
			expectedErr: ErrInvalidRange,
		},
		{
			name:        "malformed date",
			req:         HistoryRange{Start: "01/01/2024", End: "2024-01-02"},
			setup:       func(w *MockWeatherProvider, h *MockHistory) {},
			expectedErr: ErrInvalidRange,
		},
		{
			name:        "reversed range",
			req:         HistoryRange{Start: "2024-02-01", End: "2024-01-01"},
			setup:       func(w *MockWeatherProvider, h *MockHistory) {},
			expectedErr: ErrInvalidRange,
		},
		{
			name: "no city searched",
			req:  HistoryRange{Start: "2024-01-01", End: "2024-01-02"},
			setup: func(w *MockWeatherProvider, h *MockHistory) {
				h.On("LastCity", mock.Anything).Return("", nil)
			},
			expectedErr: ErrNoCity,
		},
		{
			name: "provider failure",
			req:  HistoryRange{Start: "2024-01-01", End: "2024-01-02"},
			setup: func(w *MockWeatherProvider, h *MockHistory) {
				h.On("LastCity", mock.Anything).Return("Paris", nil)
				w.On("Timeline", mock.Anything, "Paris", "2024-01-01", "2024-01-02").Return(nil, errors.New("boom"))
			},
			expectedErr: ErrUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weather := new(MockWeatherProvider)
			hist := new(MockHistory)
			tt.setup(weather, hist)

			svc := NewTrendService(weather, hist, validator.New(), zap.NewNop())
			points, err := svc.History(context.Background(), tt.req)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, points)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, points)
			weather.AssertExpectations(t)
			hist.AssertExpectations(t)
		})
	}
}
