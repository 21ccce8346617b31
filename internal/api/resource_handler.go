package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alexivanou/weather-dashboard/internal/dashboard"
	"github.com/alexivanou/weather-dashboard/internal/model"
	"github.com/alexivanou/weather-dashboard/internal/service"
	"go.uber.org/zap"
)

// ResourceHandler handles the history, map and alert views
type ResourceHandler struct {
	trend  service.TrendInterface
	maps   service.MapInterface
	alerts service.AlertInterface
	shell  *dashboard.Shell
	logger *zap.Logger
}

// NewResourceHandler creates a new resource handler
func NewResourceHandler(trend service.TrendInterface, maps service.MapInterface, alerts service.AlertInterface, shell *dashboard.Shell, logger *zap.Logger) *ResourceHandler {
	return &ResourceHandler{
		trend:  trend,
		maps:   maps,
		alerts: alerts,
		shell:  shell,
		logger: logger,
	}
}

// GetHistory handles GET /api/v1/history
func (h *ResourceHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	req := service.HistoryRange{
		Start: r.URL.Query().Get("start"),
		End:   r.URL.Query().Get("end"),
	}

	points, err := h.trend.History(r.Context(), req)
	if err != nil {
		h.writeError(w, "Error fetching historical data", err)
		return
	}

	writeJSON(w, h.logger, map[string]interface{}{
		"points": points,
		"count":  len(points),
	})
}

// GetMapCenter handles GET /api/v1/map/center
func (h *ResourceHandler) GetMapCenter(w http.ResponseWriter, r *http.Request) {
	center, err := h.maps.Center(r.Context())
	if err != nil {
		h.writeError(w, "Error locating map center", err)
		return
	}

	writeJSON(w, h.logger, center)
}

// GetAlerts handles GET /api/v1/alerts
func (h *ResourceHandler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.alerts.Get(r.Context())
	if err != nil {
		h.writeError(w, "Error loading alert preferences", err)
		return
	}

	writeJSON(w, h.logger, prefs)
}

// SaveAlerts handles PUT /api/v1/alerts
func (h *ResourceHandler) SaveAlerts(w http.ResponseWriter, r *http.Request) {
	var prefs model.AlertPreferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.alerts.Save(r.Context(), prefs)
	if err != nil {
		h.writeError(w, "Error saving alert preferences", err)
		return
	}

	writeJSON(w, h.logger, result)
}

// GetActiveAlerts handles GET /api/v1/alerts/active
func (h *ResourceHandler) GetActiveAlerts(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.alerts.Get(r.Context())
	if err != nil {
		h.writeError(w, "Error loading alert preferences", err)
		return
	}

	state := h.shell.Snapshot()
	alerts := service.Evaluate(prefs, state.Weather, state.AirQuality)

	writeJSON(w, h.logger, map[string]interface{}{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

func (h *ResourceHandler) writeError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRange), errors.Is(err, service.ErrInvalidPreferences):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrNoCity):
		http.Error(w, "no city searched yet", http.StatusConflict)
	case errors.Is(err, service.ErrCityNotFound):
		http.Error(w, "city not found", http.StatusNotFound)
	case errors.Is(err, service.ErrUpstream):
		h.logger.Warn(msg, zap.Error(err))
		http.Error(w, "weather provider unavailable", http.StatusBadGateway)
	default:
		h.logger.Error(msg, zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
