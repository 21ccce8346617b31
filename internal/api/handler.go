package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/alexivanou/weather-dashboard/internal/dashboard"
	"github.com/alexivanou/weather-dashboard/internal/model"
	"go.uber.org/zap"
)

// Handler handles the dashboard shell requests
type Handler struct {
	shell  *dashboard.Shell
	logger *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(shell *dashboard.Shell, logger *zap.Logger) *Handler {
	return &Handler{shell: shell, logger: logger}
}

// DashboardResponse is the shell state with the derived display fields
type DashboardResponse struct {
	dashboard.State
	AQILabel   string `json:"aqiLabel,omitempty"`
	WeatherTip string `json:"weatherTip,omitempty"`
}

func newDashboardResponse(state dashboard.State) DashboardResponse {
	resp := DashboardResponse{State: state}
	if state.AirQuality != nil {
		resp.AQILabel = state.AirQuality.Label()
	}
	if state.Weather != nil {
		resp.WeatherTip = model.WeatherTip(state.Weather.Main)
	}
	return resp
}

type queryRequest struct {
	Text string `json:"text"`
}

type pickRequest struct {
	City string `json:"city"`
}

type searchRequest struct {
	Query *string `json:"query"`
}

type viewRequest struct {
	View dashboard.View `json:"view"`
}

// GetDashboard handles GET /api/v1/dashboard
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	h.writeState(w, h.shell.Snapshot())
}

// QueryChange handles PUT /api/v1/dashboard/query
func (h *Handler) QueryChange(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	h.writeState(w, h.shell.QueryChange(r.Context(), req.Text))
}

// Focus handles POST /api/v1/dashboard/focus
func (h *Handler) Focus(w http.ResponseWriter, r *http.Request) {
	h.writeState(w, h.shell.Focus(r.Context()))
}

// Blur handles POST /api/v1/dashboard/blur
func (h *Handler) Blur(w http.ResponseWriter, r *http.Request) {
	h.writeState(w, h.shell.Blur())
}

// PickSuggestion handles POST /api/v1/dashboard/suggestions/pick
func (h *Handler) PickSuggestion(w http.ResponseWriter, r *http.Request) {
	var req pickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.City == "" {
		http.Error(w, "field 'city' is required", http.StatusBadRequest)
		return
	}

	h.writeState(w, h.shell.PickSuggestion(req.City))
}

// Search handles POST /api/v1/dashboard/search. An optional body
// {"query": "..."} replaces the query text before submitting.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Query != nil {
		h.shell.PickSuggestion(*req.Query)
	}

	h.writeState(w, h.shell.Submit(r.Context()))
}

// UseCurrentLocation handles POST /api/v1/dashboard/location
func (h *Handler) UseCurrentLocation(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	locator, err := req.locator()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.writeState(w, h.shell.UseCurrentLocation(r.Context(), locator))
}

// SetView handles PUT /api/v1/dashboard/view
func (h *Handler) SetView(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	state, err := h.shell.SetView(req.View)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.writeState(w, state)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handler) writeState(w http.ResponseWriter, state dashboard.State) {
	writeJSON(w, h.logger, newDashboardResponse(state))
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Error encoding response", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
}
