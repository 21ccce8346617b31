package api

import (
	"github.com/alexivanou/weather-dashboard/internal/dashboard"
	"github.com/alexivanou/weather-dashboard/internal/service"
	"github.com/alexivanou/weather-dashboard/internal/stats"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Services groups the view services behind the dashboard
type Services struct {
	Trend  service.TrendInterface
	Map    service.MapInterface
	Alerts service.AlertInterface
}

// NewRouter creates a new HTTP router
func NewRouter(shell *dashboard.Shell, services Services, statsCollector *stats.Collector, logger *zap.Logger) *mux.Router {
	handler := NewHandler(shell, logger)
	resources := NewResourceHandler(services.Trend, services.Map, services.Alerts, shell, logger)
	statsHandler := NewStatsHandler(statsCollector, logger)

	router := mux.NewRouter()
	router.Use(requestLogger(logger))

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1
	v1 := router.PathPrefix("/api/v1").Subrouter()

	v1.HandleFunc("/dashboard", handler.GetDashboard).Methods("GET")
	v1.HandleFunc("/dashboard/query", handler.QueryChange).Methods("PUT")
	v1.HandleFunc("/dashboard/focus", handler.Focus).Methods("POST")
	v1.HandleFunc("/dashboard/blur", handler.Blur).Methods("POST")
	v1.HandleFunc("/dashboard/suggestions/pick", handler.PickSuggestion).Methods("POST")
	v1.HandleFunc("/dashboard/search", handler.Search).Methods("POST")
	v1.HandleFunc("/dashboard/location", handler.UseCurrentLocation).Methods("POST")
	v1.HandleFunc("/dashboard/view", handler.SetView).Methods("PUT")

	v1.HandleFunc("/history", resources.GetHistory).Methods("GET")
	v1.HandleFunc("/map/center", resources.GetMapCenter).Methods("GET")
	v1.HandleFunc("/alerts", resources.GetAlerts).Methods("GET")
	v1.HandleFunc("/alerts", resources.SaveAlerts).Methods("PUT")
	v1.HandleFunc("/alerts/active", resources.GetActiveAlerts).Methods("GET")

	if statsCollector != nil {
		v1.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")
	}

	return router
}
