package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexivanou/weather-dashboard/internal/api"
	"github.com/alexivanou/weather-dashboard/internal/config"
	"github.com/alexivanou/weather-dashboard/internal/dashboard"
	"github.com/alexivanou/weather-dashboard/internal/database"
	"github.com/alexivanou/weather-dashboard/internal/history"
	"github.com/alexivanou/weather-dashboard/internal/notify"
	"github.com/alexivanou/weather-dashboard/internal/provider"
	"github.com/alexivanou/weather-dashboard/internal/repository"
	"github.com/alexivanou/weather-dashboard/internal/service"
	"github.com/alexivanou/weather-dashboard/internal/stats"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(context.Background(), cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}
	logger.Info("Connected to database", zap.String("type", string(cfg.DB.Type)))

	if err := database.Migrate(db, cfg.DB, "migrations"); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	ctx := context.Background()
	isEmpty, err := repository.IsDatabaseEmpty(ctx, db)
	if err != nil {
		logger.Warn("Failed to check if database is empty", zap.Error(err))
	} else if isEmpty {
		logger.Info("No stored preferences, starting with an empty search history")
	}

	if cfg.Provider.APIKey == "" {
		logger.Warn("OPENWEATHER_API_KEY is not set, weather lookups will fail")
	}

	repos := repository.NewRepositories(db, cfg.DB.Type)
	store := history.NewStore(repos.Preferences, logger)
	client := provider.NewClient(cfg.Provider, nil)
	validate := validator.New()

	var notifier service.Notifier
	if cfg.Notify.Endpoint != "" {
		notifier = notify.NewClient(cfg.Notify, logger)
		logger.Info("Alert notifications enabled", zap.String("endpoint", cfg.Notify.Endpoint))
	}

	orchestrator := service.NewOrchestrator(client, store, logger)
	shell := dashboard.NewShell(orchestrator, store, cfg.Search.BlurDelay, logger)
	defer shell.Close()

	services := api.Services{
		Trend:  service.NewTrendService(client, store, validate, logger),
		Map:    service.NewMapService(client, store, logger),
		Alerts: service.NewAlertService(repos.Preferences, notifier, validate, logger),
	}
	statsCollector := stats.NewCollector(db, cfg.DB, client)
	router := api.NewRouter(shell, services, statsCollector, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	if cfg.Level == "debug" {
		return zap.NewDevelopment()
	}

	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = level
	return zcfg.Build()
}
