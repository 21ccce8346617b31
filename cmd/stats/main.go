package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/alexivanou/weather-dashboard/internal/config"
	"github.com/alexivanou/weather-dashboard/internal/database"
	"github.com/alexivanou/weather-dashboard/internal/history"
	"github.com/alexivanou/weather-dashboard/internal/repository"
	"github.com/alexivanou/weather-dashboard/internal/stats"
	"go.uber.org/zap"
)

// report is what the command prints: process and database statistics plus
// the persisted dashboard state
type report struct {
	Stats         *stats.Stats `json:"stats"`
	LastCity      string       `json:"last_city"`
	SearchHistory []string     `json:"search_history"`
	AlertPrefs    string       `json:"alert_prefs,omitempty"`
}

func main() {
	format := flag.String("format", getEnv("OUTPUT_FORMAT", "json"), "Output format: json or text")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	logger.Info("Collecting statistics...", zap.String("db_type", string(cfg.DB.Type)))

	statistics, err := stats.NewCollector(db, cfg.DB, nil).Collect(ctx)
	if err != nil {
		logger.Fatal("Failed to collect statistics", zap.Error(err))
	}

	repos := repository.NewRepositories(db, cfg.DB.Type)
	store := history.NewStore(repos.Preferences, logger)

	rep := report{
		Stats:         statistics,
		SearchHistory: store.Load(ctx),
	}
	if rep.LastCity, err = store.LastCity(ctx); err != nil {
		logger.Warn("Failed to read last city", zap.Error(err))
	}
	if prefs, err := repos.Preferences.Get(ctx, repository.KeyAlertPrefs); err == nil {
		rep.AlertPrefs = prefs
	}

	switch *format {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(rep); err != nil {
			logger.Fatal("Failed to encode statistics", zap.Error(err))
		}
	case "text", "human":
		printHumanReadable(rep)
	default:
		logger.Fatal("Unknown output format", zap.String("format", *format))
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func printHumanReadable(r report) {
	s := r.Stats

	fmt.Println("=== Weather Dashboard ===")
	fmt.Printf("Timestamp: %s\n", s.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Println()

	fmt.Println("--- Search State ---")
	lastCity := r.LastCity
	if lastCity == "" {
		lastCity = "(none)"
	}
	fmt.Printf("Last city:       %s\n", lastCity)
	if len(r.SearchHistory) == 0 {
		fmt.Println("History:         (empty)")
	} else {
		fmt.Printf("History:         %s\n", strings.Join(r.SearchHistory, " > "))
	}
	if r.AlertPrefs != "" {
		fmt.Printf("Alert prefs:     %s\n", r.AlertPrefs)
	}
	fmt.Println()

	fmt.Println("--- Database ---")
	fmt.Printf("Type:            %s\n", s.Database.Type)
	fmt.Printf("Size:            %s\n", formatBytes(uint64(s.Database.SizeBytes)))
	for _, ts := range s.Database.TableStats {
		fmt.Printf("  %-25s: %10d rows\n", ts.Name, ts.RowCount)
	}
	fmt.Println()

	fmt.Println("--- Process ---")
	fmt.Printf("Allocated:       %s\n", formatBytes(s.Memory.Alloc))
	fmt.Printf("Goroutines:      %d\n", s.Runtime.NumGoroutines)
}

func formatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
