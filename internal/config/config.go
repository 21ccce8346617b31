package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DB       DBConfig
	Server   ServerConfig
	Provider ProviderConfig
	Search   SearchConfig
	Notify   NotifyConfig
	Log      LogConfig
}

// DBType represents database type
type DBType string

const (
	DBTypePostgreSQL DBType = "postgres"
	DBTypeSQLite     DBType = "sqlite"
	DBTypeMemory     DBType = "memory"
)

// DBConfig holds database configuration
type DBConfig struct {
	Type     DBType
	Path     string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns the database connection string
func (c DBConfig) DSN() string {
	switch c.Type {
	case DBTypeMemory:
		// SQLite in-memory database
		if c.Name != "" && c.Name != "weather" {
			return fmt.Sprintf("file:%s?mode=memory&cache=shared", c.Name)
		}
		return "file::memory:?cache=shared"
	case DBTypeSQLite:
		return fmt.Sprintf("file:%s?cache=shared&_busy_timeout=5000", c.Path)
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// IsSQLite returns true for both the file and the in-memory SQLite backends
func (c DBConfig) IsSQLite() bool {
	return c.Type == DBTypeSQLite || c.Type == DBTypeMemory
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
}

// ProviderConfig holds the external weather API settings
type ProviderConfig struct {
	APIKey         string
	BaseURL        string
	HistoryAPIKey  string
	HistoryBaseURL string
	// RateLimit is requests per second shared by all provider calls.
	RateLimit float64
	RateBurst int
	// Timeout of zero leaves the transport defaults in place.
	Timeout time.Duration
}

// SearchConfig holds search box behaviour settings
type SearchConfig struct {
	BlurDelay time.Duration
}

// NotifyConfig holds the optional alert notification endpoint
type NotifyConfig struct {
	Endpoint string
	Timeout  time.Duration
}

// LogConfig holds logger settings
type LogConfig struct {
	Level string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbType := DBType(getEnv("DB_TYPE", "sqlite"))
	if dbType != DBTypePostgreSQL && dbType != DBTypeMemory && dbType != DBTypeSQLite {
		dbType = DBTypeSQLite
	}

	rateLimit, err := getEnvAsFloat("PROVIDER_RATE_LIMIT", 1)
	if err != nil {
		return nil, err
	}
	timeout, err := getEnvAsDuration("PROVIDER_HTTP_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	blurDelay, err := getEnvAsDuration("SEARCH_BLUR_DELAY", 200*time.Millisecond)
	if err != nil {
		return nil, err
	}
	notifyTimeout, err := getEnvAsDuration("NOTIFY_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	config := &Config{
		DB: DBConfig{
			Type:     dbType,
			Path:     getEnv("DB_PATH", "weather-dashboard.db"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "weather"),
			Password: getEnv("DB_PASSWORD", "weather_password"),
			Name:     getEnv("DB_NAME", "weather"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Server: ServerConfig{
			Port: getEnv("APP_PORT", "8080"),
		},
		Provider: ProviderConfig{
			APIKey:         os.Getenv("OPENWEATHER_API_KEY"),
			BaseURL:        getEnv("OPENWEATHER_BASE_URL", "https://api.openweathermap.org"),
			HistoryAPIKey:  os.Getenv("HISTORY_API_KEY"),
			HistoryBaseURL: getEnv("HISTORY_BASE_URL", "https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services/timeline"),
			RateLimit:      rateLimit,
			RateBurst:      getEnvAsInt("PROVIDER_RATE_BURST", 5),
			Timeout:        timeout,
		},
		Search: SearchConfig{
			BlurDelay: blurDelay,
		},
		Notify: NotifyConfig{
			Endpoint: os.Getenv("NOTIFY_ENDPOINT"),
			Timeout:  notifyTimeout,
		},
		Log: LogConfig{
			Level: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, value)
	}
	return f, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
