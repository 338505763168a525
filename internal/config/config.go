package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the dashboard needs to run.
type Config struct {
	// Addr is the listen address.
	Addr string
	// BackendURL is the base URL of the shop's REST API, without a
	// trailing slash.
	BackendURL string
	// BackendTimeout bounds every backend call.
	BackendTimeout time.Duration
	// DBPath is the local SQLite state database.
	DBPath string
}

// Load reads configuration from the environment, loading a .env file first
// if one exists.
func Load() *Config {
	godotenv.Load()

	return &Config{
		Addr:           getEnv("DASHBOARD_ADDR", ":8080"),
		BackendURL:     strings.TrimSuffix(getEnv("BACKEND_URL", "http://localhost:3000"), "/"),
		BackendTimeout: getEnvDuration("BACKEND_TIMEOUT", 30*time.Second),
		DBPath:         getEnv("DASHBOARD_DB", "dashboard.sqlite3"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
