package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenAddr     string
	BackendBaseURL string
	Env            string

	RequestTimeout  time.Duration
	CommitTimeout   time.Duration
	DebounceWindow  time.Duration
	MinLookupLength int
	SessionTTL      time.Duration
}

// Load reads the portal configuration from the environment. Only the backend
// base URL is required; everything else has a sensible default.
func Load() (*Config, error) {
	backend := os.Getenv("PORTAL_BACKEND_URL")
	if backend == "" {
		return nil, fmt.Errorf("PORTAL_BACKEND_URL environment variable is required")
	}

	cfg := &Config{
		ListenAddr:      getEnvOrDefault("PORTAL_LISTEN_ADDR", ":8090"),
		BackendBaseURL:  backend,
		Env:             getEnvOrDefault("PORTAL_ENV", "development"),
		RequestTimeout:  getEnvAsDuration("PORTAL_REQUEST_TIMEOUT", 30*time.Second),
		CommitTimeout:   getEnvAsDuration("PORTAL_COMMIT_TIMEOUT", 15*time.Second),
		DebounceWindow:  getEnvAsDuration("PORTAL_DEBOUNCE_WINDOW", 500*time.Millisecond),
		MinLookupLength: getEnvAsInt("PORTAL_MIN_LOOKUP_LENGTH", 10),
		SessionTTL:      getEnvAsDuration("PORTAL_SESSION_TTL", 30*time.Minute),
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnvOrDefault(key, strconv.Itoa(defaultValue))
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnvOrDefault(key, defaultValue.String())
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
