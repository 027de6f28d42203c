package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	SecretKey  string // Required in prod: process-wide token signing secret
	BcryptCost int    // Optional: password hashing work factor (default: 12)

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./courier.db)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		SecretKey:           os.Getenv("COURIER_SECRET_KEY"),
		BcryptCost:          getEnvIntOrDefault("COURIER_BCRYPT_COST", 12),
		DatabaseFile:        getEnvOrDefault("COURIER_DATABASE_FILE", "courier.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if cfg.SecretKey == "" && cfg.Env == "dev" {
		// Dev convenience only; New() refuses to start without a secret
		// outside dev.
		cfg.SecretKey = "courier-dev-secret"
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are treated as seconds for convenience.
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}

	return defaultValue
}
