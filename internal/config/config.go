package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DataFile        string
	ResetPassword   string
	StaticDir       string
	LogLevel        string
	ShutdownTimeout time.Duration
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DataFile:      getEnv("DATA_FILE", "leaderboard.json"),
		ResetPassword: os.Getenv("RESET_PASSWORD"),
		StaticDir:     getEnv("STATIC_DIR", "static"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	timeout, err := time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}
	cfg.ShutdownTimeout = timeout

	if cfg.ResetPassword == "" {
		return nil, errors.New("RESET_PASSWORD is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}
