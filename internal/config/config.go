// Package config provides configuration for the converter. Values come from
// environment variables, with an optional .env file loaded first.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	// MaxLineLen is the cleaner's oversized-line threshold.
	MaxLineLen int
	// Workers bounds the number of statements processed in parallel.
	Workers int
	// Output is the default ledger export path.
	Output string
	// ListenAddr is the API server bind address.
	ListenAddr string
	Debug      bool
}

// Load loads configuration from environment variables. A .env file in the
// current directory is applied first when present; a custom path may be
// given instead.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	maxLineLen, err := parseIntEnv("CEP_MAX_LINE_LEN", 200)
	if err != nil {
		return nil, fmt.Errorf("invalid CEP_MAX_LINE_LEN: %w", err)
	}
	workers, err := parseIntEnv("CEP_WORKERS", runtime.NumCPU())
	if err != nil {
		return nil, fmt.Errorf("invalid CEP_WORKERS: %w", err)
	}
	if workers < 1 {
		workers = 1
	}

	return &Config{
		MaxLineLen: maxLineLen,
		Workers:    workers,
		Output:     getEnvOrDefault("CEP_OUTPUT", "compte.csv"),
		ListenAddr: getEnvOrDefault("CEP_LISTEN_ADDR", ":8080"),
		Debug:      os.Getenv("DEBUG") == "true",
	}, nil
}

func parseIntEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
