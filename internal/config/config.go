// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// server mode, credential locations, and business settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Credential Configuration
	BMCredentialsPath string // Business Messages service account key file
	DFCredentialsPath string // Dialogflow service account key file
	DFProjectID       string // Optional override; defaults to project_id from the DF key file

	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Upstream Configuration
	APITimeout        time.Duration // HTTP timeout for Dialogflow / Business Messages calls
	DialogflowBaseURL string        // Overridable for tests
	BMBaseURL         string        // Overridable for tests

	// Business Configuration
	LanguageCode   string // Dialogflow query language
	TimezoneOffset string // Fixed business UTC offset used by the appointment flow

	// Sentry Configuration (optional)
	SentryDSN         string
	SentryEnvironment string
	SentrySampleRate  float64
}

// Load reads configuration from environment variables
// It attempts to load .env file first, then reads from env vars
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		BMCredentialsPath: getEnv("BM_CREDENTIALS_PATH", "resources/bm-agent-service-account-credentials.json"),
		DFCredentialsPath: getEnv("DF_CREDENTIALS_PATH", "resources/df-agent-service-account-credentials.json"),
		DFProjectID:       getEnv("DF_PROJECT_ID", ""),

		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),

		APITimeout:        getDurationEnv("API_TIMEOUT", 15*time.Second),
		DialogflowBaseURL: getEnv("DIALOGFLOW_BASE_URL", "https://dialogflow.googleapis.com"),
		BMBaseURL:         getEnv("BM_BASE_URL", "https://businessmessages.googleapis.com"),

		LanguageCode:   getEnv("LANGUAGE_CODE", "en"),
		TimezoneOffset: getEnv("TIMEZONE_OFFSET", "-06:00"),

		SentryDSN:         getEnv("SENTRY_DSN", ""),
		SentryEnvironment: getEnv("SENTRY_ENVIRONMENT", "production"),
		SentrySampleRate:  getFloatEnv("SENTRY_SAMPLE_RATE", 1.0),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.BMCredentialsPath == "" {
		errs = append(errs, errors.New("BM_CREDENTIALS_PATH is required"))
	}
	if c.DFCredentialsPath == "" {
		errs = append(errs, errors.New("DF_CREDENTIALS_PATH is required"))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.APITimeout <= 0 {
		errs = append(errs, fmt.Errorf("API_TIMEOUT must be positive, got %v", c.APITimeout))
	}
	if _, _, err := ParseOffset(c.TimezoneOffset); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE_OFFSET: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ParseOffset parses a UTC offset string of the form "-06:00" or "+05:30"
// into hour and minute components. The sign applies to both components.
func ParseOffset(offset string) (hours, minutes int, err error) {
	if len(offset) != 6 || (offset[0] != '+' && offset[0] != '-') || offset[3] != ':' {
		return 0, 0, fmt.Errorf("invalid offset %q, want ±HH:MM", offset)
	}

	hours, err = strconv.Atoi(offset[:3])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid offset hours in %q", offset)
	}
	minutes, err = strconv.Atoi(offset[4:])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid offset minutes in %q", offset)
	}
	if offset[0] == '-' {
		minutes = -minutes
	}
	return hours, minutes, nil
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
