// Package config provides configuration loading and validation for the CLI.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultModelName      = "gpt-4o-mini"
	DefaultTemperature    = 0.2
	DefaultTimeoutSeconds = 15
	DefaultDataDir        = "data"
	DefaultLogDir         = "logs"
	DefaultReportDir      = "reports"
	DefaultMaxHistory     = 40
)

// Config holds all runtime settings for the support bot. Values come from
// environment variables (a .env file is loaded by main before this runs);
// missing values fall back to defaults.
type Config struct {
	// Model
	APIKey         string  // MODEL_API_KEY (required)
	APIBase        string  // MODEL_API_BASE (optional endpoint override)
	ModelName      string  // MODEL_NAME
	Temperature    float64 // MODEL_TEMPERATURE
	TimeoutSeconds int     // REQUEST_TIMEOUT_SECONDS

	// Paths
	DataDir   string // DATA_DIR: style guide, prompt catalog, orders, faq
	LogDir    string // LOG_DIR: session transcripts and application log
	ReportDir string // REPORT_DIR: evaluation reports

	// Behavior
	MaxHistoryMessages int // MAX_HISTORY_MESSAGES: render-time history bound
}

// Load reads configuration from the environment and applies defaults.
// It does not validate; call Validate before use.
func Load() *Config {
	return &Config{
		APIKey:             os.Getenv("MODEL_API_KEY"),
		APIBase:            os.Getenv("MODEL_API_BASE"),
		ModelName:          envOr("MODEL_NAME", DefaultModelName),
		Temperature:        envFloatOr("MODEL_TEMPERATURE", DefaultTemperature),
		TimeoutSeconds:     envIntOr("REQUEST_TIMEOUT_SECONDS", DefaultTimeoutSeconds),
		DataDir:            envOr("DATA_DIR", DefaultDataDir),
		LogDir:             envOr("LOG_DIR", DefaultLogDir),
		ReportDir:          envOr("REPORT_DIR", DefaultReportDir),
		MaxHistoryMessages: envIntOr("MAX_HISTORY_MESSAGES", DefaultMaxHistory),
	}
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("config error: MODEL_API_KEY is required")
	}
	if c.ModelName == "" {
		return fmt.Errorf("config error: MODEL_NAME must not be empty")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("config error: MODEL_TEMPERATURE must be in [0, 2], got %v", c.Temperature)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("config error: REQUEST_TIMEOUT_SECONDS must be positive, got %d", c.TimeoutSeconds)
	}
	if c.MaxHistoryMessages < 0 {
		return fmt.Errorf("config error: MAX_HISTORY_MESSAGES must be non-negative, got %d", c.MaxHistoryMessages)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envFloatOr(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
