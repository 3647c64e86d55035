// Package config handles application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata" // TIME_ZONE must resolve on hosts without zoneinfo

	"github.com/joho/godotenv"

	"github.com/zapponejosh/almanac-api/internal/calendar"
)

// Config holds all application configuration.
// Fields are populated from environment variables.
type Config struct {
	// Server settings
	Port int    // HTTP port to listen on
	Env  string // development, staging, production

	// Database
	DatabasePath string // SQLite file holding observances

	// Authentication
	APIKey string // guards write endpoints

	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // json, text

	// Calendar
	EraMinYear     int    // first Gregorian year the engine answers for
	EraMaxYear     int    // last Gregorian year the engine answers for
	TimeZone       string // IANA zone that decides what "today" is
	RangeLimitDays int    // longest span a range query may cover

	location *time.Location
}

// Environment constants
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// DefaultTimeZone is where the almanac's day boundaries are drawn.
const DefaultTimeZone = "Asia/Taipei"

// Load reads configuration from environment variables.
// In development, it first loads from .env file if present.
func Load() (*Config, error) {
	// No-op when there is no .env; production sets env vars directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnvInt("PORT", 8080),
		Env:            getEnv("ENV", EnvDevelopment),
		DatabasePath:   getEnv("DATABASE_PATH", "./data/almanac.db"),
		APIKey:         getEnv("API_KEY", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		EraMinYear:     getEnvInt("ERA_MIN_YEAR", calendar.SupportedMinYear),
		EraMaxYear:     getEnvInt("ERA_MAX_YEAR", calendar.SupportedMaxYear),
		TimeZone:       getEnv("TIME_ZONE", DefaultTimeZone),
		RangeLimitDays: getEnvInt("RANGE_LIMIT_DAYS", 90),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration is present and valid.
// It also resolves TimeZone, so Location is usable afterwards.
func (c *Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}

	switch c.Env {
	case EnvDevelopment, EnvStaging, EnvProduction:
	default:
		errs = append(errs, fmt.Errorf("ENV must be one of: development, staging, production; got %q", c.Env))
	}

	if c.DatabasePath == "" {
		errs = append(errs, errors.New("DATABASE_PATH is required"))
	}

	if c.Env == EnvProduction && c.APIKey == "" {
		errs = append(errs, errors.New("API_KEY is required in production"))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", c.LogLevel))
	}

	switch c.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be one of: json, text; got %q", c.LogFormat))
	}

	if err := c.Era().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("ERA_MIN_YEAR/ERA_MAX_YEAR: %w", err))
	}

	if c.TimeZone == "" {
		errs = append(errs, errors.New("TIME_ZONE is required"))
	} else if loc, err := time.LoadLocation(c.TimeZone); err != nil {
		errs = append(errs, fmt.Errorf("TIME_ZONE %q: %w", c.TimeZone, err))
	} else {
		c.location = loc
	}

	if c.RangeLimitDays < 1 || c.RangeLimitDays > 366 {
		errs = append(errs, fmt.Errorf("RANGE_LIMIT_DAYS must be between 1 and 366, got %d", c.RangeLimitDays))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Era returns the configured calendar era.
func (c *Config) Era() calendar.Era {
	return calendar.Era{MinYear: c.EraMinYear, MaxYear: c.EraMaxYear}
}

// Location returns the resolved time zone, falling back to UTC before
// Validate has run.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// getEnv reads an environment variable with a default fallback.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
