// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment constants
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	// Server
	Port int
	Env  string

	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // json, text

	// Reference table storage
	DBDriver      string // sqlite, postgres
	DBDSN         string
	RunMigrations bool
	SeedFile      string // optional YAML file imported at startup

	// Redis (provider cache). Empty host means in-process cache.
	RedisHost     string
	RedisPort     string
	RedisPassword string

	// Lunar calendar provider. Empty base URL disables the provider.
	LunarAPIBaseURL string
	LunarAPIKey     string
	LunarAPITimeout time.Duration
	LunarAPIRPS     int // requests per second, 0 = unlimited

	CalendarCacheTTL time.Duration
}

// Load reads configuration from environment variables.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	// .env がなくてもエラーにしない（本番では環境変数を直接設定する）
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnvInt("PORT", 8080),
		Env:              getEnv("ENV", EnvDevelopment),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
		DBDriver:         getEnv("DB_DRIVER", DriverSQLite),
		DBDSN:            getEnv("DB_DSN", "file:saju.db?cache=shared"),
		RunMigrations:    getEnvBool("RUN_MIGRATIONS", true),
		SeedFile:         getEnv("SEED_FILE", ""),
		RedisHost:        getEnv("REDIS_HOST", ""),
		RedisPort:        getEnv("REDIS_PORT", "6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		LunarAPIBaseURL:  getEnv("LUNAR_API_BASE_URL", ""),
		LunarAPIKey:      getEnv("LUNAR_API_KEY", ""),
		LunarAPITimeout:  getEnvDuration("LUNAR_API_TIMEOUT", 5*time.Second),
		LunarAPIRPS:      getEnvInt("LUNAR_API_RPS", 10),
		CalendarCacheTTL: getEnvDuration("CALENDAR_CACHE_TTL", 24*time.Hour),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that all configuration values are present and valid.
// Every problem is reported, joined into one error.
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

	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be one of: sqlite, postgres; got %q", c.DBDriver))
	}
	if c.DBDSN == "" {
		errs = append(errs, errors.New("DB_DSN is required"))
	}

	if c.LunarAPIBaseURL != "" && c.LunarAPIKey == "" {
		errs = append(errs, errors.New("LUNAR_API_KEY is required when LUNAR_API_BASE_URL is set"))
	}
	if c.LunarAPITimeout <= 0 {
		errs = append(errs, fmt.Errorf("LUNAR_API_TIMEOUT must be positive, got %s", c.LunarAPITimeout))
	}
	if c.LunarAPIRPS < 0 {
		errs = append(errs, fmt.Errorf("LUNAR_API_RPS must not be negative, got %d", c.LunarAPIRPS))
	}
	if c.CalendarCacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("CALENDAR_CACHE_TTL must be positive, got %s", c.CalendarCacheTTL))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// RedisEnabled reports whether a Redis host is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// RedisAddr returns host:port of the Redis server.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("5s", "24h").
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
