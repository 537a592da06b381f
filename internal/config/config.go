// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // embeds the zone database so TIMEZONE resolves in minimal images

	"github.com/joho/godotenv"
)

// Counter backends accepted by MAP_COUNTER_BACKEND.
const (
	CounterMemory   = "memory"
	CounterRedis    = "redis"
	CounterPostgres = "postgres"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:3000"].
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// Location is the time zone exam dates, clock times and the daily map
	// quota are evaluated in. Set TIMEZONE to an IANA name; defaults to Asia/Manila.
	Location *time.Location

	// AdmissionsURL is the upstream endpoint that tracks accepted applications.
	AdmissionsURL string

	// RejectedURL is the upstream endpoint for rejected applications.
	// Empty disables rejected lookups.
	RejectedURL string

	// SheetCSVURL is the CSV export URL of the schedule spreadsheet. Required.
	SheetCSVURL string

	// ScheduleCacheTTL bounds how long a fetched schedule is served. Defaults to 5m.
	ScheduleCacheTTL time.Duration

	// UpstreamTimeout is the per-request timeout for outbound calls. Defaults to 10s.
	UpstreamTimeout time.Duration

	// UpstreamMaxRetries is how many times a failed schedule fetch is retried. Defaults to 2.
	UpstreamMaxRetries int

	// MapsAPIKey is the Google Maps Embed API key. Empty disables map URLs.
	MapsAPIKey string

	// MapDailyLimit is the number of map URLs served per local day. Defaults to 500.
	MapDailyLimit int

	// CounterBackend selects where the daily map counter lives:
	// memory (default), redis, or postgres.
	CounterBackend string

	// RedisURL is the redis:// URL used when CounterBackend is redis.
	RedisURL string

	// DatabaseURL is the Postgres connection string. Required when
	// CounterBackend is postgres.
	DatabaseURL string

	// MaxBodyBytes caps request body size. Defaults to 1 MiB.
	MaxBodyBytes int64
}

// Load reads configuration from environment variables and returns a Config.
// A .env file in the working directory, when present, fills in variables
// that are not already set. Returns an error listing any required variables
// that are not set and any values that fail to parse.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		AdmissionsURL:  getEnv("ADMISSIONS_API_URL", "https://eas.bisu.edu.ph/api/client/trackapplication"),
		RejectedURL:    os.Getenv("REJECTED_API_URL"),
		SheetCSVURL:    os.Getenv("SHEET_CSV_URL"),
		MapsAPIKey:     os.Getenv("MAPS_API_KEY"),
		CounterBackend: strings.ToLower(getEnv("MAP_COUNTER_BACKEND", CounterMemory)),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379/0"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
	}

	var (
		missing []string
		invalid []string
	)

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "Asia/Manila"))
	if err != nil {
		invalid = append(invalid, "TIMEZONE")
	}
	cfg.Location = loc

	if cfg.ScheduleCacheTTL, err = getDuration("SCHEDULE_CACHE_TTL", 5*time.Minute); err != nil {
		invalid = append(invalid, "SCHEDULE_CACHE_TTL")
	}
	if cfg.UpstreamTimeout, err = getDuration("UPSTREAM_TIMEOUT", 10*time.Second); err != nil {
		invalid = append(invalid, "UPSTREAM_TIMEOUT")
	}
	if cfg.UpstreamMaxRetries, err = getInt("UPSTREAM_MAX_RETRIES", 2); err != nil || cfg.UpstreamMaxRetries < 0 {
		invalid = append(invalid, "UPSTREAM_MAX_RETRIES")
	}
	if cfg.MapDailyLimit, err = getInt("MAP_DAILY_LIMIT", 500); err != nil || cfg.MapDailyLimit < 1 {
		invalid = append(invalid, "MAP_DAILY_LIMIT")
	}
	maxBody, err := getInt("MAX_BODY_BYTES", 1<<20)
	if err != nil || maxBody < 1 {
		invalid = append(invalid, "MAX_BODY_BYTES")
	}
	cfg.MaxBodyBytes = int64(maxBody)

	if cfg.SheetCSVURL == "" {
		missing = append(missing, "SHEET_CSV_URL")
	}

	switch cfg.CounterBackend {
	case CounterMemory, CounterRedis:
	case CounterPostgres:
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	default:
		invalid = append(invalid, "MAP_COUNTER_BACKEND")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return time.ParseDuration(v)
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
