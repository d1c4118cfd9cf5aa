package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Config aggregates application-wide configuration values.
type Config struct {
	DatabaseURL     string
	JWTSecret       string
	Port            string
	TokenTTL        time.Duration
	RateLimitSearch RateLimitConfig

	AmadeusBaseURL      string
	AmadeusClientID     string
	AmadeusClientSecret string

	ExchangeBaseURL string
	TargetCurrency  string

	GoogleMapsAPIKey string
	TransitRadiusM   int

	ResultLimit       int
	SearchConcurrency int
	UpstreamTimeout   time.Duration
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   getEnv("JWT_SECRET", "dev-secret"),
		Port:        getEnv("PORT", "8080"),
		TokenTTL:    parseDuration(getEnv("JWT_TTL", "24h"), 24*time.Hour),

		AmadeusBaseURL:      getEnv("AMADEUS_BASE_URL", "https://test.api.amadeus.com"),
		AmadeusClientID:     os.Getenv("AMADEUS_CLIENT_ID"),
		AmadeusClientSecret: os.Getenv("AMADEUS_CLIENT_SECRET"),

		ExchangeBaseURL: getEnv("EXCHANGE_BASE_URL", "https://open.er-api.com/v6"),
		TargetCurrency:  strings.ToUpper(getEnv("TARGET_CURRENCY", "EUR")),

		GoogleMapsAPIKey: os.Getenv("GOOGLE_MAPS_API_KEY"),
		TransitRadiusM:   parseInt(getEnv("TRANSIT_RADIUS_M", "1000"), 1000),

		ResultLimit:       parseInt(getEnv("RESULT_LIMIT", "10"), 10),
		SearchConcurrency: parseInt(getEnv("SEARCH_CONCURRENCY", "4"), 4),
		UpstreamTimeout:   parseDuration(getEnv("UPSTREAM_TIMEOUT", "15s"), 15*time.Second),
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_SEARCH", "5/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_SEARCH value: %w", err)
	}
	cfg.RateLimitSearch = rl

	if cfg.ResultLimit <= 0 {
		return nil, fmt.Errorf("RESULT_LIMIT must be positive, got %d", cfg.ResultLimit)
	}
	if cfg.SearchConcurrency <= 0 {
		return nil, fmt.Errorf("SEARCH_CONCURRENCY must be positive, got %d", cfg.SearchConcurrency)
	}

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(input string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return fallback
	}
	return n
}
