// Package config provides small helpers for reading configuration from
// environment variables. Parse failures fall back to the default and log a
// warning; they never abort startup.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// GetEnvString returns the environment variable value, or defaultValue when
// the variable is unset or empty.
//
// Example:
//
//	baseURL := GetEnvString("NEWSAPI_BASE_URL", "https://newsapi.org/v2")
func GetEnvString(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvInt returns the environment variable parsed as an integer. Unset,
// empty or unparseable values yield defaultValue; bad values log a warning.
//
// Example:
//
//	pageSize := GetEnvInt("NEWS_PAGE_SIZE", 100)
func GetEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		slog.Warn("invalid integer value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", valueStr),
			slog.Int("default", defaultValue),
			slog.String("error", err.Error()))
		return defaultValue
	}

	return value
}

// GetEnvDuration returns the environment variable parsed with
// time.ParseDuration (e.g. "1m", "30s", "1h30m"). Unset, empty or
// unparseable values yield defaultValue; bad values log a warning.
//
// Example:
//
//	ttl := GetEnvDuration("CACHE_TTL", 5*time.Minute)
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		slog.Warn("invalid duration value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", valueStr),
			slog.String("default", defaultValue.String()),
			slog.String("error", err.Error()))
		return defaultValue
	}

	return value
}

// GetEnvStringList returns a comma-separated environment variable as a
// slice. Entries are trimmed and empty entries dropped; an unset variable
// or one with no usable entries yields defaultValue.
//
// Example:
//
//	categories := GetEnvStringList("NEWS_CATEGORIES", []string{"general"})
//	// NEWS_CATEGORIES="business, technology, science"
//	// Result: ["business", "technology", "science"]
func GetEnvStringList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return defaultValue
	}

	return result
}
