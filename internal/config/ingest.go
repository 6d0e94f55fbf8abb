// Package config holds ingestion pipeline configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	pkgconfig "news-dashboard/pkg/config"
)

// DefaultCategories is the fixed ordered category set the scheduled job
// iterates. The order matters: a failure on the LAST category triggers the
// task-level retry.
var DefaultCategories = []string{
	"business",
	"entertainment",
	"general",
	"health",
	"science",
	"sports",
	"technology",
}

// IngestConfig holds the ingestion pipeline configuration.
type IngestConfig struct {
	Categories []string
	Country    string
	PageSize   int
	CacheTTL   time.Duration
}

// ingestFile is the YAML shape of the configuration file. Durations are
// strings ("5m", "90s") parsed with time.ParseDuration.
type ingestFile struct {
	Categories []string `yaml:"categories"`
	Country    string   `yaml:"country"`
	PageSize   int      `yaml:"page_size"`
	CacheTTL   string   `yaml:"cache_ttl"`
}

// DefaultIngestConfig returns the default ingestion configuration.
func DefaultIngestConfig() IngestConfig {
	return IngestConfig{
		Categories: DefaultCategories,
		Country:    "us",
		PageSize:   100,
		CacheTTL:   5 * time.Minute,
	}
}

// LoadIngestConfig builds the ingestion configuration. When path is
// non-empty the YAML file is loaded first; environment variables then
// override individual fields:
//   - NEWS_CATEGORIES: comma-separated category list
//   - NEWS_COUNTRY: two-letter country code
//   - NEWS_PAGE_SIZE: upstream page size (1-100)
//   - CACHE_TTL: read cache TTL (duration string)
func LoadIngestConfig(path string) (IngestConfig, error) {
	cfg := DefaultIngestConfig()

	if path != "" {
		// #nosec G304 -- path comes from a CLI flag or deploy config, not user input
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		var file ingestFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return cfg, fmt.Errorf("failed to parse config: %w", err)
		}
		if len(file.Categories) > 0 {
			cfg.Categories = file.Categories
		}
		if file.Country != "" {
			cfg.Country = file.Country
		}
		if file.PageSize > 0 {
			cfg.PageSize = file.PageSize
		}
		if file.CacheTTL != "" {
			ttl, err := time.ParseDuration(file.CacheTTL)
			if err != nil {
				return cfg, fmt.Errorf("failed to parse cache_ttl: %w", err)
			}
			cfg.CacheTTL = ttl
		}
	}

	cfg.Categories = pkgconfig.GetEnvStringList("NEWS_CATEGORIES", cfg.Categories)
	cfg.Country = pkgconfig.GetEnvString("NEWS_COUNTRY", cfg.Country)
	cfg.PageSize = pkgconfig.GetEnvInt("NEWS_PAGE_SIZE", cfg.PageSize)
	cfg.CacheTTL = pkgconfig.GetEnvDuration("CACHE_TTL", cfg.CacheTTL)

	if err := validateIngestConfig(cfg); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateIngestConfig(cfg IngestConfig) error {
	if len(cfg.Categories) == 0 {
		return fmt.Errorf("at least one category is required")
	}
	if cfg.Country == "" {
		return fmt.Errorf("country is required")
	}
	if cfg.PageSize < 1 || cfg.PageSize > 100 {
		return fmt.Errorf("page_size must be between 1 and 100")
	}
	if cfg.CacheTTL <= 0 {
		return fmt.Errorf("cache_ttl must be positive")
	}
	return nil
}
