package newsapi

import (
	"time"

	"news-dashboard/pkg/config"
)

// ConfigFromEnv reads the upstream client configuration from environment
// variables. The returned Config may lack an API key; NewClient reports
// that as ErrAPIKeyMissing.
func ConfigFromEnv() Config {
	return Config{
		APIKey:            config.GetEnvString("NEWSAPI_KEY", ""),
		BaseURL:           config.GetEnvString("NEWSAPI_BASE_URL", "https://newsapi.org/v2"),
		Timeout:           config.GetEnvDuration("NEWSAPI_TIMEOUT", 30*time.Second),
		RequestsPerSecond: float64(config.GetEnvInt("NEWSAPI_RPS", 0)),
	}
}
