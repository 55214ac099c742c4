package config

import (
	"os"
	"time"
)

// APIKey returns the platform API key from the environment variable named by
// endpoint.api_key_env. An unset variable yields an empty key; the services
// then send unauthenticated requests.
func (c *Config) APIKey() string {
	if c.Endpoint.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.Endpoint.APIKeyEnv)
}

// AnalyticsToken returns the analytics collector token from the environment
// variable named by analytics.token_env.
func (c *Config) AnalyticsToken() string {
	if c.Analytics.TokenEnv == "" {
		return ""
	}
	return os.Getenv(c.Analytics.TokenEnv)
}

// RecordsURL returns the records service base URL, falling back to the
// case-assist endpoint when none is configured.
func (c *Config) RecordsURL() string {
	if c.Endpoint.RecordsURL != "" {
		return c.Endpoint.RecordsURL
	}
	return c.Endpoint.BaseURL
}

// EditDelay returns flow.case_edit_delay_ms as a duration.
func (c *Config) EditDelay() time.Duration {
	return time.Duration(c.Flow.CaseEditDelayMs) * time.Millisecond
}

// Timeout returns endpoint.timeout_seconds as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Endpoint.TimeoutSeconds) * time.Second
}
