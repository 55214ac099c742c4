package config

// NewDefaults returns a Config populated with all default values. A default
// config validates as-is; analytics reporting stays off until a collector
// URL is configured.
func NewDefaults() *Config {
	return &Config{
		Project: ProjectConfig{
			Name:     "magpie",
			StateDir: ".magpie",
		},
		Endpoint: EndpointConfig{
			BaseURL:        "http://localhost:8086",
			APIKeyEnv:      "MAGPIE_API_KEY",
			TimeoutSeconds: 15,
		},
		Analytics: AnalyticsConfig{
			TokenEnv: "MAGPIE_ANALYTICS_TOKEN",
			Enabled:  false,
		},
		Flow: FlowConfig{
			CaseEditDelayMs:         500,
			StrongDescriptionLength: 30,
		},
		Suggestions: SuggestionsConfig{
			Max: 3,
		},
	}
}
