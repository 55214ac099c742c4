package config

// Config is the top-level configuration structure mapping to magpie.toml.
type Config struct {
	Project     ProjectConfig     `toml:"project"`
	Endpoint    EndpointConfig    `toml:"endpoint"`
	Analytics   AnalyticsConfig   `toml:"analytics"`
	Flow        FlowConfig        `toml:"flow"`
	Suggestions SuggestionsConfig `toml:"suggestions"`
}

// ProjectConfig maps to the [project] section in magpie.toml.
type ProjectConfig struct {
	Name     string `toml:"name"`
	StateDir string `toml:"state_dir"`
}

// EndpointConfig maps to the [endpoint] section in magpie.toml. It covers
// both the case-assist service and the records service; RecordsURL falls
// back to BaseURL when unset.
type EndpointConfig struct {
	BaseURL        string `toml:"base_url"`
	RecordsURL     string `toml:"records_url"`
	APIKeyEnv      string `toml:"api_key_env"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// AnalyticsConfig maps to the [analytics] section in magpie.toml.
type AnalyticsConfig struct {
	URL      string `toml:"url"`
	TokenEnv string `toml:"token_env"`
	Enabled  bool   `toml:"enabled"`
}

// FlowConfig maps to the [flow] section in magpie.toml. Steps overrides the
// built-in step sequence; an empty list keeps the default.
type FlowConfig struct {
	CaseEditDelayMs         int      `toml:"case_edit_delay_ms"`
	StrongDescriptionLength int      `toml:"strong_description_length"`
	Steps                   []string `toml:"steps"`
}

// SuggestionsConfig maps to the [suggestions] section in magpie.toml.
type SuggestionsConfig struct {
	Max             int      `toml:"max"`
	ExcludePatterns []string `toml:"exclude_patterns"`
}
