package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
)

// ValidationSeverity indicates whether a validation issue is an error or warning.
type ValidationSeverity string

const (
	// SeverityError indicates a fatal validation issue; the configuration is unusable.
	SeverityError ValidationSeverity = "error"
	// SeverityWarning indicates an informational validation issue; the configuration works
	// but may have problems.
	SeverityWarning ValidationSeverity = "warning"
)

// ValidationIssue represents a single validation finding.
type ValidationIssue struct {
	Severity ValidationSeverity
	Field    string // dotted path, e.g., "endpoint.base_url"
	Message  string
}

// ValidationResult holds all validation findings.
type ValidationResult struct {
	Issues []ValidationIssue
}

// HasErrors returns true if any issue has error severity.
func (vr *ValidationResult) HasErrors() bool {
	for _, issue := range vr.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// HasWarnings returns true if any issue has warning severity.
func (vr *ValidationResult) HasWarnings() bool {
	for _, issue := range vr.Issues {
		if issue.Severity == SeverityWarning {
			return true
		}
	}
	return false
}

// Errors returns only error-severity issues.
func (vr *ValidationResult) Errors() []ValidationIssue {
	var errs []ValidationIssue
	for _, issue := range vr.Issues {
		if issue.Severity == SeverityError {
			errs = append(errs, issue)
		}
	}
	return errs
}

// Warnings returns only warning-severity issues.
func (vr *ValidationResult) Warnings() []ValidationIssue {
	var warns []ValidationIssue
	for _, issue := range vr.Issues {
		if issue.Severity == SeverityWarning {
			warns = append(warns, issue)
		}
	}
	return warns
}

// Validate checks the configuration for correctness and completeness.
// It performs structural validation, semantic validation, and unknown key detection.
//
// Parameters:
//   - cfg: the configuration to validate
//   - meta: TOML metadata from BurntSushi/toml (may be nil if no file was loaded)
//
// Returns validation results. Check HasErrors() to determine if the config is usable.
func Validate(cfg *Config, meta *toml.MetaData) *ValidationResult {
	vr := &ValidationResult{}

	if cfg == nil {
		addError(vr, "", "configuration is nil")
		return vr
	}

	validateProject(vr, &cfg.Project)
	validateEndpoint(vr, &cfg.Endpoint)
	validateAnalytics(vr, &cfg.Analytics)
	validateFlow(vr, &cfg.Flow)
	validateSuggestions(vr, &cfg.Suggestions)
	validateUnknownKeys(vr, meta)

	return vr
}

// validateProject checks the [project] section for errors and warnings.
func validateProject(vr *ValidationResult, p *ProjectConfig) {
	// Error: project.name must not be empty.
	if p.Name == "" {
		addError(vr, "project.name", "must not be empty")
	}

	// Warning: state_dir does not exist.
	if p.StateDir != "" {
		if _, err := os.Stat(p.StateDir); err != nil {
			addWarning(vr, "project.state_dir",
				fmt.Sprintf("directory %q does not exist", p.StateDir))
		}
	}
}

// validateEndpoint checks the [endpoint] section.
func validateEndpoint(vr *ValidationResult, e *EndpointConfig) {
	// Error: base_url must be an absolute http(s) URL.
	if e.BaseURL == "" {
		addError(vr, "endpoint.base_url", "must not be empty")
	} else {
		validateURL(vr, "endpoint.base_url", e.BaseURL)
	}

	if e.RecordsURL != "" {
		validateURL(vr, "endpoint.records_url", e.RecordsURL)
	}

	// Error: timeout must not be negative.
	if e.TimeoutSeconds < 0 {
		addError(vr, "endpoint.timeout_seconds", "must not be negative")
	}
}

// validateAnalytics checks the [analytics] section. An unset collector URL is
// only a problem when reporting is enabled.
func validateAnalytics(vr *ValidationResult, a *AnalyticsConfig) {
	if a.Enabled && a.URL == "" {
		addError(vr, "analytics.url", "must be set when analytics is enabled")
	}
	if a.URL != "" {
		validateURL(vr, "analytics.url", a.URL)
	}
}

// validateFlow checks the [flow] section.
func validateFlow(vr *ValidationResult, f *FlowConfig) {
	if f.CaseEditDelayMs < 0 {
		addError(vr, "flow.case_edit_delay_ms", "must not be negative")
	}
	if f.StrongDescriptionLength < 0 {
		addError(vr, "flow.strong_description_length", "must not be negative")
	}

	// Error: step entries must not be empty or duplicated.
	seen := make(map[string]bool, len(f.Steps))
	for i, step := range f.Steps {
		if step == "" {
			addError(vr, fmt.Sprintf("flow.steps[%d]", i), "must not be an empty string")
			continue
		}
		if seen[step] {
			addError(vr, fmt.Sprintf("flow.steps[%d]", i),
				fmt.Sprintf("duplicate step %q", step))
		}
		seen[step] = true
	}
}

// validateSuggestions checks the [suggestions] section.
func validateSuggestions(vr *ValidationResult, s *SuggestionsConfig) {
	if s.Max < 0 {
		addError(vr, "suggestions.max", "must not be negative")
	}

	// Error: exclude patterns must be valid glob patterns.
	for i, pattern := range s.ExcludePatterns {
		if !doublestar.ValidatePattern(pattern) {
			addError(vr, fmt.Sprintf("suggestions.exclude_patterns[%d]", i),
				fmt.Sprintf("invalid glob pattern %q", pattern))
		}
	}
}

// validateURL reports an error when raw is not an absolute http(s) URL.
func validateURL(vr *ValidationResult, field, raw string) {
	u, err := url.Parse(raw)
	if err != nil {
		addError(vr, field, fmt.Sprintf("invalid URL %q: %v", raw, err))
		return
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		addError(vr, field, fmt.Sprintf("URL %q must use http or https", raw))
	}
}

// validateUnknownKeys checks for TOML keys that did not map to any config struct field.
func validateUnknownKeys(vr *ValidationResult, meta *toml.MetaData) {
	if meta == nil {
		return
	}

	for _, key := range meta.Undecoded() {
		path := strings.Join(key, ".")
		addWarning(vr, path, "unknown configuration key")
	}
}

// addError appends an error-severity issue to the validation result.
func addError(vr *ValidationResult, field, message string) {
	vr.Issues = append(vr.Issues, ValidationIssue{
		Severity: SeverityError,
		Field:    field,
		Message:  message,
	})
}

// addWarning appends a warning-severity issue to the validation result.
func addWarning(vr *ValidationResult, field, message string) {
	vr.Issues = append(vr.Issues, ValidationIssue{
		Severity: SeverityWarning,
		Field:    field,
		Message:  message,
	})
}
