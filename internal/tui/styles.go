// Package tui renders the richer terminal pieces of the wizard: the step
// progress trail, the description strength meter, and the interactive
// suggestions browser. The huh-driven form screens live in the wizard
// package; this package owns everything drawn with lipgloss and bubbletea.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ColorPrimary is the main accent color used for titles and the active step.
var ColorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7B78FF"}

// ColorSuccess marks completed steps and helpful votes (green).
var ColorSuccess = lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#4ADE80"}

// ColorWarning marks the strength meter while a description is thin (amber).
var ColorWarning = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// ColorError marks a step in error state and failures (red).
var ColorError = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}

// ColorMuted is a subdued foreground color for upcoming steps and hints.
var ColorMuted = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

// ColorSubtle provides very low-contrast separators.
var ColorSubtle = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"}

// ColorBorder is the standard panel border color.
var ColorBorder = lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#374151"}

// Theme holds all lipgloss styles for the Magpie terminal components. Every
// field is a pre-built lipgloss.Style value; widths are applied at render
// time.
type Theme struct {
	// Progress trail
	StepDone     lipgloss.Style
	StepCurrent  lipgloss.Style
	StepError    lipgloss.Style
	StepUpcoming lipgloss.Style
	StepArrow    lipgloss.Style

	// Strength meter
	MeterFilled  lipgloss.Style
	MeterEmpty   lipgloss.Style
	MeterMessage lipgloss.Style

	// Suggestions browser
	BrowserContainer lipgloss.Style
	BrowserTitle     lipgloss.Style
	ItemSelected     lipgloss.Style
	ItemNormal       lipgloss.Style
	ItemScore        lipgloss.Style
	VotePositive     lipgloss.Style
	VoteNegative     lipgloss.Style

	// General
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
	Error    lipgloss.Style
}

// DefaultTheme returns the default Magpie theme with adaptive colors.
func DefaultTheme() Theme {
	return Theme{
		StepDone: lipgloss.NewStyle().
			Foreground(ColorSuccess),

		StepCurrent: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),

		StepError: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError),

		StepUpcoming: lipgloss.NewStyle().
			Foreground(ColorMuted),

		StepArrow: lipgloss.NewStyle().
			Foreground(ColorSubtle),

		MeterFilled: lipgloss.NewStyle().
			Foreground(ColorSuccess),

		MeterEmpty: lipgloss.NewStyle().
			Foreground(ColorSubtle),

		MeterMessage: lipgloss.NewStyle().
			Foreground(ColorMuted),

		BrowserContainer: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1),

		BrowserTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1),

		ItemSelected: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),

		ItemNormal: lipgloss.NewStyle().
			Foreground(ColorMuted),

		ItemScore: lipgloss.NewStyle().
			Foreground(ColorSuccess),

		VotePositive: lipgloss.NewStyle().
			Foreground(ColorSuccess),

		VoteNegative: lipgloss.NewStyle().
			Foreground(ColorError),

		HelpKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),

		HelpDesc: lipgloss.NewStyle().
			Foreground(ColorMuted),

		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError),
	}
}

// Meter renders a text-based meter of the given total width. percent is
// clamped to [0, 100]; width <= 0 returns an empty string. Uses U+2588
// (FULL BLOCK) for filled cells and U+2591 (LIGHT SHADE) for empty cells.
func (t Theme) Meter(percent, width int) string {
	if width <= 0 {
		return ""
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filledCount := percent * width / 100
	emptyCount := width - filledCount

	var sb strings.Builder
	if filledCount > 0 {
		sb.WriteString(t.MeterFilled.Render(strings.Repeat("█", filledCount)))
	}
	if emptyCount > 0 {
		sb.WriteString(t.MeterEmpty.Render(strings.Repeat("░", emptyCount)))
	}
	return sb.String()
}
