package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/Magpie/internal/config"
)

// configCmd is the parent "config" namespace command. It has no action of its
// own -- it groups show and validate subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management commands",
	Long:  "Inspect and validate Magpie configuration.",
	// RunE shows help when invoked with no subcommand.
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// configShowCmd implements "magpie config show".
// It prints the effective configuration after defaults and file overlays.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  "Display the effective configuration after applying magpie.toml over the defaults.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, path, err := loadConfig()
		if err != nil {
			return err
		}
		printConfig(cmd, cfg, path)
		return nil
	},
}

// configValidateCmd implements "magpie config validate".
// It validates the loaded configuration and reports all errors and warnings.
var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and report issues",
	Long:  "Check the configuration for errors and warnings.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, meta, _, err := loadConfig()
		if err != nil {
			return err
		}
		result := config.Validate(cfg, meta)
		printValidationResult(cmd, result)
		if result.HasErrors() {
			return fmt.Errorf("configuration has %d error(s)", len(result.Errors()))
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the effective configuration. It returns the config, the
// TOML metadata (nil when no file was found), and the config file path.
//
// When flagConfig is set, that path is used directly. Otherwise,
// config.FindConfigFile searches upward from the current directory; when no
// file exists the defaults are returned as-is.
func loadConfig() (*config.Config, *toml.MetaData, string, error) {
	cfgPath := flagConfig
	if cfgPath == "" {
		found, err := config.FindConfigFile(".")
		if err != nil {
			return nil, nil, "", fmt.Errorf("finding config file: %w", err)
		}
		cfgPath = found
	}

	if cfgPath == "" {
		return config.NewDefaults(), nil, "", nil
	}

	cfg, meta, err := config.LoadFromFile(cfgPath)
	if err != nil {
		return nil, nil, "", fmt.Errorf("loading config: %w", err)
	}
	return cfg, &meta, cfgPath, nil
}

// ---- Lipgloss styles --------------------------------------------------------

var (
	styleHeader    = lipgloss.NewStyle().Bold(true)
	styleSeparator = lipgloss.NewStyle()
	styleSection   = lipgloss.NewStyle().Bold(true)
	styleErrorLbl  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)  // red
	styleWarnLbl   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true) // yellow
	styleSuccess   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))            // green
)

// ---- printConfig ------------------------------------------------------------

const fieldWidth = 26 // column width for field names

// printConfig writes the formatted effective configuration to cmd's output
// writer (stdout by default).
func printConfig(cmd *cobra.Command, cfg *config.Config, path string) {
	out := cmd.OutOrStdout()

	header := styleHeader.Render("Effective Configuration")
	sep := styleSeparator.Render(strings.Repeat("=", len("Effective Configuration")))
	fmt.Fprintln(out, header)
	fmt.Fprintln(out, sep)
	fmt.Fprintln(out)

	if path != "" {
		fmt.Fprintf(out, "Config file: %s\n", path)
	} else {
		fmt.Fprintln(out, "Config file: none found (defaults)")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, styleSection.Render("[project]"))
	printField(out, "name", fmtStr(cfg.Project.Name))
	printField(out, "state_dir", fmtStr(cfg.Project.StateDir))
	fmt.Fprintln(out)

	fmt.Fprintln(out, styleSection.Render("[endpoint]"))
	printField(out, "base_url", fmtStr(cfg.Endpoint.BaseURL))
	printField(out, "records_url", fmtStr(cfg.Endpoint.RecordsURL))
	printField(out, "api_key_env", fmtStr(cfg.Endpoint.APIKeyEnv))
	printField(out, "timeout_seconds", fmt.Sprintf("%d", cfg.Endpoint.TimeoutSeconds))
	fmt.Fprintln(out)

	fmt.Fprintln(out, styleSection.Render("[analytics]"))
	printField(out, "enabled", fmt.Sprintf("%t", cfg.Analytics.Enabled))
	printField(out, "url", fmtStr(cfg.Analytics.URL))
	printField(out, "token_env", fmtStr(cfg.Analytics.TokenEnv))
	fmt.Fprintln(out)

	fmt.Fprintln(out, styleSection.Render("[flow]"))
	printField(out, "case_edit_delay_ms", fmt.Sprintf("%d", cfg.Flow.CaseEditDelayMs))
	printField(out, "strong_description_length", fmt.Sprintf("%d", cfg.Flow.StrongDescriptionLength))
	printField(out, "steps", fmtSlice(cfg.Flow.Steps))
	fmt.Fprintln(out)

	fmt.Fprintln(out, styleSection.Render("[suggestions]"))
	printField(out, "max", fmt.Sprintf("%d", cfg.Suggestions.Max))
	printField(out, "exclude_patterns", fmtSlice(cfg.Suggestions.ExcludePatterns))
}

// printField writes a single key = value line.
func printField(out io.Writer, name, value string) {
	fmt.Fprintf(out, "  %-*s = %s\n", fieldWidth, name, value)
}

// fmtStr formats a string value for display (quoted).
func fmtStr(s string) string {
	return fmt.Sprintf("%q", s)
}

// fmtSlice formats a string slice for display.
func fmtSlice(ss []string) string {
	if len(ss) == 0 {
		return "[]"
	}
	quoted := make([]string, len(ss))
	for i, s := range ss {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// ---- printValidationResult --------------------------------------------------

// printValidationResult writes the formatted validation report to cmd's
// output writer.
func printValidationResult(cmd *cobra.Command, result *config.ValidationResult) {
	out := cmd.OutOrStdout()

	header := styleHeader.Render("Configuration Validation")
	sep := styleSeparator.Render(strings.Repeat("=", len("Configuration Validation")))
	fmt.Fprintln(out, header)
	fmt.Fprintln(out, sep)
	fmt.Fprintln(out)

	errs := result.Errors()
	warns := result.Warnings()

	if len(errs) == 0 && len(warns) == 0 {
		fmt.Fprintln(out, styleSuccess.Render("No issues found."))
		return
	}

	if len(errs) > 0 {
		fmt.Fprintln(out, styleErrorLbl.Render("Errors:"))
		for _, issue := range errs {
			fmt.Fprintf(out, "  [%s] %s\n", issue.Field, issue.Message)
		}
		fmt.Fprintln(out)
	}

	if len(warns) > 0 {
		fmt.Fprintln(out, styleWarnLbl.Render("Warnings:"))
		for _, issue := range warns {
			fmt.Fprintf(out, "  [%s] %s\n", issue.Field, issue.Message)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "%d error(s), %d warning(s)\n", len(errs), len(warns))
}
