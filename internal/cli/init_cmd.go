package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/Magpie/internal/config"
)

// initFlagForce overwrites an existing magpie.toml.
var initFlagForce bool

// configTemplate is the scaffolded magpie.toml. It mirrors the defaults so a
// fresh project behaves identically with or without the file.
const configTemplate = `# Magpie configuration.

[project]
name = "%s"
# Directory where the in-progress session is kept between runs.
state_dir = ".magpie"

[endpoint]
# Case-assist service for field predictions and document suggestions.
base_url = "http://localhost:8086"
# Records service for case creation and suggestion ratings. Defaults to
# base_url when empty.
records_url = ""
# Environment variable holding the API key.
api_key_env = "MAGPIE_API_KEY"
timeout_seconds = 15

[analytics]
enabled = false
url = ""
token_env = "MAGPIE_ANALYTICS_TOKEN"

[flow]
# Pause after the last keystroke before a field edit is reported, in ms.
case_edit_delay_ms = 500
# Description word count considered a strong problem statement.
strong_description_length = 30

[suggestions]
# Maximum suggested documents to show.
max = 3
# Glob patterns of document URIs to hide.
exclude_patterns = []
`

// initCmd implements "magpie init". It scaffolds a magpie.toml in the current
// directory without requiring an existing one, making it safe to run in a
// fresh directory.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter magpie.toml",
	Long: `Write a starter magpie.toml to the current directory. The existing file
is preserved unless --force is supplied.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initFlagForce, "force", false, "Overwrite an existing magpie.toml")
	rootCmd.AddCommand(initCmd)
}

// runInit is the RunE handler for the init command.
func runInit(cmd *cobra.Command, args []string) error {
	destDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	path := filepath.Join(destDir, config.ConfigFileName)
	if _, statErr := os.Stat(path); statErr == nil && !initFlagForce {
		return fmt.Errorf("%s already exists in %s; use --force to overwrite", config.ConfigFileName, destDir)
	}

	content := fmt.Sprintf(configTemplate, filepath.Base(destDir))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", config.ConfigFileName, err)
	}

	stderr := os.Stderr
	fmt.Fprintf(stderr, "Wrote %s\n\n", path)
	fmt.Fprintln(stderr, "Next steps:")
	fmt.Fprintf(stderr, "  1. Edit %s to point at your case-assist service\n", config.ConfigFileName)
	fmt.Fprintln(stderr, "  2. Export the API key named by api_key_env")
	fmt.Fprintln(stderr, "  3. Run: magpie assist")

	return nil
}
