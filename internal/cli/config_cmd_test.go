package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves the test into a fresh temp directory so loadConfig's
// upward search never finds a stray magpie.toml from the repo.
func chdirTemp(t *testing.T) string {
	t.Helper()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})
	dir := t.TempDir()
	require.NoError(t, os.Chdir(dir))
	return dir
}

func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "magpie.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfigShow_DefaultsWhenNoFile(t *testing.T) {
	chdirTemp(t)
	resetRootCmd(t)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"config", "show"})

	code := Execute()
	require.Equal(t, 0, code)

	out := buf.String()
	assert.Contains(t, out, "none found")
	assert.Contains(t, out, "[endpoint]")
	assert.Contains(t, out, `"http://localhost:8086"`)
	assert.Contains(t, out, "case_edit_delay_ms")
}

func TestConfigShow_ReadsFile(t *testing.T) {
	dir := chdirTemp(t)
	writeConfigFile(t, dir, `
[project]
name = "helpdesk"
`)
	resetRootCmd(t)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"config", "show"})

	code := Execute()
	require.Equal(t, 0, code)

	out := buf.String()
	assert.Contains(t, out, `"helpdesk"`)
	assert.Contains(t, out, "magpie.toml")
}

func TestConfigShow_ExplicitConfigFlag(t *testing.T) {
	chdirTemp(t)
	other := t.TempDir()
	path := writeConfigFile(t, other, `
[project]
name = "elsewhere"
`)
	resetRootCmd(t)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"--config", path, "config", "show"})

	code := Execute()
	require.Equal(t, 0, code)
	assert.Contains(t, buf.String(), `"elsewhere"`)
}

func TestConfigValidate_CleanConfig(t *testing.T) {
	dir := chdirTemp(t)
	writeConfigFile(t, dir, `
[project]
name = "helpdesk"
state_dir = ""
`)
	resetRootCmd(t)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"config", "validate"})

	code := Execute()
	assert.Equal(t, 0, code)
	assert.Contains(t, buf.String(), "No issues found.")
}

func TestConfigValidate_ReportsErrors(t *testing.T) {
	dir := chdirTemp(t)
	writeConfigFile(t, dir, `
[project]
name = ""

[endpoint]
base_url = "not a url"
`)
	resetRootCmd(t)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"config", "validate"})

	code := Execute()
	assert.Equal(t, 1, code, "errors should produce a non-zero exit")

	out := buf.String()
	assert.Contains(t, out, "Errors:")
	assert.Contains(t, out, "project.name")
	assert.Contains(t, out, "endpoint.base_url")
}

func TestConfigValidate_MalformedFile(t *testing.T) {
	dir := chdirTemp(t)
	writeConfigFile(t, dir, "[project\nname = ")
	resetRootCmd(t)

	rootCmd.SetArgs([]string{"config", "validate"})

	// Capture stderr where Execute prints the error.
	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w
	t.Cleanup(func() {
		os.Stderr = oldStderr
	})

	code := Execute()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stderr = oldStderr

	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "loading config")
}

func TestConfig_NoSubcommandShowsHelp(t *testing.T) {
	chdirTemp(t)
	resetRootCmd(t)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"config"})

	code := Execute()
	assert.Equal(t, 0, code)
	assert.Contains(t, buf.String(), "validate")
}
