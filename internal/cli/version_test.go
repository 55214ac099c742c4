package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdelazizMoustafa10m/Magpie/internal/buildinfo"
)

// captureStdout redirects os.Stdout for the duration of fn and returns what
// was written. The version command prints with fmt.Println, so cobra's
// SetOut is not enough here.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	t.Cleanup(func() {
		os.Stdout = oldStdout
	})

	fn()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout
	return buf.String()
}

func TestVersionCmd_HumanReadable(t *testing.T) {
	resetRootCmd(t)
	versionJSON = false

	rootCmd.SetArgs([]string{"version"})

	out := captureStdout(t, func() {
		assert.Equal(t, 0, Execute())
	})

	assert.Contains(t, out, "magpie v")
	assert.Contains(t, out, "commit:")
	assert.Contains(t, out, "built:")
}

func TestVersionCmd_JSON(t *testing.T) {
	resetRootCmd(t)
	versionJSON = false

	rootCmd.SetArgs([]string{"version", "--json"})

	out := captureStdout(t, func() {
		assert.Equal(t, 0, Execute())
	})

	var info buildinfo.Info
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, buildinfo.GetInfo(), info)
}

func TestVersionCmd_RejectsArgs(t *testing.T) {
	resetRootCmd(t)

	rootCmd.SetArgs([]string{"version", "extra"})

	code := Execute()
	assert.Equal(t, 1, code, "version takes no positional arguments")
}
