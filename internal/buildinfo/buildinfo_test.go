package buildinfo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetInfo_Defaults(t *testing.T) {
	t.Parallel()

	info := GetInfo()

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, Commit, info.Commit)
	assert.Equal(t, Date, info.Date)
}

func TestInfo_String(t *testing.T) {
	t.Parallel()

	info := Info{Version: "1.2.3", Commit: "abc1234", Date: "2026-08-30T10:00:00Z"}

	s := info.String()
	assert.Contains(t, s, "magpie v1.2.3")
	assert.Contains(t, s, "commit: abc1234")
	assert.Contains(t, s, "built: 2026-08-30T10:00:00Z")
}

func TestInfo_JSON(t *testing.T) {
	t.Parallel()

	info := Info{Version: "1.2.3", Commit: "abc1234", Date: "2026-08-30T10:00:00Z"}

	data, err := json.Marshal(info)
	require.NoError(t, err)

	raw := string(data)
	assert.Contains(t, raw, `"version":"1.2.3"`)
	assert.Contains(t, raw, `"commit":"abc1234"`)
	assert.Contains(t, raw, `"date":"2026-08-30T10:00:00Z"`)
}
