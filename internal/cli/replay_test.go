package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplay_EmptyJournal(t *testing.T) {
	out, err := executeCommand(t, "replay", "--db", tempDB(t))
	require.NoError(t, err)
	assert.Contains(t, out, "replay ok: 0 entries")
}

func TestReplay_RebuildsFavorites(t *testing.T) {
	db := tempDB(t)
	_, err := executeCommand(t, "dispatch", "--db", db,
		"counter.increment", "counter.increment", "primeModal.save",
		"counter.increment", "primeModal.save",
		"primeModal.remove")
	require.NoError(t, err)

	out, err := executeCommand(t, "replay", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "3 entries")
	assert.Contains(t, out, "favorites [2]")
}

func TestReplay_JSONOutput(t *testing.T) {
	db := tempDB(t)
	_, err := executeCommand(t, "dispatch", "--db", db,
		"counter.increment", "counter.increment", "primeModal.save")
	require.NoError(t, err)

	out, err := executeCommand(t, "--format", "json", "replay", "--db", db)
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, true, data["deterministic"])
	assert.Equal(t, float64(1), data["entries"])
	assert.Equal(t, float64(1), data["last_seq"])
}
