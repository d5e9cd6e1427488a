package cli

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primefeed/primefeed/internal/journal"
)

func TestTrace_EmptyJournal(t *testing.T) {
	out, err := executeCommand(t, "trace", "--db", tempDB(t))
	require.NoError(t, err)
	assert.Contains(t, out, "journal is empty")
}

func TestTrace_ListsActivities(t *testing.T) {
	db := tempDB(t)
	_, err := executeCommand(t, "dispatch", "--db", db,
		"counter.increment", "counter.increment", "primeModal.save",
		"counter.increment", "primeModal.save")
	require.NoError(t, err)

	out, err := executeCommand(t, "trace", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "added_favorite_prime")
	assert.Contains(t, out, "2 entries")
}

func TestTrace_TokenFilter(t *testing.T) {
	db := tempDB(t)

	// Two separate invocations, two different tokens.
	_, err := executeCommand(t, "dispatch", "--db", db,
		"counter.increment", "counter.increment", "primeModal.save")
	require.NoError(t, err)
	_, err = executeCommand(t, "dispatch", "--db", db,
		"counter.increment", "primeModal.save")
	require.NoError(t, err)

	jnl, err := journal.Open(db)
	require.NoError(t, err)
	activities, err := jnl.ReadActivities(context.Background())
	require.NoError(t, err)
	jnl.Close()
	require.Len(t, activities, 2)
	require.NotEqual(t, activities[0].Token, activities[1].Token)

	out, err := executeCommand(t, "--format", "json", "trace", "--db", db, "--token", activities[0].Token)
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), data["total"])
}

func TestTrace_JSONShape(t *testing.T) {
	db := tempDB(t)
	_, err := executeCommand(t, "dispatch", "--db", db,
		"counter.increment", "counter.increment", "primeModal.save")
	require.NoError(t, err)

	out, err := executeCommand(t, "--format", "json", "trace", "--db", db)
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data := resp.Data.(map[string]interface{})
	entries := data["entries"].([]interface{})
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]interface{})
	assert.Equal(t, "added_favorite_prime", entry["kind"])
	assert.Equal(t, float64(2), entry["prime"])
	assert.Equal(t, float64(1), entry["seq"])
}
