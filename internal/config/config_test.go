package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "primefeed.cue")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "primefeed.db", cfg.DatabasePath)
	assert.Equal(t, "https://api.wolframalpha.com/v2/query", cfg.Lookup.Endpoint)
	assert.Empty(t, cfg.Lookup.AppID)
	assert.Equal(t, 10*time.Second, cfg.Lookup.Timeout)
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.cue"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverridesAndDefaultsMix(t *testing.T) {
	path := writeConfig(t, `
database: path: "/var/lib/primefeed/feed.db"
lookup: {
	app_id:          "ABC-123"
	timeout_seconds: 30
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/primefeed/feed.db", cfg.DatabasePath)
	assert.Equal(t, "ABC-123", cfg.Lookup.AppID)
	assert.Equal(t, 30*time.Second, cfg.Lookup.Timeout)
	assert.Equal(t, Default().Lookup.Endpoint, cfg.Lookup.Endpoint, "omitted fields keep defaults")
}

func TestLoad_RejectsUnknownField(t *testing.T) {
	path := writeConfig(t, `lookup: retries: 3`)

	_, err := Load(path)
	require.Error(t, err)
	var le *LoadError
	require.ErrorAs(t, err, &le)
}

func TestLoad_RejectsConstraintViolation(t *testing.T) {
	path := writeConfig(t, `lookup: timeout_seconds: 0`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_RejectsWrongType(t *testing.T) {
	path := writeConfig(t, `database: path: 42`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_SyntaxErrorCarriesPosition(t *testing.T) {
	path := writeConfig(t, "database: {\n")

	_, err := Load(path)
	require.Error(t, err)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Contains(t, le.Error(), "compile config")
}
