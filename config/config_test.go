// ABOUTME: Tests for config loading and saving
// ABOUTME: Covers file, env and override layering
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/outreach/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.json"), noEnv)
	require.NoError(t, err)

	assert.Equal(t, "America/Chicago", cfg.Timezone)
	assert.Equal(t, 10, cfg.DashboardLimit)
	assert.Equal(t, models.CriterionAnyOutreach, cfg.CheckinSuppression)
	assert.Equal(t, DefaultHTTPAddr, cfg.HTTPAddr)
	assert.NotEmpty(t, cfg.DBPath)
}

func TestLoadFromInvalidJSONUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0600))

	cfg, err := LoadFrom(path, noEnv)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.DashboardLimit)
}

func TestFileThenEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"timezone":"America/New_York","dashboard_limit":5,"owner":"amy"}`), 0600))

	cfg, err := LoadFrom(path, envMap(map[string]string{
		"OUTREACH_DASHBOARD_LIMIT":     "7",
		"OUTREACH_CHECKIN_SUPPRESSION": "conversation",
		"OUTREACH_OWNER":               "",
	}))
	require.NoError(t, err)

	assert.Equal(t, "America/New_York", cfg.Timezone)
	assert.Equal(t, 7, cfg.DashboardLimit)
	assert.Equal(t, models.CriterionConversation, cfg.CheckinSuppression)
	assert.Equal(t, "amy", cfg.Owner, "empty env values do not clobber the file")
}

func TestLoadFromRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	tests := map[string]map[string]string{
		"timezone":    {"OUTREACH_TIMEZONE": "Mars/Olympus_Mons"},
		"limit":       {"OUTREACH_DASHBOARD_LIMIT": "ten"},
		"zero limit":  {"OUTREACH_DASHBOARD_LIMIT": "0"},
		"suppression": {"OUTREACH_CHECKIN_SUPPRESSION": "booking"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(path, envMap(env))
			assert.Error(t, err)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg, err := LoadFrom(path, noEnv)
	require.NoError(t, err)

	cfg.Owner = "rosa"
	cfg.DashboardLimit = 12
	require.NoError(t, cfg.Save())

	again, err := LoadFrom(path, noEnv)
	require.NoError(t, err)
	assert.Equal(t, "rosa", again.Owner)
	assert.Equal(t, 12, again.DashboardLimit)
	assert.Equal(t, path, again.Path())
}

func TestStoredSaveLeavesOverridesOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"timezone":"America/New_York"}`), 0600))

	cfg, err := LoadFrom(path, envMap(map[string]string{
		"OUTREACH_DB_PATH":         "/tmp/scratch.db",
		"OUTREACH_DASHBOARD_LIMIT": "3",
	}))
	require.NoError(t, err)
	require.Equal(t, "/tmp/scratch.db", cfg.DBPath)
	cfg.Owner = "flag-owner"

	stored := cfg.Stored()
	assert.Empty(t, stored.DBPath)
	assert.Empty(t, stored.Owner)
	stored.LogLevel = "debug"
	require.NoError(t, stored.Save())

	again, err := LoadFrom(path, noEnv)
	require.NoError(t, err)
	assert.NotEqual(t, "/tmp/scratch.db", again.DBPath)
	assert.Equal(t, DefaultConfig().DBPath, again.DBPath)
	assert.Equal(t, 10, again.DashboardLimit)
	assert.Empty(t, again.Owner)
	assert.Equal(t, "America/New_York", again.Timezone)
	assert.Equal(t, "debug", again.LogLevel)
}

func TestLocation(t *testing.T) {
	cfg := DefaultConfig()
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Chicago", loc.String())
}
