package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, 38, cfg.Timetable.LabTimeRow)
	assert.Equal(t, 4, cfg.Timetable.HeaderRow)
	assert.Equal(t, 100, cfg.Timetable.MaxCombinations)
	assert.Len(t, cfg.Timetable.LabRooms, 16)
	assert.Contains(t, cfg.Timetable.LabRooms, "C-GPU Lab")
	assert.True(t, cfg.Exports.Enabled)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TIMETABLE_MAX_COMBINATIONS", "50")
	t.Setenv("TIMETABLE_LAB_ROOMS", "Lab A , Lab B")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 50, cfg.Timetable.MaxCombinations)
	assert.Equal(t, []string{"Lab A", "Lab B"}, cfg.Timetable.LabRooms)
}

func TestLoadRejectsNonPositiveCleanupInterval(t *testing.T) {
	for _, raw := range []string{"0s", "-5m"} {
		t.Setenv("UPLOADS_CLEANUP_INTERVAL", raw)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, time.Hour, cfg.Uploads.CleanupInterval, raw)
	}
}
