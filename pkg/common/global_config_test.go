package common

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalConfig(t *testing.T) {
	t.Run("first run defaults", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())

		config, err := LoadGlobalConfig()
		require.NoError(t, err)
		assert.True(t, config.FirstRun)
		assert.Nil(t, config.TelemetryEnabled)
		assert.False(t, TelemetryEnabled())
	})

	t.Run("save and load", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", dir)

		enabled := true
		require.NoError(t, SaveGlobalConfig(&GlobalConfig{TelemetryEnabled: &enabled, UserUUID: "u-1"}))
		assert.FileExists(t, filepath.Join(dir, AppName, GlobalConfigFile))

		loaded, err := LoadGlobalConfig()
		require.NoError(t, err)
		assert.False(t, loaded.FirstRun)
		assert.Equal(t, "u-1", loaded.UserUUID)
		require.NotNil(t, loaded.TelemetryEnabled)
		assert.True(t, *loaded.TelemetryEnabled)
	})

	t.Run("set telemetry preference ends first run", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())

		require.NoError(t, SetGlobalTelemetryPreference(true))

		first, err := IsFirstRun()
		require.NoError(t, err)
		assert.False(t, first)
		assert.True(t, TelemetryEnabled())

		require.NoError(t, SetGlobalTelemetryPreference(false))
		assert.False(t, TelemetryEnabled())
	})

	t.Run("relative XDG_CONFIG_HOME falls back to home", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("XDG_CONFIG_HOME", "relative/path")

		dir, err := GetGlobalConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", AppName), dir)
	})
}
