package buildconfig

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Layr-Labs/vyperkit/pkg/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, path string, cfg *BuildConfiguration) {
	t.Helper()
	data, err := Marshal(cfg, FormatYAML)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func TestNewWatcher_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	cfg := Default()
	cfg.Networks["development"] = NetworkProfile{Host: "127.0.0.1", Port: 0, NetworkID: "*"}
	writeYAML(t, path, cfg)

	_, err := NewWatcher(path, logger.NewNoopLogger())
	assert.Error(t, err)
}

func TestWatcher_ReloadKeepsPreviousOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	writeYAML(t, path, Default())

	log := logger.NewNoopLogger()
	w, err := NewWatcher(path, log)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(strings.Replace(developmentYAML, "9545", "70000", 1)), 0644))
	assert.Error(t, w.Reload())
	assert.Equal(t, 9545, w.Current().Networks["development"].Port)
	assert.True(t, log.ContainsLevel(logger.LevelError, "keeping previous config"))
}

func TestWatcher_PicksUpChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	writeYAML(t, path, Default())

	w, err := NewWatcher(path, logger.NewNoopLogger())
	require.NoError(t, err)

	updates := make(chan *BuildConfiguration, 1)
	w.Subscribe(updates)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	next := Default()
	next.Networks["development"] = NetworkProfile{Host: "127.0.0.1", Port: 8545, NetworkID: "1337"}
	writeYAML(t, path, next)

	select {
	case got := <-updates:
		assert.True(t, Equal(next, got))
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
	assert.Equal(t, 8545, w.Current().Networks["development"].Port)
}
