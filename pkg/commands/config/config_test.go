package config

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/Layr-Labs/vyperkit/pkg/buildconfig"
	"github.com/Layr-Labs/vyperkit/pkg/common/iface"
	"github.com/Layr-Labs/vyperkit/pkg/common/logger"
	"github.com/Layr-Labs/vyperkit/pkg/telemetry"
	"github.com/Layr-Labs/vyperkit/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newConfigApp() (*cli.App, *logger.NoopLogger, *strings.Builder) {
	cmd, log := testutils.WithNoopLoggerAndAccess(Command)
	out := &strings.Builder{}
	return &cli.App{
		Name:     "vyperkit",
		Writer:   out,
		Commands: []*cli.Command{cmd},
	}, log, out
}

func TestListConfig_PreservesComments(t *testing.T) {
	path := testutils.CreateTempProject(t)
	app, log, out := newConfigApp()

	require.NoError(t, app.Run([]string{"vyperkit", "config", "--config", path}))
	assert.Contains(t, out.String(), "# Vyper compiler pin")
	assert.Contains(t, out.String(), "port: 9545")
	assert.True(t, log.Contains("Networks: development"))
}

func TestListConfig_JSON(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/buildconfig.json"
	require.NoError(t, buildconfig.Save(path, buildconfig.Default()))

	app, _, out := newConfigApp()
	require.NoError(t, app.Run([]string{"vyperkit", "config", "--list", "--config", path}))
	assert.Contains(t, out.String(), `"network_id": "*"`)
}

func TestSetValues(t *testing.T) {
	path := testutils.CreateTempProject(t)
	app, log, _ := newConfigApp()

	require.NoError(t, app.Run([]string{"vyperkit", "config", "--config", path,
		"--set", "networks.development.port=8545",
		"--set", "compilers.vyper.version=~0.3.10",
		"--set", "networks.ganache.host=localhost",
		"--set", "networks.ganache.port=7545",
		"--set", "networks.ganache.network_id=5777",
	}))
	assert.True(t, log.Contains("Set networks.development.port = 8545"))

	cfg, err := buildconfig.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8545, cfg.Networks["development"].Port)
	assert.Equal(t, "~0.3.10", cfg.VyperVersion())
	assert.Equal(t, buildconfig.NetworkProfile{Host: "localhost", Port: 7545, NetworkID: "5777"}, cfg.Networks["ganache"])

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Where contract sources live")
}

func TestSetValues_RejectsInvalidEdit(t *testing.T) {
	path := testutils.CreateTempProject(t)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	app, _, _ := newConfigApp()
	err = app.Run([]string{"vyperkit", "config", "--config", path, "--set", "networks.development.port=70000"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not saved")

	err = app.Run([]string{"vyperkit", "config", "--config", path, "--set", "networks.development.port"})
	require.Error(t, err)

	err = app.Run([]string{"vyperkit", "config", "--config", path, "--set", "solc.version=0.8.0"})
	require.Error(t, err)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSetValues_RequiresYAML(t *testing.T) {
	path := t.TempDir() + "/truffle-config.js"
	require.NoError(t, buildconfig.Save(path, buildconfig.Default()))

	app, _, _ := newConfigApp()
	err := app.Run([]string{"vyperkit", "config", "--config", path, "--set", "contracts_directory=src"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only edits YAML")
}

func stubEditor(t *testing.T, edit func(path string) error) {
	t.Helper()
	self, err := os.Executable()
	require.NoError(t, err)
	t.Setenv("EDITOR", self)

	orig := runEditor
	runEditor = func(_, path string, _ iface.Logger) error { return edit(path) }
	t.Cleanup(func() { runEditor = orig })
}

func TestEditConfig_ValidEdit(t *testing.T) {
	path := testutils.CreateTempProject(t)
	stubEditor(t, func(p string) error {
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		return os.WriteFile(p, []byte(strings.Replace(string(data), "9545", "8545", 1)), 0644)
	})

	app, log, _ := newConfigApp()
	require.NoError(t, app.Run([]string{"vyperkit", "config", "--edit", "--config", path}))
	assert.True(t, log.Contains("Networks changes:"))
	assert.True(t, log.Contains("networks.development.port changed from '9545' to '8545'"))
	assert.True(t, log.Contains("Config file updated successfully."))
}

func TestEditConfig_RevertsInvalidEdit(t *testing.T) {
	path := testutils.CreateTempProject(t)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	stubEditor(t, func(p string) error {
		return os.WriteFile(p, []byte("networks: {}\n"), 0644)
	})

	app, log, _ := newConfigApp()
	require.Error(t, app.Run([]string{"vyperkit", "config", "--edit", "--config", path}))
	assert.True(t, log.Contains("Reverting changes"))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestDiffConfigs(t *testing.T) {
	before := buildconfig.Default()
	after := buildconfig.Default()
	after.ContractsDirectory = "contracts"
	after.Networks["ganache"] = buildconfig.NetworkProfile{Host: "localhost", Port: 7545, NetworkID: "5777"}

	changes, err := diffConfigs(before, after)
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.Equal(t, "contracts_directory", changes[0].Path)
	assert.Equal(t, "networks.ganache", changes[1].Path)
	assert.Nil(t, changes[1].OldValue)

	none, err := diffConfigs(before, buildconfig.Default())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSendConfigChangeTelemetry(t *testing.T) {
	metrics := telemetry.NewMetricsContext()
	ctx := telemetry.WithMetricsContext(context.Background(), metrics)

	sendConfigChangeTelemetry(ctx, []ConfigChange{
		{Path: "networks.development.port", OldValue: 9545, NewValue: 8545},
		{Path: "networks.development.host", OldValue: "127.0.0.1", NewValue: "localhost"},
		{Path: "contracts_directory", OldValue: ".", NewValue: "src"},
	})

	var found bool
	for _, m := range metrics.Snapshot() {
		if m.Name == "ConfigChangeCount" {
			found = true
			assert.Equal(t, float64(3), m.Value)
			assert.Equal(t, "2", m.Dimensions["networks_changes"])
			assert.Equal(t, "1", m.Dimensions["contracts_directory_changes"])
		}
	}
	assert.True(t, found)
}
