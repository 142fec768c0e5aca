package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Layr-Labs/vyperkit/config"
	"github.com/Layr-Labs/vyperkit/pkg/common/logger"
	"github.com/Layr-Labs/vyperkit/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand_Valid(t *testing.T) {
	cfgPath := testutils.CreateTempProject(t)
	testutils.WriteFile(t, filepath.Dir(cfgPath), "Token.vy", "# @version ^0.3.0\n")

	app, log := newTestApp(ValidateCommand)
	require.NoError(t, app.Run([]string{"vyperkit", "validate", "--config", cfgPath}))
	assert.True(t, log.ContainsLevel(logger.LevelInfo, "is valid"))
	assert.True(t, log.Contains("1 contract source(s)"))
}

func TestValidateCommand_ReportsEveryField(t *testing.T) {
	cfgPath := testutils.CreateTempProject(t)
	bad := strings.NewReplacer("9545", "0", `"*"`, `"any"`, "^0.3.0", "banana").Replace(string(config.DefaultBuildConfig))
	require.NoError(t, os.WriteFile(cfgPath, []byte(bad), 0644))

	app, log := newTestApp(ValidateCommand)
	err := app.Run([]string{"vyperkit", "validate", "--config", cfgPath})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 problem(s)")

	assert.True(t, log.ContainsLevel(logger.LevelError, "networks.development.port"))
	assert.True(t, log.ContainsLevel(logger.LevelError, "networks.development.network_id"))
	assert.True(t, log.ContainsLevel(logger.LevelError, "compilers.vyper.version"))
}

func TestValidateCommand_MissingContractsDirectory(t *testing.T) {
	cfgPath := testutils.CreateTempProject(t)
	content := strings.Replace(string(config.DefaultBuildConfig), "contracts_directory: .", "contracts_directory: src", 1)
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))

	app, log := newTestApp(ValidateCommand)
	err := app.Run([]string{"vyperkit", "validate", "--config", cfgPath})
	require.Error(t, err)
	assert.True(t, log.ContainsLevel(logger.LevelError, "does not exist"))
}

func TestValidateCommand_DiscoversConfigFromWorkingDirectory(t *testing.T) {
	cfgPath := testutils.CreateTempProject(t)
	nested := filepath.Join(filepath.Dir(cfgPath), "contracts")

	oldWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	defer func() { _ = os.Chdir(oldWD) }()

	app, log := newTestApp(ValidateCommand)
	require.NoError(t, app.Run([]string{"vyperkit", "validate"}))
	assert.True(t, log.Contains("is valid"))
}
