package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Layr-Labs/vyperkit/config"
	"github.com/Layr-Labs/vyperkit/pkg/buildconfig"
	"github.com/Layr-Labs/vyperkit/pkg/common"
	"github.com/Layr-Labs/vyperkit/pkg/common/logger"

	"github.com/urfave/cli/v2"
)

// WithNoopLogger installs a no-op logger and progress tracker in the
// command's Before hook for silent testing
func WithNoopLogger(cmd *cli.Command) *cli.Command {
	wrapped, _ := WithNoopLoggerAndAccess(cmd)
	return wrapped
}

// WithNoopLoggerAndAccess is WithNoopLogger that also returns the logger so
// tests can assert on what was logged
func WithNoopLoggerAndAccess(cmd *cli.Command) (*cli.Command, *logger.NoopLogger) {
	noopLogger := logger.NewNoopLogger()
	noopProgressTracker := logger.NewNoopProgressTracker()
	cmd.Before = func(cCtx *cli.Context) error {
		ctx := common.WithLogger(cCtx.Context, noopLogger)
		ctx = common.WithProgressTracker(ctx, noopProgressTracker)
		cCtx.Context = ctx
		return nil
	}
	return cmd, noopLogger
}

// CreateTestAppWithNoopLoggerAndAccess creates a CLI app with no-op logger and returns both app and logger
func CreateTestAppWithNoopLoggerAndAccess(name string, flags []cli.Flag, action cli.ActionFunc) (*cli.App, *logger.NoopLogger) {
	noopLogger := logger.NewNoopLogger()
	noopProgressTracker := logger.NewNoopProgressTracker()
	app := &cli.App{
		Name:  name,
		Flags: flags,
		Before: func(cCtx *cli.Context) error {
			ctx := common.WithLogger(cCtx.Context, noopLogger)
			ctx = common.WithProgressTracker(ctx, noopProgressTracker)
			cCtx.Context = ctx
			return nil
		},
		Action: action,
	}
	return app, noopLogger
}

// CreateTempProject writes the default build config and an empty contracts
// directory into a fresh temp dir and returns the config path
func CreateTempProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	cfgPath := filepath.Join(dir, buildconfig.DefaultFileName)
	if err := os.WriteFile(cfgPath, config.DefaultBuildConfig, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", buildconfig.DefaultFileName, err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "contracts"), 0755); err != nil {
		t.Fatalf("failed to create contracts dir: %v", err)
	}
	return cfgPath
}

// WriteFile writes content to name under dir, creating parents
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func FindSubcommandByName(name string, commands []*cli.Command) *cli.Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}
