package common

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Layr-Labs/vyperkit/pkg/buildconfig"
	"github.com/urfave/cli/v2"
)

// ResolveConfigPath returns --config (or $VYPERKIT_CONFIG) when set and
// otherwise searches upward from the working directory.
func ResolveConfigPath(cCtx *cli.Context) (string, error) {
	if p := cCtx.String("config"); p != "" {
		return filepath.Abs(p)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return buildconfig.Find(wd)
}

// LoadBuildConfig resolves and loads the build config for a command. The
// returned directory is the one relative paths in the record resolve against.
func LoadBuildConfig(cCtx *cli.Context) (*buildconfig.BuildConfiguration, string, error) {
	path, err := ResolveConfigPath(cCtx)
	if err != nil {
		return nil, "", err
	}
	LoggerFromContext(cCtx.Context).Debug("Using build config %s", path)

	cfg, err := buildconfig.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}
