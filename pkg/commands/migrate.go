package commands

import (
	"errors"
	"fmt"

	"github.com/Layr-Labs/vyperkit/pkg/buildconfig"
	"github.com/Layr-Labs/vyperkit/pkg/common"
	"github.com/Layr-Labs/vyperkit/pkg/migration"

	"github.com/urfave/cli/v2"
)

// MigrateCommand upgrades a legacy YAML build config in place
var MigrateCommand = &cli.Command{
	Name:  "migrate",
	Usage: "Rewrites legacy keys (contractsDirectory, networkId, vyper: <range>) in a YAML build config",
	Flags: append([]cli.Flag{}, common.GlobalFlags...),
	Action: func(cCtx *cli.Context) error {
		logger := common.LoggerFromContext(cCtx.Context)

		path, err := common.ResolveConfigPath(cCtx)
		if err != nil {
			return err
		}
		format, err := buildconfig.FormatFromPath(path)
		if err != nil {
			return err
		}
		if format != buildconfig.FormatYAML {
			return fmt.Errorf("migrate only rewrites YAML build configs, %s is %s", path, format)
		}

		applied, err := migration.MigrateYaml(logger, path, migration.LegacyRules, func(data []byte) error {
			cfg, err := buildconfig.Parse(data, buildconfig.FormatYAML)
			if err != nil {
				return err
			}
			return buildconfig.Validate(cfg)
		})
		if errors.Is(err, migration.ErrAlreadyUpToDate) {
			logger.Info("%s is already up to date", path)
			return nil
		}
		if err != nil {
			return err
		}

		logger.Info("Migrated %s (%d change(s))", path, len(applied))
		return nil
	},
}
