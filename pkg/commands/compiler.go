package commands

import (
	"fmt"

	"github.com/Layr-Labs/vyperkit/pkg/common"

	"github.com/urfave/cli/v2"
)

// CompilerCommand inspects the vyper version pin
var CompilerCommand = &cli.Command{
	Name:  "compiler",
	Usage: "Shows the vyper version pin or checks a version against it",
	Flags: append([]cli.Flag{}, common.GlobalFlags...),
	Action: func(cCtx *cli.Context) error {
		logger := common.LoggerFromContext(cCtx.Context)
		cfg, _, err := common.LoadBuildConfig(cCtx)
		if err != nil {
			return err
		}
		logger.Info("vyper %s", cfg.VyperVersion())
		return nil
	},
	Subcommands: []*cli.Command{
		{
			Name:      "check",
			Usage:     "Fails unless the given vyper version satisfies the pinned range",
			ArgsUsage: "<version>",
			Flags:     append([]cli.Flag{}, common.GlobalFlags...),
			Action: func(cCtx *cli.Context) error {
				logger := common.LoggerFromContext(cCtx.Context)

				if cCtx.NArg() != 1 {
					return fmt.Errorf("expected exactly one version argument")
				}
				version := cCtx.Args().First()

				cfg, _, err := common.LoadBuildConfig(cCtx)
				if err != nil {
					return err
				}
				ok, err := cfg.SatisfiesVyper(version)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("vyper %s does not satisfy %s", version, cfg.VyperVersion())
				}
				logger.Info("vyper %s satisfies %s", version, cfg.VyperVersion())
				return nil
			},
		},
	},
}
