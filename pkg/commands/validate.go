package commands

import (
	"fmt"
	"path/filepath"

	"github.com/Layr-Labs/vyperkit/pkg/buildconfig"
	"github.com/Layr-Labs/vyperkit/pkg/common"
	"github.com/Layr-Labs/vyperkit/pkg/common/iface"

	"github.com/urfave/cli/v2"
)

// ValidateCommand checks the build config and its contracts directory
var ValidateCommand = &cli.Command{
	Name:  "validate",
	Usage: "Checks every field of the build config and that the contracts directory exists",
	Flags: append([]cli.Flag{
		&cli.BoolFlag{
			Name:  "watch",
			Usage: "Keep running and revalidate whenever the build config changes",
		},
	}, common.GlobalFlags...),
	Action: func(cCtx *cli.Context) error {
		logger := common.LoggerFromContext(cCtx.Context)

		cfg, path, err := common.LoadBuildConfig(cCtx)
		if err != nil {
			return err
		}
		if err := checkBuildConfig(logger, cfg, path); err != nil {
			return err
		}
		if !cCtx.Bool("watch") {
			return nil
		}

		watcher, err := buildconfig.NewWatcher(path, logger)
		if err != nil {
			return err
		}
		updates := make(chan *buildconfig.BuildConfiguration, 1)
		watcher.Subscribe(updates)
		if err := watcher.Start(cCtx.Context); err != nil {
			return err
		}
		logger.Info("Watching %s, press Ctrl+C to stop", path)

		for {
			select {
			case <-cCtx.Context.Done():
				return nil
			case next := <-updates:
				if err := checkBuildConfig(logger, next, path); err != nil {
					logger.Error("%v", err)
				}
			}
		}
	},
}

// checkBuildConfig logs every violation and the discovered contract sources
func checkBuildConfig(logger iface.Logger, cfg *buildconfig.BuildConfiguration, path string) error {
	baseDir := filepath.Dir(path)

	err := buildconfig.Validate(cfg)
	if err == nil {
		err = buildconfig.CheckContractsDirectory(cfg, baseDir)
	}
	if err != nil {
		problems := buildconfig.FieldErrors(err)
		for _, fe := range problems {
			logger.Error("%s", fe.Error())
		}
		if len(problems) == 0 {
			return fmt.Errorf("%s is invalid: %w", path, err)
		}
		return fmt.Errorf("%s is invalid: %d problem(s) found", path, len(problems))
	}

	sources, err := buildconfig.ContractSources(cfg, baseDir)
	if err != nil {
		return err
	}
	logger.Info("%s is valid: %d network(s), vyper %s, %d contract source(s) in %s",
		path, len(cfg.Networks), cfg.VyperVersion(), len(sources), cfg.ContractsPath(baseDir))
	return nil
}
