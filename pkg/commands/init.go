package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Layr-Labs/vyperkit/config"
	"github.com/Layr-Labs/vyperkit/pkg/buildconfig"
	"github.com/Layr-Labs/vyperkit/pkg/common"

	"github.com/urfave/cli/v2"
)

// defaultFileNames maps each format to the file init writes
var defaultFileNames = map[buildconfig.Format]string{
	buildconfig.FormatYAML: buildconfig.DefaultFileName,
	buildconfig.FormatJSON: "buildconfig.json",
	buildconfig.FormatJS:   "truffle-config.js",
}

// InitCommand writes the default build config into a directory
var InitCommand = &cli.Command{
	Name:      "init",
	Usage:     "Writes a default build config (development network on 127.0.0.1:9545, vyper ^0.3.0)",
	ArgsUsage: "[directory]",
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:  "format",
			Usage: "yaml, json or js",
			Value: string(buildconfig.FormatYAML),
		},
		&cli.BoolFlag{
			Name:  "force",
			Usage: "Overwrite an existing build config",
		},
	}, common.GlobalFlags...),
	Action: func(cCtx *cli.Context) error {
		logger := common.LoggerFromContext(cCtx.Context)

		dir := cCtx.Args().First()
		if dir == "" {
			dir = "."
		}
		format, err := buildconfig.ParseFormat(cCtx.String("format"))
		if err != nil {
			return err
		}

		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
		target := filepath.Join(dir, defaultFileNames[format])
		if _, err := os.Stat(target); err == nil && !cCtx.Bool("force") {
			return fmt.Errorf("%s already exists (use --force to overwrite)", target)
		}

		data := config.DefaultBuildConfig
		if format != buildconfig.FormatYAML {
			data, err = buildconfig.Marshal(buildconfig.Default(), format)
			if err != nil {
				return err
			}
		}
		if err := os.WriteFile(target, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", target, err)
		}

		logger.Info("Wrote %s", target)
		return nil
	},
}
