package commands

import (
	"fmt"
	"os"

	"github.com/Layr-Labs/vyperkit/pkg/buildconfig"
	"github.com/Layr-Labs/vyperkit/pkg/common"

	"github.com/urfave/cli/v2"
)

// ConvertCommand rewrites the build config in another format
var ConvertCommand = &cli.Command{
	Name:  "convert",
	Usage: "Converts the build config to the format implied by --out (e.g. truffle-config.js to buildconfig.yaml)",
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:     "out",
			Usage:    "Destination file (.yaml, .yml, .json or .js)",
			Required: true,
		},
		&cli.BoolFlag{
			Name:  "force",
			Usage: "Overwrite the destination if it exists",
		},
	}, common.GlobalFlags...),
	Action: func(cCtx *cli.Context) error {
		logger := common.LoggerFromContext(cCtx.Context)

		cfg, src, err := common.LoadBuildConfig(cCtx)
		if err != nil {
			return err
		}
		out := cCtx.String("out")
		if _, err := os.Stat(out); err == nil && !cCtx.Bool("force") {
			return fmt.Errorf("%s already exists (use --force to overwrite)", out)
		}
		if err := buildconfig.Validate(cfg); err != nil {
			logger.Warn("Converting a build config with problems: %v", err)
		}

		if err := buildconfig.Save(out, cfg); err != nil {
			return err
		}

		// re-read to make sure nothing was lost in translation
		back, err := buildconfig.Load(out)
		if err != nil {
			return fmt.Errorf("verify %s: %w", out, err)
		}
		if !buildconfig.Equal(cfg, back) {
			return fmt.Errorf("verify %s: converted record differs from %s", out, src)
		}

		logger.Info("Converted %s to %s", src, out)
		return nil
	},
}
