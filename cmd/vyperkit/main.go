package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Layr-Labs/vyperkit/pkg/commands"
	"github.com/Layr-Labs/vyperkit/pkg/commands/config"
	"github.com/Layr-Labs/vyperkit/pkg/commands/version"
	"github.com/Layr-Labs/vyperkit/pkg/common"
	"github.com/Layr-Labs/vyperkit/pkg/hooks"

	"github.com/urfave/cli/v2"
)

func main() {
	ctx := common.WithShutdown(context.Background())

	app := &cli.App{
		Name:                   common.AppName,
		HelpName:               common.AppName,
		Usage:                  "Manage the build configuration of a vyper contracts project",
		Flags:                  common.GlobalFlags,
		UseShortOptionHandling: true,
		Before: func(cCtx *cli.Context) error {
			log, tracker := common.GetLogger(cCtx.Bool("verbose"))
			cCtx.Context = common.WithLogger(cCtx.Context, log)
			cCtx.Context = common.WithProgressTracker(cCtx.Context, tracker)

			if err := hooks.LoadEnvFile(cCtx); err != nil {
				return err
			}
			common.WithAppEnvironment(cCtx)
			if err := hooks.WithFirstRunTelemetry(cCtx); err != nil {
				return err
			}
			return hooks.WithCommandMetricsContext(cCtx)
		},
		Commands: []*cli.Command{
			commands.InitCommand,
			config.Command,
			commands.ValidateCommand,
			commands.NetworksCommand,
			commands.CompilerCommand,
			commands.ConvertCommand,
			commands.MigrateCommand,
			commands.TelemetryCommand,
			version.VersionCommand,
		},
	}

	actionChain := hooks.NewActionChain()
	actionChain.Use(hooks.WithMetricEmission)
	hooks.ApplyMiddleware(app.Commands, actionChain)

	if err := app.RunContext(ctx, os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
