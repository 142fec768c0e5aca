package commands

import (
	"fmt"

	"github.com/Layr-Labs/vyperkit/pkg/common"

	"github.com/urfave/cli/v2"
)

// TelemetryCommand allows users to manage telemetry settings
var TelemetryCommand = &cli.Command{
	Name:  "telemetry",
	Usage: "Manage telemetry settings",
	Flags: append([]cli.Flag{
		&cli.BoolFlag{
			Name:  "enable",
			Usage: "Enable telemetry collection",
		},
		&cli.BoolFlag{
			Name:  "disable",
			Usage: "Disable telemetry collection",
		},
		&cli.BoolFlag{
			Name:  "status",
			Usage: "Show current telemetry status",
		},
	}, common.GlobalFlags...),
	Action: func(cCtx *cli.Context) error {
		logger := common.LoggerFromContext(cCtx.Context)

		enable := cCtx.Bool("enable")
		disable := cCtx.Bool("disable")
		status := cCtx.Bool("status")

		if (enable && disable) || (!enable && !disable && !status) {
			return fmt.Errorf("specify exactly one of --enable, --disable, or --status")
		}

		if status {
			pref, err := common.GetGlobalTelemetryPreference()
			if err != nil {
				return fmt.Errorf("failed to get telemetry preference: %w", err)
			}
			switch {
			case pref == nil:
				logger.Info("Telemetry: Not set (defaults to disabled)")
			case *pref:
				logger.Info("Telemetry: Enabled")
			default:
				logger.Info("Telemetry: Disabled")
			}
			return nil
		}

		if err := common.SetGlobalTelemetryPreference(enable); err != nil {
			return fmt.Errorf("failed to save telemetry preference: %w", err)
		}
		if enable {
			logger.Info("Telemetry enabled")
		} else {
			logger.Info("Telemetry disabled")
		}
		return nil
	},
}
