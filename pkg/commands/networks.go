package commands

import (
	"fmt"
	"time"

	"github.com/Layr-Labs/vyperkit/pkg/buildconfig"
	"github.com/Layr-Labs/vyperkit/pkg/common"

	"github.com/urfave/cli/v2"
)

// NetworksCommand lists and probes the configured networks
var NetworksCommand = &cli.Command{
	Name:  "networks",
	Usage: "Lists the configured networks or checks that their nodes are reachable",
	Subcommands: []*cli.Command{
		{
			Name:   "list",
			Usage:  "Print every network profile",
			Flags:  append([]cli.Flag{}, common.GlobalFlags...),
			Action: networksListAction,
		},
		{
			Name:      "check",
			Usage:     "Dial each network and compare the node's network id with network_id",
			ArgsUsage: "[network...]",
			Flags: append([]cli.Flag{
				&cli.DurationFlag{
					Name:  "timeout",
					Usage: "Per-network probe timeout",
					Value: buildconfig.DefaultProbeTimeout,
				},
			}, common.GlobalFlags...),
			Action: networksCheckAction,
		},
	},
}

func networksListAction(cCtx *cli.Context) error {
	logger := common.LoggerFromContext(cCtx.Context)

	cfg, _, err := common.LoadBuildConfig(cCtx)
	if err != nil {
		return err
	}
	for _, name := range cfg.NetworkNames() {
		p := cfg.Networks[name]
		logger.Info("%s: %s (network_id %s)", name, p.Endpoint(), p.NetworkID)
	}
	return nil
}

func networksCheckAction(cCtx *cli.Context) error {
	logger := common.LoggerFromContext(cCtx.Context)
	tracker := common.ProgressTrackerFromContext(cCtx.Context)

	cfg, _, err := common.LoadBuildConfig(cCtx)
	if err != nil {
		return err
	}

	names := cCtx.Args().Slice()
	if len(names) == 0 {
		names = cfg.NetworkNames()
	}
	for _, name := range names {
		tracker.Set(name, 0, "dialing")
	}
	tracker.Render()

	results, err := buildconfig.ProbeAll(cCtx.Context, cfg, cCtx.Duration("timeout"), names...)
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		switch {
		case res.Err != nil:
			failed++
			tracker.Set(res.Name, 100, "unreachable")
			logger.Error("%s (%s): %v", res.Name, res.Endpoint, res.Err)
		case !res.Matches:
			failed++
			tracker.Set(res.Name, 100, "wrong network")
			logger.Error("%s (%s): node reports network id %d, expected %s", res.Name, res.Endpoint, res.RemoteNetworkID, res.ExpectedID)
		default:
			tracker.Set(res.Name, 100, "ok")
			logger.Info("%s (%s): network id %d, chain id %d, %s", res.Name, res.Endpoint, res.RemoteNetworkID, res.ChainID, res.Latency.Round(time.Millisecond))
		}
	}
	tracker.Render()

	if failed > 0 {
		return fmt.Errorf("%d of %d network(s) failed the check", failed, len(results))
	}
	return nil
}
