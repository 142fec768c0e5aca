package version

import (
	"fmt"

	"github.com/Layr-Labs/vyperkit/pkg/common"

	"github.com/urfave/cli/v2"
)

// Commit is set with -ldflags at release time
var Commit = "unknown"

// VersionCommand prints the build version
var VersionCommand = &cli.Command{
	Name:  "version",
	Usage: "Print the version of vyperkit",
	Flags: append([]cli.Flag{}, common.GlobalFlags...),
	Action: func(cCtx *cli.Context) error {
		_, err := fmt.Fprintf(cCtx.App.Writer, "Version: %s\nCommit: %s\n", common.Version(), Commit)
		return err
	},
}
