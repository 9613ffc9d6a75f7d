package report

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/mini-rodalies-3d/transit-analytics/internal/config"
	"github.com/mini-rodalies-3d/transit-analytics/internal/logging"
)

func RegisterCLI(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Print summary tables over the cleaned CSV files",
		Flags: []cli.Flag{
			cfg.OutputDirFlag(),
			cfg.TopNFlag(),
		},
		Action: func(c *cli.Context) error {
			_, done := logging.WithRun("report")
			defer done()

			return Run(c.String(config.FlagOutputDir), c.Int(config.FlagTopN), os.Stdout)
		},
	}
}
