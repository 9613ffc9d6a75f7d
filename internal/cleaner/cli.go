package cleaner

import (
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/mini-rodalies-3d/transit-analytics/internal/config"
	"github.com/mini-rodalies-3d/transit-analytics/internal/logging"
)

func RegisterCLI(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "clean",
		Usage: "Clean and enrich the stored feed and write the cleaned CSV files",
		Flags: []cli.Flag{
			cfg.DatabaseFlag(),
			cfg.OutputDirFlag(),
			&cli.BoolFlag{
				Name:  "preview",
				Usage: "Print a preview of the master trips table",
				Value: true,
			},
		},
		Action: func(c *cli.Context) error {
			_, done := logging.WithRun("clean")
			defer done()

			var preview io.Writer
			if c.Bool("preview") {
				preview = os.Stdout
			}

			_, err := Run(c.Context, c.String(config.FlagDatabase), c.String(config.FlagOutputDir), preview)
			return err
		},
	}
}
