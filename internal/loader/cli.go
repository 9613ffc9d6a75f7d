package loader

import (
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/mini-rodalies-3d/transit-analytics/internal/config"
	"github.com/mini-rodalies-3d/transit-analytics/internal/logging"
)

func RegisterCLI(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "load",
		Usage: "Load GTFS text files into the SQLite store",
		Flags: []cli.Flag{
			cfg.FeedDirFlag(),
			cfg.DatabaseFlag(),
		},
		Action: func(c *cli.Context) error {
			_, done := logging.WithRun("load")
			defer done()

			summary, err := Run(c.Context, c.String(config.FlagFeedDir), c.String(config.FlagDatabase))
			if err != nil {
				return err
			}
			log.Debug().
				Bool("stops_converted", summary.StopsConverted).
				Bool("direction_converted", summary.DirectionConverted).
				Msg("Column conversions")
			return nil
		},
	}
}
