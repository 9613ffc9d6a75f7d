package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/mini-rodalies-3d/transit-analytics/internal/cleaner"
	"github.com/mini-rodalies-3d/transit-analytics/internal/config"
	"github.com/mini-rodalies-3d/transit-analytics/internal/loader"
	"github.com/mini-rodalies-3d/transit-analytics/internal/logging"
	"github.com/mini-rodalies-3d/transit-analytics/internal/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Setup(cfg.LogFormat, cfg.Debug)

	app := &cli.App{
		Name:        "transit-pipeline",
		Description: "Load, clean and report on a static GTFS feed",

		Commands: []*cli.Command{
			loader.RegisterCLI(cfg),
			cleaner.RegisterCLI(cfg),
			report.RegisterCLI(cfg),
			{
				Name:  "all",
				Usage: "Run load, clean and report in order",
				Flags: []cli.Flag{
					cfg.FeedDirFlag(),
					cfg.DatabaseFlag(),
					cfg.OutputDirFlag(),
					cfg.TopNFlag(),
				},
				Action: func(c *cli.Context) error {
					dbPath := c.String(config.FlagDatabase)
					outputDir := c.String(config.FlagOutputDir)

					if err := runStage("load", func() error {
						_, err := loader.Run(c.Context, c.String(config.FlagFeedDir), dbPath)
						return err
					}); err != nil {
						return err
					}

					if err := runStage("clean", func() error {
						_, err := cleaner.Run(c.Context, dbPath, outputDir, nil)
						return err
					}); err != nil {
						return err
					}

					return runStage("report", func() error {
						return report.Run(outputDir, c.Int(config.FlagTopN), os.Stdout)
					})
				},
			},
		},
	}

	err = app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}

func runStage(stage string, fn func() error) error {
	_, done := logging.WithRun(stage)
	defer done()
	return fn()
}
