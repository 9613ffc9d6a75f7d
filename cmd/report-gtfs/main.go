package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/mini-rodalies-3d/transit-analytics/internal/config"
	"github.com/mini-rodalies-3d/transit-analytics/internal/logging"
	"github.com/mini-rodalies-3d/transit-analytics/internal/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Setup(cfg.LogFormat, cfg.Debug)

	cmd := report.RegisterCLI(cfg)
	app := &cli.App{
		Name:   "report-gtfs",
		Usage:  cmd.Usage,
		Flags:  cmd.Flags,
		Action: cmd.Action,
	}

	err = app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
