package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/mini-rodalies-3d/transit-analytics/internal/cleaner"
	"github.com/mini-rodalies-3d/transit-analytics/internal/config"
	"github.com/mini-rodalies-3d/transit-analytics/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Setup(cfg.LogFormat, cfg.Debug)

	cmd := cleaner.RegisterCLI(cfg)
	app := &cli.App{
		Name:   "clean-gtfs",
		Usage:  cmd.Usage,
		Flags:  cmd.Flags,
		Action: cmd.Action,
	}

	err = app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
