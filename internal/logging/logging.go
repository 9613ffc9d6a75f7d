// Package logging configures the zerolog global logger for the stage binaries.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup points the global logger at stderr, as JSON when format is "JSON"
// and as a console writer otherwise. Report output owns stdout.
func Setup(format string, debug bool) {
	SetupWriter(os.Stderr, format, debug)
}

// SetupWriter is Setup with an explicit destination
func SetupWriter(w io.Writer, format string, debug bool) {
	if strings.EqualFold(format, "JSON") {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
	}

	if debug {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}
}

// WithRun tags the global logger with the stage name and a fresh run id.
// It returns the id and a func restoring the previous logger.
func WithRun(stage string) (string, func()) {
	runID := uuid.New().String()
	previous := log.Logger
	log.Logger = log.Logger.With().Str("stage", stage).Str("run_id", runID).Logger()
	return runID, func() { log.Logger = previous }
}
