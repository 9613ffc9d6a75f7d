// Package loader bulk-loads GTFS text files into the SQLite store.
package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/mini-rodalies-3d/transit-analytics/internal/db"
	"github.com/mini-rodalies-3d/transit-analytics/internal/static/gtfs"
)

// ErrOpenStore wraps failures to open the SQLite store. It aborts the run.
var ErrOpenStore = errors.New("failed to open store")

// FeedFile pairs a GTFS file with the table it is loaded into
type FeedFile struct {
	FileName  string
	TableName string
}

// FeedFiles are loaded in this order
var FeedFiles = []FeedFile{
	{FileName: "agency.txt", TableName: "agency"},
	{FileName: "calendar.txt", TableName: "calendar"},
	{FileName: "routes.txt", TableName: "routes"},
	{FileName: "stops.txt", TableName: "stops"},
	{FileName: "stop_times.txt", TableName: "stop_times"},
	{FileName: "trips.txt", TableName: "trips"},
}

// Summary describes what a load did
type Summary struct {
	Loaded             map[string]int // table -> rows
	Missing            []string       // files not found
	Failed             []string       // tables that could not be loaded
	StopsConverted     bool
	DirectionConverted bool
}

// Run loads every feed file found in feedDir into the database at dbPath and
// tightens the column types of stops and trips. Individual tables that fail
// are skipped; only failing to open or commit the store is an error.
func Run(ctx context.Context, feedDir, dbPath string) (*Summary, error) {
	database, err := db.Connect(dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenStore, err)
	}
	defer database.Close()

	load, err := database.BeginLoad(ctx)
	if err != nil {
		return nil, err
	}
	defer load.Rollback()

	summary := &Summary{Loaded: make(map[string]int)}

	log.Info().Str("dir", feedDir).Msg("Starting GTFS data loading")
	for _, ff := range FeedFiles {
		loadFile(ctx, load, feedDir, ff, summary)
	}

	log.Info().Msg("Performing column type adjustments")
	convertColumns(ctx, load, summary)

	if err := load.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit load: %w", err)
	}

	log.Info().
		Str("database", dbPath).
		Int("tables", len(summary.Loaded)).
		Strs("missing", summary.Missing).
		Strs("failed", summary.Failed).
		Msg("GTFS data loading complete")

	return summary, nil
}

func loadFile(ctx context.Context, load *db.Load, feedDir string, ff FeedFile, summary *Summary) {
	path := filepath.Join(feedDir, ff.FileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.Warn().Str("file", path).Msg("File not found, skipping")
		summary.Missing = append(summary.Missing, ff.FileName)
		return
	}

	table, err := gtfs.ReadTable(path)
	if err == nil {
		err = load.ReplaceTable(ctx, ff.TableName, table)
	}
	if err != nil {
		log.Error().Err(err).Str("file", ff.FileName).Str("table", ff.TableName).Msg("Error loading file")
		summary.Failed = append(summary.Failed, ff.TableName)
		return
	}

	summary.Loaded[ff.TableName] = len(table.Rows)
	log.Info().
		Str("file", ff.FileName).
		Str("table", ff.TableName).
		Int("rows", len(table.Rows)).
		Msg("Loaded file")
}

func convertColumns(ctx context.Context, load *db.Load, summary *Summary) {
	converted, err := load.ConvertStopCoordinates(ctx)
	switch {
	case err != nil:
		log.Error().Err(err).Msg("Error converting stop_lat/stop_lon in stops")
	case converted:
		summary.StopsConverted = true
		log.Info().Msg("Converted stop_lat and stop_lon to REAL in stops")
	default:
		log.Info().Msg("stop_lat or stop_lon not found in stops, skipping conversion")
	}

	result, err := load.ConvertDirectionID(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Error converting direction_id in trips")
		return
	}
	switch result {
	case db.DirectionConverted:
		summary.DirectionConverted = true
		log.Info().Msg("Converted direction_id to INTEGER in trips")
	case db.DirectionNotNumeric:
		log.Info().Msg("direction_id in trips contains non-numeric values, skipping INTEGER conversion")
	case db.DirectionColumnMissing:
		log.Info().Msg("direction_id not found in trips")
	}
}
