// Package cleaner reads the loaded feed back out of SQLite, converts stop
// times to seconds, derives scheduled trip durations, builds the master trip
// table and writes everything out as CSV.
package cleaner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"

	"github.com/mini-rodalies-3d/transit-analytics/internal/db"
	"github.com/mini-rodalies-3d/transit-analytics/internal/static/gtfs"
)

// Output file names inside the output directory
const (
	MasterTripsFile = "cleaned_master_trips_data.csv"
	StopTimesFile   = "cleaned_stop_times_data.csv"
	StopsFile       = "cleaned_stops_data.csv"
	RoutesFile      = "cleaned_routes_data.csv"
)

// ErrMissingTable is returned when one of the four core tables cannot be read
var ErrMissingTable = errors.New("essential table failed to load")

// Result holds the cleaned datasets
type Result struct {
	MasterTrips []gtfs.MasterTrip
	StopTimes   []gtfs.CleanStopTime
	Stops       []gtfs.Stop
	Routes      []gtfs.Route
}

// Run cleans the feed stored at dbPath and writes the four CSV files to
// outputDir. A preview of the master table is written to preview when it is
// not nil.
func Run(ctx context.Context, dbPath, outputDir string, preview io.Writer) (*Result, error) {
	database, err := db.Connect(dbPath)
	if err != nil {
		return nil, err
	}
	defer database.Close()

	feed, err := database.ReadFeed(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingTable, err)
	}
	log.Info().
		Int("routes", len(feed.Routes)).
		Int("stops", len(feed.Stops)).
		Int("trips", len(feed.Trips)).
		Int("stop_times", len(feed.StopTimes)).
		Msg("Loaded core tables")

	result := Clean(feed)

	if preview != nil {
		writePreview(preview, result.MasterTrips)
	}

	if err := WriteResult(outputDir, result); err != nil {
		return nil, err
	}

	return result, nil
}

// Clean runs the in-memory part of the stage
func Clean(feed *gtfs.Feed) *Result {
	log.Info().Msg("Converting arrival_time and departure_time to seconds from midnight")
	stopTimes := CleanStopTimes(feed.StopTimes)

	log.Info().Msg("Calculating scheduled trip durations")
	durations := TripDurations(stopTimes)

	nullDurations := 0
	for _, d := range durations {
		if !d.Valid {
			nullDurations++
		}
	}
	if nullDurations > 0 {
		log.Warn().Int("trips", nullDurations).Msg("Trips with no usable or negative scheduled duration")
	}

	log.Info().Msg("Merging trips with durations and route details")
	master := BuildMasterTrips(feed.Trips, feed.Routes, durations)

	return &Result{
		MasterTrips: master,
		StopTimes:   stopTimes,
		Stops:       feed.Stops,
		Routes:      feed.Routes,
	}
}

// WriteResult overwrites the four CSV files, creating outputDir if needed
func WriteResult(outputDir string, result *Result) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	outputs := []struct {
		name    string
		records any
	}{
		{MasterTripsFile, &result.MasterTrips},
		{StopTimesFile, &result.StopTimes},
		{StopsFile, &result.Stops},
		{RoutesFile, &result.Routes},
	}

	for _, o := range outputs {
		path := filepath.Join(outputDir, o.name)
		if err := writeCSV(path, o.records); err != nil {
			return err
		}
		log.Info().Str("path", path).Msg("Saved cleaned data")
	}
	return nil
}

func writeCSV(path string, records any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := gocsv.Marshal(records, f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
