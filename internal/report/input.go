package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"golang.org/x/exp/slices"

	"github.com/mini-rodalies-3d/transit-analytics/internal/cleaner"
	"github.com/mini-rodalies-3d/transit-analytics/internal/static/gtfs"
)

// ErrMissingInput is returned when a cleaned CSV file is missing or unreadable
var ErrMissingInput = errors.New("could not load cleaned data files")

// Dataset is the cleaned output of the cleaner stage
type Dataset struct {
	MasterTrips []gtfs.MasterTrip
	StopTimes   []gtfs.CleanStopTime
	Stops       []gtfs.Stop
	Routes      []gtfs.Route

	// HasRouteType is false when the routes file has no route_type column
	HasRouteType bool
}

// LoadDataset reads the four cleaned CSV files from dir
func LoadDataset(dir string) (*Dataset, error) {
	ds := &Dataset{}

	if _, err := readCSV(filepath.Join(dir, cleaner.MasterTripsFile), &ds.MasterTrips); err != nil {
		return nil, err
	}
	if _, err := readCSV(filepath.Join(dir, cleaner.StopTimesFile), &ds.StopTimes); err != nil {
		return nil, err
	}
	if _, err := readCSV(filepath.Join(dir, cleaner.StopsFile), &ds.Stops); err != nil {
		return nil, err
	}
	header, err := readCSV(filepath.Join(dir, cleaner.RoutesFile), &ds.Routes)
	if err != nil {
		return nil, err
	}
	ds.HasRouteType = slices.Contains(header, "route_type")

	return ds, nil
}

// readCSV decodes path into out and returns the file's header row
func readCSV(path string, out any) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingInput, err)
	}

	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %s has no header: %v", ErrMissingInput, path, err)
	}

	if err := gocsv.UnmarshalBytes(data, out); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrMissingInput, path, err)
	}
	return header, nil
}
