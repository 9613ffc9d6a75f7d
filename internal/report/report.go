// Package report prints summary tables over the cleaned CSV datasets.
package report

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
)

// DefaultTopN is how many rows the busiest routes and stops tables keep
const DefaultTopN = 10

// Run loads the cleaned datasets from dir and prints every report to w.
// A missing input file is fatal; a missing route_type column only skips the
// route type tables.
func Run(dir string, topN int, w io.Writer) error {
	log.Info().Str("dir", dir).Msg("Loading cleaned data")
	ds, err := LoadDataset(dir)
	if err != nil {
		return err
	}
	log.Info().
		Int("master_trips", len(ds.MasterTrips)).
		Int("stop_times", len(ds.StopTimes)).
		Int("stops", len(ds.Stops)).
		Int("routes", len(ds.Routes)).
		Msg("All cleaned datasets loaded")

	return Print(ds, topN, w)
}

// Print writes the report tables for ds to w
func Print(ds *Dataset, topN int, w io.Writer) error {
	if topN <= 0 {
		topN = DefaultTopN
	}

	if err := printHourlyActivity(w, HourlyActivity(ds.StopTimes)); err != nil {
		return err
	}

	if ds.HasRouteType {
		if err := printRouteTypes(w, ds); err != nil {
			return err
		}
	} else {
		log.Warn().Msg("route_type column not found in routes, skipping route type analysis")
		fmt.Fprintln(w, "\n'route_type' column not found in routes. Skipping route type analysis.")
	}

	if err := printBusiestRoutes(w, topN, BusiestRoutes(ds.MasterTrips, topN)); err != nil {
		return err
	}
	return printMostActiveStops(w, topN, MostActiveStops(ds.StopTimes, ds.Stops, topN))
}

func printRouteTypes(w io.Writer, ds *Dataset) error {
	if err := printRouteTypeCounts(w, RouteTypeCounts(ds.Routes)); err != nil {
		return err
	}

	LabelRoutes(ds.Routes)
	LabelMasterTrips(ds.MasterTrips, ds.Routes)
	log.Debug().Msg("Mapped route_type codes to labels")

	if err := printRouteTypeLabels(w, RouteTypeLabels(ds.Routes)); err != nil {
		return err
	}
	return printAverageDurations(w, AverageDurationByType(ds.MasterTrips))
}
