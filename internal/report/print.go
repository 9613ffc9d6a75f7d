package report

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// table writes aligned columns, one Fprintf format per row
type table struct {
	tw *tabwriter.Writer
}

func newTable(w io.Writer, title string, headers ...any) *table {
	fmt.Fprintf(w, "\n%s\n", title)
	t := &table{tw: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
	t.row(headers...)
	return t
}

func (t *table) row(cells ...any) {
	for i, c := range cells {
		if i > 0 {
			fmt.Fprint(t.tw, "\t")
		}
		fmt.Fprint(t.tw, c)
	}
	fmt.Fprint(t.tw, "\n")
}

func (t *table) flush() error {
	return t.tw.Flush()
}

func printHourlyActivity(w io.Writer, rows []HourCount) error {
	t := newTable(w, "Hourly Activity (Total Stops):", "arrival_hour", "total_stops")
	for _, r := range rows {
		t.row(r.Hour, r.TotalStops)
	}
	return t.flush()
}

func printRouteTypeCounts(w io.Writer, rows []RouteTypeCount) error {
	t := newTable(w, "Route Type Counts (Raw):", "route_type", "count_of_routes")
	for _, r := range rows {
		t.row(r.RouteType, r.Count)
	}
	return t.flush()
}

func printRouteTypeLabels(w io.Writer, rows []RouteTypeLabel) error {
	t := newTable(w, "Route Type Labels:", "route_type", "route_type_name")
	for _, r := range rows {
		t.row(r.RouteType, r.RouteTypeName)
	}
	return t.flush()
}

func printAverageDurations(w io.Writer, rows []TypeDuration) error {
	t := newTable(w, "Average Scheduled Trip Duration by Route Type:", "route_type_name", "scheduled_duration_minutes", "std_dev", "trips")
	for _, r := range rows {
		t.row(r.RouteTypeName, r.MeanDurationMinutes, r.StdDevDurationMinutes, r.TripsWithDuration)
	}
	return t.flush()
}

func printBusiestRoutes(w io.Writer, n int, rows []RouteCount) error {
	t := newTable(w, fmt.Sprintf("Top %d Busiest Routes (from master trips):", n), "route_id", "route_long_name", "total_trips")
	for _, r := range rows {
		t.row(r.RouteID, r.RouteLongName, r.TotalTrips)
	}
	return t.flush()
}

func printMostActiveStops(w io.Writer, n int, rows []StopCount) error {
	t := newTable(w, fmt.Sprintf("Top %d Most Active Stops (from stop times):", n), "stop_id", "stop_name", "total_stop_visits")
	for _, r := range rows {
		t.row(r.StopID, r.StopName, r.TotalStopVisits)
	}
	return t.flush()
}
