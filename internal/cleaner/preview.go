package cleaner

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/kr/pretty"

	"github.com/mini-rodalies-3d/transit-analytics/internal/static/gtfs"
)

const previewRows = 5

type columnInfo struct {
	name    string
	kind    string
	nonNull int
}

// writePreview prints the first rows of the master table and a non-null
// count per column
func writePreview(w io.Writer, master []gtfs.MasterTrip) {
	head := master
	if len(head) > previewRows {
		head = head[:previewRows]
	}

	fmt.Fprintln(w, "Preview of master trips (trips with route details and scheduled duration):")
	pretty.Fprintf(w, "%# v\n", head)

	fmt.Fprintf(w, "\nMaster trips: %d entries\n", len(master))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Column\tNon-Null Count\tType")
	for _, c := range describeMaster(master) {
		fmt.Fprintf(tw, "%s\t%d non-null\t%s\n", c.name, c.nonNull, c.kind)
	}
	tw.Flush()
}

func describeMaster(master []gtfs.MasterTrip) []columnInfo {
	columns := []columnInfo{
		{name: "route_id", kind: "text"},
		{name: "service_id", kind: "text"},
		{name: "trip_id", kind: "text"},
		{name: "trip_headsign", kind: "text"},
		{name: "direction_id", kind: "integer"},
		{name: "shape_id", kind: "text"},
		{name: "scheduled_duration_minutes", kind: "real"},
		{name: "route_long_name", kind: "text"},
		{name: "route_short_name", kind: "text"},
		{name: "route_type", kind: "text"},
	}

	for _, m := range master {
		present := []bool{
			m.RouteID != "",
			m.ServiceID != "",
			m.TripID != "",
			m.TripHeadsign != "",
			m.DirectionID.Valid,
			m.ShapeID != "",
			m.ScheduledDurationMinutes.Valid,
			m.RouteLongName != "",
			m.RouteShortName != "",
			m.RouteType != "",
		}
		for i, ok := range present {
			if ok {
				columns[i].nonNull++
			}
		}
	}
	return columns
}
