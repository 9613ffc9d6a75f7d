package report

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mini-rodalies-3d/transit-analytics/internal/static/gtfs"
)

func arrival(tripID string, seconds int) gtfs.CleanStopTime {
	return gtfs.CleanStopTime{TripID: tripID, ArrivalTimeSeconds: gtfs.NewNullInt(seconds)}
}

func TestHourlyActivity(t *testing.T) {
	stopTimes := []gtfs.CleanStopTime{
		arrival("T1", 8*3600+15*60),
		arrival("T1", 8*3600+45*60),
		arrival("T2", 9*3600+10*60),
		arrival("T2", 25*3600+5*60),
		arrival("", 10*3600),
		{TripID: "T3"},
		arrival("T4", -60),
	}

	assert.Equal(t, []HourCount{
		{Hour: 1, TotalStops: 1},
		{Hour: 8, TotalStops: 2},
		{Hour: 9, TotalStops: 1},
		{Hour: 10, TotalStops: 0},
		{Hour: 23, TotalStops: 1},
	}, HourlyActivity(stopTimes))
}

func TestFloorDivMod(t *testing.T) {
	assert.Equal(t, 2, floorDiv(7, 3))
	assert.Equal(t, -1, floorDiv(-60, 3600))
	assert.Equal(t, 23, floorMod(-1, 24))
	assert.Equal(t, 1, floorMod(25, 24))
}

func TestRouteTypeCounts(t *testing.T) {
	routes := []gtfs.Route{
		{RouteType: "3"}, {RouteType: "1"}, {RouteType: "3"}, {RouteType: "0"}, {}, {RouteType: "1"}, {RouteType: "3"},
	}

	assert.Equal(t, []RouteTypeCount{
		{RouteType: "3", Count: 3},
		{RouteType: "1", Count: 2},
		{RouteType: "0", Count: 1},
	}, RouteTypeCounts(routes))
}

func TestLabelingIsIdempotent(t *testing.T) {
	routes := []gtfs.Route{
		{RouteID: "R1", RouteType: "3"},
		{RouteID: "R2", RouteType: "1"},
		{RouteID: "R3", RouteType: "12"},
	}
	master := []gtfs.MasterTrip{
		{RouteID: "R1", TripID: "T1"},
		{RouteID: "R2", TripID: "T2"},
		{RouteID: "R3", TripID: "T3"},
		{RouteID: "R9", TripID: "T9"},
	}

	LabelRoutes(routes)
	LabelMasterTrips(master, routes)

	want := []string{"Bus", "Subway/Metro", gtfs.OtherRouteType, ""}
	for i, m := range master {
		assert.Equal(t, want[i], m.RouteTypeName, m.TripID)
	}

	routesBefore := append([]gtfs.Route(nil), routes...)
	masterBefore := append([]gtfs.MasterTrip(nil), master...)

	LabelRoutes(routes)
	LabelMasterTrips(master, routes)
	assert.Equal(t, routesBefore, routes)
	assert.Equal(t, masterBefore, master)

	// a relabeled route does not overwrite a label already on a master row
	routes[0].RouteTypeName = "Changed"
	LabelMasterTrips(master, routes)
	assert.Equal(t, "Bus", master[0].RouteTypeName)

	assert.Equal(t, []RouteTypeLabel{
		{RouteType: "3", RouteTypeName: "Changed"},
		{RouteType: "1", RouteTypeName: "Subway/Metro"},
		{RouteType: "12", RouteTypeName: gtfs.OtherRouteType},
	}, RouteTypeLabels(routes))
}

func TestAverageDurationByType(t *testing.T) {
	master := []gtfs.MasterTrip{
		{RouteTypeName: "Bus", ScheduledDurationMinutes: gtfs.NewNullFloat(30)},
		{RouteTypeName: "Bus", ScheduledDurationMinutes: gtfs.NewNullFloat(40)},
		{RouteTypeName: "Bus"},
		{RouteTypeName: "Subway/Metro", ScheduledDurationMinutes: gtfs.NewNullFloat(12.5)},
		{RouteTypeName: "Ferry"},
		{ScheduledDurationMinutes: gtfs.NewNullFloat(99)},
	}

	got := AverageDurationByType(master)

	assert.Equal(t, []TypeDuration{
		{RouteTypeName: "Bus", MeanDurationMinutes: gtfs.NewNullFloat(35), StdDevDurationMinutes: gtfs.NewNullFloat(math.Sqrt(50)), TripsWithDuration: 2},
		{RouteTypeName: "Ferry"},
		{RouteTypeName: "Subway/Metro", MeanDurationMinutes: gtfs.NewNullFloat(12.5), TripsWithDuration: 1},
	}, got)
}

func TestBusiestRoutes(t *testing.T) {
	var master []gtfs.MasterTrip
	add := func(routeID, name string, trips int) {
		for i := 0; i < trips; i++ {
			master = append(master, gtfs.MasterTrip{RouteID: routeID, RouteLongName: name, TripID: fmt.Sprintf("%s-%d", routeID, i)})
		}
	}
	add("R3", "Gamma", 2)
	add("R1", "Alpha", 2)
	add("R2", "Beta", 5)
	add("R4", "", 9)
	master = append(master, gtfs.MasterTrip{RouteID: "R5", RouteLongName: "Empty"})

	assert.Equal(t, []RouteCount{
		{RouteID: "R2", RouteLongName: "Beta", TotalTrips: 5},
		{RouteID: "R1", RouteLongName: "Alpha", TotalTrips: 2},
		{RouteID: "R3", RouteLongName: "Gamma", TotalTrips: 2},
		{RouteID: "R5", RouteLongName: "Empty", TotalTrips: 0},
	}, BusiestRoutes(master, 10))

	assert.Len(t, BusiestRoutes(master, 2), 2)
}

func TestBusiestRoutesTruncatesToN(t *testing.T) {
	var master []gtfs.MasterTrip
	for r := 0; r < 15; r++ {
		for i := 0; i <= r; i++ {
			master = append(master, gtfs.MasterTrip{
				RouteID:       fmt.Sprintf("R%02d", r),
				RouteLongName: "Line",
				TripID:        fmt.Sprintf("T%d-%d", r, i),
			})
		}
	}

	got := BusiestRoutes(master, 10)
	require.Len(t, got, 10)
	for i := 1; i < len(got); i++ {
		assert.Greater(t, got[i-1].TotalTrips, got[i].TotalTrips)
	}
	assert.Equal(t, "R14", got[0].RouteID)
}

func TestMostActiveStops(t *testing.T) {
	stops := []gtfs.Stop{
		{StopID: "S1", StopName: "Central"},
		{StopID: "S2", StopName: "Park"},
		{StopID: "S3", StopName: "Harbour"},
		{StopID: "S4"},
	}
	stopTimes := []gtfs.CleanStopTime{
		{TripID: "T1", StopID: "S2"},
		{TripID: "T1", StopID: "S1"},
		{TripID: "T2", StopID: "S2"},
		{TripID: "T2", StopID: "S1"},
		{TripID: "T2", StopID: "S3"},
		{TripID: "T3", StopID: "S3"},
		{TripID: "T3", StopID: "S4"},
		{TripID: "T3", StopID: "S9"},
	}

	assert.Equal(t, []StopCount{
		{StopID: "S1", StopName: "Central", TotalStopVisits: 2},
		{StopID: "S2", StopName: "Park", TotalStopVisits: 2},
		{StopID: "S3", StopName: "Harbour", TotalStopVisits: 2},
	}, MostActiveStops(stopTimes, stops, 10))

	assert.Equal(t, []StopCount{
		{StopID: "S1", StopName: "Central", TotalStopVisits: 2},
	}, MostActiveStops(stopTimes, stops, 1))
}
