package gtfs

// Feed holds the four core GTFS tables as typed records
type Feed struct {
	Routes    []Route
	Stops     []Stop
	Trips     []Trip
	StopTimes []StopTime
}

// Columns read from the store for each core table. Anything else in the
// feed is dropped when records are built.
var (
	RouteColumns    = []string{"route_id", "agency_id", "route_short_name", "route_long_name", "route_desc", "route_type"}
	StopColumns     = []string{"stop_id", "stop_code", "stop_name", "stop_lat", "stop_lon"}
	TripColumns     = []string{"route_id", "service_id", "trip_id", "trip_headsign", "direction_id", "shape_id"}
	StopTimeColumns = []string{"trip_id", "arrival_time", "departure_time", "stop_id", "stop_sequence"}
)

// Route represents a route from routes.txt
type Route struct {
	RouteID        string `csv:"route_id"`
	AgencyID       string `csv:"agency_id"`
	RouteShortName string `csv:"route_short_name"`
	RouteLongName  string `csv:"route_long_name"`
	RouteDesc      string `csv:"route_desc"`
	RouteType      string `csv:"route_type"` // raw GTFS code, e.g. "3"
	RouteTypeName  string `csv:"-"`          // filled by the reporter
}

// Stop represents a stop from stops.txt
type Stop struct {
	StopID   string    `csv:"stop_id"`
	StopCode string    `csv:"stop_code"`
	StopName string    `csv:"stop_name"`
	StopLat  NullFloat `csv:"stop_lat"`
	StopLon  NullFloat `csv:"stop_lon"`
}

// Trip represents a trip from trips.txt
type Trip struct {
	RouteID      string  `csv:"route_id"`
	ServiceID    string  `csv:"service_id"`
	TripID       string  `csv:"trip_id"`
	TripHeadsign string  `csv:"trip_headsign"`
	DirectionID  NullInt `csv:"direction_id"`
	ShapeID      string  `csv:"shape_id"`
}

// StopTime represents a stop time from stop_times.txt, times still as text
type StopTime struct {
	TripID        string
	ArrivalTime   *string
	DepartureTime *string
	StopID        string
	StopSequence  NullInt
}

// CleanStopTime is a stop time with arrival/departure converted to seconds
// since midnight. The text time columns are not carried over.
type CleanStopTime struct {
	TripID               string  `csv:"trip_id"`
	StopID               string  `csv:"stop_id"`
	StopSequence         NullInt `csv:"stop_sequence"`
	ArrivalTimeSeconds   NullInt `csv:"arrival_time_seconds"`
	DepartureTimeSeconds NullInt `csv:"departure_time_seconds"`
}

// MasterTrip is one trip denormalized with its route and scheduled duration
type MasterTrip struct {
	RouteID                  string    `csv:"route_id"`
	ServiceID                string    `csv:"service_id"`
	TripID                   string    `csv:"trip_id"`
	TripHeadsign             string    `csv:"trip_headsign"`
	DirectionID              NullInt   `csv:"direction_id"`
	ShapeID                  string    `csv:"shape_id"`
	ScheduledDurationMinutes NullFloat `csv:"scheduled_duration_minutes"`
	RouteLongName            string    `csv:"route_long_name"`
	RouteShortName           string    `csv:"route_short_name"`
	RouteType                string    `csv:"route_type"`
	RouteTypeName            string    `csv:"-"`
}
