package cleaner

import (
	"github.com/mini-rodalies-3d/transit-analytics/internal/static/gtfs"
)

// CleanStopTimes converts arrival and departure times to seconds since
// midnight. Malformed or missing times become null.
func CleanStopTimes(stopTimes []gtfs.StopTime) []gtfs.CleanStopTime {
	cleaned := make([]gtfs.CleanStopTime, 0, len(stopTimes))
	for _, st := range stopTimes {
		cleaned = append(cleaned, gtfs.CleanStopTime{
			TripID:               st.TripID,
			StopID:               st.StopID,
			StopSequence:         st.StopSequence,
			ArrivalTimeSeconds:   gtfs.ParseOptionalTime(st.ArrivalTime),
			DepartureTimeSeconds: gtfs.ParseOptionalTime(st.DepartureTime),
		})
	}
	return cleaned
}

type tripSpan struct {
	firstDeparture gtfs.NullInt
	lastArrival    gtfs.NullInt
}

// TripDurations returns the scheduled duration in minutes of every trip that
// has stop times: last arrival minus first departure. Nulls are skipped when
// taking the min and max. A trip whose end precedes its start, or with no
// usable times, maps to a null duration.
func TripDurations(stopTimes []gtfs.CleanStopTime) map[string]gtfs.NullFloat {
	spans := make(map[string]*tripSpan)
	for _, st := range stopTimes {
		if st.TripID == "" {
			continue
		}
		span, ok := spans[st.TripID]
		if !ok {
			span = &tripSpan{}
			spans[st.TripID] = span
		}
		if dep := st.DepartureTimeSeconds; dep.Valid {
			if !span.firstDeparture.Valid || dep.Int < span.firstDeparture.Int {
				span.firstDeparture = dep
			}
		}
		if arr := st.ArrivalTimeSeconds; arr.Valid {
			if !span.lastArrival.Valid || arr.Int > span.lastArrival.Int {
				span.lastArrival = arr
			}
		}
	}

	durations := make(map[string]gtfs.NullFloat, len(spans))
	for tripID, span := range spans {
		durations[tripID] = scheduledDuration(span)
	}
	return durations
}

func scheduledDuration(span *tripSpan) gtfs.NullFloat {
	if !span.firstDeparture.Valid || !span.lastArrival.Valid {
		return gtfs.NullFloat{}
	}
	seconds := span.lastArrival.Int - span.firstDeparture.Int
	if seconds < 0 {
		// negative spans are a data-quality flag, kept as missing
		return gtfs.NullFloat{}
	}
	return gtfs.NewNullFloat(float64(seconds) / 60)
}

// BuildMasterTrips left-joins durations and route details onto trips. Every
// trip yields exactly one row in input order; unmatched joins leave the
// fields empty. When route ids repeat the first route wins.
func BuildMasterTrips(trips []gtfs.Trip, routes []gtfs.Route, durations map[string]gtfs.NullFloat) []gtfs.MasterTrip {
	routeByID := make(map[string]gtfs.Route, len(routes))
	for _, r := range routes {
		if _, seen := routeByID[r.RouteID]; !seen {
			routeByID[r.RouteID] = r
		}
	}

	master := make([]gtfs.MasterTrip, 0, len(trips))
	for _, t := range trips {
		row := gtfs.MasterTrip{
			RouteID:                  t.RouteID,
			ServiceID:                t.ServiceID,
			TripID:                   t.TripID,
			TripHeadsign:             t.TripHeadsign,
			DirectionID:              t.DirectionID,
			ShapeID:                  t.ShapeID,
			ScheduledDurationMinutes: durations[t.TripID],
		}
		if r, ok := routeByID[t.RouteID]; ok && t.RouteID != "" {
			row.RouteLongName = r.RouteLongName
			row.RouteShortName = r.RouteShortName
			row.RouteType = r.RouteType
		}
		master = append(master, row)
	}
	return master
}
