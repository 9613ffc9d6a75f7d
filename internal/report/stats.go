package report

import (
	"cmp"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/mini-rodalies-3d/transit-analytics/internal/metrics"
	"github.com/mini-rodalies-3d/transit-analytics/internal/static/gtfs"
)

// HourCount is the number of stop visits arriving within one hour of the day
type HourCount struct {
	Hour       int
	TotalStops int
}

// HourlyActivity buckets stop times by arrival hour, floor(seconds/3600)
// mod 24, so post-midnight times such as 25:05:00 land in hour 1. Rows
// without arrival seconds are left out. Sorted by hour.
func HourlyActivity(stopTimes []gtfs.CleanStopTime) []HourCount {
	counts := make(map[int]int)
	for _, st := range stopTimes {
		if !st.ArrivalTimeSeconds.Valid {
			continue
		}
		hour := floorMod(floorDiv(st.ArrivalTimeSeconds.Int, 3600), 24)
		counts[hour] += countTrip(st.TripID)
	}

	hours := maps.Keys(counts)
	slices.Sort(hours)

	result := make([]HourCount, 0, len(hours))
	for _, h := range hours {
		result = append(result, HourCount{Hour: h, TotalStops: counts[h]})
	}
	return result
}

// countTrip is 1 for rows that carry a trip id. Rows without one still open
// their group but add nothing to it.
func countTrip(tripID string) int {
	if tripID == "" {
		return 0
	}
	return 1
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// RouteTypeCount is how many routes carry one raw route_type code
type RouteTypeCount struct {
	RouteType string
	Count     int
}

// RouteTypeCounts counts routes per raw route_type, most common first.
// Routes without a code are not counted; ties keep first-seen order.
func RouteTypeCounts(routes []gtfs.Route) []RouteTypeCount {
	var result []RouteTypeCount
	index := make(map[string]int)
	for _, r := range routes {
		if r.RouteType == "" {
			continue
		}
		i, ok := index[r.RouteType]
		if !ok {
			i = len(result)
			index[r.RouteType] = i
			result = append(result, RouteTypeCount{RouteType: r.RouteType})
		}
		result[i].Count++
	}

	slices.SortStableFunc(result, func(a, b RouteTypeCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return result
}

// LabelRoutes sets the route type label on every route
func LabelRoutes(routes []gtfs.Route) {
	for i := range routes {
		routes[i].RouteTypeName = gtfs.RouteTypeName(routes[i].RouteType)
	}
}

// RouteTypeLabel pairs a raw route_type code with its label
type RouteTypeLabel struct {
	RouteType     string
	RouteTypeName string
}

// RouteTypeLabels lists each distinct code of labeled routes with its label,
// in first-seen order
func RouteTypeLabels(routes []gtfs.Route) []RouteTypeLabel {
	var result []RouteTypeLabel
	seen := make(map[string]bool)
	for _, r := range routes {
		if r.RouteType == "" || seen[r.RouteType] {
			continue
		}
		seen[r.RouteType] = true
		result = append(result, RouteTypeLabel{RouteType: r.RouteType, RouteTypeName: r.RouteTypeName})
	}
	return result
}

// LabelMasterTrips copies route type labels onto master rows by route id.
// Rows that already carry a label are left untouched, so applying it twice
// changes nothing. Rows whose route is unknown stay unlabeled.
func LabelMasterTrips(master []gtfs.MasterTrip, routes []gtfs.Route) {
	labels := make(map[string]string, len(routes))
	for _, r := range routes {
		if _, seen := labels[r.RouteID]; !seen && r.RouteID != "" {
			labels[r.RouteID] = r.RouteTypeName
		}
	}

	for i := range master {
		if master[i].RouteTypeName != "" {
			continue
		}
		master[i].RouteTypeName = labels[master[i].RouteID]
	}
}

// TypeDuration is the average scheduled duration of trips of one route type
type TypeDuration struct {
	RouteTypeName         string
	MeanDurationMinutes   gtfs.NullFloat
	StdDevDurationMinutes gtfs.NullFloat
	TripsWithDuration     int
}

// AverageDurationByType averages scheduled durations per route type label,
// one row per label in label order. Null durations are skipped; a label with
// none at all has a null mean, and fewer than two give a null deviation.
// Unlabeled rows are not grouped.
func AverageDurationByType(master []gtfs.MasterTrip) []TypeDuration {
	stats := make(map[string]*metrics.WelfordState)
	for _, m := range master {
		if m.RouteTypeName == "" {
			continue
		}
		w, ok := stats[m.RouteTypeName]
		if !ok {
			w = &metrics.WelfordState{}
			stats[m.RouteTypeName] = w
		}
		if m.ScheduledDurationMinutes.Valid {
			w.Update(m.ScheduledDurationMinutes.Float)
		}
	}

	labels := maps.Keys(stats)
	slices.Sort(labels)

	result := make([]TypeDuration, 0, len(labels))
	for _, label := range labels {
		w := stats[label]
		result = append(result, TypeDuration{
			RouteTypeName:       label,
			MeanDurationMinutes:   gtfs.NewNullFloat(w.GetMean()),
			StdDevDurationMinutes: gtfs.NewNullFloat(w.GetStdDev()),
			TripsWithDuration:     w.GetCount(),
		})
	}
	return result
}

// RouteCount is the number of trips on one route
type RouteCount struct {
	RouteID       string
	RouteLongName string
	TotalTrips    int
}

type routeKey struct {
	id, name string
}

// BusiestRoutes counts trips per (route id, long name) and returns the top n
// by count. Rows missing either key are left out. Groups start in key order
// and the sort is stable, so ties keep that order.
func BusiestRoutes(master []gtfs.MasterTrip, n int) []RouteCount {
	counts := make(map[routeKey]int)
	for _, m := range master {
		if m.RouteID == "" || m.RouteLongName == "" {
			continue
		}
		counts[routeKey{m.RouteID, m.RouteLongName}] += countTrip(m.TripID)
	}

	keys := maps.Keys(counts)
	slices.SortFunc(keys, func(a, b routeKey) int {
		if c := cmp.Compare(a.id, b.id); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	})

	result := make([]RouteCount, 0, len(keys))
	for _, k := range keys {
		result = append(result, RouteCount{RouteID: k.id, RouteLongName: k.name, TotalTrips: counts[k]})
	}
	slices.SortStableFunc(result, func(a, b RouteCount) int {
		return cmp.Compare(b.TotalTrips, a.TotalTrips)
	})
	return head(result, n)
}

// StopCount is the number of scheduled visits to one stop
type StopCount struct {
	StopID          string
	StopName        string
	TotalStopVisits int
}

type stopKey struct {
	id, name string
}

// MostActiveStops joins stop names onto stop times by stop id, counts visits
// per (stop id, name) and returns the top n with the same ordering rules as
// BusiestRoutes. Visits to stops with no known name are left out.
func MostActiveStops(stopTimes []gtfs.CleanStopTime, stops []gtfs.Stop, n int) []StopCount {
	names := make(map[string][]string)
	for _, s := range stops {
		if s.StopID == "" || s.StopName == "" {
			continue
		}
		names[s.StopID] = append(names[s.StopID], s.StopName)
	}

	counts := make(map[stopKey]int)
	for _, st := range stopTimes {
		for _, name := range names[st.StopID] {
			counts[stopKey{st.StopID, name}] += countTrip(st.TripID)
		}
	}

	keys := maps.Keys(counts)
	slices.SortFunc(keys, func(a, b stopKey) int {
		if c := cmp.Compare(a.id, b.id); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	})

	result := make([]StopCount, 0, len(keys))
	for _, k := range keys {
		result = append(result, StopCount{StopID: k.id, StopName: k.name, TotalStopVisits: counts[k]})
	}
	slices.SortStableFunc(result, func(a, b StopCount) int {
		return cmp.Compare(b.TotalStopVisits, a.TotalStopVisits)
	})
	return head(result, n)
}

func head[T any](s []T, n int) []T {
	if n >= 0 && len(s) > n {
		return s[:n]
	}
	return s
}
