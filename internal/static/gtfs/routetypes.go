package gtfs

import "strings"

// OtherRouteType is the label for route_type codes outside the basic GTFS set
const OtherRouteType = "Other"

var routeTypeNames = map[string]string{
	"0": "Tram/Light Rail",
	"1": "Subway/Metro",
	"2": "Rail",
	"3": "Bus",
	"4": "Ferry",
	"5": "Cable Car",
	"6": "Gondola",
	"7": "Funicular",
}

// RouteTypeName maps a route_type code to its display label
func RouteTypeName(code string) string {
	if name, ok := routeTypeNames[strings.TrimSpace(code)]; ok {
		return name
	}
	return OtherRouteType
}
