package gtfs

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Table is a feed file read with every column as text. A nil cell is a
// missing value.
type Table struct {
	Columns []string
	Rows    [][]*string
}

// ReadTable reads a GTFS text file from disk
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return ParseTable(f)
}

// ParseTable reads delimited text with a header row. Column names are
// normalized, empty cells become missing values and short rows are padded.
func ParseTable(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	table := &Table{Columns: make([]string, len(header))}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		table.Columns[i] = NormalizeColumnName(h)
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if len(record) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d: expected %d fields, saw %d", line, len(header), len(record))
		}

		row := make([]*string, len(header))
		for i, value := range record {
			if value == "" {
				continue
			}
			v := value
			row[i] = &v
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// NormalizeColumnName lowercases a header and replaces spaces with underscores
func NormalizeColumnName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

func makeIndex(columns []string) map[string]int {
	idx := make(map[string]int)
	for i, c := range columns {
		if _, dup := idx[c]; !dup {
			idx[c] = i
		}
	}
	return idx
}

func getField(record []*string, idx map[string]int, field string) *string {
	if i, ok := idx[field]; ok && i < len(record) {
		return record[i]
	}
	return nil
}

func getString(record []*string, idx map[string]int, field string) string {
	if v := getField(record, idx, field); v != nil {
		return *v
	}
	return ""
}

// Routes converts the table's rows into Route records
func (t *Table) Routes() []Route {
	idx := makeIndex(t.Columns)
	routes := make([]Route, 0, len(t.Rows))
	for _, record := range t.Rows {
		routes = append(routes, Route{
			RouteID:        getString(record, idx, "route_id"),
			AgencyID:       getString(record, idx, "agency_id"),
			RouteShortName: getString(record, idx, "route_short_name"),
			RouteLongName:  getString(record, idx, "route_long_name"),
			RouteDesc:      getString(record, idx, "route_desc"),
			RouteType:      getString(record, idx, "route_type"),
		})
	}
	return routes
}

// Stops converts the table's rows into Stop records
func (t *Table) Stops() []Stop {
	idx := makeIndex(t.Columns)
	stops := make([]Stop, 0, len(t.Rows))
	for _, record := range t.Rows {
		stops = append(stops, Stop{
			StopID:   getString(record, idx, "stop_id"),
			StopCode: getString(record, idx, "stop_code"),
			StopName: getString(record, idx, "stop_name"),
			StopLat:  ParseNullFloat(getString(record, idx, "stop_lat")),
			StopLon:  ParseNullFloat(getString(record, idx, "stop_lon")),
		})
	}
	return stops
}

// Trips converts the table's rows into Trip records
func (t *Table) Trips() []Trip {
	idx := makeIndex(t.Columns)
	trips := make([]Trip, 0, len(t.Rows))
	for _, record := range t.Rows {
		trips = append(trips, Trip{
			RouteID:      getString(record, idx, "route_id"),
			ServiceID:    getString(record, idx, "service_id"),
			TripID:       getString(record, idx, "trip_id"),
			TripHeadsign: getString(record, idx, "trip_headsign"),
			DirectionID:  ParseNullInt(getString(record, idx, "direction_id")),
			ShapeID:      getString(record, idx, "shape_id"),
		})
	}
	return trips
}

// StopTimes converts the table's rows into StopTime records
func (t *Table) StopTimes() []StopTime {
	idx := makeIndex(t.Columns)
	stopTimes := make([]StopTime, 0, len(t.Rows))
	for _, record := range t.Rows {
		stopTimes = append(stopTimes, StopTime{
			TripID:        getString(record, idx, "trip_id"),
			ArrivalTime:   getField(record, idx, "arrival_time"),
			DepartureTime: getField(record, idx, "departure_time"),
			StopID:        getString(record, idx, "stop_id"),
			StopSequence:  ParseNullInt(getString(record, idx, "stop_sequence")),
		})
	}
	return stopTimes
}
