package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mini-rodalies-3d/transit-analytics/internal/static/gtfs"
)

// ReadTable reads the requested columns of table, in insertion order, as
// text cells. Requested columns the table lacks read as missing values and
// columns that were not requested are not read at all.
func (db *DB) ReadTable(ctx context.Context, table string, columns []string) (*gtfs.Table, error) {
	present, err := db.TableColumns(ctx, table)
	if err != nil {
		return nil, err
	}

	selects := make([]string, len(columns))
	for i, c := range columns {
		if containsAll(present, c) {
			selects[i] = quoteIdent(c)
		} else {
			selects[i] = "NULL AS " + quoteIdent(c)
		}
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY rowid", strings.Join(selects, ", "), quoteIdent(table))
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	result := &gtfs.Table{Columns: append([]string(nil), columns...)}
	values := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		row := make([]*string, len(columns))
		for i, v := range values {
			if v.Valid {
				s := v.String
				row[i] = &s
			}
		}
		result.Rows = append(result.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", table, err)
	}
	return result, nil
}

// ReadFeed loads the four core tables into typed records. Any table that is
// missing or unreadable fails the whole read.
func (db *DB) ReadFeed(ctx context.Context) (*gtfs.Feed, error) {
	routes, err := db.ReadTable(ctx, "routes", gtfs.RouteColumns)
	if err != nil {
		return nil, err
	}
	stops, err := db.ReadTable(ctx, "stops", gtfs.StopColumns)
	if err != nil {
		return nil, err
	}
	trips, err := db.ReadTable(ctx, "trips", gtfs.TripColumns)
	if err != nil {
		return nil, err
	}
	stopTimes, err := db.ReadTable(ctx, "stop_times", gtfs.StopTimeColumns)
	if err != nil {
		return nil, err
	}

	return &gtfs.Feed{
		Routes:    routes.Routes(),
		Stops:     stops.Stops(),
		Trips:     trips.Trips(),
		StopTimes: stopTimes.StopTimes(),
	}, nil
}
