package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode"

	"github.com/mini-rodalies-3d/transit-analytics/internal/static/gtfs"
)

// Load is a write transaction over the feed tables. Every table replacement
// and column conversion runs inside its own savepoint so a failure only
// discards that step; nothing is visible until Commit.
type Load struct {
	tx *sql.Tx
}

// BeginLoad starts the single transaction used by a loader run
func (db *DB) BeginLoad(ctx context.Context) (*Load, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &Load{tx: tx}, nil
}

// Commit makes all successful steps durable
func (l *Load) Commit() error {
	return l.tx.Commit()
}

// Rollback abandons the load. Safe to call after Commit.
func (l *Load) Rollback() error {
	return l.tx.Rollback()
}

func (l *Load) savepoint(ctx context.Context, name string, fn func() error) error {
	if _, err := l.tx.ExecContext(ctx, "SAVEPOINT "+name); err != nil {
		return fmt.Errorf("failed to create savepoint %s: %w", name, err)
	}

	if err := fn(); err != nil {
		if _, rbErr := l.tx.ExecContext(ctx, "ROLLBACK TO "+name); rbErr != nil {
			return fmt.Errorf("%w (rollback to %s failed: %v)", err, name, rbErr)
		}
		_, _ = l.tx.ExecContext(ctx, "RELEASE "+name)
		return err
	}

	if _, err := l.tx.ExecContext(ctx, "RELEASE "+name); err != nil {
		return fmt.Errorf("failed to release savepoint %s: %w", name, err)
	}
	return nil
}

// ReplaceTable drops name and recreates it from table with every column as TEXT
func (l *Load) ReplaceTable(ctx context.Context, name string, table *gtfs.Table) error {
	if len(table.Columns) == 0 {
		return fmt.Errorf("table %s has no columns", name)
	}

	return l.savepoint(ctx, "replace_table", func() error {
		if _, err := l.tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(name)); err != nil {
			return fmt.Errorf("failed to drop %s: %w", name, err)
		}

		defs := make([]string, len(table.Columns))
		cols := make([]string, len(table.Columns))
		for i, c := range table.Columns {
			cols[i] = quoteIdent(c)
			defs[i] = cols[i] + " TEXT"
		}

		createSQL := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(name), strings.Join(defs, ", "))
		if _, err := l.tx.ExecContext(ctx, createSQL); err != nil {
			return fmt.Errorf("failed to create %s: %w", name, err)
		}

		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
		stmt, err := l.tx.PrepareContext(ctx, fmt.Sprintf(
			"INSERT INTO %s (%s) VALUES (%s)",
			quoteIdent(name), strings.Join(cols, ", "), placeholders,
		))
		if err != nil {
			return fmt.Errorf("failed to prepare insert for %s: %w", name, err)
		}
		defer stmt.Close()

		args := make([]any, len(cols))
		for n, row := range table.Rows {
			for i := range args {
				args[i] = nil
				if i < len(row) && row[i] != nil {
					args[i] = *row[i]
				}
			}
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return fmt.Errorf("failed to insert row %d into %s: %w", n+1, name, err)
			}
		}

		return nil
	})
}

// ConvertStopCoordinates retypes stops.stop_lat and stops.stop_lon to REAL.
// SQLite cannot change a column's type in place, so each column is copied
// into a new REAL column, dropped and the copy renamed. It reports false
// when the stops table lacks either column.
func (l *Load) ConvertStopCoordinates(ctx context.Context) (bool, error) {
	columns, err := tableColumns(ctx, l.tx, "stops")
	if err != nil {
		return false, err
	}
	if !containsAll(columns, "stop_lat", "stop_lon") {
		return false, nil
	}

	err = l.savepoint(ctx, "convert_stop_coordinates", func() error {
		return l.execAll(ctx,
			`ALTER TABLE stops ADD COLUMN stop_lat_real REAL`,
			`ALTER TABLE stops ADD COLUMN stop_lon_real REAL`,
			`UPDATE stops SET stop_lat_real = CAST(stop_lat AS REAL), stop_lon_real = CAST(stop_lon AS REAL)`,
			`ALTER TABLE stops DROP COLUMN stop_lat`,
			`ALTER TABLE stops DROP COLUMN stop_lon`,
			`ALTER TABLE stops RENAME COLUMN stop_lat_real TO stop_lat`,
			`ALTER TABLE stops RENAME COLUMN stop_lon_real TO stop_lon`,
		)
	})
	if err != nil {
		return false, fmt.Errorf("failed to convert stop coordinates: %w", err)
	}
	return true, nil
}

// DirectionConversion is the outcome of ConvertDirectionID
type DirectionConversion int

const (
	DirectionConverted DirectionConversion = iota
	DirectionColumnMissing
	DirectionNotNumeric
)

// ConvertDirectionID retypes trips.direction_id to INTEGER, but only when
// every distinct non-null value is numeric text.
func (l *Load) ConvertDirectionID(ctx context.Context) (DirectionConversion, error) {
	columns, err := tableColumns(ctx, l.tx, "trips")
	if err != nil {
		return DirectionColumnMissing, err
	}
	if !containsAll(columns, "direction_id") {
		return DirectionColumnMissing, nil
	}

	rows, err := l.tx.QueryContext(ctx, `SELECT DISTINCT direction_id FROM trips WHERE direction_id IS NOT NULL`)
	if err != nil {
		return DirectionNotNumeric, fmt.Errorf("failed to read direction_id values: %w", err)
	}
	numeric := true
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			rows.Close()
			return DirectionNotNumeric, fmt.Errorf("failed to scan direction_id: %w", err)
		}
		if !isNumeric(v) {
			numeric = false
		}
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return DirectionNotNumeric, fmt.Errorf("failed to read direction_id values: %w", err)
	}
	if !numeric {
		return DirectionNotNumeric, nil
	}

	err = l.savepoint(ctx, "convert_direction_id", func() error {
		return l.execAll(ctx,
			`ALTER TABLE trips ADD COLUMN direction_id_int INTEGER`,
			`UPDATE trips SET direction_id_int = CAST(direction_id AS INTEGER)`,
			`ALTER TABLE trips DROP COLUMN direction_id`,
			`ALTER TABLE trips RENAME COLUMN direction_id_int TO direction_id`,
		)
	})
	if err != nil {
		return DirectionNotNumeric, fmt.Errorf("failed to convert direction_id: %w", err)
	}
	return DirectionConverted, nil
}

func (l *Load) execAll(ctx context.Context, statements ...string) error {
	for _, s := range statements {
		if _, err := l.tx.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("%s: %w", s, err)
		}
	}
	return nil
}

// isNumeric reports whether s is non-empty and made only of numeric characters
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}
