package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"

	_ "modernc.org/sqlite"
)

// ErrTableNotFound is returned when a requested table does not exist in the store
var ErrTableNotFound = errors.New("table not found")

// DB wraps the SQLite connection holding the feed tables
type DB struct {
	conn *sql.DB
	path string
}

// Connect opens (or creates) the SQLite database file at dbPath
func Connect(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps the load transaction, its savepoints and
	// PRAGMA queries on the same SQLite handle.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	// Test connection
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("Connected to SQLite database")
	return &DB{conn: conn, path: dbPath}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	log.Debug().Str("path", db.path).Msg("Closing SQLite database")
	return db.conn.Close()
}

// Conn returns the underlying database connection
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// tableColumns returns the column names of table in declaration order.
// A table that does not exist has no columns.
func tableColumns(ctx context.Context, q querier, table string) ([]string, error) {
	rows, err := q.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(table)))
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column of %s: %w", table, err)
		}
		columns = append(columns, name)
	}

	return columns, rows.Err()
}

// TableColumns returns the column names of table, or ErrTableNotFound
func (db *DB) TableColumns(ctx context.Context, table string) ([]string, error) {
	columns, err := tableColumns(ctx, db.conn, table)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%s: %w", table, ErrTableNotFound)
	}
	return columns, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func containsAll(columns []string, want ...string) bool {
	for _, w := range want {
		if !slices.Contains(columns, w) {
			return false
		}
	}
	return true
}
