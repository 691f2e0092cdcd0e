// Package storage persists the station dataset in SQLite or PostgreSQL.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Common errors
var (
	ErrNotFound      = errors.New("record not found")
	ErrUnknownDriver = errors.New("unknown database driver")
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DB represents a database connection interface.
type DB interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Open connects to the database and verifies it answers a ping, retrying
// with DefaultRetryConfig while the server comes up.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	return OpenWithRetry(ctx, driver, dsn, DefaultRetryConfig())
}

// OpenWithRetry is Open with an explicit retry policy.
func OpenWithRetry(ctx context.Context, driver, dsn string, retry RetryConfig) (*sql.DB, error) {
	var sqlDriver string
	switch driver {
	case DriverSQLite:
		sqlDriver = "sqlite3"
	case DriverPostgres:
		sqlDriver = "postgres"
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	err = retryWithBackoff(ctx, retry, func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return db.PingContext(pingCtx)
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, nil
}

const schema = `
	CREATE TABLE IF NOT EXISTS stations (
		uri            TEXT PRIMARY KEY,
		name           TEXT NOT NULL,
		alt_nl         TEXT NOT NULL DEFAULT '',
		alt_fr         TEXT NOT NULL DEFAULT '',
		alt_de         TEXT NOT NULL DEFAULT '',
		alt_en         TEXT NOT NULL DEFAULT '',
		country_code   TEXT NOT NULL DEFAULT '',
		longitude      DOUBLE PRECISION NOT NULL DEFAULT 0,
		latitude       DOUBLE PRECISION NOT NULL DEFAULT 0,
		avg_stop_times DOUBLE PRECISION NOT NULL DEFAULT 0,
		transfer_time  INTEGER NOT NULL DEFAULT 0,
		taf_tap_code   TEXT NOT NULL DEFAULT '',
		telegraph_code TEXT NOT NULL DEFAULT ''
	)
`

// Migrate creates the stations table if it does not exist.
func Migrate(ctx context.Context, db DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create stations table: %w", err)
	}
	return nil
}
