// Package sqlstore persists APOD records in SQLite or Postgres through sqlx.
// Queries are written with ? placeholders and rebound for the active driver.
package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"apod_fetcher/internal/config"
)

// Open connects to the configured database. SQLite is limited to a single
// connection so writers never contend for the file lock.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Driver, err)
	}

	if cfg.Driver == config.DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	return db, nil
}
