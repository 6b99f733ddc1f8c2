// Package db implements the connection collaborator over pgx's
// database/sql driver: execute a SQL string with positional parameters,
// get back rows keyed by column name or an affected-row count.
//
// The pool serializes statement execution per connection; concurrent
// queries use distinct pooled connections. Cancellation and timeouts ride
// on the context. Driver failures are returned to the caller unchanged —
// no retries at this layer.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // register the pgx driver
	"github.com/leapstack-labs/pgmodel/pkg/core"
)

// DB is a Postgres connection pool implementing core.Conn.
type DB struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ core.Conn = (*DB)(nil)

// Startup opens the pool, verifies connectivity with a ping, and applies
// pool sizing. If logger is nil, a discard logger is used.
func Startup(ctx context.Context, cfg Config, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	logger.Debug("connecting to postgres",
		slog.String("host", cfg.Host), slog.String("database", cfg.Database))

	sqldb, err := sql.Open("pgx", cfg.dsn())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}
	if cfg.MaxConns > 0 {
		sqldb.SetMaxOpenConns(cfg.MaxConns)
		sqldb.SetMaxIdleConns(cfg.MaxConns)
	}
	if err := sqldb.PingContext(ctx); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return &DB{db: sqldb, logger: logger}, nil
}

// Open wraps an existing pool, e.g. one backed by a mock in tests. If
// logger is nil, a discard logger is used.
func Open(sqldb *sql.DB, logger *slog.Logger) *DB {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DB{db: sqldb, logger: logger}
}

// Shutdown closes the pool.
func (d *DB) Shutdown() error {
	if d.db == nil {
		return nil
	}
	d.logger.Debug("closing database connection")
	return d.db.Close()
}

// Query executes sql and returns every row as a map keyed by column
// name. Driver errors come back unwrapped so callers can match them.
func (d *DB) Query(ctx context.Context, sqlStr string, args ...any) ([]core.Row, error) {
	d.logger.Debug("query", slog.String("sql", sqlStr), slog.Int("params", len(args)))

	rows, err := d.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []core.Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(core.Row, len(cols))
		for i, c := range cols {
			row[c] = values[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Exec executes sql and returns the affected row count.
func (d *DB) Exec(ctx context.Context, sqlStr string, args ...any) (int64, error) {
	d.logger.Debug("exec", slog.String("sql", sqlStr), slog.Int("params", len(args)))

	res, err := d.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
