// Package sqlconn adapts a database/sql driver to the database.Conn
// capability, so the dialect can run against any registered driver
// (the embedded DuckDB driver, or an HTTP client exposed as database/sql).
package sqlconn

import (
	"context"
	"database/sql"

	"github.com/koustreak/duckwire/internal/database"
	"github.com/koustreak/duckwire/internal/errs"
)

const (
	defaultMaxOpenConns = 4
	defaultMaxIdleConns = 2
)

// DB implements database.Conn on top of *sql.DB.
// It is safe for concurrent use; each cursor runs its own query.
type DB struct {
	db *sql.DB
}

// New opens a pool using cfg and verifies it with a ping.
func New(ctx context.Context, cfg *database.Config) (*DB, error) {
	if cfg == nil || cfg.Driver == "" {
		return nil, errs.New(errs.ErrKindInvalidInput, "database/sql driver name is required")
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindConnectionFailed, "invalid DSN", err)
	}

	maxOpen := cfg.MaxConns
	if maxOpen == 0 {
		maxOpen = defaultMaxOpenConns
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = defaultMaxIdleConns
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(cfg.MaxConnLifetime)
	db.SetConnMaxIdleTime(cfg.MaxConnIdleTime)

	d := &DB{db: db}

	pingCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}
	if err := d.Ping(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return d, nil
}

// Wrap adapts an already opened *sql.DB.
func Wrap(db *sql.DB) *DB {
	return &DB{db: db}
}

// Ping verifies the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return mapError(err, "ping failed")
	}
	return nil
}

// Close shuts down the pool.
func (d *DB) Close() error {
	return d.db.Close()
}

// Cursor opens a buffered cursor on the pool.
func (d *DB) Cursor(ctx context.Context) (database.Cursor, error) {
	if err := ctx.Err(); err != nil {
		return nil, mapError(err, "open cursor")
	}
	return &cursor{db: d.db}, nil
}

var _ database.Conn = (*DB)(nil)
