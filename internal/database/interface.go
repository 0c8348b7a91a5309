// Package database defines the connection capability the dialect consumes.
//
// The dialect never opens sockets or speaks the wire protocol itself. It
// talks to any client that can hand out cursors: the HTTP client of the
// remote DuckDB, or the database/sql adapter in package sqlconn.
package database

import "context"

// ConnectionClosedMsg is the text a client puts in an error when it
// operates on a connection that has already been closed. Disconnect
// detection looks for it in the error string.
const ConnectionClosedMsg = "connection is closed"

// Conn is a live connection able to open cursors.
type Conn interface {
	// Cursor opens a short-lived handle for executing one statement.
	Cursor(ctx context.Context) (Cursor, error)
}

// Cursor executes one statement and exposes its result set.
// Callers must always call Close, even when Execute or a fetch failed.
type Cursor interface {
	// Execute runs query with positional ("?") parameters.
	Execute(ctx context.Context, query string, params ...any) error

	// FetchAll returns every row not yet fetched.
	FetchAll() ([]Row, error)

	// FetchOne returns the next row, or nil when the result set is exhausted.
	FetchOne() (Row, error)

	// RowCount is the number of rows the last Execute produced.
	RowCount() int

	// Close releases the cursor.
	Close() error
}

// Row is one result row, values in select-list order.
type Row []any

// Opener opens a connection from resolved connect arguments.
type Opener func(ctx context.Context, args []any, kwargs map[string]any) (Conn, error)
