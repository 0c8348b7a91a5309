package sqlconn

import (
	"context"
	"database/sql"

	"github.com/koustreak/duckwire/internal/database"
	"github.com/koustreak/duckwire/internal/errs"
)

// cursor buffers the whole result set on Execute, so RowCount is exact
// and the underlying *sql.Rows never outlives the call.
type cursor struct {
	db     *sql.DB
	rows   []database.Row
	pos    int
	closed bool
}

func (c *cursor) Execute(ctx context.Context, query string, params ...any) error {
	if c.closed {
		return errs.New(errs.ErrKindInvalidInput, "cursor is closed")
	}

	rows, err := c.db.QueryContext(ctx, query, params...)
	if err != nil {
		return mapError(err, "execute failed")
	}
	defer func() { _ = rows.Close() }()

	buffered, err := scanAll(rows)
	if err != nil {
		return err
	}
	c.rows = buffered
	c.pos = 0
	return nil
}

func (c *cursor) FetchAll() ([]database.Row, error) {
	if c.closed {
		return nil, errs.New(errs.ErrKindInvalidInput, "cursor is closed")
	}
	out := c.rows[c.pos:]
	c.pos = len(c.rows)
	return out, nil
}

func (c *cursor) FetchOne() (database.Row, error) {
	if c.closed {
		return nil, errs.New(errs.ErrKindInvalidInput, "cursor is closed")
	}
	if c.pos >= len(c.rows) {
		return nil, nil
	}
	row := c.rows[c.pos]
	c.pos++
	return row, nil
}

func (c *cursor) RowCount() int {
	return len(c.rows)
}

func (c *cursor) Close() error {
	c.closed = true
	c.rows = nil
	return nil
}

// scanAll reads every row into driver-native values.
// The returned slice is always non-nil.
func scanAll(rows *sql.Rows) ([]database.Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, mapError(err, "failed to read column names")
	}

	result := make([]database.Row, 0)
	for rows.Next() {
		dest := make([]any, len(columns))
		destPtrs := make([]any, len(columns))
		for i := range dest {
			destPtrs[i] = &dest[i]
		}

		if err := rows.Scan(destPtrs...); err != nil {
			return nil, mapError(err, "failed to scan row")
		}
		result = append(result, database.Row(dest))
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error during row iteration")
	}
	return result, nil
}
