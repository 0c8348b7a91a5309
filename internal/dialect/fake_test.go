package dialect

import (
	"context"

	"github.com/koustreak/duckwire/internal/database"
)

// fakeConn is an in-memory database.Conn. It answers every query with
// results[query] (falling back to rows) and records each cursor it hands
// out.
type fakeConn struct {
	rows    []database.Row
	results map[string][]database.Row

	cursorErr error
	execErr   error
	fetchErr  error
	closeErr  error

	cursors []*fakeCursor
}

func (c *fakeConn) Cursor(context.Context) (database.Cursor, error) {
	if c.cursorErr != nil {
		return nil, c.cursorErr
	}
	cur := &fakeCursor{conn: c}
	c.cursors = append(c.cursors, cur)
	return cur, nil
}

// last returns the most recently opened cursor.
func (c *fakeConn) last() *fakeCursor {
	if len(c.cursors) == 0 {
		return nil
	}
	return c.cursors[len(c.cursors)-1]
}

func (c *fakeConn) allClosed() bool {
	for _, cur := range c.cursors {
		if !cur.closed {
			return false
		}
	}
	return true
}

type fakeCursor struct {
	conn   *fakeConn
	query  string
	params []any
	rows   []database.Row
	pos    int
	closed bool
}

func (c *fakeCursor) Execute(_ context.Context, query string, params ...any) error {
	c.query = query
	c.params = params
	if c.conn.execErr != nil {
		return c.conn.execErr
	}
	if rows, ok := c.conn.results[query]; ok {
		c.rows = rows
	} else {
		c.rows = c.conn.rows
	}
	c.pos = 0
	return nil
}

func (c *fakeCursor) FetchAll() ([]database.Row, error) {
	if c.conn.fetchErr != nil {
		return nil, c.conn.fetchErr
	}
	out := c.rows[c.pos:]
	c.pos = len(c.rows)
	return out, nil
}

func (c *fakeCursor) FetchOne() (database.Row, error) {
	if c.conn.fetchErr != nil {
		return nil, c.conn.fetchErr
	}
	if c.pos >= len(c.rows) {
		return nil, nil
	}
	row := c.rows[c.pos]
	c.pos++
	return row, nil
}

func (c *fakeCursor) RowCount() int { return len(c.rows) }

func (c *fakeCursor) Close() error {
	c.closed = true
	return c.conn.closeErr
}
