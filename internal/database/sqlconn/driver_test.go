package sqlconn

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/koustreak/duckwire/internal/database"
	"github.com/koustreak/duckwire/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return Wrap(db), mock
}

func TestCursor_ExecuteBuffersRows(t *testing.T) {
	conn, mock := newMock(t)
	ctx := context.Background()

	mock.ExpectQuery("SELECT name FROM t WHERE s = ?").
		WithArgs("main").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("a").AddRow("b").AddRow("c"))

	cur, err := conn.Cursor(ctx)
	require.NoError(t, err)
	defer cur.Close()

	require.NoError(t, cur.Execute(ctx, "SELECT name FROM t WHERE s = ?", "main"))
	assert.Equal(t, 3, cur.RowCount())

	first, err := cur.FetchOne()
	require.NoError(t, err)
	assert.Equal(t, database.Row{"a"}, first)

	rest, err := cur.FetchAll()
	require.NoError(t, err)
	assert.Equal(t, []database.Row{{"b"}, {"c"}}, rest)

	none, err := cur.FetchOne()
	require.NoError(t, err)
	assert.Nil(t, none)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCursor_EmptyResult(t *testing.T) {
	conn, mock := newMock(t)
	ctx := context.Background()

	mock.ExpectQuery("SELECT 1 WHERE false").WillReturnRows(sqlmock.NewRows([]string{"x"}))

	cur, err := conn.Cursor(ctx)
	require.NoError(t, err)
	defer cur.Close()

	require.NoError(t, cur.Execute(ctx, "SELECT 1 WHERE false"))
	assert.Equal(t, 0, cur.RowCount())

	rows, err := cur.FetchAll()
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestCursor_ExecuteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		kind       errs.ErrKind
		disconnect bool
	}{
		{"query failure", errors.New("Catalog Error: Table does not exist"), errs.ErrKindQueryFailed, false},
		{"connection done", sql.ErrConnDone, errs.ErrKindConnectionFailed, true},
		{"deadline", context.DeadlineExceeded, errs.ErrKindTimeout, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, mock := newMock(t)
			ctx := context.Background()
			mock.ExpectQuery("SELECT 1").WillReturnError(tt.err)

			cur, err := conn.Cursor(ctx)
			require.NoError(t, err)
			defer cur.Close()

			err = cur.Execute(ctx, "SELECT 1")
			require.Error(t, err)
			assert.Equal(t, tt.kind, errs.KindOf(err))
			assert.Equal(t, tt.disconnect, containsMarker(err))
		})
	}
}

func TestCursor_ClosedDatabaseIsDisconnect(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()
	conn := Wrap(db)
	ctx := context.Background()

	cur, err := conn.Cursor(ctx)
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	err = cur.Execute(ctx, "SELECT 1")
	require.Error(t, err)
	assert.True(t, errs.IsConnectionFailed(err))
	assert.True(t, containsMarker(err))
}

func TestCursor_UseAfterClose(t *testing.T) {
	conn, _ := newMock(t)
	ctx := context.Background()

	cur, err := conn.Cursor(ctx)
	require.NoError(t, err)
	require.NoError(t, cur.Close())

	assert.Error(t, cur.Execute(ctx, "SELECT 1"))
	_, err = cur.FetchAll()
	assert.Error(t, err)
	_, err = cur.FetchOne()
	assert.Error(t, err)
}

func TestDB_CursorCancelledContext(t *testing.T) {
	conn, _ := newMock(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := conn.Cursor(ctx)
	require.Error(t, err)
	assert.True(t, errs.IsTimeout(err))
}

func TestNew(t *testing.T) {
	_, _, err := sqlmock.NewWithDSN("sqlconn_new_test")
	require.NoError(t, err)

	conn, err := New(context.Background(), database.DefaultConfig("sqlmock", "sqlconn_new_test"))
	require.NoError(t, err)
	assert.NotNil(t, conn)
}

func TestNew_RequiresDriver(t *testing.T) {
	_, err := New(context.Background(), &database.Config{})
	require.Error(t, err)
	assert.True(t, errs.IsInvalidInput(err))
}

func TestDuckDBDSN(t *testing.T) {
	tests := []struct {
		name   string
		kwargs map[string]any
		want   string
	}{
		{"in memory", map[string]any{}, ""},
		{"path only", map[string]any{"database": "/data/a.duckdb", "host": "ignored"}, "/data/a.duckdb"},
		{
			"path with options",
			map[string]any{"database": "a.duckdb", "threads": 4, "access_mode": "read_only", "password": "x"},
			"a.duckdb?access_mode=read_only&threads=4",
		},
		{
			"transport options dropped",
			map[string]any{"database": "analytics", "host": "localhost", "port": 9999, "username": "user", "token": "abc"},
			"analytics",
		},
		{
			"transport and duckdb options mixed",
			map[string]any{"token": "abc", "memory_limit": "1GB"},
			"?memory_limit=1GB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DuckDBDSN(tt.kwargs))
		})
	}
}

func TestNewOpener(t *testing.T) {
	_, _, err := sqlmock.NewWithDSN("sqlconn_opener_test")
	require.NoError(t, err)

	open := NewOpener(database.DefaultConfig("sqlmock", ""), func(kwargs map[string]any) string {
		return kwargs["database"].(string)
	})

	conn, err := open(context.Background(), nil, map[string]any{"database": "sqlconn_opener_test"})
	require.NoError(t, err)
	assert.NotNil(t, conn)
}

func containsMarker(err error) bool {
	return err != nil && strings.Contains(err.Error(), database.ConnectionClosedMsg)
}
