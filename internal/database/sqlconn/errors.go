package sqlconn

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"

	"github.com/koustreak/duckwire/internal/database"
	"github.com/koustreak/duckwire/internal/errs"
)

// mapError translates database/sql errors into *errs.Error.
// Closed and broken connections carry database.ConnectionClosedMsg so
// disconnect detection recognises them.
func mapError(err error, msg string) *errs.Error {
	if err == nil {
		return nil
	}

	var e *errs.Error
	if errors.As(err, &e) {
		return e
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, driver.ErrBadConn) ||
		strings.Contains(err.Error(), "database is closed") {
		return errs.Wrap(errs.ErrKindConnectionFailed, msg+": "+database.ConnectionClosedMsg, err)
	}

	return errs.Wrap(errs.ErrKindQueryFailed, msg, err)
}
