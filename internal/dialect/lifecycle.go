package dialect

import (
	"strings"

	"github.com/koustreak/duckwire/internal/database"
	"github.com/koustreak/duckwire/internal/errs"
)

// IsolationLevel is the only isolation DuckDB offers.
const IsolationLevel = "SNAPSHOT"

// CreateConnectArgs resolves u into connect arguments. The positional
// list is always empty; keywords are the URL's translated parts with its
// query options laid over them.
func (d *Dialect) CreateConnectArgs(u *database.URL) ([]any, map[string]any) {
	kwargs := u.TranslateConnectArgs()
	for k, v := range u.Query {
		kwargs[k] = v
	}
	return []any{}, kwargs
}

// Transactions are not carried over the HTTP transport. Begin, commit and
// rollback are accepted and ignored.

// DoBegin is a no-op.
func (d *Dialect) DoBegin(database.Conn) {}

// DoCommit is a no-op.
func (d *Dialect) DoCommit(database.Conn) {}

// DoRollback is a no-op.
func (d *Dialect) DoRollback(database.Conn) {}

// DoSavepoint returns a NotImplemented error.
func (d *Dialect) DoSavepoint(_ database.Conn, name string) error {
	return notImplemented("savepoint " + name)
}

// DoRollbackToSavepoint returns a NotImplemented error.
func (d *Dialect) DoRollbackToSavepoint(_ database.Conn, name string) error {
	return notImplemented("rollback to savepoint " + name)
}

// DoReleaseSavepoint returns a NotImplemented error.
func (d *Dialect) DoReleaseSavepoint(_ database.Conn, name string) error {
	return notImplemented("release savepoint " + name)
}

// DoBeginTwoPhase returns a NotImplemented error.
func (d *Dialect) DoBeginTwoPhase(database.Conn, any) error {
	return notImplemented("two-phase begin")
}

// DoPrepareTwoPhase returns a NotImplemented error.
func (d *Dialect) DoPrepareTwoPhase(database.Conn, any) error {
	return notImplemented("two-phase prepare")
}

// DoCommitTwoPhase returns a NotImplemented error.
func (d *Dialect) DoCommitTwoPhase(_ database.Conn, _ any, _, _ bool) error {
	return notImplemented("two-phase commit")
}

// DoRollbackTwoPhase returns a NotImplemented error.
func (d *Dialect) DoRollbackTwoPhase(_ database.Conn, _ any, _, _ bool) error {
	return notImplemented("two-phase rollback")
}

// DoRecoverTwoPhase returns a NotImplemented error and no transaction ids.
func (d *Dialect) DoRecoverTwoPhase(database.Conn) ([]any, error) {
	return nil, notImplemented("two-phase recover")
}

// CreateXID always fails: the transport has no transaction identity.
func (d *Dialect) CreateXID() (any, error) {
	return nil, errs.New(errs.ErrKindNotSupported, "transactions not supported over http yet")
}

// GetIsolationLevel always reports IsolationLevel.
func (d *Dialect) GetIsolationLevel(database.Conn) string { return IsolationLevel }

// GetDefaultIsolationLevel always reports IsolationLevel.
func (d *Dialect) GetDefaultIsolationLevel(database.Conn) string { return IsolationLevel }

// SetIsolationLevel is a no-op; DuckDB has a single isolation level.
func (d *Dialect) SetIsolationLevel(database.Conn, string) {}

// ResetIsolationLevel is a no-op.
func (d *Dialect) ResetIsolationLevel(database.Conn) {}

// IsDisconnect reports whether err means the connection is gone.
func (d *Dialect) IsDisconnect(err error, _ database.Conn, _ database.Cursor) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), database.ConnectionClosedMsg)
}

// OnConnect returns the hook run on every new connection.
func (d *Dialect) OnConnect() func(database.Conn) {
	return func(database.Conn) {
		d.log.Debug("on connect")
	}
}

// OnConnectURL returns the hook run on every new connection opened from u.
func (d *Dialect) OnConnectURL(u *database.URL) func(database.Conn) {
	return func(database.Conn) {
		d.log.DebugWith("on connect url", map[string]any{"url": u.Redacted()})
	}
}

func notImplemented(what string) error {
	return errs.New(errs.ErrKindNotImplemented, what+" is not implemented")
}
