// Package dialect adapts generic SQL tooling to a remote DuckDB reached
// over an HTTP client.
//
// The dialect never talks to the network itself. It builds catalog SQL,
// runs it through a database.Conn supplied by the caller, and shapes the
// resulting rows into records:
//
//	d := dialect.New(dialect.WithLogger(log))
//	conn, err := d.Connect(ctx, u, sqlconn.NewOpener(cfg, sqlconn.DuckDBDSN))
//	tables, err := d.GetTableNames(ctx, conn, "")
package dialect

import (
	"context"
	"fmt"

	"github.com/koustreak/duckwire/internal/database"
	"github.com/koustreak/duckwire/internal/logger"
)

// Declared identity of the dialect.
const (
	Name       = "duckdb"
	Driver     = "http"
	ParamStyle = "qmark"
)

// Capabilities are the SQL features the dialect advertises to callers
// generating statements.
type Capabilities struct {
	Sequences         bool `json:"supports_sequences"`
	NativeEnum        bool `json:"supports_native_enum"`
	NativeBoolean     bool `json:"supports_native_boolean"`
	NativeDecimal     bool `json:"supports_native_decimal"`
	MultiValuesInsert bool `json:"supports_multivalues_insert"`
	EmptyInsert       bool `json:"supports_empty_insert"`
	TupleInValues     bool `json:"tuple_in_values"`
}

var duckdbCapabilities = Capabilities{
	Sequences:         true,
	NativeEnum:        true,
	NativeBoolean:     true,
	NativeDecimal:     true,
	MultiValuesInsert: true,
	EmptyInsert:       false,
	TupleInValues:     true,
}

// Dialect bundles the preparer, type mapper, inspector and lifecycle
// adapter. It holds no connection state and is safe for concurrent use.
type Dialect struct {
	*Inspector

	Preparer *Preparer
	Types    *TypeMapper

	log *logger.Logger
}

type options struct {
	log           *logger.Logger
	caseSensitive bool
}

// Option configures a Dialect.
type Option func(*options)

// WithLogger sets the logger used for hooks and suppressed close errors.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithCaseSensitive controls whether mixed-case identifiers are quoted.
// Defaults to true.
func WithCaseSensitive(b bool) Option {
	return func(o *options) { o.caseSensitive = b }
}

// New creates a DuckDB dialect.
func New(opts ...Option) *Dialect {
	o := options{log: logger.Nop(), caseSensitive: true}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Nop()
	}

	return &Dialect{
		Inspector: NewInspector(o.log),
		Preparer:  NewPreparer(o.caseSensitive),
		Types:     NewTypeMapper(),
		log:       o.log,
	}
}

// Capabilities returns the feature flags of the dialect.
func (d *Dialect) Capabilities() Capabilities {
	return duckdbCapabilities
}

// Connect opens a connection for u through open, then runs the URL hook
// followed by the plain connect hook.
func (d *Dialect) Connect(ctx context.Context, u *database.URL, open database.Opener) (database.Conn, error) {
	args, kwargs := d.CreateConnectArgs(u)

	conn, err := open(ctx, args, kwargs)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", u.Redacted(), err)
	}

	d.OnConnectURL(u)(conn)
	d.OnConnect()(conn)

	d.log.With().
		Str("dialect", Name).
		Str("driver", Driver).
		Str("url", u.Redacted()).
		Logger().
		Info("engine created")
	return conn, nil
}
