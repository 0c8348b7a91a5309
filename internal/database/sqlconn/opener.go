package sqlconn

import (
	"context"
	"fmt"
	"net/url"

	"github.com/koustreak/duckwire/internal/database"
)

// DSNFunc renders resolved connect keywords as a driver DSN.
type DSNFunc func(kwargs map[string]any) string

// duckdbOptions are the configuration keys the embedded DuckDB driver
// accepts in its DSN. Other query options, such as the HTTP token, belong
// to the remote transport and are not forwarded.
var duckdbOptions = map[string]bool{
	"access_mode":                  true,
	"allow_unsigned_extensions":    true,
	"autoinstall_known_extensions": true,
	"autoload_known_extensions":    true,
	"custom_user_agent":            true,
	"default_null_order":           true,
	"default_order":                true,
	"enable_external_access":       true,
	"max_memory":                   true,
	"memory_limit":                 true,
	"preserve_insertion_order":     true,
	"temp_directory":               true,
	"threads":                      true,
}

// DuckDBDSN renders kwargs in the form the embedded DuckDB driver accepts:
// the database path followed by the DuckDB options as a query string.
// Network components and transport options are dropped. An absent
// database means an in-memory database.
func DuckDBDSN(kwargs map[string]any) string {
	path, _ := kwargs["database"].(string)

	q := url.Values{}
	for k, v := range kwargs {
		if !duckdbOptions[k] {
			continue
		}
		q.Set(k, fmt.Sprint(v))
	}
	if enc := q.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}

// NewOpener returns a database.Opener that opens a pool with base's
// settings and a DSN built from the connect keywords. Positional args
// are ignored; all connection info travels as keywords.
func NewOpener(base *database.Config, dsn DSNFunc) database.Opener {
	return func(ctx context.Context, _ []any, kwargs map[string]any) (database.Conn, error) {
		cfg := *base
		cfg.DSN = dsn(kwargs)
		return New(ctx, &cfg)
	}
}
