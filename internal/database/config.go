package database

import "time"

// Config holds the settings sqlconn needs to open and pool a database/sql
// connection.
type Config struct {
	// Driver is the registered database/sql driver name (e.g. "duckdb").
	Driver string

	// DSN is handed to sql.Open unchanged.
	DSN string

	// Pool tuning
	MaxConns        int           // maximum number of open connections
	MaxIdleConns    int           // maximum number of idle connections
	MaxConnLifetime time.Duration // maximum time a connection may be reused
	MaxConnIdleTime time.Duration // maximum time a connection may sit idle

	// ConnectTimeout bounds the initial ping.
	ConnectTimeout time.Duration
}

// DefaultConfig returns pool settings suited to short catalog queries.
func DefaultConfig(driver, dsn string) *Config {
	return &Config{
		Driver:          driver,
		DSN:             dsn,
		MaxConns:        4,
		MaxIdleConns:    2,
		MaxConnLifetime: 30 * time.Minute,
		MaxConnIdleTime: 5 * time.Minute,
		ConnectTimeout:  10 * time.Second,
	}
}
