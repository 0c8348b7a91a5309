package filestore

import (
	"strings"

	"github.com/koustreak/duckwire/internal/errs"
)

// Config holds the settings for the snapshot bucket.
type Config struct {
	// Endpoint is the host:port of the storage server, e.g. "localhost:9000".
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`

	// Region is used by region-aware backends. Setting it also skips the
	// bucket location lookup.
	Region string `yaml:"region"`

	Bucket string `yaml:"bucket"`

	// Prefix is prepended to every snapshot key.
	Prefix string `yaml:"prefix"`
}

// Enabled reports whether an export target is configured.
func (c *Config) Enabled() bool {
	return c != nil && c.Endpoint != ""
}

// Validate checks the fields a store needs to connect.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Endpoint) == "":
		return errs.New(errs.ErrKindInvalidInput, "filestore: endpoint is required")
	case strings.TrimSpace(c.Bucket) == "":
		return errs.New(errs.ErrKindInvalidInput, "filestore: bucket is required")
	}
	return nil
}
