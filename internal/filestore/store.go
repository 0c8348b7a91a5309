// Package filestore publishes catalog snapshots to object storage.
//
// Providers (MinIO and S3-compatible servers) implement Store. Callers
// depend only on this package and never on a provider package.
//
// Usage:
//
//	store, err := minio.New(ctx, &cfg.Export)
//	if err != nil { ... }
//	defer store.Close()
//
//	info, err := filestore.SaveCatalog(ctx, store, cfg.Export.Prefix, cat, time.Now())
package filestore

import (
	"context"
	"io"
)

// Store is the object storage capability snapshot export needs.
// Every call works on the bucket the store was configured with.
type Store interface {
	// Ping verifies the backend is reachable and the bucket exists.
	Ping(ctx context.Context) error

	// Close releases any held resources.
	Close() error

	// PutObject writes size bytes from r to key.
	PutObject(ctx context.Context, key string, r io.Reader, size int64, contentType string) (*ObjectInfo, error)

	// GetObject opens a streaming handle to key.
	// The caller MUST call Object.Close() after reading.
	GetObject(ctx context.Context, key string) (Object, error)

	// ListObjects returns the objects whose key starts with prefix,
	// recursively, in key order.
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)
}
