package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/koustreak/duckwire/internal/dialect"
	"github.com/koustreak/duckwire/internal/errs"
)

const snapshotContentType = "application/json"

// snapshotTimeFormat sorts lexically in time order.
const snapshotTimeFormat = "20060102T150405Z"

// SnapshotKey is the object key for a snapshot of schema taken at at:
// <prefix>/<schema>/<UTC timestamp>.json
func SnapshotKey(prefix, schema string, at time.Time) string {
	name := at.UTC().Format(snapshotTimeFormat) + ".json"
	return path.Join(strings.Trim(prefix, "/"), dialect.NormalizeSchema(schema), name)
}

// SaveCatalog writes cat as JSON under SnapshotKey.
func SaveCatalog(ctx context.Context, store Store, prefix string, cat *dialect.Catalog, at time.Time) (*ObjectInfo, error) {
	if cat == nil {
		return nil, errs.New(errs.ErrKindInvalidInput, "save catalog: nil catalog")
	}

	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "save catalog: encode", err)
	}

	key := SnapshotKey(prefix, cat.Schema, at)
	info, err := store.PutObject(ctx, key, bytes.NewReader(data), int64(len(data)), snapshotContentType)
	if err != nil {
		return nil, fmt.Errorf("save catalog %s: %w", key, err)
	}
	return info, nil
}

// LoadCatalog reads the snapshot stored at key.
func LoadCatalog(ctx context.Context, store Store, key string) (*dialect.Catalog, error) {
	obj, err := store.GetObject(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", key, err)
	}
	defer obj.Close()

	var cat dialect.Catalog
	if err := json.NewDecoder(obj).Decode(&cat); err != nil {
		return nil, errs.Wrap(errs.ErrKindQueryFailed, "load catalog "+key+": decode", err)
	}
	return &cat, nil
}

// ListSnapshots returns the snapshots of schema, newest first.
func ListSnapshots(ctx context.Context, store Store, prefix, schema string) ([]ObjectInfo, error) {
	dir := path.Join(strings.Trim(prefix, "/"), dialect.NormalizeSchema(schema)) + "/"

	objs, err := store.ListObjects(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	out := make([]ObjectInfo, 0, len(objs))
	for _, o := range objs {
		if strings.HasSuffix(o.Key, ".json") {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key > out[j].Key })
	return out, nil
}
