package filestore

import (
	"io"
	"time"
)

// ObjectInfo describes a stored snapshot object.
type ObjectInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"` // -1 if unknown
	ContentType  string    `json:"content_type,omitempty"`
	ETag         string    `json:"etag,omitempty"`
	LastModified time.Time `json:"last_modified"`
}

// Object is a streaming handle to an object's content.
type Object interface {
	io.ReadCloser

	// Info returns the metadata for this object.
	Info() *ObjectInfo
}
