// Package storage stores report evidence photos in an S3 compatible bucket.
package storage

import (
	"context"
	"errors"
	"io"
)

var ErrObjectNotFound = errors.New("object not found")

type ObjectInfo struct {
	Size        int64
	ContentType string
}

// ObjectStore is the blob store evidence is written to. Keys are
// "<owner-id>/<name>"; callers authorize keys before calling it.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
}
