// Package storage provides content storage for uploaded audio bytes behind a
// BlobStore interface, with an S3-backed implementation.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// BlobInfo describes one stored blob, enough for the orphan sweep to decide
// whether it is reclaimable.
type BlobInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// BlobStore is the content-addressable storage consumed by the upload
// pipeline and retrieval surface. Upload must stream the body without
// buffering it fully in memory.
type BlobStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, int64, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]BlobInfo, error)
}

// NewKey mints a fresh storage key under prefix. Keys are never reused, so
// re-uploading identical bytes produces a distinct blob.
func NewKey(prefix, ext string) string {
	return fmt.Sprintf("%s/%s.%s", prefix, uuid.NewString(), ext)
}
