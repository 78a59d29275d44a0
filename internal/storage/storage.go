package storage

import (
	"context"
	"io"
)

// BlobStore persists uploaded binaries and hands back a retrievable URL.
type BlobStore interface {
	Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
}
