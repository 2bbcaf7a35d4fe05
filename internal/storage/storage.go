package storage

import (
	"context"
	"io"
)

// ObjectStorage is the durable blob store collaborator. Put writes the
// object under key and returns its public URL.
type ObjectStorage interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}
