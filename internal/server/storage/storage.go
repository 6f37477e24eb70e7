// Package storage provides the durable byte-storage capability behind the
// upload pipeline and the retrieval gate. Keys are opaque, slash-separated
// paths generated by the caller; they never encode an entry's logical name.
package storage

import (
	"context"
	"io"
)

// BlobStore reads and writes opaque byte payloads.
type BlobStore interface {
	// EnsureArea makes sure the containing storage area exists. Idempotent.
	EnsureArea(ctx context.Context, area string) error

	// WriteAll durably stores data under path.
	WriteAll(ctx context.Context, path string, data []byte) error

	// Exists reports whether path holds a payload.
	Exists(ctx context.Context, path string) (bool, error)

	// ReadStream opens the payload at path for reading. The caller closes it.
	ReadStream(ctx context.Context, path string) (io.ReadCloser, error)
}
