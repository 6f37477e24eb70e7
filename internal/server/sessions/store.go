// Package sessions provides the ephemeral key-value capability behind the
// authentication gate: opaque token -> user identity, with expiration.
package sessions

import (
	"context"
	"time"
)

// Store is an ephemeral key-value store with per-key TTL.
//
// Get returns common.ErrorNotFound for absent or expired keys; callers must
// not be able to tell the two apart.
type Store interface {
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
