package storage

import (
	"context"
	"time"
)

// BlobStore is the contract over the external object store that holds
// processed profile pictures. Every call is a remote operation and may fail
// independently; callers decide what to do with each failure.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error

	// SignedURL mints a time-limited read URL for key. Zero ttl selects the
	// store's default expiry. URLs are never cached or persisted.
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}
