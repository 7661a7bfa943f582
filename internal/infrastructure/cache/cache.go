package cache

import (
	"context"
	"time"
)

// Store is the cache abstraction used for minutes lookups. Redis backs it in
// deployments; the in-memory store is the fallback for local runs without a
// Redis host configured.
type Store interface {
	Set(ctx context.Context, key, value string, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, key string) error
	Close() error
}
