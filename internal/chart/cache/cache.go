// Package cache provides the short-TTL byte cache used for current
// planetary positions. Redis when configured, in-process otherwise.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque payloads under string keys with a TTL. Implementations
// return sentinel.ErrNotFound on a miss or an expired entry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
