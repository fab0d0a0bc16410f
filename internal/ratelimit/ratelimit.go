// Package ratelimit applies per-client request limits to the chart
// endpoints. The in-memory store uses a sliding window; the Redis store
// uses a fixed window so multiple replicas share one budget.
package ratelimit

import (
	"context"
	"time"
)

// Result describes the outcome of a limit check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter returns whole seconds until the window resets, at least 1.
func (r *Result) RetryAfter(now time.Time) int {
	secs := int(r.ResetAt.Sub(now).Seconds()) + 1
	if secs < 1 {
		secs = 1
	}
	return secs
}

// Store counts requests per key inside a window.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
}
