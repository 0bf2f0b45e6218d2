// Package ratelimit implements a fixed-window request limiter with a
// swappable counting store: an in-memory map for single-process deployments
// and Redis when counts must be shared across processes.
package ratelimit

import (
	"context"
	"time"
)

// CounterStore counts hits per key within a fixed window. Incr returns the
// number of hits recorded for the key in the current window, including this
// one. A fresh window starts at the first hit after the previous one expired.
type CounterStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}
