package ratelimit

import (
	"context"
	"time"
)

// Result mirrors the standard X-RateLimit-* header triple.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	Reset     time.Time
}

// Limiter applies a sliding-window limit per key (key = scope + caller
// address). The denied request is still counted against the window.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}
