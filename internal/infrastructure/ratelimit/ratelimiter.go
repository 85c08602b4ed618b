package ratelimit

import (
	"context"
	"time"
)

// Window is a request budget over a sliding duration. A zero Limit
// disables the window.
type Window struct {
	Limit    int
	Duration time.Duration
}

// Limiter decides whether one more request under key fits every window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	// Remaining is the budget left in the tightest window, or -1 when no
	// window applies.
	Remaining(ctx context.Context, key string) (int64, error)
	Reset(ctx context.Context, key string) error
}
