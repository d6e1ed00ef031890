package core

import (
	"context"
	"time"
)

// TimeProvider abstracts the clock so request timing and query deadlines are testable
type TimeProvider interface {
	Now() time.Time
	Since(t time.Time) time.Duration
	// WithTimeout bounds a store read; a zero timeout returns ctx unchanged
	WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc)
}
