package redislock

import (
	"context"
	"time"
)

// Noop grants every lock and admits every request. Used when Redis is disabled.
type Noop struct{}

func (Noop) Acquire(context.Context, string, string, time.Duration) (bool, error) { return true, nil }
func (Noop) Release(context.Context, string, string) error                       { return nil }
func (Noop) Allow(context.Context, string) (bool, error)                         { return true, nil }
