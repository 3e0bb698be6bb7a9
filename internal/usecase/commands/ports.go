package commands

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/commands/ports_mock.go -package=commandsmock

import (
	"context"
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/booking"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/payment"
)

// AdvisoryLocker is a best-effort fast path in front of the exclusion
// constraint. Callers treat any error as "proceed without the lock".
type AdvisoryLocker interface {
	Acquire(ctx context.Context, key, owner string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key, owner string) error
}

type RateLimiter interface {
	Allow(ctx context.Context, subject string) (bool, error)
}

// Verification is the gateway's own view of a delivery.
type Verification struct {
	Valid  bool
	TranID string
	Amount string
	Notes  string
}

type GatewayVerifier interface {
	Verify(ctx context.Context, n payment.Notification) (Verification, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, e booking.Event) error
}
