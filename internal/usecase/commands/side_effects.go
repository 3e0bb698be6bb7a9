package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/booking"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/ledger"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/metrics"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/shared"

	"github.com/google/uuid"
)

// publishTimeout bounds each best-effort publish so a slow broker never
// holds a request open.
const publishTimeout = 3 * time.Second

// SlotLockKey identifies one exact candidate range on a conflict group.
func SlotLockKey(conflictGroupID uuid.UUID, start, blockedEnd time.Time) string {
	return fmt.Sprintf("slot:%s:%d:%d", conflictGroupID, start.Unix(), blockedEnd.Unix())
}

// sideEffects groups the post-commit work every command shares. None of it
// can fail the command that triggered it.
type sideEffects struct {
	uow       shared.UnitOfWork
	locker    AdvisoryLocker
	publisher EventPublisher
	metrics   *metrics.Metrics
}

func (s sideEffects) acquire(ctx context.Context, key, owner string, ttl time.Duration) bool {
	started := time.Now()
	ok, err := s.locker.Acquire(ctx, key, owner, ttl)
	switch {
	case err != nil:
		s.metrics.Lock("acquire", "failed", started)
		slog.Warn("advisory lock unavailable, relying on exclusion constraint", "key", key, "error", err)
		return false
	case !ok:
		s.metrics.Lock("acquire", "skipped", started)
		slog.Debug("advisory lock held elsewhere", "key", key)
		return false
	default:
		s.metrics.Lock("acquire", "success", started)
		return true
	}
}

func (s sideEffects) release(ctx context.Context, key, owner string) {
	started := time.Now()
	if err := s.locker.Release(ctx, key, owner); err != nil {
		s.metrics.Lock("release", "failed", started)
		slog.Warn("failed to release advisory lock", "key", key, "error", err)
		return
	}
	s.metrics.Lock("release", "success", started)
}

func (s sideEffects) publish(ctx context.Context, events ...booking.Event) {
	for _, e := range events {
		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		err := s.publisher.Publish(pctx, e)
		cancel()
		if err != nil {
			slog.Warn("failed to publish booking event",
				"booking_id", e.BookingID,
				"type", e.Type,
				"error", err)
		}
	}
}

// post writes a ledger entry in its own transaction. The (booking, kind)
// uniqueness makes a repeated post a no-op.
func (s sideEffects) post(ctx context.Context, entry ledger.Entry) {
	if entry.Amount == 0 {
		return
	}
	err := s.uow.Within(context.WithoutCancel(ctx), func(ctx context.Context, tx shared.Tx) error {
		inserted, err := tx.Ledger().Post(ctx, entry)
		if err != nil {
			return err
		}
		if !inserted {
			slog.Debug("ledger entry already posted", "booking_id", entry.BookingID, "kind", entry.Kind)
		}
		return nil
	})
	if err != nil {
		slog.Error("failed to post ledger entry",
			"booking_id", entry.BookingID,
			"kind", entry.Kind,
			"amount", entry.Amount,
			"error", err)
	}
}
