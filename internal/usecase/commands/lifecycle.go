package commands

//go:generate mockgen -source=lifecycle.go -destination=../../../tests/mock/commands/lifecycle_mock.go -package=commandsmock

import (
	"context"
	"log/slog"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/booking"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/clock"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/errs"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/metrics"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/shared"

	"github.com/google/uuid"
)

type LifecycleCommands interface {
	// ExpireHold reports whether the reservation moved; a hold that is not
	// yet due or already moved on is left alone.
	ExpireHold(ctx context.Context, reservationID uuid.UUID) (bool, error)
	CompleteReservation(ctx context.Context, reservationID uuid.UUID) (bool, error)
	ExpireDueHolds(ctx context.Context, limit int) (int, error)
	CompleteDueReservations(ctx context.Context, limit int) (int, error)
	CollectRemaining(ctx context.Context, reservationID uuid.UUID, amount int64) (*booking.Booking, error)
	PurgeExpiredIdempotencyKeys(ctx context.Context) (int64, error)
}

type lifecycleUseCaseImpl struct {
	sideEffects
	clock clock.Clock
}

func NewLifecycleUseCase(
	uow shared.UnitOfWork,
	locker AdvisoryLocker,
	publisher EventPublisher,
	m *metrics.Metrics,
	clock clock.Clock,
) LifecycleCommands {
	return &lifecycleUseCaseImpl{
		sideEffects: sideEffects{uow: uow, locker: locker, publisher: publisher, metrics: m},
		clock:       clock,
	}
}

func (l *lifecycleUseCaseImpl) ExpireHold(ctx context.Context, reservationID uuid.UUID) (bool, error) {
	now := l.clock.Now()

	var (
		ev      *booking.Event
		lockKey string
	)
	err := l.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ev = nil
		b, err := l.lockBooking(ctx, tx, reservationID)
		if err != nil {
			return err
		}
		if !b.IsHoldDue(now) {
			return nil
		}

		if err := b.Expire(now); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return err
		}
		if err := tx.Occupancies().DeleteByBooking(ctx, b.ID()); err != nil {
			return err
		}

		intents, err := tx.PaymentIntents().ListByBooking(ctx, b.ID())
		if err != nil {
			return err
		}
		for _, intent := range intents {
			if intent.Expire(now) {
				if err := tx.PaymentIntents().Update(ctx, intent); err != nil {
					return err
				}
			}
		}

		e := booking.NewEvent(b, booking.EventExpired, booking.StatusHold, now)
		if err := tx.Events().Append(ctx, e); err != nil {
			return err
		}
		ev = &e
		lockKey = SlotLockKey(b.ConflictGroupID(), b.StartAt(), b.BlockedEndAt())
		return nil
	})
	if err != nil {
		return false, l.wrap(err)
	}
	if ev == nil {
		return false, nil
	}

	l.release(ctx, lockKey, reservationID.String())
	l.publish(ctx, *ev)
	slog.Info("hold expired", "reservation_id", reservationID)
	return true, nil
}

// CompleteReservation also frees the occupancy row; a finished slot can no
// longer collide with anything.
func (l *lifecycleUseCaseImpl) CompleteReservation(ctx context.Context, reservationID uuid.UUID) (bool, error) {
	now := l.clock.Now()

	var ev *booking.Event
	err := l.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ev = nil
		b, err := l.lockBooking(ctx, tx, reservationID)
		if err != nil {
			return err
		}
		if !b.IsCompletionDue(now) {
			return nil
		}

		if err := b.Complete(now); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return err
		}
		if err := tx.Occupancies().DeleteByBooking(ctx, b.ID()); err != nil {
			return err
		}

		e := booking.NewEvent(b, booking.EventCompleted, booking.StatusConfirmed, now)
		if err := tx.Events().Append(ctx, e); err != nil {
			return err
		}
		ev = &e
		return nil
	})
	if err != nil {
		return false, l.wrap(err)
	}
	if ev == nil {
		return false, nil
	}

	l.publish(ctx, *ev)
	return true, nil
}

func (l *lifecycleUseCaseImpl) ExpireDueHolds(ctx context.Context, limit int) (int, error) {
	ids, err := l.uow.Reads().DueHolds(ctx, l.clock.Now(), limit)
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	n := l.sweep(ctx, ids, l.ExpireHold)
	l.metrics.Swept("expire_holds", n)
	return n, nil
}

func (l *lifecycleUseCaseImpl) CompleteDueReservations(ctx context.Context, limit int) (int, error) {
	ids, err := l.uow.Reads().DueCompletions(ctx, l.clock.Now(), limit)
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	n := l.sweep(ctx, ids, l.CompleteReservation)
	l.metrics.Swept("complete_reservations", n)
	return n, nil
}

// sweep keeps going past individual failures; the next run picks them up.
func (l *lifecycleUseCaseImpl) sweep(ctx context.Context, ids []uuid.UUID, step func(context.Context, uuid.UUID) (bool, error)) int {
	moved := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		ok, err := step(ctx, id)
		if err != nil {
			slog.Error("sweep step failed", "reservation_id", id, "error", err)
			continue
		}
		if ok {
			moved++
		}
	}
	return moved
}

func (l *lifecycleUseCaseImpl) CollectRemaining(ctx context.Context, reservationID uuid.UUID, amount int64) (*booking.Booking, error) {
	now := l.clock.Now()

	var updated *booking.Booking
	err := l.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := l.lockBooking(ctx, tx, reservationID)
		if err != nil {
			return err
		}
		if err := b.CollectRemaining(amount, now); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, l.wrap(err)
	}

	slog.Info("offline payment recorded",
		"reservation_id", reservationID,
		"amount", amount,
		"payment_stage", updated.PaymentStage())
	return updated, nil
}

func (l *lifecycleUseCaseImpl) PurgeExpiredIdempotencyKeys(ctx context.Context) (int64, error) {
	var purged int64
	err := l.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Idempotency().DeleteExpired(ctx, l.clock.Now())
		purged = n
		return err
	})
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	l.metrics.Swept("purge_idempotency", int(purged))
	return purged, nil
}

func (l *lifecycleUseCaseImpl) lockBooking(ctx context.Context, tx shared.Tx, id uuid.UUID) (*booking.Booking, error) {
	b, err := tx.Bookings().GetForUpdate(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrReservationNotFound
		}
		return nil, err
	}
	return b, nil
}

func (l *lifecycleUseCaseImpl) wrap(err error) error {
	switch {
	case errs.Is(err, errs.ErrReservationNotFound),
		errs.Is(err, booking.ErrInvalidTransition),
		errs.Is(err, booking.ErrOfflinePaymentRejected),
		errs.Is(err, booking.ErrInvalidOfflineAmount):
		return err
	default:
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
}
