package commands

//go:generate mockgen -source=cancel.go -destination=../../../tests/mock/commands/cancel_mock.go -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/booking"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/ledger"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/payment"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/refund"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/clock"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/errs"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/metrics"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/shared"

	"github.com/google/uuid"
)

type CancelResult struct {
	ReservationID       uuid.UUID
	Status              booking.Status
	Tier                refund.Tier
	RefundAmount        int64
	PlatformFeeRetained int64
	RefundID            *uuid.UUID
}

type CancelCommands interface {
	Cancel(ctx context.Context, reservationID, actorID uuid.UUID, reason string) (*CancelResult, error)
}

type cancelUseCaseImpl struct {
	sideEffects
	policy refund.Policy
	clock  clock.Clock
}

func NewCancelUseCase(
	uow shared.UnitOfWork,
	locker AdvisoryLocker,
	publisher EventPublisher,
	m *metrics.Metrics,
	policy refund.Policy,
	clock clock.Clock,
) CancelCommands {
	return &cancelUseCaseImpl{
		sideEffects: sideEffects{uow: uow, locker: locker, publisher: publisher, metrics: m},
		policy:      policy,
		clock:       clock,
	}
}

func (c *cancelUseCaseImpl) Cancel(ctx context.Context, reservationID, actorID uuid.UUID, reason string) (*CancelResult, error) {
	now := c.clock.Now()

	var (
		res      *CancelResult
		ev       booking.Event
		reversal *ledger.Entry
		lockKey  string
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		reversal = nil
		b, err := tx.Bookings().GetForUpdate(ctx, reservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrReservationNotFound
			}
			return err
		}

		d := c.policy.Evaluate(b, now)
		if !d.CanCancel {
			return refund.ErrCancellationNotAllowed
		}

		from := b.Status()
		credited := b.PaymentStage() == booking.PaymentStageAdvancePaid || b.PaymentStage() == booking.PaymentStageFullyPaid
		if err := b.Cancel(actorID, reason, now); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return err
		}
		if err := tx.Occupancies().DeleteByBooking(ctx, b.ID()); err != nil {
			return err
		}

		res = &CancelResult{
			ReservationID: b.ID(),
			Status:        b.Status(),
			Tier:          d.Tier,
		}
		if err := c.settleIntents(ctx, tx, b, d, reason, res, now); err != nil {
			return err
		}

		ev = booking.NewEvent(b, booking.EventCanceled, from, now).
			With("actor_id", actorID.String()).
			With("tier", string(d.Tier)).
			With("refund_amount", res.RefundAmount)
		if err := tx.Events().Append(ctx, ev); err != nil {
			return err
		}

		if credited {
			entry := ledger.NewAdvanceReversal(b.OwnerID(), b.ID(), b.OwnerAdvanceCredit(), now)
			reversal = &entry
		}
		lockKey = SlotLockKey(b.ConflictGroupID(), b.StartAt(), b.BlockedEndAt())
		return nil
	})
	if err != nil {
		if errs.Is(err, errs.ErrReservationNotFound) ||
			errs.Is(err, refund.ErrCancellationNotAllowed) ||
			errs.Is(err, booking.ErrInvalidTransition) {
			return nil, err
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if reversal != nil {
		c.post(ctx, *reversal)
	}
	c.release(ctx, lockKey, reservationID.String())
	c.publish(ctx, ev)

	slog.Info("reservation canceled",
		"reservation_id", reservationID,
		"actor_id", actorID,
		"tier", res.Tier,
		"refund_amount", res.RefundAmount)
	return res, nil
}

// settleIntents opens a refund for money already taken and closes any
// payment still in flight.
func (c *cancelUseCaseImpl) settleIntents(ctx context.Context, tx shared.Tx, b *booking.Booking, d refund.Decision, reason string, res *CancelResult, now time.Time) error {
	intents, err := tx.PaymentIntents().ListByBooking(ctx, b.ID())
	if err != nil {
		return err
	}
	for _, intent := range intents {
		switch intent.Status {
		case payment.IntentSuccess:
			rf := refund.NewRequested(b.ID(), intent.ID, d, reason, now)
			if err := tx.Refunds().Create(ctx, rf); err != nil {
				return err
			}
			res.RefundAmount = rf.Amount
			res.PlatformFeeRetained = rf.PlatformFeeRetained
			res.RefundID = &rf.ID
		case payment.IntentPending:
			intent.Expire(now)
			if err := tx.PaymentIntents().Update(ctx, intent); err != nil {
				return err
			}
		}
	}
	return nil
}
