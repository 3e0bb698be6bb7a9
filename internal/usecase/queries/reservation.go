package queries

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/queries/reservation_mock.go -package=queriesmock

import (
	"context"
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/booking"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/refund"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/clock"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/errs"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationQueries interface {
	Get(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	CancellationQuote(ctx context.Context, id uuid.UUID) (*CancellationQuote, error)
}

// CancellationQuote is what cancelling right now would pay back.
type CancellationQuote struct {
	ReservationID uuid.UUID
	QuotedAt      time.Time
	Decision      refund.Decision
}

type reservationQueriesImpl struct {
	reads  shared.Reads
	policy refund.Policy
	clock  clock.Clock
}

func NewReservationQueries(uow shared.UnitOfWork, policy refund.Policy, clock clock.Clock) ReservationQueries {
	return &reservationQueriesImpl{reads: uow.Reads(), policy: policy, clock: clock}
}

func (q *reservationQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, err := q.reads.Booking(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrReservationNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return b, nil
}

func (q *reservationQueriesImpl) CancellationQuote(ctx context.Context, id uuid.UUID) (*CancellationQuote, error) {
	b, err := q.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := q.clock.Now()
	return &CancellationQuote{
		ReservationID: id,
		QuotedAt:      now,
		Decision:      q.policy.Evaluate(b, now),
	}, nil
}
