package queries

//go:generate mockgen -source=availability.go -destination=../../../tests/mock/queries/availability_mock.go -package=queriesmock

import (
	"context"
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/availability"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/booking"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/clock"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/errs"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/shared"

	"github.com/google/uuid"
)

// occupantHorizon covers every slot a day can produce, including ones that
// run past midnight with their buffer.
const occupantHorizon = 48 * time.Hour

type AvailabilityQueries interface {
	Grid(ctx context.Context, conflictGroupID, pricingProfileID uuid.UUID, date time.Time) (*availability.Grid, error)
	IsSlotFree(ctx context.Context, conflictGroupID uuid.UUID, start, blockedEnd time.Time, excludeReservationID *uuid.UUID) (bool, error)
	HasGapWithin(ctx context.Context, conflictGroupID uuid.UUID, windowStart, windowEnd time.Time, requiredMinutes, leadTimeMinutes int) (bool, error)
}

type availabilityQueriesImpl struct {
	reads shared.Reads
	clock clock.Clock
}

func NewAvailabilityQueries(uow shared.UnitOfWork, clock clock.Clock) AvailabilityQueries {
	return &availabilityQueriesImpl{reads: uow.Reads(), clock: clock}
}

// Grid reads date's calendar day in the facility's own time zone.
func (q *availabilityQueriesImpl) Grid(ctx context.Context, conflictGroupID, pricingProfileID uuid.UUID, date time.Time) (*availability.Grid, error) {
	profile, err := q.reads.Profile(ctx, pricingProfileID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrResourceNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	loc := profile.Location
	if loc == nil {
		loc = time.UTC
	}
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)

	occupants, err := q.reads.Occupants(ctx, conflictGroupID, day, day.Add(occupantHorizon))
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &availability.Grid{
		ConflictGroupID:  conflictGroupID,
		PricingProfileID: pricingProfileID,
		Date:             day,
		Slots:            availability.ComputeGrid(*profile, day, occupants, q.clock.Now()),
	}, nil
}

func (q *availabilityQueriesImpl) IsSlotFree(ctx context.Context, conflictGroupID uuid.UUID, start, blockedEnd time.Time, excludeReservationID *uuid.UUID) (bool, error) {
	if !start.Before(blockedEnd) {
		return false, booking.ErrInvalidTimeRange
	}
	free, err := q.reads.IsSlotFree(ctx, conflictGroupID, start, blockedEnd, excludeReservationID)
	if err != nil {
		return false, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return free, nil
}

func (q *availabilityQueriesImpl) HasGapWithin(ctx context.Context, conflictGroupID uuid.UUID, windowStart, windowEnd time.Time, requiredMinutes, leadTimeMinutes int) (bool, error) {
	if !windowStart.Before(windowEnd) || requiredMinutes <= 0 {
		return false, nil
	}
	occupants, err := q.reads.Occupants(ctx, conflictGroupID, windowStart, windowEnd)
	if err != nil {
		return false, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return availability.HasGapWithin(occupants, windowStart, windowEnd, requiredMinutes, leadTimeMinutes, q.clock.Now()), nil
}
