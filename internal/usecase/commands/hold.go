package commands

//go:generate mockgen -source=hold.go -destination=../../../tests/mock/commands/hold_mock.go -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/availability"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/booking"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/money"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/payment"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/clock"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/config"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/errs"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/metrics"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/shared"

	"github.com/google/uuid"
)

type HoldRequest struct {
	PlayerID         uuid.UUID
	ResourceID       uuid.UUID
	PricingProfileID uuid.UUID
	StartAt          time.Time
	DurationMinutes  int
	Contact          booking.Contact
}

type HoldResult struct {
	ReservationID     uuid.UUID
	ReservationNumber string
	PaymentIntentID   uuid.UUID
	GatewayTranID     string
	TotalAmount       int64
	AdvanceAmount     int64
	Peak              bool
	StartAt           time.Time
	EndAt             time.Time
	HoldExpiresAt     time.Time
}

type HoldCommands interface {
	CreateHold(ctx context.Context, req HoldRequest) (*HoldResult, error)
}

type holdUseCaseImpl struct {
	sideEffects
	limiter RateLimiter
	cfg     config.BookingConfig
	clock   clock.Clock
}

func NewHoldUseCase(
	uow shared.UnitOfWork,
	locker AdvisoryLocker,
	limiter RateLimiter,
	publisher EventPublisher,
	m *metrics.Metrics,
	cfg config.BookingConfig,
	clock clock.Clock,
) HoldCommands {
	return &holdUseCaseImpl{
		sideEffects: sideEffects{uow: uow, locker: locker, publisher: publisher, metrics: m},
		limiter:     limiter,
		cfg:         cfg,
		clock:       clock,
	}
}

func (h *holdUseCaseImpl) rates() money.Rates {
	return money.Rates{
		Advance:    money.BasisPoints(h.cfg.AdvanceRateBps),
		Commission: money.BasisPoints(h.cfg.CommissionRateBps),
	}
}

func (h *holdUseCaseImpl) CreateHold(ctx context.Context, req HoldRequest) (*HoldResult, error) {
	if err := h.checkRateLimit(ctx, req.PlayerID); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	target, price, peak, err := h.validate(ctx, req, now)
	if err != nil {
		h.metrics.Hold("rejected")
		return nil, err
	}

	params := booking.HoldParams{
		PlayerID:         req.PlayerID,
		ResourceID:       target.ResourceID,
		PricingProfileID: target.Profile.ID,
		ConflictGroupID:  target.ConflictGroupID,
		FacilityID:       target.FacilityID,
		OwnerID:          target.OwnerID,
		StartAt:          req.StartAt,
		Duration:         time.Duration(req.DurationMinutes) * time.Minute,
		Buffer:           target.Profile.Buffer(),
		Total:            price,
		Rates:            h.rates(),
		HoldWindow:       h.cfg.HoldWindow,
		Contact:          req.Contact,
	}
	blockedEnd := params.StartAt.Add(params.Duration + params.Buffer)
	lockKey := SlotLockKey(target.ConflictGroupID, params.StartAt, blockedEnd)
	token := uuid.NewString()
	locked := h.acquire(ctx, lockKey, token, h.cfg.LockTTL)

	b, intent, err := h.persistHold(ctx, params, now)
	if locked {
		h.release(ctx, lockKey, token)
	}
	if err != nil {
		if errs.Is(err, booking.ErrSlotConflict) {
			h.metrics.Hold("conflict")
		} else {
			h.metrics.Hold("error")
		}
		return nil, err
	}

	// The slot now belongs to the reservation until the hold window runs out.
	h.acquire(ctx, lockKey, b.ID().String(), h.cfg.HoldWindow)
	h.metrics.Hold("created")
	h.publish(ctx, booking.NewEvent(b, booking.EventCreated, "", now))

	slog.Info("hold created",
		"reservation_id", b.ID(),
		"reservation_number", b.Number(),
		"conflict_group_id", b.ConflictGroupID(),
		"start_at", b.StartAt(),
		"hold_expires_at", *b.HoldExpiresAt())

	return &HoldResult{
		ReservationID:     b.ID(),
		ReservationNumber: b.Number(),
		PaymentIntentID:   intent.ID,
		GatewayTranID:     intent.GatewayTranID,
		TotalAmount:       b.TotalAmount(),
		AdvanceAmount:     b.AdvanceAmount(),
		Peak:              peak,
		StartAt:           b.StartAt(),
		EndAt:             b.EndAt(),
		HoldExpiresAt:     *b.HoldExpiresAt(),
	}, nil
}

// checkRateLimit fails open: a limiter outage must not stop sales.
func (h *holdUseCaseImpl) checkRateLimit(ctx context.Context, playerID uuid.UUID) error {
	allowed, err := h.limiter.Allow(ctx, playerID.String())
	if err != nil {
		slog.Warn("rate limiter unavailable", "player_id", playerID, "error", err)
		return nil
	}
	if !allowed {
		h.metrics.Hold("rate_limited")
		return errs.ErrRateLimited
	}
	return nil
}

func (h *holdUseCaseImpl) validate(ctx context.Context, req HoldRequest, now time.Time) (*shared.HoldTarget, int64, bool, error) {
	target, err := h.uow.Reads().HoldTarget(ctx, req.ResourceID, req.PricingProfileID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, 0, false, errs.ErrResourceNotFound
		}
		return nil, 0, false, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if err := availability.ValidateCandidate(target.Profile, req.StartAt, req.DurationMinutes, now); err != nil {
		return nil, 0, false, err
	}
	if !target.FacilityApproved {
		return nil, 0, false, errs.ErrFacilityNotApproved
	}
	if !target.SubscriptionActive() {
		return nil, 0, false, errs.ErrSubscriptionInactive
	}

	price, peak, err := target.Profile.PriceFor(req.StartAt, req.DurationMinutes)
	if err != nil {
		return nil, 0, false, err
	}
	return target, price, peak, nil
}

func (h *holdUseCaseImpl) persistHold(ctx context.Context, params booking.HoldParams, now time.Time) (*booking.Booking, *payment.Intent, error) {
	var (
		b      *booking.Booking
		intent *payment.Intent
	)
	err := h.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		number, err := tx.Bookings().NextNumber(ctx, now)
		if err != nil {
			return err
		}
		p := params
		p.ID = uuid.New()
		p.Number = number

		b, err = booking.NewHold(p, now)
		if err != nil {
			return err
		}
		if err := tx.Bookings().Create(ctx, b); err != nil {
			return err
		}

		id := b.ID()
		err = tx.Occupancies().Insert(ctx, shared.Occupancy{
			ConflictGroupID: b.ConflictGroupID(),
			BookingID:       &id,
			StartAt:         b.StartAt(),
			BlockedEndAt:    b.BlockedEndAt(),
		})
		if err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return &booking.SlotConflictError{
					ConflictGroupID: b.ConflictGroupID(),
					Start:           b.StartAt(),
					BlockedEnd:      b.BlockedEndAt(),
				}
			}
			return err
		}

		intent = payment.NewIntent(b.ID(), b.AdvanceAmount(), now)
		if err := tx.PaymentIntents().Create(ctx, intent); err != nil {
			return err
		}
		return tx.Events().Append(ctx, booking.NewEvent(b, booking.EventCreated, "", now))
	})
	if err != nil {
		if errs.Is(err, booking.ErrSlotConflict) || isDomainError(err) {
			return nil, nil, err
		}
		return nil, nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return b, intent, nil
}

func isDomainError(err error) bool {
	return errs.Is(err, booking.ErrInvalidTimeRange) ||
		errs.Is(err, booking.ErrNegativeAmount) ||
		errs.Is(err, money.ErrInvalidRate) ||
		errs.Is(err, money.ErrNegativeAmount)
}
