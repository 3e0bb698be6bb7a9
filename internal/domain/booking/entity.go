package booking

import (
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/money"

	"github.com/google/uuid"
)

type HoldParams struct {
	ID               uuid.UUID
	Number           string
	PlayerID         uuid.UUID
	ResourceID       uuid.UUID
	PricingProfileID uuid.UUID
	ConflictGroupID  uuid.UUID
	FacilityID       uuid.UUID
	OwnerID          uuid.UUID
	StartAt          time.Time
	Duration         time.Duration
	Buffer           time.Duration
	Total            int64
	Rates            money.Rates
	HoldWindow       time.Duration
	Contact          Contact
}

type Booking struct {
	id               uuid.UUID
	number           string
	playerID         uuid.UUID
	resourceID       uuid.UUID
	pricingProfileID uuid.UUID
	conflictGroupID  uuid.UUID
	facilityID       uuid.UUID
	ownerID          uuid.UUID
	slot             TimeRange
	blockedEndAt     time.Time
	status           Status
	paymentStage     PaymentStage
	amounts          money.Breakdown
	offlineCollected int64
	holdExpiresAt    *time.Time
	contact          Contact
	cancellation     *Cancellation
	deletedAt        *time.Time
	createdAt        time.Time
	updatedAt        time.Time
}

func NewHold(p HoldParams, now time.Time) (*Booking, error) {
	slot, err := NewTimeRange(p.StartAt, p.StartAt.Add(p.Duration))
	if err != nil {
		return nil, err
	}
	if p.Buffer < 0 {
		return nil, ErrInvalidTimeRange
	}
	if p.Total < 0 {
		return nil, ErrNegativeAmount
	}

	amounts, err := money.Split(p.Total, p.Rates)
	if err != nil {
		return nil, err
	}

	id := p.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	expiresAt := now.Add(p.HoldWindow)

	return &Booking{
		id:               id,
		number:           p.Number,
		playerID:         p.PlayerID,
		resourceID:       p.ResourceID,
		pricingProfileID: p.PricingProfileID,
		conflictGroupID:  p.ConflictGroupID,
		facilityID:       p.FacilityID,
		ownerID:          p.OwnerID,
		slot:             slot,
		blockedEndAt:     slot.End().Add(p.Buffer),
		status:           StatusHold,
		paymentStage:     PaymentStageAdvancePending,
		amounts:          amounts,
		holdExpiresAt:    &expiresAt,
		contact:          p.Contact,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// Snapshot is the flat persisted form of a Booking.
type Snapshot struct {
	ID               uuid.UUID
	Number           string
	PlayerID         uuid.UUID
	ResourceID       uuid.UUID
	PricingProfileID uuid.UUID
	ConflictGroupID  uuid.UUID
	FacilityID       uuid.UUID
	OwnerID          uuid.UUID
	StartAt          time.Time
	EndAt            time.Time
	BlockedEndAt     time.Time
	Status           Status
	PaymentStage     PaymentStage
	TotalAmount      int64
	AdvanceAmount    int64
	Commission       int64
	OwnerCredit      int64
	OfflineCollected int64
	HoldExpiresAt    *time.Time
	Contact          Contact
	Cancellation     *Cancellation
	DeletedAt        *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func Reconstruct(s Snapshot) *Booking {
	return &Booking{
		id:               s.ID,
		number:           s.Number,
		playerID:         s.PlayerID,
		resourceID:       s.ResourceID,
		pricingProfileID: s.PricingProfileID,
		conflictGroupID:  s.ConflictGroupID,
		facilityID:       s.FacilityID,
		ownerID:          s.OwnerID,
		slot:             TimeRange{start: s.StartAt, end: s.EndAt},
		blockedEndAt:     s.BlockedEndAt,
		status:           s.Status,
		paymentStage:     s.PaymentStage,
		amounts: money.Breakdown{
			Total:       s.TotalAmount,
			Advance:     s.AdvanceAmount,
			Commission:  s.Commission,
			OwnerCredit: s.OwnerCredit,
			Remaining:   money.Remaining(s.TotalAmount, s.AdvanceAmount),
		},
		offlineCollected: s.OfflineCollected,
		holdExpiresAt:    s.HoldExpiresAt,
		contact:          s.Contact,
		cancellation:     s.Cancellation,
		deletedAt:        s.DeletedAt,
		createdAt:        s.CreatedAt,
		updatedAt:        s.UpdatedAt,
	}
}

func (b *Booking) Snapshot() Snapshot {
	return Snapshot{
		ID:               b.id,
		Number:           b.number,
		PlayerID:         b.playerID,
		ResourceID:       b.resourceID,
		PricingProfileID: b.pricingProfileID,
		ConflictGroupID:  b.conflictGroupID,
		FacilityID:       b.facilityID,
		OwnerID:          b.ownerID,
		StartAt:          b.slot.Start(),
		EndAt:            b.slot.End(),
		BlockedEndAt:     b.blockedEndAt,
		Status:           b.status,
		PaymentStage:     b.paymentStage,
		TotalAmount:      b.amounts.Total,
		AdvanceAmount:    b.amounts.Advance,
		Commission:       b.amounts.Commission,
		OwnerCredit:      b.amounts.OwnerCredit,
		OfflineCollected: b.offlineCollected,
		HoldExpiresAt:    b.holdExpiresAt,
		Contact:          b.contact,
		Cancellation:     b.cancellation,
		DeletedAt:        b.deletedAt,
		CreatedAt:        b.createdAt,
		UpdatedAt:        b.updatedAt,
	}
}

func (b *Booking) transition(to Status, now time.Time) error {
	if err := ValidateTransition(b.status, to); err != nil {
		return err
	}
	b.status = to
	b.updatedAt = now
	return nil
}

func (b *Booking) Confirm(now time.Time) error {
	if b.status != StatusHold {
		return &InvalidTransitionError{From: b.status, To: StatusConfirmed}
	}
	if err := b.transition(StatusConfirmed, now); err != nil {
		return err
	}
	b.paymentStage = PaymentStageAdvancePaid
	return nil
}

// ConfirmLate resurrects an expired hold after its payment arrived late.
// The caller is responsible for re-claiming the slot.
func (b *Booking) ConfirmLate(now time.Time) error {
	if b.status != StatusExpired {
		return &InvalidTransitionError{From: b.status, To: StatusConfirmed}
	}
	if err := b.transition(StatusConfirmed, now); err != nil {
		return err
	}
	b.paymentStage = PaymentStageAdvancePaid
	return nil
}

func (b *Booking) Expire(now time.Time) error {
	return b.transition(StatusExpired, now)
}

func (b *Booking) Cancel(actorID uuid.UUID, reason string, now time.Time) error {
	wasPaid := b.paymentStage == PaymentStageAdvancePaid || b.paymentStage == PaymentStageFullyPaid
	if err := b.transition(StatusCanceled, now); err != nil {
		return err
	}
	b.cancellation = &Cancellation{At: now, By: actorID, Reason: reason}
	if wasPaid {
		b.paymentStage = PaymentStageRefundPending
	}
	return nil
}

func (b *Booking) Complete(now time.Time) error {
	return b.transition(StatusCompleted, now)
}

// CollectRemaining records money the owner took at the venue.
func (b *Booking) CollectRemaining(amount int64, now time.Time) error {
	if b.status != StatusConfirmed {
		return ErrOfflinePaymentRejected
	}
	outstanding := b.amounts.Remaining - b.offlineCollected
	if amount <= 0 || amount > outstanding {
		return ErrInvalidOfflineAmount
	}
	b.offlineCollected += amount
	if b.offlineCollected == b.amounts.Remaining {
		b.paymentStage = PaymentStageFullyPaid
	}
	b.updatedAt = now
	return nil
}

// IsActive is the single answer to "does this reservation occupy its slot".
func (b *Booking) IsActive() bool {
	return b.deletedAt == nil && b.status.Occupying()
}

func (b *Booking) IsHoldDue(now time.Time) bool {
	return b.status == StatusHold && b.holdExpiresAt != nil && !now.Before(*b.holdExpiresAt)
}

func (b *Booking) IsCompletionDue(now time.Time) bool {
	return b.status == StatusConfirmed && !now.Before(b.slot.End())
}

func (b *Booking) HasStarted(now time.Time) bool {
	return !now.Before(b.slot.Start())
}

func (b *Booking) ID() uuid.UUID                 { return b.id }
func (b *Booking) Number() string                { return b.number }
func (b *Booking) PlayerID() uuid.UUID           { return b.playerID }
func (b *Booking) ResourceID() uuid.UUID         { return b.resourceID }
func (b *Booking) PricingProfileID() uuid.UUID   { return b.pricingProfileID }
func (b *Booking) ConflictGroupID() uuid.UUID    { return b.conflictGroupID }
func (b *Booking) FacilityID() uuid.UUID         { return b.facilityID }
func (b *Booking) OwnerID() uuid.UUID            { return b.ownerID }
func (b *Booking) Slot() TimeRange               { return b.slot }
func (b *Booking) StartAt() time.Time            { return b.slot.Start() }
func (b *Booking) EndAt() time.Time              { return b.slot.End() }
func (b *Booking) BlockedEndAt() time.Time       { return b.blockedEndAt }
func (b *Booking) Status() Status                { return b.status }
func (b *Booking) PaymentStage() PaymentStage    { return b.paymentStage }
func (b *Booking) Amounts() money.Breakdown      { return b.amounts }
func (b *Booking) TotalAmount() int64            { return b.amounts.Total }
func (b *Booking) AdvanceAmount() int64          { return b.amounts.Advance }
func (b *Booking) PlatformCommission() int64     { return b.amounts.Commission }
func (b *Booking) OwnerAdvanceCredit() int64     { return b.amounts.OwnerCredit }
func (b *Booking) OfflineAmountCollected() int64 { return b.offlineCollected }
func (b *Booking) HoldExpiresAt() *time.Time     { return b.holdExpiresAt }
func (b *Booking) Contact() Contact              { return b.contact }
func (b *Booking) Cancellation() *Cancellation   { return b.cancellation }
func (b *Booking) CreatedAt() time.Time          { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time          { return b.updatedAt }
