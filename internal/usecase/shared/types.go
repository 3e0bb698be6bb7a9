package shared

import (
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/pricing"

	"github.com/google/uuid"
)

// HoldTarget is everything CreateHold must know about a resource before
// touching storage.
type HoldTarget struct {
	ResourceID         uuid.UUID
	FacilityID         uuid.UUID
	OwnerID            uuid.UUID
	ConflictGroupID    uuid.UUID
	FacilityApproved   bool
	SubscriptionStatus string
	Profile            pricing.Profile
}

func (t HoldTarget) SubscriptionActive() bool {
	return t.SubscriptionStatus == SubscriptionActive || t.SubscriptionStatus == SubscriptionTrialing
}

const (
	SubscriptionActive   = "active"
	SubscriptionTrialing = "trialing"
)

// Occupancy is one row of the exclusivity table: exactly one of BookingID
// and BlockID is set.
type Occupancy struct {
	ID              uuid.UUID
	ConflictGroupID uuid.UUID
	BookingID       *uuid.UUID
	BlockID         *uuid.UUID
	StartAt         time.Time
	BlockedEndAt    time.Time
}

type IdempotencyStatus string

const (
	IdempotencyProcessing IdempotencyStatus = "processing"
	IdempotencyCompleted  IdempotencyStatus = "completed"
)

type IdempotencyRecord struct {
	Key       string
	Scope     string
	Status    IdempotencyStatus
	Result    []byte
	ExpiresAt time.Time
}
