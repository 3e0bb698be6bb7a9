package ledger

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindAdvanceCredit   Kind = "advance_credit"
	KindAdvanceReversal Kind = "advance_reversal"
)

// Entry is one signed movement on an owner's balance. A booking carries at
// most one entry per kind, which makes repeated postings harmless.
type Entry struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	BookingID uuid.UUID
	Kind      Kind
	Amount    int64
	CreatedAt time.Time
}

func NewAdvanceCredit(ownerID, bookingID uuid.UUID, credit int64, now time.Time) Entry {
	return Entry{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		BookingID: bookingID,
		Kind:      KindAdvanceCredit,
		Amount:    credit,
		CreatedAt: now,
	}
}

// NewAdvanceReversal is the equal and opposite debit of a prior credit.
func NewAdvanceReversal(ownerID, bookingID uuid.UUID, credit int64, now time.Time) Entry {
	return Entry{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		BookingID: bookingID,
		Kind:      KindAdvanceReversal,
		Amount:    -credit,
		CreatedAt: now,
	}
}
