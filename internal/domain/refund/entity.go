package refund

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusRequested  Status = "REQUESTED"
	StatusApproved   Status = "APPROVED"
	StatusProcessing Status = "PROCESSING"
	StatusRefunded   Status = "REFUNDED"
	StatusRejected   Status = "REJECTED"
)

type Refund struct {
	ID                  uuid.UUID
	BookingID           uuid.UUID
	PaymentIntentID     uuid.UUID
	Amount              int64
	PlatformFeeRetained int64
	Tier                Tier
	Status              Status
	Reason              string
	CreatedAt           time.Time
}

func NewRequested(bookingID, intentID uuid.UUID, d Decision, reason string, now time.Time) Refund {
	return Refund{
		ID:                  uuid.New(),
		BookingID:           bookingID,
		PaymentIntentID:     intentID,
		Amount:              d.RefundableAmount,
		PlatformFeeRetained: d.PlatformFeeRetained,
		Tier:                d.Tier,
		Status:              StatusRequested,
		Reason:              reason,
		CreatedAt:           now,
	}
}

// NewLatePaymentConflict returns the whole received amount; the buyer lost a
// slot they paid for and no fee is kept.
func NewLatePaymentConflict(bookingID, intentID uuid.UUID, received int64, now time.Time) Refund {
	return Refund{
		ID:              uuid.New(),
		BookingID:       bookingID,
		PaymentIntentID: intentID,
		Amount:          received,
		Tier:            TierLatePaymentConflict,
		Status:          StatusApproved,
		Reason:          "payment arrived after the slot was taken",
		CreatedAt:       now,
	}
}
