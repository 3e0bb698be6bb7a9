package payment

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrIntentFinalized = errors.New("payment intent is already final")

type IntentStatus string

const (
	IntentPending             IntentStatus = "PENDING"
	IntentSuccess             IntentStatus = "SUCCESS"
	IntentFailed              IntentStatus = "FAILED"
	IntentExpired             IntentStatus = "EXPIRED"
	IntentLateSuccessConflict IntentStatus = "LATE_SUCCESS_CONFLICT"
)

func (s IntentStatus) IsTerminal() bool {
	return s == IntentSuccess || s == IntentFailed || s == IntentLateSuccessConflict
}

type Intent struct {
	ID            uuid.UUID
	BookingID     uuid.UUID
	Amount        int64
	Status        IntentStatus
	GatewayTranID string
	GatewayValID  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewIntent derives the gateway transaction id from the intent id so a
// delivery can be correlated even when value_a is stripped.
func NewIntent(bookingID uuid.UUID, amount int64, now time.Time) *Intent {
	id := uuid.New()
	return &Intent{
		ID:            id,
		BookingID:     bookingID,
		Amount:        amount,
		Status:        IntentPending,
		GatewayTranID: "SZ" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (i *Intent) settle(to IntentStatus, valID string, now time.Time) error {
	if i.Status.IsTerminal() {
		return ErrIntentFinalized
	}
	i.Status = to
	if valID != "" {
		i.GatewayValID = valID
	}
	i.UpdatedAt = now
	return nil
}

// MarkSucceeded is legal from PENDING and, for a late payment, EXPIRED.
func (i *Intent) MarkSucceeded(valID string, now time.Time) error {
	return i.settle(IntentSuccess, valID, now)
}

func (i *Intent) MarkFailed(valID string, now time.Time) error {
	return i.settle(IntentFailed, valID, now)
}

func (i *Intent) MarkLateConflict(valID string, now time.Time) error {
	return i.settle(IntentLateSuccessConflict, valID, now)
}

// Expire only moves a PENDING intent; anything else is left untouched.
func (i *Intent) Expire(now time.Time) bool {
	if i.Status != IntentPending {
		return false
	}
	i.Status = IntentExpired
	i.UpdatedAt = now
	return true
}
