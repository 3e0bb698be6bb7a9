package booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrSlotConflict           = errors.New("slot is no longer available")
	ErrInvalidTimeRange       = errors.New("start must be before end")
	ErrNegativeAmount         = errors.New("amount cannot be negative")
	ErrInvalidOfflineAmount   = errors.New("offline amount must be positive and within the remaining balance")
	ErrOfflinePaymentRejected = errors.New("offline payment requires a confirmed reservation")
)

type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition: %s -> %s", e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// SlotConflictError carries the attempted range so callers can tell the user
// which slot was lost.
type SlotConflictError struct {
	ConflictGroupID uuid.UUID
	ReservationID   uuid.UUID
	Start           time.Time
	BlockedEnd      time.Time
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("slot conflict in group %s for [%s, %s)",
		e.ConflictGroupID, e.Start.Format(time.RFC3339), e.BlockedEnd.Format(time.RFC3339))
}

func (e *SlotConflictError) Is(target error) bool {
	return target == ErrSlotConflict
}
