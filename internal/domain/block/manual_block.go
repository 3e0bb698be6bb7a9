package block

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidRange   = errors.New("manual block must end after it starts")
	ErrAlreadyRemoved = errors.New("manual block already removed")
)

// ManualBlock is an owner-declared exclusive range on a conflict group
// (maintenance, private events). It competes for the slot exactly like a
// reservation does.
type ManualBlock struct {
	ID              uuid.UUID
	ConflictGroupID uuid.UUID
	OwnerID         uuid.UUID
	StartAt         time.Time
	EndAt           time.Time
	Reason          string
	CreatedAt       time.Time
	DeletedAt       *time.Time
}

func New(conflictGroupID, ownerID uuid.UUID, start, end time.Time, reason string, now time.Time) (*ManualBlock, error) {
	if !start.Before(end) {
		return nil, ErrInvalidRange
	}
	return &ManualBlock{
		ID:              uuid.New(),
		ConflictGroupID: conflictGroupID,
		OwnerID:         ownerID,
		StartAt:         start,
		EndAt:           end,
		Reason:          reason,
		CreatedAt:       now,
	}, nil
}

func (b *ManualBlock) Remove(now time.Time) error {
	if b.DeletedAt != nil {
		return ErrAlreadyRemoved
	}
	b.DeletedAt = &now
	return nil
}
