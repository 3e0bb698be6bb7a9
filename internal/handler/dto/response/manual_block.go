package response

import (
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/block"

	"github.com/google/uuid"
)

type ManualBlockResponse struct {
	ID              uuid.UUID `json:"id"`
	ConflictGroupID uuid.UUID `json:"conflictGroupId"`
	OwnerID         uuid.UUID `json:"ownerId"`
	StartAt         time.Time `json:"startAt"`
	EndAt           time.Time `json:"endAt"`
	Reason          string    `json:"reason,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

func FromManualBlock(b *block.ManualBlock) *ManualBlockResponse {
	return &ManualBlockResponse{
		ID:              b.ID,
		ConflictGroupID: b.ConflictGroupID,
		OwnerID:         b.OwnerID,
		StartAt:         b.StartAt,
		EndAt:           b.EndAt,
		Reason:          b.Reason,
		CreatedAt:       b.CreatedAt,
	}
}
