package request

import (
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateManualBlockRequest struct {
	ConflictGroupID uuid.UUID `json:"conflict_group_id" binding:"required"`
	StartAt         time.Time `json:"start_at" binding:"required"`
	EndAt           time.Time `json:"end_at" binding:"required"`
	Reason          string    `json:"reason" binding:"max=500"`
}

func (r *CreateManualBlockRequest) ToCommand(ownerID uuid.UUID) commands.ManualBlockRequest {
	return commands.ManualBlockRequest{
		ConflictGroupID: r.ConflictGroupID,
		OwnerID:         ownerID,
		StartAt:         r.StartAt,
		EndAt:           r.EndAt,
		Reason:          r.Reason,
	}
}
