package request

import (
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/booking"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateHoldRequest struct {
	ResourceID       uuid.UUID `json:"resource_id" binding:"required"`
	PricingProfileID uuid.UUID `json:"pricing_profile_id" binding:"required"`
	StartAt          time.Time `json:"start_at" binding:"required"`
	DurationMinutes  int       `json:"duration_minutes" binding:"required,min=1,max=1440"`
	ContactName      string    `json:"contact_name" binding:"max=100"`
	ContactPhone     string    `json:"contact_phone" binding:"max=20"`
}

func (r *CreateHoldRequest) ToCommand(playerID uuid.UUID) commands.HoldRequest {
	return commands.HoldRequest{
		PlayerID:         playerID,
		ResourceID:       r.ResourceID,
		PricingProfileID: r.PricingProfileID,
		StartAt:          r.StartAt,
		DurationMinutes:  r.DurationMinutes,
		Contact: booking.Contact{
			Name:  r.ContactName,
			Phone: r.ContactPhone,
		},
	}
}
