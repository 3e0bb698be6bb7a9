package response

import (
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/availability"

	"github.com/google/uuid"
)

type SlotResponse struct {
	StartAt         time.Time `json:"startAt"`
	EndAt           time.Time `json:"endAt"`
	BlockedEndAt    time.Time `json:"blockedEndAt"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	Price           int64     `json:"price"`
	Peak            bool      `json:"peak"`
}

type AvailabilityResponse struct {
	ConflictGroupID  uuid.UUID      `json:"conflictGroupId"`
	PricingProfileID uuid.UUID      `json:"pricingProfileId"`
	Date             string         `json:"date"`
	Slots            []SlotResponse `json:"slots"`
}

func FromGrid(g *availability.Grid) *AvailabilityResponse {
	slots := make([]SlotResponse, len(g.Slots))
	for i, s := range g.Slots {
		slots[i] = SlotResponse{
			StartAt:         s.Start,
			EndAt:           s.End,
			BlockedEndAt:    s.BlockedEnd,
			DurationMinutes: s.DurationMinutes,
			Status:          string(s.Status),
			Price:           s.Price,
			Peak:            s.Peak,
		}
	}
	return &AvailabilityResponse{
		ConflictGroupID:  g.ConflictGroupID,
		PricingProfileID: g.PricingProfileID,
		Date:             g.Date.Format("2006-01-02"),
		Slots:            slots,
	}
}
