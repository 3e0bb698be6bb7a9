package response

import (
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/commands"

	"github.com/google/uuid"
)

type HoldResponse struct {
	ReservationID     uuid.UUID `json:"reservationId"`
	ReservationNumber string    `json:"reservationNumber"`
	PaymentIntentID   uuid.UUID `json:"paymentIntentId"`
	GatewayTranID     string    `json:"gatewayTranId"`
	TotalAmount       int64     `json:"totalAmount"`
	AdvanceAmount     int64     `json:"advanceAmount"`
	Peak              bool      `json:"peak"`
	StartAt           time.Time `json:"startAt"`
	EndAt             time.Time `json:"endAt"`
	HoldExpiresAt     time.Time `json:"holdExpiresAt"`
}

func FromHoldResult(r *commands.HoldResult) *HoldResponse {
	return &HoldResponse{
		ReservationID:     r.ReservationID,
		ReservationNumber: r.ReservationNumber,
		PaymentIntentID:   r.PaymentIntentID,
		GatewayTranID:     r.GatewayTranID,
		TotalAmount:       r.TotalAmount,
		AdvanceAmount:     r.AdvanceAmount,
		Peak:              r.Peak,
		StartAt:           r.StartAt,
		EndAt:             r.EndAt,
		HoldExpiresAt:     r.HoldExpiresAt,
	}
}
