package response

import (
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/commands"

	"github.com/google/uuid"
)

type WebhookResponse struct {
	Accepted      bool       `json:"accepted"`
	ReservationID *uuid.UUID `json:"reservationId,omitempty"`
	Outcome       string     `json:"outcome"`
	Message       string     `json:"message"`
	Replayed      bool       `json:"replayed"`
}

func FromWebhookResult(r *commands.WebhookResult) *WebhookResponse {
	return &WebhookResponse{
		Accepted:      r.Accepted,
		ReservationID: r.ReservationID,
		Outcome:       string(r.Outcome),
		Message:       r.Message,
		Replayed:      r.Replayed,
	}
}
