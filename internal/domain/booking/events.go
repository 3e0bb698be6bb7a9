package booking

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventCreated             EventType = "created"
	EventConfirmed           EventType = "confirmed"
	EventCanceled            EventType = "canceled"
	EventExpired             EventType = "expired"
	EventCompleted           EventType = "completed"
	EventLatePaymentAccepted EventType = "late_payment_accepted"
	EventLatePaymentConflict EventType = "late_payment_conflict"
	EventPaymentFailed       EventType = "payment_failed"
)

// Event is one append-only entry on a reservation's timeline.
type Event struct {
	ID         uuid.UUID      `json:"id"`
	BookingID  uuid.UUID      `json:"booking_id"`
	Type       EventType      `json:"type"`
	FromStatus Status         `json:"from_status,omitempty"`
	ToStatus   Status         `json:"to_status"`
	OwnerID    uuid.UUID      `json:"owner_id"`
	PlayerID   uuid.UUID      `json:"player_id"`
	Data       map[string]any `json:"data,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

func NewEvent(b *Booking, typ EventType, from Status, now time.Time) Event {
	return Event{
		ID:         uuid.New(),
		BookingID:  b.ID(),
		Type:       typ,
		FromStatus: from,
		ToStatus:   b.Status(),
		OwnerID:    b.OwnerID(),
		PlayerID:   b.PlayerID(),
		OccurredAt: now,
	}
}

func (e Event) With(key string, value any) Event {
	data := make(map[string]any, len(e.Data)+1)
	for k, v := range e.Data {
		data[k] = v
	}
	data[key] = value
	e.Data = data
	return e
}

// RoutingKey is the topic used when the event leaves the process.
func (e Event) RoutingKey() string {
	return "booking." + string(e.Type)
}
