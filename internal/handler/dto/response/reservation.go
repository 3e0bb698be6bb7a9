package response

import (
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/booking"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/commands"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID                     uuid.UUID  `json:"id"`
	ReservationNumber      string     `json:"reservationNumber"`
	PlayerID               uuid.UUID  `json:"playerId"`
	ResourceID             uuid.UUID  `json:"resourceId"`
	ConflictGroupID        uuid.UUID  `json:"conflictGroupId"`
	StartAt                time.Time  `json:"startAt"`
	EndAt                  time.Time  `json:"endAt"`
	BlockedEndAt           time.Time  `json:"blockedEndAt"`
	Status                 string     `json:"status"`
	PaymentStage           string     `json:"paymentStage"`
	TotalAmount            int64      `json:"totalAmount"`
	AdvanceAmount          int64      `json:"advanceAmount"`
	PlatformCommission     int64      `json:"platformCommission"`
	OwnerAdvanceCredit     int64      `json:"ownerAdvanceCredit"`
	OfflineAmountCollected int64      `json:"offlineAmountCollected"`
	RemainingAmount        int64      `json:"remainingAmount"`
	HoldExpiresAt          *time.Time `json:"holdExpiresAt,omitempty"`
	CanceledAt             *time.Time `json:"canceledAt,omitempty"`
	CancelReason           string     `json:"cancelReason,omitempty"`
	CreatedAt              time.Time  `json:"createdAt"`
	UpdatedAt              time.Time  `json:"updatedAt"`
}

func FromBooking(b *booking.Booking) *ReservationResponse {
	res := &ReservationResponse{
		ID:                     b.ID(),
		ReservationNumber:      b.Number(),
		PlayerID:               b.PlayerID(),
		ResourceID:             b.ResourceID(),
		ConflictGroupID:        b.ConflictGroupID(),
		StartAt:                b.StartAt(),
		EndAt:                  b.EndAt(),
		BlockedEndAt:           b.BlockedEndAt(),
		Status:                 b.Status().String(),
		PaymentStage:           string(b.PaymentStage()),
		TotalAmount:            b.TotalAmount(),
		AdvanceAmount:          b.AdvanceAmount(),
		PlatformCommission:     b.PlatformCommission(),
		OwnerAdvanceCredit:     b.OwnerAdvanceCredit(),
		OfflineAmountCollected: b.OfflineAmountCollected(),
		RemainingAmount:        b.Amounts().Remaining - b.OfflineAmountCollected(),
		CreatedAt:              b.CreatedAt(),
		UpdatedAt:              b.UpdatedAt(),
	}
	if b.Status() == booking.StatusHold {
		res.HoldExpiresAt = b.HoldExpiresAt()
	}
	if c := b.Cancellation(); c != nil {
		at := c.At
		res.CanceledAt = &at
		res.CancelReason = c.Reason
	}
	return res
}

type CancelResponse struct {
	ReservationID       uuid.UUID  `json:"reservationId"`
	Status              string     `json:"status"`
	Tier                string     `json:"tier"`
	RefundAmount        int64      `json:"refundAmount"`
	PlatformFeeRetained int64      `json:"platformFeeRetained"`
	RefundID            *uuid.UUID `json:"refundId,omitempty"`
}

func FromCancelResult(r *commands.CancelResult) *CancelResponse {
	return &CancelResponse{
		ReservationID:       r.ReservationID,
		Status:              r.Status.String(),
		Tier:                string(r.Tier),
		RefundAmount:        r.RefundAmount,
		PlatformFeeRetained: r.PlatformFeeRetained,
		RefundID:            r.RefundID,
	}
}

type CancellationQuoteResponse struct {
	ReservationID       uuid.UUID `json:"reservationId"`
	QuotedAt            time.Time `json:"quotedAt"`
	CanCancel           bool      `json:"canCancel"`
	Tier                string    `json:"tier"`
	HoursUntilStart     float64   `json:"hoursUntilStart"`
	RefundableAmount    int64     `json:"refundableAmount"`
	PlatformFeeRetained int64     `json:"platformFeeRetained"`
}

func FromCancellationQuote(q *queries.CancellationQuote) *CancellationQuoteResponse {
	return &CancellationQuoteResponse{
		ReservationID:       q.ReservationID,
		QuotedAt:            q.QuotedAt,
		CanCancel:           q.Decision.CanCancel,
		Tier:                string(q.Decision.Tier),
		HoursUntilStart:     q.Decision.HoursUntilStart,
		RefundableAmount:    q.Decision.RefundableAmount,
		PlatformFeeRetained: q.Decision.PlatformFeeRetained,
	}
}
