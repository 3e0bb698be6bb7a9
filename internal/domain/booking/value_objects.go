package booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TimeRange is a half-open interval [start, end).
type TimeRange struct {
	start time.Time
	end   time.Time
}

func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !start.Before(end) {
		return TimeRange{}, ErrInvalidTimeRange
	}
	return TimeRange{start: start, end: end}, nil
}

func (r TimeRange) Start() time.Time { return r.start }
func (r TimeRange) End() time.Time   { return r.end }

func (r TimeRange) Duration() time.Duration {
	return r.end.Sub(r.start)
}

func (r TimeRange) Overlaps(other TimeRange) bool {
	return Overlaps(r.start, r.end, other.start, other.end)
}

func (r TimeRange) String() string {
	return fmt.Sprintf("[%s,%s)", r.start.Format(time.RFC3339), r.end.Format(time.RFC3339))
}

// Overlaps is the half-open interval test used everywhere exclusivity matters.
func Overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && end1.After(start2)
}

type PaymentStage string

const (
	PaymentStageAdvancePending PaymentStage = "advance_pending"
	PaymentStageAdvancePaid    PaymentStage = "advance_paid"
	PaymentStageFullyPaid      PaymentStage = "fully_paid"
	PaymentStageRefundPending  PaymentStage = "refund_pending"
)

type Contact struct {
	Name  string
	Phone string
}

type Cancellation struct {
	At     time.Time
	By     uuid.UUID
	Reason string
}
