package refund

import (
	"errors"
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/booking"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/money"
)

var ErrCancellationNotAllowed = errors.New("cancellation is not allowed for this reservation")

type Tier string

const (
	TierFull                Tier = "FULL"
	TierPartial50           Tier = "PARTIAL_50"
	TierNone                Tier = "NONE"
	TierLatePaymentConflict Tier = "late_payment_conflict"
)

const (
	fullRefundRate    money.BasisPoints = 10000
	partialRefundRate money.BasisPoints = 5000

	fullTierAbove    = 24 * time.Hour
	partialTierFloor = 6 * time.Hour
)

// Policy turns time-until-start into a refund entitlement. The rounding per
// tier is contractual: ceil for FULL, floor for PARTIAL_50.
type Policy struct {
	ProcessingFee int64
}

func NewPolicy(processingFee int64) Policy {
	return Policy{ProcessingFee: processingFee}
}

type Decision struct {
	CanCancel           bool
	Tier                Tier
	RefundableAmount    int64
	PlatformFeeRetained int64
	HoursUntilStart     float64
}

func (p Policy) Evaluate(b *booking.Booking, now time.Time) Decision {
	until := b.StartAt().Sub(now)
	advance := b.AdvanceAmount()

	d := Decision{
		CanCancel:       b.Status().Occupying() && until > 0,
		HoursUntilStart: until.Hours(),
	}

	var refundable int64
	switch {
	case until > fullTierAbove:
		d.Tier = TierFull
		refundable = money.CeilRate(advance, fullRefundRate)
	case until >= partialTierFloor:
		d.Tier = TierPartial50
		refundable = money.FloorRate(advance, partialRefundRate)
	default:
		d.Tier = TierNone
	}

	if d.Tier != TierNone {
		d.RefundableAmount = max(0, refundable-p.ProcessingFee)
	}
	d.PlatformFeeRetained = advance - d.RefundableAmount
	return d
}
