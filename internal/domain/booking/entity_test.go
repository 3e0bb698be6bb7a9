//go:build unit

package booking_test

import (
	"testing"
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/booking"
	"github.com/sakib-101-git/Sport-Zen-sub000/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHold(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		actual, err := b.BuildHold()
		require.NoError(t, err)

		assert.Equal(t, booking.StatusHold, actual.Status())
		assert.Equal(t, booking.PaymentStageAdvancePending, actual.PaymentStage())
		assert.Equal(t, b.Params.StartAt.Add(b.Params.Duration), actual.EndAt())
		assert.Equal(t, actual.EndAt().Add(b.Params.Buffer), actual.BlockedEndAt())
		require.NotNil(t, actual.HoldExpiresAt())
		assert.Equal(t, b.Now.Add(b.Params.HoldWindow), *actual.HoldExpiresAt())
		assert.True(t, actual.IsActive())
	})

	t.Run("amounts follow the money invariant", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Params.Total = 999
		}).BuildHold()
		require.NoError(t, err)

		assert.Equal(t, int64(100), actual.AdvanceAmount())
		assert.Equal(t, int64(50), actual.PlatformCommission())
		assert.Equal(t, int64(50), actual.OwnerAdvanceCredit())
		assert.Equal(t, int64(899), actual.Amounts().Remaining)
	})

	t.Run("zero duration rejected", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Params.Duration = 0
		}).BuildHold()
		assert.ErrorIs(t, err, booking.ErrInvalidTimeRange)
	})

	t.Run("negative total rejected", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Params.Total = -5
		}).BuildHold()
		assert.ErrorIs(t, err, booking.ErrNegativeAmount)
	})
}

func TestLifecycle(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("confirm from hold", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuild(t, booking.StatusHold)
		require.NoError(t, b.Confirm(now))
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		assert.Equal(t, booking.PaymentStageAdvancePaid, b.PaymentStage())
	})

	t.Run("confirm from expired is rejected", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuild(t, booking.StatusExpired)
		assert.ErrorIs(t, b.Confirm(now), booking.ErrInvalidTransition)
	})

	t.Run("late confirm only from expired", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuild(t, booking.StatusExpired)
		require.NoError(t, b.ConfirmLate(now))
		assert.Equal(t, booking.StatusConfirmed, b.Status())

		held := builder.NewBookingBuilder().MustBuild(t, booking.StatusHold)
		assert.ErrorIs(t, held.ConfirmLate(now), booking.ErrInvalidTransition)
	})

	t.Run("expire leaves slot", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuild(t, booking.StatusHold)
		require.NoError(t, b.Expire(now))
		assert.False(t, b.IsActive())
	})

	t.Run("cancel paid booking marks refund pending", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuild(t, booking.StatusHold)
		require.NoError(t, b.Confirm(now))

		actor := uuid.New()
		require.NoError(t, b.Cancel(actor, "rain", now))
		assert.Equal(t, booking.StatusCanceled, b.Status())
		assert.Equal(t, booking.PaymentStageRefundPending, b.PaymentStage())
		require.NotNil(t, b.Cancellation())
		assert.Equal(t, actor, b.Cancellation().By)
		assert.Equal(t, "rain", b.Cancellation().Reason)
	})

	t.Run("completed accepts nothing", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuild(t, booking.StatusCompleted)
		assert.ErrorIs(t, b.Cancel(uuid.New(), "", now), booking.ErrInvalidTransition)
		assert.ErrorIs(t, b.Expire(now), booking.ErrInvalidTransition)
		assert.ErrorIs(t, b.Complete(now), booking.ErrInvalidTransition)
	})
}

func TestDuePredicates(t *testing.T) {
	b := builder.NewBookingBuilder()
	hold, err := b.BuildHold()
	require.NoError(t, err)

	expiresAt := *hold.HoldExpiresAt()
	assert.False(t, hold.IsHoldDue(expiresAt.Add(-time.Second)))
	assert.True(t, hold.IsHoldDue(expiresAt))

	require.NoError(t, hold.Confirm(b.Now))
	assert.False(t, hold.IsHoldDue(expiresAt.Add(time.Hour)))
	assert.False(t, hold.IsCompletionDue(hold.EndAt().Add(-time.Second)))
	assert.True(t, hold.IsCompletionDue(hold.EndAt()))
}

func TestCollectRemaining(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("full remainder marks fully paid", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuild(t, booking.StatusConfirmed)
		remaining := b.Amounts().Remaining

		require.NoError(t, b.CollectRemaining(remaining, now))
		assert.Equal(t, remaining, b.OfflineAmountCollected())
		assert.Equal(t, booking.PaymentStageFullyPaid, b.PaymentStage())
	})

	t.Run("partial remainder keeps stage", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuild(t, booking.StatusConfirmed)
		require.NoError(t, b.CollectRemaining(1, now))
		assert.Equal(t, booking.PaymentStageAdvancePaid, b.PaymentStage())
	})

	t.Run("over collection rejected", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuild(t, booking.StatusConfirmed)
		assert.ErrorIs(t, b.CollectRemaining(b.Amounts().Remaining+1, now), booking.ErrInvalidOfflineAmount)
	})

	t.Run("hold rejected", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuild(t, booking.StatusHold)
		assert.ErrorIs(t, b.CollectRemaining(1, now), booking.ErrOfflinePaymentRejected)
	})
}

func TestOverlaps(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2025, 6, 1, h, m, 0, 0, time.UTC) }

	tests := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		expectOverlap  bool
	}{
		{name: "touching end is free", s1: at(16, 0), e1: at(17, 10), s2: at(17, 10), e2: at(18, 20), expectOverlap: false},
		{name: "one minute inside", s1: at(16, 0), e1: at(17, 10), s2: at(17, 9), e2: at(18, 0), expectOverlap: true},
		{name: "contained", s1: at(16, 0), e1: at(18, 0), s2: at(16, 30), e2: at(17, 0), expectOverlap: true},
		{name: "before", s1: at(16, 0), e1: at(17, 0), s2: at(14, 0), e2: at(16, 0), expectOverlap: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectOverlap, booking.Overlaps(tt.s1, tt.e1, tt.s2, tt.e2))
			assert.Equal(t, tt.expectOverlap, booking.Overlaps(tt.s2, tt.e2, tt.s1, tt.e1))
		})
	}
}
