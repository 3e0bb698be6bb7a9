//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/booking"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/refund"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/clock"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/errs"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/queries"
	"github.com/sakib-101-git/Sport-Zen-sub000/tests/common/builder"
	"github.com/sakib-101-git/Sport-Zen-sub000/tests/common/memstore"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservationQueries_Get(t *testing.T) {
	store := memstore.New()
	b := builder.NewBookingBuilder().MustBuild(t, booking.StatusConfirmed)
	store.SeedBooking(b)
	q := queries.NewReservationQueries(store, refund.NewPolicy(50), clock.NewMockClock(testNow))

	got, err := q.Get(context.Background(), b.ID())
	require.NoError(t, err)
	assert.Equal(t, b.Number(), got.Number())
	assert.Equal(t, booking.StatusConfirmed, got.Status())

	_, err = q.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, errs.ErrReservationNotFound)
}

func TestReservationQueries_CancellationQuote(t *testing.T) {
	b := builder.NewBookingBuilder().With(func(bb *builder.BookingBuilder) {
		bb.Params.Total = 10000
	}).MustBuild(t, booking.StatusConfirmed)
	start := b.StartAt()

	testCases := []struct {
		name string
		now  time.Time
		want refund.Decision
	}{
		{
			name: "two days ahead",
			now:  start.Add(-48 * time.Hour),
			want: refund.Decision{CanCancel: true, Tier: refund.TierFull, RefundableAmount: 950, PlatformFeeRetained: 50, HoursUntilStart: 48},
		},
		{
			name: "twelve hours ahead",
			now:  start.Add(-12 * time.Hour),
			want: refund.Decision{CanCancel: true, Tier: refund.TierPartial50, RefundableAmount: 450, PlatformFeeRetained: 550, HoursUntilStart: 12},
		},
		{
			name: "one hour ahead",
			now:  start.Add(-time.Hour),
			want: refund.Decision{CanCancel: true, Tier: refund.TierNone, PlatformFeeRetained: 1000, HoursUntilStart: 1},
		},
		{
			name: "already started",
			now:  start.Add(30 * time.Minute),
			want: refund.Decision{Tier: refund.TierNone, PlatformFeeRetained: 1000, HoursUntilStart: -0.5},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := memstore.New()
			store.SeedBooking(b)
			q := queries.NewReservationQueries(store, refund.NewPolicy(50), clock.NewMockClock(tc.now))

			quote, err := q.CancellationQuote(context.Background(), b.ID())
			require.NoError(t, err)
			assert.Equal(t, b.ID(), quote.ReservationID)
			assert.Equal(t, tc.now, quote.QuotedAt)
			if diff := cmp.Diff(tc.want, quote.Decision); diff != "" {
				t.Errorf("quote mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("unknown reservation", func(t *testing.T) {
		q := queries.NewReservationQueries(memstore.New(), refund.NewPolicy(50), clock.NewMockClock(testNow))
		quote, err := q.CancellationQuote(context.Background(), uuid.New())
		assert.ErrorIs(t, err, errs.ErrReservationNotFound)
		assert.Nil(t, quote)
	})
}
