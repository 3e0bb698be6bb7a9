//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/booking"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/ledger"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/payment"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/refund"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra/broker"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra/redislock"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/errs"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/commands"
	"github.com/sakib-101-git/Sport-Zen-sub000/tests/common/builder"
	commandsmock "github.com/sakib-101-git/Sport-Zen-sub000/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func (f *fixture) cancelUseCase(publisher commands.EventPublisher) commands.CancelCommands {
	if publisher == nil {
		publisher = broker.NewLogPublisher(nil)
	}
	return commands.NewCancelUseCase(f.store, redislock.Noop{}, publisher, nil, refund.NewPolicy(f.cfg.Booking.ProcessingFee), f.clock)
}

// seedPaid stores a confirmed booking whose advance of 1000 was paid.
func (f *fixture) seedPaid(t *testing.T) (*booking.Booking, *payment.Intent) {
	t.Helper()
	b := f.bookingBuilder().With(func(b *builder.BookingBuilder) {
		b.Params.Total = 10000
	}).MustBuild(t, booking.StatusConfirmed)
	intent := payment.NewIntent(b.ID(), b.AdvanceAmount(), f.clock.Now())
	require.NoError(t, intent.MarkSucceeded("VAL-1", f.clock.Now()))
	f.store.SeedBooking(b)
	f.store.SeedIntent(intent)
	return b, intent
}

func TestCancel_RefundTiers(t *testing.T) {
	start := at(16, 0)

	testCases := []struct {
		name       string
		now        time.Time
		tier       refund.Tier
		refund     int64
		feeRetains int64
	}{
		{name: "more than 24h ahead", now: start.Add(-24*time.Hour - time.Minute), tier: refund.TierFull, refund: 950, feeRetains: 50},
		{name: "exactly 24h ahead", now: start.Add(-24 * time.Hour), tier: refund.TierPartial50, refund: 450, feeRetains: 550},
		{name: "exactly 6h ahead", now: start.Add(-6 * time.Hour), tier: refund.TierPartial50, refund: 450, feeRetains: 550},
		{name: "under 6h ahead", now: start.Add(-6*time.Hour + time.Minute), tier: refund.TierNone, refund: 0, feeRetains: 1000},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			b, intent := f.seedPaid(t)
			f.clock.Set(tc.now)
			actor := uuid.New()

			res, err := f.cancelUseCase(nil).Cancel(context.Background(), b.ID(), actor, "plans changed")
			require.NoError(t, err)

			assert.Equal(t, booking.StatusCanceled, res.Status)
			assert.Equal(t, tc.tier, res.Tier)
			assert.Equal(t, tc.refund, res.RefundAmount)
			assert.Equal(t, tc.feeRetains, res.PlatformFeeRetained)
			require.NotNil(t, res.RefundID)

			refunds := f.store.Refunds()
			require.Len(t, refunds, 1)
			assert.Equal(t, *res.RefundID, refunds[0].ID)
			assert.Equal(t, intent.ID, refunds[0].PaymentIntentID)
			assert.Equal(t, refund.StatusRequested, refunds[0].Status)
			assert.Equal(t, tc.tier, refunds[0].Tier)
			assert.Equal(t, "plans changed", refunds[0].Reason)

			got, _ := f.store.Booking(b.ID())
			assert.Equal(t, booking.PaymentStageRefundPending, got.PaymentStage())
			require.NotNil(t, got.Cancellation())
			assert.Equal(t, actor, got.Cancellation().By)
			assert.Empty(t, f.store.Occupancies(f.target.ConflictGroupID))

			entries := f.store.LedgerEntries(b.ID())
			require.Len(t, entries, 1)
			assert.Equal(t, ledger.KindAdvanceReversal, entries[0].Kind)
			assert.Equal(t, -b.OwnerAdvanceCredit(), entries[0].Amount)

			assert.Equal(t, []booking.EventType{booking.EventCanceled}, f.store.Events(b.ID()))
		})
	}
}

func TestCancel_ZeroNetRefundStillRecorded(t *testing.T) {
	f := newFixture(t)
	// An advance of 100 at PARTIAL_50 is 50, which the fee swallows.
	b := f.bookingBuilder().MustBuild(t, booking.StatusConfirmed)
	intent := payment.NewIntent(b.ID(), b.AdvanceAmount(), f.clock.Now())
	require.NoError(t, intent.MarkSucceeded("VAL-1", f.clock.Now()))
	f.store.SeedBooking(b)
	f.store.SeedIntent(intent)
	f.clock.Set(at(4, 0))

	res, err := f.cancelUseCase(nil).Cancel(context.Background(), b.ID(), b.PlayerID(), "")
	require.NoError(t, err)
	assert.Equal(t, refund.TierPartial50, res.Tier)
	assert.Zero(t, res.RefundAmount)
	assert.Equal(t, int64(100), res.PlatformFeeRetained)
	assert.Len(t, f.store.Refunds(), 1)
}

func TestCancel_HoldBeforePayment(t *testing.T) {
	f := newFixture(t)
	b, intent := f.seedHold(t, nil)

	res, err := f.cancelUseCase(nil).Cancel(context.Background(), b.ID(), b.PlayerID(), "")
	require.NoError(t, err)

	assert.Equal(t, refund.TierFull, res.Tier)
	assert.Zero(t, res.RefundAmount)
	assert.Nil(t, res.RefundID)
	assert.Empty(t, f.store.Refunds())
	assert.Empty(t, f.store.LedgerEntries(b.ID()), "nothing was credited, nothing is reversed")

	settled, _ := f.store.Intent(intent.ID)
	assert.Equal(t, payment.IntentExpired, settled.Status, "an in-flight payment is closed")
	got, _ := f.store.Booking(b.ID())
	assert.Equal(t, booking.PaymentStageAdvancePending, got.PaymentStage())
}

func TestCancel_FreesSlotForNewHold(t *testing.T) {
	f := newFixture(t)
	b, _ := f.seedPaid(t)

	_, err := f.cancelUseCase(nil).Cancel(context.Background(), b.ID(), b.PlayerID(), "")
	require.NoError(t, err)

	_, err = f.holdUseCase(nil, nil).CreateHold(context.Background(), f.holdRequest(at(16, 0), 60))
	assert.NoError(t, err)
}

func TestCancel_Rejections(t *testing.T) {
	testCases := []struct {
		name  string
		setup func(*testing.T, *fixture) uuid.UUID
		errIs error
	}{
		{
			name:  "unknown reservation",
			setup: func(*testing.T, *fixture) uuid.UUID { return uuid.New() },
			errIs: errs.ErrReservationNotFound,
		},
		{
			name: "already started",
			setup: func(t *testing.T, f *fixture) uuid.UUID {
				b, _ := f.seedPaid(t)
				f.clock.Set(at(16, 0))
				return b.ID()
			},
			errIs: refund.ErrCancellationNotAllowed,
		},
		{
			name: "already canceled",
			setup: func(t *testing.T, f *fixture) uuid.UUID {
				b := f.bookingBuilder().MustBuild(t, booking.StatusCanceled)
				f.store.SeedBooking(b)
				return b.ID()
			},
			errIs: refund.ErrCancellationNotAllowed,
		},
		{
			name: "expired hold",
			setup: func(t *testing.T, f *fixture) uuid.UUID {
				b := f.bookingBuilder().MustBuild(t, booking.StatusExpired)
				f.store.SeedBooking(b)
				return b.ID()
			},
			errIs: refund.ErrCancellationNotAllowed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			id := tc.setup(t, f)

			res, err := f.cancelUseCase(nil).Cancel(context.Background(), id, uuid.New(), "")
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.errIs)
			assert.Nil(t, res)
			assert.Empty(t, f.store.Refunds())
		})
	}
}

func TestCancel_RefundFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	b, _ := f.seedPaid(t)
	f.store.Fail("Refunds.Create", errors.New("disk full"))

	_, err := f.cancelUseCase(nil).Cancel(context.Background(), b.ID(), b.PlayerID(), "")
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrDatabaseOperationFailed))

	got, _ := f.store.Booking(b.ID())
	assert.Equal(t, booking.StatusConfirmed, got.Status())
	assert.Len(t, f.store.Occupancies(f.target.ConflictGroupID), 1)
	assert.Empty(t, f.store.LedgerEntries(b.ID()))
}

func TestCancel_PublishesAfterCommit(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := commandsmock.NewMockEventPublisher(ctrl)
	f := newFixture(t)
	b, _ := f.seedPaid(t)

	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e booking.Event) error {
			assert.Equal(t, booking.EventCanceled, e.Type)
			assert.Equal(t, booking.StatusConfirmed, e.FromStatus)
			assert.Equal(t, booking.StatusCanceled, e.ToStatus)
			assert.Equal(t, string(refund.TierFull), e.Data["tier"])
			return errors.New("broker unavailable")
		})

	// A broker failure never fails the cancellation.
	res, err := f.cancelUseCase(publisher).Cancel(context.Background(), b.ID(), b.PlayerID(), "")
	require.NoError(t, err)
	assert.Equal(t, booking.StatusCanceled, res.Status)
}
