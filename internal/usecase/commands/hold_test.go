//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/availability"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/booking"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/payment"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/pricing"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra/broker"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra/redislock"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/errs"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/commands"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/shared"
	"github.com/sakib-101-git/Sport-Zen-sub000/tests/common/builder"
	commandsmock "github.com/sakib-101-git/Sport-Zen-sub000/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func (f *fixture) holdUseCase(locker commands.AdvisoryLocker, limiter commands.RateLimiter) commands.HoldCommands {
	if locker == nil {
		locker = redislock.Noop{}
	}
	if limiter == nil {
		limiter = redislock.Noop{}
	}
	return commands.NewHoldUseCase(f.store, locker, limiter, broker.NewLogPublisher(nil), nil, f.cfg.Booking, f.clock)
}

func (f *fixture) holdRequest(start time.Time, minutes int) commands.HoldRequest {
	return commands.HoldRequest{
		PlayerID:         uuid.New(),
		ResourceID:       f.target.ResourceID,
		PricingProfileID: f.target.Profile.ID,
		StartAt:          start,
		DurationMinutes:  minutes,
		Contact:          booking.Contact{Name: "Rahim", Phone: "+8801711111111"},
	}
}

func TestCreateHold_Success(t *testing.T) {
	f := newFixture(t)
	uc := f.holdUseCase(nil, nil)

	res, err := uc.CreateHold(context.Background(), f.holdRequest(at(16, 0), 60))
	require.NoError(t, err)

	assert.Equal(t, "SZ-20250601-000001", res.ReservationNumber)
	assert.Equal(t, int64(1000), res.TotalAmount)
	assert.Equal(t, int64(100), res.AdvanceAmount)
	assert.False(t, res.Peak)
	assert.Equal(t, at(17, 0), res.EndAt)
	assert.Equal(t, testNow.Add(10*time.Minute), res.HoldExpiresAt)

	b, ok := f.store.Booking(res.ReservationID)
	require.True(t, ok)
	assert.Equal(t, booking.StatusHold, b.Status())
	assert.Equal(t, booking.PaymentStageAdvancePending, b.PaymentStage())
	assert.Equal(t, at(17, 10), b.BlockedEndAt(), "buffer extends the blocked range")
	assert.Equal(t, int64(50), b.PlatformCommission())
	assert.Equal(t, int64(50), b.OwnerAdvanceCredit())

	intent, ok := f.store.Intent(res.PaymentIntentID)
	require.True(t, ok)
	assert.Equal(t, payment.IntentPending, intent.Status)
	assert.Equal(t, int64(100), intent.Amount)
	assert.Equal(t, res.GatewayTranID, intent.GatewayTranID)

	occ := f.store.Occupancies(f.target.ConflictGroupID)
	require.Len(t, occ, 1)
	assert.Equal(t, at(16, 0), occ[0].StartAt)
	assert.Equal(t, at(17, 10), occ[0].BlockedEndAt)

	assert.Equal(t, []booking.EventType{booking.EventCreated}, f.store.Events(res.ReservationID))
}

func TestCreateHold_PeakPricing(t *testing.T) {
	f := newFixture(t)
	uc := f.holdUseCase(nil, nil)

	res, err := uc.CreateHold(context.Background(), f.holdRequest(at(17, 30), 60))
	require.NoError(t, err)

	assert.True(t, res.Peak, "17:30-18:30 touches the 18:00 peak window")
	assert.Equal(t, int64(1500), res.TotalAmount)
	assert.Equal(t, int64(150), res.AdvanceAmount)
}

func TestCreateHold_Validation(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*fixture, *commands.HoldRequest)
		errIs  error
	}{
		{
			name:   "unknown resource",
			mutate: func(_ *fixture, r *commands.HoldRequest) { r.ResourceID = uuid.New() },
			errIs:  errs.ErrResourceNotFound,
		},
		{
			name:   "duration not offered",
			mutate: func(_ *fixture, r *commands.HoldRequest) { r.DurationMinutes = 45 },
			errIs:  pricing.ErrInvalidDuration,
		},
		{
			name:   "inside lead time",
			mutate: func(_ *fixture, r *commands.HoldRequest) { r.StartAt = testNow.Add(30 * time.Minute) },
			errIs:  availability.ErrInsufficientLeadTime,
		},
		{
			name:   "runs past closing",
			mutate: func(_ *fixture, r *commands.HoldRequest) { r.StartAt = at(22, 30) },
			errIs:  availability.ErrOutsideOperatingHours,
		},
		{
			name: "facility not approved",
			mutate: func(f *fixture, _ *commands.HoldRequest) {
				t := f.target
				t.FacilityApproved = false
				f.store.AddTarget(t)
			},
			errIs: errs.ErrFacilityNotApproved,
		},
		{
			name: "subscription lapsed",
			mutate: func(f *fixture, _ *commands.HoldRequest) {
				t := f.target
				t.SubscriptionStatus = "past_due"
				f.store.AddTarget(t)
			},
			errIs: errs.ErrSubscriptionInactive,
		},
		{
			name: "profile inactive",
			mutate: func(f *fixture, _ *commands.HoldRequest) {
				t := f.target
				t.Profile.Active = false
				f.store.AddTarget(t)
			},
			errIs: pricing.ErrProfileInactive,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			req := f.holdRequest(at(16, 0), 60)
			tc.mutate(f, &req)

			res, err := f.holdUseCase(nil, nil).CreateHold(context.Background(), req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.errIs)
			assert.Nil(t, res)
			assert.Zero(t, f.store.BookingCount())
		})
	}
}

func TestCreateHold_BufferBoundary(t *testing.T) {
	testCases := []struct {
		name     string
		start    time.Time
		conflict bool
	}{
		{name: "same start", start: at(16, 0), conflict: true},
		{name: "overlaps the booked hour", start: at(16, 30), conflict: true},
		{name: "starts inside the buffer", start: at(17, 0), conflict: true},
		{name: "starts when the buffer ends", start: at(17, 10), conflict: false},
		{name: "ends when the existing booking starts", start: at(14, 50), conflict: false},
		{name: "own buffer reaches into the existing booking", start: at(15, 0), conflict: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			existing := f.bookingBuilder().MustBuild(t, booking.StatusConfirmed)
			f.store.SeedBooking(existing)

			res, err := f.holdUseCase(nil, nil).CreateHold(context.Background(), f.holdRequest(tc.start, 60))
			if !tc.conflict {
				require.NoError(t, err)
				assert.NotNil(t, res)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, booking.ErrSlotConflict)
			var conflict *booking.SlotConflictError
			require.ErrorAs(t, err, &conflict)
			assert.Equal(t, f.target.ConflictGroupID, conflict.ConflictGroupID)
			assert.Equal(t, tc.start, conflict.Start)
			assert.Equal(t, 1, f.store.BookingCount(), "the failed hold leaves nothing behind")
		})
	}
}

func TestCreateHold_ManualBlockOccupiesSlot(t *testing.T) {
	f := newFixture(t)
	mbUC := commands.NewManualBlockUseCase(f.store, f.clock)
	_, err := mbUC.CreateManualBlock(context.Background(), commands.ManualBlockRequest{
		ConflictGroupID: f.target.ConflictGroupID,
		OwnerID:         f.target.OwnerID,
		StartAt:         at(15, 0),
		EndAt:           at(18, 0),
		Reason:          "maintenance",
	})
	require.NoError(t, err)

	_, err = f.holdUseCase(nil, nil).CreateHold(context.Background(), f.holdRequest(at(16, 0), 60))
	assert.ErrorIs(t, err, booking.ErrSlotConflict)
}

func TestCreateHold_ConcurrentRequestsForOneSlot(t *testing.T) {
	f := newFixture(t)
	uc := f.holdUseCase(nil, nil)

	const attempts = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Half the racers ask for an overlapping rather than identical range.
			start := at(16, 0)
			if i%2 == 1 {
				start = at(16, 30)
			}
			_, err := uc.CreateHold(context.Background(), f.holdRequest(start, 60))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, booking.ErrSlotConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
	assert.Equal(t, 1, f.store.BookingCount())
	assert.Len(t, f.store.Occupancies(f.target.ConflictGroupID), 1)
}

func TestCreateHold_RateLimit(t *testing.T) {
	t.Run("limited caller is rejected before any write", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		limiter := commandsmock.NewMockRateLimiter(ctrl)
		f := newFixture(t)
		req := f.holdRequest(at(16, 0), 60)

		limiter.EXPECT().Allow(gomock.Any(), req.PlayerID.String()).Return(false, nil)

		_, err := f.holdUseCase(nil, limiter).CreateHold(context.Background(), req)
		assert.ErrorIs(t, err, errs.ErrRateLimited)
		assert.Zero(t, f.store.BookingCount())
	})

	t.Run("limiter outage fails open", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		limiter := commandsmock.NewMockRateLimiter(ctrl)
		f := newFixture(t)

		limiter.EXPECT().Allow(gomock.Any(), gomock.Any()).Return(false, errors.New("redis: connection refused"))

		res, err := f.holdUseCase(nil, limiter).CreateHold(context.Background(), f.holdRequest(at(16, 0), 60))
		require.NoError(t, err)
		assert.NotNil(t, res)
	})
}

func TestCreateHold_AdvisoryLock(t *testing.T) {
	t.Run("lock is taken around the insert then handed to the reservation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		locker := commandsmock.NewMockAdvisoryLocker(ctrl)
		f := newFixture(t)
		key := commands.SlotLockKey(f.target.ConflictGroupID, at(16, 0), at(17, 10))

		var token string
		gomock.InOrder(
			locker.EXPECT().Acquire(gomock.Any(), key, gomock.Any(), f.cfg.Booking.LockTTL).
				DoAndReturn(func(_ context.Context, _, owner string, _ time.Duration) (bool, error) {
					token = owner
					return true, nil
				}),
			locker.EXPECT().Release(gomock.Any(), key, gomock.Any()).
				DoAndReturn(func(_ context.Context, _, owner string) error {
					assert.Equal(t, token, owner)
					return nil
				}),
			locker.EXPECT().Acquire(gomock.Any(), key, gomock.Any(), f.cfg.Booking.HoldWindow).Return(true, nil),
		)

		_, err := f.holdUseCase(locker, nil).CreateHold(context.Background(), f.holdRequest(at(16, 0), 60))
		require.NoError(t, err)
	})

	t.Run("lock outage falls back to the exclusion constraint", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		locker := commandsmock.NewMockAdvisoryLocker(ctrl)
		f := newFixture(t)
		f.store.SeedBooking(f.bookingBuilder().MustBuild(t, booking.StatusHold))

		locker.EXPECT().Acquire(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(false, errors.New("redis: i/o timeout"))

		_, err := f.holdUseCase(locker, nil).CreateHold(context.Background(), f.holdRequest(at(16, 0), 60))
		assert.ErrorIs(t, err, booking.ErrSlotConflict)
	})
}

func TestCreateHold_StorageFailure(t *testing.T) {
	f := newFixture(t)
	f.store.Fail("Bookings.Create", errors.New("connection reset"))

	_, err := f.holdUseCase(nil, nil).CreateHold(context.Background(), f.holdRequest(at(16, 0), 60))
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrDatabaseOperationFailed), "got %v", err)
	assert.Empty(t, f.store.Occupancies(f.target.ConflictGroupID))
}

func TestCreateHold_FreedSlotCanBeHeldAgain(t *testing.T) {
	f := newFixture(t)
	prior := f.bookingBuilder().With(func(b *builder.BookingBuilder) {
		b.Params.HoldWindow = time.Minute
	}).MustBuild(t, booking.StatusExpired)
	f.store.SeedBooking(prior)

	res, err := f.holdUseCase(nil, nil).CreateHold(context.Background(), f.holdRequest(at(16, 0), 60))
	require.NoError(t, err)
	assert.NotEqual(t, prior.ID(), res.ReservationID)
	assert.Equal(t, []shared.Occupancy{{
		ConflictGroupID: f.target.ConflictGroupID,
		BookingID:       &res.ReservationID,
		StartAt:         at(16, 0),
		BlockedEndAt:    at(17, 10),
	}}, withoutIDs(f.store.Occupancies(f.target.ConflictGroupID)))
}

func withoutIDs(occ []shared.Occupancy) []shared.Occupancy {
	out := make([]shared.Occupancy, len(occ))
	for i, o := range occ {
		o.ID = uuid.Nil
		out[i] = o
	}
	return out
}
