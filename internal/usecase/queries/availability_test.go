//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/availability"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/block"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/booking"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/clock"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/errs"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/queries"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/shared"
	"github.com/sakib-101-git/Sport-Zen-sub000/tests/common/builder"
	"github.com/sakib-101-git/Sport-Zen-sub000/tests/common/memstore"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func day3(hour, minute int) time.Time {
	return time.Date(2025, 6, 3, hour, minute, 0, 0, time.UTC)
}

type gridRow struct {
	Start  string
	Status availability.SlotStatus
	Price  int64
}

func gridRows(g *availability.Grid) []gridRow {
	out := make([]gridRow, len(g.Slots))
	for i, s := range g.Slots {
		out[i] = gridRow{Start: s.Start.Format("15:04"), Status: s.Status, Price: s.Price}
	}
	return out
}

func newTarget(mutate func(*builder.ProfileBuilder)) shared.HoldTarget {
	return shared.HoldTarget{
		ResourceID:         uuid.New(),
		FacilityID:         uuid.New(),
		OwnerID:            uuid.New(),
		ConflictGroupID:    uuid.New(),
		FacilityApproved:   true,
		SubscriptionStatus: shared.SubscriptionActive,
		Profile:            builder.NewProfileBuilder().With(mutate).Build(),
	}
}

func TestAvailabilityQueries_Grid(t *testing.T) {
	target := newTarget(func(b *builder.ProfileBuilder) {
		b.Profile.OpenMinute = 16 * 60
		b.Profile.CloseMinute = 20 * 60
		b.Profile.SlotIntervalMinutes = 60
		b.Profile.AllowedDurations = []int{60}
	})
	store := memstore.New()
	store.AddTarget(target)

	confirmed := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.Params.ConflictGroupID = target.ConflictGroupID
		b.Params.StartAt = day3(17, 0)
	}).MustBuild(t, booking.StatusConfirmed)
	store.SeedBooking(confirmed)

	// Expired and canceled reservations no longer occupy anything.
	for _, status := range []booking.Status{booking.StatusExpired, booking.StatusCanceled} {
		store.SeedBooking(builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Params.ConflictGroupID = target.ConflictGroupID
			b.Params.StartAt = day3(16, 0)
		}).MustBuild(t, status))
	}

	mb, err := block.New(target.ConflictGroupID, target.OwnerID, day3(19, 30), day3(20, 0), "cleaning", testNow)
	require.NoError(t, err)
	store.SeedBlock(mb)

	q := queries.NewAvailabilityQueries(store, clock.NewMockClock(testNow))
	grid, err := q.Grid(context.Background(), target.ConflictGroupID, target.Profile.ID, day3(12, 0))
	require.NoError(t, err)

	assert.Equal(t, day3(0, 0), grid.Date)
	assert.Equal(t, target.Profile.ID, grid.PricingProfileID)

	want := []gridRow{
		{Start: "16:00", Status: availability.SlotBuffer, Price: 1000},
		{Start: "17:00", Status: availability.SlotBooked, Price: 1000},
		{Start: "18:00", Status: availability.SlotBooked, Price: 1500},
		{Start: "19:00", Status: availability.SlotBlocked, Price: 1500},
	}
	if diff := cmp.Diff(want, gridRows(grid)); diff != "" {
		t.Errorf("grid mismatch (-want +got):\n%s", diff)
	}
}

func TestAvailabilityQueries_GridUsesFacilityTimeZone(t *testing.T) {
	dhaka := time.FixedZone("BDT", 6*60*60)

	target := newTarget(func(b *builder.ProfileBuilder) {
		b.Profile.Location = dhaka
		b.Profile.OpenMinute = 6 * 60
		b.Profile.CloseMinute = 8 * 60
		b.Profile.SlotIntervalMinutes = 60
		b.Profile.AllowedDurations = []int{60}
	})
	store := memstore.New()
	store.AddTarget(target)

	q := queries.NewAvailabilityQueries(store, clock.NewMockClock(testNow))
	grid, err := q.Grid(context.Background(), target.ConflictGroupID, target.Profile.ID, day3(0, 0))
	require.NoError(t, err)

	require.Len(t, grid.Slots, 2)
	assert.True(t, grid.Slots[0].Start.Equal(day3(0, 0)), "06:00 in Dhaka is midnight UTC")
	assert.Equal(t, "06:00", grid.Slots[0].Start.Format("15:04"))
	assert.Equal(t, "07:00", grid.Slots[1].Start.Format("15:04"))
}

func TestAvailabilityQueries_GridUnknownProfile(t *testing.T) {
	q := queries.NewAvailabilityQueries(memstore.New(), clock.NewMockClock(testNow))

	grid, err := q.Grid(context.Background(), uuid.New(), uuid.New(), day3(0, 0))
	assert.ErrorIs(t, err, errs.ErrResourceNotFound)
	assert.Nil(t, grid)
}

func TestAvailabilityQueries_IsSlotFree(t *testing.T) {
	store := memstore.New()
	b := builder.NewBookingBuilder().MustBuild(t, booking.StatusHold)
	store.SeedBooking(b)
	q := queries.NewAvailabilityQueries(store, clock.NewMockClock(testNow))
	group := b.ConflictGroupID()

	testCases := []struct {
		name    string
		start   time.Time
		end     time.Time
		exclude *uuid.UUID
		free    bool
	}{
		{name: "overlapping range", start: day3(16, 30), end: day3(17, 40), free: false},
		{name: "touching the buffer end", start: day3(17, 10), end: day3(18, 20), free: true},
		{name: "touching the start", start: day3(15, 0), end: day3(16, 0), free: true},
		{name: "own reservation excluded", start: day3(16, 0), end: day3(17, 10), exclude: ptrTo(b.ID()), free: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			free, err := q.IsSlotFree(context.Background(), group, tc.start, tc.end, tc.exclude)
			require.NoError(t, err)
			assert.Equal(t, tc.free, free)
		})
	}

	t.Run("empty range", func(t *testing.T) {
		_, err := q.IsSlotFree(context.Background(), group, day3(16, 0), day3(16, 0), nil)
		assert.ErrorIs(t, err, booking.ErrInvalidTimeRange)
	})
}

func TestAvailabilityQueries_HasGapWithin(t *testing.T) {
	store := memstore.New()
	b := builder.NewBookingBuilder().With(func(bb *builder.BookingBuilder) {
		bb.Params.StartAt = day3(17, 0)
	}).MustBuild(t, booking.StatusConfirmed)
	store.SeedBooking(b)
	q := queries.NewAvailabilityQueries(store, clock.NewMockClock(testNow))
	group := b.ConflictGroupID()

	testCases := []struct {
		name     string
		from, to time.Time
		minutes  int
		lead     int
		want     bool
	}{
		{name: "gap before the reservation", from: day3(16, 0), to: day3(19, 0), minutes: 60, want: true},
		{name: "gap too short on both sides", from: day3(16, 30), to: day3(18, 50), minutes: 45, want: false},
		{name: "gap after the buffer", from: day3(17, 30), to: day3(19, 10), minutes: 60, want: true},
		{name: "lead time eats the window", from: testNow, to: testNow.Add(2 * time.Hour), minutes: 60, lead: 90, want: false},
		{name: "inverted window", from: day3(19, 0), to: day3(16, 0), minutes: 60, want: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := q.HasGapWithin(context.Background(), group, tc.from, tc.to, tc.minutes, tc.lead)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func ptrTo[T any](v T) *T {
	return &v
}
