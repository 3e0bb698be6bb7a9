//go:build unit

package commands_test

import (
	"testing"
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/booking"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/payment"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/clock"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/config"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/shared"
	"github.com/sakib-101-git/Sport-Zen-sub000/tests/common/builder"
	"github.com/sakib-101-git/Sport-Zen-sub000/tests/common/memstore"

	"github.com/google/uuid"
)

var testNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

// fixture is one store with a single bookable resource on it.
type fixture struct {
	store  *memstore.Store
	clock  *clock.MockClock
	target shared.HoldTarget
	cfg    config.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	target := shared.HoldTarget{
		ResourceID:         uuid.New(),
		FacilityID:         uuid.New(),
		OwnerID:            uuid.New(),
		ConflictGroupID:    uuid.New(),
		FacilityApproved:   true,
		SubscriptionStatus: shared.SubscriptionActive,
		Profile:            builder.NewProfileBuilder().Build(),
	}
	store := memstore.New()
	store.AddTarget(target)

	return &fixture{
		store:  store,
		clock:  clock.NewMockClock(testNow),
		target: target,
		cfg:    config.NewTestConfig(),
	}
}

// bookingBuilder places bookings on the fixture's resource.
func (f *fixture) bookingBuilder() *builder.BookingBuilder {
	return builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.Now = f.clock.Now()
		b.Params.ID = uuid.New()
		b.Params.ResourceID = f.target.ResourceID
		b.Params.PricingProfileID = f.target.Profile.ID
		b.Params.ConflictGroupID = f.target.ConflictGroupID
		b.Params.FacilityID = f.target.FacilityID
		b.Params.OwnerID = f.target.OwnerID
	})
}

// seedHold stores a fresh hold plus its pending intent.
func (f *fixture) seedHold(t *testing.T, mutate func(*builder.BookingBuilder)) (*booking.Booking, *payment.Intent) {
	t.Helper()
	bb := f.bookingBuilder()
	if mutate != nil {
		bb.With(mutate)
	}
	b := bb.MustBuild(t, booking.StatusHold)
	intent := payment.NewIntent(b.ID(), b.AdvanceAmount(), f.clock.Now())
	f.store.SeedBooking(b)
	f.store.SeedIntent(intent)
	return b, intent
}

func (f *fixture) webhook(intent *payment.Intent) *builder.WebhookBuilder {
	return builder.NewWebhookBuilder(f.cfg.Gateway.SigningSecret).ForIntent(intent)
}

func at(hour, minute int) time.Time {
	return time.Date(2025, 6, 3, hour, minute, 0, 0, time.UTC)
}
