//go:build unit || e2e

package builder

import (
	"testing"
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/booking"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/money"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type BookingBuilder struct {
	Params booking.HoldParams
	Now    time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		Params: booking.HoldParams{
			Number:           "SZ-20250601-000001",
			PlayerID:         uuid.New(),
			ResourceID:       uuid.New(),
			PricingProfileID: uuid.New(),
			ConflictGroupID:  uuid.New(),
			FacilityID:       uuid.New(),
			OwnerID:          uuid.New(),
			StartAt:          time.Date(2025, 6, 3, 16, 0, 0, 0, time.UTC),
			Duration:         time.Hour,
			Buffer:           10 * time.Minute,
			Total:            1000,
			Rates:            money.Rates{Advance: 1000, Commission: 500},
			HoldWindow:       10 * time.Minute,
			Contact:          booking.Contact{Name: "Test Player", Phone: "+8801700000000"},
		},
		Now: now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildHold() (*booking.Booking, error) {
	return booking.NewHold(b.Params, b.Now)
}

// MustBuild walks a fresh hold through the legal transitions that end in status.
func (b *BookingBuilder) MustBuild(t *testing.T, status booking.Status) *booking.Booking {
	t.Helper()

	bk, err := b.BuildHold()
	require.NoError(t, err)

	switch status {
	case booking.StatusHold:
	case booking.StatusConfirmed:
		require.NoError(t, bk.Confirm(b.Now))
	case booking.StatusExpired:
		require.NoError(t, bk.Expire(b.Now.Add(b.Params.HoldWindow)))
	case booking.StatusCanceled:
		require.NoError(t, bk.Cancel(b.Params.PlayerID, "test", b.Now))
	case booking.StatusCompleted:
		require.NoError(t, bk.Confirm(b.Now))
		require.NoError(t, bk.Complete(bk.EndAt()))
	default:
		t.Fatalf("unsupported status %q", status)
	}
	return bk
}
