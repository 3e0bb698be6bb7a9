//go:build e2e

package reservation_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	reqdto "github.com/sakib-101-git/Sport-Zen-sub000/internal/handler/dto/request"
	resdto "github.com/sakib-101-git/Sport-Zen-sub000/internal/handler/dto/response"
	"github.com/sakib-101-git/Sport-Zen-sub000/tests/common/builder"
	"github.com/sakib-101-git/Sport-Zen-sub000/tests/common/dbtest"
	"github.com/sakib-101-git/Sport-Zen-sub000/tests/common/httptest"
	"github.com/sakib-101-git/Sport-Zen-sub000/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	holdsURL        = "/holds"
	webhookURL      = "/webhooks/payment"
	reservationURL  = "/reservations/%s"
	cancelURL       = "/reservations/%s/cancel"
	quoteURL        = "/reservations/%s/cancellation-quote"
	offlineURL      = "/reservations/%s/offline-payment"
	manualBlocksURL = "/manual-blocks"
	availabilityURL = "/availability?conflict_group_id=%s&pricing_profile_id=%s&date=%s"
)

type ReservationSuite struct {
	e2e.SharedSuite
}

func TestReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReservationSuite))
}

func (s *ReservationSuite) hold(t *testing.T, v dbtest.Venue, playerID uuid.UUID, start time.Time, minutes int) (int, resdto.HoldResponse) {
	t.Helper()

	req := reqdto.CreateHoldRequest{
		ResourceID:       v.ResourceID,
		PricingProfileID: v.ProfileID,
		StartAt:          start,
		DurationMinutes:  minutes,
		ContactName:      "E2E Player",
		ContactPhone:     "+8801700000000",
	}
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, holdsURL, req, playerID.String())

	var body resdto.HoldResponse
	if w.Code == http.StatusCreated {
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &body))
	}
	return w.Code, body
}

func (s *ReservationSuite) pay(t *testing.T, h resdto.HoldResponse) resdto.WebhookResponse {
	t.Helper()

	fields := builder.NewWebhookBuilder(s.Config.Gateway.SigningSecret).With(func(b *builder.WebhookBuilder) {
		b.TranID = h.GatewayTranID
		b.IntentRef = h.PaymentIntentID.String()
		b.Amount = fmt.Sprintf("%d.00", h.AdvanceAmount)
	}).Build()

	w := httptest.PerformFormPost(t, s.Router, webhookURL, fields)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body resdto.WebhookResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &body))
	return body
}

func (s *ReservationSuite) reservation(t *testing.T, id uuid.UUID) resdto.ReservationResponse {
	t.Helper()

	w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(reservationURL, id), nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body resdto.ReservationResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &body))
	return body
}

// =============================================================================
// TestBookingLifecycle - hold, pay, inspect, cancel
// =============================================================================

func (s *ReservationSuite) TestBookingLifecycle() {
	s.Run("Normal case: a paid hold is confirmed, shows as booked and cancels with a full refund", func() {
		t := s.T()
		v := dbtest.CreateTestVenue(t, s.DB, dbtest.DefaultVenueOptions())
		player := uuid.New()
		start := dbtest.SlotOn(3, 10)

		code, held := s.hold(t, v, player, start, 60)
		require.Equal(t, http.StatusCreated, code)
		require.Equal(t, int64(1000), held.TotalAmount)
		require.Equal(t, int64(100), held.AdvanceAmount)

		paid := s.pay(t, held)
		require.True(t, paid.Accepted)
		require.Equal(t, "confirmed", paid.Outcome)

		replay := s.pay(t, held)
		require.Equal(t, "confirmed", replay.Outcome)
		require.True(t, replay.Replayed)
		require.Equal(t, 1, dbtest.CountRows(t, s.DB, `SELECT count(*) FROM payment_transactions WHERE gateway_tran_id = $1`, held.GatewayTranID))

		got := s.reservation(t, held.ReservationID)
		expected := resdto.ReservationResponse{
			ID:                 held.ReservationID,
			ReservationNumber:  held.ReservationNumber,
			PlayerID:           player,
			ResourceID:         v.ResourceID,
			ConflictGroupID:    v.ConflictGroupID,
			Status:             "CONFIRMED",
			PaymentStage:       "advance_paid",
			TotalAmount:        1000,
			AdvanceAmount:      100,
			PlatformCommission: 50,
			OwnerAdvanceCredit: 50,
			RemainingAmount:    900,
		}
		opts := cmpopts.IgnoreFields(resdto.ReservationResponse{}, "StartAt", "EndAt", "BlockedEndAt", "CreatedAt", "UpdatedAt")
		if diff := cmp.Diff(expected, got, opts); diff != "" {
			t.Errorf("reservation mismatch (-want +got):\n%s", diff)
		}
		require.True(t, start.Equal(got.StartAt))
		require.True(t, start.Add(70*time.Minute).Equal(got.BlockedEndAt))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf(availabilityURL, v.ConflictGroupID, v.ProfileID, start.Format("2006-01-02")), nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		var grid resdto.AvailabilityResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &grid))
		statuses := make(map[string]string)
		for _, slot := range grid.Slots {
			if slot.DurationMinutes == 60 {
				statuses[slot.StartAt.UTC().Format("15:04")] = slot.Status
			}
		}
		require.Equal(t, "booked", statuses["10:00"])
		require.Equal(t, "booked", statuses["10:30"])
		require.Equal(t, "buffer", statuses["09:00"])
		require.Equal(t, "available", statuses["11:30"])

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(quoteURL, held.ReservationID), nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		var quote resdto.CancellationQuoteResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &quote))
		require.True(t, quote.CanCancel)
		require.Equal(t, "FULL", quote.Tier)
		require.Equal(t, int64(50), quote.RefundableAmount)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(cancelURL, held.ReservationID),
			reqdto.CancelReservationRequest{Reason: "team unavailable"}, player.String())
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var canceled resdto.CancelResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &canceled))
		require.Equal(t, "CANCELED", canceled.Status)
		require.Equal(t, int64(50), canceled.RefundAmount)
		require.Equal(t, int64(50), canceled.PlatformFeeRetained)

		require.Equal(t, 1, dbtest.CountRows(t, s.DB, `SELECT count(*) FROM refunds WHERE booking_id = $1`, held.ReservationID))
		require.Equal(t, 0, dbtest.CountRows(t, s.DB, `SELECT count(*) FROM occupancies WHERE booking_id = $1`, held.ReservationID))

		code, _ = s.hold(t, v, uuid.New(), start, 60)
		require.Equal(t, http.StatusCreated, code, "the freed slot can be held again")
	})

	s.Run("Normal case: remaining balance collected at the venue marks the booking fully paid", func() {
		t := s.T()
		v := dbtest.CreateTestVenue(t, s.DB, dbtest.DefaultVenueOptions())
		code, held := s.hold(t, v, uuid.New(), dbtest.SlotOn(3, 19), 90)
		require.Equal(t, http.StatusCreated, code)
		require.Equal(t, int64(2100), held.TotalAmount, "19:00 is peak")
		s.pay(t, held)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(offlineURL, held.ReservationID),
			reqdto.OfflinePaymentRequest{Amount: held.TotalAmount - held.AdvanceAmount}, v.OwnerID.String())
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		got := s.reservation(t, held.ReservationID)
		require.Equal(t, "fully_paid", got.PaymentStage)
		require.Zero(t, got.RemainingAmount)
	})

	s.Run("Error case: a forged notification is rejected and confirms nothing", func() {
		t := s.T()
		v := dbtest.CreateTestVenue(t, s.DB, dbtest.DefaultVenueOptions())
		code, held := s.hold(t, v, uuid.New(), dbtest.SlotOn(3, 10), 60)
		require.Equal(t, http.StatusCreated, code)

		fields := builder.NewWebhookBuilder("someone-elses-secret").With(func(b *builder.WebhookBuilder) {
			b.TranID = held.GatewayTranID
			b.IntentRef = held.PaymentIntentID.String()
		}).Build()
		w := httptest.PerformFormPost(t, s.Router, webhookURL, fields)
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid signature")

		require.Equal(t, "HOLD", s.reservation(t, held.ReservationID).Status)
	})

	s.Run("Error case: a tampered amount is rejected", func() {
		t := s.T()
		v := dbtest.CreateTestVenue(t, s.DB, dbtest.DefaultVenueOptions())
		code, held := s.hold(t, v, uuid.New(), dbtest.SlotOn(3, 10), 60)
		require.Equal(t, http.StatusCreated, code)

		fields := builder.NewWebhookBuilder(s.Config.Gateway.SigningSecret).With(func(b *builder.WebhookBuilder) {
			b.TranID = held.GatewayTranID
			b.IntentRef = held.PaymentIntentID.String()
			b.Amount = "1.00"
		}).Build()
		w := httptest.PerformFormPost(t, s.Router, webhookURL, fields)
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "Amount does not match")

		require.Equal(t, "HOLD", s.reservation(t, held.ReservationID).Status)
	})
}

// =============================================================================
// TestSlotExclusivity - the database decides who gets a contested slot
// =============================================================================

func (s *ReservationSuite) TestSlotExclusivity() {
	s.Run("Normal case: concurrent holds for one slot produce exactly one winner", func() {
		t := s.T()
		v := dbtest.CreateTestVenue(t, s.DB, dbtest.DefaultVenueOptions())
		start := dbtest.SlotOn(4, 17)

		const players = 12
		codes := make([]int, players)
		var wg sync.WaitGroup
		for i := range players {
			wg.Add(1)
			go func() {
				defer wg.Done()
				// Overlapping but distinct ranges still contend for the group.
				offset := time.Duration(i%3) * 30 * time.Minute
				codes[i], _ = s.hold(t, v, uuid.New(), start.Add(offset), 60)
			}()
		}
		wg.Wait()

		created := 0
		for _, code := range codes {
			switch code {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
			default:
				t.Errorf("unexpected status %d", code)
			}
		}
		require.Equal(t, 1, created)
		require.Equal(t, 1, dbtest.CountRows(t, s.DB, `SELECT count(*) FROM occupancies WHERE conflict_group_id = $1`, v.ConflictGroupID))
	})

	s.Run("Error case: a manual block keeps the slot from being held", func() {
		t := s.T()
		v := dbtest.CreateTestVenue(t, s.DB, dbtest.DefaultVenueOptions())
		start := dbtest.SlotOn(3, 12)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, manualBlocksURL, reqdto.CreateManualBlockRequest{
			ConflictGroupID: v.ConflictGroupID,
			StartAt:         start,
			EndAt:           start.Add(2 * time.Hour),
			Reason:          "maintenance",
		}, v.OwnerID.String())
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var mb resdto.ManualBlockResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &mb))

		code, _ := s.hold(t, v, uuid.New(), start.Add(time.Hour), 60)
		require.Equal(t, http.StatusConflict, code)

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, manualBlocksURL+"/"+mb.ID.String(), nil, uuid.NewString())
		require.Equal(t, http.StatusNotFound, w.Code, "only the owner may lift a block")

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, manualBlocksURL+"/"+mb.ID.String(), nil, v.OwnerID.String())
		require.Equal(t, http.StatusNoContent, w.Code)

		code, _ = s.hold(t, v, uuid.New(), start.Add(time.Hour), 60)
		require.Equal(t, http.StatusCreated, code)
	})

	s.Run("Error case: an unapproved facility cannot take holds", func() {
		t := s.T()
		opts := dbtest.DefaultVenueOptions()
		opts.ApprovalStatus = "pending"
		v := dbtest.CreateTestVenue(t, s.DB, opts)

		code, _ := s.hold(t, v, uuid.New(), dbtest.SlotOn(3, 10), 60)
		require.Equal(t, http.StatusUnprocessableEntity, code)
		require.Zero(t, dbtest.CountRows(t, s.DB, `SELECT count(*) FROM bookings`))
	})
}
