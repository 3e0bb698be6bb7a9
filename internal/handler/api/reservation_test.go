//go:build unit

package api_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/booking"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/refund"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/handler/api"
	resdto "github.com/sakib-101-git/Sport-Zen-sub000/internal/handler/dto/response"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/handler/middleware"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/errs"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/commands"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/queries"
	"github.com/sakib-101-git/Sport-Zen-sub000/tests/common/builder"
	"github.com/sakib-101-git/Sport-Zen-sub000/tests/common/httptest"
	commandsmock "github.com/sakib-101-git/Sport-Zen-sub000/tests/mock/commands"
	queriesmock "github.com/sakib-101-git/Sport-Zen-sub000/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockCtrl      *gomock.Controller
	mockCancels   *commandsmock.MockCancelCommands
	mockLifecycle *commandsmock.MockLifecycleCommands
	mockQueries   *queriesmock.MockReservationQueries
	handler       *api.ReservationHandler
	callerID      uuid.UUID
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCancels = commandsmock.NewMockCancelCommands(s.mockCtrl)
	s.mockLifecycle = commandsmock.NewMockLifecycleCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCancels, s.mockLifecycle, s.mockQueries)
	s.callerID = uuid.New()

	s.router.GET("/reservations/:id", s.handler.Get)
	s.router.GET("/reservations/:id/cancellation-quote", s.handler.CancellationQuote)
	s.router.POST("/reservations/:id/cancel", middleware.RequireUser(), s.handler.Cancel)
	s.router.POST("/reservations/:id/offline-payment", middleware.RequireUser(), s.handler.CollectRemaining)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

// ================================================================================
// TestGet
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGet() {
	b := builder.NewBookingBuilder().MustBuild(s.T(), booking.StatusHold)
	url := "/reservations/" + b.ID().String()

	s.Run("success: returns the reservation with its hold deadline", func() {
		s.mockQueries.EXPECT().Get(gomock.Any(), b.ID()).Return(b, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(b.ID(), body.ID)
		s.Equal("HOLD", body.Status)
		s.Equal(int64(1000), body.TotalAmount)
		s.Equal(int64(100), body.AdvanceAmount)
		s.Equal(int64(900), body.RemainingAmount)
		s.Require().NotNil(body.HoldExpiresAt)
		s.True(b.HoldExpiresAt().Equal(*body.HoldExpiresAt))
	})

	s.Run("error: 404 Not Found for an unknown reservation", func() {
		s.mockQueries.EXPECT().Get(gomock.Any(), b.ID()).Return(nil, errs.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})

	s.Run("error: 400 Bad Request for a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/SZ-20250601-000001", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid reservation ID format")
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCancel() {
	id := uuid.New()
	url := "/reservations/" + id.String() + "/cancel"
	refundID := uuid.New()
	result := &commands.CancelResult{
		ReservationID:       id,
		Status:              booking.StatusCanceled,
		Tier:                refund.TierPartial50,
		RefundAmount:        450,
		PlatformFeeRetained: 550,
		RefundID:            &refundID,
	}

	s.Run("success: cancels on behalf of the caller", func() {
		s.mockCancels.EXPECT().Cancel(gomock.Any(), id, s.callerID, "rain").Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": "rain"}, s.callerID.String())

		var body resdto.CancelResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("CANCELED", body.Status)
		s.Equal("PARTIAL_50", body.Tier)
		s.Equal(int64(450), body.RefundAmount)
		s.Equal(int64(550), body.PlatformFeeRetained)
		s.Equal(refundID, *body.RefundID)
	})

	s.Run("success: the body is optional", func() {
		s.mockCancels.EXPECT().Cancel(gomock.Any(), id, s.callerID, "").Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, s.callerID.String())
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request when the reason is too long", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": strings.Repeat("a", 501)}, s.callerID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 401 Unauthorized without a caller identity", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Caller identity required")
	})

	s.Run("error: use case failures map to HTTP status", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
			expectMsg  string
		}{
			{name: "not cancellable", err: refund.ErrCancellationNotAllowed, expectCode: http.StatusConflict, expectMsg: "Cancellation is not allowed"},
			{name: "unknown reservation", err: errs.ErrReservationNotFound, expectCode: http.StatusNotFound, expectMsg: "Reservation not found"},
			{name: "illegal transition", err: &booking.InvalidTransitionError{From: booking.StatusCompleted, To: booking.StatusCanceled}, expectCode: http.StatusConflict, expectMsg: "not in a valid state"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCancels.EXPECT().Cancel(gomock.Any(), id, s.callerID, "").Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, s.callerID.String())
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMsg)
			})
		}
	})
}

// ================================================================================
// TestCancellationQuote
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCancellationQuote() {
	id := uuid.New()
	url := "/reservations/" + id.String() + "/cancellation-quote"
	quotedAt := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	s.Run("success: returns the refund a cancellation would pay", func() {
		s.mockQueries.EXPECT().CancellationQuote(gomock.Any(), id).Return(&queries.CancellationQuote{
			ReservationID: id,
			QuotedAt:      quotedAt,
			Decision: refund.Decision{
				CanCancel:           true,
				Tier:                refund.TierFull,
				RefundableAmount:    50,
				PlatformFeeRetained: 50,
				HoursUntilStart:     55,
			},
		}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var body resdto.CancellationQuoteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.CanCancel)
		s.Equal("FULL", body.Tier)
		s.Equal(int64(50), body.RefundableAmount)
		s.InDelta(55.0, body.HoursUntilStart, 0.001)
	})

	s.Run("error: 404 Not Found for an unknown reservation", func() {
		s.mockQueries.EXPECT().CancellationQuote(gomock.Any(), id).Return(nil, errs.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})
}

// ================================================================================
// TestCollectRemaining
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCollectRemaining() {
	b := builder.NewBookingBuilder().MustBuild(s.T(), booking.StatusConfirmed)
	url := "/reservations/" + b.ID().String() + "/offline-payment"

	s.Run("success: records the amount collected at the venue", func() {
		s.mockLifecycle.EXPECT().CollectRemaining(gomock.Any(), b.ID(), int64(900)).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, amount int64) (*booking.Booking, error) {
				s.Require().NoError(b.CollectRemaining(amount, time.Date(2025, 6, 3, 17, 0, 0, 0, time.UTC)))
				return b, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"amount": 900}, s.callerID.String())

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(int64(900), body.OfflineAmountCollected)
		s.Zero(body.RemainingAmount)
		s.Equal(string(booking.PaymentStageFullyPaid), body.PaymentStage)
	})

	s.Run("error: 400 Bad Request for a missing or non-positive amount", func() {
		for _, payload := range []map[string]any{{}, {"amount": 0}, {"amount": -5}} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, payload, s.callerID.String())
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
		}
	})

	s.Run("error: 422 when the amount exceeds the balance", func() {
		s.mockLifecycle.EXPECT().CollectRemaining(gomock.Any(), b.ID(), int64(5000)).
			Return(nil, booking.ErrInvalidOfflineAmount).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"amount": 5000}, s.callerID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "remaining balance")
	})

	s.Run("error: 409 for a reservation that is not confirmed", func() {
		s.mockLifecycle.EXPECT().CollectRemaining(gomock.Any(), b.ID(), int64(100)).
			Return(nil, booking.ErrOfflinePaymentRejected).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"amount": 100}, s.callerID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "confirmed reservation")
	})
}
