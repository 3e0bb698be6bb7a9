package api

import (
	"errors"
	"io"
	"net/http"

	reqdto "github.com/sakib-101-git/Sport-Zen-sub000/internal/handler/dto/request"
	resdto "github.com/sakib-101-git/Sport-Zen-sub000/internal/handler/dto/response"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/handler/httperr"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/handler/middleware"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/commands"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errMissingCaller = errors.New("caller identity missing from context")

type ReservationHandler struct {
	cancels   commands.CancelCommands
	lifecycle commands.LifecycleCommands
	q         queries.ReservationQueries
}

func NewReservationHandler(cancels commands.CancelCommands, lifecycle commands.LifecycleCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cancels: cancels, lifecycle: lifecycle, q: q}
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	b, err := h.q.Get(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to load reservation")
		return
	}
	c.JSON(http.StatusOK, resdto.FromBooking(b))
}

// @Summary Cancel reservation
// @Description Cancel a held or confirmed reservation and open a refund per the tier
// @Tags reservations
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Actor ID"
// @Param id path string true "Reservation ID"
// @Param request body reqdto.CancelReservationRequest false "Cancel reason"
// @Success 200 {object} resdto.CancelResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingCaller, "Caller identity required", nil)
		return
	}
	id, ok := reservationID(c)
	if !ok {
		return
	}

	// The body is optional.
	var req reqdto.CancelReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cancels.Cancel(c.Request.Context(), id, actorID, req.Reason)
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to cancel reservation")
		return
	}
	c.JSON(http.StatusOK, resdto.FromCancelResult(result))
}

// @Summary Cancellation quote
// @Description Evaluate the refund a cancellation would produce right now without changing anything
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.CancellationQuoteResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id}/cancellation-quote [get]
func (h *ReservationHandler) CancellationQuote(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	quote, err := h.q.CancellationQuote(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to quote cancellation")
		return
	}
	c.JSON(http.StatusOK, resdto.FromCancellationQuote(quote))
}

// @Summary Record offline payment
// @Description Record the remaining balance collected at the venue
// @Tags reservations
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Owner ID"
// @Param id path string true "Reservation ID"
// @Param request body reqdto.OfflinePaymentRequest true "Collected amount"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations/{id}/offline-payment [post]
func (h *ReservationHandler) CollectRemaining(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	var req reqdto.OfflinePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	b, err := h.lifecycle.CollectRemaining(c.Request.Context(), id, req.Amount)
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to record offline payment")
		return
	}
	c.JSON(http.StatusOK, resdto.FromBooking(b))
}

func reservationID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}
