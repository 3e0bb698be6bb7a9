package api

import (
	"log/slog"
	"net/http"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/availability"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/block"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/booking"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/money"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/payment"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/pricing"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/refund"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/handler/httperr"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/handler/middleware"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

// Order matters: the first match wins.
var errorMappings = []errorMapping{
	// Lookups
	{errs.ErrReservationNotFound, http.StatusNotFound, "Reservation not found"},
	{errs.ErrResourceNotFound, http.StatusNotFound, "Resource or pricing profile not found"},
	{errs.ErrIntentNotFound, http.StatusNotFound, "Payment intent not found"},
	{errs.ErrManualBlockNotFound, http.StatusNotFound, "Manual block not found"},

	// Webhook trust
	{payment.ErrInvalidSignature, http.StatusUnauthorized, "Invalid signature"},
	{payment.ErrMalformedPayload, http.StatusBadRequest, "Malformed payment notification"},
	{payment.ErrInvalidAmount, http.StatusBadRequest, "Malformed payment amount"},
	{errs.ErrAmountMismatch, http.StatusUnprocessableEntity, "Amount does not match the payment intent"},
	{errs.ErrVerificationFailed, http.StatusBadGateway, "Gateway verification failed"},
	{errs.ErrIdempotencyInProgress, http.StatusConflict, "Notification is being processed"},
	{errs.ErrCannotConfirm, http.StatusConflict, "Reservation cannot be confirmed"},

	// Holds
	{booking.ErrSlotConflict, http.StatusConflict, "Slot is no longer available"},
	{errs.ErrRateLimited, http.StatusTooManyRequests, "Too many hold attempts"},
	{errs.ErrFacilityNotApproved, http.StatusUnprocessableEntity, "Facility is not approved"},
	{errs.ErrSubscriptionInactive, http.StatusUnprocessableEntity, "Owner subscription is not active"},
	{pricing.ErrProfileInactive, http.StatusUnprocessableEntity, "Pricing profile is not active"},
	{pricing.ErrInvalidDuration, http.StatusBadRequest, "Duration is not offered"},
	{pricing.ErrPriceNotConfigured, http.StatusUnprocessableEntity, "No price configured for duration"},
	{availability.ErrInsufficientLeadTime, http.StatusBadRequest, "Start time does not meet the lead time"},
	{availability.ErrOutsideOperatingHours, http.StatusBadRequest, "Slot falls outside operating hours"},
	{booking.ErrInvalidTimeRange, http.StatusBadRequest, "Start must be before end"},
	{money.ErrInvalidRate, http.StatusInternalServerError, "Invalid rate configuration"},

	// Lifecycle
	{refund.ErrCancellationNotAllowed, http.StatusConflict, "Cancellation is not allowed"},
	{booking.ErrInvalidTransition, http.StatusConflict, "Reservation is not in a valid state for this action"},
	{booking.ErrOfflinePaymentRejected, http.StatusConflict, "Offline payment requires a confirmed reservation"},
	{booking.ErrInvalidOfflineAmount, http.StatusUnprocessableEntity, "Offline amount exceeds the remaining balance"},
	{block.ErrInvalidRange, http.StatusBadRequest, "Manual block must end after it starts"},
	{block.ErrAlreadyRemoved, http.StatusConflict, "Manual block already removed"},
}

func abortWithUseCaseError(c *gin.Context, err error, fallback string) {
	for _, m := range errorMappings {
		if errs.Is(err, m.target) {
			httperr.AbortWithError(c, m.status, err, m.message, detailFor(err))
			return
		}
	}
	slog.Error("unmapped use case error",
		"path", c.FullPath(),
		"request_id", middleware.GetRequestID(c),
		"error", err.Error(),
		"stack", errs.ExtractStackLines(err, 12),
	)
	httperr.AbortWithError(c, http.StatusInternalServerError, err, fallback, nil)
}

func detailFor(err error) any {
	var conflict *booking.SlotConflictError
	if errs.As(err, &conflict) {
		return gin.H{
			"conflictGroupId": conflict.ConflictGroupID,
			"startAt":         conflict.Start,
			"blockedEndAt":    conflict.BlockedEnd,
		}
	}
	return nil
}
