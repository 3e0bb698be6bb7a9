package errs

import "errors"

// Use-case level sentinel errors shared by commands, queries and handlers.
// Domain packages own the rest (booking.ErrSlotConflict, payment.ErrInvalidSignature, ...).
var (
	// Lookup errors
	ErrReservationNotFound = errors.New("reservation not found")
	ErrResourceNotFound    = errors.New("resource not found")
	ErrIntentNotFound      = errors.New("payment intent not found")
	ErrManualBlockNotFound = errors.New("manual block not found")

	// Hold errors
	ErrRateLimited          = errors.New("too many hold attempts")
	ErrFacilityNotApproved  = errors.New("facility is not approved")
	ErrSubscriptionInactive = errors.New("owner subscription is not active")

	// Reconciliation errors
	ErrAmountMismatch     = errors.New("delivered amount does not match the payment intent")
	ErrVerificationFailed = errors.New("gateway verification failed")
	ErrCannotConfirm      = errors.New("reservation cannot be confirmed")

	// Idempotency errors
	ErrIdempotencyInProgress  = errors.New("idempotency in progress")
	ErrIdempotencyCheckFailed = errors.New("idempotency check failed")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
