package shared

import (
	"context"
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/availability"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/block"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/booking"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/ledger"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/payment"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/pricing"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/refund"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Reads: Lookups outside any transaction, each statement on its own
	Reads() Reads
}

// Repositories handed out by Tx are bound to that transaction.
type Tx interface {
	Bookings() BookingRepository
	Occupancies() OccupancyRepository
	PaymentIntents() PaymentIntentRepository
	PaymentTransactions() PaymentTransactionRepository
	Refunds() RefundRepository
	Events() EventRepository
	Ledger() LedgerRepository
	ManualBlocks() ManualBlockRepository
	Idempotency() IdempotencyRepository
	Reads() Reads
}

type Reads interface {
	HoldTarget(ctx context.Context, resourceID, pricingProfileID uuid.UUID) (*HoldTarget, error)
	Profile(ctx context.Context, pricingProfileID uuid.UUID) (*pricing.Profile, error)
	Booking(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	Occupants(ctx context.Context, conflictGroupID uuid.UUID, from, to time.Time) ([]availability.Occupant, error)
	IsSlotFree(ctx context.Context, conflictGroupID uuid.UUID, start, blockedEnd time.Time, exclude *uuid.UUID) (bool, error)
	DueHolds(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error)
	DueCompletions(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error)
}

type BookingRepository interface {
	NextNumber(ctx context.Context, now time.Time) (string, error)
	Create(ctx context.Context, b *booking.Booking) error
	GetForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	Update(ctx context.Context, b *booking.Booking) error
}

type OccupancyRepository interface {
	Insert(ctx context.Context, o Occupancy) error
	DeleteByBooking(ctx context.Context, bookingID uuid.UUID) error
	DeleteByBlock(ctx context.Context, blockID uuid.UUID) error
}

type PaymentIntentRepository interface {
	Create(ctx context.Context, i *payment.Intent) error
	FindByTranID(ctx context.Context, tranID string) (*payment.Intent, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*payment.Intent, error)
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*payment.Intent, error)
	Update(ctx context.Context, i *payment.Intent) error
}

type PaymentTransactionRepository interface {
	// Record is insert-or-ignore; false means the delivery was already recorded.
	Record(ctx context.Context, t payment.Transaction) (bool, error)
}

type RefundRepository interface {
	Create(ctx context.Context, r refund.Refund) error
}

type EventRepository interface {
	Append(ctx context.Context, e booking.Event) error
}

type LedgerRepository interface {
	// Post is insert-or-ignore on (booking, kind).
	Post(ctx context.Context, e ledger.Entry) (bool, error)
}

type ManualBlockRepository interface {
	Create(ctx context.Context, b *block.ManualBlock) error
	GetForUpdate(ctx context.Context, id uuid.UUID) (*block.ManualBlock, error)
	Update(ctx context.Context, b *block.ManualBlock) error
}

type IdempotencyRepository interface {
	// TryInsert claims key unless a live record exists; expired records are reclaimed.
	TryInsert(ctx context.Context, key, scope string, now, expiresAt time.Time) (bool, error)
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	Complete(ctx context.Context, key string, result []byte) error
	Release(ctx context.Context, key string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
