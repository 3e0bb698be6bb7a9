package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/booking"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra/db"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra/repository/converter"

	"github.com/google/uuid"
)

const (
	insertBookingSQL = `INSERT INTO bookings (` + converter.BookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
		        $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)`

	selectBookingForUpdateSQL = `SELECT ` + converter.BookingColumns + `
		FROM bookings WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`

	// Only mutable columns are written back.
	updateBookingSQL = `UPDATE bookings SET
		status = $2, payment_stage = $3, offline_amount_collected = $4,
		hold_expires_at = $5, canceled_at = $6, canceled_by = $7, cancel_reason = $8,
		deleted_at = $9, updated_at = $10
		WHERE id = $1`

	nextReservationNumberSQL = `SELECT nextval('reservation_number_seq')`
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(db db.DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

// NextNumber renders a human readable, globally unique reservation number.
func (r *BookingRepository) NextNumber(ctx context.Context, now time.Time) (string, error) {
	var seq int64
	if err := r.db.QueryRow(ctx, nextReservationNumberSQL).Scan(&seq); err != nil {
		return "", infra.WrapRepoErr("failed to allocate reservation number", err)
	}
	return fmt.Sprintf("SZ-%s-%06d", now.UTC().Format("20060102"), seq), nil
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	if _, err := r.db.Exec(ctx, insertBookingSQL, converter.BookingToArgs(b)...); err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

// GetForUpdate row-locks the booking for the rest of the transaction.
func (r *BookingRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	var row converter.BookingRow
	if err := r.db.QueryRow(ctx, selectBookingForUpdateSQL, id).Scan(row.ScanTargets()...); err != nil {
		return nil, infra.WrapRepoErr("failed to lock booking", err)
	}
	return converter.BookingFromRow(row), nil
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	tag, err := r.db.Exec(ctx, updateBookingSQL, converter.BookingUpdateArgs(b)...)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}
