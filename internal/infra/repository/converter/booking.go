package converter

import (
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/booking"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const BookingColumns = `id, reservation_number, player_id, resource_id, pricing_profile_id,
	conflict_group_id, facility_id, owner_id, start_at, end_at, blocked_end_at,
	status, payment_stage, total_amount, advance_amount, platform_commission,
	owner_advance_credit, offline_amount_collected, hold_expires_at,
	contact_name, contact_phone, canceled_at, canceled_by, cancel_reason,
	deleted_at, created_at, updated_at`

// BookingRow mirrors one bookings row in BookingColumns order.
type BookingRow struct {
	Snap         booking.Snapshot
	Status       string
	PaymentStage string
	HoldExpires  pgtype.Timestamptz
	ContactName  pgtype.Text
	ContactPhone pgtype.Text
	CanceledAt   pgtype.Timestamptz
	CanceledBy   pgtype.UUID
	CancelReason pgtype.Text
	DeletedAt    pgtype.Timestamptz
}

func (r *BookingRow) ScanTargets() []any {
	s := &r.Snap
	return []any{
		&s.ID, &s.Number, &s.PlayerID, &s.ResourceID, &s.PricingProfileID,
		&s.ConflictGroupID, &s.FacilityID, &s.OwnerID, &s.StartAt, &s.EndAt, &s.BlockedEndAt,
		&r.Status, &r.PaymentStage, &s.TotalAmount, &s.AdvanceAmount, &s.Commission,
		&s.OwnerCredit, &s.OfflineCollected, &r.HoldExpires,
		&r.ContactName, &r.ContactPhone, &r.CanceledAt, &r.CanceledBy, &r.CancelReason,
		&r.DeletedAt, &s.CreatedAt, &s.UpdatedAt,
	}
}

func BookingFromRow(r BookingRow) *booking.Booking {
	s := r.Snap
	s.Status = booking.Status(r.Status)
	s.PaymentStage = booking.PaymentStage(r.PaymentStage)
	s.HoldExpiresAt = pgconv.TimePtrFromPgtype(r.HoldExpires)
	s.DeletedAt = pgconv.TimePtrFromPgtype(r.DeletedAt)
	s.Contact = booking.Contact{
		Name:  pgconv.StringFromPgtype(r.ContactName),
		Phone: pgconv.StringFromPgtype(r.ContactPhone),
	}
	if r.CanceledAt.Valid {
		c := &booking.Cancellation{
			At:     r.CanceledAt.Time,
			Reason: pgconv.StringFromPgtype(r.CancelReason),
		}
		if by := pgconv.UUIDPtrFromPgtype(r.CanceledBy); by != nil {
			c.By = *by
		}
		s.Cancellation = c
	}
	return booking.Reconstruct(s)
}

func cancellationArgs(c *booking.Cancellation) (pgtype.Timestamptz, pgtype.UUID, pgtype.Text) {
	if c == nil {
		return pgtype.Timestamptz{}, pgtype.UUID{}, pgtype.Text{}
	}
	var by pgtype.UUID
	if c.By != uuid.Nil {
		by = pgconv.UUIDPtrToPgtype(&c.By)
	}
	return pgtype.Timestamptz{Time: c.At, Valid: true}, by, pgconv.StringToPgtype(c.Reason)
}

// BookingToArgs returns insert arguments in BookingColumns order.
func BookingToArgs(b *booking.Booking) []any {
	s := b.Snapshot()
	canceledAt, canceledBy, reason := cancellationArgs(s.Cancellation)

	return []any{
		s.ID, s.Number, s.PlayerID, s.ResourceID, s.PricingProfileID,
		s.ConflictGroupID, s.FacilityID, s.OwnerID, s.StartAt, s.EndAt, s.BlockedEndAt,
		s.Status.String(), string(s.PaymentStage), s.TotalAmount, s.AdvanceAmount, s.Commission,
		s.OwnerCredit, s.OfflineCollected, pgconv.TimePtrToPgtype(s.HoldExpiresAt),
		pgconv.StringToPgtype(s.Contact.Name), pgconv.StringToPgtype(s.Contact.Phone),
		canceledAt, canceledBy, reason,
		pgconv.TimePtrToPgtype(s.DeletedAt), s.CreatedAt, s.UpdatedAt,
	}
}

// BookingUpdateArgs matches the mutable-column UPDATE: id first, then state.
func BookingUpdateArgs(b *booking.Booking) []any {
	s := b.Snapshot()
	canceledAt, canceledBy, reason := cancellationArgs(s.Cancellation)
	return []any{
		s.ID, s.Status.String(), string(s.PaymentStage), s.OfflineCollected,
		pgconv.TimePtrToPgtype(s.HoldExpiresAt), canceledAt, canceledBy, reason,
		pgconv.TimePtrToPgtype(s.DeletedAt), s.UpdatedAt,
	}
}
