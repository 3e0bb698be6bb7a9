package readstore

import (
	"context"
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/availability"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/booking"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/pricing"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra/db"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra/repository/converter"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/pgconv"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const profileColumns = `p.id, p.active, p.slot_interval_minutes, p.allowed_durations, p.buffer_minutes,
	p.lead_time_minutes, p.open_minute, p.close_minute, p.regular_prices, p.peak_prices,
	p.peak_windows, f.timezone`

const (
	selectHoldTargetSQL = `SELECT r.id, r.facility_id, f.owner_id, r.conflict_group_id,
		f.approval_status = 'approved', COALESCE(s.status, ''), ` + profileColumns + `
		FROM resources r
		JOIN facilities f ON f.id = r.facility_id
		JOIN pricing_profiles p ON p.resource_id = r.id
		LEFT JOIN owner_subscriptions s ON s.owner_id = f.owner_id
		WHERE r.id = $1 AND p.id = $2`

	selectProfileSQL = `SELECT ` + profileColumns + `
		FROM pricing_profiles p
		JOIN resources r ON r.id = p.resource_id
		JOIN facilities f ON f.id = r.facility_id
		WHERE p.id = $1`

	selectBookingSQL = `SELECT ` + converter.BookingColumns + ` FROM bookings WHERE id = $1 AND deleted_at IS NULL`

	selectOccupantsSQL = `SELECT booking_id, manual_block_id, start_at, blocked_end_at
		FROM occupancies
		WHERE conflict_group_id = $1 AND start_at < $3 AND blocked_end_at > $2
		ORDER BY start_at`

	// Same half-open test the exclusion constraint applies.
	isSlotFreeSQL = `SELECT NOT EXISTS (
		SELECT 1 FROM occupancies
		WHERE conflict_group_id = $1
		  AND tstzrange(start_at, blocked_end_at, '[)') && tstzrange($2, $3, '[)')
		  AND booking_id IS DISTINCT FROM $4)`

	selectDueHoldsSQL = `SELECT id FROM bookings
		WHERE status = 'HOLD' AND hold_expires_at <= $1 AND deleted_at IS NULL
		ORDER BY hold_expires_at LIMIT $2`

	selectDueCompletionsSQL = `SELECT id FROM bookings
		WHERE status = 'CONFIRMED' AND end_at <= $1 AND deleted_at IS NULL
		ORDER BY end_at LIMIT $2`
)

// Store answers the read questions commands and queries ask, inside or
// outside a transaction depending on the DBTX it is given.
type Store struct {
	db db.DBTX
}

func NewStore(db db.DBTX) *Store {
	return &Store{db: db}
}

var _ shared.Reads = (*Store)(nil)

func (s *Store) HoldTarget(ctx context.Context, resourceID, pricingProfileID uuid.UUID) (*shared.HoldTarget, error) {
	var (
		t   shared.HoldTarget
		row converter.ProfileRow
	)
	targets := append([]any{&t.ResourceID, &t.FacilityID, &t.OwnerID, &t.ConflictGroupID, &t.FacilityApproved, &t.SubscriptionStatus},
		profileScanTargets(&row)...)

	if err := s.db.QueryRow(ctx, selectHoldTargetSQL, resourceID, pricingProfileID).Scan(targets...); err != nil {
		return nil, infra.WrapRepoErr("failed to load hold target", err)
	}

	p, err := converter.ProfileFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode pricing profile", err, infra.KindDBFailure)
	}
	t.Profile = *p
	return &t, nil
}

func (s *Store) Profile(ctx context.Context, pricingProfileID uuid.UUID) (*pricing.Profile, error) {
	var row converter.ProfileRow
	if err := s.db.QueryRow(ctx, selectProfileSQL, pricingProfileID).Scan(profileScanTargets(&row)...); err != nil {
		return nil, infra.WrapRepoErr("failed to load pricing profile", err)
	}
	p, err := converter.ProfileFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode pricing profile", err, infra.KindDBFailure)
	}
	return p, nil
}

func (s *Store) Booking(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	var row converter.BookingRow
	if err := s.db.QueryRow(ctx, selectBookingSQL, id).Scan(row.ScanTargets()...); err != nil {
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return converter.BookingFromRow(row), nil
}

func (s *Store) Occupants(ctx context.Context, conflictGroupID uuid.UUID, from, to time.Time) ([]availability.Occupant, error) {
	rows, err := s.db.Query(ctx, selectOccupantsSQL, conflictGroupID, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list occupants", err)
	}
	defer rows.Close()

	var out []availability.Occupant
	for rows.Next() {
		var (
			bookingID, blockID pgtype.UUID
			o                  availability.Occupant
		)
		if err := rows.Scan(&bookingID, &blockID, &o.Start, &o.End); err != nil {
			return nil, infra.WrapRepoErr("failed to scan occupant", err)
		}
		if id := pgconv.UUIDPtrFromPgtype(bookingID); id != nil {
			o.Kind, o.ID = availability.OccupantReservation, *id
		} else if id := pgconv.UUIDPtrFromPgtype(blockID); id != nil {
			o.Kind, o.ID = availability.OccupantManualBlock, *id
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list occupants", err)
	}
	return out, nil
}

func (s *Store) IsSlotFree(ctx context.Context, conflictGroupID uuid.UUID, start, blockedEnd time.Time, exclude *uuid.UUID) (bool, error) {
	var free bool
	err := s.db.QueryRow(ctx, isSlotFreeSQL, conflictGroupID, start, blockedEnd, pgconv.UUIDPtrToPgtype(exclude)).Scan(&free)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check slot", err)
	}
	return free, nil
}

func (s *Store) DueHolds(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	return s.ids(ctx, selectDueHoldsSQL, now, limit)
}

func (s *Store) DueCompletions(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	return s.ids(ctx, selectDueCompletionsSQL, now, limit)
}

func (s *Store) ids(ctx context.Context, query string, now time.Time, limit int) ([]uuid.UUID, error) {
	rows, err := s.db.Query(ctx, query, now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list due bookings", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan due bookings", err)
	}
	return ids, nil
}

func profileScanTargets(r *converter.ProfileRow) []any {
	p := &r.Profile
	return []any{
		&p.ID, &p.Active, &p.SlotIntervalMinutes, &r.Durations, &p.BufferMinutes,
		&p.LeadTimeMinutes, &p.OpenMinute, &p.CloseMinute, &r.RegularPrices, &r.PeakPrices,
		&r.PeakWindows, &r.TimeZone,
	}
}
