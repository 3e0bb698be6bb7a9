package repository

import (
	"context"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra/db"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/pgconv"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	insertOccupancySQL = `INSERT INTO occupancies
		(id, conflict_group_id, booking_id, manual_block_id, start_at, blocked_end_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	deleteOccupancyByBookingSQL = `DELETE FROM occupancies WHERE booking_id = $1`
	deleteOccupancyByBlockSQL   = `DELETE FROM occupancies WHERE manual_block_id = $1`
)

type OccupancyRepository struct {
	db db.DBTX
}

func NewOccupancyRepository(db db.DBTX) *OccupancyRepository {
	return &OccupancyRepository{db: db}
}

// Insert fails with KindConflict when the range overlaps a live occupant.
func (r *OccupancyRepository) Insert(ctx context.Context, o shared.Occupancy) error {
	id := o.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	_, err := r.db.Exec(ctx, insertOccupancySQL,
		id,
		o.ConflictGroupID,
		pgconv.UUIDPtrToPgtype(o.BookingID),
		pgconv.UUIDPtrToPgtype(o.BlockID),
		o.StartAt,
		o.BlockedEndAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert occupancy", err)
	}
	return nil
}

// DeleteByBooking is a no-op when the booking holds no occupancy.
func (r *OccupancyRepository) DeleteByBooking(ctx context.Context, bookingID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, deleteOccupancyByBookingSQL, bookingID); err != nil {
		return infra.WrapRepoErr("failed to release booking occupancy", err)
	}
	return nil
}

func (r *OccupancyRepository) DeleteByBlock(ctx context.Context, blockID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, deleteOccupancyByBlockSQL, blockID); err != nil {
		return infra.WrapRepoErr("failed to release manual block occupancy", err)
	}
	return nil
}
