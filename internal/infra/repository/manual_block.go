package repository

import (
	"context"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/block"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra/db"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	insertManualBlockSQL = `INSERT INTO manual_blocks
		(id, conflict_group_id, owner_id, start_at, end_at, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	selectManualBlockForUpdateSQL = `SELECT id, conflict_group_id, owner_id, start_at, end_at, reason, created_at, deleted_at
		FROM manual_blocks WHERE id = $1 FOR UPDATE`

	updateManualBlockSQL = `UPDATE manual_blocks SET deleted_at = $2 WHERE id = $1`
)

type ManualBlockRepository struct {
	db db.DBTX
}

func NewManualBlockRepository(db db.DBTX) *ManualBlockRepository {
	return &ManualBlockRepository{db: db}
}

func (r *ManualBlockRepository) Create(ctx context.Context, b *block.ManualBlock) error {
	_, err := r.db.Exec(ctx, insertManualBlockSQL, b.ID, b.ConflictGroupID, b.OwnerID, b.StartAt, b.EndAt, b.Reason, b.CreatedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to create manual block", err)
	}
	return nil
}

func (r *ManualBlockRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*block.ManualBlock, error) {
	var (
		b         block.ManualBlock
		deletedAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, selectManualBlockForUpdateSQL, id).
		Scan(&b.ID, &b.ConflictGroupID, &b.OwnerID, &b.StartAt, &b.EndAt, &b.Reason, &b.CreatedAt, &deletedAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock manual block", err)
	}
	b.DeletedAt = pgconv.TimePtrFromPgtype(deletedAt)
	return &b, nil
}

func (r *ManualBlockRepository) Update(ctx context.Context, b *block.ManualBlock) error {
	if _, err := r.db.Exec(ctx, updateManualBlockSQL, b.ID, pgconv.TimePtrToPgtype(b.DeletedAt)); err != nil {
		return infra.WrapRepoErr("failed to update manual block", err)
	}
	return nil
}
