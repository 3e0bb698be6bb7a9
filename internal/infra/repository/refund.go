package repository

import (
	"context"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/refund"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra/db"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/pgconv"
)

const insertRefundSQL = `INSERT INTO refunds
	(id, booking_id, payment_intent_id, amount, platform_fee_retained, tier, status, reason, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

type RefundRepository struct {
	db db.DBTX
}

func NewRefundRepository(db db.DBTX) *RefundRepository {
	return &RefundRepository{db: db}
}

func (r *RefundRepository) Create(ctx context.Context, rf refund.Refund) error {
	_, err := r.db.Exec(ctx, insertRefundSQL,
		rf.ID, rf.BookingID, rf.PaymentIntentID, rf.Amount, rf.PlatformFeeRetained,
		string(rf.Tier), string(rf.Status), pgconv.StringToPgtype(rf.Reason), rf.CreatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create refund", err)
	}
	return nil
}
