package repository

import (
	"context"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/ledger"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra/db"
)

const postLedgerEntrySQL = `INSERT INTO ledger_entries (id, owner_id, booking_id, kind, amount, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (booking_id, kind) DO NOTHING`

type LedgerRepository struct {
	db db.DBTX
}

func NewLedgerRepository(db db.DBTX) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) Post(ctx context.Context, e ledger.Entry) (bool, error) {
	tag, err := r.db.Exec(ctx, postLedgerEntrySQL, e.ID, e.OwnerID, e.BookingID, string(e.Kind), e.Amount, e.CreatedAt)
	if err != nil {
		return false, infra.WrapRepoErr("failed to post ledger entry", err)
	}
	return tag.RowsAffected() == 1, nil
}
