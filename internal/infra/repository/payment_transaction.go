package repository

import (
	"context"
	"encoding/json"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/payment"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra/db"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/pgconv"
)

// Duplicate deliveries hit the (gateway_tran_id, status) key and are ignored.
const recordTransactionSQL = `INSERT INTO payment_transactions
	(id, payment_intent_id, gateway_tran_id, gateway_val_id, delivered_amount,
	 status, verified, verification_notes, raw_payload, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (gateway_tran_id, status) DO NOTHING`

type PaymentTransactionRepository struct {
	db db.DBTX
}

func NewPaymentTransactionRepository(db db.DBTX) *PaymentTransactionRepository {
	return &PaymentTransactionRepository{db: db}
}

func (r *PaymentTransactionRepository) Record(ctx context.Context, t payment.Transaction) (bool, error) {
	raw, err := json.Marshal(t.RawPayload)
	if err != nil {
		return false, infra.WrapRepoErr("failed to encode raw payload", err)
	}

	tag, err := r.db.Exec(ctx, recordTransactionSQL,
		t.ID, t.IntentID, t.GatewayTranID, pgconv.StringToPgtype(t.GatewayValID), t.DeliveredAmount,
		string(t.Status), t.Verified, pgconv.StringToPgtype(t.VerificationNotes), raw, t.CreatedAt,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to record payment transaction", err)
	}
	return tag.RowsAffected() == 1, nil
}
