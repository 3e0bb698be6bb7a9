package repository

import (
	"context"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/payment"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra/db"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	intentColumns = `id, booking_id, amount, status, gateway_tran_id, gateway_val_id, created_at, updated_at`

	insertIntentSQL = `INSERT INTO payment_intents (` + intentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	selectIntentByTranIDSQL   = `SELECT ` + intentColumns + ` FROM payment_intents WHERE gateway_tran_id = $1`
	selectIntentForUpdateSQL  = `SELECT ` + intentColumns + ` FROM payment_intents WHERE id = $1 FOR UPDATE`
	selectIntentsByBookingSQL = `SELECT ` + intentColumns + ` FROM payment_intents WHERE booking_id = $1 ORDER BY created_at`
	updateIntentSQL           = `UPDATE payment_intents SET status = $2, gateway_val_id = $3, updated_at = $4 WHERE id = $1`
)

type PaymentIntentRepository struct {
	db db.DBTX
}

func NewPaymentIntentRepository(db db.DBTX) *PaymentIntentRepository {
	return &PaymentIntentRepository{db: db}
}

func (r *PaymentIntentRepository) Create(ctx context.Context, i *payment.Intent) error {
	_, err := r.db.Exec(ctx, insertIntentSQL,
		i.ID, i.BookingID, i.Amount, string(i.Status), i.GatewayTranID,
		pgconv.StringToPgtype(i.GatewayValID), i.CreatedAt, i.UpdatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create payment intent", err)
	}
	return nil
}

func (r *PaymentIntentRepository) FindByTranID(ctx context.Context, tranID string) (*payment.Intent, error) {
	i, err := scanIntent(r.db.QueryRow(ctx, selectIntentByTranIDSQL, tranID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find payment intent by tran id", err)
	}
	return i, nil
}

func (r *PaymentIntentRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*payment.Intent, error) {
	i, err := scanIntent(r.db.QueryRow(ctx, selectIntentForUpdateSQL, id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock payment intent", err)
	}
	return i, nil
}

func (r *PaymentIntentRepository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*payment.Intent, error) {
	rows, err := r.db.Query(ctx, selectIntentsByBookingSQL, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list payment intents", err)
	}
	defer rows.Close()

	var out []*payment.Intent
	for rows.Next() {
		i, err := scanIntent(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan payment intent", err)
		}
		out = append(out, i)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list payment intents", err)
	}
	return out, nil
}

func (r *PaymentIntentRepository) Update(ctx context.Context, i *payment.Intent) error {
	_, err := r.db.Exec(ctx, updateIntentSQL, i.ID, string(i.Status), pgconv.StringToPgtype(i.GatewayValID), i.UpdatedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to update payment intent", err)
	}
	return nil
}

func scanIntent(row pgx.Row) (*payment.Intent, error) {
	var (
		i      payment.Intent
		status string
		valID  pgtype.Text
	)
	if err := row.Scan(&i.ID, &i.BookingID, &i.Amount, &status, &i.GatewayTranID, &valID, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return nil, err
	}
	i.Status = payment.IntentStatus(status)
	i.GatewayValID = pgconv.StringFromPgtype(valID)
	return &i, nil
}
