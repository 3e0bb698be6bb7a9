package repository

import (
	"context"
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra/db"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/shared"
)

const (
	// A live key is never overwritten; an expired one is taken over.
	tryInsertIdempotencyKeySQL = `INSERT INTO idempotency_keys (key, scope, status, created_at, expires_at)
		VALUES ($1, $2, 'processing', $3, $4)
		ON CONFLICT (key) DO UPDATE
		SET scope = EXCLUDED.scope, status = 'processing', result = NULL,
		    created_at = EXCLUDED.created_at, expires_at = EXCLUDED.expires_at
		WHERE idempotency_keys.expires_at <= EXCLUDED.created_at`

	getIdempotencyKeySQL = `SELECT key, scope, status, result, expires_at FROM idempotency_keys WHERE key = $1`

	completeIdempotencyKeySQL = `UPDATE idempotency_keys SET status = 'completed', result = $2 WHERE key = $1`

	releaseIdempotencyKeySQL = `DELETE FROM idempotency_keys WHERE key = $1 AND status = 'processing'`

	deleteExpiredIdempotencyKeysSQL = `DELETE FROM idempotency_keys WHERE expires_at <= $1`
)

type IdempotencyRepository struct {
	db db.DBTX
}

func NewIdempotencyRepository(db db.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{db: db}
}

func (r *IdempotencyRepository) TryInsert(ctx context.Context, key, scope string, now, expiresAt time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, tryInsertIdempotencyKeySQL, key, scope, now, expiresAt)
	if err != nil {
		return false, infra.WrapRepoErr("failed to try insert idempotency key", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *IdempotencyRepository) Get(ctx context.Context, key string) (*shared.IdempotencyRecord, error) {
	var (
		rec    shared.IdempotencyRecord
		status string
	)
	err := r.db.QueryRow(ctx, getIdempotencyKeySQL, key).Scan(&rec.Key, &rec.Scope, &status, &rec.Result, &rec.ExpiresAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}
	rec.Status = shared.IdempotencyStatus(status)
	return &rec, nil
}

func (r *IdempotencyRepository) Complete(ctx context.Context, key string, result []byte) error {
	if _, err := r.db.Exec(ctx, completeIdempotencyKeySQL, key, result); err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	return nil
}

// Release drops an unfinished claim so a later delivery can retry.
func (r *IdempotencyRepository) Release(ctx context.Context, key string) error {
	if _, err := r.db.Exec(ctx, releaseIdempotencyKeySQL, key); err != nil {
		return infra.WrapRepoErr("failed to release idempotency key", err)
	}
	return nil
}

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, deleteExpiredIdempotencyKeysSQL, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}
	return tag.RowsAffected(), nil
}
