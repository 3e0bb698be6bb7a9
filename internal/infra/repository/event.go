package repository

import (
	"context"
	"encoding/json"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/booking"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra/db"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/pgconv"
)

const appendEventSQL = `INSERT INTO booking_events
	(id, booking_id, event_type, from_status, to_status, data, occurred_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

type EventRepository struct {
	db db.DBTX
}

func NewEventRepository(db db.DBTX) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Append(ctx context.Context, e booking.Event) error {
	var data []byte
	if len(e.Data) > 0 {
		var err error
		if data, err = json.Marshal(e.Data); err != nil {
			return infra.WrapRepoErr("failed to encode event data", err)
		}
	}

	_, err := r.db.Exec(ctx, appendEventSQL,
		e.ID, e.BookingID, string(e.Type), pgconv.StringToPgtype(string(e.FromStatus)),
		string(e.ToStatus), data, e.OccurredAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to append booking event", err)
	}
	return nil
}
