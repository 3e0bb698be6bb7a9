package request

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const DateLayout = "2006-01-02"

var ErrInvalidAvailabilityQuery = errors.New("conflict_group_id, pricing_profile_id and date (YYYY-MM-DD) are required")

type AvailabilityQuery struct {
	ConflictGroupID  string `form:"conflict_group_id" binding:"required"`
	PricingProfileID string `form:"pricing_profile_id" binding:"required"`
	Date             string `form:"date" binding:"required"`
}

type ParsedAvailabilityQuery struct {
	ConflictGroupID  uuid.UUID
	PricingProfileID uuid.UUID
	Date             time.Time
}

func (q *AvailabilityQuery) Parse() (ParsedAvailabilityQuery, error) {
	group, err := uuid.Parse(q.ConflictGroupID)
	if err != nil {
		return ParsedAvailabilityQuery{}, ErrInvalidAvailabilityQuery
	}
	profile, err := uuid.Parse(q.PricingProfileID)
	if err != nil {
		return ParsedAvailabilityQuery{}, ErrInvalidAvailabilityQuery
	}
	date, err := time.Parse(DateLayout, q.Date)
	if err != nil {
		return ParsedAvailabilityQuery{}, ErrInvalidAvailabilityQuery
	}
	return ParsedAvailabilityQuery{
		ConflictGroupID:  group,
		PricingProfileID: profile,
		Date:             date,
	}, nil
}
