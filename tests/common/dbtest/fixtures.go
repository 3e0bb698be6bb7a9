//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by both a pool and a transaction.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Venue is one bookable court with everything a hold needs behind it.
type Venue struct {
	OwnerID         uuid.UUID
	FacilityID      uuid.UUID
	ConflictGroupID uuid.UUID
	ResourceID      uuid.UUID
	ProfileID       uuid.UUID
}

type VenueOptions struct {
	ApprovalStatus     string
	SubscriptionStatus string
	TimeZone           string
}

func DefaultVenueOptions() VenueOptions {
	return VenueOptions{
		ApprovalStatus:     "approved",
		SubscriptionStatus: "active",
		TimeZone:           "UTC",
	}
}

// CreateTestVenue seeds a facility open 06:00-23:00 with 60/90/120 minute
// slots, a 10 minute buffer and 18:00-22:00 peak pricing.
func CreateTestVenue(t *testing.T, db DBLike, opts VenueOptions) Venue {
	t.Helper()

	v := Venue{
		OwnerID:         uuid.New(),
		FacilityID:      uuid.New(),
		ConflictGroupID: uuid.New(),
		ResourceID:      uuid.New(),
		ProfileID:       uuid.New(),
	}
	ctx := context.Background()

	_, err := db.Exec(ctx, `INSERT INTO facilities (id, owner_id, name, approval_status, timezone)
		VALUES ($1, $2, $3, $4, $5)`, v.FacilityID, v.OwnerID, "Test Arena", opts.ApprovalStatus, opts.TimeZone)
	require.NoError(t, err)

	if opts.SubscriptionStatus != "" {
		_, err = db.Exec(ctx, `INSERT INTO owner_subscriptions (owner_id, status) VALUES ($1, $2)`,
			v.OwnerID, opts.SubscriptionStatus)
		require.NoError(t, err)
	}

	_, err = db.Exec(ctx, `INSERT INTO conflict_groups (id, facility_id, name) VALUES ($1, $2, $3)`,
		v.ConflictGroupID, v.FacilityID, "Main turf")
	require.NoError(t, err)

	_, err = db.Exec(ctx, `INSERT INTO resources (id, facility_id, conflict_group_id, name, sport_type)
		VALUES ($1, $2, $3, $4, $5)`, v.ResourceID, v.FacilityID, v.ConflictGroupID, "Turf A", "football")
	require.NoError(t, err)

	_, err = db.Exec(ctx, `INSERT INTO pricing_profiles (id, resource_id, active, slot_interval_minutes,
		allowed_durations, buffer_minutes, lead_time_minutes, open_minute, close_minute,
		regular_prices, peak_prices, peak_windows)
		VALUES ($1, $2, true, 30, $3, 10, 60, 360, 1380, $4, $5, $6)`,
		v.ProfileID, v.ResourceID, []int32{60, 90, 120},
		`{"60": 1000, "90": 1400, "120": 1800}`,
		`{"60": 1500, "90": 2100, "120": 2700}`,
		`[{"start_minute": 1080, "end_minute": 1320}]`)
	require.NoError(t, err)

	return v
}

// SlotOn returns hour:00 UTC daysAhead days from now, far enough out to
// clear the lead time.
func SlotOn(daysAhead, hour int) time.Time {
	d := time.Now().UTC().AddDate(0, 0, daysAhead)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.UTC)
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates every application table
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}

func CountRows(t *testing.T, db DBLike, query string, args ...any) int {
	t.Helper()

	var n int
	require.NoError(t, db.QueryRow(context.Background(), query, args...).Scan(&n))
	return n
}
