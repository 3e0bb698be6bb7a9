//go:build unit

package worker_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/config"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/worker"
	commandsmock "github.com/sakib-101-git/Sport-Zen-sub000/tests/mock/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func sweeperConfig() config.SweeperConfig {
	return config.SweeperConfig{
		Enabled:          true,
		BatchSize:        25,
		ExpirySchedule:   "@every 1h",
		CompleteSchedule: "@every 1h",
		PurgeSchedule:    "@every 1h",
	}
}

func newSweeper(t *testing.T, cfg config.SweeperConfig) (*worker.Sweeper, *commandsmock.MockLifecycleCommands, *bytes.Buffer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	lifecycle := commandsmock.NewMockLifecycleCommands(ctrl)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	return worker.NewSweeper(lifecycle, logger, cfg), lifecycle, &buf
}

func TestSweeper_Jobs(t *testing.T) {
	t.Run("expire holds passes the batch size and logs the count", func(t *testing.T) {
		s, lifecycle, logs := newSweeper(t, sweeperConfig())
		lifecycle.EXPECT().ExpireDueHolds(gomock.Any(), 25).Return(3, nil).Times(1)

		s.ExpireHolds()
		assert.Contains(t, logs.String(), "expired holds")
		assert.Contains(t, logs.String(), "count=3")
	})

	t.Run("idle sweeps stay quiet", func(t *testing.T) {
		s, lifecycle, logs := newSweeper(t, sweeperConfig())
		lifecycle.EXPECT().CompleteDueReservations(gomock.Any(), 25).Return(0, nil).Times(1)
		lifecycle.EXPECT().PurgeExpiredIdempotencyKeys(gomock.Any()).Return(int64(0), nil).Times(1)

		s.CompleteReservations()
		s.PurgeIdempotencyKeys()
		assert.Empty(t, logs.String())
	})

	t.Run("failures are logged and do not panic", func(t *testing.T) {
		s, lifecycle, logs := newSweeper(t, sweeperConfig())
		lifecycle.EXPECT().CompleteDueReservations(gomock.Any(), 25).Return(0, errors.New("db down")).Times(1)

		s.CompleteReservations()
		assert.Contains(t, logs.String(), "complete reservations sweep failed")
		assert.Contains(t, logs.String(), "db down")
	})

	t.Run("each run gets a deadline", func(t *testing.T) {
		s, lifecycle, _ := newSweeper(t, sweeperConfig())
		lifecycle.EXPECT().ExpireDueHolds(gomock.Any(), 25).
			DoAndReturn(func(ctx context.Context, _ int) (int, error) {
				_, ok := ctx.Deadline()
				assert.True(t, ok)
				return 0, nil
			}).Times(1)

		s.ExpireHolds()
	})
}

func TestSweeper_Lifecycle(t *testing.T) {
	t.Run("start and stop", func(t *testing.T) {
		s, _, logs := newSweeper(t, sweeperConfig())
		require.NoError(t, s.Start())
		assert.Contains(t, logs.String(), "job=expire_holds")

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, s.Stop(ctx))
	})

	t.Run("bad schedule refuses to start", func(t *testing.T) {
		cfg := sweeperConfig()
		cfg.PurgeSchedule = "every now and then"
		s, _, logs := newSweeper(t, cfg)

		require.Error(t, s.Start())
		assert.Contains(t, logs.String(), "failed to schedule job")
	})
}
