package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/config"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/commands"

	"github.com/robfig/cron/v3"
)

// jobTimeout bounds a single run so a stuck database never piles runs up.
const jobTimeout = 2 * time.Minute

// Sweeper drives the time-based transitions nobody requests explicitly:
// hold expiry, completion and idempotency key cleanup.
type Sweeper struct {
	cron      *cron.Cron
	lifecycle commands.LifecycleCommands
	logger    *slog.Logger
	cfg       config.SweeperConfig
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewSweeper(lifecycle commands.LifecycleCommands, logger *slog.Logger, cfg config.SweeperConfig) *Sweeper {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	c := cron.New(cron.WithChain(
		cron.Recover(cronLogger),
		cron.SkipIfStillRunning(cronLogger),
	))

	ctx, cancel := context.WithCancel(context.Background())
	return &Sweeper{
		cron:      c,
		lifecycle: lifecycle,
		logger:    logger,
		cfg:       cfg,
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (s *Sweeper) Start() error {
	jobs := []struct {
		name     string
		schedule string
		run      func()
	}{
		{name: "expire_holds", schedule: s.cfg.ExpirySchedule, run: s.ExpireHolds},
		{name: "complete_reservations", schedule: s.cfg.CompleteSchedule, run: s.CompleteReservations},
		{name: "purge_idempotency", schedule: s.cfg.PurgeSchedule, run: s.PurgeIdempotencyKeys},
	}

	for _, j := range jobs {
		if _, err := s.cron.AddFunc(j.schedule, j.run); err != nil {
			s.logger.Error("failed to schedule job", "job", j.name, "schedule", j.schedule, "error", err)
			return err
		}
		s.logger.Info("scheduled job", "job", j.name, "schedule", j.schedule)
	}

	s.cron.Start()
	return nil
}

// Stop waits for running jobs after cancelling their context.
func (s *Sweeper) Stop(ctx context.Context) error {
	s.cancel()
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Sweeper) ExpireHolds() {
	ctx, cancel := context.WithTimeout(s.ctx, jobTimeout)
	defer cancel()

	n, err := s.lifecycle.ExpireDueHolds(ctx, s.cfg.BatchSize)
	if err != nil {
		s.logger.Error("expire holds sweep failed", "error", err)
		return
	}
	if n > 0 {
		s.logger.Info("expired holds", "count", n)
	}
}

func (s *Sweeper) CompleteReservations() {
	ctx, cancel := context.WithTimeout(s.ctx, jobTimeout)
	defer cancel()

	n, err := s.lifecycle.CompleteDueReservations(ctx, s.cfg.BatchSize)
	if err != nil {
		s.logger.Error("complete reservations sweep failed", "error", err)
		return
	}
	if n > 0 {
		s.logger.Info("completed reservations", "count", n)
	}
}

func (s *Sweeper) PurgeIdempotencyKeys() {
	ctx, cancel := context.WithTimeout(s.ctx, jobTimeout)
	defer cancel()

	n, err := s.lifecycle.PurgeExpiredIdempotencyKeys(ctx)
	if err != nil {
		s.logger.Error("idempotency purge failed", "error", err)
		return
	}
	if n > 0 {
		s.logger.Info("purged idempotency keys", "count", n)
	}
}
