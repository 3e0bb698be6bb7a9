package bootstrap

import (
	"context"
	"log/slog"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/config"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/commands"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewSweeper,
	),
	fx.Invoke(startSweeper),
)

func NewSweeper(lifecycle commands.LifecycleCommands, logger *slog.Logger, cfg config.SweeperConfig) *worker.Sweeper {
	return worker.NewSweeper(lifecycle, logger, cfg)
}

func startSweeper(lc fx.Lifecycle, s *worker.Sweeper, cfg config.SweeperConfig, logger *slog.Logger) {
	if !cfg.Enabled {
		logger.Info("sweeper disabled")
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return s.Start()
		},
		OnStop: func(ctx context.Context) error {
			return s.Stop(ctx)
		},
	})
}
