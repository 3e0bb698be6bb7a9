package bootstrap

import (
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.BookingConfig { return cfg.Booking },
		func(cfg config.Config) config.GatewayConfig { return cfg.Gateway },
		func(cfg config.Config) config.SweeperConfig { return cfg.Sweeper },
	),
)
