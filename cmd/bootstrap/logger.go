package bootstrap

import (
	"log/slog"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/handler/middleware"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
		func(l *middleware.Logger) *slog.Logger {
			return l.GetSlogLogger()
		},
	),
)

// NewLogger also installs the logger as the slog default, which repositories
// and use cases log through.
func NewLogger(cfg config.Config) *middleware.Logger {
	return middleware.NewLogger(cfg.Log)
}
