package components

import (
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/refund"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/clock"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/config"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/commands"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.BookingConfig) refund.Policy {
		return refund.NewPolicy(cfg.ProcessingFee)
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewHoldUseCase,
		commands.NewPaymentUseCase,
		commands.NewCancelUseCase,
		commands.NewLifecycleUseCase,
		commands.NewManualBlockUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAvailabilityQueries,
		queries.NewReservationQueries,
	),
)
