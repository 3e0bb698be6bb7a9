package components

import (
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/handler"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewWebhookHandler,
		api.NewHoldHandler,
		api.NewReservationHandler,
		api.NewManualBlockHandler,
		api.NewAvailabilityHandler,
		func(
			webhook *api.WebhookHandler,
			hold *api.HoldHandler,
			reservation *api.ReservationHandler,
			manualBlock *api.ManualBlockHandler,
			availability *api.AvailabilityHandler,
		) handler.Handlers {
			return handler.Handlers{
				Webhook:      webhook,
				Hold:         hold,
				Reservation:  reservation,
				ManualBlock:  manualBlock,
				Availability: availability,
			}
		},
	),
	fx.Invoke(handler.NewRouter),
)
