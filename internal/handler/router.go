package handler

import (
	"net/http"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/handler/api"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/handler/middleware"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/config"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Webhook      *api.WebhookHandler
	Hold         *api.HoldHandler
	Reservation  *api.ReservationHandler
	ManualBlock  *api.ManualBlockHandler
	Availability *api.AvailabilityHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, m *metrics.Metrics, h Handlers) {
	setupMiddleware(engine, cfg, logger, m)
	setupRoutes(engine, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, m *metrics.Metrics) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.MetricsMiddleware(m))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// The gateway authenticates with its signature, not a caller header.
	engine.POST("/webhooks/payment", h.Webhook.Receive)

	engine.GET("/availability", h.Availability.Grid)

	addRoutes(engine.Group("/holds"), []route{
		{Method: http.MethodPost, Path: "", Handler: h.Hold.Create, Mw: []gin.HandlerFunc{middleware.RequireUser()}},
	})

	reservations := engine.Group("/reservations")
	{
		addRoutes(reservations, []route{
			{Method: http.MethodGet, Path: "/:id", Handler: h.Reservation.Get},
			{Method: http.MethodGet, Path: "/:id/cancellation-quote", Handler: h.Reservation.CancellationQuote},
		})

		callerRequired := reservations.Group("")
		callerRequired.Use(middleware.RequireUser())
		addRoutes(callerRequired, []route{
			{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Reservation.Cancel},
			{Method: http.MethodPost, Path: "/:id/offline-payment", Handler: h.Reservation.CollectRemaining},
		})
	}

	blocks := engine.Group("/manual-blocks")
	blocks.Use(middleware.RequireUser())
	{
		addRoutes(blocks, []route{
			{Method: http.MethodPost, Path: "", Handler: h.ManualBlock.Create},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.ManualBlock.Remove},
		})
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
