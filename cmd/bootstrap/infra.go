package bootstrap

import (
	"context"
	"log/slog"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra/broker"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra/gateway"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra/redislock"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/config"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/metrics"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/commands"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const holdRateLimitScope = "holds"

var InfraModule = fx.Module("infra",
	fx.Provide(
		metrics.New,
		NewRedisClient,
		NewAdvisoryLocker,
		NewHoldRateLimiter,
		NewEventPublisher,
		NewGatewayVerifier,
	),
)

// NewRedisClient returns nil when Redis is disabled; the lock and limiter
// constructors fall back to no-ops in that case.
func NewRedisClient(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) redis.UniversalClient {
	if !cfg.Redis.Enabled || cfg.Redis.Addr == "" {
		logger.Warn("redis disabled: advisory locks and hold rate limiting are off")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Unreachable Redis degrades the fast path only.
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("redis ping failed", "addr", cfg.Redis.Addr, "error", err)
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return client
}

func NewAdvisoryLocker(client redis.UniversalClient) commands.AdvisoryLocker {
	if client == nil {
		return redislock.Noop{}
	}
	return redislock.NewLocker(client)
}

func NewHoldRateLimiter(client redis.UniversalClient, cfg config.BookingConfig) commands.RateLimiter {
	if client == nil {
		return redislock.Noop{}
	}
	return redislock.NewRateLimiter(client, holdRateLimitScope, cfg.RateLimitPerWindow, cfg.RateLimitWindow)
}

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) commands.EventPublisher {
	var pub broker.Publisher = broker.NewLogPublisher(logger)
	if cfg.AMQP.URL != "" {
		amqpPub, err := broker.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, logger)
		if err != nil {
			logger.Warn("amqp unavailable, events will only be logged", "error", err)
		} else {
			pub = amqpPub
		}
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			pub.Close()
			return nil
		},
	})
	return pub
}

func NewGatewayVerifier(cfg config.GatewayConfig, logger *slog.Logger) commands.GatewayVerifier {
	if cfg.IsLive() {
		return gateway.NewValidationClient(cfg)
	}
	logger.Warn("payment gateway in sandbox mode: deliveries are not verified upstream")
	return gateway.NewSandboxVerifier()
}
