package components

import (
	"context"
	"log/slog"
	"os"

	"bloodlink/internal/api"
	"bloodlink/internal/cache"
	"bloodlink/internal/config"
	"bloodlink/internal/metrics"
	"bloodlink/internal/service"
	"bloodlink/internal/storage/postgres"
	"bloodlink/internal/storage/redisstore"
	"bloodlink/internal/stream"
	"bloodlink/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// Components holds every long-lived object the application owns. The wiring
// order matters: storage first, then the cache and broker, then the services
// that consume them, and the http server last.
type Components struct {
	Logger   *slog.Logger
	Postgres *postgres.Postgres
	Redis    *redisstore.Redis
	Cache    *cache.Service
	Metrics  *metrics.Metrics
	Broker   *stream.Broker
	Bus      *stream.Bus
	Sender   *service.WebhookSender
	Service  *service.Service
	Server   *api.Server
}

func InitComponents(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Components, error) {
	pg, err := postgres.New(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	// Redis is optional at startup: the cache degrades to memory and the
	// alert relay stays local-only until it comes back.
	var rdb *goredis.Client
	redisStore, err := redisstore.New(ctx, cfg, log)
	if err != nil {
		log.Warn("redis unavailable, running degraded", slog.Any("error", err))
	} else {
		rdb = redisStore.Client
	}

	matchCache := cache.New(rdb, cfg.Cache, log)
	m := metrics.New()

	broker := stream.NewBroker(cfg.Stream, log)
	bus := stream.NewBus(rdb, cfg.Stream.BusChannel, broker, log)

	webhookQueue := redisstore.NewWebhookQueue(rdb, cfg.Webhook.QueueKey)
	sender := service.NewWebhookSender(log, cfg.Webhook, webhookQueue)

	matching := service.NewMatchingService(pg.Donor, matchCache, m, log, cfg.Matching, cfg.Cache)
	alerts := service.NewAlertService(broker, bus, pg.User, pg.Request, m, log)
	coordination := service.NewCoordinationService(
		pg.Request, pg.Donation, pg.Inventory, pg.Stat,
		alerts, matchCache, webhookQueue, log, cfg.Cache.KeyPrefix,
	)

	svc := service.New(matching, alerts, coordination)
	server := api.NewServer(cfg, log, svc, m)

	return &Components{
		Logger:   log,
		Postgres: pg,
		Redis:    redisStore,
		Cache:    matchCache,
		Metrics:  m,
		Broker:   broker,
		Bus:      bus,
		Sender:   sender,
		Service:  svc,
		Server:   server,
	}, nil
}

// Start launches the background loops. Each one exits when ctx is cancelled.
func (c *Components) Start(ctx context.Context) {
	go c.Broker.Run(ctx)
	go c.Bus.Run(ctx)
	go c.Sender.Run(ctx)
}

func (c *Components) ShutdownAll() {
	if c.Postgres != nil {
		c.Postgres.Pool.Close()
	}
	if c.Redis != nil && c.Redis.Client != nil {
		if err := c.Redis.Client.Close(); err != nil {
			c.Logger.Error("failed to close redis", slog.Any("error", err))
		}
	}
	c.Logger.Info("all components stopped")
}

func SetupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = logger.SetupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}
