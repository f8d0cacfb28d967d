package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"disasterAlert/internal/api"
	"disasterAlert/internal/api/handlers/http/system"
	"disasterAlert/internal/config"
	"disasterAlert/internal/kafka"
	"disasterAlert/internal/ledger"
	"disasterAlert/internal/observability"
	"disasterAlert/internal/redis"
	"disasterAlert/internal/service"
	"disasterAlert/internal/storage/mongo"
	"disasterAlert/internal/storage/postgres"
	"disasterAlert/internal/workers"
	"disasterAlert/pkg/logger"
)

const (
	notificationQueueKey = "notifications:queue"
	closeTimeout         = 5 * time.Second
)

type Components struct {
	logger     *slog.Logger
	HttpServer *api.Server
	Postgres   *postgres.Postgres
	Mongo      *mongo.Mongo
	Redis      *redis.Redis
	Kafka      *kafka.EventWriter

	Dispatcher    *workers.PingDispatcher
	ZoneRefresher *workers.ZoneRefresher
	Webhooks      *service.WebhookSender
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	clock := clockwork.NewRealClock()
	metrics := observability.NewMetrics()

	logger.Info("Initializing Postgres")
	storage, err := postgres.NewPostgres(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to init postgres", slog.Any("error", err))
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}
	c := &Components{logger: logger, Postgres: storage}

	logger.Info("Initializing MongoDB")
	mongoStore, err := mongo.NewMongo(ctx, cfg, logger)
	if err != nil {
		c.ShutdownAll()
		return nil, fmt.Errorf("failed to init mongo: %w", err)
	}
	c.Mongo = mongoStore

	logger.Info("Initializing Redis")
	redisClient, err := redis.NewRedis(ctx, cfg, logger)
	if err != nil {
		c.ShutdownAll()
		return nil, fmt.Errorf("failed to init redis: %w", err)
	}
	c.Redis = redisClient

	zoneCache := redis.NewZoneCache(redisClient.Client)
	notifications := redis.NewNotificationQueue(redisClient.Client, notificationQueueKey)

	// an unset interface, not a typed nil, when Kafka is off
	var stream service.EventStream
	if cfg.Kafka.Enabled() {
		logger.Info("Initializing Kafka writer", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("topic", cfg.Kafka.EventsTopic))
		c.Kafka = kafka.NewEventWriter(cfg, logger)
		stream = c.Kafka
	}

	engine := service.NewEngine(logger)
	resourceLedger := ledger.New(storage.Zone, engine.Registry, cfg.Ledger.MaxAttempts, metrics, logger)
	publisher := service.NewEventPublisher(notifications, stream, logger)

	adminSvc := service.NewAdminZoneService(
		storage.Zone, storage.Entity, engine, zoneCache, cfg.Redis.ZoneCacheTTL,
		publisher, notifications, clock, metrics, logger,
	)
	publicSvc := service.NewPublicZoneService(engine)
	resourceSvc := service.NewResourceService(resourceLedger, zoneCache, logger)
	trackingSvc := service.NewTrackingService(engine, storage.Entity, mongoStore.Pings, publisher, clock, metrics, logger)
	entitySvc := service.NewEntityService(storage.Entity, engine, trackingSvc, clock, logger)
	statsSvc := service.NewStatsService(storage.Zone, storage.Stat, mongoStore.Pings, engine, clock)

	srv := service.NewService(adminSvc, publicSvc, resourceSvc, trackingSvc, entitySvc, statsSvc)

	logger.Info("Loading zones")
	if err := adminSvc.Refresh(ctx); err != nil {
		c.ShutdownAll()
		return nil, fmt.Errorf("failed to load zones: %w", err)
	}
	restored, err := entitySvc.Restore(ctx)
	if err != nil {
		c.ShutdownAll()
		return nil, fmt.Errorf("failed to restore tracker: %w", err)
	}
	active, _ := engine.Registry.Len()
	logger.Info("Zone engine ready", slog.Int("active_zones", active), slog.Int("restored_entities", restored))

	c.Dispatcher = workers.NewPingDispatcher(trackingSvc, cfg.Tracking.Workers, cfg.Tracking.QueueSize, metrics, logger)
	c.ZoneRefresher = workers.NewZoneRefresher(adminSvc, cfg.Tracking.ZoneRefreshInterval, clock, logger)
	if !cfg.Webhook.Disabled {
		c.Webhooks = service.NewWebhookSender(logger, cfg.Webhook, notifications, clock, metrics)
	}

	checks := map[string]system.Check{
		"postgres": storage.Pool.Ping,
		"mongo": func(ctx context.Context) error {
			return mongoStore.Client.Ping(ctx, nil)
		},
		"redis": redisClient.Ping,
	}

	c.HttpServer = api.NewServer(ctx, cfg, logger, srv, c.Dispatcher, checks, clock)
	logger.Info("Initialized server")

	return c, nil
}

// RunWorkers starts the background loops and returns once all of them have stopped.
func (c *Components) RunWorkers(ctx context.Context) {
	var wg sync.WaitGroup

	run := func(name string, fn func(context.Context)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(ctx)
			c.logger.Info("worker stopped", slog.String("worker", name))
		}()
	}

	run("ping_dispatcher", c.Dispatcher.Run)
	run("zone_refresher", c.ZoneRefresher.Run)
	if c.Webhooks != nil {
		run("webhook_sender", c.Webhooks.Run)
	}

	wg.Wait()
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return logger.SetupPrettySlog()
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("Shutting down components")

	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	if c.Kafka != nil {
		if err := c.Kafka.Close(); err != nil {
			c.logger.Error("Kafka writer close failed", slog.Any("error", err))
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.Any("error", err))
		}
	}
	if c.Mongo != nil {
		if err := c.Mongo.Close(ctx); err != nil {
			c.logger.Error("MongoDB disconnect failed", slog.Any("error", err))
		}
	}
	if c.Postgres != nil {
		c.Postgres.Close()
	}

	c.logger.Info("All components stopped",
		slog.Duration("latency", time.Since(start)))
}
