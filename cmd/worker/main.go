package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/hellohellohell0/mcmarket/pkg/app"
	"github.com/hellohellohell0/mcmarket/pkg/cache"
	"github.com/hellohellohell0/mcmarket/pkg/config"
	"github.com/hellohellohell0/mcmarket/pkg/database"
	"github.com/hellohellohell0/mcmarket/pkg/events"
	"github.com/hellohellohell0/mcmarket/pkg/logger"
	"github.com/hellohellohell0/mcmarket/pkg/telemetry"
	listingEvents "github.com/hellohellohell0/mcmarket/services/listing/domain/events"
	"github.com/hellohellohell0/mcmarket/services/listing/domain/repositories"
	"github.com/hellohellohell0/mcmarket/services/listing/infrastructure/persistence/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	repo := postgres.NewListingRepository(a.Db, a.EventBus)
	listingCache := cache.NewListingCache(a.Redis)

	subs := map[string]func(context.Context, *message.Message) error{
		listingEvents.TopicListingApproved: handleListingApproved(a, repo, listingCache),
		listingEvents.TopicListingRejected: handleListingStatusInvalidate(a, listingCache),
		listingEvents.TopicListingDeleted:  handleListingDeleted(a, listingCache),
	}

	topics := make([]string, 0, len(subs))
	for topic, handler := range subs {
		errCh, err := a.EventBus.Subscribe(ctx, topic, handler)
		if err != nil {
			return err
		}
		topics = append(topics, topic)

		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string, errCh <-chan error) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}(topic, errCh)
	}

	a.Logger.Info("event subscribers registered", "topics", topics)
	return nil
}

// handleListingApproved warms the Redis read-model cache after a listing goes
// public so the first catalog hit is served from cache.
// Handlers must be idempotent — EventBus retries up to 3× on failure.
func handleListingApproved(a *app.Application, repo repositories.ListingRepository, listingCache *cache.ListingCache) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt listingEvents.ListingStatusChangedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		loadCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		listing, err := repo.GetByID(loadCtx, evt.ListingID)
		if err != nil {
			// The listing may have been deleted before the event arrived.
			a.Logger.WarnContext(ctx, "cache warm skipped, listing not loadable",
				"listing_id", evt.ListingID, "error", err)
			return nil
		}

		if err := listingCache.Set(ctx, listing); err != nil {
			// Cache warming is best-effort; log but do not fail the handler.
			a.Logger.WarnContext(ctx, "cache warm failed for listing.approved",
				"listing_id", evt.ListingID, "error", err)
		} else {
			a.Logger.InfoContext(ctx, "cache warmed", "listing_id", evt.ListingID)
		}

		return nil
	}
}

// handleListingStatusInvalidate drops the cached entry when a listing leaves
// the public catalog (rejection).
func handleListingStatusInvalidate(a *app.Application, listingCache *cache.ListingCache) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt listingEvents.ListingStatusChangedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if err := listingCache.Delete(ctx, evt.ListingID); err != nil {
			a.Logger.WarnContext(ctx, "cache invalidation failed",
				"listing_id", evt.ListingID, "error", err)
		}
		return nil
	}
}

// handleListingDeleted drops the cached entry after a hard delete.
func handleListingDeleted(a *app.Application, listingCache *cache.ListingCache) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt listingEvents.ListingDeletedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if err := listingCache.Delete(ctx, evt.ListingID); err != nil {
			a.Logger.WarnContext(ctx, "cache invalidation failed",
				"listing_id", evt.ListingID, "error", err)
		}
		return nil
	}
}
