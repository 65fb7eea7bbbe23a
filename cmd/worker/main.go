// The worker retrains template weights on a schedule against the shared
// Postgres database, publishing snapshot updates over RabbitMQ.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/prepara/prepara/internal/shared/infrastructure/database"
	"github.com/prepara/prepara/internal/shared/infrastructure/eventbus"
	"github.com/prepara/prepara/internal/suggestion/application/commands"
	"github.com/prepara/prepara/internal/suggestion/application/services"
	"github.com/prepara/prepara/internal/suggestion/infrastructure/cache"
	"github.com/prepara/prepara/internal/suggestion/infrastructure/persistence"
	"github.com/prepara/prepara/internal/suggestion/rules"
	"github.com/prepara/prepara/pkg/config"
	"github.com/prepara/prepara/pkg/observability"
)

func main() {
	logger := observability.NewLogger(observability.LoggerOptions{Service: "prepara-worker"})
	logger.Info("starting prepara worker")

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger = observability.NewLogger(observability.LoggerOptions{
		Level:   cfg.LogLevel,
		JSON:    cfg.IsProduction(),
		Service: "prepara-worker",
	})

	if cfg.DatabaseURL == "" {
		logger.Error("PREPARA_DATABASE_URL is required for the worker")
		os.Exit(1)
	}

	// Connect to database
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	if err := database.RunPostgresMigrations(ctx, pool); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Load the ruleset
	ruleset := rules.Defaults()
	if cfg.RulesPath != "" {
		ruleset, err = rules.Load(cfg.RulesPath)
		if err != nil {
			logger.Error("failed to load ruleset", "path", cfg.RulesPath, "error", err)
			os.Exit(1)
		}
	}
	store := rules.NewStore(ruleset)

	// Create event publisher
	var publisher eventbus.Publisher
	if cfg.RabbitMQURL != "" {
		rabbitPublisher, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
		if err != nil {
			if cfg.IsDevelopment() {
				logger.Warn("RabbitMQ not available, using noop publisher", "error", err)
				publisher = eventbus.NewNoopPublisher(logger)
			} else {
				logger.Error("failed to connect to RabbitMQ", "error", err)
				os.Exit(1)
			}
		} else {
			publisher = rabbitPublisher
			defer rabbitPublisher.Close()
		}
	} else {
		publisher = eventbus.NewNoopPublisher(logger)
	}
	logger.Info("event publisher initialized")

	// Repositories and optional snapshot cache
	feedbackRepo := persistence.NewPostgresFeedbackRepository(pool)
	snapshotRepo := persistence.NewPostgresSnapshotRepository(pool)

	var snapshotCache commands.SnapshotCache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("invalid Redis URL", "error", err)
			os.Exit(1)
		}
		redisClient := redis.NewClient(opts)
		defer redisClient.Close()
		snapshotCache = cache.NewRedisSnapshotCache(redisClient, snapshotRepo, 24*time.Hour, logger)
	}

	trainer := services.NewTrainer(services.TrainerConfig{
		Smoothing:       cfg.Smoothing,
		MinObservations: cfg.MinObservations,
		Window:          cfg.FeedbackWindow,
	})
	retrain := commands.NewRetrainWeightsHandler(
		trainer, store, snapshotRepo, feedbackRepo, snapshotCache, publisher, cfg.FeedbackWindow, logger)

	// Schedule the retrain job
	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.RetrainSchedule, func() {
		jobCtx, jobCancel := context.WithTimeout(ctx, 5*time.Minute)
		defer jobCancel()
		if _, err := retrain.Handle(jobCtx, commands.RetrainWeightsCommand{}); err != nil {
			logger.Error("scheduled retraining failed", "error", err)
		}
	})
	if err != nil {
		logger.Error("invalid retrain schedule", "schedule", cfg.RetrainSchedule, "error", err)
		os.Exit(1)
	}
	scheduler.Start()
	logger.Info("retrain job scheduled", "schedule", cfg.RetrainSchedule)

	// Health endpoint
	var health *observability.HealthServer
	if cfg.WorkerHealthAddr != "" {
		health = observability.NewHealthServer(cfg.WorkerHealthAddr, logger)
		go health.Start()
	}

	<-ctx.Done()
	logger.Info("shutting down")

	stopCtx := scheduler.Stop()
	<-stopCtx.Done()
	if health != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := health.Shutdown(shutdownCtx); err != nil {
			logger.Error("health endpoint shutdown failed", "error", err)
		}
	}
	logger.Info("worker stopped")
}
