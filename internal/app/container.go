// Package app wires the local-mode application: SQLite storage, the
// in-process event bus, and all suggestion handlers.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/prepara/prepara/internal/shared/infrastructure/database"
	"github.com/prepara/prepara/internal/shared/infrastructure/eventbus"
	"github.com/prepara/prepara/internal/suggestion/application/commands"
	"github.com/prepara/prepara/internal/suggestion/application/queries"
	"github.com/prepara/prepara/internal/suggestion/application/services"
	"github.com/prepara/prepara/internal/suggestion/domain"
	"github.com/prepara/prepara/internal/suggestion/infrastructure/cache"
	"github.com/prepara/prepara/internal/suggestion/infrastructure/persistence"
	"github.com/prepara/prepara/internal/suggestion/rules"
	"github.com/prepara/prepara/pkg/config"
)

// Container holds every wired dependency for one process.
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	Rules  *rules.Store

	Feedback  domain.FeedbackRepository
	Snapshots domain.SnapshotRepository

	SuggestTasks   *commands.SuggestTasksHandler
	RecordFeedback *commands.RecordFeedbackHandler
	RetrainWeights *commands.RetrainWeightsHandler
	ClassifyEvent  *queries.ClassifyEventHandler
	GetSnapshot    *queries.GetSnapshotHandler
	ListRules      *queries.ListRulesHandler

	db    *sql.DB
	redis *redis.Client
	bus   *eventbus.InProcessBus
}

// New builds the local-mode container. The Redis cache is wired only
// when PREPARA_REDIS_URL is set; everything else works standalone.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
	if err != nil {
		return nil, err
	}
	if err := database.RunSQLiteMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	ruleset := rules.Defaults()
	if cfg.RulesPath != "" {
		ruleset, err = rules.Load(cfg.RulesPath)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to load ruleset from %s: %w", cfg.RulesPath, err)
		}
	}
	store := rules.NewStore(ruleset)

	feedbackRepo := persistence.NewSQLiteFeedbackRepository(db)
	snapshotRepo := persistence.NewSQLiteSnapshotRepository(db)

	var (
		redisClient   *redis.Client
		snapshotCache *cache.RedisSnapshotCache
	)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("invalid Redis URL: %w", err)
		}
		redisClient = redis.NewClient(opts)
		snapshotCache = cache.NewRedisSnapshotCache(redisClient, snapshotRepo, 24*time.Hour, logger)
	}

	var provider services.SnapshotProvider = snapshotRepo
	if snapshotCache != nil {
		provider = snapshotCache
	}

	bus := eventbus.NewInProcessBus(logger)

	classifier := services.NewClassifier(services.ClassifierConfig{
		MinConfidence:     cfg.MinConfidence,
		GeneralConfidence: cfg.GeneralConfidence,
		TitleBoost:        cfg.TitleBoost,
	})
	generator := services.NewGenerator(services.GeneratorConfig{TopK: cfg.TopK})
	distributor := services.NewDistributor()
	trainer := services.NewTrainer(services.TrainerConfig{
		Smoothing:       cfg.Smoothing,
		MinObservations: cfg.MinObservations,
		Window:          cfg.FeedbackWindow,
	})
	suggester := services.NewSuggester(classifier, generator, distributor, store, provider, logger)

	// The interface value must stay nil when no cache is configured.
	var retrainCache commands.SnapshotCache
	if snapshotCache != nil {
		retrainCache = snapshotCache
	}

	return &Container{
		Config:    cfg,
		Logger:    logger,
		Rules:     store,
		Feedback:  feedbackRepo,
		Snapshots: snapshotRepo,

		SuggestTasks:   commands.NewSuggestTasksHandler(suggester, bus, logger),
		RecordFeedback: commands.NewRecordFeedbackHandler(feedbackRepo, bus, logger),
		RetrainWeights: commands.NewRetrainWeightsHandler(
			trainer, store, snapshotRepo, feedbackRepo, retrainCache, bus, cfg.FeedbackWindow, logger),
		ClassifyEvent: queries.NewClassifyEventHandler(classifier, store),
		GetSnapshot:   queries.NewGetSnapshotHandler(snapshotRepo),
		ListRules:     queries.NewListRulesHandler(store),

		db:    db,
		redis: redisClient,
		bus:   bus,
	}, nil
}

// Close releases all held resources.
func (c *Container) Close() error {
	var firstErr error
	if c.bus != nil {
		if err := c.bus.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.db != nil {
		if err := c.db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
