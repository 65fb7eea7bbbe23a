// Package config loads engine configuration from the environment, with
// optional .env support for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the engine.
type Config struct {
	// AppEnv is "development" or "production".
	AppEnv   string
	LogLevel string

	// SQLitePath is the local-mode database file. Empty means the
	// default under the user's home directory.
	SQLitePath string
	// DatabaseURL switches the worker to Postgres when set.
	DatabaseURL string
	// RedisURL enables the snapshot cache when set.
	RedisURL string
	// RabbitMQURL enables the durable event publisher when set.
	RabbitMQURL string

	// RulesPath points at a YAML ruleset overriding the embedded
	// defaults.
	RulesPath string

	// Classifier tuning.
	MinConfidence     float64
	GeneralConfidence float64
	TitleBoost        float64

	// Generator tuning.
	TopK int

	// Trainer tuning.
	Smoothing       float64
	MinObservations int
	FeedbackWindow  time.Duration

	// DefaultDailyBudget is used when a suggest request doesn't carry
	// its own budget.
	DefaultDailyBudget time.Duration

	// RetrainSchedule is a cron expression for the worker's retrain
	// job.
	RetrainSchedule string
	// WorkerHealthAddr is the listen address for the worker's health
	// endpoint.
	WorkerHealthAddr string
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:           getEnv("PREPARA_ENV", "development"),
		LogLevel:         getEnv("PREPARA_LOG_LEVEL", "info"),
		SQLitePath:       getEnv("PREPARA_SQLITE_PATH", ""),
		DatabaseURL:      getEnv("PREPARA_DATABASE_URL", ""),
		RedisURL:         getEnv("PREPARA_REDIS_URL", ""),
		RabbitMQURL:      getEnv("PREPARA_RABBITMQ_URL", ""),
		RulesPath:        getEnv("PREPARA_RULES_PATH", ""),
		RetrainSchedule:  getEnv("PREPARA_RETRAIN_SCHEDULE", "0 3 * * *"),
		WorkerHealthAddr: getEnv("PREPARA_WORKER_HEALTH_ADDR", ":8090"),
	}

	var err error
	if cfg.MinConfidence, err = getEnvFloat("PREPARA_MIN_CONFIDENCE", 0.1); err != nil {
		return nil, err
	}
	if cfg.GeneralConfidence, err = getEnvFloat("PREPARA_GENERAL_CONFIDENCE", 0.3); err != nil {
		return nil, err
	}
	if cfg.TitleBoost, err = getEnvFloat("PREPARA_TITLE_BOOST", 2.0); err != nil {
		return nil, err
	}
	if cfg.TopK, err = getEnvInt("PREPARA_TOP_K", 2); err != nil {
		return nil, err
	}
	if cfg.Smoothing, err = getEnvFloat("PREPARA_SMOOTHING", 0.3); err != nil {
		return nil, err
	}
	if cfg.MinObservations, err = getEnvInt("PREPARA_MIN_OBSERVATIONS", 5); err != nil {
		return nil, err
	}
	if cfg.FeedbackWindow, err = getEnvDuration("PREPARA_FEEDBACK_WINDOW", 90*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.DefaultDailyBudget, err = getEnvDuration("PREPARA_DEFAULT_DAILY_BUDGET", 2*time.Hour); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fails fast on configuration that would only surface as wrong
// suggestions later.
func (c *Config) Validate() error {
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("PREPARA_MIN_CONFIDENCE must be in [0, 1], got %v", c.MinConfidence)
	}
	if c.GeneralConfidence < 0 || c.GeneralConfidence > 1 {
		return fmt.Errorf("PREPARA_GENERAL_CONFIDENCE must be in [0, 1], got %v", c.GeneralConfidence)
	}
	if c.TitleBoost < 1 {
		return fmt.Errorf("PREPARA_TITLE_BOOST must be >= 1, got %v", c.TitleBoost)
	}
	if c.TopK < 1 {
		return fmt.Errorf("PREPARA_TOP_K must be >= 1, got %d", c.TopK)
	}
	if c.Smoothing <= 0 || c.Smoothing > 1 {
		return fmt.Errorf("PREPARA_SMOOTHING must be in (0, 1], got %v", c.Smoothing)
	}
	if c.MinObservations < 1 {
		return fmt.Errorf("PREPARA_MIN_OBSERVATIONS must be >= 1, got %d", c.MinObservations)
	}
	if c.FeedbackWindow <= 0 {
		return fmt.Errorf("PREPARA_FEEDBACK_WINDOW must be positive, got %v", c.FeedbackWindow)
	}
	if c.DefaultDailyBudget <= 0 {
		return fmt.Errorf("PREPARA_DEFAULT_DAILY_BUDGET must be positive, got %v", c.DefaultDailyBudget)
	}
	return nil
}

// IsProduction reports whether the engine runs in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// IsDevelopment reports whether the engine runs in development mode.
func (c *Config) IsDevelopment() bool {
	return !c.IsProduction()
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return parsed, nil
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return parsed, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return parsed, nil
}
