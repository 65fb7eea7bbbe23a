package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, 0.1, cfg.MinConfidence)
	assert.Equal(t, 0.3, cfg.GeneralConfidence)
	assert.Equal(t, 2.0, cfg.TitleBoost)
	assert.Equal(t, 2, cfg.TopK)
	assert.Equal(t, 0.3, cfg.Smoothing)
	assert.Equal(t, 5, cfg.MinObservations)
	assert.Equal(t, 90*24*time.Hour, cfg.FeedbackWindow)
	assert.Equal(t, 2*time.Hour, cfg.DefaultDailyBudget)
	assert.Equal(t, "0 3 * * *", cfg.RetrainSchedule)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PREPARA_ENV", "production")
	t.Setenv("PREPARA_MIN_CONFIDENCE", "0.2")
	t.Setenv("PREPARA_TOP_K", "3")
	t.Setenv("PREPARA_FEEDBACK_WINDOW", "720h")
	t.Setenv("PREPARA_DEFAULT_DAILY_BUDGET", "90m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 0.2, cfg.MinConfidence)
	assert.Equal(t, 3, cfg.TopK)
	assert.Equal(t, 30*24*time.Hour, cfg.FeedbackWindow)
	assert.Equal(t, 90*time.Minute, cfg.DefaultDailyBudget)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("unparseable number", func(t *testing.T) {
		t.Setenv("PREPARA_TOP_K", "many")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("unparseable duration", func(t *testing.T) {
		t.Setenv("PREPARA_FEEDBACK_WINDOW", "three months")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			MinConfidence:      0.1,
			GeneralConfidence:  0.3,
			TitleBoost:         2.0,
			TopK:               2,
			Smoothing:          0.3,
			MinObservations:    5,
			FeedbackWindow:     time.Hour,
			DefaultDailyBudget: time.Hour,
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"confidence above one", func(c *Config) { c.MinConfidence = 1.5 }},
		{"negative confidence", func(c *Config) { c.GeneralConfidence = -0.1 }},
		{"boost below one", func(c *Config) { c.TitleBoost = 0.5 }},
		{"zero top-k", func(c *Config) { c.TopK = 0 }},
		{"zero smoothing", func(c *Config) { c.Smoothing = 0 }},
		{"smoothing above one", func(c *Config) { c.Smoothing = 1.1 }},
		{"zero observations", func(c *Config) { c.MinObservations = 0 }},
		{"negative window", func(c *Config) { c.FeedbackWindow = -time.Hour }},
		{"zero budget", func(c *Config) { c.DefaultDailyBudget = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
