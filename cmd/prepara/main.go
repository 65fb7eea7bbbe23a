package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prepara/prepara/adapter/cli"
	"github.com/prepara/prepara/internal/app"
	"github.com/prepara/prepara/pkg/config"
	"github.com/prepara/prepara/pkg/observability"
)

func main() {
	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger := observability.NewLogger(observability.LoggerOptions{Service: "prepara"})
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(observability.LoggerOptions{
		Level:   cfg.LogLevel,
		JSON:    cfg.IsProduction(),
		Service: "prepara",
	})
	cli.SetLogger(logger)

	container, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	cli.SetApp(cli.NewApp(
		container.SuggestTasks,
		container.RecordFeedback,
		container.RetrainWeights,
		container.ClassifyEvent,
		container.GetSnapshot,
		container.ListRules,
		cfg.DefaultDailyBudget,
	))

	cli.Execute()
}
