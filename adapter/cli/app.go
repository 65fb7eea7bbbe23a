package cli

import (
	"time"

	"github.com/prepara/prepara/internal/suggestion/application/commands"
	"github.com/prepara/prepara/internal/suggestion/application/queries"
)

// App holds the CLI application dependencies.
type App struct {
	// Command Handlers
	SuggestTasksHandler   *commands.SuggestTasksHandler
	RecordFeedbackHandler *commands.RecordFeedbackHandler
	RetrainWeightsHandler *commands.RetrainWeightsHandler

	// Query Handlers
	ClassifyEventHandler *queries.ClassifyEventHandler
	GetSnapshotHandler   *queries.GetSnapshotHandler
	ListRulesHandler     *queries.ListRulesHandler

	// DefaultDailyBudget is used when suggest is called without --budget.
	DefaultDailyBudget time.Duration
}

// NewApp creates a new CLI application with the provided handlers.
func NewApp(
	suggestTasksHandler *commands.SuggestTasksHandler,
	recordFeedbackHandler *commands.RecordFeedbackHandler,
	retrainWeightsHandler *commands.RetrainWeightsHandler,
	classifyEventHandler *queries.ClassifyEventHandler,
	getSnapshotHandler *queries.GetSnapshotHandler,
	listRulesHandler *queries.ListRulesHandler,
	defaultDailyBudget time.Duration,
) *App {
	return &App{
		SuggestTasksHandler:   suggestTasksHandler,
		RecordFeedbackHandler: recordFeedbackHandler,
		RetrainWeightsHandler: retrainWeightsHandler,
		ClassifyEventHandler:  classifyEventHandler,
		GetSnapshotHandler:    getSnapshotHandler,
		ListRulesHandler:      listRulesHandler,
		DefaultDailyBudget:    defaultDailyBudget,
	}
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
