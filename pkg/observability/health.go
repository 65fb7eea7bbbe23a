package observability

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// HealthServer exposes a minimal /healthz endpoint for the worker, so
// orchestrators can tell a hung process from a live one.
type HealthServer struct {
	server *http.Server
	logger *slog.Logger
}

// NewHealthServer creates a HealthServer listening on addr.
func NewHealthServer(addr string, logger *slog.Logger) *HealthServer {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	return &HealthServer{
		server: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Start serves until Shutdown is called. It blocks, so run it in its
// own goroutine.
func (h *HealthServer) Start() {
	h.logger.Info("health endpoint listening", "addr", h.server.Addr)
	if err := h.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		h.logger.Error("health endpoint failed", "error", err)
	}
}

// Shutdown stops the server gracefully.
func (h *HealthServer) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}
