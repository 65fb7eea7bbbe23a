// Package queries holds the read-side application handlers.
package queries

import (
	"context"
	"errors"

	"github.com/prepara/prepara/internal/suggestion/domain"
)

// GetSnapshotHandler returns the current weight snapshot.
type GetSnapshotHandler struct {
	snapshots domain.SnapshotRepository
}

// NewGetSnapshotHandler creates a new GetSnapshotHandler.
func NewGetSnapshotHandler(snapshots domain.SnapshotRepository) *GetSnapshotHandler {
	return &GetSnapshotHandler{snapshots: snapshots}
}

// Handle returns the latest persisted snapshot, or the empty zero
// snapshot when none has been trained yet.
func (h *GetSnapshotHandler) Handle(ctx context.Context) (*domain.WeightSnapshot, error) {
	snap, err := h.snapshots.Latest(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoSnapshot) {
			return domain.EmptySnapshot(), nil
		}
		return nil, err
	}
	return snap, nil
}
