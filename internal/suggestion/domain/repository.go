package domain

import (
	"context"
	"errors"
	"time"
)

// ErrNoSnapshot is returned when no weight snapshot has been persisted yet.
var ErrNoSnapshot = errors.New("no weight snapshot found")

// FeedbackRepository persists accept/reject feedback. Records are never
// mutated after creation.
type FeedbackRepository interface {
	Append(ctx context.Context, rec FeedbackRecord) error
	ListSince(ctx context.Context, since time.Time) ([]FeedbackRecord, error)
}

// SnapshotRepository persists weight snapshots. Save inserts a new
// version; it never rewrites an existing one.
type SnapshotRepository interface {
	Save(ctx context.Context, snap *WeightSnapshot) error
	Latest(ctx context.Context) (*WeightSnapshot, error)
}
