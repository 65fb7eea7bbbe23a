package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/prepara/prepara/internal/suggestion/domain"
)

// SQLiteSnapshotRepository stores weight snapshots in the local SQLite
// database. Weights are kept as a JSON column since they are only ever
// read back whole.
type SQLiteSnapshotRepository struct {
	db *sql.DB
}

// NewSQLiteSnapshotRepository creates a new SQLiteSnapshotRepository.
func NewSQLiteSnapshotRepository(db *sql.DB) *SQLiteSnapshotRepository {
	return &SQLiteSnapshotRepository{db: db}
}

// Save persists a snapshot under its version.
func (r *SQLiteSnapshotRepository) Save(ctx context.Context, snap *domain.WeightSnapshot) error {
	weights, err := encodeWeights(snap.Weights)
	if err != nil {
		return fmt.Errorf("failed to encode weights: %w", err)
	}

	query := `
		INSERT INTO weight_snapshots (version, trained_at, weights)
		VALUES (?, ?, ?)
		ON CONFLICT (version) DO UPDATE SET
			trained_at = excluded.trained_at,
			weights = excluded.weights`

	_, err = r.db.ExecContext(ctx, query,
		snap.Version,
		snap.TrainedAt.UTC().Format(time.RFC3339Nano),
		string(weights),
	)
	if err != nil {
		return fmt.Errorf("failed to insert weight snapshot: %w", err)
	}
	return nil
}

// Latest returns the highest-version snapshot, or ErrNoSnapshot when the
// table is empty.
func (r *SQLiteSnapshotRepository) Latest(ctx context.Context) (*domain.WeightSnapshot, error) {
	query := `
		SELECT version, trained_at, weights
		FROM weight_snapshots
		ORDER BY version DESC
		LIMIT 1`

	var (
		version    int
		trainedStr string
		weightsRaw string
	)
	err := r.db.QueryRowContext(ctx, query).Scan(&version, &trainedStr, &weightsRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query weight snapshot: %w", err)
	}

	trainedAt, err := time.Parse(time.RFC3339Nano, trainedStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trained_at %q: %w", trainedStr, err)
	}
	weights, err := decodeWeights([]byte(weightsRaw))
	if err != nil {
		return nil, err
	}

	return &domain.WeightSnapshot{
		Version:   version,
		TrainedAt: trainedAt,
		Weights:   weights,
	}, nil
}
