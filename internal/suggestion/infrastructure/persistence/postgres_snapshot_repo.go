package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prepara/prepara/internal/suggestion/domain"
)

// PostgresSnapshotRepository stores weight snapshots in Postgres.
type PostgresSnapshotRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresSnapshotRepository creates a new PostgresSnapshotRepository.
func NewPostgresSnapshotRepository(pool *pgxpool.Pool) *PostgresSnapshotRepository {
	return &PostgresSnapshotRepository{pool: pool}
}

// Save persists a snapshot under its version.
func (r *PostgresSnapshotRepository) Save(ctx context.Context, snap *domain.WeightSnapshot) error {
	weights, err := encodeWeights(snap.Weights)
	if err != nil {
		return fmt.Errorf("failed to encode weights: %w", err)
	}

	query := `
		INSERT INTO weight_snapshots (version, trained_at, weights)
		VALUES ($1, $2, $3)
		ON CONFLICT (version) DO UPDATE SET
			trained_at = excluded.trained_at,
			weights = excluded.weights`

	_, err = r.pool.Exec(ctx, query, snap.Version, snap.TrainedAt.UTC(), weights)
	if err != nil {
		return fmt.Errorf("failed to insert weight snapshot: %w", err)
	}
	return nil
}

// Latest returns the highest-version snapshot, or ErrNoSnapshot when the
// table is empty.
func (r *PostgresSnapshotRepository) Latest(ctx context.Context) (*domain.WeightSnapshot, error) {
	query := `
		SELECT version, trained_at, weights
		FROM weight_snapshots
		ORDER BY version DESC
		LIMIT 1`

	var (
		version    int
		trainedAt  time.Time
		weightsRaw []byte
	)
	err := r.pool.QueryRow(ctx, query).Scan(&version, &trainedAt, &weightsRaw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query weight snapshot: %w", err)
	}

	weights, err := decodeWeights(weightsRaw)
	if err != nil {
		return nil, err
	}

	return &domain.WeightSnapshot{
		Version:   version,
		TrainedAt: trainedAt,
		Weights:   weights,
	}, nil
}
