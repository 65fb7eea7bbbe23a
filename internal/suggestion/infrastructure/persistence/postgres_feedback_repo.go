package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prepara/prepara/internal/suggestion/domain"
)

// PostgresFeedbackRepository stores feedback records in Postgres. Used
// by the worker, which shares the database with other deployments.
type PostgresFeedbackRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresFeedbackRepository creates a new PostgresFeedbackRepository.
func NewPostgresFeedbackRepository(pool *pgxpool.Pool) *PostgresFeedbackRepository {
	return &PostgresFeedbackRepository{pool: pool}
}

// Append persists a feedback record.
func (r *PostgresFeedbackRepository) Append(ctx context.Context, record domain.FeedbackRecord) error {
	query := `
		INSERT INTO feedback_records (id, template_id, event_type, accepted, recorded_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query,
		record.ID,
		record.TemplateID,
		record.Type.String(),
		record.Accepted,
		record.RecordedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert feedback record: %w", err)
	}
	return nil
}

// ListSince returns all records at or after the given time, oldest first.
func (r *PostgresFeedbackRepository) ListSince(ctx context.Context, since time.Time) ([]domain.FeedbackRecord, error) {
	query := `
		SELECT id, template_id, event_type, accepted, recorded_at
		FROM feedback_records
		WHERE recorded_at >= $1
		ORDER BY recorded_at ASC`

	rows, err := r.pool.Query(ctx, query, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback records: %w", err)
	}
	defer rows.Close()

	var records []domain.FeedbackRecord
	for rows.Next() {
		var (
			id         uuid.UUID
			templateID uuid.UUID
			typeStr    string
			accepted   bool
			recordedAt time.Time
		)
		if err := rows.Scan(&id, &templateID, &typeStr, &accepted, &recordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback record: %w", err)
		}
		eventType, err := domain.ParseEventType(typeStr)
		if err != nil {
			return nil, fmt.Errorf("invalid event type %q: %w", typeStr, err)
		}
		records = append(records, domain.FeedbackRecord{
			ID:         id,
			TemplateID: templateID,
			Type:       eventType,
			Accepted:   accepted,
			RecordedAt: recordedAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feedback records: %w", err)
	}
	return records, nil
}
