package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/prepara/prepara/internal/suggestion/domain"
)

// SQLiteFeedbackRepository stores feedback records in the local SQLite
// database. Timestamps are stored as RFC 3339 strings so that lexical
// order matches chronological order.
type SQLiteFeedbackRepository struct {
	db *sql.DB
}

// NewSQLiteFeedbackRepository creates a new SQLiteFeedbackRepository.
func NewSQLiteFeedbackRepository(db *sql.DB) *SQLiteFeedbackRepository {
	return &SQLiteFeedbackRepository{db: db}
}

// Append persists a feedback record.
func (r *SQLiteFeedbackRepository) Append(ctx context.Context, record domain.FeedbackRecord) error {
	query := `
		INSERT INTO feedback_records (id, template_id, event_type, accepted, recorded_at)
		VALUES (?, ?, ?, ?, ?)`

	accepted := 0
	if record.Accepted {
		accepted = 1
	}

	_, err := r.db.ExecContext(ctx, query,
		record.ID.String(),
		record.TemplateID.String(),
		record.Type.String(),
		accepted,
		record.RecordedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to insert feedback record: %w", err)
	}
	return nil
}

// ListSince returns all records at or after the given time, oldest first.
func (r *SQLiteFeedbackRepository) ListSince(ctx context.Context, since time.Time) ([]domain.FeedbackRecord, error) {
	query := `
		SELECT id, template_id, event_type, accepted, recorded_at
		FROM feedback_records
		WHERE recorded_at >= ?
		ORDER BY recorded_at ASC`

	rows, err := r.db.QueryContext(ctx, query, since.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback records: %w", err)
	}
	defer rows.Close()

	var records []domain.FeedbackRecord
	for rows.Next() {
		record, err := scanFeedbackRow(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feedback records: %w", err)
	}
	return records, nil
}

func scanFeedbackRow(rows *sql.Rows) (domain.FeedbackRecord, error) {
	var (
		idStr       string
		templateStr string
		typeStr     string
		accepted    int
		recordedStr string
	)
	if err := rows.Scan(&idStr, &templateStr, &typeStr, &accepted, &recordedStr); err != nil {
		return domain.FeedbackRecord{}, fmt.Errorf("failed to scan feedback record: %w", err)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return domain.FeedbackRecord{}, fmt.Errorf("invalid feedback id %q: %w", idStr, err)
	}
	templateID, err := uuid.Parse(templateStr)
	if err != nil {
		return domain.FeedbackRecord{}, fmt.Errorf("invalid template id %q: %w", templateStr, err)
	}
	eventType, err := domain.ParseEventType(typeStr)
	if err != nil {
		return domain.FeedbackRecord{}, fmt.Errorf("invalid event type %q: %w", typeStr, err)
	}
	recordedAt, err := time.Parse(time.RFC3339Nano, recordedStr)
	if err != nil {
		return domain.FeedbackRecord{}, fmt.Errorf("invalid recorded_at %q: %w", recordedStr, err)
	}

	return domain.FeedbackRecord{
		ID:         id,
		TemplateID: templateID,
		Type:       eventType,
		Accepted:   accepted != 0,
		RecordedAt: recordedAt,
	}, nil
}
