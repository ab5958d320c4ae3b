package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tdao/ganttboard/internal/model"
)

// RecordRefresh appends one completed fetch round-trip to the refresh
// log, assigning an id and finish time when the caller left them unset.
func (s *SQLiteStore) RecordRefresh(
	ctx context.Context,
	rec model.RefreshRecord,
) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.FinishedAt.IsZero() {
		rec.FinishedAt = time.Now()
	}

	const query = `
		INSERT INTO refreshes (
			id, source_id, project_id, task_count,
			duration_ms, error, finished_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		rec.ID, rec.SourceID, rec.ProjectID, rec.TaskCount,
		rec.Duration.Milliseconds(), rec.Error, rec.FinishedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording refresh %s: %w", rec.ID, err)
	}
	return nil
}

// refreshRow mirrors one refreshes record for sqlx scanning.
type refreshRow struct {
	ID         string    `db:"id"`
	SourceID   string    `db:"source_id"`
	ProjectID  string    `db:"project_id"`
	TaskCount  int       `db:"task_count"`
	DurationMS int64     `db:"duration_ms"`
	Error      string    `db:"error"`
	FinishedAt time.Time `db:"finished_at"`
}

// GetRecentRefreshes returns the newest refresh log entries, most
// recent first.
func (s *SQLiteStore) GetRecentRefreshes(
	ctx context.Context,
	limit int,
) ([]model.RefreshRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	const query = `
		SELECT id, source_id, project_id, task_count,
		       duration_ms, error, finished_at
		FROM refreshes
		ORDER BY finished_at DESC, id
		LIMIT ?`

	var rows []refreshRow
	if err := s.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("querying refresh log: %w", err)
	}

	records := make([]model.RefreshRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, model.RefreshRecord{
			ID:         row.ID,
			SourceID:   row.SourceID,
			ProjectID:  row.ProjectID,
			TaskCount:  row.TaskCount,
			Duration:   time.Duration(row.DurationMS) * time.Millisecond,
			Error:      row.Error,
			FinishedAt: row.FinishedAt,
		})
	}
	return records, nil
}
