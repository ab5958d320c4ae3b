package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tdao/ganttboard/internal/model"
)

// ReplaceTaskSnapshot swaps a project's cached task list for a freshly
// fetched one inside a single transaction. The snapshot preserves input
// order via the position column so a cached render matches a live one.
func (s *SQLiteStore) ReplaceTaskSnapshot(
	ctx context.Context,
	sourceID string,
	projectID string,
	tasks []model.RawTask,
) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"DELETE FROM task_snapshots WHERE source_id = ? AND project_id = ?",
		sourceID, projectID,
	)
	if err != nil {
		return fmt.Errorf("clearing snapshot for %s/%s: %w", sourceID, projectID, err)
	}

	const query = `
		INSERT INTO task_snapshots (
			source_id, project_id, task_id,
			subject, status, priority, progress,
			exp_start_date, exp_end_date,
			assigned_to, parent_task_id, is_group,
			depends_on, position, fetched_at
		) VALUES (
			?, ?, ?,
			?, ?, ?, ?,
			?, ?,
			?, ?, ?,
			?, ?, ?
		)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing snapshot insert: %w", err)
	}
	defer stmt.Close()

	fetchedAt := time.Now().UTC()
	for i, t := range tasks {
		dependsOn, err := json.Marshal(t.DependsOn)
		if err != nil {
			return fmt.Errorf("marshaling depends_on for task %s: %w", t.ID, err)
		}

		_, err = stmt.ExecContext(ctx,
			sourceID, projectID, t.ID,
			t.Subject, t.Status, t.Priority, t.Progress,
			t.ExpStartDate, t.ExpEndDate,
			t.AssignedTo, t.ParentTaskID, boolToInt(t.IsGroup),
			string(dependsOn), i, fetchedAt,
		)
		if err != nil {
			return fmt.Errorf("inserting snapshot task %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

// snapshotRow mirrors one task_snapshots record for sqlx scanning.
type snapshotRow struct {
	TaskID       string    `db:"task_id"`
	Subject      string    `db:"subject"`
	Status       string    `db:"status"`
	Priority     string    `db:"priority"`
	Progress     float64   `db:"progress"`
	ExpStartDate string    `db:"exp_start_date"`
	ExpEndDate   string    `db:"exp_end_date"`
	AssignedTo   string    `db:"assigned_to"`
	ParentTaskID string    `db:"parent_task_id"`
	IsGroup      int       `db:"is_group"`
	DependsOn    string    `db:"depends_on"`
	FetchedAt    time.Time `db:"fetched_at"`
}

// GetTaskSnapshot returns the cached task list for a project in its
// original fetch order, along with when it was fetched. An absent
// snapshot yields an empty list and a zero time, not an error.
func (s *SQLiteStore) GetTaskSnapshot(
	ctx context.Context,
	sourceID string,
	projectID string,
) ([]model.RawTask, time.Time, error) {
	const query = `
		SELECT task_id, subject, status, priority, progress,
		       exp_start_date, exp_end_date, assigned_to,
		       parent_task_id, is_group, depends_on, fetched_at
		FROM task_snapshots
		WHERE source_id = ? AND project_id = ?
		ORDER BY position`

	var rows []snapshotRow
	if err := s.db.SelectContext(ctx, &rows, query, sourceID, projectID); err != nil {
		return nil, time.Time{}, fmt.Errorf(
			"querying snapshot for %s/%s: %w", sourceID, projectID, err,
		)
	}

	var fetchedAt time.Time
	tasks := make([]model.RawTask, 0, len(rows))
	for _, row := range rows {
		var dependsOn []model.TaskDepends
		if err := json.Unmarshal([]byte(row.DependsOn), &dependsOn); err != nil {
			// A corrupt depends_on blob costs connectors, not the row.
			dependsOn = nil
		}

		tasks = append(tasks, model.RawTask{
			ID:           row.TaskID,
			Subject:      row.Subject,
			Status:       row.Status,
			Priority:     row.Priority,
			Progress:     row.Progress,
			ExpStartDate: row.ExpStartDate,
			ExpEndDate:   row.ExpEndDate,
			AssignedTo:   row.AssignedTo,
			ParentTaskID: row.ParentTaskID,
			IsGroup:      row.IsGroup != 0,
			DependsOn:    dependsOn,
		})
		if row.FetchedAt.After(fetchedAt) {
			fetchedAt = row.FetchedAt
		}
	}

	return tasks, fetchedAt, nil
}

// boolToInt converts a bool to the 0/1 integer SQLite stores.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
