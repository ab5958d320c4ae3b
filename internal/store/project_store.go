package store

import (
	"context"
	"fmt"

	"github.com/tdao/ganttboard/internal/model"
)

// UpsertProjects inserts or updates the cached project list.
func (s *SQLiteStore) UpsertProjects(
	ctx context.Context,
	projects []model.Project,
) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT OR REPLACE INTO projects (
			id, source_id, name, status, fetched_at
		) VALUES (?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing project upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range projects {
		_, err = stmt.ExecContext(ctx,
			p.ID, p.SourceID, p.Name, p.Status, p.FetchedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("upserting project %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// GetProjects returns the cached projects for a source, most recently
// fetched first, then by name for a stable picker order.
func (s *SQLiteStore) GetProjects(
	ctx context.Context,
	sourceID string,
) ([]model.Project, error) {
	const query = `
		SELECT id, source_id, name, status, fetched_at
		FROM projects
		WHERE source_id = ?
		ORDER BY name`

	var projects []model.Project
	if err := s.db.SelectContext(ctx, &projects, query, sourceID); err != nil {
		return nil, fmt.Errorf("querying projects for %s: %w", sourceID, err)
	}
	return projects, nil
}
