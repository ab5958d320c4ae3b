package store

import (
	"context"
	"time"

	"github.com/tdao/ganttboard/internal/model"
)

// Store defines the persistence interface for cached task snapshots,
// the project list, and the refresh log. The cache exists so the chart
// can render the last known snapshot before the first network
// round-trip of a session completes; every successful fetch replaces a
// project's snapshot wholesale.
type Store interface {
	// === Task snapshots ===

	ReplaceTaskSnapshot(
		ctx context.Context,
		sourceID string,
		projectID string,
		tasks []model.RawTask,
	) error
	GetTaskSnapshot(
		ctx context.Context,
		sourceID string,
		projectID string,
	) ([]model.RawTask, time.Time, error)

	// === Projects ===

	UpsertProjects(ctx context.Context, projects []model.Project) error
	GetProjects(ctx context.Context, sourceID string) ([]model.Project, error)

	// === Refresh log ===

	RecordRefresh(ctx context.Context, rec model.RefreshRecord) error
	GetRecentRefreshes(ctx context.Context, limit int) ([]model.RefreshRecord, error)
}
