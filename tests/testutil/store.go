package testutil

import (
	"context"
	"testing"

	"github.com/tdao/ganttboard/internal/model"
	"github.com/tdao/ganttboard/internal/store"
)

// NewTestStore opens an in-memory snapshot cache with the full schema
// applied and closes it when the test finishes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// SeedSnapshot caches a minimal task snapshot for a project, one bare
// record per task id, so tests can exercise the cached-read path.
func SeedSnapshot(
	t *testing.T,
	s *store.SQLiteStore,
	sourceID, projectID string,
	taskIDs ...string,
) {
	t.Helper()

	tasks := make([]model.RawTask, 0, len(taskIDs))
	for _, id := range taskIDs {
		tasks = append(tasks, model.RawTask{ID: id, Subject: id})
	}

	err := s.ReplaceTaskSnapshot(context.Background(), sourceID, projectID, tasks)
	if err != nil {
		t.Fatalf("seeding snapshot for %s/%s: %v", sourceID, projectID, err)
	}
}
