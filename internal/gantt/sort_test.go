package gantt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdao/ganttboard/internal/model"
)

func taskIDs(tasks []model.GanttTask) []string {
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return ids
}

func TestSortTasks_ParentFollowedByDescendants(t *testing.T) {
	tasks := []model.GanttTask{
		{ID: "G1", IsGroup: true},
		{ID: "G2", IsGroup: true},
		{ID: "G1a", ParentID: "G1"},
		{ID: "G2a", ParentID: "G2"},
		{ID: "G1a1", ParentID: "G1a"},
		{ID: "G1b", ParentID: "G1"},
	}

	got := SortTasks(tasks)
	assert.Equal(t, []string{"G1", "G1a", "G1a1", "G1b", "G2", "G2a"}, taskIDs(got))
}

func TestSortTasks_SiblingsKeepInputOrder(t *testing.T) {
	tasks := []model.GanttTask{
		{ID: "P", IsGroup: true},
		{ID: "c", ParentID: "P"},
		{ID: "a", ParentID: "P"},
		{ID: "b", ParentID: "P"},
	}

	got := SortTasks(tasks)
	assert.Equal(t, []string{"P", "c", "a", "b"}, taskIDs(got))
}

func TestSortTasks_DanglingParentBecomesRoot(t *testing.T) {
	tasks := []model.GanttTask{
		{ID: "A", ParentID: "MISSING"},
		{ID: "B"},
	}

	got := SortTasks(tasks)
	assert.Equal(t, []string{"A", "B"}, taskIDs(got))
}

func TestSortTasks_ParentCycleTerminates(t *testing.T) {
	tasks := []model.GanttTask{
		{ID: "A", ParentID: "B"},
		{ID: "B", ParentID: "A"},
		{ID: "C"},
	}

	got := SortTasks(tasks)
	require.Len(t, got, 3)

	seen := make(map[string]int)
	for _, task := range got {
		seen[task.ID]++
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "task %s emitted %d times", id, n)
	}
}

func TestSortTasks_Idempotent(t *testing.T) {
	tasks := []model.GanttTask{
		{ID: "G1", IsGroup: true},
		{ID: "B"},
		{ID: "G1a", ParentID: "G1"},
	}

	once := SortTasks(tasks)
	twice := SortTasks(once)
	assert.Equal(t, taskIDs(once), taskIDs(twice))
}

func TestSortTasks_AssignsSequentialRanks(t *testing.T) {
	tasks := []model.GanttTask{
		{ID: "P", IsGroup: true},
		{ID: "x"},
		{ID: "c1", ParentID: "P"},
	}

	got := SortTasks(tasks)
	for i, task := range got {
		assert.Equal(t, i, task.Rank)
	}
}

func TestSortTasks_Empty(t *testing.T) {
	assert.Nil(t, SortTasks(nil))
}
