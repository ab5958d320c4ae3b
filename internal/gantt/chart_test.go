package gantt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdao/ganttboard/internal/model"
)

// TestBuildChart_EndToEnd walks the whole pipeline over a small project:
// a parented task with a dependency plus a dateless root.
func TestBuildChart_EndToEnd(t *testing.T) {
	raw := []model.RawTask{
		{
			ID:           "Task1",
			Subject:      "Design",
			ExpStartDate: "2024-01-01",
			ExpEndDate:   "2024-01-05",
		},
		{
			ID:           "Task2",
			Subject:      "Build",
			ParentTaskID: "Task1",
			ExpStartDate: "2024-01-03",
			ExpEndDate:   "2024-01-04",
			DependsOn:    []model.TaskDepends{{DependentTaskID: "Task1"}},
		},
		{
			ID:      "Task3",
			Subject: "Backlog item",
		},
	}

	chart := BuildChart(raw, ZoomDay, Config{PixelsPerUnit: 10, RowHeight: 1})

	assert.Equal(t, []string{"Task1", "Task2", "Task3"}, taskIDs(chart.Tasks))
	assert.Equal(t, []Dependency{{From: "Task1", To: "Task2"}}, chart.Dependencies)

	assert.True(t, chart.Range.Start.Equal(date(2024, time.January, 1)))
	assert.True(t, chart.Range.End.Equal(date(2024, time.January, 5)))

	require.NotNil(t, chart.Layout)
	require.Len(t, chart.Layout.Rows, 3)
	assert.Equal(t, 3, chart.Layout.Height)
}

func TestBuildChart_EmptyInputDegrades(t *testing.T) {
	chart := BuildChart(nil, ZoomWeek, DefaultConfig())

	assert.Empty(t, chart.Tasks)
	assert.Empty(t, chart.Dependencies)
	assert.Nil(t, chart.Layout)
	assert.InDelta(t, DefaultRangeDays, chart.Range.Days(), 1e-9)
}

func TestChart_IncomingDeps(t *testing.T) {
	chart := Chart{Dependencies: []Dependency{
		{From: "A", To: "C"},
		{From: "B", To: "C"},
		{From: "A", To: "B"},
	}}

	assert.Equal(t, map[string]int{"B": 1, "C": 2}, chart.IncomingDeps())
	assert.Nil(t, Chart{}.IncomingDeps())
}
