package gantt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tdao/ganttboard/internal/model"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestCalculateDateRange_MinStartMaxEnd(t *testing.T) {
	tasks := []model.GanttTask{
		{ID: "T1", Start: datePtr(2024, 1, 1), End: datePtr(2024, 1, 10)},
		{ID: "T2", Start: datePtr(2024, 3, 1), End: datePtr(2024, 3, 15)},
	}

	got := CalculateDateRange(tasks)
	assert.True(t, got.Start.Equal(date(2024, 1, 1)), "start = %v", got.Start)
	assert.True(t, got.End.Equal(date(2024, 3, 15)), "end = %v", got.End)
}

func TestCalculateDateRange_IgnoresDatelessTasks(t *testing.T) {
	tasks := []model.GanttTask{
		{ID: "T1", Start: datePtr(2024, 1, 1), End: datePtr(2024, 1, 5)},
		{ID: "T2"},
	}

	got := CalculateDateRange(tasks)
	assert.True(t, got.Start.Equal(date(2024, 1, 1)))
	assert.True(t, got.End.Equal(date(2024, 1, 5)))
}

func TestCalculateDateRange_EmptyFallsBackToSentinel(t *testing.T) {
	for _, tasks := range [][]model.GanttTask{nil, {{ID: "T1"}, {ID: "T2"}}} {
		got := CalculateDateRange(tasks)
		assert.InDelta(t, DefaultRangeDays, got.Days(), 1e-9)
		assert.WithinDuration(t, time.Now(), got.Start, 24*time.Hour)
	}
}
