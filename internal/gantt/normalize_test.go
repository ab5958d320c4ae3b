package gantt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdao/ganttboard/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalize_KeepsCardinality(t *testing.T) {
	raw := []model.RawTask{
		{ID: "T1", Subject: "ok", ExpStartDate: "2024-01-01"},
		{ID: "T2", ExpStartDate: "not-a-date", ExpEndDate: "also bad"},
		{ID: "T3"},
	}

	tasks := Normalize(raw)
	require.Len(t, tasks, len(raw))
}

func TestNormalize_Defaults(t *testing.T) {
	tasks := Normalize([]model.RawTask{{ID: "T1"}})
	require.Len(t, tasks, 1)

	got := tasks[0]
	assert.Equal(t, "Untitled", got.Label)
	assert.Equal(t, model.StatusOpen, got.Status)
	assert.Equal(t, model.PriorityMedium, got.Priority)
	assert.Zero(t, got.Progress)
	assert.Nil(t, got.Start)
	assert.Nil(t, got.End)
}

func TestNormalize_StatusAndPriority(t *testing.T) {
	tests := []struct {
		name         string
		status       string
		priority     string
		wantStatus   model.Status
		wantPriority model.Priority
	}{
		{"working maps to in_progress", "Working", "High", model.StatusInProgress, model.PriorityHigh},
		{"pending review", "Pending Review", "Urgent", model.StatusReview, model.PriorityUrgent},
		{"completed", "Completed", "Low", model.StatusDone, model.PriorityLow},
		{"unknown labels fall back", "Blocked???", "Sev1", model.StatusOpen, model.PriorityMedium},
		{"empty labels fall back", "", "", model.StatusOpen, model.PriorityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := Normalize([]model.RawTask{{
				ID:       "T1",
				Status:   tt.status,
				Priority: tt.priority,
			}})
			assert.Equal(t, tt.wantStatus, tasks[0].Status)
			assert.Equal(t, tt.wantPriority, tasks[0].Priority)
		})
	}
}

func TestNormalize_ProgressClamp(t *testing.T) {
	tests := []struct {
		raw  float64
		want float64
	}{
		{-10, 0},
		{0, 0},
		{45, 0.45},
		{100, 1},
		{250, 1},
	}

	for _, tt := range tests {
		tasks := Normalize([]model.RawTask{{ID: "T1", Progress: tt.raw}})
		assert.InDelta(t, tt.want, tasks[0].Progress, 1e-9, "progress %v", tt.raw)
	}
}

func TestNormalize_DateDerivation(t *testing.T) {
	jan1 := date(2024, time.January, 1)
	jan5 := date(2024, time.January, 5)

	tests := []struct {
		name      string
		start     string
		end       string
		wantStart *time.Time
		wantEnd   *time.Time
	}{
		{"both present", "2024-01-01", "2024-01-05", &jan1, &jan5},
		{"start only derives single day", "2024-01-01", "", &jan1, &jan1},
		{"end only derives single day", "", "2024-01-05", &jan5, &jan5},
		{"both absent", "", "", nil, nil},
		{"malformed treated as missing", "01/05/2024", "2024-01-05", &jan5, &jan5},
		{"inverted span is repaired", "2024-01-05", "2024-01-01", &jan1, &jan5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := Normalize([]model.RawTask{{
				ID:           "T1",
				ExpStartDate: tt.start,
				ExpEndDate:   tt.end,
			}})
			got := tasks[0]

			if tt.wantStart == nil {
				assert.Nil(t, got.Start)
				assert.Nil(t, got.End)
				return
			}
			require.NotNil(t, got.Start)
			require.NotNil(t, got.End)
			assert.True(t, got.Start.Equal(*tt.wantStart), "start = %v", got.Start)
			assert.True(t, got.End.Equal(*tt.wantEnd), "end = %v", got.End)
			assert.False(t, got.End.Before(*got.Start), "end must not precede start")
		})
	}
}

func TestNormalize_DependsOn(t *testing.T) {
	tasks := Normalize([]model.RawTask{{
		ID: "T2",
		DependsOn: []model.TaskDepends{
			{DependentTaskID: "T1"},
			{DependentTaskID: ""},
			{DependentTaskID: "T3"},
		},
	}})

	assert.Equal(t, []string{"T1", "T3"}, tasks[0].DependsOn)
}
