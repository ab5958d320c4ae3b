package gantt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tdao/ganttboard/internal/model"
)

func TestExtractDependencies(t *testing.T) {
	tests := []struct {
		name  string
		tasks []model.GanttTask
		want  []Dependency
	}{
		{
			name: "b depends on a yields a to b",
			tasks: []model.GanttTask{
				{ID: "A"},
				{ID: "B", DependsOn: []string{"A"}},
			},
			want: []Dependency{{From: "A", To: "B"}},
		},
		{
			name: "self reference excluded",
			tasks: []model.GanttTask{
				{ID: "A", DependsOn: []string{"A"}},
			},
			want: nil,
		},
		{
			name: "unknown id excluded",
			tasks: []model.GanttTask{
				{ID: "A", DependsOn: []string{"GHOST"}},
			},
			want: nil,
		},
		{
			name: "duplicate entries deduplicated",
			tasks: []model.GanttTask{
				{ID: "A"},
				{ID: "B", DependsOn: []string{"A", "A"}},
			},
			want: []Dependency{{From: "A", To: "B"}},
		},
		{
			name: "multiple edges keep task order",
			tasks: []model.GanttTask{
				{ID: "A"},
				{ID: "B", DependsOn: []string{"A"}},
				{ID: "C", DependsOn: []string{"A", "B"}},
			},
			want: []Dependency{
				{From: "A", To: "B"},
				{From: "A", To: "C"},
				{From: "B", To: "C"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractDependencies(tt.tasks))
		})
	}
}
