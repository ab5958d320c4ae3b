package model

import "time"

// Normalized status values used across the application.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusReview     Status = "review"
	StatusOverdue    Status = "overdue"
	StatusDone       Status = "done"
	StatusCancelled  Status = "cancelled"
)

// Normalized priority values.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// TaskDepends is a single dependency reference as returned by the API.
type TaskDepends struct {
	DependentTaskID string `json:"dependent_task_id"`
}

// RawTask is a task record in the shape the ERP backend returns it.
// Both ingestion paths (the Gantt-optimized endpoint and the generic
// paginated resource list) produce this contract; everything downstream
// works on the normalized GanttTask instead.
type RawTask struct {
	ID           string        `json:"id"`
	Subject      string        `json:"subject"`
	Status       string        `json:"status"`
	Priority     string        `json:"priority"`
	Progress     float64       `json:"progress"`
	ExpStartDate string        `json:"exp_start_date"`
	ExpEndDate   string        `json:"exp_end_date"`
	AssignedTo   string        `json:"assigned_to"`
	ParentTaskID string        `json:"parent_task_id"`
	IsGroup      bool          `json:"is_group"`
	DependsOn    []TaskDepends `json:"depends_on,omitempty"`
}

// GanttTask is the canonical, normalized task entity consumed by the
// chart pipeline and the UI.
type GanttTask struct {
	// ID is the task's identifier within its project.
	ID string

	// Label is the display text for the task row.
	Label string

	// Status is the normalized status (use Status* constants).
	Status Status

	// Priority is the normalized priority (use Priority* constants).
	Priority Priority

	// Progress is the completion fraction in [0, 1].
	Progress float64

	// Start and End bound the task's expected span. Either may be nil
	// when the backend record carried no usable date; a task with nil
	// dates stays in the list but contributes nothing to the date range.
	Start *time.Time
	End   *time.Time

	// ParentID references the owning group task, or is empty for roots.
	// A dangling reference is treated as empty.
	ParentID string

	// IsGroup marks a container task rendered as a rollup row.
	IsGroup bool

	// AssignedTo is the username of the assignee, if any.
	AssignedTo string

	// DependsOn lists ids of tasks that must come before this one.
	DependsOn []string

	// Rank is the render position assigned by the hierarchy sort.
	Rank int
}

// HasDates reports whether the task has a usable start and end.
func (t GanttTask) HasDates() bool {
	return t.Start != nil && t.End != nil
}
