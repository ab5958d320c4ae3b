package erpnext

import (
	"strings"

	"github.com/tdao/ganttboard/internal/model"
)

// ErrorResponse is the Frappe error envelope attached to non-2xx
// responses.
type ErrorResponse struct {
	ExcType   string `json:"exc_type,omitempty"`
	Exception string `json:"exception,omitempty"`
	Message   string `json:"message,omitempty"`
}

// Describe condenses the envelope into a single display string.
func (e ErrorResponse) Describe() string {
	parts := make([]string, 0, 2)
	if e.ExcType != "" {
		parts = append(parts, e.ExcType)
	}
	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Exception != "" {
		parts = append(parts, e.Exception)
	}
	return strings.Join(parts, ": ")
}

// loggedUserResponse is the reply of frappe.auth.get_logged_user.
type loggedUserResponse struct {
	Message string `json:"message"`
}

// ganttResponse wraps the Gantt-optimized method endpoint's payload.
type ganttResponse struct {
	Message ganttData `json:"message"`
}

// ganttData is the pre-shaped chart feed: tasks already in the RawTask
// contract plus the server's own covering date window.
type ganttData struct {
	Tasks     []model.RawTask `json:"tasks"`
	DateRange *wireDateRange  `json:"date_range,omitempty"`
}

// wireDateRange carries the server-computed date window as date strings.
type wireDateRange struct {
	MinDate string `json:"min_date"`
	MaxDate string `json:"max_date"`
}

// taskListResponse wraps the generic /api/resource/Task list reply.
type taskListResponse struct {
	Data []taskRecord `json:"data"`
}

// taskRecord is a Task document row from the generic resource list.
// Frappe encodes booleans as 0/1 integers.
type taskRecord struct {
	Name         string          `json:"name"`
	Subject      string          `json:"subject"`
	Status       string          `json:"status"`
	Priority     string          `json:"priority"`
	Progress     float64         `json:"progress"`
	ExpStartDate string          `json:"exp_start_date"`
	ExpEndDate   string          `json:"exp_end_date"`
	AssignedTo   string          `json:"assigned_to"`
	ParentTask   string          `json:"parent_task"`
	IsGroup      int             `json:"is_group"`
	DependsOn    []dependsRecord `json:"depends_on,omitempty"`
}

// dependsRecord is one dependency child row. Older backends emit the
// link under "task" instead of "dependent_task_id"; accept both.
type dependsRecord struct {
	DependentTaskID string `json:"dependent_task_id,omitempty"`
	Task            string `json:"task,omitempty"`
}

// id returns whichever link field the row carried.
func (d dependsRecord) id() string {
	if d.DependentTaskID != "" {
		return d.DependentTaskID
	}
	return d.Task
}

// projectListResponse wraps the /api/resource/Project list reply.
type projectListResponse struct {
	Data []projectRecord `json:"data"`
}

// projectRecord is a Project document row.
type projectRecord struct {
	Name        string `json:"name"`
	ProjectName string `json:"project_name"`
	Status      string `json:"status"`
}
