package gantt

import (
	"strings"
	"time"

	"github.com/tdao/ganttboard/internal/model"
)

// dateLayouts are the formats the backend is known to emit for date fields.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// statusMap translates backend status labels into normalized statuses.
var statusMap = map[string]model.Status{
	"open":           model.StatusOpen,
	"working":        model.StatusInProgress,
	"in progress":    model.StatusInProgress,
	"pending review": model.StatusReview,
	"overdue":        model.StatusOverdue,
	"completed":      model.StatusDone,
	"closed":         model.StatusDone,
	"cancelled":      model.StatusCancelled,
	"template":       model.StatusOpen,
}

// priorityMap translates backend priority labels into normalized priorities.
var priorityMap = map[string]model.Priority{
	"urgent": model.PriorityUrgent,
	"high":   model.PriorityHigh,
	"medium": model.PriorityMedium,
	"low":    model.PriorityLow,
}

// Normalize converts raw API task records into canonical GanttTasks,
// defaulting missing fields. The output always has the same length as
// the input: a malformed record degrades field by field, it is never
// dropped.
func Normalize(raw []model.RawTask) []model.GanttTask {
	tasks := make([]model.GanttTask, 0, len(raw))
	for _, r := range raw {
		tasks = append(tasks, normalizeTask(r))
	}
	return tasks
}

// normalizeTask maps a single raw record into the canonical entity.
func normalizeTask(r model.RawTask) model.GanttTask {
	t := model.GanttTask{
		ID:         r.ID,
		Label:      r.Subject,
		Status:     normalizeStatus(r.Status),
		Priority:   normalizePriority(r.Priority),
		Progress:   clampProgress(r.Progress) / 100,
		ParentID:   r.ParentTaskID,
		IsGroup:    r.IsGroup,
		AssignedTo: r.AssignedTo,
	}

	if t.Label == "" {
		t.Label = "Untitled"
	}

	for _, dep := range r.DependsOn {
		if dep.DependentTaskID == "" {
			continue
		}
		t.DependsOn = append(t.DependsOn, dep.DependentTaskID)
	}

	t.Start = parseDate(r.ExpStartDate)
	t.End = parseDate(r.ExpEndDate)

	// Derive a single-day span when only one endpoint is present. When
	// both are absent the task keeps nil dates and simply contributes
	// nothing to the chart's date range.
	switch {
	case t.Start == nil && t.End != nil:
		t.Start = t.End
	case t.End == nil && t.Start != nil:
		t.End = t.Start
	case t.Start != nil && t.End != nil && t.End.Before(*t.Start):
		// An inverted span is a data-entry error; swap rather than drop.
		t.Start, t.End = t.End, t.Start
	}

	return t
}

// normalizeStatus maps a backend status label to a Status, defaulting
// unknown or empty labels to open.
func normalizeStatus(s string) model.Status {
	if st, ok := statusMap[strings.ToLower(strings.TrimSpace(s))]; ok {
		return st
	}
	return model.StatusOpen
}

// normalizePriority maps a backend priority label to a Priority,
// defaulting unknown or empty labels to medium.
func normalizePriority(s string) model.Priority {
	if p, ok := priorityMap[strings.ToLower(strings.TrimSpace(s))]; ok {
		return p
	}
	return model.PriorityMedium
}

// clampProgress restricts a raw percentage to [0, 100].
func clampProgress(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// parseDate parses a backend date string, trying each known layout.
// Empty or malformed values are treated as missing, never an error.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
