package model

import "time"

// RefreshRecord logs one completed fetch round-trip against a source.
// The UI surfaces the most recent records in the status bar.
type RefreshRecord struct {
	ID         string        `json:"id" db:"id"`
	SourceID   string        `json:"source_id" db:"source_id"`
	ProjectID  string        `json:"project_id" db:"project_id"`
	TaskCount  int           `json:"task_count" db:"task_count"`
	Duration   time.Duration `json:"duration" db:"duration_ms"`
	Error      string        `json:"error" db:"error"`
	FinishedAt time.Time     `json:"finished_at" db:"finished_at"`
}

// Failed reports whether the refresh ended in an error.
func (r RefreshRecord) Failed() bool {
	return r.Error != ""
}
