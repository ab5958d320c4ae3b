package model

import "time"

// Project is a project container fetched from the ERP backend.
type Project struct {
	ID        string    `json:"id" db:"id"`
	SourceID  string    `json:"source_id" db:"source_id"`
	Name      string    `json:"name" db:"name"`
	Status    string    `json:"status" db:"status"`
	FetchedAt time.Time `json:"fetched_at" db:"fetched_at"`
}
