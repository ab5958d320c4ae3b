package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/tdao/ganttboard/internal/gantt"
	"github.com/tdao/ganttboard/internal/model"
)

// AuthError indicates that authentication has failed or expired for a
// source. It is returned when the backend answers 401/403.
type AuthError struct {
	SourceID string
	Message  string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error (%s): %s", e.SourceID, e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// FetchResult holds one project's task snapshot returned from a source.
type FetchResult struct {
	Tasks []model.RawTask

	// Range is the server-advertised date window when the backend's
	// Gantt endpoint supplies one. Nil on the fallback ingestion path;
	// the pipeline computes its own covering range either way.
	Range *gantt.DateRange
}

// Source defines the contract an ERP backend integration implements.
type Source interface {
	// ID returns the configured source instance identifier.
	ID() string

	// Name returns the user-facing label for this source.
	Name() string

	// ValidateConnection verifies credentials and connectivity.
	// Returns a human-readable identity string on success.
	ValidateConnection(ctx context.Context) (string, error)

	// FetchProjects retrieves the selectable projects.
	FetchProjects(ctx context.Context) ([]model.Project, error)

	// FetchTasks retrieves the full task snapshot for one project.
	FetchTasks(ctx context.Context, projectID string) (*FetchResult, error)
}
