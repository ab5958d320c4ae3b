package erpnext

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/tdao/ganttboard/internal/gantt"
	"github.com/tdao/ganttboard/internal/model"
	"github.com/tdao/ganttboard/internal/source"
)

// ganttMethodPath is the Gantt-optimized endpoint: it returns tasks
// pre-shaped to the RawTask contract plus a server-computed date window.
// Not every deployment whitelists it, so FetchTasks falls back to the
// generic resource list when this path answers 404.
const ganttMethodPath = "/api/method/erpnext.projects.get_gantt_tasks"

// taskPageLimit caps how many tasks the fallback list fetch requests.
const taskPageLimit = 500

// taskListFields are the Task fields requested on the fallback path.
var taskListFields = []string{
	"name", "subject", "status", "priority", "progress",
	"exp_start_date", "exp_end_date", "assigned_to",
	"parent_task", "is_group", "depends_on",
}

// projectListFields are the Project fields requested for the picker.
var projectListFields = []string{"name", "project_name", "status"}

// Adapter implements source.Source for a Frappe/ERPNext backend.
type Adapter struct {
	client *Client
	id     string
	name   string
}

// NewAdapter creates an adapter for the configured source instance.
func NewAdapter(cfg model.SourceConfig, key, secret string) *Adapter {
	return &Adapter{
		client: NewClient(cfg.BaseURL, key, secret),
		id:     cfg.ID,
		name:   cfg.Name,
	}
}

// ID returns the configured source instance identifier.
func (a *Adapter) ID() string {
	return a.id
}

// Name returns the user-facing label for this source.
func (a *Adapter) Name() string {
	return a.name
}

// ValidateConnection verifies credentials by resolving the logged-in
// user. Returns the username on success.
func (a *Adapter) ValidateConnection(ctx context.Context) (string, error) {
	var resp loggedUserResponse
	err := a.client.Get(
		ctx, "/api/method/frappe.auth.get_logged_user", nil, &resp,
	)
	if err != nil {
		return "", a.wrapAuth(fmt.Errorf("validating connection: %w", err))
	}
	return resp.Message, nil
}

// FetchProjects retrieves the selectable projects from the backend.
func (a *Adapter) FetchProjects(ctx context.Context) ([]model.Project, error) {
	query := url.Values{}
	query.Set("fields", mustJSON(projectListFields))
	query.Set("limit_page_length", "0")
	query.Set("order_by", "modified desc")

	var resp projectListResponse
	if err := a.client.Get(ctx, "/api/resource/Project", query, &resp); err != nil {
		return nil, a.wrapAuth(fmt.Errorf("fetching projects: %w", err))
	}

	now := time.Now()
	projects := make([]model.Project, 0, len(resp.Data))
	for _, rec := range resp.Data {
		name := rec.ProjectName
		if name == "" {
			name = rec.Name
		}
		projects = append(projects, model.Project{
			ID:        rec.Name,
			SourceID:  a.id,
			Name:      name,
			Status:    rec.Status,
			FetchedAt: now,
		})
	}
	return projects, nil
}

// FetchTasks retrieves the full task snapshot for one project. It tries
// the Gantt-optimized endpoint first and reshapes the generic paginated
// task list into the same contract when that endpoint is unavailable.
func (a *Adapter) FetchTasks(
	ctx context.Context,
	projectID string,
) (*source.FetchResult, error) {
	result, err := a.fetchGantt(ctx, projectID)
	if err == nil {
		return result, nil
	}
	if !IsNotFound(err) {
		return nil, a.wrapAuth(err)
	}

	result, err = a.fetchTaskList(ctx, projectID)
	if err != nil {
		return nil, a.wrapAuth(err)
	}
	return result, nil
}

// fetchGantt calls the pre-shaped Gantt endpoint.
func (a *Adapter) fetchGantt(
	ctx context.Context,
	projectID string,
) (*source.FetchResult, error) {
	query := url.Values{}
	query.Set("project", projectID)

	var resp ganttResponse
	if err := a.client.Get(ctx, ganttMethodPath, query, &resp); err != nil {
		return nil, err
	}

	result := &source.FetchResult{Tasks: resp.Message.Tasks}
	if wire := resp.Message.DateRange; wire != nil {
		if rng := parseWireRange(wire); rng != nil {
			result.Range = rng
		}
	}
	return result, nil
}

// fetchTaskList is the fallback ingestion path: a generic paginated
// resource list reshaped locally into the RawTask contract.
func (a *Adapter) fetchTaskList(
	ctx context.Context,
	projectID string,
) (*source.FetchResult, error) {
	query := url.Values{}
	query.Set("fields", mustJSON(taskListFields))
	query.Set("filters", mustJSON([][]string{{"project", "=", projectID}}))
	query.Set("limit_page_length", fmt.Sprint(taskPageLimit))
	query.Set("order_by", "exp_start_date asc")

	var resp taskListResponse
	if err := a.client.Get(ctx, "/api/resource/Task", query, &resp); err != nil {
		return nil, fmt.Errorf("fetching task list: %w", err)
	}

	tasks := make([]model.RawTask, 0, len(resp.Data))
	for _, rec := range resp.Data {
		tasks = append(tasks, recordToRawTask(rec))
	}
	return &source.FetchResult{Tasks: tasks}, nil
}

// recordToRawTask reshapes a generic Task document row into the RawTask
// contract shared with the Gantt endpoint.
func recordToRawTask(rec taskRecord) model.RawTask {
	raw := model.RawTask{
		ID:           rec.Name,
		Subject:      rec.Subject,
		Status:       rec.Status,
		Priority:     rec.Priority,
		Progress:     rec.Progress,
		ExpStartDate: rec.ExpStartDate,
		ExpEndDate:   rec.ExpEndDate,
		AssignedTo:   rec.AssignedTo,
		ParentTaskID: rec.ParentTask,
		IsGroup:      rec.IsGroup != 0,
	}
	for _, dep := range rec.DependsOn {
		if id := dep.id(); id != "" {
			raw.DependsOn = append(raw.DependsOn, model.TaskDepends{
				DependentTaskID: id,
			})
		}
	}
	return raw
}

// parseWireRange converts the server's date strings into a DateRange.
// A malformed window is discarded rather than reported: the pipeline
// recomputes the covering range from the tasks anyway.
func parseWireRange(wire *wireDateRange) *gantt.DateRange {
	start, err := time.Parse("2006-01-02", wire.MinDate)
	if err != nil {
		return nil
	}
	end, err := time.Parse("2006-01-02", wire.MaxDate)
	if err != nil {
		return nil
	}
	if end.Before(start) {
		return nil
	}
	return &gantt.DateRange{Start: start, End: end}
}

// wrapAuth converts 401/403 API errors into a typed source.AuthError so
// the UI can prompt for reconfiguration.
func (a *Adapter) wrapAuth(err error) error {
	if IsAuthStatus(err) {
		return &source.AuthError{
			SourceID: a.id,
			Message:  err.Error(),
		}
	}
	return err
}

// mustJSON encodes a query parameter value the backend expects as JSON.
func mustJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("encoding query parameter: %v", err))
	}
	return string(data)
}
