package erpnext

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdao/ganttboard/internal/model"
	"github.com/tdao/ganttboard/internal/source"
)

func newTestAdapter(t *testing.T, handler http.Handler) *Adapter {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := model.SourceConfig{
		ID:      "erp-main",
		Name:    "Main ERP",
		BaseURL: srv.URL,
	}
	return NewAdapter(cfg, "key", "secret")
}

func TestAdapter_FetchTasks_GanttEndpoint(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(ganttMethodPath, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token key:secret", r.Header.Get("Authorization"))
		assert.Equal(t, "PROJ-001", r.URL.Query().Get("project"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": map[string]interface{}{
				"tasks": []map[string]interface{}{
					{
						"id":             "TASK-1",
						"subject":        "Design",
						"status":         "Working",
						"exp_start_date": "2024-01-01",
						"exp_end_date":   "2024-01-05",
					},
				},
				"date_range": map[string]string{
					"min_date": "2024-01-01",
					"max_date": "2024-01-05",
				},
			},
		})
	})

	adapter := newTestAdapter(t, mux)

	result, err := adapter.FetchTasks(context.Background(), "PROJ-001")
	require.NoError(t, err)
	require.Len(t, result.Tasks, 1)
	assert.Equal(t, "TASK-1", result.Tasks[0].ID)

	require.NotNil(t, result.Range)
	assert.True(t, result.Range.Start.Equal(
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	))
}

func TestAdapter_FetchTasks_FallbackList(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(ganttMethodPath, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/api/resource/Task", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "500", r.URL.Query().Get("limit_page_length"))
		assert.Contains(t, r.URL.Query().Get("filters"), "PROJ-001")

		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{
					"name":        "TASK-1",
					"subject":     "Build",
					"is_group":    1,
					"parent_task": "",
				},
				{
					"name":        "TASK-2",
					"subject":     "Wire",
					"parent_task": "TASK-1",
					"depends_on": []map[string]string{
						{"dependent_task_id": "TASK-1"},
					},
				},
			},
		})
	})

	adapter := newTestAdapter(t, mux)

	result, err := adapter.FetchTasks(context.Background(), "PROJ-001")
	require.NoError(t, err)
	require.Len(t, result.Tasks, 2)
	assert.Nil(t, result.Range)

	assert.True(t, result.Tasks[0].IsGroup)
	assert.Equal(t, "TASK-1", result.Tasks[1].ParentTaskID)
	require.Len(t, result.Tasks[1].DependsOn, 1)
	assert.Equal(t, "TASK-1", result.Tasks[1].DependsOn[0].DependentTaskID)
}

func TestAdapter_FetchTasks_AuthError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(ganttMethodPath, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(ErrorResponse{
			ExcType: "AuthenticationError",
			Message: "Invalid API key",
		})
	})

	adapter := newTestAdapter(t, mux)

	_, err := adapter.FetchTasks(context.Background(), "PROJ-001")
	require.Error(t, err)
	assert.True(t, source.IsAuthError(err), "expected AuthError, got %v", err)
}

func TestAdapter_FetchProjects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/resource/Project", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"name": "PROJ-001", "project_name": "Warehouse build-out", "status": "Open"},
				{"name": "PROJ-002", "project_name": "", "status": "Open"},
			},
		})
	})

	adapter := newTestAdapter(t, mux)

	projects, err := adapter.FetchProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Warehouse build-out", projects[0].Name)
	assert.Equal(t, "erp-main", projects[0].SourceID)

	// Falls back to the document name when project_name is blank.
	assert.Equal(t, "PROJ-002", projects[1].Name)
}

func TestAdapter_ValidateConnection(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(
		"/api/method/frappe.auth.get_logged_user",
		func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"message": "pm@example.com"})
		},
	)

	adapter := newTestAdapter(t, mux)

	user, err := adapter.ValidateConnection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pm@example.com", user)
}

func TestClient_RetriesOn429(t *testing.T) {
	var calls int
	mux := http.NewServeMux()
	mux.HandleFunc(ganttMethodPath, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": map[string]interface{}{"tasks": []interface{}{}},
		})
	})

	adapter := newTestAdapter(t, mux)

	_, err := adapter.FetchTasks(context.Background(), "PROJ-001")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
