package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdao/ganttboard/internal/model"
	"github.com/tdao/ganttboard/tests/testutil"
)

func newTestApp(t *testing.T) Model {
	t.Helper()

	cfg := &model.AppConfig{
		Display: model.DisplayConfig{DefaultZoom: "week", CellsPerUnit: 8},
	}
	return New(testutil.NewTestStore(t), cfg, filepath.Join(t.TempDir(), "config.yaml"))
}

func TestStatusBarShowsLastRefresh(t *testing.T) {
	m := newTestApp(t)
	require.NoError(t, m.store.RecordRefresh(context.Background(), model.RefreshRecord{
		SourceID:  "erp-main",
		ProjectID: "P1",
		TaskCount: 12,
		Duration:  340 * time.Millisecond,
	}))

	msg := m.loadLastRefresh()()
	logMsg, ok := msg.(refreshLogMsg)
	require.True(t, ok)
	require.NotNil(t, logMsg.record)
	assert.Equal(t, 12, logMsg.record.TaskCount)

	updated, _ := m.Update(logMsg)
	m = updated.(Model)

	status := m.syncStatus()
	assert.Contains(t, status, "12 tasks")
	assert.Contains(t, status, "340ms")
}

func TestStatusBarIgnoresFailedRefresh(t *testing.T) {
	m := newTestApp(t)
	require.NoError(t, m.store.RecordRefresh(context.Background(), model.RefreshRecord{
		SourceID:  "erp-main",
		ProjectID: "P1",
		Error:     "connection refused",
	}))

	msg := m.loadLastRefresh()()
	updated, _ := m.Update(msg)
	m = updated.(Model)

	assert.Equal(t, "idle", m.syncStatus())
}

func TestLoadLastRefreshEmptyLog(t *testing.T) {
	m := newTestApp(t)

	msg := m.loadLastRefresh()()
	logMsg, ok := msg.(refreshLogMsg)
	require.True(t, ok)
	assert.Nil(t, logMsg.record)
}
