package sync

import (
	"context"
	"fmt"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tdao/ganttboard/internal/gantt"
	"github.com/tdao/ganttboard/internal/model"
	"github.com/tdao/ganttboard/internal/source"
	"github.com/tdao/ganttboard/internal/store"
)

// RefreshState represents the current state of the refresh loop.
type RefreshState int

const (
	RefreshIdle RefreshState = iota
	RefreshRunning
	RefreshError
)

// RefreshStatus is a snapshot of the refresher's state for the status bar.
type RefreshStatus struct {
	State    RefreshState
	LastSync time.Time
	Error    error
}

// SnapshotMsg is a tea.Msg delivering a project's task snapshot, either
// from the local cache (FromCache) or fresh from the backend.
type SnapshotMsg struct {
	SourceID  string
	ProjectID string
	Tasks     []model.RawTask
	Range     *gantt.DateRange
	FromCache bool
	FetchedAt time.Time
	Error     error
	AuthError *AuthErrorMsg
}

// ProjectsMsg is a tea.Msg delivering the selectable project list.
type ProjectsMsg struct {
	SourceID string
	Projects []model.Project
	Error    error
}

// AuthErrorMsg is a tea.Msg sent when a source returns an authentication error.
type AuthErrorMsg struct {
	SourceID string
	Message  string
}

// fetchTimeout is the maximum time allowed for a single fetch operation.
const fetchTimeout = 30 * time.Second

// Refresher orchestrates background refreshes of the currently open
// project. One project is live at a time; switching projects or asking
// for a manual refresh advances a generation counter, and any fetch
// that completes for an older generation is dropped so a slow response
// for a stale project can never overwrite newer state.
type Refresher struct {
	store   store.Store
	sources map[string]source.Source

	mu             gosync.Mutex
	gen            uint64
	currentSource  string
	currentProject string
	status         RefreshStatus
	running        bool

	interval  time.Duration
	resultCh  chan tea.Msg
	triggerCh chan struct{}
	stopCh    chan struct{}
}

// New creates a Refresher backed by the given store.
func New(s store.Store) *Refresher {
	return &Refresher{
		store:     s,
		sources:   make(map[string]source.Source),
		interval:  120 * time.Second,
		resultCh:  make(chan tea.Msg, 16),
		triggerCh: make(chan struct{}, 16),
		stopCh:    make(chan struct{}),
	}
}

// RegisterSource adds a source adapter and its configuration.
func (r *Refresher) RegisterSource(src source.Source, cfg model.SourceConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sources[src.ID()] = src
	if cfg.PollIntervalSec > 0 {
		r.interval = time.Duration(cfg.PollIntervalSec) * time.Second
	}
}

// Start launches the refresh loop and subscribes to results. The
// returned command waits on the result channel and feeds messages into
// the Bubble Tea runtime.
func (r *Refresher) Start() tea.Cmd {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	r.running = true
	r.mu.Unlock()

	go r.loop()
	return r.waitForResult()
}

// Stop halts the refresh loop.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}
	close(r.stopCh)
	r.running = false
}

// SetProject makes (sourceID, projectID) the live project. Any cached
// snapshot is delivered immediately so the chart can draw before the
// network round-trip completes, then a fresh fetch is triggered.
func (r *Refresher) SetProject(sourceID, projectID string) tea.Cmd {
	r.mu.Lock()
	r.gen++
	gen := r.gen
	r.currentSource = sourceID
	r.currentProject = projectID
	r.mu.Unlock()

	go r.deliverCached(gen, sourceID, projectID)
	r.trigger()
	return nil
}

// Refresh triggers an immediate fetch of the live project, superseding
// any fetch still in flight.
func (r *Refresher) Refresh() tea.Cmd {
	r.mu.Lock()
	r.gen++
	r.mu.Unlock()

	r.trigger()
	return nil
}

// LoadProjects fetches the project list for a source, falling back to
// the cached list when the backend is unreachable.
func (r *Refresher) LoadProjects(sourceID string) tea.Cmd {
	return func() tea.Msg {
		r.mu.Lock()
		src := r.sources[sourceID]
		r.mu.Unlock()
		if src == nil {
			return ProjectsMsg{
				SourceID: sourceID,
				Error:    fmt.Errorf("unknown source %q", sourceID),
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		projects, err := src.FetchProjects(ctx)
		if err != nil {
			cached, cacheErr := r.store.GetProjects(ctx, sourceID)
			if cacheErr == nil && len(cached) > 0 {
				return ProjectsMsg{SourceID: sourceID, Projects: cached}
			}
			return ProjectsMsg{SourceID: sourceID, Error: err}
		}

		_ = r.store.UpsertProjects(ctx, projects)
		return ProjectsMsg{SourceID: sourceID, Projects: projects}
	}
}

// Status returns the refresher's current status.
func (r *Refresher) Status() RefreshStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// WaitForNextResult returns a tea.Cmd that waits for the next message.
// Call it after processing each delivered message to keep listening.
func (r *Refresher) WaitForNextResult() tea.Cmd {
	return r.waitForResult()
}

// loop runs ticker-driven and manually triggered fetches until stopped.
func (r *Refresher) loop() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.fetchCurrent()
		case <-r.triggerCh:
			r.fetchCurrent()
		}
	}
}

// fetchCurrent performs one fetch of the live project. The generation
// captured before the request decides whether the result still matters
// when it lands.
func (r *Refresher) fetchCurrent() {
	r.mu.Lock()
	gen := r.gen
	sourceID := r.currentSource
	projectID := r.currentProject
	src := r.sources[sourceID]
	r.mu.Unlock()

	if src == nil || projectID == "" {
		return
	}

	r.setStatus(RefreshRunning, nil)

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	started := time.Now()
	result, err := src.FetchTasks(ctx, projectID)
	elapsed := time.Since(started)

	if r.stale(gen) {
		// A newer request took over while this one was in flight.
		return
	}

	if err != nil {
		r.setStatus(RefreshError, err)
		_ = r.store.RecordRefresh(ctx, model.RefreshRecord{
			SourceID:  sourceID,
			ProjectID: projectID,
			Duration:  elapsed,
			Error:     err.Error(),
		})

		msg := SnapshotMsg{
			SourceID:  sourceID,
			ProjectID: projectID,
			Error:     err,
		}
		if source.IsAuthError(err) {
			msg.AuthError = &AuthErrorMsg{
				SourceID: sourceID,
				Message: fmt.Sprintf(
					"%s: authentication failed. Press 'c' to reconfigure.",
					sourceID,
				),
			}
		}
		r.send(msg)
		return
	}

	if err := r.store.ReplaceTaskSnapshot(
		ctx, sourceID, projectID, result.Tasks,
	); err != nil {
		r.setStatus(RefreshError, err)
		r.send(SnapshotMsg{
			SourceID:  sourceID,
			ProjectID: projectID,
			Error:     err,
		})
		return
	}

	_ = r.store.RecordRefresh(ctx, model.RefreshRecord{
		SourceID:  sourceID,
		ProjectID: projectID,
		TaskCount: len(result.Tasks),
		Duration:  elapsed,
	})

	// A fresh snapshot supersedes its own generation, so a cache read
	// still in flight for the same selection is dropped instead of
	// overwriting live data in the UI.
	r.mu.Lock()
	if r.gen == gen {
		r.gen++
	}
	r.mu.Unlock()

	r.setStatus(RefreshIdle, nil)
	r.send(SnapshotMsg{
		SourceID:  sourceID,
		ProjectID: projectID,
		Tasks:     result.Tasks,
		Range:     result.Range,
		FetchedAt: time.Now(),
	})
}

// deliverCached pushes the cached snapshot for a newly selected
// project. The generation check drops it when a newer selection took
// over or a fresh fetch for this selection already delivered.
func (r *Refresher) deliverCached(gen uint64, sourceID, projectID string) {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	tasks, fetchedAt, err := r.store.GetTaskSnapshot(ctx, sourceID, projectID)
	if err != nil || len(tasks) == 0 {
		return
	}
	if r.stale(gen) {
		return
	}

	r.send(SnapshotMsg{
		SourceID:  sourceID,
		ProjectID: projectID,
		Tasks:     tasks,
		FromCache: true,
		FetchedAt: fetchedAt,
	})
}

// stale reports whether gen has been superseded.
func (r *Refresher) stale(gen uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return gen != r.gen
}

// setStatus updates the refresher status.
func (r *Refresher) setStatus(state RefreshState, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.status.State = state
	r.status.Error = err
	if state == RefreshIdle && err == nil {
		r.status.LastSync = time.Now()
	}
}

// trigger nudges the loop without blocking.
func (r *Refresher) trigger() {
	select {
	case r.triggerCh <- struct{}{}:
	default:
		// Channel full; a fetch is already pending.
	}
}

// send delivers a message without blocking the loop.
func (r *Refresher) send(msg tea.Msg) {
	select {
	case r.resultCh <- msg:
	default:
		// Drop if the channel is full to avoid blocking the refresher.
	}
}

// waitForResult returns a tea.Cmd that waits for the next message from
// the result channel.
func (r *Refresher) waitForResult() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-r.resultCh
		if !ok {
			return nil
		}
		return msg
	}
}
