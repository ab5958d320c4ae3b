package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tdao/ganttboard/internal/credential"
	"github.com/tdao/ganttboard/internal/keys"
	"github.com/tdao/ganttboard/internal/model"
	"github.com/tdao/ganttboard/internal/store"
	appsync "github.com/tdao/ganttboard/internal/sync"
	"github.com/tdao/ganttboard/internal/ui"
	"github.com/tdao/ganttboard/internal/ui/chart"
	helpview "github.com/tdao/ganttboard/internal/ui/help"
	"github.com/tdao/ganttboard/internal/ui/projectpicker"
	"github.com/tdao/ganttboard/internal/ui/sourceform"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewChart ViewState = iota
	ViewProjects
	ViewConfig
	ViewHelp
)

// refreshLogMsg carries the most recent refresh log entry for the
// status bar.
type refreshLogMsg struct {
	record *model.RefreshRecord
}

// Model is the root Bubble Tea model that manages view routing, layout,
// and the background refresher.
type Model struct {
	currentView  ViewState
	previousView ViewState
	frame        ui.Frame
	store        *store.SQLiteStore
	cfg          *model.AppConfig
	cfgPath      string
	keys         *keys.KeyMap

	chartView  chart.Model
	pickerView projectpicker.Model
	formView   sourceform.Model
	helpView   helpview.Model

	refresher *appsync.Refresher

	sourceID    string
	projectID   string
	projectName string

	lastRefresh   *model.RefreshRecord
	statusMessage string
	ready         bool
}

// New creates a new root application model.
func New(s *store.SQLiteStore, cfg *model.AppConfig, cfgPath string) Model {
	km := keys.DefaultKeyMap()
	r := appsync.New(s)

	return Model{
		currentView: ViewChart,
		store:       s,
		cfg:         cfg,
		cfgPath:     cfgPath,
		keys:        km,
		chartView:   chart.New(km, cfg.Display, 80, 24),
		pickerView:  projectpicker.New(km, 80, 24),
		formView:    sourceform.New(),
		helpView:    helpview.New(km, 80, 24),
		refresher:   r,
	}
}

// Init registers configured sources. The refresher starts once
// registration completes.
func (m Model) Init() tea.Cmd {
	return m.registerSources()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.frame = ui.NewFrame(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.frame.ChartWidth()
		contentHeight := m.frame.ChartHeight()
		m.chartView.SetSize(contentWidth, contentHeight)
		m.pickerView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case sourcesRegisteredMsg:
		// If no sources are configured, enter first-run setup.
		if msg.count == 0 {
			m.previousView = m.currentView
			m.currentView = ViewConfig
			m.formView = sourceform.New()
			return m, m.formView.Init()
		}

		m.sourceID = msg.sourceID
		startCmd := m.refresher.Start()

		if msg.defaultProject != "" {
			m.projectID = msg.defaultProject
			m.projectName = msg.defaultProject
			m.refresher.SetProject(m.sourceID, m.projectID)
			return m, startCmd
		}

		// No default project; go straight to the picker.
		m.currentView = ViewProjects
		return m, tea.Batch(startCmd, m.refresher.LoadProjects(m.sourceID))

	case appsync.SnapshotMsg:
		cmd := m.refresher.WaitForNextResult()
		if msg.SourceID != m.sourceID || msg.ProjectID != m.projectID {
			// Result for a project that is no longer open.
			return m, cmd
		}

		switch {
		case msg.AuthError != nil:
			m.statusMessage = msg.AuthError.Message
		case msg.Error != nil:
			m.statusMessage = fmt.Sprintf("refresh failed: %v", msg.Error)
		default:
			m.statusMessage = ""
			m.chartView.SetSnapshot(msg.Tasks, msg.FromCache, msg.FetchedAt)
		}
		if !msg.FromCache {
			// A fetch round-trip finished; pick up its log entry.
			return m, tea.Batch(cmd, m.loadLastRefresh())
		}
		return m, cmd

	case refreshLogMsg:
		m.lastRefresh = msg.record
		return m, nil

	case appsync.ProjectsMsg:
		if msg.Error != nil {
			m.statusMessage = fmt.Sprintf("loading projects failed: %v", msg.Error)
			return m, nil
		}
		m.statusMessage = ""
		m.pickerView.SetProjects(msg.Projects)
		return m, nil

	case projectpicker.SelectedMsg:
		m.projectID = msg.Project.ID
		m.projectName = msg.Project.Name
		m.sourceID = msg.Project.SourceID
		m.currentView = ViewChart
		m.chartView.Clear()
		m.rememberDefaultProject(msg.Project.ID)
		return m, m.refresher.SetProject(m.sourceID, m.projectID)

	case sourceform.SavedMsg:
		return m.handleSourceSaved(msg)

	case sourceform.CancelledMsg:
		m.currentView = m.previousView
		return m, nil

	case tea.KeyMsg:
		// The form owns the keyboard while configuring.
		if m.currentView == ViewConfig {
			if msg.String() == "ctrl+c" {
				m.refresher.Stop()
				return m, tea.Quit
			}
			return m.updateActiveView(msg)
		}

		switch {
		case msg.String() == "ctrl+c":
			m.refresher.Stop()
			return m, tea.Quit

		case key.Matches(msg, m.keys.Quit):
			if m.currentView == ViewChart {
				m.refresher.Stop()
				return m, tea.Quit
			}

		case key.Matches(msg, m.keys.Help):
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return m, nil

		case key.Matches(msg, m.keys.Back):
			if m.currentView != ViewChart {
				m.currentView = ViewChart
				return m, nil
			}

		case key.Matches(msg, m.keys.Projects):
			if m.currentView == ViewChart && m.sourceID != "" {
				m.previousView = m.currentView
				m.currentView = ViewProjects
				return m, m.refresher.LoadProjects(m.sourceID)
			}

		case key.Matches(msg, m.keys.Configure):
			if m.currentView == ViewChart {
				m.previousView = m.currentView
				m.currentView = ViewConfig
				if existing, ok := m.findSource(m.sourceID); ok {
					m.formView = sourceform.Edit(existing)
				} else {
					m.formView = sourceform.New()
				}
				return m, m.formView.Init()
			}

		case key.Matches(msg, m.keys.Refresh):
			if m.currentView == ViewChart {
				return m, m.refresher.Refresh()
			}
		}
	}

	return m.updateActiveView(msg)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewChart:
		m.chartView, cmd = m.chartView.Update(msg)
	case ViewProjects:
		m.pickerView, cmd = m.pickerView.Update(msg)
	case ViewConfig:
		m.formView, cmd = m.formView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// handleSourceSaved persists a configured source: credentials to the
// keyring, everything else to the config file, then re-registers
// adapters and opens the project picker.
func (m Model) handleSourceSaved(msg sourceform.SavedMsg) (tea.Model, tea.Cmd) {
	if msg.Token.Key != "" || msg.Token.Secret != "" {
		if err := credential.SetToken(msg.Config.ID, msg.Token); err != nil {
			m.statusMessage = fmt.Sprintf("storing credentials failed: %v", err)
			m.currentView = m.previousView
			return m, nil
		}
	}

	replaced := false
	for i := range m.cfg.Sources {
		if m.cfg.Sources[i].ID == msg.Config.ID {
			m.cfg.Sources[i] = msg.Config
			replaced = true
			break
		}
	}
	if !replaced {
		m.cfg.Sources = append(m.cfg.Sources, msg.Config)
	}

	if err := model.SaveConfig(m.cfgPath, m.cfg); err != nil {
		log.Printf("saving config: %v", err)
	}

	m.currentView = ViewProjects
	return m, m.registerSources()
}

// rememberDefaultProject records the opened project so the next launch
// lands on it directly.
func (m *Model) rememberDefaultProject(projectID string) {
	for i := range m.cfg.Sources {
		if m.cfg.Sources[i].ID == m.sourceID {
			if m.cfg.Sources[i].DefaultProject == projectID {
				return
			}
			m.cfg.Sources[i].DefaultProject = projectID
			if err := model.SaveConfig(m.cfgPath, m.cfg); err != nil {
				log.Printf("saving config: %v", err)
			}
			return
		}
	}
}

// loadLastRefresh reads the newest refresh log entry so the status bar
// can show what the last fetch did.
func (m Model) loadLastRefresh() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		records, err := s.GetRecentRefreshes(context.Background(), 1)
		if err != nil || len(records) == 0 {
			return refreshLogMsg{}
		}
		return refreshLogMsg{record: &records[0]}
	}
}

// findSource looks up a source configuration by id.
func (m Model) findSource(id string) (model.SourceConfig, bool) {
	for _, src := range m.cfg.Sources {
		if src.ID == id {
			return src, true
		}
	}
	if len(m.cfg.Sources) > 0 {
		return m.cfg.Sources[0], true
	}
	return model.SourceConfig{}, false
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	return m.frame.Render(
		m.headerTitle(), m.syncStatus(),
		m.renderContent(), m.keyHints(),
	)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewChart:
		return m.chartView.View()
	case ViewProjects:
		return m.pickerView.View()
	case ViewConfig:
		return m.formView.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

// headerTitle builds the header line from the open project and zoom level.
func (m Model) headerTitle() string {
	if m.projectName == "" {
		return "Gantt Board"
	}
	return fmt.Sprintf(
		"Gantt Board — %s (%s)",
		m.projectName, m.chartView.Zoom(),
	)
}

// syncStatus returns a short string describing the refresher state,
// annotated with what the last logged fetch did.
func (m Model) syncStatus() string {
	status := m.refresher.Status()
	switch status.State {
	case appsync.RefreshRunning:
		return "refreshing…"
	case appsync.RefreshError:
		if m.chartView.FromCache() {
			return "offline (cached)"
		}
		return "unreachable"
	default:
		if m.chartView.FromCache() {
			return "cached"
		}
		if rec := m.lastRefresh; rec != nil && !rec.Failed() {
			return fmt.Sprintf(
				"synced %s · %d tasks in %s",
				rec.FinishedAt.Local().Format("15:04"),
				rec.TaskCount,
				rec.Duration.Round(time.Millisecond),
			)
		}
		if !status.LastSync.IsZero() {
			return "synced " + status.LastSync.Format("15:04")
		}
		return "idle"
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.statusMessage != "" && m.currentView == ViewChart {
		return m.statusMessage
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewProjects:
		return "enter open | / filter | esc back"
	case ViewConfig:
		return "enter next | esc cancel"
	default:
		return "q quit | ? help | p projects | d/w/m zoom | r refresh | t today"
	}
}
