package sourceform

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/tdao/ganttboard/internal/credential"
	"github.com/tdao/ganttboard/internal/model"
)

// SavedMsg is sent when the user completes the form. Token carries the
// entered API credentials; they go to the keyring, never to the config
// file.
type SavedMsg struct {
	Config model.SourceConfig
	Token  credential.APIToken
}

// CancelledMsg is sent when the user aborts the form.
type CancelledMsg struct{}

// Model is the add/edit source form view.
type Model struct {
	form     *huh.Form
	existing model.SourceConfig
	editing  bool
}

// New creates a form for adding a new source.
func New() Model {
	return newModel(model.SourceConfig{}, false)
}

// Edit creates a form pre-filled from an existing source configuration.
func Edit(cfg model.SourceConfig) Model {
	return newModel(cfg, true)
}

func newModel(cfg model.SourceConfig, editing bool) Model {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Source name").
				Placeholder("Main ERP").
				CharLimit(64).
				Value(&cfg.Name),
			huh.NewInput().
				Key("base_url").
				Title("Base URL").
				Placeholder("https://erp.example.com").
				Value(&cfg.BaseURL),
			huh.NewInput().
				Key("api_key").
				Title("API key"),
			huh.NewInput().
				Key("api_secret").
				Title("API secret").
				EchoMode(huh.EchoModePassword),
		),
	)

	return Model{
		form:     form,
		existing: cfg,
		editing:  editing,
	}
}

// Init starts the form.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update drives the form and emits SavedMsg/CancelledMsg on completion.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		cfg := m.existing
		cfg.Name = m.form.GetString("name")
		cfg.BaseURL = m.form.GetString("base_url")
		if cfg.ID == "" {
			cfg.ID = uuid.NewString()
		}
		if cfg.PollIntervalSec == 0 {
			cfg.PollIntervalSec = 120
		}
		cfg.Enabled = true

		token := credential.APIToken{
			Key:    m.form.GetString("api_key"),
			Secret: m.form.GetString("api_secret"),
		}
		return m, func() tea.Msg {
			return SavedMsg{Config: cfg, Token: token}
		}
	case huh.StateAborted:
		return m, func() tea.Msg { return CancelledMsg{} }
	}

	return m, cmd
}

// View renders the form.
func (m Model) View() string {
	return m.form.View()
}
