package projectpicker

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tdao/ganttboard/internal/keys"
	"github.com/tdao/ganttboard/internal/model"
	"github.com/tdao/ganttboard/internal/theme"
)

// SelectedMsg is sent when the user picks a project to open.
type SelectedMsg struct {
	Project model.Project
}

// item adapts a model.Project to the bubbles list contract.
type item struct {
	project model.Project
}

func (i item) Title() string { return i.project.Name }

func (i item) Description() string {
	if i.project.Status == "" {
		return i.project.ID
	}
	return i.project.ID + " · " + i.project.Status
}

func (i item) FilterValue() string { return i.project.Name + " " + i.project.ID }

// Model is the project picker view.
type Model struct {
	list list.Model
	keys *keys.KeyMap
}

// New creates a project picker.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), width, height)
	l.Title = "Projects"
	l.SetShowHelp(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{list: l, keys: k}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetProjects replaces the selectable projects.
func (m *Model) SetProjects(projects []model.Project) {
	items := make([]list.Item, 0, len(projects))
	for _, p := range projects {
		items = append(items, item{project: p})
	}
	m.list.SetItems(items)
}

// Update handles list navigation and selection.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(keyMsg, m.keys.Select) {
			if it, ok := m.list.SelectedItem().(item); ok {
				return m, func() tea.Msg {
					return SelectedMsg{Project: it.project}
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the picker.
func (m Model) View() string {
	return m.list.View()
}

// SetSize updates the picker dimensions.
func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
