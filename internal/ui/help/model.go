package help

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tdao/ganttboard/internal/keys"
	"github.com/tdao/ganttboard/internal/theme"
)

// section is one titled group of bindings on the help screen.
type section struct {
	title    string
	bindings []key.Binding
}

// Model is the help overlay listing the chart's keyboard shortcuts,
// grouped the way they are used: moving around the chart, changing the
// time scale, and switching screens.
type Model struct {
	keymap   *keys.KeyMap
	sections []section
	help     help.Model
	width    int
	height   int
}

// New creates the help overlay for the given keymap.
func New(k *keys.KeyMap, width, height int) Model {
	return Model{
		keymap: k,
		sections: []section{
			{"Navigate", []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Today}},
			{"Time scale", []key.Binding{k.ZoomDay, k.ZoomWeek, k.ZoomMonth}},
			{"Screens", []key.Binding{k.Projects, k.Configure, k.Refresh}},
			{"General", []key.Binding{k.Select, k.Back, k.Help, k.Quit}},
		},
		help:   help.New(),
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help overlay.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the grouped shortcut reference inside a bordered panel.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite)

	blocks := []string{titleStyle.Render("Keyboard Shortcuts"), ""}
	for _, s := range m.sections {
		blocks = append(blocks,
			theme.HelpStyle.Render(s.title),
			m.help.FullHelpView([][]key.Binding{s.bindings}),
			"",
		)
	}

	// Compact one-liner at the bottom, same as the status bar shows.
	blocks = append(blocks, m.help.View(m.keymap))

	content := lipgloss.JoinVertical(lipgloss.Left, blocks...)

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Height(m.height - 4).
		Render(content)
}

// SetSize updates the help overlay dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
