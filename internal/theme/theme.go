package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tdao/ganttboard/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// DetailPanelStyle wraps overlay content areas.
var DetailPanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// LabelColumnStyle renders the task label gutter on the chart's left edge.
var LabelColumnStyle = lipgloss.NewStyle().
	Foreground(ColorWhite)

// GroupLabelStyle renders group task labels in the gutter.
var GroupLabelStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorBlue)

// SelectedRowStyle highlights the focused chart row's label.
var SelectedRowStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// AxisStyle renders the time-axis header above the chart.
var AxisStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// TodayMarkerStyle renders the vertical marker for the current day.
var TodayMarkerStyle = lipgloss.NewStyle().
	Foreground(ColorRed).
	Bold(true)

// DependencyMarkerStyle renders the per-row dependency indicator.
var DependencyMarkerStyle = lipgloss.NewStyle().
	Foreground(ColorMagenta)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// StatusColor returns the bar color for a normalized task status.
func StatusColor(status model.Status) lipgloss.AdaptiveColor {
	switch status {
	case model.StatusOpen:
		return ColorBlue
	case model.StatusInProgress:
		return ColorYellow
	case model.StatusReview:
		return ColorMagenta
	case model.StatusOverdue:
		return ColorRed
	case model.StatusDone:
		return ColorGreen
	case model.StatusCancelled:
		return ColorGray
	default:
		return ColorGray
	}
}

// BarStyle returns the style for a task bar with the given status.
func BarStyle(status model.Status) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(StatusColor(status))
}

// GroupBarStyle renders rollup bars for group tasks.
var GroupBarStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorSubtle)

// PriorityStyle returns a color-coded style for the given priority.
func PriorityStyle(priority model.Priority) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch priority {
	case model.PriorityUrgent:
		return base.Foreground(ColorRed)
	case model.PriorityHigh:
		return base.Foreground(ColorOrange)
	case model.PriorityMedium:
		return base.Foreground(ColorYellow)
	case model.PriorityLow:
		return base.Foreground(ColorBlue)
	default:
		return base.Foreground(ColorGray)
	}
}
