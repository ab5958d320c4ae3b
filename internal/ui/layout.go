package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tdao/ganttboard/internal/theme"
)

// Chrome rows around the chart area. The title bar carries the open
// project and zoom level on the left and the sync state on the right;
// the status bar alternates between key hints and refresh outcomes.
const (
	titleBarRows  = 1
	statusBarRows = 1
)

// Frame sizes the fixed chrome around the chart area.
type Frame struct {
	Width  int
	Height int
}

// NewFrame creates a Frame for the given terminal dimensions.
func NewFrame(width, height int) Frame {
	return Frame{Width: width, Height: height}
}

// ChartWidth returns the width available to the chart area.
func (f Frame) ChartWidth() int {
	return f.Width
}

// ChartHeight returns the rows available to the chart area after the
// title and status bars.
func (f Frame) ChartHeight() int {
	h := f.Height - titleBarRows - statusBarRows
	if h < 0 {
		h = 0
	}
	return h
}

// Render composes the full screen: title bar, chart area, status bar.
func (f Frame) Render(title, syncState, chart, hints string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		f.renderTitleBar(title, syncState),
		chart,
		f.renderStatusBar(hints),
	)
}

// renderTitleBar spreads the title and the sync state across one
// full-width header row.
func (f Frame) renderTitleBar(title, syncState string) string {
	left := theme.HeaderStyle.Render(title)
	right := theme.HeaderStyle.Render(syncState)
	return left + f.fill(theme.HeaderStyle, left, right) + right
}

// renderStatusBar renders the bottom row, padded to the full width so
// its background reaches the right edge.
func (f Frame) renderStatusBar(hints string) string {
	bar := theme.StatusBarStyle.Render(hints)
	return bar + f.fill(theme.StatusBarStyle, bar)
}

// fill returns a styled spacer covering whatever width the rendered
// segments leave unused.
func (f Frame) fill(style lipgloss.Style, segments ...string) string {
	used := 0
	for _, s := range segments {
		used += lipgloss.Width(s)
	}
	gap := f.Width - used
	if gap <= 0 {
		return ""
	}
	return style.Padding(0).Render(strings.Repeat(" ", gap))
}
