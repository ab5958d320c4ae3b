package chart

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tdao/ganttboard/internal/gantt"
	"github.com/tdao/ganttboard/internal/keys"
	"github.com/tdao/ganttboard/internal/model"
	"github.com/tdao/ganttboard/internal/theme"
)

// labelGutterWidth is the width of the task label column on the left.
const labelGutterWidth = 26

// Model is the Gantt chart view component. It holds the latest raw
// snapshot and rebuilds the chart pipeline output whenever the snapshot
// or the zoom level changes.
type Model struct {
	keys *keys.KeyMap

	raw   []model.RawTask
	chart gantt.Chart
	depth map[string]int

	zoom gantt.Zoom
	cfg  gantt.Config

	cursor  int
	offsetX int
	offsetY int

	width  int
	height int

	fromCache bool
	fetchedAt time.Time
}

// New creates a chart model with geometry taken from display preferences.
func New(k *keys.KeyMap, display model.DisplayConfig, width, height int) Model {
	cfg := gantt.DefaultConfig()
	if display.CellsPerUnit > 0 {
		cfg.PixelsPerUnit = float64(display.CellsPerUnit)
	}
	if display.RowHeight > 0 {
		cfg.RowHeight = display.RowHeight
	}
	if display.RowGap > 0 {
		cfg.MinRowGap = display.RowGap
	}

	return Model{
		keys:   k,
		zoom:   gantt.ParseZoom(display.DefaultZoom),
		cfg:    cfg,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetSnapshot replaces the task snapshot and rebuilds the chart.
func (m *Model) SetSnapshot(tasks []model.RawTask, fromCache bool, fetchedAt time.Time) {
	m.raw = tasks
	m.fromCache = fromCache
	m.fetchedAt = fetchedAt
	m.rebuild()
}

// Clear empties the chart, e.g. when switching projects.
func (m *Model) Clear() {
	m.raw = nil
	m.fromCache = false
	m.fetchedAt = time.Time{}
	m.rebuild()
}

// SetZoom switches the zoom level and rebuilds the chart.
func (m *Model) SetZoom(z gantt.Zoom) {
	if z == m.zoom {
		return
	}
	m.zoom = z
	m.offsetX = 0
	m.rebuild()
}

// Zoom returns the active zoom level.
func (m Model) Zoom() gantt.Zoom {
	return m.zoom
}

// TaskCount returns the number of rows in the chart.
func (m Model) TaskCount() int {
	return len(m.chart.Tasks)
}

// FromCache reports whether the current snapshot came from the local
// cache rather than a live fetch.
func (m Model) FromCache() bool {
	return m.fromCache
}

// FetchedAt returns when the current snapshot was fetched.
func (m Model) FetchedAt() time.Time {
	return m.fetchedAt
}

// SelectedTask returns the task under the cursor, or nil for an empty chart.
func (m Model) SelectedTask() *model.GanttTask {
	if m.cursor < 0 || m.cursor >= len(m.chart.Tasks) {
		return nil
	}
	t := m.chart.Tasks[m.cursor]
	return &t
}

// SetSize updates the chart dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.clampScroll()
}

// rebuild reruns the preparation pipeline over the held snapshot.
func (m *Model) rebuild() {
	m.chart = gantt.BuildChart(m.raw, m.zoom, m.cfg)
	m.depth = taskDepths(m.chart.Tasks)
	m.clampScroll()
}

// Update handles navigation and zoom key presses.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Down):
		m.cursor++
	case key.Matches(keyMsg, m.keys.Up):
		m.cursor--
	case key.Matches(keyMsg, m.keys.Right):
		m.offsetX += int(m.cfg.PixelsPerUnit)
	case key.Matches(keyMsg, m.keys.Left):
		m.offsetX -= int(m.cfg.PixelsPerUnit)
	case key.Matches(keyMsg, m.keys.ZoomDay):
		m.SetZoom(gantt.ZoomDay)
	case key.Matches(keyMsg, m.keys.ZoomWeek):
		m.SetZoom(gantt.ZoomWeek)
	case key.Matches(keyMsg, m.keys.ZoomMonth):
		m.SetZoom(gantt.ZoomMonth)
	case key.Matches(keyMsg, m.keys.Today):
		m.scrollToToday()
	}

	m.clampScroll()
	return m, nil
}

// scrollToToday centers the horizontal scroll on the current day.
func (m *Model) scrollToToday() {
	if m.chart.Layout == nil {
		return
	}
	l := m.chart.Layout
	todayX := int(l.Range.Days()*l.PxPerDay) // fallback: end of range
	if x, ok := m.todayColumn(); ok {
		todayX = x
	}
	m.offsetX = todayX - m.chartAreaWidth()/2
}

// todayColumn returns today's x cell relative to the layout range.
func (m Model) todayColumn() (int, bool) {
	l := m.chart.Layout
	if l == nil {
		return 0, false
	}
	now := time.Now()
	if !l.Range.Contains(now) {
		return 0, false
	}
	days := now.Sub(l.Range.Start).Hours() / 24
	return int(days * l.PxPerDay), true
}

// chartAreaWidth is the width left for bars after the label gutter.
func (m Model) chartAreaWidth() int {
	w := m.width - labelGutterWidth - 1
	if w < 1 {
		w = 1
	}
	return w
}

// visibleRows is how many task rows fit between the axis header and
// the selected-task footer.
func (m Model) visibleRows() int {
	h := m.height - 2
	if h < 1 {
		h = 1
	}
	return h
}

// clampScroll keeps the cursor and both scroll offsets inside the chart.
func (m *Model) clampScroll() {
	n := len(m.chart.Tasks)
	if n == 0 {
		m.cursor = 0
		m.offsetX = 0
		m.offsetY = 0
		return
	}

	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}

	// Keep the cursor row visible.
	visible := m.visibleRows()
	if m.cursor < m.offsetY {
		m.offsetY = m.cursor
	}
	if m.cursor >= m.offsetY+visible {
		m.offsetY = m.cursor - visible + 1
	}

	maxX := 0
	if m.chart.Layout != nil {
		maxX = int(m.chart.Layout.Width) - m.chartAreaWidth()
	}
	if maxX < 0 {
		maxX = 0
	}
	if m.offsetX > maxX {
		m.offsetX = maxX
	}
	if m.offsetX < 0 {
		m.offsetX = 0
	}
}

// taskDepths computes each task's nesting depth for label indentation.
// Parent cycles fall back to depth zero rather than recursing forever.
func taskDepths(tasks []model.GanttTask) map[string]int {
	parent := make(map[string]string, len(tasks))
	known := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		known[t.ID] = struct{}{}
	}
	for _, t := range tasks {
		if _, ok := known[t.ParentID]; ok {
			parent[t.ID] = t.ParentID
		}
	}

	depths := make(map[string]int, len(tasks))
	for _, t := range tasks {
		depth := 0
		seen := map[string]struct{}{t.ID: {}}
		for id := parent[t.ID]; id != ""; id = parent[id] {
			if _, cycle := seen[id]; cycle {
				depth = 0
				break
			}
			seen[id] = struct{}{}
			depth++
		}
		depths[t.ID] = depth
	}
	return depths
}

// View renders the axis header and the visible chart rows.
func (m Model) View() string {
	if m.chart.Layout == nil {
		return theme.HelpStyle.Render(
			"\n  No tasks to display. Press 'p' to pick a project, 'r' to refresh.",
		)
	}

	lines := make([]string, 0, m.visibleRows()+1)
	lines = append(lines, m.renderAxis())

	incoming := m.chart.IncomingDeps()
	visible := m.visibleRows()
	for i := m.offsetY; i < len(m.chart.Tasks) && i-m.offsetY < visible; i++ {
		lines = append(lines, m.renderRow(i, incoming))
	}

	if footer := m.renderFooter(); footer != "" {
		lines = append(lines, footer)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderFooter summarizes the task under the cursor.
func (m Model) renderFooter() string {
	task := m.SelectedTask()
	if task == nil {
		return ""
	}

	span := "no dates"
	if task.HasDates() {
		span = task.Start.Format("Jan 02") + " → " + task.End.Format("Jan 02")
	}

	return theme.HelpStyle.Render(task.ID+" · "+string(task.Status)+" · ") +
		theme.PriorityStyle(task.Priority).Render(string(task.Priority)) +
		theme.HelpStyle.Render(fmt.Sprintf(
			" · %d%% · %s", int(task.Progress*100+0.5), span,
		))
}

// renderAxis draws the time scale above the bar area, one tick label
// per zoom unit.
func (m Model) renderAxis() string {
	l := m.chart.Layout
	gutter := fmt.Sprintf("%-*s", labelGutterWidth, "")

	width := m.chartAreaWidth()
	cells := make([]rune, width)
	for i := range cells {
		cells[i] = ' '
	}

	unitCells := int(m.cfg.PixelsPerUnit)
	if unitCells < 1 {
		unitCells = 1
	}

	// Walk unit boundaries across the visible window.
	firstUnit := m.offsetX / unitCells
	for u := firstUnit; ; u++ {
		x := u*unitCells - m.offsetX
		if x >= width {
			break
		}
		if x < 0 {
			continue
		}
		date := l.Range.Start.AddDate(0, 0, int(float64(u)*m.zoom.UnitDays()))
		label := axisLabel(date, m.zoom)
		for j, r := range label {
			if x+j >= width {
				break
			}
			cells[x+j] = r
		}
	}

	if x, ok := m.todayColumn(); ok {
		// Mark today's column when its cell is not under a tick label.
		if col := x - m.offsetX; col >= 0 && col < width && cells[col] == ' ' {
			return gutter + "│" +
				theme.AxisStyle.Render(string(cells[:col])) +
				theme.TodayMarkerStyle.Render("▼") +
				theme.AxisStyle.Render(string(cells[col+1:]))
		}
	}

	return gutter + "│" + theme.AxisStyle.Render(string(cells))
}

// axisLabel formats one tick label for the zoom level.
func axisLabel(date time.Time, zoom gantt.Zoom) string {
	switch zoom {
	case gantt.ZoomDay:
		return date.Format("02")
	case gantt.ZoomWeek:
		return date.Format("Jan 02")
	default:
		return date.Format("Jan 06")
	}
}

// renderRow draws one task row: indented label gutter, then the bar.
func (m Model) renderRow(i int, incoming map[string]int) string {
	task := m.chart.Tasks[i]
	row := m.chart.Layout.Rows[i]

	label := task.Label
	indent := m.depth[task.ID] * 2
	maxLabel := labelGutterWidth - indent - 1
	if maxLabel < 4 {
		maxLabel = 4
	}
	// Truncate over runes so multi-byte labels stay valid UTF-8.
	if runes := []rune(label); len(runes) > maxLabel {
		label = string(runes[:maxLabel-1]) + "…"
	}
	gutter := strings.Repeat(" ", indent) + label
	if pad := labelGutterWidth - lipgloss.Width(gutter); pad > 0 {
		gutter += strings.Repeat(" ", pad)
	}

	switch {
	case i == m.cursor:
		gutter = theme.SelectedRowStyle.Render(gutter)
	case task.IsGroup:
		gutter = theme.GroupLabelStyle.Render(gutter)
	default:
		gutter = theme.LabelColumnStyle.Render(gutter)
	}

	return gutter + "│" + m.renderBar(task, row, incoming[task.ID])
}

// renderBar draws the bar area of one row, with progress shading and a
// dependency marker when other tasks gate this one.
func (m Model) renderBar(task model.GanttTask, row gantt.Row, deps int) string {
	width := m.chartAreaWidth()

	if !row.HasBar {
		return ""
	}

	start := int(row.X) - m.offsetX
	barWidth := int(row.Width)
	if barWidth < 1 {
		barWidth = 1
	}

	// Clip to the visible window.
	visStart := start
	visWidth := barWidth
	if visStart < 0 {
		visWidth += visStart
		visStart = 0
	}
	if visStart >= width || visWidth <= 0 {
		return ""
	}
	if visStart+visWidth > width {
		visWidth = width - visStart
	}

	filled := int(task.Progress * float64(barWidth))
	bar := make([]rune, 0, visWidth)
	for x := 0; x < visWidth; x++ {
		// Position within the full bar decides the shading.
		if (visStart+x)-start < filled {
			bar = append(bar, '█')
		} else {
			bar = append(bar, '░')
		}
	}

	rendered := string(bar)
	if task.IsGroup {
		rendered = theme.GroupBarStyle.Render(rendered)
	} else {
		rendered = theme.BarStyle(task.Status).Render(rendered)
	}

	prefix := fmt.Sprintf("%*s", visStart, "")
	line := prefix + rendered
	if deps > 0 {
		line += theme.DependencyMarkerStyle.Render(fmt.Sprintf(" ‹%d", deps))
	}
	return line
}
