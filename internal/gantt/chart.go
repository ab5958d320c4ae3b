// Package gantt prepares flat task lists for chart rendering: it
// normalizes raw API records, extracts dependency edges, orders tasks
// into a presentation hierarchy, computes the covering date range, and
// lays everything out in chart coordinates for a zoom level.
//
// Every stage is a pure function of its inputs. The pipeline never
// returns errors: absent or malformed input degrades to empty outputs
// and a nil layout.
package gantt

import "github.com/tdao/ganttboard/internal/model"

// Chart bundles everything the rendering layer needs for one draw pass.
// Tasks are in render order; Layout is nil when there is nothing to draw.
type Chart struct {
	Tasks        []model.GanttTask
	Dependencies []Dependency
	Range        DateRange
	Layout       *Layout
}

// BuildChart runs the full preparation pipeline over raw API records.
// It is recomputed from scratch on every fetch or zoom change; the
// result is a value, not shared state.
func BuildChart(raw []model.RawTask, zoom Zoom, cfg Config) Chart {
	tasks := SortTasks(Normalize(raw))
	rng := CalculateDateRange(tasks)
	return Chart{
		Tasks:        tasks,
		Dependencies: ExtractDependencies(tasks),
		Range:        rng,
		Layout:       CalculateLayout(tasks, rng, zoom, cfg),
	}
}

// IncomingDeps counts connector edges terminating at each task id.
// The chart view uses this for per-row dependency markers.
func (c Chart) IncomingDeps() map[string]int {
	if len(c.Dependencies) == 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, d := range c.Dependencies {
		counts[d.To]++
	}
	return counts
}
