package gantt

import (
	"time"

	"github.com/tdao/ganttboard/internal/model"
)

// DefaultRangeDays is the sentinel window length used when no task in
// the set carries any date, so the chart never renders degenerate.
const DefaultRangeDays = 30

// DateRange is the smallest closed interval covering all task spans.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Days returns the span of the range in (fractional) days.
func (r DateRange) Days() float64 {
	return r.End.Sub(r.Start).Hours() / 24
}

// Contains reports whether t falls within the range, inclusive.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// CalculateDateRange reduces the task list to the min defined start and
// max defined end. Tasks without dates contribute nothing. When no task
// has any date the sentinel range today..today+30d is returned. The
// result is unpadded; any visual margin belongs to the layout engine.
func CalculateDateRange(tasks []model.GanttTask) DateRange {
	var start, end *time.Time
	for _, t := range tasks {
		if t.Start != nil && (start == nil || t.Start.Before(*start)) {
			start = t.Start
		}
		if t.End != nil && (end == nil || t.End.After(*end)) {
			end = t.End
		}
	}

	if start == nil || end == nil {
		today := time.Now().Truncate(24 * time.Hour)
		return DateRange{
			Start: today,
			End:   today.AddDate(0, 0, DefaultRangeDays),
		}
	}

	return DateRange{Start: *start, End: *end}
}
