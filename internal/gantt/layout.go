package gantt

import (
	"time"

	"github.com/tdao/ganttboard/internal/model"
)

// Zoom selects the horizontal time granularity of the chart.
type Zoom int

const (
	ZoomDay Zoom = iota
	ZoomWeek
	ZoomMonth
)

// String returns the zoom level's config/display name.
func (z Zoom) String() string {
	switch z {
	case ZoomWeek:
		return "week"
	case ZoomMonth:
		return "month"
	default:
		return "day"
	}
}

// ParseZoom maps a config string onto a Zoom, defaulting to week.
func ParseZoom(s string) Zoom {
	switch s {
	case "day":
		return ZoomDay
	case "month":
		return ZoomMonth
	default:
		return ZoomWeek
	}
}

// UnitDays returns how many days one zoom unit covers. Month uses a
// flat 30-day unit: this is a presentation scale, not calendar math.
func (z Zoom) UnitDays() float64 {
	switch z {
	case ZoomWeek:
		return 7
	case ZoomMonth:
		return 30
	default:
		return 1
	}
}

// Config controls the geometry of a computed layout.
type Config struct {
	// PixelsPerUnit is the width of one zoom unit.
	PixelsPerUnit float64

	// RowHeight is the height of one task row.
	RowHeight int

	// MinRowGap is extra spacing inserted between consecutive rows.
	MinRowGap int

	// PadDays widens the visible range by this many days on each side.
	PadDays int
}

// DefaultConfig returns the geometry used when the caller passes a zero
// or partial Config.
func DefaultConfig() Config {
	return Config{
		PixelsPerUnit: 8,
		RowHeight:     1,
		MinRowGap:     0,
		PadDays:       1,
	}
}

// Row is the computed geometry for one task.
type Row struct {
	TaskID  string
	Y       int
	X       float64
	Width   float64
	IsGroup bool

	// HasBar is false when the task carried no dates; the row still
	// occupies a slot but draws no bar.
	HasBar bool
}

// Layout maps sorted tasks and a date range onto chart coordinates for
// one zoom level. Rows follow the sorted task order; Index resolves a
// task id to its position in Rows.
type Layout struct {
	Rows     []Row
	Index    map[string]int
	Range    DateRange
	PxPerDay float64
	Width    float64
	Height   int
}

// CalculateLayout maps tasks and the covering date range into chart
// coordinates for the given zoom level. Returns nil when tasks is
// empty; the caller treats a nil layout as "nothing to render", not an
// error. Bars are never narrower than one day so they stay visible.
func CalculateLayout(tasks []model.GanttTask, rng DateRange, zoom Zoom, cfg Config) *Layout {
	if len(tasks) == 0 {
		return nil
	}

	def := DefaultConfig()
	if cfg.PixelsPerUnit <= 0 {
		cfg.PixelsPerUnit = def.PixelsPerUnit
	}
	if cfg.RowHeight <= 0 {
		cfg.RowHeight = def.RowHeight
	}
	if cfg.MinRowGap < 0 {
		cfg.MinRowGap = 0
	}

	if cfg.PadDays > 0 {
		rng.Start = rng.Start.AddDate(0, 0, -cfg.PadDays)
		rng.End = rng.End.AddDate(0, 0, cfg.PadDays)
	}

	pxPerDay := cfg.PixelsPerUnit / zoom.UnitDays()

	l := &Layout{
		Rows:     make([]Row, 0, len(tasks)),
		Index:    make(map[string]int, len(tasks)),
		Range:    rng,
		PxPerDay: pxPerDay,
	}

	for i, t := range tasks {
		row := Row{
			TaskID:  t.ID,
			Y:       i * (cfg.RowHeight + cfg.MinRowGap),
			IsGroup: t.IsGroup,
		}
		if t.HasDates() {
			row.HasBar = true
			row.X = daysBetween(rng.Start, *t.Start) * pxPerDay
			span := daysBetween(*t.Start, *t.End)
			if span < 1 {
				span = 1
			}
			row.Width = span * pxPerDay
		}
		l.Index[t.ID] = i
		l.Rows = append(l.Rows, row)
	}

	l.Width = rng.Days() * pxPerDay
	if l.Width < pxPerDay {
		l.Width = pxPerDay
	}

	n := len(tasks)
	l.Height = n*cfg.RowHeight + (n-1)*cfg.MinRowGap

	return l
}

// daysBetween returns the signed distance from a to b in fractional days.
func daysBetween(a, b time.Time) float64 {
	return b.Sub(a).Hours() / 24
}
