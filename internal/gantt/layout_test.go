package gantt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdao/ganttboard/internal/model"
)

// flatConfig has no padding or row gaps so geometry is easy to assert.
func flatConfig() Config {
	return Config{PixelsPerUnit: 10, RowHeight: 2}
}

func TestCalculateLayout_EmptyReturnsNil(t *testing.T) {
	rng := DateRange{Start: date(2024, 1, 1), End: date(2024, 1, 31)}
	assert.Nil(t, CalculateLayout(nil, rng, ZoomDay, flatConfig()))
}

func TestCalculateLayout_RowGeometry(t *testing.T) {
	tasks := []model.GanttTask{
		{ID: "T1", Start: datePtr(2024, 1, 1), End: datePtr(2024, 1, 4)},
		{ID: "T2", Start: datePtr(2024, 1, 3), End: datePtr(2024, 1, 3)},
		{ID: "T3"},
	}
	rng := DateRange{Start: date(2024, 1, 1), End: date(2024, 1, 11)}

	l := CalculateLayout(tasks, rng, ZoomDay, flatConfig())
	require.NotNil(t, l)
	require.Len(t, l.Rows, 3)

	// 10px per day at day zoom.
	assert.InDelta(t, 10.0, l.PxPerDay, 1e-9)
	assert.InDelta(t, 0.0, l.Rows[0].X, 1e-9)
	assert.InDelta(t, 30.0, l.Rows[0].Width, 1e-9)

	// Two days in, zero span widened to one day.
	assert.InDelta(t, 20.0, l.Rows[1].X, 1e-9)
	assert.InDelta(t, 10.0, l.Rows[1].Width, 1e-9)

	// Dateless task keeps its slot but draws nothing.
	assert.False(t, l.Rows[2].HasBar)

	// Sequential y offsets, index follows insertion order.
	assert.Equal(t, 0, l.Rows[0].Y)
	assert.Equal(t, 2, l.Rows[1].Y)
	assert.Equal(t, 4, l.Rows[2].Y)
	assert.Equal(t, map[string]int{"T1": 0, "T2": 1, "T3": 2}, l.Index)

	assert.InDelta(t, 100.0, l.Width, 1e-9)
	assert.Equal(t, 6, l.Height)
}

func TestCalculateLayout_HeightScalesWithRowCount(t *testing.T) {
	rng := DateRange{Start: date(2024, 1, 1), End: date(2024, 1, 31)}
	cfg := Config{PixelsPerUnit: 8, RowHeight: 3}

	for n := 1; n <= 5; n++ {
		tasks := make([]model.GanttTask, n)
		for i := range tasks {
			tasks[i] = model.GanttTask{ID: string(rune('A' + i))}
		}
		l := CalculateLayout(tasks, rng, ZoomWeek, cfg)
		require.NotNil(t, l)
		assert.Equal(t, n*cfg.RowHeight, l.Height, "n=%d", n)
	}
}

func TestCalculateLayout_ZoomScales(t *testing.T) {
	tests := []struct {
		zoom     Zoom
		pxPerDay float64
	}{
		{ZoomDay, 14},
		{ZoomWeek, 2},
		{ZoomMonth, 14.0 / 30},
	}

	tasks := []model.GanttTask{{ID: "T1"}}
	rng := DateRange{Start: date(2024, 1, 1), End: date(2024, 1, 31)}

	for _, tt := range tests {
		t.Run(tt.zoom.String(), func(t *testing.T) {
			l := CalculateLayout(tasks, rng, tt.zoom, Config{PixelsPerUnit: 14, RowHeight: 1})
			require.NotNil(t, l)
			assert.InDelta(t, tt.pxPerDay, l.PxPerDay, 1e-9)
		})
	}
}

func TestCalculateLayout_RowGap(t *testing.T) {
	tasks := []model.GanttTask{{ID: "A"}, {ID: "B"}, {ID: "C"}}
	rng := DateRange{Start: date(2024, 1, 1), End: date(2024, 1, 11)}
	cfg := Config{PixelsPerUnit: 10, RowHeight: 2, MinRowGap: 1}

	l := CalculateLayout(tasks, rng, ZoomDay, cfg)
	require.NotNil(t, l)
	assert.Equal(t, 0, l.Rows[0].Y)
	assert.Equal(t, 3, l.Rows[1].Y)
	assert.Equal(t, 6, l.Rows[2].Y)
	assert.Equal(t, 3*2+2*1, l.Height)
}

func TestCalculateLayout_PadDaysWidenRange(t *testing.T) {
	tasks := []model.GanttTask{
		{ID: "T1", Start: datePtr(2024, 1, 10), End: datePtr(2024, 1, 12)},
	}
	rng := DateRange{Start: date(2024, 1, 10), End: date(2024, 1, 12)}
	cfg := Config{PixelsPerUnit: 10, RowHeight: 1, PadDays: 2}

	l := CalculateLayout(tasks, rng, ZoomDay, cfg)
	require.NotNil(t, l)
	assert.True(t, l.Range.Start.Equal(date(2024, 1, 8)))
	assert.True(t, l.Range.End.Equal(date(2024, 1, 14)))

	// Bar shifts right by the leading pad.
	assert.InDelta(t, 20.0, l.Rows[0].X, 1e-9)
}

func TestZoom_RoundTrip(t *testing.T) {
	for _, z := range []Zoom{ZoomDay, ZoomWeek, ZoomMonth} {
		assert.Equal(t, z, ParseZoom(z.String()))
	}
	assert.Equal(t, ZoomWeek, ParseZoom("bogus"))
}

func TestZoom_UnitDays(t *testing.T) {
	assert.Equal(t, 1.0, ZoomDay.UnitDays())
	assert.Equal(t, 7.0, ZoomWeek.UnitDays())
	assert.Equal(t, 30.0, ZoomMonth.UnitDays())
}
