package layout

import (
	"math"
	"time"

	"calgrid/internal/dateutil"
)

const (
	// DefaultHourHeight is the vertical pixel height of one hour in the
	// time grid.
	DefaultHourHeight = 50.0
	// minEventHeight keeps very short events tall enough to grab.
	minEventHeight = 20.0
	// SnapMinutes is the drag-delta snapping granularity.
	SnapMinutes = 30
)

// Metrics converts between vertical pixel offsets within a day column and
// clock times, at a fixed per-hour pixel height.
type Metrics struct {
	HourHeight float64
}

// NewMetrics returns Metrics with the given per-hour height, falling back to
// DefaultHourHeight for non-positive values.
func NewMetrics(hourHeight float64) Metrics {
	if hourHeight <= 0 || math.IsNaN(hourHeight) {
		hourHeight = DefaultHourHeight
	}
	return Metrics{HourHeight: hourHeight}
}

// OffsetToHour converts a vertical offset to a whole clock hour, clamped to
// 0..23. Used for click-to-create, which snaps to whole hours.
func (m Metrics) OffsetToHour(offsetPx float64) int {
	if math.IsNaN(offsetPx) || offsetPx < 0 {
		return 0
	}
	h := int(math.Floor(offsetPx / m.HourHeight))
	if h > 23 {
		h = 23
	}
	return h
}

// DeltaToMinutes converts a vertical pixel delta to minutes snapped to the
// nearest half hour. Used for drag move/resize deltas.
func (m Metrics) DeltaToMinutes(deltaPx float64) int {
	if math.IsNaN(deltaPx) {
		return 0
	}
	return int(math.Round(deltaPx/m.HourHeight*60/SnapMinutes)) * SnapMinutes
}

// TimeTop returns the pixel offset from the top of the day column for t.
func (m Metrics) TimeTop(t time.Time) float64 {
	return float64(dateutil.MinuteOfDay(t)) / 60 * m.HourHeight
}

// Box is a vertical pixel extent within a day column.
type Box struct {
	Top    float64
	Height float64
}

// EventBox returns the vertical extent for an interval, with a minimum
// rendered height so short events stay visible.
func (m Metrics) EventBox(start, end time.Time) Box {
	top := m.TimeTop(start)
	height := float64(dateutil.MinuteOfDay(end)-dateutil.MinuteOfDay(start)) / 60 * m.HourHeight
	if height < minEventHeight {
		height = minEventHeight
	}
	return Box{Top: top, Height: height}
}

// NowOffset returns the pixel offset of the current-time indicator.
func (m Metrics) NowOffset(now time.Time) float64 {
	return m.TimeTop(now)
}
