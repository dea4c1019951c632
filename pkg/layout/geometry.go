package layout

import (
	"time"

	"github.com/matzehuels/ganttline/pkg/task"
	"github.com/matzehuels/ganttline/pkg/timeline"
)

// Geometry is the horizontal placement of a task bar on the timeline, in
// the same units as the cell width.
type Geometry struct {
	Left  float64 `json:"left"`
	Width float64 `json:"width"`
}

// Right returns Left + Width.
func (g Geometry) Right() float64 { return g.Left + g.Width }

// Degenerate reports whether the bar has no positive width, which happens
// for inverted ranges and invalid dates.
func (g Geometry) Degenerate() bool { return g.Width <= 0 }

// Position places it against a timeline that begins at timelineStart:
//
//	Left  = DaysBetween(timelineStart, it.Start) * cellWidth
//	Width = Duration(it.Start, it.End) * cellWidth
//
// A task starting before the timeline gets a negative Left; nothing is
// clamped. A non-positive duration gives a non-positive Width, which
// renderers draw as zero-width.
func Position(it *task.Item, timelineStart time.Time, cellWidth float64) Geometry {
	return Geometry{
		Left:  float64(timeline.DaysBetween(timelineStart, it.Start)) * cellWidth,
		Width: float64(it.Duration()) * cellWidth,
	}
}
