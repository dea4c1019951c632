package layout

import (
	"time"

	"github.com/matzehuels/ganttline/pkg/task"
	"github.com/matzehuels/ganttline/pkg/timeline"
)

// =============================================================================
// Layout - Chart Geometry
// =============================================================================

// Layout is the complete, renderer-independent geometry of a Gantt chart.
//
// The chart has a task list panel on the left (TaskListWidth wide) and the
// timeline to its right starting at ChartLeft. Columns and rows start below
// the header (HeaderHeight). All coordinates are absolute user units.
type Layout struct {
	ViewMode      ViewMode  `json:"view_mode"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	CellWidth     float64   `json:"cell_width"`
	DayWidth      float64   `json:"day_width"`
	CellHeight    float64   `json:"cell_height"`
	HeaderHeight  float64   `json:"header_height"`
	TaskListWidth float64   `json:"task_list_width"`
	ChartLeft     float64   `json:"chart_left"`

	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Columns []Column `json:"columns"`
	Days    []Day    `json:"days"`
	Rows    []Row    `json:"rows"`

	// TodayX is the x position of the today line; nil when the line is
	// disabled or today is outside the range.
	TodayX *float64 `json:"today_x,omitempty"`

	HighlightWeekends bool `json:"highlight_weekends,omitempty"`
}

// Column is one header cell: a day, an ISO week or a calendar month.
type Column struct {
	Start time.Time `json:"start"`
	Label string    `json:"label"`
	X     float64   `json:"x"`
	Width float64   `json:"width"`
	Days  int       `json:"days"`
	Today bool      `json:"today,omitempty"`
}

// Day is one calendar day of the timeline, used for grid lines and
// weekend shading regardless of view mode.
type Day struct {
	Date    time.Time `json:"date"`
	X       float64   `json:"x"`
	Width   float64   `json:"width"`
	Weekend bool      `json:"weekend,omitempty"`
	Today   bool      `json:"today,omitempty"`
}

// Row is one visible task line.
type Row struct {
	ID          task.ID   `json:"id"`
	Title       string    `json:"title"`
	Level       int       `json:"level"`
	HasChildren bool      `json:"has_children,omitempty"`
	Expanded    bool      `json:"expanded,omitempty"`
	Type        task.Type `json:"type,omitempty"`
	Color       string    `json:"color,omitempty"`
	Progress    *float64  `json:"progress,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Duration    int       `json:"duration"`
	Y           float64   `json:"y"`
	Height      float64   `json:"height"`
	Bar         Bar       `json:"bar"`
}

// Bar is the drawn shape of a task. Geometry is relative to the timeline
// start; X is absolute.
type Bar struct {
	Geometry
	X          float64 `json:"x"`
	Milestone  bool    `json:"milestone,omitempty"`
	Degenerate bool    `json:"degenerate,omitempty"`
}

// =============================================================================
// Build
// =============================================================================

// Build computes the layout of forest under cfg. now is the reference
// instant for the empty-forest range and the today marker. Build is a pure
// function of its arguments; cfg gets defaults applied first.
func Build(forest task.Forest, cfg ViewConfig, now time.Time) Layout {
	cfg = cfg.WithDefaults()

	span := resolveSpan(forest, cfg, now)
	dayW := cfg.DayWidth()

	l := Layout{
		ViewMode:          cfg.ViewMode,
		Start:             span.Start,
		End:               span.End,
		CellWidth:         cfg.CellWidth,
		DayWidth:          dayW,
		CellHeight:        cfg.CellHeight,
		HeaderHeight:      cfg.HeaderHeight,
		TaskListWidth:     cfg.TaskListWidth,
		ChartLeft:         cfg.TaskListWidth,
		HighlightWeekends: cfg.HighlightWeekends,
	}

	days := timeline.RangeBetween(span.Start, span.End)
	l.Days = buildDays(days, l.ChartLeft, dayW, now)
	l.Columns = buildColumns(days, cfg, l.ChartLeft, dayW, now)

	if cfg.ExpandAll {
		forest = task.ExpandAll(forest)
	}
	l.Rows = buildRows(task.Flatten(forest), span.Start, cfg, l.ChartLeft, dayW)

	l.Width = l.ChartLeft + float64(len(days))*dayW
	l.Height = cfg.HeaderHeight + float64(len(l.Rows))*cfg.CellHeight

	if cfg.ShowTodayLine {
		today := timeline.StartOfDay(now.In(span.Start.Location()))
		if len(days) > 0 && span.Contains(today) {
			x := l.ChartLeft + float64(timeline.DaysBetween(span.Start, today))*dayW + dayW/2
			l.TodayX = &x
		}
	}
	return l
}

func resolveSpan(forest task.Forest, cfg ViewConfig, now time.Time) task.Span {
	if cfg.Range != nil && timeline.Valid(cfg.Range.Start) && timeline.Valid(cfg.Range.End) {
		return cfg.Range.Truncate()
	}
	return task.OverallRangeAt(forest, cfg.BufferDays(), now).Truncate()
}

func buildDays(days []time.Time, left, dayW float64, now time.Time) []Day {
	out := make([]Day, len(days))
	for i, d := range days {
		out[i] = Day{
			Date:    d,
			X:       left + float64(i)*dayW,
			Width:   dayW,
			Weekend: timeline.IsWeekend(d),
			Today:   timeline.IsSameDay(d, now),
		}
	}
	return out
}

// buildColumns groups consecutive days into header buckets. The first and
// last buckets may be partial when the range does not start on a bucket
// boundary.
func buildColumns(days []time.Time, cfg ViewConfig, left, dayW float64, now time.Time) []Column {
	format := cfg.Formatter()
	var cols []Column
	var key time.Time
	for i, d := range days {
		k := bucket(d, cfg.ViewMode)
		if len(cols) == 0 || !k.Equal(key) {
			key = k
			cols = append(cols, Column{
				Start: d,
				Label: format(d),
				X:     left + float64(i)*dayW,
			})
		}
		c := &cols[len(cols)-1]
		c.Days++
		c.Width += dayW
		if timeline.IsSameDay(d, now) {
			c.Today = true
		}
	}
	return cols
}

func bucket(d time.Time, mode ViewMode) time.Time {
	switch mode {
	case ViewWeek:
		return timeline.StartOfWeek(d)
	case ViewMonth:
		return timeline.StartOfMonth(d)
	default:
		return d
	}
}

func buildRows(flat []task.Row, start time.Time, cfg ViewConfig, left, dayW float64) []Row {
	rows := make([]Row, len(flat))
	for i := range flat {
		fr := &flat[i]
		geo := Position(&fr.Item, start, dayW)

		bar := Bar{Geometry: geo, X: left + geo.Left, Degenerate: geo.Degenerate()}
		if fr.IsMilestone() {
			bar.Milestone = true
			bar.Width = dayW
			bar.Degenerate = false
		}

		rows[i] = Row{
			ID:          fr.ID,
			Title:       fr.Title,
			Level:       fr.Level,
			HasChildren: fr.HasChildren,
			Expanded:    fr.HasChildren && fr.IsExpanded(),
			Type:        fr.Type,
			Color:       fr.Color,
			Progress:    fr.Progress,
			Start:       fr.Start,
			End:         fr.End,
			Duration:    fr.Duration(),
			Y:           cfg.HeaderHeight + float64(i)*cfg.CellHeight,
			Height:      cfg.CellHeight,
			Bar:         bar,
		}
	}
	return rows
}
