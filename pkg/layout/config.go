package layout

import (
	"github.com/matzehuels/ganttline/pkg/errors"
	"github.com/matzehuels/ganttline/pkg/task"
	"github.com/matzehuels/ganttline/pkg/timeline"
)

// =============================================================================
// View Modes
// =============================================================================

// ViewMode selects the header granularity of a chart.
type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

// ViewModes lists the supported modes in display order.
var ViewModes = []ViewMode{ViewDay, ViewWeek, ViewMonth}

// DaysPerCell is how many days one CellWidth spans in the mode.
// Month cells are normalized to 30 days; real month columns are as wide as
// the days they contain.
func (m ViewMode) DaysPerCell() int {
	switch m {
	case ViewWeek:
		return 7
	case ViewMonth:
		return 30
	default:
		return 1
	}
}

// Valid reports whether m is a known mode.
func (m ViewMode) Valid() bool {
	for _, v := range ViewModes {
		if m == v {
			return true
		}
	}
	return false
}

// =============================================================================
// ViewConfig
// =============================================================================

// Defaults for [ViewConfig] fields left at their zero value.
const (
	DefaultCellWidth     = 40.0
	DefaultCellHeight    = 36.0
	DefaultHeaderHeight  = 50.0
	DefaultTaskListWidth = 240.0
	DefaultViewMode      = ViewDay
)

// ViewConfig holds the display parameters of a chart.
//
// The zero value is usable after [ViewConfig.WithDefaults]. Buffer is a
// pointer so that an explicit 0 can be told apart from "unset" (7 days).
type ViewConfig struct {
	// Field-name overrides for task files (see pkg/io).
	DataID   string `json:"data_id,omitempty" toml:"data_id"`
	StartKey string `json:"start_key,omitempty" toml:"start_key"`
	EndKey   string `json:"end_key,omitempty" toml:"end_key"`

	CellWidth     float64  `json:"cell_width,omitempty" toml:"cell_width"`
	CellHeight    float64  `json:"cell_height,omitempty" toml:"cell_height"`
	HeaderHeight  float64  `json:"header_height,omitempty" toml:"header_height"`
	TaskListWidth float64  `json:"task_list_width,omitempty" toml:"task_list_width"`
	ViewMode      ViewMode `json:"view_mode,omitempty" toml:"view_mode"`
	Buffer        *int     `json:"buffer,omitempty" toml:"buffer"`

	ShowTodayLine     bool `json:"show_today_line,omitempty" toml:"show_today_line"`
	HighlightWeekends bool `json:"highlight_weekends,omitempty" toml:"highlight_weekends"`
	ExpandAll         bool `json:"expand_all,omitempty" toml:"expand_all"`

	// DateFormat is a pattern for header labels (see timeline.FormatDate).
	// DateFormatter, when set, takes precedence over it.
	DateFormat    string             `json:"date_format,omitempty" toml:"date_format"`
	DateFormatter timeline.Formatter `json:"-" toml:"-"`

	// Range pins the visible date range instead of deriving it from the
	// tasks.
	Range *task.Span `json:"range,omitempty" toml:"-"`
}

// WithDefaults returns a copy of c with zero-valued fields filled in.
func (c ViewConfig) WithDefaults() ViewConfig {
	if c.CellWidth == 0 {
		c.CellWidth = DefaultCellWidth
	}
	if c.CellHeight == 0 {
		c.CellHeight = DefaultCellHeight
	}
	if c.HeaderHeight == 0 {
		c.HeaderHeight = DefaultHeaderHeight
	}
	if c.TaskListWidth == 0 {
		c.TaskListWidth = DefaultTaskListWidth
	}
	if c.ViewMode == "" {
		c.ViewMode = DefaultViewMode
	}
	if c.Buffer == nil {
		b := task.DefaultBuffer
		c.Buffer = &b
	}
	return c
}

// Validate rejects negative sizes, negative buffers and unknown view modes.
// It is meant to run after [ViewConfig.WithDefaults].
func (c ViewConfig) Validate() error {
	if c.CellWidth < 0 || c.CellHeight < 0 || c.HeaderHeight < 0 || c.TaskListWidth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cell and panel sizes must not be negative")
	}
	if c.Buffer != nil && *c.Buffer < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "buffer must not be negative, got %d", *c.Buffer)
	}
	if c.ViewMode != "" && !c.ViewMode.Valid() {
		return errors.New(errors.ErrCodeInvalidViewMode, "unknown view mode %q (want day, week or month)", c.ViewMode)
	}
	if c.Range != nil && timeline.Valid(c.Range.Start) && timeline.Valid(c.Range.End) && c.Range.End.Before(c.Range.Start) {
		return errors.New(errors.ErrCodeInvertedRange, "date range ends before it starts")
	}
	return nil
}

// BufferDays returns the configured buffer, or [task.DefaultBuffer].
func (c ViewConfig) BufferDays() int {
	if c.Buffer == nil {
		return task.DefaultBuffer
	}
	return *c.Buffer
}

// DayWidth is the horizontal size of one day in the configured mode.
func (c ViewConfig) DayWidth() float64 {
	mode := c.ViewMode
	if mode == "" {
		mode = DefaultViewMode
	}
	return c.CellWidth / float64(mode.DaysPerCell())
}

// Formatter returns the header label formatter: DateFormatter if set,
// otherwise DateFormat, otherwise the mode's default pattern.
func (c ViewConfig) Formatter() timeline.Formatter {
	if c.DateFormatter != nil {
		return c.DateFormatter
	}
	if c.DateFormat != "" {
		return timeline.PatternFormatter(c.DateFormat)
	}
	switch c.ViewMode {
	case ViewWeek:
		return timeline.PatternFormatter("MMM D")
	case ViewMonth:
		return timeline.PatternFormatter("MMM YYYY")
	default:
		return timeline.PatternFormatter("D")
	}
}
