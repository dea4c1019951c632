// Package pipeline runs the load → validate → layout → render sequence
// shared by every ganttline entry point.
//
// # Stages
//
//  1. Load: read a task file (JSON, YAML or TOML) into a task forest
//  2. Validate: check the forest; strict mode fails on problems, the
//     default mode logs them and carries on
//  3. Layout: compute chart geometry for the view configuration
//  4. Render: produce SVG, PNG, PDF or JSON, concurrently per format
//
// Each stage can be run on its own. A [Runner] adds caching of layouts and
// artifacts on top.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "roadmap.yaml",
//	    View:    layout.ViewConfig{ViewMode: layout.ViewWeek},
//	    Formats: []string{"svg", "pdf"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ganttline/pkg/cache"
	"github.com/matzehuels/ganttline/pkg/errors"
	pkgio "github.com/matzehuels/ganttline/pkg/io"
	"github.com/matzehuels/ganttline/pkg/layout"
	"github.com/matzehuels/ganttline/pkg/render/styles"
	"github.com/matzehuels/ganttline/pkg/task"
	"github.com/matzehuels/ganttline/pkg/timeline"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Library Use
// =============================================================================

// Visualization types.
const (
	VizTypeGantt = "gantt"
	VizTypeTree  = "tree"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

const (
	// DefaultVizType is the default visualization type.
	DefaultVizType = VizTypeGantt

	// DefaultStyle is the default visual style.
	DefaultStyle = styles.NameSimple

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0
)

// Chart geometry defaults, re-exported so callers need only this package.
const (
	DefaultCellWidth     = layout.DefaultCellWidth
	DefaultCellHeight    = layout.DefaultCellHeight
	DefaultHeaderHeight  = layout.DefaultHeaderHeight
	DefaultTaskListWidth = layout.DefaultTaskListWidth
	DefaultViewMode      = layout.DefaultViewMode
	DefaultBuffer        = task.DefaultBuffer
)

// DefaultFormats are rendered when Options.Formats is empty.
var DefaultFormats = []string{FormatSVG}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeGantt: true,
	VizTypeTree:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Load options. Data, when set, is decoded with DataFormat instead of
	// reading Input.
	Input      string       `json:"input,omitempty"`
	Data       []byte       `json:"-"`
	DataFormat pkgio.Format `json:"data_format,omitempty"`

	// Strict makes Validate problems fatal.
	Strict bool `json:"strict,omitempty"`

	// Layout options
	View layout.ViewConfig `json:"view"`

	// Render options
	VizType      string   `json:"viz_type,omitempty"`
	Formats      []string `json:"formats,omitempty"`
	Style        string   `json:"style,omitempty"`
	HideTaskList bool     `json:"hide_task_list,omitempty"`
	HideProgress bool     `json:"hide_progress,omitempty"`
	Scale        float64  `json:"scale,omitempty"`
	Detailed     bool     `json:"detailed,omitempty"`     // tree: dates and fields in node labels
	VisibleOnly  bool     `json:"visible_only,omitempty"` // tree: hide collapsed subtrees

	// Refresh bypasses cached values but still stores new ones.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger      `json:"-"`
	Now    func() time.Time `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Forest is the loaded task forest.
	Forest task.Forest

	// ForestHash is the content hash used for layout cache keys.
	ForestHash string

	// Layout is the computed chart geometry.
	Layout layout.Layout

	// Problems holds Validate findings that were logged instead of failing
	// the run. Nil when the forest is clean.
	Problems error

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TaskCount  int
	RowCount   int
	Days       int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style name is known.
func ValidateStyle(style string) error {
	_, err := styles.ByName(style)
	return err
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidVizType, "invalid viz type: %q (must be one of: gantt, tree)", vizType)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that there is something to load.
func (o *Options) ValidateForLoad() error {
	o.setCommonDefaults()
	if len(o.Data) > 0 {
		if o.DataFormat == "" {
			o.DataFormat = pkgio.FormatJSON
		}
		return nil
	}
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input file is required")
	}
	return errors.ValidatePath(o.Input, pkgio.Extensions...)
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	o.setCommonDefaults()
	o.View = o.View.WithDefaults()
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return o.View.Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	o.setCommonDefaults()
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if len(o.Formats) == 0 {
		o.Formats = slices.Clone(DefaultFormats)
	}
	for i, f := range o.Formats {
		o.Formats[i] = strings.ToLower(strings.TrimSpace(f))
	}
	o.Formats = slices.Compact(o.Formats)
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

func (o *Options) setCommonDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// Keys returns the task file field names configured on the view.
func (o *Options) Keys() pkgio.Keys {
	return pkgio.Keys{ID: o.View.DataID, Start: o.View.StartKey, End: o.View.EndKey}
}

// IsTree reports whether the hierarchy diagram is requested.
func (o *Options) IsTree() bool {
	return o.VizType == VizTypeTree
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	v := o.View.WithDefaults()
	k := cache.LayoutKeyOpts{
		ViewMode:          string(v.ViewMode),
		CellWidth:         v.CellWidth,
		CellHeight:        v.CellHeight,
		HeaderHeight:      v.HeaderHeight,
		TaskListWidth:     v.TaskListWidth,
		Buffer:            v.BufferDays(),
		ShowTodayLine:     v.ShowTodayLine,
		HighlightWeekends: v.HighlightWeekends,
		ExpandAll:         v.ExpandAll,
		DateFormat:        v.DateFormat,
		Day:               timeline.FormatDate(o.now(), timeline.DefaultPattern),
	}
	if v.Range != nil {
		k.RangeStart = timeline.Encode(v.Range.Start)
		k.RangeEnd = timeline.Encode(v.Range.End)
	}
	return k
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:       format,
		Style:        o.Style,
		VizType:      o.VizType,
		HideTaskList: o.HideTaskList,
		HideProgress: o.HideProgress,
		Detailed:     o.Detailed,
		VisibleOnly:  o.VisibleOnly,
		Scale:        o.Scale,
	}
}

func (o *Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}
