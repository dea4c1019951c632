package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/matzehuels/ganttline/pkg/cache"
	gerrors "github.com/matzehuels/ganttline/pkg/errors"
	"github.com/matzehuels/ganttline/pkg/layout"
	"github.com/matzehuels/ganttline/pkg/pipeline"
	"github.com/matzehuels/ganttline/pkg/task"
	"github.com/matzehuels/ganttline/pkg/timeline"
)

// =============================================================================
// Config File
// =============================================================================

// Config is the on-disk configuration. Every field is optional.
//
//	strict = false
//
//	[view]
//	view_mode = "week"
//	cell_width = 48
//	buffer = 3
//	show_today_line = true
//	date_format = "MMM D"
//
//	[range]
//	from = "2025-01-01"
//	to = "2025-03-31"
//
//	[render]
//	formats = ["svg", "png"]
//	style = "dark"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
type Config struct {
	Strict bool              `toml:"strict"`
	View   layout.ViewConfig `toml:"view"`
	Range  RangeConfig       `toml:"range"`
	Render RenderConfig      `toml:"render"`
	Cache  cache.Config      `toml:"cache"`
}

// RangeConfig pins the chart to fixed dates. Both ends must be set.
type RangeConfig struct {
	From string `toml:"from"`
	To   string `toml:"to"`
}

// RenderConfig holds render defaults.
type RenderConfig struct {
	VizType      string   `toml:"type"`
	Formats      []string `toml:"formats"`
	Style        string   `toml:"style"`
	HideTaskList bool     `toml:"hide_task_list"`
	HideProgress bool     `toml:"hide_progress"`
	Scale        float64  `toml:"scale"`
}

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing default file yields the zero Config; a missing
// explicit file is an error.
func (c *CLI) loadConfig() (Config, error) {
	var cfg Config

	path, explicit := c.ConfigPath, c.ConfigPath != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		c.Logger.Warn("unknown config keys", "file", path, "keys", strings.Join(keys, ", "))
	}
	c.Logger.Debug("loaded config", "file", path)
	return cfg, nil
}

// options turns the file values into pipeline options.
func (cfg Config) options() (pipeline.Options, error) {
	opts := pipeline.Options{
		Strict:       cfg.Strict,
		View:         cfg.View,
		VizType:      cfg.Render.VizType,
		Formats:      cfg.Render.Formats,
		Style:        cfg.Render.Style,
		HideTaskList: cfg.Render.HideTaskList,
		HideProgress: cfg.Render.HideProgress,
		Scale:        cfg.Render.Scale,
	}
	span, err := parseRange(cfg.Range.From, cfg.Range.To)
	if err != nil {
		return opts, fmt.Errorf("config range: %w", err)
	}
	opts.View.Range = span
	return opts, nil
}

// parseRange parses a from/to pair. Two empty strings mean no range.
func parseRange(from, to string) (*task.Span, error) {
	if from == "" && to == "" {
		return nil, nil
	}
	if from == "" || to == "" {
		return nil, gerrors.New(gerrors.ErrCodeInvalidInput, "date range needs both a start and an end")
	}
	start, end := timeline.Parse(from), timeline.Parse(to)
	if !timeline.Valid(start) {
		return nil, gerrors.New(gerrors.ErrCodeInvalidDate, "invalid start date %q", from)
	}
	if !timeline.Valid(end) {
		return nil, gerrors.New(gerrors.ErrCodeInvalidDate, "invalid end date %q", to)
	}
	if end.Before(start) {
		return nil, gerrors.New(gerrors.ErrCodeInvertedRange, "date range ends before it starts")
	}
	return &task.Span{Start: start, End: end}, nil
}

// =============================================================================
// View Flags
// =============================================================================

// viewFlags are the layout flags shared by every command that builds a
// chart. Only flags the user actually set override the config file.
type viewFlags struct {
	viewMode      string
	cellWidth     float64
	cellHeight    float64
	headerHeight  float64
	taskListWidth float64
	buffer        int
	today         bool
	weekends      bool
	expandAll     bool
	dateFormat    string
	from          string
	to            string
	idKey         string
	startKey      string
	endKey        string
	strict        bool
}

func (f *viewFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.viewMode, "view", string(pipeline.DefaultViewMode), "view mode: day, week, month")
	fs.Float64Var(&f.cellWidth, "cell-width", pipeline.DefaultCellWidth, "width of one header cell")
	fs.Float64Var(&f.cellHeight, "cell-height", pipeline.DefaultCellHeight, "height of one task row")
	fs.Float64Var(&f.headerHeight, "header-height", pipeline.DefaultHeaderHeight, "height of the date header")
	fs.Float64Var(&f.taskListWidth, "task-list-width", pipeline.DefaultTaskListWidth, "width of the task name panel")
	fs.IntVar(&f.buffer, "buffer", pipeline.DefaultBuffer, "days of padding around the task range")
	fs.BoolVar(&f.today, "today", false, "draw a line at today's date")
	fs.BoolVar(&f.weekends, "weekends", false, "shade weekend days")
	fs.BoolVar(&f.expandAll, "expand-all", false, "show collapsed subtrees")
	fs.StringVar(&f.dateFormat, "date-format", "", `header date pattern ("MMM D", "%d.%m.")`)
	fs.StringVar(&f.from, "from", "", "pin the chart start date (needs --to)")
	fs.StringVar(&f.to, "to", "", "pin the chart end date (needs --from)")
	fs.StringVar(&f.idKey, "id-key", "", "task field holding the id (default: id)")
	fs.StringVar(&f.startKey, "start-key", "", "task field holding the start date (default: startDate)")
	fs.StringVar(&f.endKey, "end-key", "", "task field holding the end date (default: endDate)")
	fs.BoolVar(&f.strict, "strict", false, "fail on duplicate ids, invalid dates and cycles")
}

// apply copies the flags the user set onto opts.
func (f *viewFlags) apply(fs *pflag.FlagSet, opts *pipeline.Options) error {
	v := &opts.View
	if fs.Changed("view") {
		v.ViewMode = layout.ViewMode(strings.ToLower(f.viewMode))
	}
	if fs.Changed("cell-width") {
		v.CellWidth = f.cellWidth
	}
	if fs.Changed("cell-height") {
		v.CellHeight = f.cellHeight
	}
	if fs.Changed("header-height") {
		v.HeaderHeight = f.headerHeight
	}
	if fs.Changed("task-list-width") {
		v.TaskListWidth = f.taskListWidth
	}
	if fs.Changed("buffer") {
		b := f.buffer
		v.Buffer = &b
	}
	if fs.Changed("today") {
		v.ShowTodayLine = f.today
	}
	if fs.Changed("weekends") {
		v.HighlightWeekends = f.weekends
	}
	if fs.Changed("expand-all") {
		v.ExpandAll = f.expandAll
	}
	if fs.Changed("date-format") {
		v.DateFormat = f.dateFormat
	}
	if fs.Changed("id-key") {
		v.DataID = f.idKey
	}
	if fs.Changed("start-key") {
		v.StartKey = f.startKey
	}
	if fs.Changed("end-key") {
		v.EndKey = f.endKey
	}
	if fs.Changed("strict") {
		opts.Strict = f.strict
	}
	if fs.Changed("from") || fs.Changed("to") {
		span, err := parseRange(f.from, f.to)
		if err != nil {
			return err
		}
		v.Range = span
	}
	return nil
}

// chartOptions merges config file values and flags into pipeline options.
func (c *CLI) chartOptions(fs *pflag.FlagSet, flags *viewFlags) (pipeline.Options, Config, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return pipeline.Options{}, cfg, err
	}
	opts, err := cfg.options()
	if err != nil {
		return opts, cfg, err
	}
	if err := flags.apply(fs, &opts); err != nil {
		return opts, cfg, err
	}
	opts.Logger = c.Logger
	return opts, cfg, nil
}

// statFile reports a readable input file with a friendly error.
func statFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return gerrors.New(gerrors.ErrCodeFileNotFound, "no such file: %s", path)
		}
		return err
	}
	return nil
}
