package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	gerrors "github.com/matzehuels/ganttline/pkg/errors"
	"github.com/matzehuels/ganttline/pkg/pipeline"
	"github.com/matzehuels/ganttline/pkg/task"
	"github.com/matzehuels/ganttline/pkg/timeline"
)

// inspectCommand groups read-only queries over a task forest.
func (c *CLI) inspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Query a task file: visible rows, lookups, ranges and durations",
	}

	cmd.AddCommand(c.inspectFlattenCommand())
	cmd.AddCommand(c.inspectFindCommand())
	cmd.AddCommand(c.inspectRangeCommand())
	cmd.AddCommand(c.inspectCheckCommand())
	cmd.AddCommand(inspectDurationCommand())
	cmd.AddCommand(inspectDaysCommand())

	return cmd
}

// keyFlags override the task file field names.
type keyFlags struct {
	id, start, end string
}

func (f *keyFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.id, "id-key", "", "task field holding the id (default: id)")
	cmd.Flags().StringVar(&f.start, "start-key", "", "task field holding the start date (default: startDate)")
	cmd.Flags().StringVar(&f.end, "end-key", "", "task field holding the end date (default: endDate)")
}

// loadForest reads a task file with config and flag field names applied.
func (c *CLI) loadForest(ctx context.Context, path string, keys keyFlags) (task.Forest, pipeline.Options, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, pipeline.Options{}, err
	}
	opts, err := cfg.options()
	if err != nil {
		return nil, opts, err
	}
	if keys.id != "" {
		opts.View.DataID = keys.id
	}
	if keys.start != "" {
		opts.View.StartKey = keys.start
	}
	if keys.end != "" {
		opts.View.EndKey = keys.end
	}
	opts.Input = path
	opts.Logger = c.Logger
	if err := statFile(path); err != nil {
		return nil, opts, err
	}
	forest, err := pipeline.Load(ctx, opts)
	if err != nil {
		return nil, opts, err
	}
	return forest, opts, nil
}

func (c *CLI) inspectFlattenCommand() *cobra.Command {
	var (
		keys      keyFlags
		expandAll bool
		format    string
	)
	cmd := &cobra.Command{
		Use:   "flatten [tasks.yaml]",
		Short: "List the rows a chart would show, in display order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			forest, opts, err := c.loadForest(cmd.Context(), args[0], keys)
			if err != nil {
				return err
			}
			if expandAll {
				forest = task.ExpandAll(forest)
			}
			pattern := format
			if pattern == "" {
				pattern = opts.View.DateFormat
			}
			rows := task.Flatten(forest)
			printTable(
				[]string{"#", "ID", "Task", "Start", "End", "Days", "Progress"},
				flattenRows(rows, pattern),
			)
			printDetail("%s of %s", plural(len(rows), "row"), plural(task.Count(forest), "task"))
			return nil
		},
	}
	keys.register(cmd)
	cmd.Flags().BoolVar(&expandAll, "expand-all", false, "show collapsed subtrees")
	cmd.Flags().StringVar(&format, "date-format", "", "date pattern (default: YYYY-MM-DD)")
	return cmd
}

// flattenRows renders display rows as table cells. Titles are indented by
// level and carry a marker for expandable tasks.
func flattenRows(rows []task.Row, pattern string) [][]string {
	if pattern == "" {
		pattern = timeline.DefaultPattern
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		marker := "  "
		if r.HasChildren {
			marker = "▾ "
			if !r.IsExpanded() {
				marker = "▸ "
			}
		}
		if r.IsMilestone() {
			marker = "◆ "
		}
		progress := ""
		if r.Progress != nil {
			progress = strconv.FormatFloat(*r.Progress, 'f', -1, 64) + "%"
		}
		out[i] = []string{
			strconv.Itoa(i + 1),
			string(r.ID),
			strings.Repeat("  ", r.Level) + marker + r.Title,
			timeline.FormatDate(r.Start, pattern),
			timeline.FormatDate(r.End, pattern),
			strconv.Itoa(r.Duration()),
			progress,
		}
	}
	return out
}

func (c *CLI) inspectFindCommand() *cobra.Command {
	var keys keyFlags
	cmd := &cobra.Command{
		Use:   "find [tasks.yaml] [id]",
		Short: "Show a task by id, including collapsed ones",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			forest, _, err := c.loadForest(cmd.Context(), args[0], keys)
			if err != nil {
				return err
			}
			id := task.ID(args[1])
			it, ok := task.FindByID(forest, id)
			if !ok {
				return gerrors.New(gerrors.ErrCodeTaskNotFound, "no task with id %q", id)
			}
			printTask(it, task.Path(forest, id))
			return nil
		},
	}
	keys.register(cmd)
	return cmd
}

func printTask(it *task.Item, path []*task.Item) {
	printKeyValue("ID", string(it.ID))
	printKeyValue("Title", it.Title)
	if it.Type != "" {
		printKeyValue("Type", string(it.Type))
	}
	printKeyValue("Start", timeline.FormatDate(it.Start, timeline.DefaultPattern))
	printKeyValue("End", timeline.FormatDate(it.End, timeline.DefaultPattern))
	printKeyValue("Days", strconv.Itoa(it.Duration()))
	if it.Progress != nil {
		printKeyValue("Progress", strconv.FormatFloat(*it.Progress, 'f', -1, 64)+"%")
	}
	if it.HasChildren() {
		state := "expanded"
		if !it.IsExpanded() {
			state = "collapsed"
		}
		printKeyValue("Children", fmt.Sprintf("%d (%s)", len(it.Children), state))
	}
	if len(path) > 1 {
		titles := make([]string, len(path))
		for i, p := range path {
			titles[i] = p.Title
		}
		printKeyValue("Path", strings.Join(titles, " › "))
	}
	for _, k := range slices.Sorted(maps.Keys(it.Extra)) {
		printKeyValue(k, fmt.Sprint(it.Extra[k]))
	}
}

func (c *CLI) inspectRangeCommand() *cobra.Command {
	var (
		keys   keyFlags
		buffer int
	)
	cmd := &cobra.Command{
		Use:   "range [tasks.yaml]",
		Short: "Print the padded date range covering every task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			forest, opts, err := c.loadForest(cmd.Context(), args[0], keys)
			if err != nil {
				return err
			}
			days, err := bufferDays(cmd, buffer, opts)
			if err != nil {
				return err
			}
			span := task.OverallRange(forest, days).Truncate()
			printKeyValue("Start", timeline.FormatDate(span.Start, timeline.DefaultPattern))
			printKeyValue("End", timeline.FormatDate(span.End, timeline.DefaultPattern))
			printKeyValue("Days", strconv.Itoa(span.Days()))
			return nil
		},
	}
	keys.register(cmd)
	cmd.Flags().IntVar(&buffer, "buffer", pipeline.DefaultBuffer, "days of padding on each side")
	return cmd
}

func (c *CLI) inspectCheckCommand() *cobra.Command {
	var keys keyFlags
	cmd := &cobra.Command{
		Use:   "check [tasks.yaml]",
		Short: "Report duplicate ids, invalid dates, inverted ranges and cycles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			forest, _, err := c.loadForest(cmd.Context(), args[0], keys)
			if err != nil {
				return err
			}
			problems := gerrors.Split(task.Validate(forest))
			if len(problems) == 0 {
				printSuccess("%s, no problems", plural(task.Count(forest), "task"))
				return nil
			}
			for _, p := range problems {
				printWarning("%s", gerrors.UserMessage(p))
			}
			return fmt.Errorf("%s found", plural(len(problems), "problem"))
		},
	}
	keys.register(cmd)
	return cmd
}

// bufferDays returns --buffer when it was given and the configured buffer
// otherwise.
func bufferDays(cmd *cobra.Command, flag int, opts pipeline.Options) (int, error) {
	days := opts.View.BufferDays()
	if cmd.Flags().Changed("buffer") {
		days = flag
	}
	if days < 0 {
		return 0, gerrors.New(gerrors.ErrCodeInvalidConfig, "buffer must not be negative, got %d", days)
	}
	return days, nil
}

func inspectDurationCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "duration [start] [end]",
		Short: "Count the calendar days from start to end, inclusive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(timeline.Duration(args[0], args[1]))
			return nil
		},
	}
}

func inspectDaysCommand() *cobra.Command {
	var pattern string
	cmd := &cobra.Command{
		Use:   "days [start] [end]",
		Short: "List every day from start to end, inclusive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end := timeline.Parse(args[0]), timeline.Parse(args[1])
			if !timeline.Valid(start) || !timeline.Valid(end) {
				return gerrors.New(gerrors.ErrCodeInvalidDate, "invalid date in %q .. %q", args[0], args[1])
			}
			for _, d := range timeline.RangeBetween(start, end) {
				fmt.Println(timeline.FormatDate(d, pattern))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pattern, "date-format", timeline.DefaultPattern, "date pattern")
	return cmd
}
