package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	gerrors "github.com/matzehuels/ganttline/pkg/errors"
	"github.com/matzehuels/ganttline/pkg/layout"
	"github.com/matzehuels/ganttline/pkg/pipeline"
	"github.com/matzehuels/ganttline/pkg/render/styles"
)

// renderFlags holds the render-only flags. Like viewFlags, only flags the
// user set override the config file.
type renderFlags struct {
	output       string
	vizType      string
	formats      string
	style        string
	hideTaskList bool
	hideProgress bool
	scale        float64
	detailed     bool
	visibleOnly  bool
}

func (f *renderFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	fs.StringVarP(&f.vizType, "type", "t", pipeline.DefaultVizType, "visualization type: gantt, tree")
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	fs.StringVar(&f.style, "style", pipeline.DefaultStyle, "visual style: "+strings.Join(styles.Names, ", "))
	fs.BoolVar(&f.hideTaskList, "hide-task-list", false, "draw only the timeline (gantt)")
	fs.BoolVar(&f.hideProgress, "hide-progress", false, "do not fill bars by progress (gantt)")
	fs.Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	fs.BoolVar(&f.detailed, "detailed", false, "show dates and fields in node labels (tree)")
	fs.BoolVar(&f.visibleOnly, "visible-only", false, "leave out collapsed subtrees (tree)")
}

func (f *renderFlags) apply(fs *pflag.FlagSet, opts *pipeline.Options) {
	if fs.Changed("type") {
		opts.VizType = strings.ToLower(f.vizType)
	}
	if fs.Changed("format") {
		opts.Formats = parseFormats(f.formats)
	}
	if fs.Changed("style") {
		opts.Style = f.style
	}
	if fs.Changed("hide-task-list") {
		opts.HideTaskList = f.hideTaskList
	}
	if fs.Changed("hide-progress") {
		opts.HideProgress = f.hideProgress
	}
	if fs.Changed("scale") {
		opts.Scale = f.scale
	}
	opts.Detailed = f.detailed
	opts.VisibleOnly = f.visibleOnly
}

// renderCommand creates the render command, which goes from a task file (or
// a layout document) straight to output files.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		view   viewFlags
		flags  renderFlags
		caches cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "render [tasks.yaml | tasks.layout.json]",
		Short: "Render a task file to SVG, PNG, PDF or JSON",
		Long: `Render a task file to SVG, PNG, PDF or JSON.

With -t gantt (default) the tasks are laid out and drawn as a Gantt chart.
With -t tree the task hierarchy is drawn as a tree diagram using Graphviz.

The input may also be a layout document written by 'layout'; it is then
rendered without reading the task file again.

PNG and PDF output require rsvg-convert (librsvg).

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, cfg, err := c.chartOptions(cmd.Flags(), &view)
			if err != nil {
				return err
			}
			flags.apply(cmd.Flags(), &opts)
			opts.Refresh = caches.refresh
			if err := opts.ValidateForRender(); err != nil {
				return err
			}

			input := args[0]
			if err := statFile(input); err != nil {
				return err
			}
			runner := c.newRunner(cmd.Context(), cfg.Cache, caches)
			defer runner.Close()

			if isLayoutFile(input) {
				return c.runRenderLayout(cmd.Context(), runner, input, opts, flags.output)
			}
			opts.Input = input
			return c.runRender(cmd.Context(), runner, opts, flags.output)
		},
	}

	flags.register(cmd.Flags())
	caches.register(cmd)
	view.register(cmd.Flags())

	return cmd
}

// runRender runs the full pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, output string) error {
	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.VizType))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %s", strings.Join(opts.Formats, ", ")))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result.Artifacts, opts, opts.Input, output)
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(chartStats{
		tasks: result.Stats.TaskCount,
		rows:  result.Stats.RowCount,
		days:  result.Stats.Days,
	}, result.CacheInfo.RenderHit)
	if result.Problems != nil {
		printWarning("Task file has problems (use --strict to fail on them)")
	}
	return nil
}

// runRenderLayout renders a layout document written by the layout command.
func (c *CLI) runRenderLayout(ctx context.Context, runner *pipeline.Runner, input string, opts pipeline.Options, output string) error {
	if opts.IsTree() {
		return gerrors.New(gerrors.ErrCodeUnsupported, "tree diagrams need the task file, not a layout: %s", input)
	}
	l, err := layout.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	spinner := newSpinnerWithContext(ctx, "Rendering layout...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, l, nil, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	paths, err := writeArtifacts(artifacts, opts, input, output)
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(chartStats{rows: len(l.Rows), days: len(l.Days)}, cacheHit)
	printDetail("Range: %s", layoutSpan(l))
	return nil
}

// artifactPath returns where the artifact of format is written. A single
// format goes to output verbatim when given; otherwise files are named
// <base>.<format>, with a ".tree" infix for tree diagrams.
func artifactPath(format string, formatCount int, vizType, input, output string) string {
	if output != "" && formatCount == 1 {
		return output
	}
	base := outputBase(output, input)
	if vizType == pipeline.VizTypeTree && output == "" {
		base += ".tree"
	}
	return base + "." + format
}

// writeArtifacts writes every rendered artifact and returns the paths in
// format order.
func writeArtifacts(artifacts map[string][]byte, opts pipeline.Options, input, output string) ([]string, error) {
	formats := make([]string, 0, len(artifacts))
	for f := range artifacts {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := artifactPath(format, len(formats), opts.VizType, input, output)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return paths, fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
