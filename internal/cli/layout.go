package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ganttline/pkg/layout"
	"github.com/matzehuels/ganttline/pkg/pipeline"
	"github.com/matzehuels/ganttline/pkg/task"
)

// layoutSuffix marks layout documents written by the layout command.
const layoutSuffix = ".layout"

// layoutCommand creates the layout command for computing chart layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		view   viewFlags
		caches cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [tasks.yaml]",
		Short: "Compute a chart layout from a task file",
		Long: `Compute a chart layout from a task file.

The layout command reads a task file (JSON, YAML or TOML), validates it and
computes the chart geometry: the visible date range, header columns, one row
per visible task and the bar of each row. The result is written as
<input>.layout.json, the same document 'render -f json' produces, and can be
rendered later with 'render <input>.layout.json'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, cfg, err := c.chartOptions(cmd.Flags(), &view)
			if err != nil {
				return err
			}
			opts.Input = args[0]
			opts.Refresh = caches.refresh
			if err := statFile(opts.Input); err != nil {
				return err
			}
			runner := c.newRunner(cmd.Context(), cfg.Cache, caches)
			defer runner.Close()
			return c.runLayout(cmd.Context(), runner, opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	caches.register(cmd)
	view.register(cmd.Flags())

	return cmd
}

// runLayout loads the tasks, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, output string) error {
	prog := newProgress(loggerFromContext(ctx))
	forest, err := runner.Load(ctx, opts)
	if err != nil {
		return fmt.Errorf("load tasks %s: %w", opts.Input, err)
	}
	prog.done(fmt.Sprintf("Loaded %s", plural(task.Count(forest), "task")))
	problems, err := pipeline.Check(forest, opts)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	l, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, forest, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = outputBase("", opts.Input) + layoutSuffix + ".json"
	}
	if err := layout.WriteLayoutFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(chartStats{
		tasks: task.Count(forest),
		rows:  len(l.Rows),
		days:  len(l.Days),
	}, cacheHit)
	if problems != nil {
		printWarning("Task file has problems (use --strict to fail on them)")
	}
	printNewline()
	printNextStep("Render", appName+" render "+outputPath)

	return nil
}

// isLayoutFile reports whether path names a layout document.
func isLayoutFile(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), layoutSuffix+".json")
}

// layoutSpan formats the date range of a layout for display.
func layoutSpan(l layout.Layout) string {
	return fmt.Sprintf("%s to %s", l.Start.Format(time.DateOnly), l.End.Format(time.DateOnly))
}
