package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/ganttline/pkg/io"
	"github.com/matzehuels/ganttline/pkg/pipeline"
)

// browseCommand creates the interactive task browser.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		keys   keyFlags
		buffer int
		output string
	)

	cmd := &cobra.Command{
		Use:   "browse [tasks.yaml]",
		Short: "Expand and collapse tasks in an interactive timeline view",
		Long: `Expand and collapse tasks in an interactive timeline view.

Each visible task is shown with a bar preview over the padded date range of
the whole file. Collapsing a task hides its subtree exactly as in a rendered
chart. With -o the tasks, including their new expanded state, are written
to a file when the browser exits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			forest, opts, err := c.loadForest(ctx, args[0], keys)
			if err != nil {
				return err
			}

			days, err := bufferDays(cmd, buffer, opts)
			if err != nil {
				return err
			}

			model := NewBrowseModel(forest, days, time.Now())
			final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if err != nil {
				return fmt.Errorf("browse: %w", err)
			}

			m, ok := final.(BrowseModel)
			if !ok || output == "" {
				return nil
			}
			if !m.Changed {
				printInfo("No changes")
				return nil
			}
			if err := pkgio.Export(m.Forest, output, opts.Keys()); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Saved expanded state")
			printFile(output)
			return nil
		},
	}

	keys.register(cmd)
	cmd.Flags().IntVar(&buffer, "buffer", pipeline.DefaultBuffer, "days of padding around the task range")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the tasks with their expanded state on exit")

	return cmd
}
