package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/ganttline/pkg/layout"
	"github.com/matzehuels/ganttline/pkg/observability"
	"github.com/matzehuels/ganttline/pkg/task"
)

// ComputeLayout builds the chart geometry for forest. It does no caching;
// see [Runner.ComputeLayout].
func ComputeLayout(ctx context.Context, forest task.Forest, opts Options) (layout.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Layout{}, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, string(opts.View.ViewMode), task.Count(forest))
	start := time.Now()

	l := layout.Build(forest, opts.View, opts.now())

	hooks.OnLayoutComplete(ctx, string(opts.View.ViewMode), len(l.Rows), time.Since(start), nil)
	return l, nil
}
