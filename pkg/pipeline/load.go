package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/ganttline/pkg/errors"
	pkgio "github.com/matzehuels/ganttline/pkg/io"
	"github.com/matzehuels/ganttline/pkg/observability"
	"github.com/matzehuels/ganttline/pkg/task"
)

// Load reads the task forest named by opts.
func Load(ctx context.Context, opts Options) (task.Forest, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}

	source := opts.Input
	if len(opts.Data) > 0 {
		source = "<" + string(opts.DataFormat) + " data>"
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()

	var forest task.Forest
	var err error
	if len(opts.Data) > 0 {
		forest, err = pkgio.ReadBytes(opts.Data, opts.DataFormat, opts.Keys())
	} else {
		forest, err = pkgio.Import(opts.Input, opts.Keys())
	}

	hooks.OnLoadComplete(ctx, source, task.Count(forest), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return forest, nil
}

// Check validates forest. In strict mode problems are returned as the
// error; otherwise each problem is logged as a warning and returned as the
// first value so the caller can report it.
func Check(forest task.Forest, opts Options) (problems error, err error) {
	opts.setCommonDefaults()
	problems = task.Validate(forest)
	if problems == nil {
		return nil, nil
	}
	if opts.Strict {
		return nil, fmt.Errorf("task file has problems: %w", problems)
	}
	for _, p := range errors.Split(problems) {
		opts.Logger.Warn("task file problem", "err", p)
	}
	return problems, nil
}

