package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/ganttline/pkg/errors"
	pkgio "github.com/matzehuels/ganttline/pkg/io"
	"github.com/matzehuels/ganttline/pkg/layout"
	"github.com/matzehuels/ganttline/pkg/observability"
	"github.com/matzehuels/ganttline/pkg/render/sink"
	"github.com/matzehuels/ganttline/pkg/render/styles"
	"github.com/matzehuels/ganttline/pkg/render/tree"
	"github.com/matzehuels/ganttline/pkg/task"
)

// Render produces every requested format. Formats are rendered
// concurrently; the first failure cancels the rest.
//
// The Gantt chart needs only the layout. The tree diagram needs the forest.
func Render(ctx context.Context, l layout.Layout, forest task.Forest, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	if opts.IsTree() && forest == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "tree diagram needs the task file, not a layout")
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	out := make([][]byte, len(opts.Formats))
	g, gctx := errgroup.WithContext(ctx)

	if opts.IsTree() {
		dot := tree.ToDOT(forest, tree.Options{Detailed: opts.Detailed, VisibleOnly: opts.VisibleOnly})
		for i, format := range opts.Formats {
			g.Go(func() error {
				data, err := renderTree(gctx, dot, forest, format, opts)
				if err != nil {
					return fmt.Errorf("render %s: %w", format, err)
				}
				out[i] = data
				return nil
			})
		}
	} else {
		svgOpts, err := buildSVGOptions(opts)
		if err != nil {
			return nil, err
		}
		for i, format := range opts.Formats {
			g.Go(func() error {
				data, err := renderGantt(gctx, l, format, svgOpts, opts)
				if err != nil {
					return fmt.Errorf("render %s: %w", format, err)
				}
				out[i] = data
				return nil
			})
		}
	}

	err := g.Wait()
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for i, format := range opts.Formats {
		artifacts[format] = out[i]
	}
	return artifacts, nil
}

func renderGantt(ctx context.Context, l layout.Layout, format string, svgOpts []sink.SVGOption, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(l, svgOpts...), nil
	case FormatPNG:
		return sink.RenderPNG(ctx, l, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
	case FormatPDF:
		return sink.RenderPDF(ctx, l, sink.WithPDFSVGOptions(svgOpts...))
	case FormatJSON:
		return sink.RenderJSON(l)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported gantt format: %s", format)
}

// renderTree draws the hierarchy. Its JSON output is the task forest
// itself in the input file's field names.
func renderTree(ctx context.Context, dot string, forest task.Forest, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return tree.RenderSVG(ctx, dot)
	case FormatPNG:
		return tree.RenderPNG(ctx, dot, opts.Scale)
	case FormatPDF:
		return tree.RenderPDF(ctx, dot)
	case FormatJSON:
		var buf bytes.Buffer
		if err := pkgio.WriteJSON(forest, &buf, opts.Keys()); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported tree format: %s", format)
}

// buildSVGOptions maps render options onto the SVG sink.
func buildSVGOptions(opts Options) ([]sink.SVGOption, error) {
	style, err := styles.ByName(opts.Style)
	if err != nil {
		return nil, err
	}
	svgOpts := []sink.SVGOption{
		sink.WithStyle(style),
		sink.WithTaskList(!opts.HideTaskList),
		sink.WithProgress(!opts.HideProgress),
	}
	if opts.View.DateFormatter != nil {
		svgOpts = append(svgOpts, sink.WithDateFormatter(opts.View.DateFormatter))
	}
	return svgOpts, nil
}

// RenderFromLayoutData renders a serialized layout, such as the JSON
// output of an earlier run.
func RenderFromLayoutData(ctx context.Context, data []byte, opts Options) (map[string][]byte, error) {
	l, err := layout.UnmarshalLayout(data)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return Render(ctx, l, nil, opts)
}
