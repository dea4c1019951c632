// Package render turns computed Gantt layouts into output files.
//
// # Overview
//
// Rendering is split by concern:
//
//   - [sink]: output formats for a [layout.Layout] (SVG, JSON, PNG, PDF)
//   - [styles]: the visual style used by the SVG sink
//   - [tree]: a hierarchy diagram of the task forest drawn by Graphviz
//
// This package itself only holds format conversion shared by the sinks.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG with the external rsvg-convert tool
// (from librsvg). When the tool is missing they fail with an UNSUPPORTED
// error; [Available] checks for it up front.
//
//	svg := sink.RenderSVG(l)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// [sink]: github.com/matzehuels/ganttline/pkg/render/sink
// [styles]: github.com/matzehuels/ganttline/pkg/render/styles
// [tree]: github.com/matzehuels/ganttline/pkg/render/tree
// [layout.Layout]: github.com/matzehuels/ganttline/pkg/layout.Layout
package render
