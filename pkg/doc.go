// Package pkg holds the libraries behind ganttline, a Gantt chart builder
// for hierarchical task lists.
//
// # Overview
//
// A chart starts as a forest of tasks, each with a start date, an end date
// and optional children. Only expanded branches are shown; the visible rows
// are laid out on a day grid and drawn as bars, milestones and headers.
//
//	task file (JSON, YAML, TOML)
//	         ↓
//	    [io] package (import with configurable field names)
//	         ↓
//	    [task] package (forest, flatten, range, validation)
//	         ↓
//	    [layout] package (columns, days, row geometry)
//	         ↓
//	    [render/sink] package (SVG, PNG, PDF, JSON)
//
// [pipeline] strings these steps together with caching and is what the
// ganttline CLI calls.
//
// # Quick Start
//
//	forest, _ := io.Import("plan.yaml", io.DefaultKeys())
//	l := layout.Build(forest, layout.ViewConfig{ViewMode: layout.ViewWeek}, time.Now())
//	style, _ := styles.ByName("dark")
//	svg := sink.RenderSVG(l, sink.WithStyle(style))
//
// # Packages
//
// [timeline] - Date normalization, day arithmetic and Day.js style date
// patterns. Invalid input becomes the zero time rather than an error.
//
// [task] - The task tree: pre-order flattening of expanded branches, lookup
// by id, the overall date range, expand and collapse operations that return
// copies, and structural validation.
//
// [layout] - Geometry for a chart: header columns per view mode, the day
// grid, row bars and the today line. Layouts serialize to JSON so they can
// be rendered later without the task file.
//
// [render/sink] - Chart output. SVG is drawn directly; PNG and PDF convert
// the SVG through [render].
//
// [render/tree] - The task hierarchy as a Graphviz diagram.
//
// [render/styles] - Colour schemes for charts.
//
// [cache] - File, Redis and no-op caches for layouts and artifacts.
//
// [observability] - Hooks for pipeline stages and cache lookups.
//
// [errors] - Coded errors shared by every package.
//
// [timeline]: https://pkg.go.dev/github.com/matzehuels/ganttline/pkg/timeline
// [task]: https://pkg.go.dev/github.com/matzehuels/ganttline/pkg/task
// [io]: https://pkg.go.dev/github.com/matzehuels/ganttline/pkg/io
// [layout]: https://pkg.go.dev/github.com/matzehuels/ganttline/pkg/layout
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/ganttline/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/matzehuels/ganttline/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/ganttline/pkg/render/sink
// [render/tree]: https://pkg.go.dev/github.com/matzehuels/ganttline/pkg/render/tree
// [render/styles]: https://pkg.go.dev/github.com/matzehuels/ganttline/pkg/render/styles
// [cache]: https://pkg.go.dev/github.com/matzehuels/ganttline/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/ganttline/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/ganttline/pkg/errors
package pkg
