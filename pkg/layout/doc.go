// Package layout computes Gantt chart geometry from a task forest.
//
// # Overview
//
// Layout sits between the task model and the renderers: it takes a
// [task.Forest] and a [ViewConfig] and produces a [Layout] that says where
// every header column, day cell, task row and bar goes. Renderers in
// pkg/render/sink only draw what the layout describes.
//
// # Bar Geometry
//
// [Position] is the core formula. With the timeline starting at T and a
// day width of w:
//
//	left  = DaysBetween(T, task.Start) * w
//	width = Duration(task.Start, task.End) * w
//
// Both counts are whole days, so bars always snap to day boundaries. Tasks
// that start before the timeline have a negative left; inverted tasks have
// a non-positive width and are flagged [Bar.Degenerate].
//
// # View Modes
//
// [ViewDay], [ViewWeek] and [ViewMonth] change the header buckets and the
// scale. CellWidth is the width of one bucket: a day is CellWidth wide in
// day view, CellWidth/7 in week view and CellWidth/30 in month view. Bars
// are always placed on day boundaries.
//
// # Determinism
//
// [Build] takes the reference instant as an argument. Given the same
// forest, config and instant it always produces the same layout, which is
// what makes layouts cacheable (see pkg/cache).
//
// # Serialization
//
// [MarshalLayout] and [UnmarshalLayout] convert layouts to and from JSON
// so they can be cached or inspected with the "ganttline layout" command.
package layout
