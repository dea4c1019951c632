// Package styles defines how Gantt chart elements are drawn as SVG.
//
// A [Style] receives one call per background cell, bar, task list label
// and today marker, and appends SVG markup to a buffer. [Simple] is the
// built-in implementation: flat shapes filled from a [Palette].
// [ByName] resolves the names accepted on the command line.
//
// Helpers such as [TruncateLabel] and [EscapeXML] are shared with other
// renderers that emit SVG text.
package styles
