package tree

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/ganttline/pkg/task"
	"github.com/matzehuels/ganttline/pkg/timeline"
)

// Options configures hierarchy diagram generation.
type Options struct {
	// Detailed adds dates, duration, progress and extra fields to node
	// labels. When false, only the title is shown.
	Detailed bool
	// VisibleOnly hides the descendants of collapsed tasks, matching what
	// the chart shows.
	VisibleOnly bool
}

// ToDOT converts a task forest to Graphviz DOT source with one node per
// task and an edge from every parent to each child. A task reachable
// through several parents appears once with several incoming edges.
//
// Milestones are diamonds, collapsed parents have dashed outlines.
func ToDOT(forest task.Forest, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	names := make(map[*task.Item]string)
	var edges []string
	var visit func(it *task.Item)
	visit = func(it *task.Item) {
		if _, seen := names[it]; seen {
			return
		}
		name := fmt.Sprintf("t%d", len(names))
		names[it] = name
		fmt.Fprintf(&buf, "  %s [%s];\n", name, strings.Join(fmtAttrs(it, opts.Detailed), ", "))

		if opts.VisibleOnly && !it.IsExpanded() {
			return
		}
		for _, c := range it.Children {
			if c == nil {
				continue
			}
			visit(c)
			edges = append(edges, fmt.Sprintf("  %s -> %s;\n", name, names[c]))
		}
	}
	for _, root := range forest {
		if root != nil {
			visit(root)
		}
	}

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(it *task.Item, detailed bool) string {
	title := it.Title
	if title == "" {
		title = string(it.ID)
	}
	if !detailed {
		return title
	}

	parts := []string{
		"id: " + string(it.ID),
		fmt.Sprintf("%s .. %s (%dd)",
			timeline.FormatDate(it.Start, timeline.DefaultPattern),
			timeline.FormatDate(it.End, timeline.DefaultPattern),
			it.Duration()),
	}
	if it.Progress != nil {
		parts = append(parts, fmt.Sprintf("progress: %.0f%%", *it.Progress))
	}
	for _, k := range slices.Sorted(maps.Keys(it.Extra)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, it.Extra[k]))
	}
	return title + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(it *task.Item, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(it, detailed))}
	switch {
	case it.IsMilestone():
		attrs = append(attrs, "shape=diamond", "style=filled")
	case it.HasChildren() && !it.IsExpanded():
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	if it.Color != "" && colorSafe(it.Color) {
		attrs = append(attrs, fmt.Sprintf("color=%q", it.Color))
	}
	return attrs
}

func colorSafe(c string) bool {
	return !strings.ContainsAny(c, "\";[]{}\n")
}
