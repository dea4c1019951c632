// Package tree draws the task hierarchy as a Graphviz diagram.
//
// Where the Gantt chart shows tasks against time, the tree diagram shows
// only who contains whom:
//
//	dot := tree.ToDOT(forest, tree.Options{Detailed: true})
//	svg, err := tree.RenderSVG(ctx, dot)
//
// [ToDOT] output is plain DOT source and can also be fed to the dot
// command. Rendering runs Graphviz in-process through
// [github.com/goccy/go-graphviz]; PDF and PNG need rsvg-convert.
package tree
