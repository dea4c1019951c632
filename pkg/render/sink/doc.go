// Package sink writes a computed [layout.Layout] in an output format.
//
// [RenderSVG] draws the chart with a [styles.Style]; [RenderPNG] and
// [RenderPDF] rasterize that SVG with rsvg-convert; [RenderJSON] emits the
// layout itself so other tools can draw it.
//
//	l := layout.Build(forest, cfg, time.Now())
//	svg := sink.RenderSVG(l, sink.WithStyle(styles.Simple{Palette: styles.DarkPalette}))
//
// [layout.Layout]: github.com/matzehuels/ganttline/pkg/layout.Layout
// [styles.Style]: github.com/matzehuels/ganttline/pkg/render/styles.Style
package sink
