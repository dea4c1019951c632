package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/ganttline/pkg/layout"
	"github.com/matzehuels/ganttline/pkg/render/styles"
	"github.com/matzehuels/ganttline/pkg/timeline"
)

const (
	barPadding    = 0.2 // fraction of the row height left empty above and below a bar
	labelInset    = 8.0
	taskListTitle = "Task"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style    styles.Style
	taskList bool
	progress bool
	format   timeline.Formatter
}

// WithStyle sets the visual style (default [styles.Simple]).
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithTaskList toggles the task list panel left of the timeline (default on).
func WithTaskList(show bool) SVGOption { return func(r *svgRenderer) { r.taskList = show } }

// WithProgress toggles the progress fill inside bars (default on).
func WithProgress(show bool) SVGOption { return func(r *svgRenderer) { r.progress = show } }

// WithDateFormatter relabels header columns from their start date.
func WithDateFormatter(f timeline.Formatter) SVGOption {
	return func(r *svgRenderer) { r.format = f }
}

// RenderSVG draws the layout as a standalone SVG document.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	offset := 0.0
	width := l.Width
	if !r.taskList {
		offset = l.ChartLeft
		width -= l.ChartLeft
	}
	height := l.Height

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	r.style.RenderDefs(&buf)

	if offset != 0 {
		fmt.Fprintf(&buf, `<g transform="translate(%.2f,0)">`+"\n", -offset)
	}
	r.renderGrid(&buf, l)
	r.renderBars(&buf, l)
	if r.taskList {
		r.renderTaskList(&buf, l)
	}
	if l.TodayX != nil {
		r.style.RenderTodayLine(&buf, *l.TodayX, l.HeaderHeight, l.Height)
	}
	if offset != 0 {
		buf.WriteString("</g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Simple{}, taskList: true, progress: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r *svgRenderer) renderGrid(buf *bytes.Buffer, l layout.Layout) {
	bodyH := l.Height - l.HeaderHeight
	for i, d := range l.Days {
		r.style.RenderGrid(buf, styles.Cell{
			Kind:    styles.CellDay,
			X:       d.X,
			Y:       l.HeaderHeight,
			W:       d.Width,
			H:       bodyH,
			Index:   i,
			Weekend: l.HighlightWeekends && d.Weekend,
			Today:   d.Today,
		})
	}

	for i, row := range l.Rows {
		r.style.RenderGrid(buf, styles.Cell{
			Kind:  styles.CellRow,
			X:     0,
			Y:     row.Y,
			W:     l.Width,
			H:     row.Height,
			Index: i,
		})
	}

	for i, c := range l.Columns {
		label := c.Label
		if r.format != nil {
			label = r.format(c.Start)
		}
		r.style.RenderGrid(buf, styles.Cell{
			Kind:  styles.CellHeader,
			X:     c.X,
			W:     c.Width,
			H:     l.HeaderHeight,
			Label: label,
			Index: i,
			Today: c.Today,
		})
	}
	if r.taskList && l.TaskListWidth > 0 {
		r.style.RenderGrid(buf, styles.Cell{
			Kind:  styles.CellHeader,
			W:     l.TaskListWidth,
			H:     l.HeaderHeight,
			Label: taskListTitle,
			Index: -1,
		})
	}
}

func (r *svgRenderer) renderBars(buf *bytes.Buffer, l layout.Layout) {
	for _, row := range l.Rows {
		if row.Bar.Degenerate {
			continue
		}
		pad := row.Height * barPadding
		bar := styles.Bar{
			ID:        string(row.ID),
			Title:     row.Title,
			X:         row.Bar.X,
			Y:         row.Y + pad,
			W:         row.Bar.Width,
			H:         row.Height - 2*pad,
			Progress:  -1,
			Color:     row.Color,
			Milestone: row.Bar.Milestone,
			Parent:    row.HasChildren,
			Tooltip:   tooltip(row),
		}
		if r.progress && row.Progress != nil {
			bar.Progress = *row.Progress
		}
		r.style.RenderBar(buf, bar)
	}
}

func (r *svgRenderer) renderTaskList(buf *bytes.Buffer, l layout.Layout) {
	fontSize := styles.FontSize(l.CellHeight)
	for _, row := range l.Rows {
		room := l.TaskListWidth - labelInset*2 - float64(row.Level)*16 - 12
		r.style.RenderLabel(buf, styles.Label{
			ID:          string(row.ID),
			Text:        styles.TruncateLabel(row.Title, room, fontSize),
			X:           labelInset,
			Y:           row.Y + row.Height/2,
			Level:       row.Level,
			HasChildren: row.HasChildren,
			Expanded:    row.Expanded,
		})
	}
}

func tooltip(row layout.Row) string {
	title := row.Title
	if title == "" {
		title = string(row.ID)
	}
	start := timeline.FormatDate(row.Start, timeline.DefaultPattern)
	if row.Bar.Milestone {
		return fmt.Sprintf("%s: %s", title, start)
	}
	end := timeline.FormatDate(row.End, timeline.DefaultPattern)
	s := fmt.Sprintf("%s: %s to %s (%d days)", title, start, end, row.Duration)
	if row.Progress != nil {
		s += fmt.Sprintf(", %.0f%%", *row.Progress)
	}
	return s
}
