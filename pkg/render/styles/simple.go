package styles

import (
	"bytes"
	"fmt"
	"regexp"
)

// Palette is the set of colors a [Simple] style draws with.
type Palette struct {
	Background  string
	GridLine    string
	HeaderFill  string
	HeaderText  string
	Weekend     string
	Today       string
	RowStripe   string
	Bar         string
	BarProgress string
	Parent      string
	Milestone   string
	Text        string
	TodayLine   string
}

// LightPalette is the default palette.
var LightPalette = Palette{
	Background:  "white",
	GridLine:    "#e5e7eb",
	HeaderFill:  "#f9fafb",
	HeaderText:  "#374151",
	Weekend:     "#f3f4f6",
	Today:       "#fef9c3",
	RowStripe:   "#fafafa",
	Bar:         "#60a5fa",
	BarProgress: "#2563eb",
	Parent:      "#6b7280",
	Milestone:   "#f59e0b",
	Text:        "#111827",
	TodayLine:   "#ef4444",
}

// DarkPalette suits dark backgrounds.
var DarkPalette = Palette{
	Background:  "#111827",
	GridLine:    "#374151",
	HeaderFill:  "#1f2937",
	HeaderText:  "#e5e7eb",
	Weekend:     "#1a2230",
	Today:       "#3f3a12",
	RowStripe:   "#151d2b",
	Bar:         "#3b82f6",
	BarProgress: "#93c5fd",
	Parent:      "#9ca3af",
	Milestone:   "#fbbf24",
	Text:        "#f9fafb",
	TodayLine:   "#f87171",
}

// Simple draws flat rectangles with a palette. The zero value uses
// [LightPalette].
type Simple struct {
	Palette Palette
}

const (
	barRadius     = 4.0
	indentPerRow  = 16.0
	toggleMarkerW = 10.0
)

// colorRe accepts hex colors and plain CSS color names. Anything else
// falls back to the palette so task data cannot inject markup.
var colorRe = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]{3,20})$`)

func (s Simple) palette() Palette {
	if s.Palette == (Palette{}) {
		return LightPalette
	}
	return s.Palette
}

// RenderDefs writes the hover CSS for bars.
func (Simple) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <style>\n")
	buf.WriteString("    .bar { transition: opacity 0.2s ease; }\n")
	buf.WriteString("    .bar:hover { opacity: 0.8; }\n")
	buf.WriteString("  </style>\n")
}

func (s Simple) RenderGrid(buf *bytes.Buffer, c Cell) {
	p := s.palette()
	switch c.Kind {
	case CellHeader:
		fmt.Fprintf(buf, `  <rect class="header" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="%s"/>`+"\n",
			c.X, c.Y, c.W, c.H, p.HeaderFill, p.GridLine)
		if c.Label != "" {
			weight := "normal"
			if c.Today {
				weight = "bold"
			}
			fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle" font-family="Helvetica,Arial,sans-serif" font-size="%.1f" font-weight="%s" fill="%s">%s</text>`+"\n",
				c.X+c.W/2, c.Y+c.H/2, FontSize(c.H*0.8), weight, p.HeaderText, EscapeXML(TruncateLabel(c.Label, c.W, FontSize(c.H*0.8))))
		}
	case CellDay:
		fill := "none"
		switch {
		case c.Today:
			fill = p.Today
		case c.Weekend:
			fill = p.Weekend
		}
		fmt.Fprintf(buf, `  <rect class="day" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="%s" stroke-width="0.5"/>`+"\n",
			c.X, c.Y, c.W, c.H, fill, p.GridLine)
	case CellRow:
		if c.Index%2 == 1 {
			fmt.Fprintf(buf, `  <rect class="row" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" fill-opacity="0.6"/>`+"\n",
				c.X, c.Y, c.W, c.H, p.RowStripe)
		}
		fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="0.5"/>`+"\n",
			c.X, c.Y+c.H, c.X+c.W, c.Y+c.H, p.GridLine)
	}
}

func (s Simple) RenderBar(buf *bytes.Buffer, b Bar) {
	p := s.palette()
	fmt.Fprintf(buf, `  <g class="bar" id="task-%s">`+"\n", EscapeXML(b.ID))
	if b.Tooltip != "" {
		fmt.Fprintf(buf, "    <title>%s</title>\n", EscapeXML(b.Tooltip))
	}

	if b.Milestone {
		cx, cy, r := b.X+b.W/2, b.Y+b.H/2, min(b.W, b.H)/2
		fmt.Fprintf(buf, `    <polygon points="%.2f,%.2f %.2f,%.2f %.2f,%.2f %.2f,%.2f" fill="%s"/>`+"\n",
			cx, cy-r, cx+r, cy, cx, cy+r, cx-r, cy, s.fill(b, p.Milestone))
		buf.WriteString("  </g>\n")
		return
	}

	base := p.Bar
	if b.Parent {
		base = p.Parent
	}
	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.1f" ry="%.1f" fill="%s"/>`+"\n",
		b.X, b.Y, b.W, b.H, barRadius, barRadius, s.fill(b, base))

	if b.Progress > 0 {
		w := b.W * min(b.Progress, 100) / 100
		fmt.Fprintf(buf, `    <rect class="progress" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.1f" ry="%.1f" fill="%s"/>`+"\n",
			b.X, b.Y, w, b.H, barRadius, barRadius, p.BarProgress)
	}
	buf.WriteString("  </g>\n")
}

func (Simple) fill(b Bar, fallback string) string {
	if b.Color != "" && colorRe.MatchString(b.Color) {
		return b.Color
	}
	return fallback
}

func (s Simple) RenderLabel(buf *bytes.Buffer, l Label) {
	p := s.palette()
	x := l.X + float64(l.Level)*indentPerRow
	if l.HasChildren {
		marker := "▾"
		if !l.Expanded {
			marker = "▸"
		}
		fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" dominant-baseline="middle" font-family="Helvetica,Arial,sans-serif" font-size="10" fill="%s">%s</text>`+"\n",
			x, l.Y, p.Text, marker)
	}
	weight := "normal"
	if l.HasChildren {
		weight = "bold"
	}
	fmt.Fprintf(buf, `  <text class="label" data-task="%s" x="%.2f" y="%.2f" dominant-baseline="middle" font-family="Helvetica,Arial,sans-serif" font-size="12" font-weight="%s" fill="%s">%s</text>`+"\n",
		EscapeXML(l.ID), x+toggleMarkerW+2, l.Y, weight, p.Text, EscapeXML(l.Text))
}

func (s Simple) RenderTodayLine(buf *bytes.Buffer, x, top, bottom float64) {
	fmt.Fprintf(buf, `  <line class="today" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="2" stroke-dasharray="4,3"/>`+"\n",
		x, top, x, bottom, s.palette().TodayLine)
}
