package styles

import (
	"bytes"
	"strings"

	"github.com/matzehuels/ganttline/pkg/errors"
)

// Style defines the visual appearance of a Gantt chart.
// Implementations control how the background grid, bars, labels and the
// today marker are drawn.
type Style interface {
	// RenderDefs writes SVG <defs> content (patterns, gradients, CSS).
	RenderDefs(buf *bytes.Buffer)
	// RenderGrid writes one background cell: a header column, a day
	// column or a row stripe.
	RenderGrid(buf *bytes.Buffer, c Cell)
	// RenderBar writes the shape of a single task.
	RenderBar(buf *bytes.Buffer, b Bar)
	// RenderLabel writes one entry of the task list.
	RenderLabel(buf *bytes.Buffer, l Label)
	// RenderTodayLine writes the vertical marker for the current day.
	RenderTodayLine(buf *bytes.Buffer, x, top, bottom float64)
}

// CellKind distinguishes background cells.
type CellKind int

const (
	CellDay CellKind = iota
	CellHeader
	CellRow
)

// Cell contains the data needed to draw one background rectangle.
type Cell struct {
	Kind       CellKind
	X, Y, W, H float64
	Label      string // Header text (header cells only)
	Index      int    // Position among cells of the same kind
	Weekend    bool   // Day falls on a weekend and weekends are highlighted
	Today      bool   // Cell contains the current day
}

// Bar contains all data needed to render a single task.
type Bar struct {
	ID         string
	Title      string
	X, Y, W, H float64
	Progress   float64 // 0..100, negative when unknown
	Color      string  // Caller-chosen fill, empty for the palette default
	Milestone  bool
	Parent     bool // Task has children
	Tooltip    string
}

// Label contains all data needed to render a task list entry.
type Label struct {
	ID          string
	Text        string
	X, Y        float64 // Y is the vertical center of the row
	Level       int
	HasChildren bool
	Expanded    bool
}

// Names of the built-in styles.
const (
	NameSimple = "simple"
	NameLight  = "light"
	NameDark   = "dark"
)

// Names lists the built-in style names accepted by [ByName].
var Names = []string{NameSimple, NameDark}

// ByName returns a built-in style. "simple" and "light" are the light
// palette; "dark" is the dark palette.
func ByName(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameSimple, NameLight:
		return Simple{Palette: LightPalette}, nil
	case NameDark:
		return Simple{Palette: DarkPalette}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown style %q (want simple or dark)", name)
}
