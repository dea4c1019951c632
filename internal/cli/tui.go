package cli

import (
	"fmt"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/ganttline/pkg/task"
	"github.com/matzehuels/ganttline/pkg/timeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorTeal)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorTeal)

	barStyle       = lipgloss.NewStyle().Foreground(colorTeal)
	milestoneStyle = lipgloss.NewStyle().Foreground(colorAmber)
	todayStyle     = lipgloss.NewStyle().Foreground(colorRed)
)

const (
	defaultListHeight = 20
	defaultBarWidth   = 40
	titleWidth        = 36
)

// =============================================================================
// BrowseModel - Interactive task tree
// =============================================================================

// BrowseModel is the bubbletea model for browsing a task forest. Rows come
// from task.Flatten, so collapsing a task hides its subtree exactly as the
// chart would.
type BrowseModel struct {
	Forest task.Forest
	Rows   []task.Row
	Span   task.Span
	Today  time.Time
	Cursor int
	Offset int
	Height int
	Width  int

	// Changed reports whether some parent's expanded state differs from
	// the forest the model was created with.
	Changed bool

	initial []bool
}

// NewBrowseModel creates a browse model over forest. The preview range is
// the forest's overall range padded by buffer days.
func NewBrowseModel(forest task.Forest, buffer int, now time.Time) BrowseModel {
	return BrowseModel{
		Forest:  forest,
		Rows:    task.Flatten(forest),
		Span:    task.OverallRangeAt(forest, buffer, now).Truncate(),
		Today:   timeline.StartOfDay(now),
		Height:  defaultListHeight,
		Width:   defaultBarWidth,
		initial: expansion(forest),
	}
}

// expansion lists the expanded state of every parent in walk order.
func expansion(forest task.Forest) []bool {
	var out []bool
	task.Walk(forest, func(it *task.Item, _ int) bool {
		if it.HasChildren() {
			out = append(out, it.IsExpanded())
		}
		return true
	})
	return out
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.Height)
		case "pgdown":
			m.move(m.Height)
		case "enter", " ", "right", "left", "l", "h":
			m = m.toggle()
		case "e":
			m = m.replace(task.ExpandAll(m.Forest))
		case "c":
			m = m.replace(task.CollapseAll(m.Forest))
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
		m.Width = max(msg.Width-titleWidth-8, 10)
		m.move(0)
	}
	return m, nil
}

// move shifts the cursor by delta, clamped, and scrolls to keep it visible.
func (m *BrowseModel) move(delta int) {
	m.Cursor = min(max(m.Cursor+delta, 0), max(len(m.Rows)-1, 0))
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// toggle flips the expanded state of the task under the cursor.
func (m BrowseModel) toggle() BrowseModel {
	if len(m.Rows) == 0 || !m.Rows[m.Cursor].HasChildren {
		return m
	}
	forest, ok := task.Toggle(m.Forest, m.Rows[m.Cursor].ID)
	if !ok {
		return m
	}
	return m.replace(forest)
}

// replace swaps in a new forest and keeps the cursor on the same task.
func (m BrowseModel) replace(forest task.Forest) BrowseModel {
	var current task.ID
	if len(m.Rows) > 0 {
		current = m.Rows[m.Cursor].ID
	}
	m.Forest = forest
	m.Rows = task.Flatten(forest)
	m.Changed = !slices.Equal(expansion(forest), m.initial)
	m.Cursor = 0
	for i, r := range m.Rows {
		if r.ID == current {
			m.Cursor = i
			break
		}
	}
	m.move(0)
	return m
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(listTitleStyle.Render("Tasks"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%s .. %s",
		timeline.FormatDate(m.Span.Start, ""), timeline.FormatDate(m.Span.End, ""))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ toggle  e expand all  c collapse all  q quit"))
	b.WriteString("\n\n")

	if len(m.Rows) == 0 {
		b.WriteString(listDimStyle.Render("  no tasks"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Rows))
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]

		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}

		title := rowTitle(r)
		b.WriteString(cursor)
		b.WriteString(style.Render(padRight(title, titleWidth)))
		b.WriteString(" ")
		b.WriteString(m.renderBar(r))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))
	if r := m.Rows[m.Cursor]; timeline.Valid(r.Start) {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  %s  %s .. %s (%dd)", r.ID,
			timeline.FormatDate(r.Start, ""), timeline.FormatDate(r.End, ""), r.Duration())))
	}
	return b.String()
}

func (m BrowseModel) renderBar(r task.Row) string {
	cells := barCells(r.Start, r.End, m.Span, m.Width)
	todayCol := -1
	if total := m.Span.Days(); total > 0 && m.Span.Contains(m.Today) {
		todayCol = timeline.DaysBetween(m.Span.Start, m.Today) * m.Width / total
	}

	var b strings.Builder
	for i, on := range cells {
		switch {
		case on && r.IsMilestone():
			b.WriteString(milestoneStyle.Render("◆"))
		case on:
			b.WriteString(barStyle.Render("█"))
		case i == todayCol:
			b.WriteString(todayStyle.Render("│"))
		default:
			b.WriteString(listDimStyle.Render("·"))
		}
	}
	return b.String()
}

// barCells maps a task onto width character cells spanning span. A cell is
// set when any day it covers lies within the task. Invalid or inverted
// ranges set nothing; milestones set exactly one cell.
func barCells(start, end time.Time, span task.Span, width int) []bool {
	cells := make([]bool, width)
	total := span.Days()
	if width <= 0 || total <= 0 || !timeline.Valid(start) || !timeline.Valid(end) {
		return cells
	}
	from := timeline.DaysBetween(span.Start, start)
	to := timeline.DaysBetween(span.Start, end)
	if to < from || to < 0 || from >= total {
		return cells
	}
	from, to = max(from, 0), min(to, total-1)

	first := from * width / total
	last := max((to+1)*width/total-1, first)
	for i := first; i <= last && i < width; i++ {
		cells[i] = true
	}
	return cells
}

func rowTitle(r task.Row) string {
	marker := "  "
	if r.HasChildren {
		marker = "▾ "
		if !r.IsExpanded() {
			marker = "▸ "
		}
	}
	return strings.Repeat("  ", r.Level) + marker + r.Title
}

// padRight pads or truncates s to exactly n cells.
func padRight(s string, n int) string {
	w := lipgloss.Width(s)
	if w > n {
		runes := []rune(s)
		for len(runes) > 0 && lipgloss.Width(string(runes))+1 > n {
			runes = runes[:len(runes)-1]
		}
		return string(runes) + "…"
	}
	return s + strings.Repeat(" ", n-w)
}
