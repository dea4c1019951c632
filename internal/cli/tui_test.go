package cli

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/ganttline/pkg/task"
	"github.com/matzehuels/ganttline/pkg/timeline"
)

func d(s string) time.Time { return timeline.Parse(s) }

func browseForest() task.Forest {
	return task.Forest{
		{
			ID: "p", Title: "Plan", Start: d("2025-01-06"), End: d("2025-01-10"),
			Children: []*task.Item{
				{ID: "a", Title: "Draft", Start: d("2025-01-06"), End: d("2025-01-07")},
				{ID: "b", Title: "Review", Start: d("2025-01-08"), End: d("2025-01-08"), Type: task.TypeMilestone},
			},
		},
		{
			ID: "q", Title: "Later", Start: d("2025-01-13"), End: d("2025-01-14"), Expanded: task.Bool(false),
			Children: []*task.Item{{ID: "c", Title: "Hidden", Start: d("2025-01-13"), End: d("2025-01-14")}},
		},
	}
}

func rowIDs(rows []task.Row) string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = string(r.ID)
	}
	return strings.Join(ids, ",")
}

func press(m BrowseModel, keys ...tea.KeyMsg) BrowseModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(BrowseModel)
	}
	return m
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
)

func runeKey(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

func TestBrowseModelToggle(t *testing.T) {
	forest := browseForest()
	m := NewBrowseModel(forest, 0, d("2025-01-08"))

	if got := rowIDs(m.Rows); got != "p,a,b,q" {
		t.Fatalf("initial rows = %s", got)
	}

	m = press(m, keyDown, keyDown, keyDown, keyEnter)
	if got := rowIDs(m.Rows); got != "p,a,b,q,c" {
		t.Errorf("rows after expanding q = %s", got)
	}
	if m.Rows[m.Cursor].ID != "q" {
		t.Errorf("cursor moved to %s, want q", m.Rows[m.Cursor].ID)
	}
	if !m.Changed {
		t.Error("model should record the change")
	}
	if forest[1].IsExpanded() {
		t.Error("toggle mutated the caller's forest")
	}

	m = press(m, runeKey('c'))
	if got := rowIDs(m.Rows); got != "p,q" {
		t.Errorf("rows after collapse all = %s", got)
	}
	if m.Rows[m.Cursor].ID != "q" {
		t.Errorf("cursor = %s after collapse all, want q", m.Rows[m.Cursor].ID)
	}

	m = press(m, runeKey('e'))
	if got := rowIDs(m.Rows); got != "p,a,b,q,c" {
		t.Errorf("rows after expand all = %s", got)
	}
}

func TestBrowseModelLeafToggleIsNoop(t *testing.T) {
	m := NewBrowseModel(browseForest(), 0, d("2025-01-08"))
	m = press(m, keyDown, keyEnter)
	if m.Changed || rowIDs(m.Rows) != "p,a,b,q" {
		t.Errorf("toggling a leaf changed the model: %s", rowIDs(m.Rows))
	}
}

func TestBrowseModelChangedTracksExpansion(t *testing.T) {
	m := NewBrowseModel(browseForest(), 0, d("2025-01-08"))
	m = press(m, keyDown, keyDown, keyDown, keyEnter)
	if !m.Changed {
		t.Fatal("expanding q should mark the model changed")
	}
	m = press(m, keyEnter)
	if m.Changed {
		t.Error("collapsing q again restores the loaded state")
	}

	expanded := NewBrowseModel(task.ExpandAll(browseForest()), 0, d("2025-01-08"))
	expanded = press(expanded, runeKey('e'))
	if expanded.Changed {
		t.Error("expand all on an expanded forest is not a change")
	}
	expanded = press(expanded, runeKey('c'))
	if !expanded.Changed {
		t.Error("collapse all should mark the model changed")
	}
}

func TestBrowseModelCursorBounds(t *testing.T) {
	m := NewBrowseModel(browseForest(), 0, d("2025-01-08"))
	m = press(m, keyUp, keyUp)
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.Cursor)
	}
	m = press(m, keyDown, keyDown, keyDown, keyDown, keyDown, keyDown)
	if m.Cursor != len(m.Rows)-1 {
		t.Errorf("cursor = %d, want %d", m.Cursor, len(m.Rows)-1)
	}

	m.Height = 2
	m = press(m, keyUp, keyUp, keyUp)
	if m.Offset != m.Cursor {
		t.Errorf("offset = %d, want cursor %d", m.Offset, m.Cursor)
	}
}

func TestBrowseModelQuit(t *testing.T) {
	m := NewBrowseModel(browseForest(), 0, d("2025-01-08"))
	if _, cmd := m.Update(runeKey('q')); cmd == nil {
		t.Error("q should return a quit command")
	}
}

func TestBrowseModelView(t *testing.T) {
	m := NewBrowseModel(browseForest(), 0, d("2025-01-08"))
	view := m.View()
	for _, want := range []string{"Plan", "Draft", "Later", "[1/4]", "2025-01-06 .. 2025-01-14"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Hidden") {
		t.Error("collapsed child shown")
	}

	empty := NewBrowseModel(nil, 0, d("2025-01-08"))
	if !strings.Contains(empty.View(), "no tasks") {
		t.Error("empty model should say so")
	}
	empty = press(empty, keyDown, keyEnter)
	if empty.Cursor != 0 {
		t.Errorf("cursor on empty model = %d", empty.Cursor)
	}
}

func TestBarCells(t *testing.T) {
	span := task.Span{Start: d("2025-01-01"), End: d("2025-01-10")}

	tests := []struct {
		name       string
		start, end string
		width      int
		want       string
	}{
		{"one cell per day", "2025-01-03", "2025-01-04", 10, "..##......"},
		{"scaled down", "2025-01-03", "2025-01-04", 5, ".#..."},
		{"milestone", "2025-01-05", "2025-01-05", 10, "....#....."},
		{"clipped start", "2024-12-25", "2025-01-02", 10, "##........"},
		{"clipped end", "2025-01-09", "2025-01-20", 10, "........##"},
		{"inverted", "2025-01-05", "2025-01-03", 10, ".........."},
		{"outside", "2025-02-01", "2025-02-03", 10, ".........."},
		{"invalid", "", "2025-01-03", 10, ".........."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := barCells(d(tt.start), d(tt.end), span, tt.width)
			var b strings.Builder
			for _, on := range cells {
				if on {
					b.WriteByte('#')
				} else {
					b.WriteByte('.')
				}
			}
			if got := b.String(); got != tt.want {
				t.Errorf("barCells() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("abc", 5); got != "abc  " {
		t.Errorf("padRight() = %q", got)
	}
	if got := padRight("abcdefgh", 5); got != "abcd…" {
		t.Errorf("padRight() = %q", got)
	}
}
