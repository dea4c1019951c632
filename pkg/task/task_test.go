package task

import (
	"testing"
	"time"

	gerrors "github.com/matzehuels/ganttline/pkg/errors"
	"github.com/matzehuels/ganttline/pkg/timeline"
)

func d(s string) time.Time {
	t := timeline.Parse(s)
	if !timeline.Valid(t) {
		panic("bad test date " + s)
	}
	return t
}

// sample builds:
//
//	1 (2025-01-01..2025-01-03)
//	  2 (2025-01-02..2025-01-05)
//	    3 (2025-01-04..2025-01-04)
//	4 (2025-01-10..2025-01-12)
func sample() Forest {
	return Forest{
		{
			ID: "1", Title: "Design", Start: d("2025-01-01"), End: d("2025-01-03"),
			Children: []*Item{{
				ID: "2", Title: "Wireframes", Start: d("2025-01-02"), End: d("2025-01-05"),
				Children: []*Item{{
					ID: "3", Title: "Review", Type: TypeMilestone,
					Start: d("2025-01-04"), End: d("2025-01-04"),
				}},
			}},
		},
		{ID: "4", Title: "Build", Start: d("2025-01-10"), End: d("2025-01-12"), Extra: map[string]any{"owner": "kim"}},
	}
}

func ids(rows []Row) []ID {
	out := make([]ID, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func equalIDs(a, b []ID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFlatten(t *testing.T) {
	t.Run("worked example", func(t *testing.T) {
		forest := Forest{{
			ID: "1", Start: d("2025-01-01"), End: d("2025-01-03"),
			Children: []*Item{{ID: "2", Start: d("2025-01-02"), End: d("2025-01-05")}},
		}}
		rows := Flatten(forest)
		if len(rows) != 2 {
			t.Fatalf("len = %d, want 2", len(rows))
		}
		if rows[0].Level != 0 || rows[1].Level != 1 {
			t.Errorf("levels = [%d %d], want [0 1]", rows[0].Level, rows[1].Level)
		}
		if !rows[0].HasChildren || rows[1].HasChildren {
			t.Errorf("hasChildren = [%v %v], want [true false]", rows[0].HasChildren, rows[1].HasChildren)
		}
	})

	t.Run("pre-order", func(t *testing.T) {
		got := ids(Flatten(sample()))
		want := []ID{"1", "2", "3", "4"}
		if !equalIDs(got, want) {
			t.Errorf("order = %v, want %v", got, want)
		}
	})

	t.Run("collapsed subtree skipped", func(t *testing.T) {
		forest := sample()
		forest[0].Children[0].Expanded = Bool(false)
		got := ids(Flatten(forest))
		want := []ID{"1", "2", "4"}
		if !equalIDs(got, want) {
			t.Errorf("order = %v, want %v", got, want)
		}
	})

	t.Run("collapsed root keeps hasChildren", func(t *testing.T) {
		forest := sample()
		forest[0].Expanded = Bool(false)
		rows := Flatten(forest)
		if !equalIDs(ids(rows), []ID{"1", "4"}) {
			t.Fatalf("order = %v", ids(rows))
		}
		if !rows[0].HasChildren {
			t.Error("collapsed parent should still report children")
		}
	})

	t.Run("explicit true and nil both expand", func(t *testing.T) {
		forest := sample()
		forest[0].Expanded = Bool(true)
		if n := len(Flatten(forest)); n != 4 {
			t.Errorf("len = %d, want 4", n)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if rows := Flatten(nil); len(rows) != 0 {
			t.Errorf("Flatten(nil) len = %d", len(rows))
		}
		if rows := Flatten(Forest{}); len(rows) != 0 {
			t.Errorf("Flatten(empty) len = %d", len(rows))
		}
	})

	t.Run("rows are copies", func(t *testing.T) {
		forest := sample()
		rows := Flatten(forest)
		rows[0].Title = "changed"
		rows[3].Extra["owner"] = "lee"
		if forest[0].Title != "Design" {
			t.Error("title of input changed")
		}
		if forest[1].Extra["owner"] != "kim" {
			t.Error("extra of input changed")
		}
		if rows[0].Children != nil {
			t.Error("row should not carry children")
		}
	})

	t.Run("levels match depth", func(t *testing.T) {
		for _, r := range Flatten(sample()) {
			path := Path(sample(), r.ID)
			if len(path)-1 != r.Level {
				t.Errorf("%s: level %d, path depth %d", r.ID, r.Level, len(path)-1)
			}
		}
	})
}

func TestFlattenCycleTerminates(t *testing.T) {
	a := &Item{ID: "a", Start: d("2025-01-01"), End: d("2025-01-02")}
	b := &Item{ID: "b", Start: d("2025-01-01"), End: d("2025-01-02")}
	a.Children = []*Item{b}
	b.Children = []*Item{a}

	rows := Flatten(Forest{a})
	if !equalIDs(ids(rows), []ID{"a", "b"}) {
		t.Errorf("order = %v, want [a b]", ids(rows))
	}
	if n := Count(Forest{a}); n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}

func TestFlattenNeverExceedsNodes(t *testing.T) {
	shared := &Item{ID: "s"}
	forest := Forest{
		{ID: "p1", Children: []*Item{shared}},
		{ID: "p2", Children: []*Item{shared}},
	}
	if rows, n := len(Flatten(forest)), Count(forest); rows > n {
		t.Errorf("rows %d > nodes %d", rows, n)
	}
}

func TestFindByID(t *testing.T) {
	forest := sample()
	forest[0].Expanded = Bool(false)

	tests := []struct {
		id    ID
		found bool
		title string
	}{
		{"1", true, "Design"},
		{"3", true, "Review"},
		{"4", true, "Build"},
		{"nope", false, ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			it, ok := FindByID(forest, tt.id)
			if ok != tt.found {
				t.Fatalf("found = %v, want %v", ok, tt.found)
			}
			if !ok {
				if it != nil {
					t.Error("not-found should return nil")
				}
				return
			}
			if it.Title != tt.title {
				t.Errorf("title = %q, want %q", it.Title, tt.title)
			}
		})
	}
}

func TestFindByIDReturnsOriginal(t *testing.T) {
	forest := sample()
	it, ok := FindByID(forest, "2")
	if !ok || it != forest[0].Children[0] {
		t.Fatal("FindByID should return the node in the forest")
	}
}

func TestFindByIDFirstMatchWins(t *testing.T) {
	forest := Forest{
		{ID: "x", Title: "parent", Children: []*Item{{ID: "dup", Title: "deep"}}},
		{ID: "dup", Title: "root"},
	}
	it, _ := FindByID(forest, "dup")
	if it.Title != "deep" {
		t.Errorf("got %q, want pre-order first match %q", it.Title, "deep")
	}
}

func TestOverallRangeAt(t *testing.T) {
	now := d("2025-06-15 10:00")

	t.Run("worked example", func(t *testing.T) {
		forest := Forest{{
			ID: "1", Start: d("2025-01-01"), End: d("2025-01-03"),
			Children: []*Item{{ID: "2", Start: d("2025-01-02"), End: d("2025-01-05")}},
		}}
		got := OverallRangeAt(forest, 0, now)
		if !got.Start.Equal(d("2025-01-01")) || !got.End.Equal(d("2025-01-05")) {
			t.Errorf("range = %v..%v, want 2025-01-01..2025-01-05", got.Start, got.End)
		}
	})

	t.Run("buffer pads both sides", func(t *testing.T) {
		got := OverallRangeAt(sample(), DefaultBuffer, now)
		if !got.Start.Equal(d("2024-12-25")) || !got.End.Equal(d("2025-01-19")) {
			t.Errorf("range = %v..%v", got.Start, got.End)
		}
	})

	t.Run("collapsed nodes still count", func(t *testing.T) {
		forest := Forest{{
			ID: "1", Start: d("2025-01-01"), End: d("2025-01-03"), Expanded: Bool(false),
			Children: []*Item{{ID: "2", Start: d("2025-01-02"), End: d("2025-02-01")}},
		}}
		got := OverallRangeAt(forest, 0, now)
		if !got.End.Equal(d("2025-02-01")) {
			t.Errorf("end = %v, want 2025-02-01", got.End)
		}
	})

	t.Run("empty forest", func(t *testing.T) {
		got := OverallRangeAt(nil, 7, now)
		if !got.Start.Equal(now.AddDate(0, 0, -7)) || !got.End.Equal(now.AddDate(0, 0, 7)) {
			t.Errorf("range = %v..%v", got.Start, got.End)
		}
	})

	t.Run("inverted task uses raw values", func(t *testing.T) {
		forest := Forest{{ID: "1", Start: d("2025-03-10"), End: d("2025-03-09")}}
		got := OverallRangeAt(forest, 0, now)
		if !got.Start.Equal(d("2025-03-10")) || !got.End.Equal(d("2025-03-09")) {
			t.Errorf("range = %v..%v", got.Start, got.End)
		}
	})

	t.Run("invalid dates skipped", func(t *testing.T) {
		forest := Forest{
			{ID: "1", Start: timeline.Invalid, End: d("2025-01-08")},
			{ID: "2", Start: d("2025-01-03"), End: timeline.Invalid},
		}
		got := OverallRangeAt(forest, 0, now)
		if !got.Start.Equal(d("2025-01-03")) || !got.End.Equal(d("2025-01-08")) {
			t.Errorf("range = %v..%v", got.Start, got.End)
		}
	})

	t.Run("only ends valid", func(t *testing.T) {
		forest := Forest{
			{ID: "1", End: d("2025-01-08")},
			{ID: "2", End: d("2025-01-05")},
		}
		got := OverallRangeAt(forest, 0, now)
		if !got.Start.Equal(d("2025-01-05")) || !got.End.Equal(d("2025-01-08")) {
			t.Errorf("range = %v..%v", got.Start, got.End)
		}
	})

	t.Run("no valid dates", func(t *testing.T) {
		forest := Forest{{ID: "1"}}
		got := OverallRangeAt(forest, 1, now)
		if !got.Start.Equal(now.AddDate(0, 0, -1)) {
			t.Errorf("start = %v", got.Start)
		}
	})

	t.Run("covers every task", func(t *testing.T) {
		forest := sample()
		span := OverallRangeAt(forest, 2, now)
		Walk(forest, func(it *Item, _ int) bool {
			if it.Start.Before(span.Start) || it.End.After(span.End) {
				t.Errorf("task %s outside span", it.ID)
			}
			return true
		})
	})
}

func TestSpan(t *testing.T) {
	s := Span{Start: d("2025-01-01 09:00"), End: d("2025-01-03 01:00")}
	if got := s.Days(); got != 3 {
		t.Errorf("Days() = %d, want 3", got)
	}
	tr := s.Truncate()
	if !tr.Start.Equal(d("2025-01-01")) || !tr.End.Equal(d("2025-01-03")) {
		t.Errorf("Truncate() = %v..%v", tr.Start, tr.End)
	}
	if !s.Contains(d("2025-01-02")) || s.Contains(d("2025-01-04")) {
		t.Error("Contains() mismatch")
	}
}

func TestItemDuration(t *testing.T) {
	inverted := &Item{Start: d("2025-03-10"), End: d("2025-03-09")}
	if got := inverted.Duration(); got != 0 {
		t.Errorf("inverted Duration() = %d, want 0", got)
	}
	same := &Item{Start: d("2025-03-10"), End: d("2025-03-10")}
	if got := same.Duration(); got != 1 {
		t.Errorf("same-day Duration() = %d, want 1", got)
	}
}

func TestCountDepth(t *testing.T) {
	if n := Count(sample()); n != 4 {
		t.Errorf("Count = %d, want 4", n)
	}
	if n := Depth(sample()); n != 3 {
		t.Errorf("Depth = %d, want 3", n)
	}
	if n := Depth(nil); n != 0 {
		t.Errorf("Depth(nil) = %d, want 0", n)
	}
}

func TestWalkStops(t *testing.T) {
	var seen []ID
	Walk(sample(), func(it *Item, _ int) bool {
		seen = append(seen, it.ID)
		return it.ID != "2"
	})
	if !equalIDs(seen, []ID{"1", "2"}) {
		t.Errorf("visited %v, want [1 2]", seen)
	}
}

func TestExpandCollapseAll(t *testing.T) {
	forest := sample()

	collapsed := CollapseAll(forest)
	if got := ids(Flatten(collapsed)); !equalIDs(got, []ID{"1", "4"}) {
		t.Errorf("collapsed rows = %v", got)
	}
	if forest[0].Expanded != nil {
		t.Error("CollapseAll modified its input")
	}
	if collapsed[1].Expanded != nil {
		t.Error("leaf should keep its unset flag")
	}

	expanded := ExpandAll(collapsed)
	if got := ids(Flatten(expanded)); !equalIDs(got, []ID{"1", "2", "3", "4"}) {
		t.Errorf("expanded rows = %v", got)
	}
}

func TestSetExpandedAndToggle(t *testing.T) {
	forest := sample()

	out, ok := SetExpanded(forest, "2", false)
	if !ok {
		t.Fatal("SetExpanded did not find task 2")
	}
	if got := ids(Flatten(out)); !equalIDs(got, []ID{"1", "2", "4"}) {
		t.Errorf("rows = %v", got)
	}

	if _, ok := SetExpanded(forest, "missing", true); ok {
		t.Error("SetExpanded reported a missing id as found")
	}

	back, ok := Toggle(out, "2")
	if !ok {
		t.Fatal("Toggle did not find task 2")
	}
	if n := len(Flatten(back)); n != 4 {
		t.Errorf("after toggle len = %d, want 4", n)
	}
}

func TestFilter(t *testing.T) {
	forest := sample()

	got := Filter(forest, func(it *Item) bool { return it.IsMilestone() })
	if rows := ids(Flatten(got)); !equalIDs(rows, []ID{"1", "2", "3"}) {
		t.Errorf("filtered rows = %v, want ancestors plus match", rows)
	}

	none := Filter(forest, func(*Item) bool { return false })
	if len(none) != 0 {
		t.Errorf("filter nothing len = %d", len(none))
	}

	all := Filter(forest, nil)
	if Count(all) != Count(forest) {
		t.Error("nil predicate should keep everything")
	}
	if all[0] == forest[0] {
		t.Error("Filter should return copies")
	}
}

func TestPath(t *testing.T) {
	path := Path(sample(), "3")
	if len(path) != 3 || path[0].ID != "1" || path[2].ID != "3" {
		t.Errorf("Path = %v", path)
	}
	if Path(sample(), "zzz") != nil {
		t.Error("missing id should give nil path")
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(sample()); err != nil {
		t.Fatalf("Validate(sample) = %v", err)
	}
	if err := Validate(nil); err != nil {
		t.Fatalf("Validate(nil) = %v", err)
	}

	cyclic := &Item{ID: "c", Start: d("2025-01-01"), End: d("2025-01-01")}
	cyclic.Children = []*Item{cyclic}

	shared := &Item{ID: "s", Start: d("2025-01-01"), End: d("2025-01-01")}

	tests := []struct {
		name   string
		forest Forest
		code   gerrors.Code
	}{
		{"inverted", Forest{{ID: "1", Start: d("2025-03-10"), End: d("2025-03-09")}}, gerrors.ErrCodeInvertedRange},
		{"invalid date", Forest{{ID: "1", Start: timeline.Invalid, End: d("2025-03-09")}}, gerrors.ErrCodeInvalidDate},
		{"empty id", Forest{{ID: " ", Start: d("2025-03-09"), End: d("2025-03-09")}}, gerrors.ErrCodeEmptyID},
		{"duplicate", Forest{
			{ID: "1", Start: d("2025-03-09"), End: d("2025-03-09")},
			{ID: "1", Start: d("2025-03-09"), End: d("2025-03-09")},
		}, gerrors.ErrCodeDuplicateID},
		{"cycle", Forest{cyclic}, gerrors.ErrCodeCycle},
		{"shared", Forest{
			{ID: "p1", Start: d("2025-01-01"), End: d("2025-01-01"), Children: []*Item{shared}},
			{ID: "p2", Start: d("2025-01-01"), End: d("2025-01-01"), Children: []*Item{shared}},
		}, gerrors.ErrCodeCycle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.forest)
			if err == nil {
				t.Fatal("expected error")
			}
			if !gerrors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestValidateReportsAll(t *testing.T) {
	forest := Forest{
		{ID: "1", Start: d("2025-03-10"), End: d("2025-03-09")},
		{ID: "1", Start: timeline.Invalid, End: d("2025-03-09")},
	}
	err := Validate(forest)
	for _, code := range []gerrors.Code{gerrors.ErrCodeInvertedRange, gerrors.ErrCodeDuplicateID, gerrors.ErrCodeInvalidDate} {
		if !gerrors.Is(err, code) {
			t.Errorf("missing %s in %v", code, err)
		}
	}
}
