package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/ganttline/pkg/cache"
	"github.com/matzehuels/ganttline/pkg/errors"
	pkgio "github.com/matzehuels/ganttline/pkg/io"
	"github.com/matzehuels/ganttline/pkg/layout"
	"github.com/matzehuels/ganttline/pkg/observability"
)

const sampleTasks = `[
  {"id": 1, "title": "Parent", "startDate": "2025-01-01", "endDate": "2025-01-03",
   "children": [{"id": 2, "title": "Child", "startDate": "2025-01-02", "endDate": "2025-01-05"}]}
]`

func fixedNow() time.Time { return time.Date(2025, 1, 3, 12, 0, 0, 0, time.Local) }

func sampleOptions() Options {
	zero := 0
	return Options{
		Data:       []byte(sampleTasks),
		DataFormat: pkgio.FormatJSON,
		View:       layout.ViewConfig{Buffer: &zero, ShowTodayLine: true},
		Formats:    []string{"svg", "json"},
		Now:        fixedNow,
	}
}

// memCache is an in-memory cache.Cache for tests.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateStyleAndVizType(t *testing.T) {
	for _, s := range []string{"simple", "dark", "light"} {
		if err := ValidateStyle(s); err != nil {
			t.Errorf("ValidateStyle(%q) = %v", s, err)
		}
	}
	if err := ValidateStyle("handdrawn"); !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("ValidateStyle(handdrawn) = %v", err)
	}
	for _, v := range []string{"gantt", "tree"} {
		if err := ValidateVizType(v); err != nil {
			t.Errorf("ValidateVizType(%q) = %v", v, err)
		}
	}
	if err := ValidateVizType("tower"); !errors.Is(err, errors.ErrCodeInvalidVizType) {
		t.Errorf("ValidateVizType(tower) = %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Input: "plan.yaml", Formats: []string{" SVG", "svg", "pdf"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.VizType != VizTypeGantt || opts.Style != DefaultStyle || opts.Scale != DefaultScale {
		t.Errorf("defaults = %q %q %v", opts.VizType, opts.Style, opts.Scale)
	}
	if strings.Join(opts.Formats, ",") != "svg,pdf" {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.View.CellWidth != DefaultCellWidth || opts.View.BufferDays() != DefaultBuffer {
		t.Errorf("View defaults = %+v", opts.View)
	}
	if opts.Logger == nil || opts.Now == nil {
		t.Error("runtime defaults not set")
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"no input", Options{}, errors.ErrCodeInvalidInput},
		{"bad extension", Options{Input: "plan.csv"}, errors.ErrCodeInvalidPath},
		{"bad view mode", Options{Input: "plan.json", View: layout.ViewConfig{ViewMode: "year"}}, errors.ErrCodeInvalidViewMode},
		{"bad format", Options{Input: "plan.json", Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"bad style", Options{Input: "plan.json", Style: "neon"}, errors.ErrCodeInvalidStyle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestExecute(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	result, err := runner.Execute(context.Background(), sampleOptions())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.TaskCount != 2 || result.Stats.RowCount != 2 || result.Stats.Days != 5 {
		t.Errorf("stats = %+v", result.Stats)
	}
	if result.Problems != nil {
		t.Errorf("unexpected problems: %v", result.Problems)
	}
	if result.Layout.TodayX == nil {
		t.Error("today line missing for injected clock")
	}
	if !strings.Contains(string(result.Artifacts["svg"]), `id="task-2"`) {
		t.Error("svg artifact missing child bar")
	}

	var decoded map[string]any
	if err := json.Unmarshal(result.Artifacts["json"], &decoded); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if decoded["view_mode"] != "day" {
		t.Errorf("json view_mode = %v", decoded["view_mode"])
	}
}

func TestExecuteCaching(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	runner := NewRunner(c, nil, nil)

	first, err := runner.Execute(ctx, sampleOptions())
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run hit cache: %+v", first.CacheInfo)
	}
	if c.sets != 3 {
		t.Errorf("cache writes = %d, want 3 (layout + 2 artifacts)", c.sets)
	}

	second, err := runner.Execute(ctx, sampleOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run missed cache: %+v", second.CacheInfo)
	}
	if string(second.Artifacts["svg"]) != string(first.Artifacts["svg"]) {
		t.Error("cached svg differs")
	}

	opts := sampleOptions()
	opts.View.ViewMode = layout.ViewWeek
	third, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit {
		t.Error("changed view mode should miss the layout cache")
	}

	opts = sampleOptions()
	opts.Refresh = true
	fourth, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if fourth.CacheInfo.LayoutHit || fourth.CacheInfo.RenderHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestExecuteCacheKeepsTimeOfDay(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(newMemCache(), nil, nil)

	opts := sampleOptions()
	opts.Data = []byte(`[{"id": 1, "title": "Ship", "startDate": "2025-01-02", "endDate": "2025-01-03"}]`)
	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}

	opts.Data = []byte(`[{"id": 1, "title": "Ship", "startDate": "2025-01-02T15:00", "endDate": "2025-01-03T10:00"}]`)
	second, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if second.CacheInfo.LayoutHit {
		t.Error("a different time of day should miss the layout cache")
	}
	if second.ForestHash == first.ForestHash {
		t.Errorf("forest hashes are equal: %s", first.ForestHash)
	}

	row := second.Layout.Rows[0]
	if want := second.Forest[0].Duration(); row.Duration != want {
		t.Errorf("row duration = %d, want %d", row.Duration, want)
	}
	if want := float64(row.Duration) * second.Layout.DayWidth; row.Bar.Width != want {
		t.Errorf("bar width = %v, want %v", row.Bar.Width, want)
	}
}

func TestExecuteStrict(t *testing.T) {
	data := `[{"id": "a", "startDate": "2025-01-02", "endDate": "2025-01-01"},
	          {"id": "a", "startDate": "2025-01-01", "endDate": "2025-01-01"}]`

	opts := sampleOptions()
	opts.Data = []byte(data)
	result, err := NewRunner(nil, nil, nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("lenient run failed: %v", err)
	}
	if !errors.Is(result.Problems, errors.ErrCodeDuplicateID) || !errors.Is(result.Problems, errors.ErrCodeInvertedRange) {
		t.Errorf("problems = %v", result.Problems)
	}

	opts = sampleOptions()
	opts.Data = []byte(data)
	opts.Strict = true
	_, err = NewRunner(nil, nil, nil).Execute(context.Background(), opts)
	if !errors.Is(err, errors.ErrCodeDuplicateID) {
		t.Errorf("strict run error = %v, want DUPLICATE_ID", err)
	}
}

func TestRenderTreeJSON(t *testing.T) {
	ctx := context.Background()
	opts := sampleOptions()
	forest, err := Load(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}

	opts.VizType = VizTypeTree
	opts.Formats = []string{"json"}
	artifacts, err := Render(ctx, layout.Layout{}, forest, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(artifacts["json"]), `"Child"`) {
		t.Errorf("tree json = %s", artifacts["json"])
	}

	if _, err := Render(ctx, layout.Layout{}, nil, opts); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("tree without forest: %v", err)
	}
}

func TestRenderFromLayoutData(t *testing.T) {
	ctx := context.Background()
	opts := sampleOptions()
	forest, err := Load(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	l, err := ComputeLayout(ctx, forest, opts)
	if err != nil {
		t.Fatal(err)
	}
	data, err := layout.MarshalLayout(l)
	if err != nil {
		t.Fatal(err)
	}

	opts.Formats = []string{"svg"}
	out, err := RenderFromLayoutData(ctx, data, opts)
	if err != nil {
		t.Fatalf("RenderFromLayoutData: %v", err)
	}
	if !strings.Contains(string(out["svg"]), `id="task-1"`) {
		t.Error("svg from layout data missing parent bar")
	}

	if _, err := RenderFromLayoutData(ctx, []byte("{"), opts); err == nil {
		t.Error("broken layout data should fail")
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnLoadStart(context.Context, string) { h.record("load") }
func (h *recordingHooks) OnLayoutStart(context.Context, string, int) {
	h.record("layout")
}
func (h *recordingHooks) OnRenderStart(context.Context, []string) { h.record("render") }

func TestExecuteEmitsHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	if _, err := NewRunner(nil, nil, nil).Execute(context.Background(), sampleOptions()); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(hooks.events, ","); got != "load,layout,render" {
		t.Errorf("events = %s", got)
	}
}

func TestNewRunnerScopesKeysBySchema(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	key := r.Keyer.LayoutKey("abc", cache.LayoutKeyOpts{})
	if want := fmt.Sprintf("v%d:layout:", layout.SchemaVersion); !strings.HasPrefix(key, want) {
		t.Errorf("layout key = %q, want prefix %q", key, want)
	}
}
