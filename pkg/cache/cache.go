// Package cache stores computed layouts and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry below a directory (CLI default)
//   - [RedisCache]: a shared Redis instance
//   - [NullCache]: caching disabled
//
// [Open] picks a backend from a [Config].
//
// # Keys
//
// A [Keyer] derives keys from content hashes plus the options that affect
// the stored value, so changing any option produces a different key:
//
//	key := keyer.LayoutKey(cache.Hash(taskData), cache.LayoutKeyOpts{ViewMode: "week"})
//
// [ScopedKeyer] prefixes every key. The pipeline uses it to keep entries of
// different layout schema versions apart.
package cache

import (
	"context"
	"time"
)

// TTLs for cached values. Layouts depend on the current day through the
// today marker, so they expire sooner than artifacts keyed by layout hash.
const (
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey identifies a layout computed from a task forest.
	LayoutKey(forestHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies one rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the layout inputs besides the forest.
type LayoutKeyOpts struct {
	ViewMode          string  `json:"view_mode"`
	CellWidth         float64 `json:"cell_width"`
	CellHeight        float64 `json:"cell_height"`
	HeaderHeight      float64 `json:"header_height"`
	TaskListWidth     float64 `json:"task_list_width"`
	Buffer            int     `json:"buffer"`
	ShowTodayLine     bool    `json:"show_today_line"`
	HighlightWeekends bool    `json:"highlight_weekends"`
	ExpandAll         bool    `json:"expand_all"`
	DateFormat        string  `json:"date_format"`
	RangeStart        string  `json:"range_start,omitempty"`
	RangeEnd          string  `json:"range_end,omitempty"`
	// Day is the calendar day the layout was computed on.
	Day string `json:"day"`
}

// ArtifactKeyOpts are the render inputs besides the layout.
type ArtifactKeyOpts struct {
	Format       string  `json:"format"`
	Style        string  `json:"style"`
	VizType      string  `json:"viz_type"`
	HideTaskList bool    `json:"hide_task_list"`
	HideProgress bool    `json:"hide_progress"`
	Detailed     bool    `json:"detailed"`
	VisibleOnly  bool    `json:"visible_only"`
	Scale        float64 `json:"scale"`
}

// DefaultKeyer hashes the options into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a [DefaultKeyer].
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(forestHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", forestHash, opts)
}

// ArtifactKey returns "artifact:<format>:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
