package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ganttline/pkg/cache"
	pkgio "github.com/matzehuels/ganttline/pkg/io"
	"github.com/matzehuels/ganttline/pkg/layout"
	"github.com/matzehuels/ganttline/pkg/observability"
	"github.com/matzehuels/ganttline/pkg/task"
)

// Cache key types reported to observability hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// A nil keyer becomes a DefaultKeyer scoped to the current
// [layout.SchemaVersion]; a nil cache disables caching.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), fmt.Sprintf("v%d:", layout.SchemaVersion))
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → validate → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	forest, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Forest = forest
	result.ForestHash = forestHash(forest, opts)
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.TaskCount = task.Count(forest)

	r.Logger.Info("loaded tasks",
		"tasks", result.Stats.TaskCount,
		"roots", len(forest),
		"duration", result.Stats.LoadTime)

	// Stage 2: Validate
	problems, err := Check(forest, opts)
	if err != nil {
		return nil, err
	}
	result.Problems = problems

	// Stage 3: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, forest, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.RowCount = len(l.Rows)
	result.Stats.Days = len(l.Days)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"rows", len(l.Rows),
		"days", len(l.Days),
		"view", l.ViewMode,
		"duration", result.Stats.LayoutTime)

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, forest, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads the task forest. Task files are small and cheap to parse, so
// this stage is not cached.
func (r *Runner) Load(ctx context.Context, opts Options) (task.Forest, error) {
	r.applyLogger(&opts)
	return Load(ctx, opts)
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, forest task.Forest, opts Options) (layout.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Layout{}, false, err
	}

	hash := forestHash(forest, opts)
	cacheable := hash != "" && opts.View.DateFormatter == nil
	cacheKey := r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts())

	if cacheable && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := layout.UnmarshalLayout(data); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeLayout)
				return cached, true, nil
			}
		} else if err != nil {
			opts.Logger.Warn("cache read failed", "err", err)
		}
	}
	observability.Cache().OnCacheMiss(ctx, keyTypeLayout)

	l, err := ComputeLayout(ctx, forest, opts)
	if err != nil {
		return layout.Layout{}, false, err
	}

	// Formatter functions cannot be part of the key.
	if cacheable {
		if data, err := layout.MarshalLayout(l); err == nil {
			r.store(ctx, cacheKey, keyTypeLayout, data, cache.TTLLayout)
		}
	}
	return l, false, nil
}

// ComputeLayout is a convenience wrapper that discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, forest task.Forest, opts Options) (layout.Layout, error) {
	l, _, err := r.ComputeLayoutWithCacheInfo(ctx, forest, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// The hit is reported only when every format came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l layout.Layout, forest task.Forest, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	// Charts are keyed by layout, tree diagrams by forest.
	var contentHash string
	switch {
	case opts.IsTree() && forest == nil:
	case opts.IsTree():
		contentHash = forestHash(forest, opts)
	default:
		data, err := layout.MarshalLayout(l)
		if err != nil {
			return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
		}
		contentHash = cache.Hash(data)
	}
	cacheable := contentHash != "" && opts.View.DateFormatter == nil

	if cacheable && !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(contentHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
			return artifacts, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)

	rendered, err := Render(ctx, l, forest, opts)
	if err != nil {
		return nil, false, err
	}

	if cacheable {
		for format, data := range rendered {
			key := r.Keyer.ArtifactKey(contentHash, opts.ArtifactKeyOpts(format))
			r.store(ctx, key, keyTypeArtifact, data, cache.TTLArtifact)
		}
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l layout.Layout, forest task.Forest, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, forest, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) store(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// forestHash hashes the forest in its file representation, which keeps
// times of day. Tasks whose ids were generated at load time hash
// differently on every load. An empty result means the forest could not
// be encoded and is not cached.
func forestHash(forest task.Forest, opts Options) string {
	var buf bytes.Buffer
	if err := pkgio.WriteJSON(forest, &buf, opts.Keys()); err != nil {
		return ""
	}
	return cache.Hash(buf.Bytes())
}
