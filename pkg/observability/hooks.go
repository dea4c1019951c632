// Package observability lets callers watch the chart pipeline and the
// cache without the libraries depending on a metrics or tracing backend.
//
// Libraries report through [Pipeline] and [Cache]; both return no-op hooks
// until a program installs its own:
//
//	observability.SetPipelineHooks(observability.NewLogHooks(logger))
//	observability.SetCacheHooks(observability.NewLogHooks(logger))
//
// The pipeline brackets each stage with a start and a complete event:
//
//	observability.Pipeline().OnLoadStart(ctx, path)
//	forest, err := pkgio.Import(path, keys)
//	observability.Pipeline().OnLoadComplete(ctx, path, task.Count(forest), time.Since(start), err)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives stage events from the chart pipeline.
type PipelineHooks interface {
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, taskCount int, duration time.Duration, err error)

	OnLayoutStart(ctx context.Context, viewMode string, taskCount int)
	OnLayoutComplete(ctx context.Context, viewMode string, rowCount int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives lookups and writes. keyType is "layout" or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopPipelineHooks ignores every event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string)                                 {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error)   {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, string, int)                          {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                             {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)    {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// hookSet is swapped as a whole so readers never see a torn update.
type hookSet struct {
	pipeline PipelineHooks
	cache    CacheHooks
}

var hooks atomic.Pointer[hookSet]

func init() { Reset() }

func current() *hookSet { return hooks.Load() }

// SetPipelineHooks installs h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h == nil {
		return
	}
	for {
		old := current()
		next := &hookSet{pipeline: h, cache: old.cache}
		if hooks.CompareAndSwap(old, next) {
			return
		}
	}
}

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	for {
		old := current()
		next := &hookSet{pipeline: old.pipeline, cache: h}
		if hooks.CompareAndSwap(old, next) {
			return
		}
	}
}

// Pipeline returns the installed pipeline hooks.
func Pipeline() PipelineHooks { return current().pipeline }

// Cache returns the installed cache hooks.
func Cache() CacheHooks { return current().cache }

// Reset reinstalls the no-op hooks. Tests call it to undo registrations.
func Reset() {
	hooks.Store(&hookSet{pipeline: NoopPipelineHooks{}, cache: NoopCacheHooks{}})
}
