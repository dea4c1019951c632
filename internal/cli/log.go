// Package cli implements the ganttline command-line interface.
//
// The commands load task files, compute chart layouts, render charts and
// tree diagrams, answer questions about a task forest, browse it
// interactively, and manage the layout and artifact cache. The CLI is built
// on cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - layout: Compute a chart layout and write it as JSON
//   - render: Render a task file or layout to SVG, PNG, PDF or JSON
//   - inspect: Flatten, search and measure a task forest
//   - browse: Expand and collapse tasks in an interactive terminal view
//   - cache: Clear, locate or summarize the local cache
//
// # Configuration
//
// Defaults come from a TOML file at $XDG_CONFIG_HOME/ganttline/config.toml
// (or --config). Command-line flags override file values.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger stamping lines as "14:32:01.45".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times a command step and logs its completion at debug level.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the time since the previous step, e.g.
// "Loaded 42 tasks (12ms)", and starts timing the next one.
func (p *progress) done(msg string) {
	p.logger.Debugf("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
	p.start = time.Now()
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx for the commands below the root.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
