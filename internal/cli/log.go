// Package cli implements the arrange command-line interface.
//
// This package provides commands for arranging diagrams with the
// force-directed layout engine, re-routing their connections, rendering them
// to SVG, PNG or DOT, and serving the same pipeline over HTTP. The CLI is
// built using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - arrange: Settle shapes and route every connection
//   - route: Re-route connections without moving shapes
//   - render: Export a diagram as SVG, PNG, DOT or a Graphviz preview
//   - inspect: Print shapes, connections and components as tables
//   - serve: Expose the pipeline over HTTP
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// registers logging observability hooks. Loggers are passed through
// context.Context to allow structured progress tracking.
//
// # Configuration
//
// Defaults can be overridden by a TOML file (see [Config]); command-line
// flags override the file.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger writes to w with short wall-clock timestamps ("14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one command stage such as "Arranged" or "Routed".
type progress struct {
	logger *log.Logger
	stage  string
	start  time.Time
}

func newProgress(l *log.Logger, stage string) *progress {
	return &progress{logger: l, stage: stage, start: time.Now()}
}

// done logs a one-line summary at info level, e.g. "Arranged 12 shapes (41ms)".
// keyvals, if any, are logged as a separate debug line so the summary stays
// short without --verbose.
func (p *progress) done(n int, noun string, keyvals ...any) {
	if n != 1 {
		noun += "s"
	}
	p.logger.Infof("%s %d %s (%s)", p.stage, n, noun, time.Since(p.start).Round(time.Millisecond))
	if len(keyvals) > 0 {
		p.logger.Debug(fmt.Sprintf("%s %s", p.stage, noun), keyvals...)
	}
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx for the command handlers.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger set by withLogger, or log.Default()
// when a handler runs outside the root command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
