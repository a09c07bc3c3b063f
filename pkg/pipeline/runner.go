package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arrange/pkg/diagram"
	"github.com/matzehuels/arrange/pkg/layout"
	"github.com/matzehuels/arrange/pkg/observability"
	"github.com/matzehuels/arrange/pkg/render"

	apperrors "github.com/matzehuels/arrange/pkg/errors"
)

// Runner executes pipeline stages.
//
// The Runner is stateless except for the logger; it doesn't store pipeline
// results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete layout → route → render pipeline.
// With no formats requested it renders SVG.
func (r *Runner) Execute(ctx context.Context, d *diagram.Diagram, opts Options) (*Result, error) {
	if len(opts.Formats) == 0 {
		opts.Formats = DefaultFormats
	}
	return r.Arrange(ctx, d, opts)
}

// Arrange lays out d, routes its connections and renders the requested
// formats, if any. Connections are re-routed through auto-positioned anchors
// unless opts.KeepBendPoints is set. d itself is not modified.
func (r *Runner) Arrange(ctx context.Context, d *diagram.Diagram, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := newResult(d)
	work := result.Diagram

	// Stage 1: Layout
	layoutStart := time.Now()
	g, err := work.Graph(diagram.GraphOptions{Scatter: opts.Scatter})
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Components = layout.Components(g)
	if len(result.Components) > 1 {
		opts.Logger.Debug("diagram is disconnected", "components", len(result.Components))
	}

	hooks := observability.Layout()
	hooks.OnLayoutStart(ctx, g.NodeCount(), g.EdgeCount())

	e, err := layout.New(g, opts.Layout)
	if err != nil {
		hooks.OnLayoutComplete(ctx, observability.LayoutStats{Nodes: g.NodeCount(), Edges: g.EdgeCount()}, time.Since(layoutStart), err)
		return nil, fmt.Errorf("layout: %w", err)
	}
	res, err := layout.Run(ctx, e, opts.Run, func(p layout.Progress) {
		hooks.OnLayoutProgress(ctx, p.Iteration, p.Energy)
		if opts.Observe != nil {
			opts.Observe(p)
		}
	})
	result.Layout = res
	result.Stats.LayoutTime = time.Since(layoutStart)
	hooks.OnLayoutComplete(ctx, observability.LayoutStats{
		Nodes:      g.NodeCount(),
		Edges:      g.EdgeCount(),
		Iterations: res.Iterations,
		Energy:     res.Energy,
		Converged:  res.Converged,
	}, result.Stats.LayoutTime, err)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", contextError(err))
	}
	work.ApplyPositions(e)
	if !opts.KeepBendPoints {
		opts.AutoRoute = true
	}

	opts.Logger.Info("computed layout",
		"shapes", g.NodeCount(),
		"iterations", res.Iterations,
		"energy", res.Energy,
		"converged", res.Converged,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Route
	if err := r.route(ctx, result, opts); err != nil {
		return nil, err
	}

	// Stage 3: Render
	if len(opts.Formats) > 0 {
		if err := r.render(ctx, result, opts); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Reroute routes d's connections without moving any shape. With
// opts.AutoRoute set, user bend points are dropped first.
func (r *Runner) Reroute(ctx context.Context, d *diagram.Diagram, opts Options) (*Result, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)
	if err := opts.ValidateForRoute(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := newResult(d)
	if err := r.route(ctx, result, opts); err != nil {
		return nil, err
	}
	return result, nil
}

// Render exports d in every requested format. With no formats requested it
// renders SVG.
func (r *Runner) Render(ctx context.Context, d *diagram.Diagram, opts Options) (map[string][]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	result := newResult(d)
	if err := r.render(ctx, result, opts); err != nil {
		return nil, err
	}
	return result.Artifacts, nil
}

func (r *Runner) route(ctx context.Context, result *Result, opts Options) error {
	work := result.Diagram
	if opts.AutoRoute {
		work.AutoRoute()
	}

	hooks := observability.Route()
	hooks.OnRouteStart(ctx, len(work.Connections))

	start := time.Now()
	points, err := work.Reroute(opts.Router())
	result.Stats.RouteTime = time.Since(start)
	result.Stats.RoutePoints = points
	hooks.OnRouteComplete(ctx, len(work.Connections), points, result.Stats.RouteTime, err)
	if err != nil {
		return fmt.Errorf("route: %w", err)
	}

	opts.Logger.Info("routed connections",
		"connections", len(work.Connections),
		"points", points,
		"duration", result.Stats.RouteTime)
	return nil
}

func (r *Runner) render(ctx context.Context, result *Result, opts Options) error {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return err
	}

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, opts.Formats)

	start := time.Now()
	artifacts := make(map[string][]byte, len(opts.Formats))
	var err error
	for _, format := range opts.Formats {
		if err = ctx.Err(); err != nil {
			err = contextError(err)
			break
		}
		var data []byte
		if data, err = render.Render(ctx, result.Diagram, format, opts.Render); err != nil {
			err = fmt.Errorf("%s: %w", format, err)
			break
		}
		artifacts[format] = data
	}
	result.Stats.RenderTime = time.Since(start)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func newResult(d *diagram.Diagram) *Result {
	work := d.Clone()
	return &Result{
		Diagram:   work,
		Artifacts: make(map[string][]byte),
		Stats: Stats{
			Shapes:      len(work.Shapes),
			Connections: len(work.Connections),
		},
	}
}

// contextError marks a deadline as a TIMEOUT error. Plain cancellation is
// returned unchanged.
func contextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(apperrors.ErrCodeTimeout, err, "deadline exceeded")
	}
	return err
}
