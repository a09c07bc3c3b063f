// Package pipeline provides the arrange → route → render pipeline shared by
// the CLI and the HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Layout: simulate the diagram as a spring system and move the shapes
//  2. Route: compute orthogonal routes for every connection
//  3. Render: export SVG, PNG, DOT or a Graphviz preview
//
// Each stage can be run on its own or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.DefaultOptions()
//	opts.Formats = []string{"svg"}
//	result, err := runner.Execute(ctx, d, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	arranged, err := runner.Arrange(ctx, d, opts)  // layout + route
//	routed, err := runner.Reroute(ctx, d, opts)    // route only
//	artifacts, err := runner.Render(ctx, d, opts)  // render only
//
// The runner never modifies the diagram it is given; results carry a copy.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arrange/pkg/diagram"
	"github.com/matzehuels/arrange/pkg/layout"
	"github.com/matzehuels/arrange/pkg/render"
	"github.com/matzehuels/arrange/pkg/route"

	apperrors "github.com/matzehuels/arrange/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// DefaultFormats is used by Execute and Render when no format is requested.
var DefaultFormats = []string{render.FormatSVG}

// Format constants for output formats.
const (
	FormatSVG      = render.FormatSVG
	FormatPNG      = render.FormatPNG
	FormatDOT      = render.FormatDOT
	FormatGraphviz = render.FormatGraphviz
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatPNG:      true,
	FormatDOT:      true,
	FormatGraphviz: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests; decode requests
// over [DefaultOptions] so that omitted fields keep their defaults.
type Options struct {
	// Layout options
	Layout  layout.Params `json:"layout"`
	Run     layout.Bounds `json:"run"`
	Scatter bool          `json:"scatter,omitempty"` // Ignore current positions of unpinned shapes

	// Route options
	Spacing   float64 `json:"spacing,omitempty"`
	AutoRoute bool    `json:"auto_route,omitempty"` // Drop user bend points before routing

	// KeepBendPoints makes Arrange move fixed bend points along with their
	// anchoring shape. By default Arrange drops them and routes every
	// connection through auto-positioned anchors.
	KeepBendPoints bool `json:"keep_bend_points,omitempty"`

	// Render options
	Formats []string       `json:"formats,omitempty"`
	Render  render.Options `json:"render,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// Observe receives layout progress at the driver's reporting interval.
	Observe func(layout.Progress) `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// DefaultOptions returns options with every default applied.
func DefaultOptions() Options {
	opts := Options{}
	opts.SetLayoutDefaults()
	opts.SetRouteDefaults()
	opts.Render = opts.Render.WithDefaults()
	return opts
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Diagram is the arranged and routed copy of the input.
	Diagram *diagram.Diagram

	// Layout summarises the simulation. It is zero when the layout stage
	// did not run.
	Layout layout.Result

	// Components lists the connected components of the diagram. Components
	// are not attracted to each other and drift apart under repulsion.
	Components [][]string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Shapes      int
	Connections int
	RoutePoints int
	LayoutTime  time.Duration
	RouteTime   time.Duration
	RenderTime  time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperrors.ValidateFormat(format, render.Formats...)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and validates the options for the
// full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRoute(); err != nil {
		return err
	}
	if len(o.Formats) > 0 {
		if err := ValidateFormats(o.Formats); err != nil {
			return err
		}
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for the simulation. A zero Params
// becomes [layout.DefaultParams]; a partially filled one is kept as is, since
// zero is meaningful for repulsion, centre attraction and the seed.
func (o *Options) SetLayoutDefaults() {
	if o.Layout == (layout.Params{}) {
		o.Layout = layout.DefaultParams()
	}
	def := layout.DefaultBounds()
	if o.Run.MaxIterations == 0 {
		o.Run.MaxIterations = def.MaxIterations
	}
	if o.Run.Threshold == 0 {
		o.Run.Threshold = def.Threshold
	}
	if o.Run.TimeStep == 0 {
		o.Run.TimeStep = def.TimeStep
	}
	if o.Run.ReportEvery == 0 {
		o.Run.ReportEvery = def.ReportEvery
	}
	o.setLogger()
}

// ValidateForLayout sets layout defaults and validates the tunables.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := o.Layout.Validate(); err != nil {
		return err
	}
	return o.Run.Validate()
}

// SetRouteDefaults sets default values for routing.
func (o *Options) SetRouteDefaults() {
	if o.Spacing == 0 {
		o.Spacing = route.Spacing
	}
	o.setLogger()
}

// ValidateForRoute sets route defaults and validates the spacing.
func (o *Options) ValidateForRoute() error {
	o.SetRouteDefaults()
	if !(o.Spacing > 0) {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "route spacing must be positive, got %v", o.Spacing)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = DefaultFormats
	}
	o.Render = o.Render.WithDefaults()
	o.setLogger()
}

// ValidateForRender sets render defaults and validates the formats.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// Router returns the connection router for these options.
func (o *Options) Router() route.Router {
	return route.Router{Spacing: o.Spacing}
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
