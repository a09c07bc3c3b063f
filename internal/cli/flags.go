package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/arrange/pkg/layout"
	"github.com/matzehuels/arrange/pkg/pipeline"
	"github.com/matzehuels/arrange/pkg/render"
)

// Flags are registered with the built-in defaults but only override the
// config file when set explicitly, so precedence is
// defaults < config file < command line.

// binding copies one flag value into the options when the flag was set.
type binding struct {
	name  string
	apply func(*pipeline.Options)
}

// flagSet collects the bindings of one command.
type flagSet struct {
	bindings []binding
}

func (f *flagSet) bind(name string, apply func(*pipeline.Options)) {
	f.bindings = append(f.bindings, binding{name: name, apply: apply})
}

// apply overrides opts with every flag the user set on cmd.
func (f *flagSet) apply(cmd *cobra.Command, opts *pipeline.Options) {
	for _, b := range f.bindings {
		if cmd.Flags().Changed(b.name) {
			b.apply(opts)
		}
	}
}

// layoutFlags registers the simulation flags.
func (f *flagSet) layoutFlags(cmd *cobra.Command) {
	p := layout.DefaultParams()
	b := layout.DefaultBounds()
	var scatter bool

	fl := cmd.Flags()
	fl.Float64Var(&p.Stiffness, "stiffness", p.Stiffness, "spring constant")
	fl.Float64Var(&p.Repulsion, "repulsion", p.Repulsion, "pairwise repulsion strength")
	fl.Float64Var(&p.Damping, "damping", p.Damping, "velocity damping per step, in (0, 1]")
	fl.Float64Var(&p.RestLength, "rest-length", p.RestLength, "default spring rest length")
	fl.Float64Var(&p.CenterAttraction, "center-attraction", p.CenterAttraction, "pull toward the origin (0 disables)")
	fl.Uint64Var(&p.Seed, "seed", p.Seed, "seed for initial placement")
	fl.IntVar(&b.MaxIterations, "max-iterations", b.MaxIterations, "step ceiling")
	fl.Float64Var(&b.Threshold, "threshold", b.Threshold, "energy below which the layout is settled")
	fl.Float64Var(&b.TimeStep, "time-step", b.TimeStep, "simulation time step")
	fl.BoolVar(&scatter, "scatter", false, "ignore current positions of unpinned shapes")

	f.bind("stiffness", func(o *pipeline.Options) { o.Layout.Stiffness = p.Stiffness })
	f.bind("repulsion", func(o *pipeline.Options) { o.Layout.Repulsion = p.Repulsion })
	f.bind("damping", func(o *pipeline.Options) { o.Layout.Damping = p.Damping })
	f.bind("rest-length", func(o *pipeline.Options) { o.Layout.RestLength = p.RestLength })
	f.bind("center-attraction", func(o *pipeline.Options) { o.Layout.CenterAttraction = p.CenterAttraction })
	f.bind("seed", func(o *pipeline.Options) { o.Layout.Seed = p.Seed })
	f.bind("max-iterations", func(o *pipeline.Options) { o.Run.MaxIterations = b.MaxIterations })
	f.bind("threshold", func(o *pipeline.Options) { o.Run.Threshold = b.Threshold })
	f.bind("time-step", func(o *pipeline.Options) { o.Run.TimeStep = b.TimeStep })
	f.bind("scatter", func(o *pipeline.Options) { o.Scatter = scatter })
}

// routeFlags registers the routing flags.
func (f *flagSet) routeFlags(cmd *cobra.Command) {
	var (
		spacing float64
		auto    bool
	)
	cmd.Flags().Float64Var(&spacing, "spacing", pipeline.DefaultOptions().Spacing, "gap between shapes and auto bend points")
	cmd.Flags().BoolVar(&auto, "auto", false, "drop user bend points before routing")

	f.bind("spacing", func(o *pipeline.Options) { o.Spacing = spacing })
	f.bind("auto", func(o *pipeline.Options) { o.AutoRoute = auto })
}

// renderFlags registers the rendering flags. name is the flag carrying the
// format list.
func (f *flagSet) renderFlags(cmd *cobra.Command, name, usage string) {
	var formats string
	ro := render.Options{}.WithDefaults()

	cmd.Flags().StringVarP(&formats, name, "f", "", usage)
	cmd.Flags().Float64Var(&ro.Padding, "padding", ro.Padding, "margin around the drawing")
	cmd.Flags().Float64Var(&ro.FontSize, "font-size", ro.FontSize, "label font size")
	cmd.Flags().Float64Var(&ro.Scale, "scale", ro.Scale, "PNG resolution multiplier")

	f.bind(name, func(o *pipeline.Options) { o.Formats = parseFormats(formats) })
	f.bind("padding", func(o *pipeline.Options) { o.Render.Padding = ro.Padding })
	f.bind("font-size", func(o *pipeline.Options) { o.Render.FontSize = ro.FontSize })
	f.bind("scale", func(o *pipeline.Options) { o.Render.Scale = ro.Scale })
}

// options builds the pipeline options for cmd: config file values with the
// explicitly set flags applied on top.
func (c *CLI) options(cmd *cobra.Command, f *flagSet) pipeline.Options {
	opts := c.Config.Options()
	f.apply(cmd, &opts)
	opts.Logger = c.Logger
	return opts
}
