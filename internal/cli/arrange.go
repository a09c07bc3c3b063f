package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arrange/pkg/diagram"
	"github.com/matzehuels/arrange/pkg/layout"
	"github.com/matzehuels/arrange/pkg/pipeline"
)

// documentOpts holds the flags shared by commands that write a diagram.
type documentOpts struct {
	output string // output file, "-" for stdout
	format string // json or yaml, overrides the output extension
}

func (o *documentOpts) register(cmd *cobra.Command, suffix string) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", fmt.Sprintf("output file, - for stdout (default: <input>.%s.<ext>)", suffix))
	cmd.Flags().StringVar(&o.format, "format", "", "document format: json, yaml (default: from output extension)")
}

// formatFor picks the document format for path. Stdout keeps the input's
// format.
func (o documentOpts) formatFor(path, input string) string {
	if path == "-" {
		path = input
	}
	return outputFormat(o.format, path)
}

// arrangeCommand creates the arrange command, which runs the layout and
// re-routes every connection.
func (c *CLI) arrangeCommand() *cobra.Command {
	var (
		doc   documentOpts
		flags     flagSet
		watch     bool
		keepBends bool
	)

	cmd := &cobra.Command{
		Use:   "arrange [diagram]",
		Short: "Settle shapes with a force-directed layout and route connections",
		Long: `Settle shapes with a force-directed layout and route connections.

Every shape is a mass and every connection a spring. The simulation runs until
the kinetic energy drops below --threshold or --max-iterations is reached, then
all connections are routed orthogonally around the new positions. User bend
points are dropped; with --keep-bends they move along with their shapes.

Pinned shapes never move. With --scatter, unpinned shapes are placed from
scratch instead of starting where they are.

With --render, the arranged diagram is also exported next to the output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, &flags)
			if !cmd.Flags().Changed("render") {
				opts.Formats = nil
			}
			return c.runArrange(cmd.Context(), args[0], doc, opts, watch)
		},
	}

	doc.register(cmd, "arranged")
	flags.layoutFlags(cmd)
	flags.routeFlags(cmd)
	flags.renderFlags(cmd, "render", "also export: svg, png, dot, graphviz (comma-separated)")
	cmd.Flags().BoolVar(&watch, "watch", false, "show a live convergence monitor")
	cmd.Flags().BoolVar(&keepBends, "keep-bends", false, "move fixed bend points with their shapes instead of dropping them")
	flags.bind("keep-bends", func(o *pipeline.Options) { o.KeepBendPoints = keepBends })

	return cmd
}

// runArrange loads the diagram, runs the pipeline and writes the result.
func (c *CLI) runArrange(ctx context.Context, input string, doc documentOpts, opts pipeline.Options, watch bool) error {
	d, err := diagram.ReadFile(input)
	if err != nil {
		return err
	}
	logger := loggerFromContext(ctx)
	logger.Debug("loaded diagram", "path", input, "shapes", len(d.Shapes), "connections", len(d.Connections))

	runner := c.newRunner()
	prog := newProgress(logger, "Arranged")

	var result *pipeline.Result
	if watch {
		result, err = runMonitor(ctx, runner, d, opts)
	} else {
		result, err = arrangeWithSpinner(ctx, runner, d, opts)
	}
	if err != nil {
		return err
	}
	prog.done(len(d.Shapes), "shape",
		"iterations", result.Layout.Iterations,
		"energy", result.Layout.Energy,
		"converged", result.Layout.Converged)

	path := outputPath(doc.output, input, "arranged")
	if err := writeDiagram(result.Diagram, path, doc.formatFor(path, input)); err != nil {
		return err
	}
	files, err := writeArtifacts(result.Artifacts, artifactBase(path, input, "arranged"))
	if err != nil {
		return err
	}
	if path == "-" {
		return nil
	}

	printSuccess("Layout complete")
	printFile(path)
	for _, f := range files {
		printFile(f)
	}
	printStats(result.Stats.Shapes, result.Stats.Connections, result.Stats.RoutePoints, &result.Layout.Converged)
	printDetail("%d iterations, energy %.4g", result.Layout.Iterations, result.Layout.Energy)
	if !result.Layout.Converged {
		printWarning("energy still above %g; raise --max-iterations or --damping", opts.Run.Threshold)
	}
	if len(result.Components) > 1 {
		printDetail("%d disconnected components drift apart under repulsion", len(result.Components))
	}
	printNewline()
	printNextStep("Render", appName+" render "+path)
	return nil
}

// arrangeWithSpinner runs the pipeline behind a spinner that follows the
// simulation's progress.
func arrangeWithSpinner(ctx context.Context, runner *pipeline.Runner, d *diagram.Diagram, opts pipeline.Options) (*pipeline.Result, error) {
	spinner := newSpinnerWithContext(ctx, "Settling layout...")
	opts.Observe = func(p layout.Progress) {
		spinner.Update(fmt.Sprintf("Settling layout... iteration %d/%d, energy %.4g", p.Iteration, p.Max, p.Energy))
	}
	spinner.Start()

	result, err := runner.Arrange(ctx, d, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return nil, err
	}
	spinner.Stop()
	return result, nil
}

// writeDiagram writes d to path, or stdout for "-".
func writeDiagram(d *diagram.Diagram, path, format string) error {
	if path == "-" {
		return diagram.Write(d, os.Stdout, format)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := diagram.Write(d, f, format); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
