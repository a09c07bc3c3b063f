package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arrange/pkg/diagram"
	"github.com/matzehuels/arrange/pkg/pipeline"
)

// routeCommand creates the route command, which re-routes connections
// without moving any shape.
func (c *CLI) routeCommand() *cobra.Command {
	var (
		doc   documentOpts
		flags flagSet
	)

	cmd := &cobra.Command{
		Use:   "route [diagram]",
		Short: "Re-route connections without moving shapes",
		Long: `Re-route connections without moving shapes.

Every connection is drawn as a sequence of horizontal and vertical segments.
Fixed bend points are kept; auto bend points are recomputed. With --auto, all
user bend points are dropped and every route is computed from scratch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRoute(cmd.Context(), args[0], doc, c.options(cmd, &flags))
		},
	}

	doc.register(cmd, "routed")
	flags.routeFlags(cmd)

	return cmd
}

// runRoute loads the diagram, routes it and writes the result.
func (c *CLI) runRoute(ctx context.Context, input string, doc documentOpts, opts pipeline.Options) error {
	d, err := diagram.ReadFile(input)
	if err != nil {
		return err
	}

	prog := newProgress(loggerFromContext(ctx), "Routed")
	result, err := c.newRunner().Reroute(ctx, d, opts)
	if err != nil {
		return fmt.Errorf("route %s: %w", input, err)
	}
	prog.done(len(d.Connections), "connection", "points", result.Stats.RoutePoints)

	path := outputPath(doc.output, input, "routed")
	if err := writeDiagram(result.Diagram, path, doc.formatFor(path, input)); err != nil {
		return err
	}
	if path == "-" {
		return nil
	}

	printSuccess("Routing complete")
	printFile(path)
	printStats(result.Stats.Shapes, result.Stats.Connections, result.Stats.RoutePoints, nil)
	return nil
}
