package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arrange/pkg/diagram"
	"github.com/matzehuels/arrange/pkg/pipeline"
	"github.com/matzehuels/arrange/pkg/render"
)

// renderCommand creates the render command for exporting a diagram.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output string
		flags  flagSet
	)

	cmd := &cobra.Command{
		Use:   "render [diagram]",
		Short: "Export a diagram as SVG, PNG, DOT or a Graphviz preview",
		Long: `Export a diagram as SVG, PNG, DOT or a Graphviz preview.

Shapes are drawn where they are and connections along their stored routes;
connections without a route are left out. Run 'arrange route' first to
compute routes.

Files are written as <prefix>.<format>; the prefix defaults to the input path
without its extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, &flags)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], output, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output prefix (default: input path without extension)")
	flags.renderFlags(cmd, "format", "output format(s): svg (default), png, dot, graphviz (comma-separated)")

	return cmd
}

// runRender loads the diagram and writes every requested format.
func (c *CLI) runRender(ctx context.Context, input, prefix string, opts pipeline.Options) error {
	d, err := diagram.ReadFile(input)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()
	artifacts, err := c.newRunner().Render(ctx, d, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if prefix == "" {
		prefix = strings.TrimSuffix(input, filepath.Ext(input))
	}
	files, err := writeArtifacts(artifacts, prefix)
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, f := range files {
		printFile(f)
	}
	return nil
}

// artifactBase derives the prefix for rendered files from the diagram
// output path. Diagrams written to stdout name artifacts after the input.
func artifactBase(path, input, suffix string) string {
	if path == "-" {
		path = outputPath("", input, suffix)
	}
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// writeArtifacts writes each artifact to base.<ext> and returns the paths in
// format order.
func writeArtifacts(artifacts map[string][]byte, base string) ([]string, error) {
	formats := make([]string, 0, len(artifacts))
	for f := range artifacts {
		formats = append(formats, f)
	}
	slices.Sort(formats)

	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := base + "." + render.Extension(f)
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
