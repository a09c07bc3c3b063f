package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/arrange/pkg/diagram"
	"github.com/matzehuels/arrange/pkg/layout"
)

// inspectCommand creates the inspect command, which prints a diagram's
// shapes, connections and connected components.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [diagram]",
		Short: "Print shapes, connections and components as tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := diagram.ReadFile(args[0])
			if err != nil {
				return err
			}
			return inspect(cmd.OutOrStdout(), d)
		},
	}
}

// inspect writes the tables for d to w.
func inspect(w io.Writer, d *diagram.Diagram) error {
	g, err := d.Graph(diagram.GraphOptions{})
	if err != nil {
		return err
	}
	components := layout.Components(g)

	var b strings.Builder
	title := d.Name
	if title == "" {
		title = "Diagram"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%d shapes · %d connections · %d components · bounds %s",
		len(d.Shapes), len(d.Connections), len(components), d.Bounds())))
	b.WriteString("\n\n")

	b.WriteString(shapeTable(d).Render())
	b.WriteString("\n")
	if len(d.Connections) > 0 {
		b.WriteString(connectionTable(d).Render())
		b.WriteString("\n")
	}
	if len(components) > 1 {
		b.WriteString(componentTable(components).Render())
		b.WriteString("\n")
	}

	_, err = io.WriteString(w, b.String())
	return err
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

func shapeTable(d *diagram.Diagram) *table.Table {
	t := newTable("Shape", "Label", "Position", "Size", "Pinned")
	for _, s := range d.Shapes {
		pinned := ""
		if s.Pinned {
			pinned = iconSuccess
		}
		t.Row(s.ID, s.Label,
			fmt.Sprintf("%g, %g", s.X, s.Y),
			fmt.Sprintf("%g × %g", s.Width, s.Height),
			pinned)
	}
	return t
}

func connectionTable(d *diagram.Diagram) *table.Table {
	t := newTable("Connection", "Ends", "Kind", "Bends", "Route")
	for _, c := range d.Connections {
		route := "—"
		if len(c.Route) > 0 {
			route = strconv.Itoa(len(c.Route)) + " points"
		}
		t.Row(c.ID,
			c.From+" "+iconArrow+" "+c.To,
			string(c.Kind),
			strconv.Itoa(len(c.BendPoints)),
			route)
	}
	return t
}

func componentTable(components [][]string) *table.Table {
	t := newTable("Component", "Shapes")
	for i, ids := range components {
		t.Row(strconv.Itoa(i+1), strings.Join(ids, ", "))
	}
	return t
}
