package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/arrange/pkg/diagram"
)

// pointsPerInch converts diagram units, taken as points, to Graphviz inches.
const pointsPerInch = 72.0

// DOT returns a Graphviz description of d for the neato engine. Every shape
// is pinned at its centre; Y is flipped since Graphviz grows upward
// (0-y keeps a zero coordinate from printing as -0).
func DOT(d *diagram.Diagram) string {
	var buf bytes.Buffer
	name := d.Name
	if name == "" {
		name = "diagram"
	}
	fmt.Fprintf(&buf, "digraph %q {\n", name)
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  splines=ortho;\n")
	buf.WriteString("  node [shape=box, fixedsize=true, fontname=\"Helvetica\", fontsize=12];\n")
	buf.WriteString("  edge [arrowhead=none];\n\n")

	for _, s := range d.Shapes {
		c := s.Bounds().Center()
		fmt.Fprintf(&buf, "  %q [label=%q, pos=\"%g,%g!\", width=%g, height=%g];\n",
			s.ID, s.DisplayLabel(), c.X, 0-c.Y, s.Width/pointsPerInch, s.Height/pointsPerInch)
	}
	if len(d.Connections) > 0 {
		buf.WriteString("\n")
	}
	for _, c := range d.Connections {
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", c.From, c.To, edgeAttrs(c))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func edgeAttrs(c diagram.Connection) string {
	attrs := fmt.Sprintf("id=%q", c.ID)
	start, end := heads(c.Kind)
	if end != headNone {
		attrs += ", arrowhead=" + dotArrow(end)
	}
	if start != headNone {
		attrs += ", dir=both, arrowtail=" + dotArrow(start)
	}
	if c.Kind.Dashed() {
		attrs += ", style=dashed"
	}
	if c.Label != "" {
		attrs += fmt.Sprintf(", xlabel=%q", c.Label)
	}
	return attrs
}

func dotArrow(h head) string {
	switch h {
	case headOpen:
		return "vee"
	case headTriangle:
		return "empty"
	case headDiamond:
		return "odiamond"
	case headFilledDiamond:
		return "diamond"
	}
	return "none"
}
