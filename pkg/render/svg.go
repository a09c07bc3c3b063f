package render

import (
	"bytes"
	"fmt"
	"html"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/arrange/pkg/diagram"
	"github.com/matzehuels/arrange/pkg/geom"
)

const (
	shapeStyle = "fill:#f8f9fa;stroke:#343a40;stroke-width:1"
	lineStyle  = "fill:none;stroke:#343a40;stroke-width:1.5"
	dashStyle  = ";stroke-dasharray:6,4"
)

// SVG draws d as an SVG document.
func SVG(d *diagram.Diagram, opts Options) []byte {
	opts = opts.WithDefaults()
	f := newFrame(d, opts.Padding)

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(f.width, f.height)
	if d.Name != "" {
		canvas.Title(d.Name)
	}
	canvas.Rect(0, 0, f.width, f.height, "fill:white")
	canvas.Gtransform(fmt.Sprintf("translate(%g,%g)", f.offset.X, f.offset.Y))

	for _, s := range d.Shapes {
		r := s.Bounds()
		canvas.Rect(px(r.X), px(r.Y), px(r.Width), px(r.Height), attr("id", "shape-"+s.ID), shapeStyle)
		canvas.Text(px(r.CenterX()), px(r.CenterY()), s.DisplayLabel(),
			fmt.Sprintf("text-anchor:middle;dominant-baseline:central;font-family:sans-serif;font-size:%gpx", opts.FontSize))
	}

	for _, c := range d.Connections {
		if len(c.Route) < 2 {
			continue
		}
		style := lineStyle
		if c.Kind.Dashed() {
			style += dashStyle
		}
		xs, ys := coords(c.Route)
		canvas.Polyline(xs, ys, attr("id", "connection-"+c.ID), style)

		hs, he := heads(c.Kind)
		start, end := endHeads(c)
		drawHeadSVG(canvas, hs, start)
		drawHeadSVG(canvas, he, end)

		if c.Label != "" {
			m := labelAnchor(c.Route)
			canvas.Text(px(m.X), px(m.Y)-4, c.Label,
				fmt.Sprintf("text-anchor:middle;font-family:sans-serif;font-size:%gpx", opts.FontSize*0.9))
		}
	}

	canvas.Gend()
	canvas.End()
	return buf.Bytes()
}

func drawHeadSVG(canvas *svg.SVG, h head, pts []geom.Vec) {
	if len(pts) == 0 {
		return
	}
	xs, ys := coords(pts)
	if !h.closed() {
		canvas.Polyline(xs, ys, lineStyle)
		return
	}
	fill := "white"
	if h.filled() {
		fill = "#343a40"
	}
	canvas.Polygon(xs, ys, "fill:"+fill+";stroke:#343a40;stroke-width:1.5")
}

// labelAnchor returns the midpoint of the route's longest segment.
func labelAnchor(route []geom.Vec) geom.Vec {
	best, at := -1.0, route[0]
	for i := 1; i < len(route); i++ {
		if l := route[i].Dist(route[i-1]); l > best {
			best, at = l, route[i].Add(route[i-1]).Scale(0.5)
		}
	}
	return at
}

func coords(pts []geom.Vec) (xs, ys []int) {
	xs, ys = make([]int, len(pts)), make([]int, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = px(p.X), px(p.Y)
	}
	return xs, ys
}

func px(v float64) int { return int(math.Round(v)) }

func attr(name, value string) string {
	return fmt.Sprintf(`%s="%s"`, name, html.EscapeString(value))
}
