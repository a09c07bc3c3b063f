package diagram

import (
	"github.com/matzehuels/arrange/pkg/geom"
	"github.com/matzehuels/arrange/pkg/layout"
	"github.com/matzehuels/arrange/pkg/route"

	apperrors "github.com/matzehuels/arrange/pkg/errors"
)

// GraphOptions controls how a diagram becomes a layout graph.
type GraphOptions struct {
	// Scatter drops the current position of every unpinned shape so the
	// engine seeds it. Use it to arrange a diagram from scratch.
	Scatter bool
}

// Graph builds a layout graph with one node per shape, positioned at the
// shape's centre, and one edge per connection.
func (d *Diagram) Graph(opts GraphOptions) (*layout.Graph, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	g := layout.NewGraph()
	for _, s := range d.Shapes {
		n := layout.Node{ID: s.ID, Pinned: s.Pinned, Mass: s.Mass}
		if s.Pinned || !opts.Scatter {
			c := s.Bounds().Center()
			n.Position = &c
		}
		if err := g.AddNode(n); err != nil {
			return nil, err
		}
	}
	for _, c := range d.Connections {
		if err := g.AddEdge(layout.Edge{ID: c.ID, From: c.From, To: c.To, Length: c.Length}); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// ApplyPositions moves every unpinned shape so that its centre sits at the
// engine's position for it. Top-left corners are rounded to whole units.
// Shapes the engine does not know are left alone. Fixed bend points move with
// the shape they are anchored to: the start shape when RelativeToStart is
// set, the end shape otherwise.
func (d *Diagram) ApplyPositions(e *layout.Engine) {
	moved := make(map[string]geom.Vec)
	for i := range d.Shapes {
		s := &d.Shapes[i]
		if s.Pinned {
			continue
		}
		p, ok := e.Position(s.ID)
		if !ok {
			continue
		}
		tl := p.Sub(geom.V(s.Width/2, s.Height/2)).Round()
		if delta := tl.Sub(geom.V(s.X, s.Y)); !delta.IsZero() {
			moved[s.ID] = delta
		}
		s.X, s.Y = tl.X, tl.Y
	}
	d.followShapes(moved)
}

// followShapes translates the fixed bend points of every connection by the
// displacement of their anchoring shape and clears stale routes.
func (d *Diagram) followShapes(moved map[string]geom.Vec) {
	if len(moved) == 0 {
		return
	}
	for i := range d.Connections {
		c := &d.Connections[i]
		_, fromMoved := moved[c.From]
		_, toMoved := moved[c.To]
		if !fromMoved && !toMoved {
			continue
		}
		c.Route = nil
		for j := range c.BendPoints {
			b := &c.BendPoints[j]
			if b.AutoPosition {
				continue
			}
			anchor := c.To
			if b.RelativeToStart {
				anchor = c.From
			}
			b.Location = b.Location.Add(moved[anchor])
		}
	}
}

// Reroute computes the route of every connection with r, storing the route
// points, the relocated bend points and the effective orientations.
// It returns the total number of route points.
func (d *Diagram) Reroute(r route.Router) (int, error) {
	index := make(map[string]geom.Rect, len(d.Shapes))
	for _, s := range d.Shapes {
		index[s.ID] = s.Bounds()
	}

	total := 0
	for i := range d.Connections {
		c := &d.Connections[i]
		start, ok := index[c.From]
		if !ok {
			return total, apperrors.New(apperrors.ErrCodeInvalidDiagram, "connection %q references unknown shape %q", c.ID, c.From)
		}
		end, ok := index[c.To]
		if !ok {
			return total, apperrors.New(apperrors.ErrCodeInvalidDiagram, "connection %q references unknown shape %q", c.ID, c.To)
		}

		res := r.Solve(route.Request{
			Start:            start,
			End:              end,
			BendPoints:       c.BendPoints,
			StartOrientation: c.StartOrientation,
			EndOrientation:   c.EndOrientation,
		})
		c.Route = res.Points
		c.BendPoints = res.BendPoints
		c.StartOrientation, c.EndOrientation = res.StartOrientation, res.EndOrientation
		total += len(res.Points)
	}
	return total, nil
}

// AutoRoute resets every connection to auto-positioned bend points.
func (d *Diagram) AutoRoute() {
	for i := range d.Connections {
		d.Connections[i].AutoRoute()
	}
}
