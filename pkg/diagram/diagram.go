package diagram

import (
	"math"
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/arrange/pkg/geom"
	"github.com/matzehuels/arrange/pkg/route"

	apperrors "github.com/matzehuels/arrange/pkg/errors"
)

// =============================================================================
// Connection Kinds
// =============================================================================

// Kind is the relationship a connection expresses. It only affects how the
// connection is drawn.
type Kind string

// Connection kinds. The empty kind is drawn as an association.
const (
	KindAssociation         Kind = "association"
	KindDirectedAssociation Kind = "directed_association"
	KindDependency          Kind = "dependency"
	KindGeneralization      Kind = "generalization"
	KindRealization         Kind = "realization"
	KindAggregation         Kind = "aggregation"
	KindComposition         Kind = "composition"
)

// Kinds lists every known connection kind.
var Kinds = []Kind{
	KindAssociation,
	KindDirectedAssociation,
	KindDependency,
	KindGeneralization,
	KindRealization,
	KindAggregation,
	KindComposition,
}

// Dashed reports whether connections of this kind are drawn with a dashed line.
func (k Kind) Dashed() bool { return k == KindDependency || k == KindRealization }

// =============================================================================
// Document Types
// =============================================================================

// Diagram is a set of shapes and the connections between them.
type Diagram struct {
	Name        string       `json:"name,omitempty" yaml:"name,omitempty"`
	Shapes      []Shape      `json:"shapes" yaml:"shapes"`
	Connections []Connection `json:"connections,omitempty" yaml:"connections,omitempty"`
}

// Shape is a rectangular box. X and Y are its top-left corner.
type Shape struct {
	ID     string  `json:"id" yaml:"id"`
	Label  string  `json:"label,omitempty" yaml:"label,omitempty"`
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
	Pinned bool    `json:"pinned,omitempty" yaml:"pinned,omitempty"` // Never moved by arrange
	Mass   float64 `json:"mass,omitempty" yaml:"mass,omitempty"`     // Zero means 1
}

// Bounds returns the shape's rectangle.
func (s Shape) Bounds() geom.Rect { return geom.R(s.X, s.Y, s.Width, s.Height) }

// DisplayLabel returns the label if set, otherwise the ID.
func (s Shape) DisplayLabel() string {
	if s.Label != "" {
		return s.Label
	}
	return s.ID
}

// Connection links two shapes.
type Connection struct {
	ID    string `json:"id" yaml:"id"`
	From  string `json:"from" yaml:"from"`
	To    string `json:"to" yaml:"to"`
	Kind  Kind   `json:"kind,omitempty" yaml:"kind,omitempty"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`

	// Length overrides the spring rest length used when arranging.
	Length float64 `json:"length,omitempty" yaml:"length,omitempty"`

	BendPoints       []route.BendPoint `json:"bend_points,omitempty" yaml:"bend_points,omitempty"`
	StartOrientation route.Orientation `json:"start_orientation,omitempty" yaml:"start_orientation,omitempty"`
	EndOrientation   route.Orientation `json:"end_orientation,omitempty" yaml:"end_orientation,omitempty"`

	// Route is the computed polyline. It is output only.
	Route []geom.Vec `json:"route,omitempty" yaml:"route,omitempty"`
}

// AutoRoute drops all user-placed bend points, leaving one auto-positioned
// anchor per end. The stale route is cleared.
func (c *Connection) AutoRoute() {
	c.BendPoints = []route.BendPoint{route.Auto(true), route.Auto(false)}
	c.Route = nil
}

// Reverse swaps the connection's ends. Bend points keep their locations and
// stay attached to the same shape.
func (c *Connection) Reverse() {
	req := route.Request{
		BendPoints:       c.BendPoints,
		StartOrientation: c.StartOrientation,
		EndOrientation:   c.EndOrientation,
	}.Reversed()

	c.From, c.To = c.To, c.From
	c.BendPoints = req.BendPoints
	c.StartOrientation, c.EndOrientation = req.StartOrientation, req.EndOrientation
	c.Route = slices.Clone(c.Route)
	slices.Reverse(c.Route)
}

// =============================================================================
// Lookup and Validation
// =============================================================================

// Shape returns the shape with the given ID.
func (d *Diagram) Shape(id string) (*Shape, bool) {
	i := slices.IndexFunc(d.Shapes, func(s Shape) bool { return s.ID == id })
	if i < 0 {
		return nil, false
	}
	return &d.Shapes[i], true
}

// Connection returns the connection with the given ID.
func (d *Diagram) Connection(id string) (*Connection, bool) {
	i := slices.IndexFunc(d.Connections, func(c Connection) bool { return c.ID == id })
	if i < 0 {
		return nil, false
	}
	return &d.Connections[i], true
}

// AssignIDs gives every connection without an ID a random UUID.
func (d *Diagram) AssignIDs() {
	for i := range d.Connections {
		if d.Connections[i].ID == "" {
			d.Connections[i].ID = uuid.NewString()
		}
	}
}

// Validate checks shape and connection IDs, shape sizes and connection
// endpoints. Errors carry the INVALID_DIAGRAM code.
func (d *Diagram) Validate() error {
	if d == nil {
		return apperrors.New(apperrors.ErrCodeInvalidDiagram, "diagram is nil")
	}

	shapes := make(map[string]bool, len(d.Shapes))
	for i, s := range d.Shapes {
		if err := apperrors.ValidateID(s.ID); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidDiagram, err, "shape %d", i)
		}
		if shapes[s.ID] {
			return apperrors.New(apperrors.ErrCodeInvalidDiagram, "duplicate shape %q", s.ID)
		}
		shapes[s.ID] = true

		for _, v := range []float64{s.X, s.Y, s.Width, s.Height, s.Mass} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return apperrors.New(apperrors.ErrCodeInvalidDiagram, "shape %q has a non-finite coordinate", s.ID)
			}
		}
		if s.Width < 0 || s.Height < 0 {
			return apperrors.New(apperrors.ErrCodeInvalidDiagram, "shape %q has a negative size", s.ID)
		}
		if s.Mass < 0 {
			return apperrors.New(apperrors.ErrCodeInvalidDiagram, "shape %q has a negative mass", s.ID)
		}
	}

	conns := make(map[string]bool, len(d.Connections))
	for i, c := range d.Connections {
		if c.ID != "" {
			if conns[c.ID] {
				return apperrors.New(apperrors.ErrCodeInvalidDiagram, "duplicate connection %q", c.ID)
			}
			conns[c.ID] = true
		}
		if !shapes[c.From] {
			return apperrors.New(apperrors.ErrCodeInvalidDiagram, "connection %d references unknown shape %q", i, c.From)
		}
		if !shapes[c.To] {
			return apperrors.New(apperrors.ErrCodeInvalidDiagram, "connection %d references unknown shape %q", i, c.To)
		}
		if c.Kind != "" && !slices.Contains(Kinds, c.Kind) {
			return apperrors.New(apperrors.ErrCodeInvalidDiagram, "connection %d has unknown kind %q", i, c.Kind)
		}
		if c.Length < 0 {
			return apperrors.New(apperrors.ErrCodeInvalidDiagram, "connection %d has a negative length", i)
		}
	}
	return nil
}

// Bounds returns the smallest rectangle containing every shape and every
// computed route point. An empty diagram has zero bounds.
func (d *Diagram) Bounds() geom.Rect {
	var (
		r     geom.Rect
		first = true
	)
	add := func(s geom.Rect) {
		if first {
			r, first = s, false
			return
		}
		r = r.Union(s)
	}
	for _, s := range d.Shapes {
		add(s.Bounds())
	}
	for _, c := range d.Connections {
		for _, p := range c.Route {
			add(geom.Rect{X: p.X, Y: p.Y})
		}
	}
	return r
}

// Clone returns a deep copy of d.
func (d *Diagram) Clone() *Diagram {
	out := &Diagram{
		Name:        d.Name,
		Shapes:      slices.Clone(d.Shapes),
		Connections: slices.Clone(d.Connections),
	}
	for i := range out.Connections {
		c := &out.Connections[i]
		c.BendPoints = slices.Clone(c.BendPoints)
		c.Route = slices.Clone(c.Route)
	}
	return out
}
