package render

import (
	"github.com/matzehuels/arrange/pkg/diagram"
	"github.com/matzehuels/arrange/pkg/geom"
)

// head is the decoration drawn at one end of a connection.
type head int

const (
	headNone head = iota
	headOpen
	headTriangle
	headDiamond
	headFilledDiamond
)

const (
	headLength = 12.0
	headWidth  = 5.0
)

// heads returns the decorations for the start and end of a connection.
func heads(k diagram.Kind) (start, end head) {
	switch k {
	case diagram.KindDirectedAssociation, diagram.KindDependency:
		return headNone, headOpen
	case diagram.KindGeneralization, diagram.KindRealization:
		return headNone, headTriangle
	case diagram.KindAggregation:
		return headDiamond, headNone
	case diagram.KindComposition:
		return headFilledDiamond, headNone
	}
	return headNone, headNone
}

func (h head) filled() bool { return h == headFilledDiamond }

// closed reports whether the head is drawn as a polygon.
func (h head) closed() bool { return h == headTriangle || h == headDiamond || h == headFilledDiamond }

// outline returns the points of h with its tip at tip, pointing away from
// from. Open arrows are two strokes meeting at the tip; the returned points
// are wing, tip, wing. It returns nil when the direction is undefined.
func (h head) outline(tip, from geom.Vec) []geom.Vec {
	u := tip.Sub(from).Unit()
	if h == headNone || u.IsZero() {
		return nil
	}
	n := geom.V(-u.Y, u.X).Scale(headWidth)
	back := tip.Sub(u.Scale(headLength))

	switch h {
	case headOpen:
		return []geom.Vec{back.Add(n), tip, back.Sub(n)}
	case headTriangle:
		return []geom.Vec{tip, back.Add(n), back.Sub(n)}
	default:
		mid := tip.Sub(u.Scale(headLength / 2))
		return []geom.Vec{tip, mid.Add(n), back, mid.Sub(n)}
	}
}

// endHeads returns the outlines for both ends of a route.
func endHeads(c diagram.Connection) (start, end []geom.Vec) {
	pts := c.Route
	if len(pts) < 2 {
		return nil, nil
	}
	hs, he := heads(c.Kind)
	return hs.outline(pts[0], pts[1]), he.outline(pts[len(pts)-1], pts[len(pts)-2])
}
