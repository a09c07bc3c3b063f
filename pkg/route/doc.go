// Package route computes orthogonal connection paths between diagram shapes.
//
// # Overview
//
// A connection leaves its start shape horizontally or vertically, passes
// through an ordered list of bend points and enters its end shape. The router
// turns that description into an axis-aligned polyline: every segment is
// either horizontal or vertical, the first point lies on the start shape's
// boundary and the last point on the end shape's boundary.
//
// # Bend Points
//
// The first bend point belongs to the start shape and the last to the end
// shape; both are always present. A bend point marked [BendPoint.AutoPosition]
// is placed by the router one [Spacing] away from its shape, on the side
// facing the rest of the connection. Fixed bend points are kept where they are
// and determine the orientation of their end of the connection.
//
// # Flow Direction
//
// While walking from bend point to bend point the router tracks the current
// [Direction]. A diagonal hop between two bend points needs one corner; the
// corner is chosen so the path keeps its current direction when the point
// after next allows it, and turns immediately otherwise. See [Transition].
//
// # Reversal
//
// Routing a connection in the opposite direction yields exactly the reversed
// polyline. [Router.Solve] computes every request in a canonical direction
// and mirrors the result when needed.
//
// # Usage
//
//	pts := route.Route(
//	    geom.R(0, 0, 100, 50), geom.R(300, 0, 100, 50),
//	    nil, route.Horizontal, route.Horizontal,
//	)
//	// pts == [(100,25) (300,25)]
package route
