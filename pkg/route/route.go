package route

import (
	"math"
	"slices"

	"github.com/matzehuels/arrange/pkg/geom"
)

// Router routes connections. The zero value is not usable; see
// [DefaultRouter].
type Router struct {
	// Spacing is the gap between a shape and its auto-positioned bend points.
	Spacing float64
}

// DefaultRouter returns a router using [Spacing].
func DefaultRouter() Router { return Router{Spacing: Spacing} }

// Route is the pure routing function: it returns the polyline for a
// connection from start to end through bendPoints, using the default spacing.
func Route(start, end geom.Rect, bendPoints []BendPoint, startOrientation, endOrientation Orientation) []geom.Vec {
	return DefaultRouter().Solve(Request{
		Start:            start,
		End:              end,
		BendPoints:       bendPoints,
		StartOrientation: startOrientation,
		EndOrientation:   endOrientation,
	}).Points
}

// Solve routes req. The input is not modified. Missing end bend points are
// added as auto-positioned anchors, so Result.BendPoints always has at least
// two entries.
func (r Router) Solve(req Request) Result {
	req.BendPoints = anchored(req.BendPoints)
	if rev := req.Reversed(); compareRequests(rev, req) < 0 {
		return r.solve(rev).reversed()
	}
	return r.solve(req)
}

// anchored copies bends and makes sure the first point is anchored to the
// start and the last to the end.
func anchored(bends []BendPoint) []BendPoint {
	out := slices.Clone(bends)
	switch len(out) {
	case 0:
		out = []BendPoint{Auto(true), Auto(false)}
	case 1:
		if out[0].RelativeToStart {
			out = append(out, Auto(false))
		} else {
			out = append([]BendPoint{Auto(true)}, out...)
		}
	}
	out[0].RelativeToStart = true
	out[len(out)-1].RelativeToStart = false
	return out
}

func (r Router) solve(req Request) Result {
	start, end := req.Start, req.End
	bends := req.BendPoints
	first, last := bends[0], bends[len(bends)-1]

	so, eo := req.StartOrientation, req.EndOrientation
	if first.AutoPosition && last.AutoPosition {
		so, eo = initialOrientations(start, end, r.Spacing)
	}
	if !first.AutoPosition {
		so = inferOrientation(start, first.Location, so)
	}
	if !last.AutoPosition {
		eo = inferOrientation(end, last.Location, eo)
	}
	so, eo = r.relocate(start, end, bends, so, eo)

	pts, dir := startSegment(start, bends[0].Location, so)
	for i := 0; i+1 < len(bends); i++ {
		p, n := bends[i].Location, bends[i+1].Location
		n2 := end.Clamp(n)
		if i+2 < len(bends) {
			n2 = bends[i+2].Location
		}
		var emit []geom.Vec
		dir, emit = Transition(dir, p, n, n2, i+2 == len(bends))
		pts = append(pts, emit...)
	}
	pts = append(pts, endSegment(end, bends[len(bends)-1].Location, eo)...)

	return Result{
		Points:           simplify(pts),
		BendPoints:       bends,
		StartOrientation: so,
		EndOrientation:   eo,
	}
}

// startSegment returns the points from the start shape's boundary up to and
// including the first bend point, and the direction the route then flows in.
func startSegment(s geom.Rect, first geom.Vec, o Orientation) ([]geom.Vec, Direction) {
	a := along(o)
	c := a.other()

	edge, outward := a.hi(s), 1.0
	if a.of(first) < a.mid(s) {
		edge, outward = a.lo(s), -1
	}

	if c.spans(s, c.of(first)) {
		return []geom.Vec{a.point(edge, c.of(first)), first}, a.toward(outward)
	}

	// The bend point is beside the shape's span: leave through the centre
	// line and turn toward it.
	m := c.mid(s)
	dir := c.toward(1)
	if c.of(first) < m {
		dir = c.toward(-1)
	}
	return []geom.Vec{a.point(edge, m), a.point(a.of(first), m), first}, dir
}

// endSegment returns the points after the last bend point, ending on the end
// shape's boundary.
func endSegment(e geom.Rect, last geom.Vec, o Orientation) []geom.Vec {
	a := along(o)
	c := a.other()

	edge := a.hi(e)
	if a.of(last) < a.mid(e) {
		edge = a.lo(e)
	}

	if c.spans(e, c.of(last)) {
		return []geom.Vec{a.point(edge, c.of(last))}
	}
	m := c.mid(e)
	return []geom.Vec{a.point(a.of(last), m), a.point(edge, m)}
}

// simplify drops repeated points and interior points strictly inside a
// straight run. A point where the route doubles back along the same line is
// kept, so fixed bend points stay on the route. A route that collapses to a
// single point is returned as that point twice.
func simplify(pts []geom.Vec) []geom.Vec {
	deduped := make([]geom.Vec, 0, len(pts))
	for _, p := range pts {
		if len(deduped) == 0 || deduped[len(deduped)-1] != p {
			deduped = append(deduped, p)
		}
	}
	if len(deduped) == 1 {
		return []geom.Vec{deduped[0], deduped[0]}
	}
	if len(deduped) <= 2 {
		return deduped
	}

	out := []geom.Vec{deduped[0]}
	for i := 1; i < len(deduped)-1; i++ {
		prev, cur, next := out[len(out)-1], deduped[i], deduped[i+1]
		if between(prev, cur, next) {
			continue
		}
		out = append(out, cur)
	}
	return append(out, deduped[len(deduped)-1])
}

// between reports whether b lies strictly inside the axis-aligned segment
// from a to c.
func between(a, b, c geom.Vec) bool {
	switch {
	case a.X == b.X && b.X == c.X:
		return math.Min(a.Y, c.Y) < b.Y && b.Y < math.Max(a.Y, c.Y)
	case a.Y == b.Y && b.Y == c.Y:
		return math.Min(a.X, c.X) < b.X && b.X < math.Max(a.X, c.X)
	}
	return false
}

// compareRequests orders requests so that a request and its reversal can be
// told apart deterministically. Anchor flags are ignored since they follow
// from the bend point order.
func compareRequests(a, b Request) int {
	if c := a.Start.Compare(b.Start); c != 0 {
		return c
	}
	if c := a.End.Compare(b.End); c != 0 {
		return c
	}
	if c := slices.CompareFunc(a.BendPoints, b.BendPoints, compareBends); c != 0 {
		return c
	}
	if c := int(a.StartOrientation) - int(b.StartOrientation); c != 0 {
		return c
	}
	return int(a.EndOrientation) - int(b.EndOrientation)
}

func compareBends(a, b BendPoint) int {
	if c := a.Location.Compare(b.Location); c != 0 {
		return c
	}
	switch {
	case a.AutoPosition == b.AutoPosition:
		return 0
	case a.AutoPosition:
		return 1
	}
	return -1
}
