package route

import (
	"math"

	"github.com/matzehuels/arrange/pkg/geom"
)

// relocate places the auto-positioned end bend points. bends has at least
// two entries; only the first and last can be moved.
func (r Router) relocate(start, end geom.Rect, bends []BendPoint, so, eo Orientation) (Orientation, Orientation) {
	first, last := &bends[0], &bends[len(bends)-1]

	switch {
	case first.AutoPosition && last.AutoPosition:
		if start == end && so == eo {
			so, eo = Horizontal, Vertical
		}
		if so == eo {
			r.placeParallel(start, end, &first.Location, &last.Location, along(so))
		} else {
			r.placeCorner(start, end, &first.Location, &last.Location, along(so))
		}

	case first.AutoPosition:
		r.placeNear(start, &first.Location, bends[1].Location, along(so))

	case last.AutoPosition:
		r.placeNear(end, &last.Location, bends[len(bends)-2].Location, along(eo))
	}
	return so, eo
}

// placeParallel handles connections leaving and entering along the same
// axis a.
func (r Router) placeParallel(s, e geom.Rect, first, last *geom.Vec, a axis) {
	sp := r.Spacing

	switch {
	case a.hi(s) <= a.lo(e)-2*sp:
		a.set(first, a.hi(s)+sp)
		a.set(last, a.lo(e)-sp)
	case a.lo(s) >= a.hi(e)+2*sp:
		a.set(first, a.lo(s)-sp)
		a.set(last, a.hi(e)+sp)
	case math.Abs(a.lo(s)-a.lo(e)) < math.Abs(a.hi(s)-a.hi(e)):
		a.set(first, a.lo(s)-sp)
		a.set(last, a.lo(e)-sp)
	default:
		a.set(first, a.hi(s)+sp)
		a.set(last, a.hi(e)+sp)
	}

	c := a.other()
	smaller, bigger := e, s
	if c.size(s) < c.size(e) {
		smaller, bigger = s, e
	}
	if c.spans(bigger, c.mid(smaller)) {
		shared := (math.Max(c.lo(s), c.lo(e)) + math.Min(c.hi(s), c.hi(e))) / 2
		c.set(first, shared)
		c.set(last, shared)
	} else {
		c.set(first, c.mid(s))
		c.set(last, c.mid(e))
	}
}

// placeCorner handles L-shaped connections: the start leaves along a and the
// end is entered along the other axis.
func (r Router) placeCorner(s, e geom.Rect, first, last *geom.Vec, a axis) {
	sp := r.Spacing
	c := a.other()

	c.set(first, c.mid(s))
	a.set(last, a.mid(e))

	if a.of(*last) >= a.mid(s) {
		a.set(first, a.hi(s)+sp)
	} else {
		a.set(first, a.lo(s)-sp)
	}
	if c.of(*first) >= c.mid(e) {
		c.set(last, c.hi(e)+sp)
	} else {
		c.set(last, c.lo(e)-sp)
	}
}

// placeNear positions an auto bend point p of shape next to the neighbouring
// fixed point n, leaving the shape along a.
func (r Router) placeNear(shape geom.Rect, p *geom.Vec, n geom.Vec, a axis) {
	if a.of(n) < a.mid(shape) {
		a.set(p, a.lo(shape)-r.Spacing)
	} else {
		a.set(p, a.hi(shape)+r.Spacing)
	}

	c := a.other()
	if c.spans(shape, c.of(n)) {
		c.set(p, c.of(n))
	} else {
		c.set(p, c.mid(shape))
	}
}
